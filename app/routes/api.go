package routes

import (
	"github.com/vitrine/backoffice/app/controllers"
	"github.com/vitrine/backoffice/pkg/ctx"
	"github.com/vitrine/backoffice/pkg/router"
)

// Controllers bundles the handlers mounted under /api.
type Controllers struct {
	Banners  *controllers.BannerController
	Orders   *controllers.OrderController
	Cards    *controllers.CardController
	Products *controllers.ProductController
}

func RegisterAPI(r *router.Router, c Controllers, middlewares ...router.Middleware) {
	api := r.Group("/api", middlewares...)

	api.Get("/banners", "banners.show", ctx.Wrap(c.Banners.Show))
	api.Post("/banners", "banners.store", ctx.Wrap(c.Banners.Store))
	api.Get("/banners/{id}", "banners.get", ctx.Wrap(c.Banners.Get))
	api.Get("/banners/{id}/image", "banners.image", ctx.Wrap(c.Banners.Image))
	api.Put("/banners/{id}", "banners.update", ctx.Wrap(c.Banners.Update))
	api.Delete("/banners/{id}", "banners.delete", ctx.Wrap(c.Banners.Delete))

	api.Get("/orders", "orders.list", ctx.Wrap(c.Orders.List))
	api.Get("/orders/statuses", "orders.statuses", ctx.Wrap(c.Orders.Statuses))
	api.Get("/orders/{id}", "orders.get", ctx.Wrap(c.Orders.Get))
	api.Put("/orders/{id}", "orders.update", ctx.Wrap(c.Orders.Update))

	api.Get("/cards", "cards.list", ctx.Wrap(c.Cards.List))
	api.Post("/cards", "cards.store", ctx.Wrap(c.Cards.Store))
	api.Get("/cards/{id}", "cards.get", ctx.Wrap(c.Cards.Get))
	api.Put("/cards/{id}", "cards.update", ctx.Wrap(c.Cards.Update))
	api.Delete("/cards/{id}", "cards.delete", ctx.Wrap(c.Cards.Delete))

	api.Get("/products", "products.options", ctx.Wrap(c.Products.Options))
}
