package controllers

import (
	"github.com/vitrine/backoffice/app/services"
	"github.com/vitrine/backoffice/pkg/ctx"
	"github.com/vitrine/backoffice/pkg/lang"
	"github.com/vitrine/backoffice/pkg/orm"
)

type OrderController struct {
	service *services.OrderService
}

func NewOrderController(service *services.OrderService) *OrderController {
	return &OrderController{service: service}
}

// List handles GET /api/orders?page=&limit=&status=.
func (c *OrderController) List(cx *ctx.Context) {
	orders, p, err := c.service.List(cx.Context(),
		cx.QueryInt("page", 1),
		cx.QueryInt("limit", orm.DefaultLimit),
		cx.QueryInt("status", 0),
	)
	if err != nil {
		cx.FailWith(err, lang.T("Could not list the orders."))
		return
	}
	cx.Paginated(orders, p)
}

func (c *OrderController) Statuses(cx *ctx.Context) {
	cx.OK(c.service.Statuses())
}

// Get handles GET /api/orders/{id}.
func (c *OrderController) Get(cx *ctx.Context) {
	id, ok := cx.ParamUint("id")
	if !ok {
		cx.FailWith(services.ErrOrderNotFound, lang.T("Could not load the order."))
		return
	}

	order, err := c.service.Get(cx.Context(), id)
	if err != nil {
		cx.FailWith(err, lang.T("Could not load the order."))
		return
	}
	cx.OK(order)
}

// Update handles PUT /api/orders/{id}. Only the shipping fields are
// editable; anything else in the body is ignored.
func (c *OrderController) Update(cx *ctx.Context) {
	id, ok := cx.ParamUint("id")
	if !ok {
		cx.FailWith(services.ErrOrderNotFound, lang.T("Could not update the order."))
		return
	}

	var in services.OrderUpdate
	if !cx.BindJSON(&in) {
		return
	}
	if err := c.service.Update(cx.Context(), id, in); err != nil {
		cx.FailWith(err, lang.T("Could not update the order."))
		return
	}
	cx.OK(nil)
}
