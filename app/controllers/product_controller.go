package controllers

import (
	"github.com/vitrine/backoffice/app/services"
	"github.com/vitrine/backoffice/pkg/ctx"
	"github.com/vitrine/backoffice/pkg/lang"
)

type ProductController struct {
	service *services.ProductService
}

func NewProductController(service *services.ProductService) *ProductController {
	return &ProductController{service: service}
}

// Options handles GET /api/products.
func (c *ProductController) Options(cx *ctx.Context) {
	products, err := c.service.Options(cx.Context())
	if err != nil {
		cx.FailWith(err, lang.T("Could not list the products."))
		return
	}
	cx.OK(products)
}
