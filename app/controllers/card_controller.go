package controllers

import (
	"github.com/vitrine/backoffice/app/services"
	"github.com/vitrine/backoffice/pkg/ctx"
	"github.com/vitrine/backoffice/pkg/lang"
	"github.com/vitrine/backoffice/pkg/orm"
)

type CardController struct {
	service *services.CardService
}

func NewCardController(service *services.CardService) *CardController {
	return &CardController{service: service}
}

func (c *CardController) List(cx *ctx.Context) {
	cards, p, err := c.service.List(cx.Context(), cx.QueryInt("page", 1), cx.QueryInt("limit", orm.DefaultLimit))
	if err != nil {
		cx.FailWith(err, lang.T("Could not list the cards."))
		return
	}
	cx.Paginated(cards, p)
}

func (c *CardController) Get(cx *ctx.Context) {
	id, ok := cx.ParamUint("id")
	if !ok {
		cx.FailWith(services.ErrCardNotFound, lang.T("Could not load the card."))
		return
	}

	card, err := c.service.Get(cx.Context(), id)
	if err != nil {
		cx.FailWith(err, lang.T("Could not load the card."))
		return
	}
	cx.OK(card)
}

func (c *CardController) Store(cx *ctx.Context) {
	var in services.CardInput
	if !cx.BindJSON(&in) {
		return
	}

	card, err := c.service.Store(cx.Context(), in)
	if err != nil {
		cx.FailWith(err, lang.T("Could not save the card."))
		return
	}
	cx.OK(card)
}

func (c *CardController) Update(cx *ctx.Context) {
	id, ok := cx.ParamUint("id")
	if !ok {
		cx.FailWith(services.ErrCardNotFound, lang.T("Could not update the card."))
		return
	}

	var in services.CardInput
	if !cx.BindJSON(&in) {
		return
	}
	card, err := c.service.Update(cx.Context(), id, in)
	if err != nil {
		cx.FailWith(err, lang.T("Could not update the card."))
		return
	}
	cx.OK(card)
}

func (c *CardController) Delete(cx *ctx.Context) {
	id, ok := cx.ParamUint("id")
	if !ok {
		cx.FailWith(services.ErrCardNotFound, lang.T("Could not delete the card."))
		return
	}

	if err := c.service.Delete(cx.Context(), id); err != nil {
		cx.FailWith(err, lang.T("Could not delete the card."))
		return
	}
	cx.OK(nil)
}
