package controllers

import (
	"net/http"

	"github.com/vitrine/backoffice/app/services"
	"github.com/vitrine/backoffice/pkg/ctx"
	"github.com/vitrine/backoffice/pkg/lang"
)

type BannerController struct {
	service *services.BannerService
}

func NewBannerController(service *services.BannerService) *BannerController {
	return &BannerController{service: service}
}

// Store handles POST /api/banners.
func (c *BannerController) Store(cx *ctx.Context) {
	var in services.BannerInput
	if !cx.BindJSON(&in) {
		return
	}

	id, err := c.service.Store(cx.Context(), in)
	if err != nil {
		cx.FailWith(err, lang.T("Could not save the banner."))
		return
	}
	cx.OK(map[string]uint{"id": id})
}

// Show handles GET /api/banners.
func (c *BannerController) Show(cx *ctx.Context) {
	banners, err := c.service.List(cx.Context())
	if err != nil {
		cx.FailWith(err, lang.T("Could not list the banners."))
		return
	}
	cx.OK(banners)
}

// Get handles GET /api/banners/{id}.
func (c *BannerController) Get(cx *ctx.Context) {
	id, ok := cx.ParamUint("id")
	if !ok {
		cx.FailWith(services.ErrBannerNotFound, lang.T("Could not load the banner."))
		return
	}

	banner, err := c.service.Get(cx.Context(), id)
	if err != nil {
		cx.FailWith(err, lang.T("Could not load the banner."))
		return
	}
	cx.OK(banner)
}

// Image handles GET /api/banners/{id}/image.
func (c *BannerController) Image(cx *ctx.Context) {
	id, ok := cx.ParamUint("id")
	if !ok {
		cx.FailWith(services.ErrBannerNotFound, lang.T("Could not load the banner."))
		return
	}

	data, mime, err := c.service.Image(cx.Context(), id)
	if err != nil {
		cx.FailWith(err, lang.T("Could not load the banner."))
		return
	}
	cx.Blob(http.StatusOK, mime, data)
}

// Update handles PUT /api/banners/{id}.
func (c *BannerController) Update(cx *ctx.Context) {
	id, ok := cx.ParamUint("id")
	if !ok {
		cx.FailWith(services.ErrBannerNotFound, lang.T("Could not update the banner."))
		return
	}

	var in services.BannerUpdate
	if !cx.BindJSON(&in) {
		return
	}
	if err := c.service.Update(cx.Context(), id, in); err != nil {
		cx.FailWith(err, lang.T("Could not update the banner."))
		return
	}
	cx.OK(nil)
}

// Delete handles DELETE /api/banners/{id}.
func (c *BannerController) Delete(cx *ctx.Context) {
	id, ok := cx.ParamUint("id")
	if !ok {
		cx.FailWith(services.ErrBannerNotFound, lang.T("Could not delete the banner."))
		return
	}

	if err := c.service.Delete(cx.Context(), id); err != nil {
		cx.FailWith(err, lang.T("Could not delete the banner."))
		return
	}
	cx.OK(nil)
}
