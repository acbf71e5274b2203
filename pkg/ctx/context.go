// Package ctx provides the request context handed to every controller.
//
// Instead of accepting (http.ResponseWriter, *http.Request), a handler
// receives a single *Context with helpers for params, binding and the
// response envelope:
//
//	func (c *BannerController) Get(cx *ctx.Context) {
//	    id, ok := cx.ParamUint("id")
//	    ...
//	    cx.OK(payload)
//	}
//
//	router.Get("/banners/{id}", "banners.get", ctx.Wrap(bannerController.Get))
package ctx

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"sync"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/vitrine/backoffice/pkg/bind"
	"github.com/vitrine/backoffice/pkg/lang"
	"github.com/vitrine/backoffice/pkg/logger"
	"github.com/vitrine/backoffice/pkg/orm"
	"github.com/vitrine/backoffice/pkg/response"
)

// HandlerFunc is the context-aware handler signature.
type HandlerFunc func(c *Context)

// Wrap converts a HandlerFunc to a standard http.HandlerFunc.
func Wrap(h HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := acquire(w, r)
		defer release(c)
		h(c)
	}
}

// Context wraps a request/response pair.
type Context struct {
	W http.ResponseWriter
	R *http.Request
}

var pool = sync.Pool{
	New: func() any { return &Context{} },
}

func acquire(w http.ResponseWriter, r *http.Request) *Context {
	c := pool.Get().(*Context)
	c.W = w
	c.R = r
	return c
}

func release(c *Context) {
	c.W = nil
	c.R = nil
	pool.Put(c)
}

// ─── Request helpers ──────────────────────────────────────────────────────────

// Param returns a URL path parameter.
func (c *Context) Param(key string) string {
	return chi.URLParam(c.R, key)
}

// ParamUint parses a path parameter as a positive integer id.
func (c *Context) ParamUint(key string) (uint, bool) {
	n, err := strconv.ParseUint(c.Param(key), 10, 64)
	if err != nil || n == 0 {
		return 0, false
	}
	return uint(n), true
}

// Query returns a query-string value, or "" if absent.
func (c *Context) Query(key string) string {
	return c.R.URL.Query().Get(key)
}

// QueryInt parses a query-string value as an int, returning def when it is
// absent or not a number.
func (c *Context) QueryInt(key string, def int) int {
	n, err := strconv.Atoi(strings.TrimSpace(c.Query(key)))
	if err != nil {
		return def
	}
	return n
}

// Context returns the request context.
func (c *Context) Context() context.Context { return c.R.Context() }

// Logger returns the request-scoped logger.
func (c *Context) Logger() *zap.Logger { return logger.WithCtx(c.R.Context()) }

// BindJSON decodes and validates the body into dest. On failure it writes a
// 400 failure envelope and returns false.
//
//	var input BannerInput
//	if !c.BindJSON(&input) {
//	    return
//	}
func (c *Context) BindJSON(dest any) bool {
	errs, err := bind.JSON(c.R, dest)
	if err != nil {
		c.Logger().Debug("bind failed", zap.Error(err))
		c.Fail(http.StatusBadRequest, lang.T("Invalid request body."))
		return false
	}
	if len(errs) > 0 {
		c.ValidationFailed(errs)
		return false
	}
	return true
}

// ─── Response helpers ─────────────────────────────────────────────────────────

// OK sends a 200 success envelope.
func (c *Context) OK(data any) { response.OK(c.W, data) }

// Paginated sends a page of items with its metadata.
func (c *Context) Paginated(items any, p orm.Pagination) { response.Paginated(c.W, items, p) }

// Fail sends a code-2 failure envelope.
func (c *Context) Fail(code int, message string) { response.Fail(c.W, code, message) }

// FailWith logs err against the request and sends a 400 failure envelope
// with the localized message.
func (c *Context) FailWith(err error, message string) {
	log := c.Logger()
	var notFound interface{ NotFound() bool }
	if errors.As(err, &notFound) && notFound.NotFound() {
		log.Info(message, zap.Error(err))
	} else {
		log.Error(message, zap.Error(err))
	}
	c.Fail(http.StatusBadRequest, message)
}

// ValidationFailed sends a 400 failure envelope with per-field messages.
func (c *Context) ValidationFailed(fields map[string]string) {
	response.ValidationFailed(c.W, lang.T("Validation failed."), fields)
}

// Blob writes raw bytes with the given content type.
func (c *Context) Blob(code int, contentType string, data []byte) {
	c.W.Header().Set("Content-Type", contentType)
	c.W.WriteHeader(code)
	_, _ = c.W.Write(data)
}
