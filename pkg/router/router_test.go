package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func ok(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusNoContent) }

func TestGroupRoutesAndNames(t *testing.T) {
	r := New()
	var order []string
	tag := func(s string) Middleware {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
				order = append(order, s)
				next.ServeHTTP(w, req)
			})
		}
	}

	api := r.Group("/api/", tag("group"))
	api.Put("/banners/{id}", "banners.update", ok, tag("route"))
	api.Delete("banners/{id}", "banners.delete", ok)

	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodPut, "/api/banners/3", nil))
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, []string{"group", "route"}, order)

	assert.Contains(t, r.Routes(), Route{Method: http.MethodDelete, Path: "/api/banners/{id}", Name: "banners.delete"})
}

func TestRoutesListing(t *testing.T) {
	r := New()
	r.Post("/b", "b.store", ok)
	r.Get("/b", "b.list", ok)
	r.Get("/a", "", ok)
	r.Mount("/metrics", "metrics", http.HandlerFunc(ok))

	assert.Equal(t, []Route{
		{Method: http.MethodGet, Path: "/a"},
		{Method: http.MethodGet, Path: "/b", Name: "b.list"},
		{Method: http.MethodPost, Path: "/b", Name: "b.store"},
		{Method: "*", Path: "/metrics", Name: "metrics"},
	}, r.Routes())
}

func TestNotFoundHandler(t *testing.T) {
	r := New()
	r.NotFound(func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusTeapot) })

	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/nope", nil))
	assert.Equal(t, http.StatusTeapot, rec.Code)
}
