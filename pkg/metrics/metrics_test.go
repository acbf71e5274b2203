package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMiddlewareLabelsByRoutePattern(t *testing.T) {
	r := chi.NewRouter()
	r.Use(Middleware())
	r.Get("/api/orders/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	before := testutil.ToFloat64(RequestTotal.WithLabelValues("GET", "/api/orders/{id}", "200"))
	for _, id := range []string{"1", "2", "3"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/orders/"+id, nil))
	}
	after := testutil.ToFloat64(RequestTotal.WithLabelValues("GET", "/api/orders/{id}", "200"))

	assert.Equal(t, before+3, after)
}

func TestDomainCounters(t *testing.T) {
	ok := testutil.ToFloat64(BannerImagesPublished.WithLabelValues("success"))
	failed := testutil.ToFloat64(BannerImagesPublished.WithLabelValues("failed"))

	RecordBannerPublish(nil)
	RecordBannerPublish(errors.New("s3 down"))

	assert.Equal(t, ok+1, testutil.ToFloat64(BannerImagesPublished.WithLabelValues("success")))
	assert.Equal(t, failed+1, testutil.ToFloat64(BannerImagesPublished.WithLabelValues("failed")))

	shipped := testutil.ToFloat64(OrderStatusChanges.WithLabelValues("4"))
	RecordOrderStatus(4)
	assert.Equal(t, shipped+1, testutil.ToFloat64(OrderStatusChanges.WithLabelValues("4")))
}

func TestHandlerExposesNamespace(t *testing.T) {
	RecordOrderStatus(2)

	rec := httptest.NewRecorder()
	Handler()(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), "backoffice_order_status_changes_total"))
}
