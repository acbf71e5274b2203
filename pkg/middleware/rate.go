// Package middleware provides the HTTP middleware stack of the back-office.
package middleware

import (
	"net/http"
	"time"

	"github.com/go-chi/httprate"

	"github.com/vitrine/backoffice/pkg/lang"
	"github.com/vitrine/backoffice/pkg/response"
)

// RateLimit limits each client IP to max requests per window. Rejected
// requests get a 429 failure envelope.
//
//	r.Use(middleware.RateLimit(200, time.Minute))
func RateLimit(max int, window time.Duration) func(http.Handler) http.Handler {
	return httprate.Limit(max, window,
		httprate.WithKeyFuncs(httprate.KeyByIP),
		httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
			response.Fail(w, http.StatusTooManyRequests, lang.T("Too many requests."))
		}),
	)
}
