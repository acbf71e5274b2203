package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"go.uber.org/zap"

	"github.com/vitrine/backoffice/pkg/lang"
	"github.com/vitrine/backoffice/pkg/logger"
	"github.com/vitrine/backoffice/pkg/response"
)

// Recovery turns a panic in a downstream handler into a logged stack trace
// and a 500 failure envelope.
func Recovery(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				logger.WithCtx(r.Context()).Error("panic recovered",
					zap.String("error", fmt.Sprintf("%v", err)),
					zap.ByteString("stack", debug.Stack()),
					zap.String("method", r.Method),
					zap.String("path", r.URL.Path),
				)
				response.Fail(w, http.StatusInternalServerError, lang.T("Internal server error."))
			}
		}()
		next.ServeHTTP(w, r)
	})
}
