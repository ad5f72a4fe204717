// Package httpapi assembles the public router: account routes plus the
// operational endpoints. Transport stays thin; all business behavior lives
// behind the account service.
package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"smartcommute/internal/account/handler"
	"smartcommute/internal/platform/metrics"
)

// NewRouter wires all public endpoints.
func NewRouter(accountHandler *handler.Handler, m *metrics.Metrics) http.Handler {
	r := chi.NewRouter()

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
	r.Method(http.MethodGet, "/metrics", m.Handler())

	accountHandler.Register(r)
	return r
}
