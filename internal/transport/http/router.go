package httptransport

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/judydsp/provabruno/pkg/platform/httputil"
)

// RouteRegistrar is implemented by feature handlers that mount their routes.
type RouteRegistrar interface {
	Register(r chi.Router)
}

// NewRouter wires the public endpoints with health and metrics.
func NewRouter(gatherer prometheus.Gatherer, handlers ...RouteRegistrar) http.Handler {
	r := chi.NewRouter()
	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		httputil.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	for _, h := range handlers {
		h.Register(r)
	}
	return r
}
