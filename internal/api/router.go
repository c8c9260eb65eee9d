package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/voltroute/backend/internal/api/handler"
	apimw "github.com/voltroute/backend/internal/api/middleware"
	"github.com/voltroute/backend/internal/config"
	"github.com/voltroute/backend/internal/readiness"
)

// Deps are the collaborators the HTTP surface needs.
type Deps struct {
	Config   *config.Config
	Checker  *readiness.Checker
	Gatherer prometheus.Gatherer
	Observer apimw.RequestObserver
	Logger   *zap.Logger
}

// NewRouter builds the chi mux: liveness bare, everything else behind the
// request-scoped middleware stack.
func NewRouter(d Deps) http.Handler {
	r := chi.NewRouter()

	// --- global middleware (applied to every route) ---
	r.Use(chimw.Recoverer) // recover panics, return 500
	r.Use(chimw.RealIP)    // trust X-Forwarded-For / X-Real-IP

	r.NotFound(handler.NotFound)
	r.MethodNotAllowed(handler.MethodNotAllowed)

	// --- handler instances ---
	hh := handler.NewHealthHandler()
	rh := handler.NewReadyHandler(d.Checker)

	// --- routes ---
	// Liveness sits outside the instrumented group: probes leave no trace in
	// logs or metrics.
	for _, p := range config.SlashVariants(d.Config.HealthPath) {
		r.Get(p, hh.Health)
	}

	r.Group(func(r chi.Router) {
		r.Use(chimw.RequestSize(d.Config.MaxRequestBytes))
		r.Use(apimw.CorrelationID)
		r.Use(apimw.Tracing)
		r.Use(apimw.Instrument(d.Observer))
		r.Use(apimw.RequestLogger(d.Logger))

		for _, p := range config.SlashVariants(d.Config.ReadyPath) {
			r.Get(p, rh.Ready)
		}

		// Raw Prometheus scrape endpoint
		r.Handle(d.Config.MetricsPath, promhttp.HandlerFor(d.Gatherer, promhttp.HandlerOpts{}))
	})

	return r
}
