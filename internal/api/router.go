package api

import (
	"net/http"

	"github.com/L4w1i3t/Triet-Freelancing-sub001/internal/api/handlers"
	"github.com/L4w1i3t/Triet-Freelancing-sub001/internal/auth"
	"github.com/L4w1i3t/Triet-Freelancing-sub001/internal/metrics"
	"github.com/L4w1i3t/Triet-Freelancing-sub001/internal/services"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Deps are the collaborators the router wires into handlers.
type Deps struct {
	BackupService services.BackupServiceProvider
	AuditService  services.AuditServiceProvider
	Whitelist     *auth.IPWhitelist
	Tokens        *auth.TokenManager
	Metrics       *metrics.Metrics
	Gatherer      prometheus.Gatherer
	BackupPath    string
}

// NewRouter creates and configures a new Chi router.
func NewRouter(d Deps) *chi.Mux {
	r := chi.NewRouter()

	// Basic middleware stack. Client IP resolution for admin routes is done
	// by auth.IPWhitelist, so RealIP is not used here.
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	if d.Metrics != nil {
		r.Use(d.Metrics.Middleware)
	}

	var observer handlers.EventObserver
	if d.Metrics != nil {
		observer = d.Metrics
	}
	analyticsHandler := handlers.NewAnalyticsHandler(observer)
	configHandler := handlers.NewConfigHandler()
	backupHandler := handlers.NewBackupHandler(d.BackupService, d.AuditService)
	auditHandler := handlers.NewAuditHandler(d.AuditService)
	healthHandler := handlers.NewHealthHandler(d.BackupPath)

	admin := auth.AdminMiddleware(d.Whitelist, d.Tokens, d.AuditService)

	r.Route("/api", func(r chi.Router) {
		r.With(endpointGate(http.MethodPost, "Content-Type")).
			HandleFunc("/analytics", analyticsHandler.Ingest)
		r.With(endpointGate(http.MethodGet, "Content-Type")).
			HandleFunc("/config", configHandler.Get)
		r.With(endpointGate(http.MethodGet, "Content-Type")).
			HandleFunc("/health", healthHandler.Get)

		r.Route("/admin", func(r chi.Router) {
			r.With(endpointGate(http.MethodGet, "Content-Type", "Authorization"), admin).
				HandleFunc("/backups", backupHandler.List)
			r.With(endpointGate(http.MethodGet, "Content-Type", "Authorization"), admin).
				HandleFunc("/audit", auditHandler.GetRecent)
		})
	})

	if d.Gatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(d.Gatherer, promhttp.HandlerOpts{}))
	}

	return r
}
