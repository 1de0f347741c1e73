package httpserver

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"wedding-registry-go/internal/auth"
	"wedding-registry-go/internal/config"
	"wedding-registry-go/internal/ratelimit"
	"wedding-registry-go/internal/transport/httpserver/handler"
	"wedding-registry-go/internal/transport/httpserver/middleware"
	"wedding-registry-go/pkg/logger"
)

func NewRouter(cfg config.Config, handlers *handler.Handlers, sessions *auth.Sessions, limiter ratelimit.Store, gatherer prometheus.Gatherer, observer middleware.RequestObserver, log logger.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestLogger(log, observer))
	r.Use(chimw.Recoverer)
	r.Use(chimw.Timeout(30 * time.Second))
	r.Use(middleware.NewCORS(cfg.CORSAllowedOrigins))

	if gatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	}

	sessionAuth := middleware.NewSessionAuth(sessions, log)
	signIn := middleware.NewRateLimit(limiter, cfg.RateLimit.AuthAttempts, cfg.RateLimit.AuthWindow, log).PerIP("auth")

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", handlers.Common.Health)
		r.With(signIn).Post("/auth/guest", handlers.Common.GuestLogin)
		r.With(signIn).Post("/auth/admin", handlers.Common.AdminLogin)
		// Stats feed the public countdown page.
		r.Get("/guest-list/stats", handlers.Guests.Stats)

		r.Group(func(r chi.Router) {
			r.Use(sessionAuth.Require(auth.RoleGuest))

			r.Post("/guest-list/lookup", handlers.Guests.Lookup)
			r.Post("/guest-list/rsvp", handlers.Guests.SubmitRSVP)
			r.Get("/guest-list/check-rsvp/{guest_id}", handlers.Guests.CheckRSVP)

			r.Get("/guestbook", handlers.Guestbook.List)
			r.Post("/guestbook", handlers.Guestbook.Sign)
		})

		r.Group(func(r chi.Router) {
			r.Use(sessionAuth.Require(auth.RoleAdmin))

			r.Get("/admin/guest-list", handlers.Guests.ListGuests)
			r.Post("/admin/guest-list/import", handlers.Guests.Import)
			r.Get("/admin/guest-list/report", handlers.Guests.Report)
			r.Get("/admin/stats", handlers.Guests.AdminStats)

			r.Delete("/guestbook/{id}", handlers.Guestbook.Delete)
		})
	})

	return r
}
