package routes

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware" // Alias to avoid conflict
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/utdisa/isa-portal/docs" // registers the swagger spec
	"github.com/utdisa/isa-portal/handlers"
	"github.com/utdisa/isa-portal/middleware"
	"github.com/utdisa/isa-portal/models"
	"github.com/utdisa/isa-portal/telemetry"
)

type Handlers struct {
	Auth      *handlers.AuthHandler
	Forms     *handlers.FormHandler
	Housing   *handlers.HousingHandler
	Profiles  *handlers.ProfileHandler
	Directory *handlers.DirectoryHandler
	Storage   *handlers.StorageHandler
	Realtime  *handlers.RealtimeHandler
	Health    *handlers.HealthHandler
}

type Options struct {
	ServiceName        string
	Authenticator      middleware.TokenAuthenticator
	Metrics            *middleware.Metrics
	Gatherer           prometheus.Gatherer
	CORSAllowedOrigins []string
	RateLimitPerMinute int
	Logger             *slog.Logger
}

func SetupRoutes(router chi.Router, h Handlers, opts Options) {
	router.Use(chiMiddleware.RequestID)
	router.Use(chiMiddleware.RealIP)
	router.Use(chiMiddleware.Recoverer)
	router.Use(telemetry.Middleware(opts.ServiceName))
	router.Use(opts.Metrics.Handler)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   opts.CORSAllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "apikey", "X-Request-Id"},
		ExposedHeaders:   []string{"X-Request-Id"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	authenticate := middleware.Authenticate(opts.Authenticator, opts.Logger)
	rateLimit := httprate.LimitByIP(opts.RateLimitPerMinute, time.Minute)

	router.Get("/healthz", h.Health.Healthz)
	router.Get("/readyz", h.Health.Readyz)
	router.Handle("/metrics", promhttp.HandlerFor(opts.Gatherer, promhttp.HandlerOpts{}))
	router.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	router.Route("/auth/v1", func(r chi.Router) {
		r.Use(rateLimit)

		r.Post("/signup", h.Auth.SignUp)
		r.Post("/token", h.Auth.Token)
		r.Post("/recover", h.Auth.Recover)
		r.Post("/reset", h.Auth.Reset)
		r.Get("/verify", h.Auth.Verify)

		r.Group(func(r chi.Router) {
			r.Use(authenticate)
			r.Get("/user", h.Auth.User)
			r.Post("/logout", h.Auth.Logout)
		})
	})

	router.Route("/rest/v1", func(r chi.Router) {
		// Forms are open to visitors; reading them back is for admins
		r.With(rateLimit).Post("/airport_pickup_forms", h.Forms.SubmitAirportPickup)
		r.With(rateLimit).Post("/feedback_forms", h.Forms.SubmitFeedback)
		r.With(rateLimit).Post("/sponsor_forms", h.Forms.SubmitSponsor)

		r.Get("/housing_listings", h.Housing.List)
		r.Get("/events", h.Directory.ListEvents)
		r.Get("/team_members", h.Directory.ListTeamMembers)
		r.Get("/team_roster", h.Directory.Roster)

		r.Group(func(r chi.Router) {
			r.Use(authenticate)

			r.Post("/housing_listings", h.Housing.Create)
			r.Delete("/housing_listings", h.Housing.Delete)
			r.Post("/profiles", h.Profiles.Create)
			r.Get("/profiles", h.Profiles.List)

			r.Group(func(r chi.Router) {
				r.Use(middleware.Authorize(models.RoleAdmin))
				r.Get("/airport_pickup_forms", h.Forms.ListAirportPickups)
				r.Get("/feedback_forms", h.Forms.ListFeedback)
				r.Get("/sponsor_forms", h.Forms.ListSponsors)
			})
		})
	})

	router.Route("/storage/v1/object", func(r chi.Router) {
		r.Get("/public/{bucket}/*", h.Storage.Public)
		r.With(rateLimit, authenticate).Post("/{bucket}/*", h.Storage.Upload)
	})

	router.Get("/realtime/v1/{room}", h.Realtime.ServeWs)

	router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":"the requested resource could not be found"}` + "\n"))
	})
}
