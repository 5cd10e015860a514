package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/soft-network/deskpro/internal/api"
	"github.com/soft-network/deskpro/internal/config"
	"github.com/soft-network/deskpro/internal/handlers"
	"github.com/soft-network/deskpro/internal/middleware"
	"github.com/soft-network/deskpro/internal/view"
)

func New(log zerolog.Logger, client *api.Client, renderer *view.Renderer, cfg config.Config) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestLogger(log))
	r.Use(middleware.Recoverer(log))
	r.Use(middleware.Metrics())
	r.Use(httprate.LimitByIP(200, time.Minute))

	ah := handlers.NewAuthHTTP(client, renderer, log)
	th := handlers.NewTicketHTTP(client, renderer, log)

	// Pages
	r.Get("/", handlers.Home(renderer))
	r.Get("/dashboard", handlers.Dashboard())

	r.Get("/login", ah.LoginPage())
	r.Get("/register", ah.RegisterPage())
	r.Post("/logout", ah.Logout())
	r.Group(func(r chi.Router) {
		// Tighter limit on credential submission.
		r.Use(httprate.LimitByIP(20, time.Minute))
		r.Post("/login", ah.Login())
		r.Post("/register", ah.Register())
	})

	r.Route("/tickets", func(r chi.Router) {
		r.Get("/", th.List())
		r.Get("/{id}", th.Detail())
		r.Post("/{id}/reply", th.Reply())
	})

	// JSON surface consumed by the top-nav script; CORS is config-driven so
	// a separately hosted widget origin can reuse the probe.
	r.Group(func(r chi.Router) {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   []string{cfg.Origin},
			AllowedMethods:   []string{"GET", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Content-Type"},
			AllowCredentials: true,
		}))
		r.Get("/api/session", handlers.Session(client, log))
		r.Get("/healthz", handlers.Health())
	})

	r.Handle("/metrics", promhttp.Handler())

	fs := http.StripPrefix("/static/", http.FileServer(http.Dir(cfg.StaticDir)))
	r.Get("/static/*", fs.ServeHTTP)

	return r
}
