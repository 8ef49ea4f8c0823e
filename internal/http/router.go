package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/MrJamesThe3rd/marketplace/internal/http/admin"
	"github.com/MrJamesThe3rd/marketplace/internal/http/balance"
	"github.com/MrJamesThe3rd/marketplace/internal/http/contract"
	"github.com/MrJamesThe3rd/marketplace/internal/http/job"
	"github.com/MrJamesThe3rd/marketplace/internal/http/profile"
	"github.com/MrJamesThe3rd/marketplace/internal/metrics"
)

type Options struct {
	AllowedOrigins []string
	Profiles       profile.Finder
	Metrics        *metrics.Metrics
}

func New(
	opts Options,
	contractsV1 *contract.Handler,
	jobsV1 *job.Handler,
	balancesV1 *balance.Handler,
	adminV1 *admin.Handler,
) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(opts.Metrics.Instrument)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: opts.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", profile.Header},
		MaxAge:         300,
	}))

	router.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	router.Method(http.MethodGet, "/metrics", opts.Metrics.Handler())

	router.Group(func(r chi.Router) {
		r.Use(profile.Middleware(opts.Profiles))

		r.Route("/contracts", contractsV1.Routes)
		r.Route("/jobs", jobsV1.Routes)

		r.Route("/balances", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			balancesV1.Routes(r)
		})

		r.Route("/admin", adminV1.Routes)
	})

	return router
}
