package api

import (
	"context"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/bnema/gigpulse/internal/application"
	"github.com/bnema/gigpulse/internal/domain"
	"github.com/bnema/gigpulse/internal/ports"
)

type MessageLog interface {
	Messages() []domain.Message
	SendMessage(ctx context.Context, text string) error
}

type SupportRouter interface {
	Route(text string) application.SupportRoute
}

type Deps struct {
	Engine   ports.Engine
	Broker   MessageLog
	Support  SupportRouter
	Bounties ports.BountyListing
	Logger   zerolog.Logger
}

// NewRouter builds the HTTP surface over the engine and the guardian broker.
func NewRouter(deps Deps) *chi.Mux {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(requestLogger(deps.Logger))
	r.Use(chimw.Recoverer)
	r.Use(maxBodySize(maxBodyBytes))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	h := &handler{deps: deps}

	r.Handle("/metrics", promhttp.Handler())
	r.Get("/health", h.health)

	r.Route("/api", func(r chi.Router) {
		r.Get("/snapshot", h.snapshot)
		r.Post("/assets/{id}/buy", h.buyAsset)
		r.Get("/messages", h.listMessages)
		r.Post("/messages", h.postMessage)
		r.Post("/support", h.support)
		r.Get("/bounties", h.listBounties)
	})

	return r
}
