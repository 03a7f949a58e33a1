package handlers

import (
	"github.com/go-chi/chi"
	"github.com/go-chi/jwtauth"
)

func (h *Handler) SetRoutes(r *chi.Mux) {
	r.Route("/v1", func(r chi.Router) {

		// public routes here
		r.Post("/auth/register", h.RegisterHandler)
		r.Post("/auth/login", h.LoginHandler)
		r.Get("/health", h.HealthHandler)

		// Secure routes
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(h.tokenAuth))
			r.Use(jwtauth.Authenticator)

			r.Route("/players", func(r chi.Router) {
				r.Get("/", h.ListPlayersHandler)
				r.Post("/", h.CreatePlayerHandler)
				r.Get("/{id}", h.GetPlayerHandler)
				r.Put("/{id}", h.RenamePlayerHandler)
				r.Delete("/{id}", h.DeletePlayerHandler)
			})

			r.Route("/teams", func(r chi.Router) {
				r.Get("/", h.ListTeamsHandler)
				r.Post("/", h.CreateTeamHandler)
				r.Get("/{id}", h.GetTeamHandler)
				r.Delete("/{id}", h.DeleteTeamHandler)
				r.Put("/{id}/players", h.SetTeamPlayersHandler)
			})

			r.Route("/matches", func(r chi.Router) {
				r.Get("/", h.ListMatchesHandler)
				r.Post("/", h.CreateMatchHandler)
				r.Get("/{id}", h.GetMatchHandler)
				r.Delete("/{id}", h.DeleteMatchHandler)
				r.Put("/{id}/winners", h.DeclareWinnersHandler)
				r.Post("/{id}/toss", h.TossHandler)
				r.Post("/{id}/overs", h.StartOverHandler)
				r.Post("/{id}/overs/{overID}/events", h.RecordEventHandler)
				r.Get("/{id}/overs/{overID}/session", h.SessionHandler)
			})

			r.Route("/access", func(r chi.Router) {
				r.Post("/requests", h.CreateAccessRequestHandler)
				r.Get("/requests", h.ListAccessRequestsHandler)
				r.Post("/requests/{id}/decision", h.DecideAccessRequestHandler)
				r.Post("/grants", h.GrantAccessHandler)
			})
		})
	})
}
