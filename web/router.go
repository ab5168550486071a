package web

import (
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/tonytani37/votes-for-players/controller"
	"github.com/unrolled/render"
)

func getRouter(ctrl controller.C, render *render.Render, corsOrigins []string) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// Set a timeout value on the request context (ctx), that will signal
	// through ctx.Done() that the request has timed out and further
	// processing should be stopped.
	r.Use(middleware.Timeout(30 * time.Second))

	r.Get("/healthz", healthHandler(render))

	r.Group(func(r chi.Router) {
		r.Use(withSession)

		r.Get("/", rootHandler())

		r.Route("/players", func(r chi.Router) {
			// Show the search hints if no criteria are present, or perform
			// the search if they are.
			r.Get("/", playerSearchHandler(ctrl, render))
			r.Get("/{playerID}", getPlayerHandler(ctrl, render))
			r.Post("/{playerID}/vote", voteHandler(ctrl, render))
		})

		r.Get("/ranking", rankingHandler(ctrl, render))
	})

	r.Route("/api", func(r chi.Router) {
		if len(corsOrigins) == 0 {
			corsOrigins = []string{"*"}
		}
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: corsOrigins,
			AllowedMethods: []string{"GET", "POST", "OPTIONS"},
			AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", sessionHeader},
			MaxAge:         300,
		}))
		r.Use(withAPISession)

		r.Get("/matches", apiMatchesHandler(ctrl, render))
		r.Get("/players", apiPlayersHandler(ctrl, render))
		r.Get("/ranking", apiRankingHandler(ctrl, render))

		if ctrl.LedgerEnabled() {
			r.Post("/votes", apiRecordVoteHandler(ctrl, render))
			r.Get("/ledger/ranking", apiLedgerRankingHandler(ctrl, render))
			r.Get("/ledger/matches", apiLedgerMatchesHandler(ctrl, render))
		}
	})

	return r
}
