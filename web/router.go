package web

import (
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/levon-fischer/FantasyFieldhouse/controller"
	"github.com/unrolled/render"
)

func getRouter(ctrl controller.C, render *render.Render) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// Set a timeout value on the request context (ctx), that will signal
	// through ctx.Done() that the request has timed out and further
	// processing should be stopped.
	r.Use(middleware.Timeout(10 * time.Second))

	r.Get("/healthz", healthHandler(render))

	r.Route("/api", func(r chi.Router) {
		r.Route("/leagues", func(r chi.Router) {
			r.Get("/", listLeaguesHandler(ctrl, render))
			r.Get("/{leagueID:\\d+}", getLeagueHandler(ctrl, render))
			// League resolution walks the whole previous-season chain, so
			// give it more room than the default timeout.
			r.With(middleware.Timeout(5 * time.Minute)).
				Post("/import", importLeagueHandler(ctrl, render))
		})

		r.Route("/seasons/{seasonID}", func(r chi.Router) {
			r.Get("/standings", seasonStandingsHandler(ctrl, render))
			r.Get("/results/{week:\\d+}", seasonResultsHandler(ctrl, render))
			r.Get("/transactions/{week:\\d+}", seasonTransactionsHandler(ctrl, render))
		})

		r.Post("/users/register", registerUserHandler(ctrl, render))
	})

	return r
}
