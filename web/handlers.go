package web

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/levon-fischer/FantasyFieldhouse/controller"
	"github.com/levon-fischer/FantasyFieldhouse/db"
	"github.com/unrolled/render"
)

func healthHandler(render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		render.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}

func listLeaguesHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		leagues, err := ctrl.ListLeagues(r.Context())
		if err != nil {
			render.JSON(w, http.StatusInternalServerError, errorBody(err))
			return
		}
		render.JSON(w, http.StatusOK, leagues)
	}
}

func getLeagueHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.ParseInt(chi.URLParam(r, "leagueID"), 10, 32)
		if err != nil {
			render.JSON(w, http.StatusBadRequest, errorBody(err))
			return
		}

		l, err := ctrl.GetLeague(r.Context(), int32(id))
		if err != nil {
			if errors.Is(err, db.ErrLeagueNotFound) {
				render.JSON(w, http.StatusNotFound, map[string]string{"error": "league not found"})
			} else {
				render.JSON(w, http.StatusInternalServerError, errorBody(err))
			}
			return
		}
		render.JSON(w, http.StatusOK, l)
	}
}

func importLeagueHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	type importRequest struct {
		SeasonID string `json:"season_id"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		var req importRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			render.JSON(w, http.StatusBadRequest, errorBody(err))
			return
		}
		if req.SeasonID == "" {
			render.JSON(w, http.StatusBadRequest, map[string]string{"error": "season_id must be provided"})
			return
		}

		if err := ctrl.ResolveLeagueHistory(r.Context(), req.SeasonID); err != nil {
			render.JSON(w, http.StatusInternalServerError, errorBody(err))
			return
		}
		render.JSON(w, http.StatusOK, map[string]string{"status": "imported"})
	}
}

func seasonStandingsHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		teams, err := ctrl.GetSeasonStandings(r.Context(), chi.URLParam(r, "seasonID"))
		if err != nil {
			render.JSON(w, http.StatusInternalServerError, errorBody(err))
			return
		}
		render.JSON(w, http.StatusOK, teams)
	}
}

func seasonResultsHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		week, err := strconv.Atoi(chi.URLParam(r, "week"))
		if err != nil {
			render.JSON(w, http.StatusBadRequest, errorBody(err))
			return
		}

		matchups, err := ctrl.GetSeasonResults(r.Context(), chi.URLParam(r, "seasonID"), week)
		if err != nil {
			render.JSON(w, http.StatusInternalServerError, errorBody(err))
			return
		}
		render.JSON(w, http.StatusOK, matchups)
	}
}

func seasonTransactionsHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		week, err := strconv.Atoi(chi.URLParam(r, "week"))
		if err != nil {
			render.JSON(w, http.StatusBadRequest, errorBody(err))
			return
		}

		transactions, err := ctrl.GetSeasonTransactions(r.Context(), chi.URLParam(r, "seasonID"), week)
		if err != nil {
			render.JSON(w, http.StatusInternalServerError, errorBody(err))
			return
		}
		render.JSON(w, http.StatusOK, transactions)
	}
}

func registerUserHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	type registerRequest struct {
		Username string `json:"username"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		var req registerRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			render.JSON(w, http.StatusBadRequest, errorBody(err))
			return
		}

		u, err := ctrl.RegisterUser(r.Context(), req.Username, req.Email, req.Password)
		if err != nil {
			if errors.Is(err, controller.ErrUnknownUsername) {
				render.JSON(w, http.StatusNotFound, errorBody(err))
			} else {
				render.JSON(w, http.StatusInternalServerError, errorBody(err))
			}
			return
		}

		// Kick off the league history import in the background. A failed
		// import must never block account creation.
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
			defer cancel()
			if err := ctrl.ImportLeaguesForUser(ctx, u.ID); err != nil {
				log.Printf("could not import league history for %s: %v", u.ID, err)
			}
		}()

		u.PasswordHash = ""
		render.JSON(w, http.StatusCreated, u)
	}
}

func errorBody(err error) map[string]string {
	return map[string]string{"error": err.Error()}
}
