package testutils

import (
	"embed"
	"fmt"
	"log"
	"net/http"
	"net/http/httptest"

	"github.com/go-chi/chi/v5"
)

//go:embed sleeperdata
var sleeperdata embed.FS

// Fixture ids shared by tests. The fixtures form a 3-season lineage
// C -> B -> A (C newest). Season C is a full 12-team season with two
// regular weeks, a 6-team playoff bracket, a 6-team consolation bracket,
// divisions, and a draft; A and B are minimal completed seasons.
const (
	SeasonIDA = "784462448236363776"
	SeasonIDB = "850087519862939648"
	SeasonIDC = "917263350804611072"
	DraftIDC  = "917263350804611073"

	// The member of season C whose handle tests register with.
	SleeperUserID = "300000000000000001"

	// The year the fake /user/{id}/leagues endpoint serves data for.
	LeaguesYear = "2025"
)

var leagueFixtures = map[string]string{
	SeasonIDA: "a",
	SeasonIDB: "b",
	SeasonIDC: "c",
}

type FakeSleeperServer struct {
	s *httptest.Server
}

func NewFakeSleeperServer() *FakeSleeperServer {
	r := chi.NewRouter()
	r.Route("/v1", func(r chi.Router) {
		r.Get("/players/nfl", nflPlayersHandler)

		r.Route("/user", func(r chi.Router) {
			r.Get("/{userID}/leagues/nfl/{year}", userLeaguesHandler)
			r.Get("/{username}", sleeperUserHandler)
		})

		r.Route("/league/{leagueID}", func(r chi.Router) {
			r.Get("/", leagueHandler)
			r.Get("/rosters", leagueFileHandler("rosters"))
			r.Get("/users", leagueFileHandler("users"))
			r.Get("/matchups/{week}", matchupsHandler)
			r.Get("/transactions/{week}", transactionsHandler)
			r.Get("/winners_bracket", leagueFileHandler("winners_bracket"))
			r.Get("/losers_bracket", leagueFileHandler("losers_bracket"))
		})

		r.Route("/draft/{draftID}", func(r chi.Router) {
			r.Get("/", draftHandler)
			r.Get("/picks", draftPicksHandler)
		})
	})

	return &FakeSleeperServer{
		s: httptest.NewServer(r),
	}
}

func (f *FakeSleeperServer) Close() {
	f.s.Close()
}

func (f *FakeSleeperServer) URL() string {
	return f.s.URL
}

func nflPlayersHandler(w http.ResponseWriter, r *http.Request) {
	serveFile(w, "players.json")
}

func userLeaguesHandler(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")
	year := chi.URLParam(r, "year")

	if userID == SleeperUserID && year == LeaguesYear {
		serveFile(w, "user_leagues.json")
	} else {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("[]"))
	}
}

func sleeperUserHandler(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")
	if username == "sleeperuser" {
		serveFile(w, "sleeperuser.json")
	} else {
		// requesting a user that doesn't exist returns a 200 with "null" as the response body
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("null"))
	}
}

func leagueHandler(w http.ResponseWriter, r *http.Request) {
	suffix, ok := leagueFixtures[chi.URLParam(r, "leagueID")]
	if !ok {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	serveFile(w, fmt.Sprintf("league_%s.json", suffix))
}

// leagueFileHandler serves the per-league fixture for the given resource,
// or an empty list when the fixture file does not exist.
func leagueFileHandler(resource string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		suffix, ok := leagueFixtures[chi.URLParam(r, "leagueID")]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		serveFileOrEmptyList(w, fmt.Sprintf("%s_%s.json", resource, suffix))
	}
}

func matchupsHandler(w http.ResponseWriter, r *http.Request) {
	suffix, ok := leagueFixtures[chi.URLParam(r, "leagueID")]
	if !ok {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	name := fmt.Sprintf("matchups_%s_%s.json", suffix, chi.URLParam(r, "week"))
	serveFileOrEmptyList(w, name)
}

func transactionsHandler(w http.ResponseWriter, r *http.Request) {
	suffix, ok := leagueFixtures[chi.URLParam(r, "leagueID")]
	if !ok {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	name := fmt.Sprintf("transactions_%s_%s.json", suffix, chi.URLParam(r, "week"))
	serveFileOrEmptyList(w, name)
}

func draftHandler(w http.ResponseWriter, r *http.Request) {
	if chi.URLParam(r, "draftID") == DraftIDC {
		serveFile(w, "draft_c.json")
	} else {
		w.WriteHeader(http.StatusNotFound)
	}
}

func draftPicksHandler(w http.ResponseWriter, r *http.Request) {
	if chi.URLParam(r, "draftID") == DraftIDC {
		serveFile(w, "draft_picks_c.json")
	} else {
		w.WriteHeader(http.StatusNotFound)
	}
}

func serveFile(w http.ResponseWriter, name string) {
	b, err := sleeperdata.ReadFile(fmt.Sprintf("sleeperdata/%s", name))
	if err != nil {
		log.Printf("error reading sleeperdata/%s: %v", name, err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

func serveFileOrEmptyList(w http.ResponseWriter, name string) {
	b, err := sleeperdata.ReadFile(fmt.Sprintf("sleeperdata/%s", name))
	if err != nil {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("[]"))
		return
	}

	w.WriteHeader(http.StatusOK)
	w.Write(b)
}
