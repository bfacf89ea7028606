// internal/httpserver/routes_daily.go
//
// Daily leaderboard route:
//   - GET /daily/leaderboard → fastest completions of the active level for
//     today (or ?date=YYYY-MM-DD).
//
// Results are written by the release handler on the completing gesture;
// only the first completion per player and day counts.

package httpserver

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordconnect/internal/daily"
)

// mountDaily registers all /daily routes.
func (s *Server) mountDaily(r chi.Router) {
	r.Route("/daily", func(r chi.Router) {
		r.Get("/leaderboard", s.handleLeaderboard)
		r.Get("/today", s.handleToday)
	})
}

// lbRes is returned by /daily/leaderboard.
type lbRes struct {
	Date  string        `json:"date"`
	Level string        `json:"level"`
	Top   []daily.LBRow `json:"top"`
}

func (s *Server) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	if date == "" {
		date = daily.DateKey(s.now())
	} else if _, err := time.Parse("2006-01-02", date); err != nil {
		writeError(w, http.StatusBadRequest, "bad_date")
		return
	}
	rows, err := s.daily.Leaderboard(r.Context(), date, s.level.Name, 20)
	if err != nil {
		log.Error().Err(err).Msg("leaderboard")
		writeError(w, http.StatusInternalServerError, "server_error")
		return
	}
	writeJSON(w, http.StatusOK, lbRes{Date: date, Level: s.level.Name, Top: rows})
}

// todayRes tells the client whether the player already finished today.
type todayRes struct {
	Date      string `json:"date"`
	Level     string `json:"level"`
	Rotation  int    `json:"rotation"`
	Completed bool   `json:"completed"`
}

func (s *Server) handleToday(w http.ResponseWriter, r *http.Request) {
	now := s.now()
	date := daily.DateKey(now)
	done, err := s.daily.AlreadyCompleted(r.Context(), s.auth.PlayerID(w, r), date, s.level.Name)
	if err != nil {
		log.Warn().Err(err).Msg("already completed")
	}
	writeJSON(w, http.StatusOK, todayRes{
		Date:      date,
		Level:     s.level.Name,
		Rotation:  daily.RingRotation(now, s.salt, len(s.level.Letters)),
		Completed: done,
	})
}
