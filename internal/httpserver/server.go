// internal/httpserver/server.go
//
// HTTP server wiring for the word-connect backend.
// Responsibilities:
//   - Router + middleware (JSON, CORS, timeouts, panic recovery, request IDs).
//   - Public endpoints: "/", "/health".
//   - Game endpoints (optional auth): new game, snapshot, press/enter/release.
//   - Daily leaderboard: mounted under /daily.
//   - Auth + profile/stat endpoints: /auth/*, /stats/me, /games/mine.
//   - Best-effort history rows in SQLite (live games stay in memory).
//
// Notes:
//   - CORS is origin-aware and credentials-enabled (so cookies work).
//   - Inbound gesture events map 1:1 onto the puzzle controller; each
//     response carries the outbound events it produced plus a snapshot.

package httpserver

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordconnect/internal/auth"
	"github.com/robalobadob/wordconnect/internal/daily"
	"github.com/robalobadob/wordconnect/internal/game"
	"github.com/robalobadob/wordconnect/internal/layout"
	"github.com/robalobadob/wordconnect/internal/level"
	"github.com/robalobadob/wordconnect/internal/puzzle"
	"github.com/robalobadob/wordconnect/internal/store"
)

// Deps are the collaborators a Server needs.
type Deps struct {
	Store        store.Store
	DB           *sql.DB
	Auth         *auth.Service
	Level        *level.Level
	DailySalt    string
	ClientOrigin string
	Timeout      time.Duration
	// Now defaults to time.Now.
	Now func() time.Time
}

// Server bundles router, in-memory game store, and DB handle.
type Server struct {
	r      *chi.Mux
	store  store.Store
	db     *sql.DB
	auth   *auth.Service
	daily  *daily.Store
	level  *level.Level
	salt   string
	origin string
	now    func() time.Time
}

// New constructs a Server, installs middleware, and registers routes.
func New(d Deps) *Server {
	s := &Server{
		r:      chi.NewRouter(),
		store:  d.Store,
		db:     d.DB,
		auth:   d.Auth,
		daily:  daily.NewStore(d.DB),
		level:  d.Level,
		salt:   d.DailySalt,
		origin: d.ClientOrigin,
		now:    d.Now,
	}
	if s.now == nil {
		s.now = time.Now
	}
	if s.origin == "" {
		s.origin = "http://localhost:5173"
	}
	timeout := d.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	// --- middleware ---
	s.r.Use(chimw.RequestID)
	s.r.Use(chimw.RealIP)
	s.r.Use(chimw.Recoverer)
	s.r.Use(chimw.Timeout(timeout))
	s.r.Use(jsonContentType)
	s.r.Use(s.cors)

	// --- diagnostics ---
	s.r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"service":"wordconnect","endpoints":["/health","POST /game/new","GET /game/{id}","POST /game/{id}/press","POST /game/{id}/enter","POST /game/{id}/release","POST /game/{id}/spell","/daily/leaderboard","/auth/*"]}`))
	})
	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"ok":true}`))
	})

	// Game endpoints: optional auth (guests can play)
	s.r.Group(func(r chi.Router) {
		r.Use(s.auth.Optional())
		r.Post("/game/new", s.handleNewGame)
		r.Route("/game/{id}", func(r chi.Router) {
			r.Get("/", s.handleSnapshot)
			r.Post("/press", s.handlePress)
			r.Post("/enter", s.handleEnter)
			r.Post("/release", s.handleRelease)
			r.Post("/spell", s.handleSpell)
		})
		s.mountDaily(r)
	})

	s.mountAuthRoutes()

	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not_found", "path": r.URL.Path})
	})

	return s
}

// Start begins serving HTTP on addr until ctx is cancelled.
func (s *Server) Start(ctx context.Context, addr string) error {
	srv := &http.Server{Addr: addr, Handler: s.r, ReadHeaderTimeout: 5 * time.Second}
	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()
	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

// Router exposes the internal router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }

// ----------------------------- middleware ----------------------------------

// jsonContentType sets a default JSON Content-Type header on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

// cors enables credentialed CORS for the configured client origin.
func (s *Server) cors(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Vary", "Origin")
		w.Header().Set("Access-Control-Allow-Origin", s.origin)
		w.Header().Set("Access-Control-Allow-Credentials", "true")
		w.Header().Set("Access-Control-Allow-Methods", "GET,POST,OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// ------------------------------ GAME ---------------------------------------

// handleNewGame starts a game on the active level with today's ring rotation
// and writes a best-effort history row for the player.
func (s *Server) handleNewGame(w http.ResponseWriter, r *http.Request) {
	ring := layout.DefaultRing
	ring.Rotation = daily.RingRotation(s.now(), s.salt, len(s.level.Letters))

	g, err := game.New(s.level, ring)
	if err != nil {
		log.Error().Err(err).Msg("build game")
		writeError(w, http.StatusInternalServerError, "level_invalid")
		return
	}
	if err := s.store.Save(r.Context(), g); err != nil {
		log.Error().Err(err).Msg("save game")
		writeError(w, http.StatusInternalServerError, "save_failed")
		return
	}

	now := s.now().UTC().Format(time.RFC3339)
	if me := auth.FromContext(r.Context()); me != nil {
		if _, err := s.db.ExecContext(r.Context(), `INSERT INTO games (id, user_id, level, started_at) VALUES (?,?,?,?)`,
			g.ID, me.ID, g.Level, now); err != nil {
			log.Warn().Err(err).Str("gameId", g.ID).Msg("insert user game row")
		}
		if _, err := s.db.ExecContext(r.Context(), `UPDATE users SET puzzles_played = puzzles_played + 1 WHERE id=?`, me.ID); err != nil {
			log.Warn().Err(err).Str("user", me.ID).Msg("bump played")
		}
	} else {
		anon := s.auth.EnsureAnonID(w, r)
		if _, err := s.db.ExecContext(r.Context(), `INSERT INTO games (id, anonymous_id, level, started_at) VALUES (?,?,?,?)`,
			g.ID, anon, g.Level, now); err != nil {
			log.Warn().Err(err).Str("gameId", g.ID).Msg("insert anon game row")
		}
	}

	writeJSON(w, http.StatusOK, g.Snapshot())
}

func (s *Server) handleSnapshot(w http.ResponseWriter, r *http.Request) {
	g, ok := s.lookup(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, g.Snapshot())
}

// letterReq is the body of press/enter.
type letterReq struct {
	LetterID *puzzle.LetterID `json:"letterId"`
}

func (s *Server) handlePress(w http.ResponseWriter, r *http.Request) {
	s.handleLetter(w, r, (*game.Game).Press)
}

func (s *Server) handleEnter(w http.ResponseWriter, r *http.Request) {
	s.handleLetter(w, r, (*game.Game).Enter)
}

func (s *Server) handleLetter(w http.ResponseWriter, r *http.Request, fn func(*game.Game, puzzle.LetterID) (game.Update, error)) {
	g, ok := s.lookup(w, r)
	if !ok {
		return
	}
	var req letterReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.LetterID == nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	u, err := fn(g, *req.LetterID)
	if errors.Is(err, puzzle.ErrUnknownLetter) {
		writeError(w, http.StatusBadRequest, "unknown_letter")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "gesture_failed")
		return
	}
	writeJSON(w, http.StatusOK, u)
}

func (s *Server) handleRelease(w http.ResponseWriter, r *http.Request) {
	g, ok := s.lookup(w, r)
	if !ok {
		return
	}
	u := g.Release()
	if u.Result != nil {
		s.recordGesture(w, r, g, u)
	}
	writeJSON(w, http.StatusOK, u)
}

// spellReq is the body of /spell, a whole gesture typed as text.
type spellReq struct {
	Word string `json:"word"`
}

func (s *Server) handleSpell(w http.ResponseWriter, r *http.Request) {
	g, ok := s.lookup(w, r)
	if !ok {
		return
	}
	var req spellReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	word := game.Normalize(req.Word)
	if word == "" {
		writeError(w, http.StatusBadRequest, "empty_word")
		return
	}
	u, err := g.Spell(word)
	if err != nil {
		writeError(w, http.StatusBadRequest, "unknown_letter")
		return
	}
	if u.Result != nil {
		s.recordGesture(w, r, g, u)
	}
	writeJSON(w, http.StatusOK, u)
}

// recordGesture updates the history row after a gesture and, on the
// completing gesture, stores the daily result and bumps user stats.
// Failures are logged, never surfaced.
func (s *Server) recordGesture(w http.ResponseWriter, r *http.Request, g *game.Game, u game.Update) {
	ctx := r.Context()
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		log.Warn().Err(err).Msg("begin history tx")
		return
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `UPDATE games SET gestures=?, words_found=? WHERE id=?`,
		u.Snapshot.Gestures, u.Snapshot.FoundCount, g.ID); err != nil {
		log.Warn().Err(err).Str("gameId", g.ID).Msg("update gestures")
	}

	if u.JustCompleted {
		now := s.now()
		if _, err := tx.ExecContext(ctx, `UPDATE games SET status=?, finished_at=? WHERE id=?`,
			string(game.StatusCompleted), now.UTC().Format(time.RFC3339), g.ID); err != nil {
			log.Warn().Err(err).Str("gameId", g.ID).Msg("finish game")
		}
		if me := auth.FromContext(ctx); me != nil {
			if _, err := tx.ExecContext(ctx, `UPDATE users SET puzzles_completed = puzzles_completed + 1 WHERE id=?`, me.ID); err != nil {
				log.Warn().Err(err).Str("user", me.ID).Msg("bump completed")
			}
		}
	}
	if err := tx.Commit(); err != nil {
		log.Warn().Err(err).Msg("commit history")
	}

	if u.JustCompleted {
		res := daily.Result{
			UserID:    s.auth.PlayerID(w, r),
			Date:      daily.DateKey(s.now()),
			Level:     g.Level,
			Gestures:  u.Snapshot.Gestures,
			ElapsedMs: g.Elapsed().Milliseconds(),
		}
		if err := s.daily.InsertResult(ctx, res); err != nil {
			log.Warn().Err(err).Str("gameId", g.ID).Msg("insert daily result")
		}
	}
}

func (s *Server) lookup(w http.ResponseWriter, r *http.Request) (*game.Game, bool) {
	g, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusNotFound, "not_found")
		return nil, false
	}
	return g, true
}

// ------------------------------- util --------------------------------------

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Warn().Err(err).Msg("encode response")
	}
}

func writeError(w http.ResponseWriter, status int, code string) {
	writeJSON(w, status, map[string]string{"error": code})
}
