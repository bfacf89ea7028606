// internal/game/game.go
//
// A Game is one play-through of the active level.
// Responsibilities:
//   - Build a fresh puzzle.Model and gesture controller per game.
//   - Serialise inbound events (HTTP handlers may race on the same game).
//   - Buffer controller events per call and return them with a snapshot.
//   - Track gesture count and elapsed time for results.

package game

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordconnect/internal/layout"
	"github.com/robalobadob/wordconnect/internal/level"
	"github.com/robalobadob/wordconnect/internal/puzzle"
)

// Game holds a live puzzle and its controller.
type Game struct {
	ID      string
	Level   string
	Started time.Time

	mu         sync.Mutex
	model      *puzzle.Model
	ctrl       *puzzle.Controller
	rec        *puzzle.Recorder
	gestures   int
	finishedAt time.Time
}

// New starts a game on lv with letters placed on ring.
func New(lv *level.Level, ring layout.Ring) (*Game, error) {
	m, err := lv.Build(ring)
	if err != nil {
		return nil, err
	}
	g := &Game{
		ID:      uuid.NewString(),
		Level:   lv.Name,
		Started: time.Now(),
		model:   m,
		rec:     &puzzle.Recorder{},
	}
	logger := log.With().Str("game", g.ID).Logger()
	g.ctrl = puzzle.NewController(m, g.rec, puzzle.WithLogger(logger))
	return g, nil
}

// Press forwards a letter press.
func (g *Game) Press(id puzzle.LetterID) (Update, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if err := g.ctrl.OnLetterPressed(id); err != nil {
		g.rec.Drain()
		return Update{}, err
	}
	return g.update(nil, false), nil
}

// Enter forwards the pointer entering a letter.
func (g *Game) Enter(id puzzle.LetterID) (Update, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if err := g.ctrl.OnLetterEntered(id); err != nil {
		g.rec.Drain()
		return Update{}, err
	}
	return g.update(nil, false), nil
}

// Release ends the gesture. A release with no gesture in progress returns an
// Update without a Result.
func (g *Game) Release() Update {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.release()
}

func (g *Game) release() Update {
	res, ok := g.ctrl.OnGestureReleased()
	if !ok {
		return g.update(nil, false)
	}
	g.gestures++
	done := res.Outcome == puzzle.OutcomePuzzleComplete
	if done {
		g.finishedAt = time.Now()
		log.Info().Str("game", g.ID).Int("gestures", g.gestures).Msg("puzzle completed")
	}
	return g.update(&res, done)
}

// Spell runs a whole gesture from typed text: each rune presses or enters
// the first ring letter with that glyph not already on the path. A word
// that needs more copies of a glyph than the ring holds is rejected before
// any letter is pressed.
func (g *Game) Spell(word string) (Update, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	used := map[puzzle.LetterID]bool{}
	var ids []puzzle.LetterID
	for _, r := range word {
		id, ok := g.letterFor(r, used)
		if !ok {
			return Update{}, fmt.Errorf("%w: not enough %q on the board", puzzle.ErrUnknownLetter, r)
		}
		used[id] = true
		ids = append(ids, id)
	}
	for i, id := range ids {
		var err error
		if i == 0 {
			err = g.ctrl.OnLetterPressed(id)
		} else {
			err = g.ctrl.OnLetterEntered(id)
		}
		if err != nil {
			g.abandon()
			return Update{}, err
		}
	}
	return g.release(), nil
}

// abandon drops a half-built gesture without evaluating it.
func (g *Game) abandon() {
	g.ctrl.Abandon()
	g.rec.Drain()
}

func (g *Game) letterFor(r rune, used map[puzzle.LetterID]bool) (puzzle.LetterID, bool) {
	for i := 0; i < g.model.LetterCount(); i++ {
		id := puzzle.LetterID(i)
		if g.model.Letter(id).Glyph == r && !used[id] {
			return id, true
		}
	}
	return -1, false
}

// Snapshot returns the current board state.
func (g *Game) Snapshot() Snapshot {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.snapshot()
}

// Gestures is the number of completed gestures.
func (g *Game) Gestures() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.gestures
}

// Elapsed is the time from start to completion, or to now while playing.
func (g *Game) Elapsed() time.Duration {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.finishedAt.IsZero() {
		return time.Since(g.Started)
	}
	return g.finishedAt.Sub(g.Started)
}

func (g *Game) update(res *puzzle.MatchResult, done bool) Update {
	events := g.rec.Drain()
	if events == nil {
		events = []puzzle.Event{}
	}
	return Update{Events: events, Result: res, JustCompleted: done, Snapshot: g.snapshot()}
}

func (g *Game) snapshot() Snapshot {
	s := Snapshot{
		GameID:     g.ID,
		Level:      g.Level,
		Status:     StatusPlaying,
		Letters:    make([]LetterView, g.model.LetterCount()),
		Words:      make([]WordView, g.model.WordCount()),
		Path:       g.ctrl.Path(),
		FoundCount: g.model.FoundCount(),
		Total:      g.model.WordCount(),
		Gestures:   g.gestures,
	}
	if g.model.Complete() {
		s.Status = StatusCompleted
	}
	for i := range s.Letters {
		n := g.model.Letter(puzzle.LetterID(i))
		s.Letters[i] = LetterView{
			ID:       puzzle.LetterID(i),
			Glyph:    string(n.Glyph),
			X:        n.Position.X,
			Y:        n.Position.Y,
			Selected: n.Selected(),
		}
	}
	for i := range s.Words {
		w := g.model.Word(puzzle.WordID(i))
		v := WordView{
			ID:        puzzle.WordID(i),
			Length:    len([]rune(w.Text)),
			Found:     w.Found(),
			Placement: w.Placement,
		}
		if w.Found() {
			v.Text = w.Text
		}
		s.Words[i] = v
	}
	return s
}

// Normalize trims a typed word; case is kept because matching is exact.
func Normalize(word string) string { return strings.TrimSpace(word) }
