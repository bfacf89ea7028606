// internal/puzzle/controller.go
//
// Gesture controller for a single puzzle.
// Responsibilities:
//   - Accept the press / enter / release events forwarded by the input layer.
//   - Drive one Selection per gesture and evaluate it on release.
//   - Report selection changes and match outcomes to a Listener.
//
// States are Idle and Active. Enter and release while Idle are dropped with a
// debug log line. Every release resets the selection, matched or not.
//
// A Controller is not safe for concurrent use; callers serialise events.

package puzzle

import (
	"fmt"

	"github.com/rs/zerolog"
)

// Listener receives the outbound events of a Controller.
type Listener interface {
	SelectionChanged(path []LetterID)
	WordAlreadyFound(word string)
	WordNewlyFound(word string)
	PuzzleCompleted(finalWord string)
	NoMatch()
}

// State of the gesture state machine.
type State int

const (
	StateIdle State = iota
	StateActive
)

func (s State) String() string {
	if s == StateActive {
		return "active"
	}
	return "idle"
}

// Controller owns the begin/extend/end protocol for one Model.
type Controller struct {
	model    *Model
	listener Listener
	log      zerolog.Logger

	state   State
	session *Selection
}

// Option configures a Controller.
type Option func(*Controller)

// WithLogger sets the logger used for dropped-event diagnostics.
func WithLogger(l zerolog.Logger) Option {
	return func(c *Controller) { c.log = l }
}

// NewController returns an idle controller over m. A nil listener discards
// all events.
func NewController(m *Model, l Listener, opts ...Option) *Controller {
	if l == nil {
		l = nopListener{}
	}
	c := &Controller{
		model:    m,
		listener: l,
		log:      zerolog.Nop(),
		session:  NewSelection(m),
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// State reports whether a gesture is in progress.
func (c *Controller) State() State { return c.state }

// Model returns the puzzle the controller plays on.
func (c *Controller) Model() *Model { return c.model }

// Path returns the live selection path (empty when idle).
func (c *Controller) Path() []LetterID { return c.session.Path() }

// CandidateWord returns the word spelled by the live path.
func (c *Controller) CandidateWord() string { return c.session.CandidateWord() }

// OnLetterPressed starts a gesture at id. Pressing again before a release
// throws the live path away without evaluating it.
func (c *Controller) OnLetterPressed(id LetterID) error {
	if err := c.check(id); err != nil {
		return err
	}
	if c.state == StateActive {
		c.log.Debug().Int("letter", int(id)).Int("abandoned", c.session.Len()).Msg("press while active; restarting gesture")
		c.session.Reset()
	}
	c.state = StateActive
	c.session.Begin(id)
	c.listener.SelectionChanged(c.session.Path())
	return nil
}

// OnLetterEntered extends the live gesture with id.
func (c *Controller) OnLetterEntered(id LetterID) error {
	if err := c.check(id); err != nil {
		return err
	}
	if c.state != StateActive {
		c.log.Debug().Int("letter", int(id)).Msg("enter while idle; ignored")
		return nil
	}
	if c.session.Extend(id) {
		c.listener.SelectionChanged(c.session.Path())
	}
	return nil
}

// OnGestureReleased ends the live gesture, evaluates its word and reports
// the outcome. The returned bool is false when there was no gesture to end.
func (c *Controller) OnGestureReleased() (MatchResult, bool) {
	if c.state != StateActive {
		c.log.Debug().Msg("release while idle; ignored")
		return MatchResult{}, false
	}
	word := c.session.CandidateWord()
	res := Evaluate(word, c.model)
	switch res.Outcome {
	case OutcomeNoMatch:
		c.listener.NoMatch()
	case OutcomeAlreadyFound:
		c.listener.WordAlreadyFound(res.Word)
	case OutcomeNewMatch:
		c.listener.WordNewlyFound(res.Word)
	case OutcomePuzzleComplete:
		c.listener.PuzzleCompleted(res.Word)
	}
	c.log.Debug().Str("word", word).Str("outcome", string(res.Outcome)).Msg("gesture evaluated")

	c.session.Reset()
	c.state = StateIdle
	c.listener.SelectionChanged(nil)
	return res, true
}

// Abandon drops the live gesture without evaluating it. It is a no-op while
// idle.
func (c *Controller) Abandon() {
	if c.state != StateActive {
		return
	}
	c.session.Reset()
	c.state = StateIdle
	c.listener.SelectionChanged(nil)
}

func (c *Controller) check(id LetterID) error {
	if c.model.Letter(id) == nil {
		return fmt.Errorf("%w: %d", ErrUnknownLetter, id)
	}
	return nil
}

type nopListener struct{}

func (nopListener) SelectionChanged([]LetterID) {}
func (nopListener) WordAlreadyFound(string)     {}
func (nopListener) WordNewlyFound(string)       {}
func (nopListener) PuzzleCompleted(string)      {}
func (nopListener) NoMatch()                    {}
