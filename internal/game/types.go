// internal/game/types.go
//
// View types for a live game.
// Defines:
//   - LetterView / WordView: what a client may see of the board.
//   - Snapshot:  full board state, unfound word texts hidden.
//   - Update:    the outcome of one inbound gesture event.

package game

import "github.com/robalobadob/wordconnect/internal/puzzle"

// Status is a coarse game state.
type Status string

const (
	StatusPlaying   Status = "playing"
	StatusCompleted Status = "completed"
)

// LetterView is one ring letter as shown to the client.
type LetterView struct {
	ID       puzzle.LetterID `json:"id"`
	Glyph    string          `json:"glyph"`
	X        float64         `json:"x"`
	Y        float64         `json:"y"`
	Selected bool            `json:"selected"`
}

// WordView is one solution slot. Text is empty until the word is found.
type WordView struct {
	ID        puzzle.WordID     `json:"id"`
	Length    int               `json:"length"`
	Found     bool              `json:"found"`
	Text      string            `json:"text,omitempty"`
	Placement *puzzle.Placement `json:"placement,omitempty"`
}

// Snapshot is the client-facing board state.
type Snapshot struct {
	GameID     string            `json:"gameId"`
	Level      string            `json:"level"`
	Status     Status            `json:"status"`
	Letters    []LetterView      `json:"letters"`
	Words      []WordView        `json:"words"`
	Path       []puzzle.LetterID `json:"path"`
	FoundCount int               `json:"foundCount"`
	Total      int               `json:"total"`
	Gestures   int               `json:"gestures"`
}

// Update is returned by every inbound event.
type Update struct {
	Events []puzzle.Event `json:"events"`
	// Result is set only for a release that ended a gesture.
	Result *puzzle.MatchResult `json:"result,omitempty"`
	// JustCompleted is true on the single release that found the last word.
	JustCompleted bool     `json:"justCompleted"`
	Snapshot      Snapshot `json:"snapshot"`
}
