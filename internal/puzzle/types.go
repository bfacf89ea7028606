// internal/puzzle/types.go
//
// Core type definitions for the word-connect puzzle.
// Defines:
//   - LetterNode: a positioned glyph on the letter ring, addressed by LetterID.
//   - WordEntry:  a solution word plus its found flag, addressed by WordID.
//   - Model:      the arena holding every node and entry for one level.
//
// Nodes and entries are never shared by pointer outside the Model; the
// selection path and the match results refer to them by handle.

package puzzle

import (
	"errors"
	"fmt"
	"unicode/utf8"
)

// ErrInvalidLevel is returned when level content breaks a construction-time
// precondition (empty alphabet, multi-rune glyph, empty word, or a word that
// uses a glyph absent from the alphabet).
var ErrInvalidLevel = errors.New("invalid level")

// ErrUnknownLetter is returned when an inbound event names a letter handle
// that does not belong to the Model.
var ErrUnknownLetter = errors.New("unknown letter")

// LetterID is the stable handle of a LetterNode inside its Model.
type LetterID int

// WordID is the stable handle of a WordEntry inside its Model.
type WordID int

// Point is a 2D position on the board.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Direction of a word on the answer grid.
type Direction string

const (
	DirectionHorizontal Direction = "H"
	DirectionVertical   Direction = "V"
)

// Placement locates a word on the answer grid shown next to the ring.
// The match engine never reads it.
type Placement struct {
	X         int       `json:"x"`
	Y         int       `json:"y"`
	Direction Direction `json:"direction"`
}

// LetterNode is one glyph on the ring.
type LetterNode struct {
	Glyph    rune
	Position Point
	selected bool
}

// Selected reports whether the node is part of the live selection path.
func (n *LetterNode) Selected() bool { return n.selected }

// WordEntry is one solution word. Found only ever goes false → true.
type WordEntry struct {
	Text      string
	Placement *Placement
	found     bool
}

// Found reports whether the word has been matched.
func (w *WordEntry) Found() bool { return w.found }

// WordSpec is the construction input for a WordEntry.
type WordSpec struct {
	Text      string
	Placement *Placement
}

// Model is the fixed set of letters and words for one level.
type Model struct {
	letters []LetterNode
	words   []WordEntry
}

// New builds a Model from an ordered alphabet and the solution words.
// positions may be nil; otherwise it must have one entry per glyph.
//
// Level content is checked up front: a word that uses a glyph missing from
// the alphabet could never be matched, so the level is rejected instead.
func New(alphabet []string, words []WordSpec, positions []Point) (*Model, error) {
	if len(alphabet) == 0 {
		return nil, fmt.Errorf("%w: empty alphabet", ErrInvalidLevel)
	}
	if len(words) == 0 {
		return nil, fmt.Errorf("%w: no solution words", ErrInvalidLevel)
	}
	if positions != nil && len(positions) != len(alphabet) {
		return nil, fmt.Errorf("%w: %d positions for %d letters", ErrInvalidLevel, len(positions), len(alphabet))
	}

	m := &Model{
		letters: make([]LetterNode, len(alphabet)),
		words:   make([]WordEntry, len(words)),
	}
	glyphs := make(map[rune]struct{}, len(alphabet))
	for i, g := range alphabet {
		if utf8.RuneCountInString(g) != 1 {
			return nil, fmt.Errorf("%w: letter %d %q is not a single glyph", ErrInvalidLevel, i, g)
		}
		r, _ := utf8.DecodeRuneInString(g)
		m.letters[i].Glyph = r
		if positions != nil {
			m.letters[i].Position = positions[i]
		}
		glyphs[r] = struct{}{}
	}
	for i, w := range words {
		if w.Text == "" {
			return nil, fmt.Errorf("%w: word %d is empty", ErrInvalidLevel, i)
		}
		for _, r := range w.Text {
			if _, ok := glyphs[r]; !ok {
				return nil, fmt.Errorf("%w: word %q uses %q which is not on the board", ErrInvalidLevel, w.Text, r)
			}
		}
		if p := w.Placement; p != nil && p.Direction != DirectionHorizontal && p.Direction != DirectionVertical {
			return nil, fmt.Errorf("%w: word %q has direction %q", ErrInvalidLevel, w.Text, p.Direction)
		}
		m.words[i] = WordEntry{Text: w.Text, Placement: w.Placement}
	}
	return m, nil
}

// Letter returns the node for id, or nil if id is out of range.
func (m *Model) Letter(id LetterID) *LetterNode {
	if id < 0 || int(id) >= len(m.letters) {
		return nil
	}
	return &m.letters[id]
}

// Word returns the entry for id, or nil if id is out of range.
func (m *Model) Word(id WordID) *WordEntry {
	if id < 0 || int(id) >= len(m.words) {
		return nil
	}
	return &m.words[id]
}

// LetterCount is the number of letters on the ring.
func (m *Model) LetterCount() int { return len(m.letters) }

// WordCount is the total number of solution words.
func (m *Model) WordCount() int { return len(m.words) }

// FoundCount is the number of words already found.
func (m *Model) FoundCount() int {
	n := 0
	for i := range m.words {
		if m.words[i].found {
			n++
		}
	}
	return n
}

// Complete reports whether every word has been found.
func (m *Model) Complete() bool { return m.FoundCount() == len(m.words) }
