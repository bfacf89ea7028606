package puzzle

import "strings"

// Selection is the ordered path of letters touched during one gesture.
// A letter appears in the path at most once; adjacency is not required.
type Selection struct {
	model *Model
	path  []LetterID
	in    map[LetterID]struct{}
	word  strings.Builder
}

// NewSelection returns an empty selection over m.
func NewSelection(m *Model) *Selection {
	return &Selection{model: m, in: make(map[LetterID]struct{})}
}

// Begin starts the path at id. The selection must be empty.
func (s *Selection) Begin(id LetterID) {
	s.add(id)
}

// Extend appends id unless it is already on the path. It reports whether
// the path changed.
func (s *Selection) Extend(id LetterID) bool {
	if _, ok := s.in[id]; ok {
		return false
	}
	s.add(id)
	return true
}

func (s *Selection) add(id LetterID) {
	n := s.model.Letter(id)
	n.selected = true
	s.path = append(s.path, id)
	s.in[id] = struct{}{}
	s.word.WriteRune(n.Glyph)
}

// CandidateWord is the glyphs of the path in order.
func (s *Selection) CandidateWord() string { return s.word.String() }

// Path returns a copy of the current path.
func (s *Selection) Path() []LetterID {
	out := make([]LetterID, len(s.path))
	copy(out, s.path)
	return out
}

// Len is the number of letters on the path.
func (s *Selection) Len() int { return len(s.path) }

// Reset deselects every letter on the path and empties it.
func (s *Selection) Reset() {
	for _, id := range s.path {
		s.model.Letter(id).selected = false
	}
	s.path = s.path[:0]
	clear(s.in)
	s.word.Reset()
}
