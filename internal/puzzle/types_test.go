package puzzle

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_RejectsBadLevels(t *testing.T) {
	cases := []struct {
		name      string
		alphabet  []string
		words     []WordSpec
		positions []Point
	}{
		{name: "empty alphabet", words: []WordSpec{{Text: "A"}}},
		{name: "no words", alphabet: []string{"A"}},
		{name: "multi glyph letter", alphabet: []string{"AB"}, words: []WordSpec{{Text: "A"}}},
		{name: "empty letter", alphabet: []string{""}, words: []WordSpec{{Text: "A"}}},
		{name: "empty word", alphabet: []string{"A"}, words: []WordSpec{{Text: ""}}},
		{name: "glyph not on board", alphabet: []string{"G", "O", "D"}, words: []WordSpec{{Text: "GOLD"}}},
		{name: "case differs", alphabet: []string{"G", "O", "D"}, words: []WordSpec{{Text: "god"}}},
		{name: "position count", alphabet: []string{"A", "B"}, words: []WordSpec{{Text: "AB"}}, positions: []Point{{}}},
		{name: "bad direction", alphabet: []string{"A"}, words: []WordSpec{{Text: "A", Placement: &Placement{Direction: "D"}}}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			m, err := New(tc.alphabet, tc.words, tc.positions)
			assert.Nil(t, m)
			assert.ErrorIs(t, err, ErrInvalidLevel)
		})
	}
}

func TestNew_KeepsOrderAndPositions(t *testing.T) {
	pos := []Point{{X: 1, Y: 2}, {X: 3, Y: 4}, {X: 5, Y: 6}}
	m, err := New([]string{"É", "T", "É"}, []WordSpec{{Text: "ÉTÉ"}}, pos)
	require.NoError(t, err)

	require.Equal(t, 3, m.LetterCount())
	assert.Equal(t, 'É', m.Letter(0).Glyph)
	assert.Equal(t, 'T', m.Letter(1).Glyph)
	assert.Equal(t, Point{X: 5, Y: 6}, m.Letter(2).Position)
	assert.False(t, m.Letter(0).Selected())
	assert.Nil(t, m.Letter(3))
	assert.Nil(t, m.Word(1))
	assert.Equal(t, 1, m.WordCount())
	assert.False(t, m.Complete())
}

func TestSelection_PathAndReset(t *testing.T) {
	m := goldLevel(t)
	s := NewSelection(m)

	s.Begin(lL)
	assert.True(t, s.Extend(lO))
	assert.False(t, s.Extend(lL))
	assert.True(t, s.Extend(lG))
	assert.False(t, s.Extend(lO))

	assert.Equal(t, "LOG", s.CandidateWord())
	assert.Equal(t, []LetterID{lL, lO, lG}, s.Path())
	assert.False(t, m.Letter(lD).Selected())

	path := s.Path()
	path[0] = lD
	assert.Equal(t, []LetterID{lL, lO, lG}, s.Path(), "Path returns a copy")

	s.Reset()
	assert.Equal(t, 0, s.Len())
	assert.Equal(t, "", s.CandidateWord())
	for i := 0; i < m.LetterCount(); i++ {
		assert.False(t, m.Letter(LetterID(i)).Selected())
	}

	s.Begin(lL)
	assert.Equal(t, "L", s.CandidateWord())
}
