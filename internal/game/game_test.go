package game

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/wordconnect/internal/layout"
	"github.com/robalobadob/wordconnect/internal/level"
	"github.com/robalobadob/wordconnect/internal/puzzle"
)

func newGame(t *testing.T) *Game {
	t.Helper()
	lv, err := level.Default()
	require.NoError(t, err)
	g, err := New(lv, layout.DefaultRing)
	require.NoError(t, err)
	return g
}

func TestNewGameSnapshot(t *testing.T) {
	g := newGame(t)
	s := g.Snapshot()

	assert.NotEmpty(t, s.GameID)
	assert.Equal(t, "gold", s.Level)
	assert.Equal(t, StatusPlaying, s.Status)
	require.Len(t, s.Letters, 4)
	assert.Equal(t, "G", s.Letters[0].Glyph)
	assert.InDelta(t, 500, s.Letters[0].X, 1e-9)
	require.Len(t, s.Words, 4)
	assert.Equal(t, 4, s.Words[0].Length)
	assert.Empty(t, s.Words[0].Text, "unfound words stay hidden")
	assert.Equal(t, 0, s.FoundCount)
	assert.Equal(t, 4, s.Total)
	assert.Empty(t, s.Path)
}

func TestPressEnterRelease(t *testing.T) {
	g := newGame(t)

	u, err := g.Press(2) // D
	require.NoError(t, err)
	assert.Equal(t, []puzzle.Event{{Type: puzzle.EventSelectionChanged, Path: []puzzle.LetterID{2}}}, u.Events)
	assert.True(t, u.Snapshot.Letters[2].Selected)
	assert.Nil(t, u.Result)

	_, err = g.Enter(1) // O
	require.NoError(t, err)
	u, err = g.Enter(0) // G
	require.NoError(t, err)
	assert.Equal(t, []puzzle.LetterID{2, 1, 0}, u.Snapshot.Path)

	u = g.Release()
	require.NotNil(t, u.Result)
	assert.Equal(t, puzzle.OutcomeNewMatch, u.Result.Outcome)
	assert.Equal(t, []puzzle.Event{
		{Type: puzzle.EventWordNewlyFound, Word: "DOG"},
		{Type: puzzle.EventSelectionChanged, Path: []puzzle.LetterID{}},
	}, u.Events)
	assert.Equal(t, "DOG", u.Snapshot.Words[2].Text)
	assert.Equal(t, 1, u.Snapshot.FoundCount)
	assert.Equal(t, 1, g.Gestures())
	assert.False(t, u.JustCompleted)
}

func TestReleaseWithoutGesture(t *testing.T) {
	g := newGame(t)
	u := g.Release()
	assert.Nil(t, u.Result)
	assert.Empty(t, u.Events)
	assert.Equal(t, 0, g.Gestures())
}

func TestUnknownLetterLeavesNoEvents(t *testing.T) {
	g := newGame(t)
	_, err := g.Press(42)
	assert.ErrorIs(t, err, puzzle.ErrUnknownLetter)

	u, err := g.Press(0)
	require.NoError(t, err)
	assert.Len(t, u.Events, 1)
}

func TestSpellToCompletion(t *testing.T) {
	g := newGame(t)

	for _, w := range []string{"GOLD", "GOD", "DOG"} {
		u, err := g.Spell(w)
		require.NoError(t, err)
		require.NotNil(t, u.Result)
		assert.Equal(t, puzzle.OutcomeNewMatch, u.Result.Outcome, w)
	}

	u, err := g.Spell("OLG")
	require.NoError(t, err)
	assert.Equal(t, puzzle.OutcomeNoMatch, u.Result.Outcome)

	u, err = g.Spell("LOG")
	require.NoError(t, err)
	assert.Equal(t, puzzle.OutcomePuzzleComplete, u.Result.Outcome)
	assert.True(t, u.JustCompleted)
	assert.Equal(t, StatusCompleted, u.Snapshot.Status)
	assert.Equal(t, 5, u.Snapshot.Gestures)
	assert.Contains(t, u.Events, puzzle.Event{Type: puzzle.EventPuzzleCompleted, Word: "LOG"})

	_, err = g.Spell("GOX")
	assert.ErrorIs(t, err, puzzle.ErrUnknownLetter)
	assert.Equal(t, 5, g.Gestures())
}

func TestSpellRejectsRepeatedGlyph(t *testing.T) {
	g := newGame(t)

	for _, w := range []string{"GOOD", "GG", "DOLLG"} {
		u, err := g.Spell(w)
		assert.ErrorIs(t, err, puzzle.ErrUnknownLetter, w)
		assert.Nil(t, u.Result, w)
	}

	s := g.Snapshot()
	assert.Equal(t, 0, s.FoundCount)
	assert.Equal(t, 0, s.Gestures)
	assert.Empty(t, s.Path)
	for _, l := range s.Letters {
		assert.False(t, l.Selected, l.Glyph)
	}

	u, err := g.Spell("GOD")
	require.NoError(t, err)
	assert.Equal(t, puzzle.OutcomeNewMatch, u.Result.Outcome)
	assert.Equal(t, []puzzle.Event{
		{Type: puzzle.EventSelectionChanged, Path: []puzzle.LetterID{0}},
		{Type: puzzle.EventSelectionChanged, Path: []puzzle.LetterID{0, 1}},
		{Type: puzzle.EventSelectionChanged, Path: []puzzle.LetterID{0, 1, 2}},
		{Type: puzzle.EventWordNewlyFound, Word: "GOD"},
		{Type: puzzle.EventSelectionChanged, Path: []puzzle.LetterID{}},
	}, u.Events)
}

func TestConcurrentReleases(t *testing.T) {
	g := newGame(t)
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = g.Spell("GOD")
		}()
	}
	wg.Wait()

	s := g.Snapshot()
	assert.Equal(t, 1, s.FoundCount)
	assert.Equal(t, 8, s.Gestures)
	assert.Empty(t, s.Path)
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, "GoLd", Normalize("  GoLd\n"))
}
