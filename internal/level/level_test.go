package level

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/wordconnect/internal/layout"
	"github.com/robalobadob/wordconnect/internal/puzzle"
)

func TestDefault(t *testing.T) {
	lv, err := Default()
	require.NoError(t, err)

	assert.Equal(t, "gold", lv.Name)
	assert.Equal(t, []string{"G", "O", "D", "L"}, lv.Letters)
	require.Len(t, lv.Words, 4)
	assert.Equal(t, "GOLD", lv.Words[0].Text)

	m, err := lv.Build(layout.DefaultRing)
	require.NoError(t, err)
	assert.Equal(t, 4, m.LetterCount())
	assert.Equal(t, 4, m.WordCount())
	assert.Equal(t, &puzzle.Placement{X: 2, Y: 0, Direction: puzzle.DirectionHorizontal}, m.Word(2).Placement)
}

func TestBuildReturnsFreshModels(t *testing.T) {
	lv, err := Default()
	require.NoError(t, err)

	a, err := lv.Build(layout.DefaultRing)
	require.NoError(t, err)
	b, err := lv.Build(layout.DefaultRing)
	require.NoError(t, err)

	puzzle.Evaluate("GOD", a)
	assert.Equal(t, 1, a.FoundCount())
	assert.Equal(t, 0, b.FoundCount())
}

func TestRead_PlacementOptional(t *testing.T) {
	lv, err := Read(strings.NewReader(`
name: tiny
letters: [A, T]
words:
  - text: AT
  - text: TA
    x: 1
    y: 0
    direction: v
`))
	require.NoError(t, err)

	m, err := lv.Build(layout.DefaultRing)
	require.NoError(t, err)
	assert.Nil(t, m.Word(0).Placement)
	assert.Equal(t, puzzle.DirectionVertical, m.Word(1).Placement.Direction)
}

func TestRead_Rejects(t *testing.T) {
	cases := map[string]string{
		"missing glyph": "name: x\nletters: [G, O, D]\nwords:\n  - text: GOLD\n",
		"no name":       "letters: [A]\nwords:\n  - text: A\n",
		"no words":      "name: x\nletters: [A]\n",
		"long letter":   "name: x\nletters: [AB]\nwords:\n  - text: AB\n",
		"half placement": "name: x\nletters: [A]\nwords:\n  - text: A\n    x: 1\n",
	}
	for name, src := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Read(strings.NewReader(src))
			assert.ErrorIs(t, err, puzzle.ErrInvalidLevel)
		})
	}

	_, err := Read(strings.NewReader("name: [unclosed"))
	assert.Error(t, err)
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "level.yaml")
	require.NoError(t, os.WriteFile(path, []byte("name: ox\nletters: [O, X]\nwords:\n  - text: OX\n"), 0o644))

	lv, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "ox", lv.Name)

	lv, err = FromFileOrDefault(path)
	require.NoError(t, err)
	assert.Equal(t, "ox", lv.Name)

	lv, err = FromFileOrDefault("")
	require.NoError(t, err)
	assert.Equal(t, "gold", lv.Name)

	_, err = Load(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}
