// internal/level/level.go
//
// Level definition loading.
//
// Responsibilities:
//   - Read a level from a YAML file (LEVEL_FILE) or fall back to the
//     embedded default level.
//   - Reject malformed content at load time, before any player sees it.
//   - Build a puzzle.Model with letters placed on a ring.
//
// Level file shape:
//
//	name: gold
//	letters: [G, O, D, L]
//	words:
//	  - text: GOLD
//	    x: 0
//	    y: 0
//	    direction: H
//
// Words are matched exactly as written; no case folding is applied.

package level

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-yaml"

	"github.com/robalobadob/wordconnect/assets"
	"github.com/robalobadob/wordconnect/internal/layout"
	"github.com/robalobadob/wordconnect/internal/puzzle"
)

// Word is one solution word with its optional grid placement.
type Word struct {
	Text      string `yaml:"text"`
	X         *int   `yaml:"x,omitempty"`
	Y         *int   `yaml:"y,omitempty"`
	Direction string `yaml:"direction,omitempty"`
}

// Level is a parsed level definition.
type Level struct {
	Name    string   `yaml:"name"`
	Letters []string `yaml:"letters"`
	Words   []Word   `yaml:"words"`
}

// Load reads and validates the level at path.
func Load(path string) (*Level, error) {
	root, err := os.OpenRoot(filepath.Dir(path))
	if err != nil {
		return nil, fmt.Errorf("open level directory: %w", err)
	}
	defer func() { _ = root.Close() }()

	f, err := root.Open(filepath.Base(path))
	if err != nil {
		return nil, fmt.Errorf("open level: %w", err)
	}
	defer func() { _ = f.Close() }()

	lv, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return lv, nil
}

// Default returns the embedded level.
func Default() (*Level, error) {
	raw, err := assets.DefaultLevel()
	if err != nil {
		return nil, err
	}
	return Read(bytes.NewReader(raw))
}

// FromFileOrDefault loads path when set, otherwise the embedded level.
func FromFileOrDefault(path string) (*Level, error) {
	if path == "" {
		return Default()
	}
	return Load(path)
}

// Read decodes and validates a level from r.
func Read(r io.Reader) (*Level, error) {
	var lv Level
	if err := yaml.NewDecoder(r).Decode(&lv); err != nil {
		return nil, fmt.Errorf("decode level yaml: %w", err)
	}
	lv.Name = strings.TrimSpace(lv.Name)
	if lv.Name == "" {
		return nil, fmt.Errorf("%w: level has no name", puzzle.ErrInvalidLevel)
	}
	// Building a throwaway model runs every content check once, here.
	if _, err := lv.Build(layout.DefaultRing); err != nil {
		return nil, err
	}
	return &lv, nil
}

// Build creates a fresh puzzle.Model for one play-through.
func (lv *Level) Build(ring layout.Ring) (*puzzle.Model, error) {
	specs := make([]puzzle.WordSpec, len(lv.Words))
	for i, w := range lv.Words {
		p, err := w.placement()
		if err != nil {
			return nil, err
		}
		specs[i] = puzzle.WordSpec{Text: w.Text, Placement: p}
	}
	return puzzle.New(lv.Letters, specs, ring.Positions(len(lv.Letters)))
}

var errPartialPlacement = errors.New("placement needs x, y and direction together")

func (w Word) placement() (*puzzle.Placement, error) {
	if w.X == nil && w.Y == nil && w.Direction == "" {
		return nil, nil
	}
	if w.X == nil || w.Y == nil || w.Direction == "" {
		return nil, fmt.Errorf("%w: word %q: %w", puzzle.ErrInvalidLevel, w.Text, errPartialPlacement)
	}
	return &puzzle.Placement{
		X:         *w.X,
		Y:         *w.Y,
		Direction: puzzle.Direction(strings.ToUpper(w.Direction)),
	}, nil
}
