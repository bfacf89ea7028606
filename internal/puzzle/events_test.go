package puzzle

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventJSON(t *testing.T) {
	rec := &Recorder{}
	rec.SelectionChanged([]LetterID{lG, lO})
	rec.SelectionChanged(nil)
	rec.WordNewlyFound("GOD")
	rec.NoMatch()

	want := []string{
		`{"type":"selection_changed","path":[0,1]}`,
		`{"type":"selection_changed","path":[]}`,
		`{"type":"word_newly_found","word":"GOD"}`,
		`{"type":"no_match"}`,
	}
	require.Len(t, rec.Events, len(want))
	for i, e := range rec.Events {
		b, err := json.Marshal(e)
		require.NoError(t, err)
		assert.JSONEq(t, want[i], string(b))
	}

	b, err := json.Marshal(Event{Type: EventSelectionChanged})
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"selection_changed","path":[]}`, string(b))
}
