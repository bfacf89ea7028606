package puzzle

import "encoding/json"

// EventType names an outbound controller event.
type EventType string

const (
	EventSelectionChanged EventType = "selection_changed"
	EventWordAlreadyFound EventType = "word_already_found"
	EventWordNewlyFound   EventType = "word_newly_found"
	EventPuzzleCompleted  EventType = "puzzle_completed"
	EventNoMatch          EventType = "no_match"
)

// Event is a Listener call captured as data.
type Event struct {
	Type EventType  `json:"type"`
	Path []LetterID `json:"path"`
	Word string     `json:"word,omitempty"`
}

// MarshalJSON always writes a path for selection_changed, including the
// empty path sent after a reset, and omits it for every other type.
func (e Event) MarshalJSON() ([]byte, error) {
	type wire struct {
		Type EventType   `json:"type"`
		Path *[]LetterID `json:"path,omitempty"`
		Word string      `json:"word,omitempty"`
	}
	w := wire{Type: e.Type, Word: e.Word}
	if e.Type == EventSelectionChanged {
		path := e.Path
		if path == nil {
			path = []LetterID{}
		}
		w.Path = &path
	}
	return json.Marshal(w)
}

// Recorder is a Listener that appends every event it receives.
type Recorder struct {
	Events []Event
}

// Drain returns the recorded events and forgets them.
func (r *Recorder) Drain() []Event {
	out := r.Events
	r.Events = nil
	return out
}

func (r *Recorder) SelectionChanged(path []LetterID) {
	if path == nil {
		path = []LetterID{}
	}
	r.Events = append(r.Events, Event{Type: EventSelectionChanged, Path: path})
}

func (r *Recorder) WordAlreadyFound(word string) {
	r.Events = append(r.Events, Event{Type: EventWordAlreadyFound, Word: word})
}

func (r *Recorder) WordNewlyFound(word string) {
	r.Events = append(r.Events, Event{Type: EventWordNewlyFound, Word: word})
}

func (r *Recorder) PuzzleCompleted(finalWord string) {
	r.Events = append(r.Events, Event{Type: EventPuzzleCompleted, Word: finalWord})
}

func (r *Recorder) NoMatch() {
	r.Events = append(r.Events, Event{Type: EventNoMatch})
}
