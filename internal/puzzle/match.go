// internal/puzzle/match.go
//
// Match engine: turns a finished gesture's candidate word into an Outcome.
//
// Rules:
//   - Exact, case-sensitive string equality against the solution words.
//   - The first entry with that text that is still unfound wins, so a level
//     listing the same word twice needs it spelled twice.
//   - Only a new match mutates the Model (found false → true).

package puzzle

// Outcome is the result kind of evaluating a candidate word.
type Outcome string

const (
	OutcomeNoMatch        Outcome = "no_match"
	OutcomeAlreadyFound   Outcome = "already_found"
	OutcomeNewMatch       Outcome = "new_match"
	OutcomePuzzleComplete Outcome = "puzzle_complete"
)

// MatchResult is what Evaluate reports. Word and WordID are unset for
// OutcomeNoMatch.
type MatchResult struct {
	Outcome Outcome `json:"outcome"`
	Word    string  `json:"word,omitempty"`
	WordID  WordID  `json:"wordId"`
}

// Evaluate checks candidate against the solution words in m and marks a
// newly matched word as found.
func Evaluate(candidate string, m *Model) MatchResult {
	seen := -1
	for i := range m.words {
		w := &m.words[i]
		if w.Text != candidate {
			continue
		}
		if w.found {
			if seen < 0 {
				seen = i
			}
			continue
		}
		w.found = true
		res := MatchResult{Outcome: OutcomeNewMatch, Word: w.Text, WordID: WordID(i)}
		if m.Complete() {
			res.Outcome = OutcomePuzzleComplete
		}
		return res
	}
	if seen >= 0 {
		return MatchResult{Outcome: OutcomeAlreadyFound, Word: candidate, WordID: WordID(seen)}
	}
	return MatchResult{Outcome: OutcomeNoMatch, WordID: -1}
}
