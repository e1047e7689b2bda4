// internal/game/types.go
//
// Core type definitions for the word scramble engine.
// Defines:
//   - Reason / Outcome: result of submitting a candidate word.
//   - Notice: the dismissible message shown after a rejection.
//   - Snapshot: observable session state for the presentation layer.
//   - Dictionary / Pool: collaborators the engine depends on.

package game

import "context"

// Reason explains why a candidate word was rejected.
type Reason string

const (
	ReasonNone             Reason = ""
	ReasonEmpty            Reason = "empty"
	ReasonAlreadyUsed      Reason = "already_used"
	ReasonNotConstructible Reason = "not_constructible"
	ReasonNotAWord         Reason = "not_a_word"
)

// Outcome is the result of SubmitWord: accepted, or rejected with a Reason.
type Outcome struct {
	Accepted bool   `json:"accepted"`
	Reason   Reason `json:"reason,omitempty"`
	Word     string `json:"word,omitempty"` // normalized candidate
}

// Notice is a transient user-facing message. The presentation layer clears
// it with ClearNotice once displayed.
type Notice struct {
	Title   string `json:"title"`
	Message string `json:"message"`
	Showing bool   `json:"showing"`
}

// noticeFor maps a rejection to its notice text. Empty input has none.
func noticeFor(r Reason) (Notice, bool) {
	switch r {
	case ReasonAlreadyUsed:
		return Notice{Title: "Word already used.", Message: "Be more original.", Showing: true}, true
	case ReasonNotConstructible:
		return Notice{Title: "Nope!!!", Message: "You can't just make em up, you know.", Showing: true}, true
	case ReasonNotAWord:
		return Notice{Title: "Woah!!!", Message: "That's not even a word.", Showing: true}, true
	}
	return Notice{}, false
}

// Snapshot is a copy of the session's observable state.
type Snapshot struct {
	RootWord  string   `json:"rootWord"`
	Title     string   `json:"title"` // display-cased root word
	UsedWords []string `json:"usedWords"`
	Score     int      `json:"score"`
	Notice    Notice   `json:"notice"`
}

// Dictionary answers whether word is valid in the given language.
// Implementations live in internal/dictionary.
type Dictionary interface {
	IsValidWord(word, language string) bool
}

// Pool is the shared candidate pool of root words (see words.Pool).
type Pool interface {
	Load(ctx context.Context) error
	Random() string
}
