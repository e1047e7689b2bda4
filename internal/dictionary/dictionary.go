// internal/dictionary/dictionary.go
//
// Dictionary oracles answering "is this a valid word in language L?".
//
// Two implementations share the same contract (game.Dictionary):
//   - Set:    in-memory word sets, one per base language.
//   - SQLite: rows in dictionary_words, one per (language, word).
//
// Language tags are matched on their base language, so "en", "en-US" and
// "en-GB" all resolve to the same list.

package dictionary

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"golang.org/x/text/language"

	"github.com/robalobadob/wordscramble/internal/words"
)

// Importer accepts a batch of words for a language.
type Importer interface {
	Import(ctx context.Context, lang string, list []string) (int, error)
}

// Seed loads src and imports it under lang. Returns how many words were new.
func Seed(ctx context.Context, imp Importer, lang string, src words.Source) (int, error) {
	list, err := src.LoadCandidateWords(ctx)
	if err != nil {
		return 0, fmt.Errorf("load dictionary: %w", err)
	}
	return imp.Import(ctx, lang, list)
}

// BaseLanguage reduces a BCP 47 tag to its base language ("en-GB" → "en").
// Unparseable tags are lowercased and used verbatim.
func BaseLanguage(lang string) string {
	tag, err := language.Parse(lang)
	if err != nil {
		return strings.ToLower(strings.TrimSpace(lang))
	}
	base, _ := tag.Base()
	return base.String()
}

// Set is an in-memory dictionary.
type Set struct {
	mu    sync.RWMutex
	words map[string]map[string]struct{} // base language → words
}

// NewSet returns an empty Set.
func NewSet() *Set {
	return &Set{words: make(map[string]map[string]struct{})}
}

// Import adds words under lang, lowercased. Returns how many were new.
func (s *Set) Import(_ context.Context, lang string, list []string) (int, error) {
	base := BaseLanguage(lang)

	s.mu.Lock()
	defer s.mu.Unlock()
	set, ok := s.words[base]
	if !ok {
		set = make(map[string]struct{}, len(list))
		s.words[base] = set
	}
	added := 0
	for _, w := range list {
		w = strings.ToLower(strings.TrimSpace(w))
		if w == "" {
			continue
		}
		if _, dup := set[w]; !dup {
			set[w] = struct{}{}
			added++
		}
	}
	return added, nil
}

// IsValidWord reports whether word is in the list for lang.
func (s *Set) IsValidWord(word, lang string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.words[BaseLanguage(lang)][strings.ToLower(word)]
	return ok
}

// Len returns the number of words stored for lang.
func (s *Set) Len(lang string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.words[BaseLanguage(lang)])
}
