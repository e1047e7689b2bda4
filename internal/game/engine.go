// internal/game/engine.go
//
// Core game engine for a single word scramble session.
// Responsibilities:
//   - Start (and restart) a session: reset score and used words, pick a root
//     word from the shared candidate pool.
//   - Validate submitted words in a fixed order: originality, then
//     constructibility from the root's letters, then the dictionary.
//   - Track the used-word ledger (most recent first) and the score.
//
// Notes:
//   - Rejections are returned as data (Outcome); the only error the engine
//     produces is a wrapped words.ErrPoolLoad from StartGame.
//   - One mutex serializes every operation so the HTTP layer can share an
//     Engine across requests.
//   - Before the first StartGame the root is empty, so every non-empty word is
//     rejected as not constructible.
package game

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const (
	// fallbackRoot is only used if a loaded pool somehow yields nothing.
	fallbackRoot  = "silkworm"
	minWordLength = 2
)

// Engine owns one session: root word, used words and score.
type Engine struct {
	mu sync.Mutex

	pool  Pool
	dict  Dictionary
	lang  string
	caser cases.Caser // not safe for concurrent use; guarded by mu

	root   string
	used   []string            // display-cased, most recent first
	seen   map[string]struct{} // lowercase forms of used
	score  int
	notice Notice
}

// New constructs an engine bound to a shared pool and dictionary.
// lang is the BCP 47 tag passed to the dictionary and used for display casing.
func New(pool Pool, dict Dictionary, lang string) *Engine {
	tag := language.Make(lang)
	return &Engine{
		pool:  pool,
		dict:  dict,
		lang:  lang,
		caser: cases.Title(tag),
		seen:  make(map[string]struct{}),
	}
}

// StartGame resets the session and picks a new root word.
// The pool is loaded on first use; a load failure wraps words.ErrPoolLoad
// and must be treated as fatal by the caller.
func (e *Engine) StartGame(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.score = 0
	e.used = nil
	e.seen = make(map[string]struct{})
	e.notice = Notice{}

	if err := e.pool.Load(ctx); err != nil {
		return fmt.Errorf("start game: %w", err)
	}
	root := e.pool.Random()
	if root == "" {
		root = fallbackRoot
	}
	e.root = strings.ToLower(root)
	return nil
}

// SubmitWord validates raw against the current root and, if it passes every
// check, records it and adds its length to the score.
//
// Checks run in this order and stop at the first failure:
//   1. originality      → ReasonAlreadyUsed
//   2. constructibility → ReasonNotConstructible
//   3. dictionary       → ReasonNotAWord
//
// Empty input returns ReasonEmpty without touching state or the notice.
func (e *Engine) SubmitWord(raw string) Outcome {
	word := strings.ToLower(strings.TrimSpace(raw))
	if word == "" {
		return Outcome{Reason: ReasonEmpty}
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if reason := e.check(word); reason != ReasonNone {
		if n, ok := noticeFor(reason); ok {
			e.notice = n
		}
		return Outcome{Reason: reason, Word: word}
	}

	e.used = append([]string{e.caser.String(word)}, e.used...)
	e.seen[word] = struct{}{}
	e.score += utf8.RuneCountInString(word)
	return Outcome{Accepted: true, Word: word}
}

// check runs the validation pipeline. Caller holds mu.
func (e *Engine) check(word string) Reason {
	if !e.isOriginal(word) {
		return ReasonAlreadyUsed
	}
	if !Constructible(word, e.root) {
		return ReasonNotConstructible
	}
	if !e.isReal(word) {
		return ReasonNotAWord
	}
	return ReasonNone
}

// isOriginal rejects the root itself and anything already accepted.
func (e *Engine) isOriginal(word string) bool {
	if word == e.root {
		return false
	}
	_, used := e.seen[word]
	return !used
}

// isReal requires the minimum length and a dictionary match.
func (e *Engine) isReal(word string) bool {
	if utf8.RuneCountInString(word) < minWordLength {
		return false
	}
	if e.dict == nil {
		return false
	}
	return e.dict.IsValidWord(word, e.lang)
}

// Constructible reports whether word can be spelled from root's letters,
// using each letter of root at most as many times as it appears there.
// word must also be strictly shorter than root.
func Constructible(word, root string) bool {
	if utf8.RuneCountInString(word) >= utf8.RuneCountInString(root) {
		return false
	}
	remaining := make(map[rune]int, len(root))
	for _, r := range root {
		remaining[r]++
	}
	for _, r := range word {
		if remaining[r] == 0 {
			return false
		}
		remaining[r]--
	}
	return true
}

// RootWord returns the current root (lowercase).
func (e *Engine) RootWord() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.root
}

// UsedWords returns a copy of the accepted words, most recent first.
func (e *Engine) UsedWords() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]string(nil), e.used...)
}

// Score returns the sum of the lengths of all accepted words.
func (e *Engine) Score() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.score
}

// Language returns the tag used for dictionary lookups.
func (e *Engine) Language() string { return e.lang }

// Notice returns the pending notice, if any.
func (e *Engine) Notice() Notice {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.notice
}

// ClearNotice hides the pending notice once the UI has shown it.
func (e *Engine) ClearNotice() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.notice = Notice{}
}

// Snapshot returns all observable state in one consistent read.
func (e *Engine) Snapshot() Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	used := make([]string, len(e.used))
	copy(used, e.used)
	return Snapshot{
		RootWord:  e.root,
		Title:     e.caser.String(e.root),
		UsedWords: used,
		Score:     e.score,
		Notice:    e.notice,
	}
}
