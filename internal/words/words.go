// internal/words/words.go
//
// Word list sources for the game engine.
//
// Responsibilities:
//   - Define the Source contract: something that yields candidate root words.
//   - Provide FileSource (a newline-delimited file on disk) and EmbeddedSource
//     (lists compiled into the binary from the assets package).
//   - Parse newline-delimited lists into normalized lowercase words.
//
// List format:
//   One word per line. Lines are trimmed and lowercased; blank lines and lines
//   starting with "#" are skipped; entries containing non-letters are dropped.
//
// Environment:
//   WORDS_START_FILE=/path/to/start.txt selects a FileSource in FromConfig.

package words

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode"

	"github.com/robalobadob/wordscramble/assets"
)

// ErrEmptyList is returned when a list parses to zero usable words.
var ErrEmptyList = errors.New("words: list has no usable words")

// Source supplies the ordered sequence of candidate root words.
type Source interface {
	LoadCandidateWords(ctx context.Context) ([]string, error)
}

// FileSource reads a newline-delimited word list from disk.
type FileSource struct {
	Path string
}

// LoadCandidateWords opens Path and parses it.
func (s FileSource) LoadCandidateWords(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f, err := os.Open(s.Path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", s.Path, err)
	}
	defer f.Close()
	return ParseList(f)
}

// EmbeddedSource reads one of the lists compiled into the binary.
// The zero value reads the default start list.
type EmbeddedSource struct {
	Name string
}

// LoadCandidateWords parses the embedded list.
func (s EmbeddedSource) LoadCandidateWords(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	name := s.Name
	if name == "" {
		name = assets.StartFile
	}
	f, err := assets.Open(name)
	if err != nil {
		return nil, fmt.Errorf("open embedded %s: %w", name, err)
	}
	defer f.Close()
	return ParseList(f)
}

// SourceFor picks a FileSource when path is set and falls back to the
// embedded list named fallback otherwise.
func SourceFor(path, fallback string) Source {
	if path != "" {
		return FileSource{Path: path}
	}
	return EmbeddedSource{Name: fallback}
}

// StaticSource serves a fixed slice. Handy for tests and for callers that
// already hold a list in memory.
type StaticSource []string

// LoadCandidateWords returns a copy of the slice, normalized.
func (s StaticSource) LoadCandidateWords(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	out := make([]string, 0, len(s))
	for _, w := range s {
		if n, ok := normalize(w); ok {
			out = append(out, n)
		}
	}
	if len(out) == 0 {
		return nil, ErrEmptyList
	}
	return out, nil
}

// ParseList reads one word per line from r.
// Returns ErrEmptyList when nothing usable remains.
func ParseList(r io.Reader) ([]string, error) {
	var out []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		if w, ok := normalize(sc.Text()); ok {
			out = append(out, w)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, ErrEmptyList
	}
	return out, nil
}

// normalize trims and lowercases a raw line, rejecting comments, blanks
// and anything that is not purely letters.
func normalize(line string) (string, bool) {
	w := strings.ToLower(strings.TrimSpace(line))
	if w == "" || strings.HasPrefix(w, "#") {
		return "", false
	}
	if !isLetters(w) {
		return "", false
	}
	return w, true
}

// isLetters reports whether s consists only of Unicode letters.
func isLetters(s string) bool {
	for _, r := range s {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}
