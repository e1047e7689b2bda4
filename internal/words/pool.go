// internal/words/pool.go
//
// Process-wide candidate pool of root words.
//
// The pool asks its Source for words at most once (sync.Once) and keeps the
// result, or the failure, for the rest of the process. A failed load is the
// one unrecoverable condition of the game: without a pool no session can pick
// a root word, so callers are expected to terminate on ErrPoolLoad.

package words

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"sync"
)

// ErrPoolLoad marks a candidate pool that could not be populated.
var ErrPoolLoad = errors.New("words: candidate pool load failed")

// Picker returns an index in [0, n). n is always > 0.
type Picker func(n int) int

// Pool holds the candidate root words once loaded. Read-only after Load.
type Pool struct {
	src  Source
	pick Picker

	once  sync.Once
	words []string
	set   map[string]struct{}
	err   error
}

// NewPool builds an unloaded pool over src using crypto/rand for selection.
func NewPool(src Source) *Pool {
	return &Pool{src: src, pick: cryptoPick}
}

// WithPicker swaps the random index function; tests use it to pin choices.
func (p *Pool) WithPicker(pick Picker) *Pool {
	if pick != nil {
		p.pick = pick
	}
	return p
}

// Load populates the pool on first call. Later calls return the cached
// outcome without touching the Source again.
func (p *Pool) Load(ctx context.Context) error {
	p.once.Do(func() {
		list, err := p.src.LoadCandidateWords(ctx)
		if err != nil {
			p.err = fmt.Errorf("%w: %w", ErrPoolLoad, err)
			return
		}
		if len(list) == 0 {
			p.err = fmt.Errorf("%w: %w", ErrPoolLoad, ErrEmptyList)
			return
		}
		p.words = list
		p.set = make(map[string]struct{}, len(list))
		for _, w := range list {
			p.set[w] = struct{}{}
		}
	})
	return p.err
}

// Len returns the number of loaded words (0 before Load).
func (p *Pool) Len() int { return len(p.words) }

// Contains reports whether w is one of the loaded words.
func (p *Pool) Contains(w string) bool {
	_, ok := p.set[w]
	return ok
}

// Random returns a uniformly chosen word, or "" when the pool is empty.
func (p *Pool) Random() string {
	n := len(p.words)
	if n == 0 {
		return ""
	}
	i := p.pick(n)
	if i < 0 || i >= n {
		i = 0
	}
	return p.words[i]
}

// cryptoPick draws an unbiased index from crypto/rand.
func cryptoPick(n int) int {
	v, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		return 0
	}
	return int(v.Int64())
}
