package words

import (
	"context"
	"errors"
	"testing"
)

// countingSource records how many times it was asked for words.
type countingSource struct {
	words []string
	err   error
	calls int
}

func (s *countingSource) LoadCandidateWords(context.Context) ([]string, error) {
	s.calls++
	return s.words, s.err
}

func TestPoolLoadsOnce(t *testing.T) {
	src := &countingSource{words: []string{"silkworm", "keyboard"}}
	p := NewPool(src)

	for i := 0; i < 3; i++ {
		if err := p.Load(context.Background()); err != nil {
			t.Fatalf("Load #%d: %v", i, err)
		}
	}
	if src.calls != 1 {
		t.Errorf("expected source to be called once, got %d", src.calls)
	}
	if p.Len() != 2 {
		t.Errorf("expected 2 words, got %d", p.Len())
	}
	if !p.Contains("keyboard") || p.Contains("absent") {
		t.Error("Contains gave wrong answer")
	}
}

func TestPoolLoadFailures(t *testing.T) {
	tests := []struct {
		name string
		src  *countingSource
	}{
		{name: "source error", src: &countingSource{err: errors.New("unreachable")}},
		{name: "empty result", src: &countingSource{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewPool(tt.src)
			err := p.Load(context.Background())
			if !errors.Is(err, ErrPoolLoad) {
				t.Fatalf("expected ErrPoolLoad, got %v", err)
			}
			// The failure is sticky; the source is not retried.
			if err2 := p.Load(context.Background()); !errors.Is(err2, ErrPoolLoad) {
				t.Errorf("expected cached ErrPoolLoad, got %v", err2)
			}
			if tt.src.calls != 1 {
				t.Errorf("expected one source call, got %d", tt.src.calls)
			}
			if p.Random() != "" {
				t.Error("expected empty Random on failed pool")
			}
		})
	}
}

func TestPoolRandom(t *testing.T) {
	p := NewPool(StaticSource{"alpha", "bravo", "charlie"}).WithPicker(func(n int) int { return n - 1 })
	if p.Random() != "" {
		t.Error("expected empty Random before Load")
	}
	if err := p.Load(context.Background()); err != nil {
		t.Fatal(err)
	}
	if got := p.Random(); got != "charlie" {
		t.Errorf("expected charlie, got %q", got)
	}

	// Out-of-range pickers are clamped instead of panicking.
	p.WithPicker(func(int) int { return 99 })
	if got := p.Random(); got != "alpha" {
		t.Errorf("expected alpha for out-of-range pick, got %q", got)
	}
}

func TestPoolRandomDefaultPickerStaysInPool(t *testing.T) {
	p := NewPool(StaticSource{"alpha", "bravo", "charlie"})
	if err := p.Load(context.Background()); err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 50; i++ {
		if w := p.Random(); !p.Contains(w) {
			t.Fatalf("Random returned %q which is not in the pool", w)
		}
	}
}
