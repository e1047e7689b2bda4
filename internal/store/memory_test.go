package store

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/robalobadob/wordscramble/internal/game"
	"github.com/robalobadob/wordscramble/internal/words"
)

func newEngine() *game.Engine {
	return game.New(words.NewPool(words.StaticSource{"silkworm"}), nil, "en")
}

func TestMemorySaveGetDelete(t *testing.T) {
	m := NewMemoryStore()
	ctx := context.Background()

	s := NewSession("g1", "owner", newEngine())
	if err := m.Save(ctx, s); err != nil {
		t.Fatal(err)
	}
	got, err := m.Get(ctx, "g1")
	if err != nil || got != s {
		t.Fatalf("Get: %v, %v", got, err)
	}
	if m.Len() != 1 {
		t.Errorf("expected 1 session, got %d", m.Len())
	}

	if err := m.Delete(ctx, "g1"); err != nil {
		t.Fatal(err)
	}
	if _, err := m.Get(ctx, "g1"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestMemorySweep(t *testing.T) {
	m := NewMemoryStore()
	ctx := context.Background()
	now := time.Now()

	old := NewSession("old", "a", newEngine())
	old.Touch(now.Add(-2 * time.Hour))
	fresh := NewSession("fresh", "b", newEngine())
	fresh.Touch(now)
	_ = m.Save(ctx, old)
	_ = m.Save(ctx, fresh)

	if n := m.Sweep(now, time.Hour); n != 1 {
		t.Errorf("expected 1 swept, got %d", n)
	}
	if _, err := m.Get(ctx, "fresh"); err != nil {
		t.Error("fresh session was swept")
	}
	if _, err := m.Get(ctx, "old"); !errors.Is(err, ErrNotFound) {
		t.Error("old session survived sweep")
	}
}

func TestMemoryConcurrentAccess(t *testing.T) {
	m := NewMemoryStore()
	ctx := context.Background()
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			id := string(rune('a' + i))
			_ = m.Save(ctx, NewSession(id, "o", newEngine()))
			_, _ = m.Get(ctx, id)
		}(i)
	}
	wg.Wait()
	if m.Len() != 20 {
		t.Errorf("expected 20 sessions, got %d", m.Len())
	}
}
