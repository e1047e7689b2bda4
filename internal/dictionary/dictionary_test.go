package dictionary

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/robalobadob/wordscramble/assets"
	"github.com/robalobadob/wordscramble/internal/db"
	"github.com/robalobadob/wordscramble/internal/game"
	"github.com/robalobadob/wordscramble/internal/words"
)

// Both oracles satisfy the engine's contract.
var (
	_ game.Dictionary = (*Set)(nil)
	_ game.Dictionary = (*SQLite)(nil)
)

func TestBaseLanguage(t *testing.T) {
	tests := map[string]string{
		"en":      "en",
		"en-GB":   "en",
		"EN-us":   "en",
		"fr-CA":   "fr",
		"!bogus!": "!bogus!",
	}
	for in, want := range tests {
		if got := BaseLanguage(in); got != want {
			t.Errorf("BaseLanguage(%q) = %q, want %q", in, got, want)
		}
	}
}

func newSQLite(t *testing.T) *SQLite {
	t.Helper()
	conn, err := db.OpenMigrated(context.Background(), filepath.Join(t.TempDir(), "dict.db"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = conn.Close() })
	return NewSQLite(conn)
}

type oracle interface {
	Importer
	game.Dictionary
}

func TestOracles(t *testing.T) {
	oracles := map[string]func(t *testing.T) oracle{
		"set":    func(*testing.T) oracle { return NewSet() },
		"sqlite": func(t *testing.T) oracle { return newSQLite(t) },
	}

	for name, mk := range oracles {
		t.Run(name, func(t *testing.T) {
			d := mk(t)
			ctx := context.Background()

			added, err := d.Import(ctx, "en", []string{"silk", "Worm", " milk ", "", "silk"})
			if err != nil {
				t.Fatalf("Import: %v", err)
			}
			if added != 3 {
				t.Errorf("expected 3 new words, got %d", added)
			}
			again, err := d.Import(ctx, "en-US", []string{"silk", "skim"})
			if err != nil {
				t.Fatal(err)
			}
			if again != 1 {
				t.Errorf("expected 1 new word on re-import, got %d", again)
			}

			tests := []struct {
				word, lang string
				want       bool
			}{
				{"silk", "en", true},
				{"worm", "en-GB", true},
				{"MILK", "en", true},
				{"skim", "en", true},
				{"xq", "en", false},
				{"silk", "fr", false},
			}
			for _, tt := range tests {
				if got := d.IsValidWord(tt.word, tt.lang); got != tt.want {
					t.Errorf("IsValidWord(%q, %q) = %v, want %v", tt.word, tt.lang, got, tt.want)
				}
			}
		})
	}
}

func TestSQLiteCount(t *testing.T) {
	d := newSQLite(t)
	ctx := context.Background()
	if _, err := d.Import(ctx, "en", []string{"a", "b", "c"}); err != nil {
		t.Fatal(err)
	}
	n, err := d.Count(ctx, "en-AU")
	if err != nil {
		t.Fatal(err)
	}
	if n != 3 {
		t.Errorf("expected 3, got %d", n)
	}
}

func TestSeedFromEmbeddedList(t *testing.T) {
	s := NewSet()
	n, err := Seed(context.Background(), s, "en", words.EmbeddedSource{Name: assets.DictionaryFile})
	if err != nil {
		t.Fatalf("Seed: %v", err)
	}
	if n == 0 || s.Len("en") != n {
		t.Errorf("expected seeded words, got n=%d len=%d", n, s.Len("en"))
	}
	for _, w := range []string{"silk", "worm", "milk"} {
		if !s.IsValidWord(w, "en") {
			t.Errorf("expected %q in the embedded dictionary", w)
		}
	}
}

func TestSeedPropagatesSourceError(t *testing.T) {
	_, err := Seed(context.Background(), NewSet(), "en", words.StaticSource{})
	if !errors.Is(err, words.ErrEmptyList) {
		t.Errorf("expected ErrEmptyList, got %v", err)
	}
}
