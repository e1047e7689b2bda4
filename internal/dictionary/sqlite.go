package dictionary

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

const defaultLookupTimeout = 2 * time.Second

// SQLite is a dictionary backed by the dictionary_words table.
type SQLite struct {
	db      *sql.DB
	timeout time.Duration
}

// NewSQLite wraps a migrated database handle.
func NewSQLite(db *sql.DB) *SQLite {
	return &SQLite{db: db, timeout: defaultLookupTimeout}
}

// Import inserts words under lang in a single transaction. Existing rows are
// left alone. Returns how many rows were added.
func (d *SQLite) Import(ctx context.Context, lang string, list []string) (int, error) {
	base := BaseLanguage(lang)

	tx, err := d.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `INSERT OR IGNORE INTO dictionary_words(language, word) VALUES (?, ?)`)
	if err != nil {
		return 0, err
	}
	defer stmt.Close()

	added := 0
	for _, w := range list {
		w = strings.ToLower(strings.TrimSpace(w))
		if w == "" {
			continue
		}
		res, err := stmt.ExecContext(ctx, base, w)
		if err != nil {
			return 0, err
		}
		if n, _ := res.RowsAffected(); n > 0 {
			added++
		}
	}
	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return added, nil
}

// Count returns the number of words stored for lang.
func (d *SQLite) Count(ctx context.Context, lang string) (int, error) {
	var n int
	err := d.db.QueryRowContext(ctx,
		`SELECT COUNT(1) FROM dictionary_words WHERE language=?`, BaseLanguage(lang),
	).Scan(&n)
	return n, err
}

// IsValidWord looks the word up. Database errors are logged and count as
// "not a word" so a flaky lookup never accepts garbage.
func (d *SQLite) IsValidWord(word, lang string) bool {
	ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
	defer cancel()

	var one int
	err := d.db.QueryRowContext(ctx,
		`SELECT 1 FROM dictionary_words WHERE language=? AND word=?`,
		BaseLanguage(lang), strings.ToLower(word),
	).Scan(&one)
	switch {
	case err == nil:
		return true
	case err == sql.ErrNoRows:
		return false
	default:
		log.Error().Err(err).Str("word", word).Str("lang", lang).Msg("dictionary lookup")
		return false
	}
}
