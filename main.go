package main

import (
	"context"
	"database/sql"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordscramble/assets"
	"github.com/robalobadob/wordscramble/internal/accounts"
	"github.com/robalobadob/wordscramble/internal/config"
	"github.com/robalobadob/wordscramble/internal/db"
	"github.com/robalobadob/wordscramble/internal/dictionary"
	"github.com/robalobadob/wordscramble/internal/game"
	"github.com/robalobadob/wordscramble/internal/httpserver"
	"github.com/robalobadob/wordscramble/internal/store"
	"github.com/robalobadob/wordscramble/internal/words"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}
	setupLogging(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	conn, err := db.OpenMigrated(ctx, cfg.DBPath)
	if err != nil {
		log.Fatal().Err(err).Str("db", cfg.DBPath).Msg("failed to open database")
	}
	defer conn.Close()

	dict, err := buildDictionary(ctx, cfg, conn)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load dictionary")
	}

	// Without a candidate pool no game can start, so load it up front.
	pool := words.NewPool(words.SourceFor(cfg.StartWordsFile, assets.StartFile))
	if err := pool.Load(ctx); err != nil {
		log.Fatal().Err(err).Msg("failed to load word lists")
	}
	log.Info().Int("candidates", pool.Len()).Msg("candidate pool loaded")

	mem := store.NewMemoryStore()
	go sweepSessions(ctx, mem, cfg.SessionIdleTTL)

	srv := httpserver.New(httpserver.Deps{
		Store:    mem,
		Pool:     pool,
		Dict:     dict,
		Accounts: accounts.NewStore(conn),
		Config:   cfg,
		Logger:   log.Logger,
	})
	log.Info().Str("port", cfg.Port).Str("lang", cfg.Language).Msg("starting go-server")
	if err := srv.Start(":" + cfg.Port); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}

func setupLogging(cfg config.Config) {
	if lvl, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}
	if cfg.LogFormat == "console" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	}
}

// buildDictionary seeds the configured backend from the dictionary list.
func buildDictionary(ctx context.Context, cfg config.Config, conn *sql.DB) (game.Dictionary, error) {
	src := words.SourceFor(cfg.DictionaryFile, assets.DictionaryFile)

	if cfg.DictionaryBackend == config.BackendMemory {
		set := dictionary.NewSet()
		n, err := dictionary.Seed(ctx, set, cfg.Language, src)
		if err != nil {
			return nil, err
		}
		log.Info().Int("words", n).Str("backend", "memory").Msg("dictionary loaded")
		return set, nil
	}

	d := dictionary.NewSQLite(conn)
	added, err := dictionary.Seed(ctx, d, cfg.Language, src)
	if err != nil {
		return nil, err
	}
	total, err := d.Count(ctx, cfg.Language)
	if err != nil {
		return nil, err
	}
	log.Info().Int("added", added).Int("words", total).Str("backend", "sqlite").Msg("dictionary loaded")
	return d, nil
}

// sweepSessions drops idle sessions until ctx is done.
func sweepSessions(ctx context.Context, mem *store.Memory, maxIdle time.Duration) {
	t := time.NewTicker(10 * time.Minute)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-t.C:
			if n := mem.Sweep(now, maxIdle); n > 0 {
				log.Info().Int("sessions", n).Msg("swept idle sessions")
			}
		}
	}
}
