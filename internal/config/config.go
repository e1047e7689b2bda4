// internal/config/config.go
//
// Runtime configuration for the WordScramble server.
// Values come from the process environment (optionally seeded from a `.env`
// file by the caller) and are parsed into Config with caarlos0/env.
//
// Environment variables:
//   PORT                   listen port (default 5175)
//   LOG_LEVEL              zerolog level (default info)
//   LOG_FORMAT             "json" or "console" (default json)
//   DB_PATH                SQLite file (default ./data/wordscramble.db)
//   WORDS_START_FILE       newline-delimited root words; embedded list when empty
//   WORDS_DICTIONARY_FILE  newline-delimited dictionary; embedded list when empty
//   DICTIONARY_BACKEND     "sqlite" or "memory" (default sqlite)
//   GAME_LANGUAGE          BCP 47 tag used for dictionary lookups (default en)
//   JWT_SECRET             HS256 signing secret
//   JWT_EXPIRES            token lifetime (default 336h)
//   COOKIE_NAME            auth cookie name
//   CLIENT_ORIGIN          allowed CORS origin
//   SECURE_COOKIES         mark cookies Secure + SameSite=None
//   REQUEST_TIMEOUT        per-request handler timeout
//   SESSION_IDLE_TTL       idle game sessions are dropped after this long

package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"golang.org/x/text/language"
)

// Dictionary backends.
const (
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

// Config holds every tunable the server reads at startup.
type Config struct {
	Port      string `env:"PORT"       envDefault:"5175"`
	LogLevel  string `env:"LOG_LEVEL"  envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"json"`

	DBPath            string `env:"DB_PATH"               envDefault:"./data/wordscramble.db"`
	StartWordsFile    string `env:"WORDS_START_FILE"`
	DictionaryFile    string `env:"WORDS_DICTIONARY_FILE"`
	DictionaryBackend string `env:"DICTIONARY_BACKEND"    envDefault:"sqlite"`
	Language          string `env:"GAME_LANGUAGE"         envDefault:"en"`

	JWTSecret     string        `env:"JWT_SECRET"     envDefault:"dev_secret_change_me"`
	JWTExpires    time.Duration `env:"JWT_EXPIRES"    envDefault:"336h"`
	CookieName    string        `env:"COOKIE_NAME"    envDefault:"wordscramble_token"`
	ClientOrigin  string        `env:"CLIENT_ORIGIN"  envDefault:"http://localhost:5173"`
	SecureCookies bool          `env:"SECURE_COOKIES" envDefault:"false"`

	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"  envDefault:"10s"`
	SessionIdleTTL time.Duration `env:"SESSION_IDLE_TTL" envDefault:"24h"`
}

// Load parses the process environment into a Config and validates it.
func Load() (Config, error) {
	return LoadFrom(env.ToMap(os.Environ()))
}

// LoadFrom parses an explicit environment map. Tests use it to stay
// independent of the process environment.
func LoadFrom(environ map[string]string) (Config, error) {
	var c Config
	if err := env.ParseWithOptions(&c, env.Options{Environment: environ}); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Validate rejects values the server cannot run with.
func (c Config) Validate() error {
	switch c.DictionaryBackend {
	case BackendSQLite, BackendMemory:
	default:
		return fmt.Errorf("config: unknown DICTIONARY_BACKEND %q", c.DictionaryBackend)
	}
	if _, err := language.Parse(c.Language); err != nil {
		return fmt.Errorf("config: GAME_LANGUAGE: %w", err)
	}
	if c.JWTSecret == "" {
		return errors.New("config: JWT_SECRET must not be empty")
	}
	if c.JWTExpires <= 0 {
		return errors.New("config: JWT_EXPIRES must be positive")
	}
	if c.SessionIdleTTL <= 0 {
		return errors.New("config: SESSION_IDLE_TTL must be positive")
	}
	return nil
}
