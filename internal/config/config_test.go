package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	c, err := LoadFrom(map[string]string{})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.Port != "5175" {
		t.Errorf("expected default port 5175, got %q", c.Port)
	}
	if c.DictionaryBackend != BackendSQLite {
		t.Errorf("expected sqlite backend, got %q", c.DictionaryBackend)
	}
	if c.Language != "en" {
		t.Errorf("expected language en, got %q", c.Language)
	}
	if c.JWTExpires != 336*time.Hour {
		t.Errorf("expected 336h expiry, got %v", c.JWTExpires)
	}
}

func TestLoadOverrides(t *testing.T) {
	c, err := LoadFrom(map[string]string{
		"PORT":               "9000",
		"DICTIONARY_BACKEND": "memory",
		"GAME_LANGUAGE":      "en-GB",
		"REQUEST_TIMEOUT":    "3s",
	})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.Port != "9000" || c.DictionaryBackend != BackendMemory || c.Language != "en-GB" {
		t.Errorf("overrides not applied: %+v", c)
	}
	if c.RequestTimeout != 3*time.Second {
		t.Errorf("expected 3s timeout, got %v", c.RequestTimeout)
	}
}

func TestValidate(t *testing.T) {
	base := Config{
		DictionaryBackend: BackendMemory,
		Language:          "en",
		JWTSecret:         "s",
		JWTExpires:        time.Hour,
		SessionIdleTTL:    time.Hour,
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{name: "valid", mutate: func(*Config) {}},
		{name: "unknown backend", mutate: func(c *Config) { c.DictionaryBackend = "redis" }, wantErr: true},
		{name: "bad language", mutate: func(c *Config) { c.Language = "not a tag!" }, wantErr: true},
		{name: "empty secret", mutate: func(c *Config) { c.JWTSecret = "" }, wantErr: true},
		{name: "zero expiry", mutate: func(c *Config) { c.JWTExpires = 0 }, wantErr: true},
		{name: "zero idle ttl", mutate: func(c *Config) { c.SessionIdleTTL = 0 }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := base
			tt.mutate(&c)
			err := c.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestLoadRejectsUnknownBackend(t *testing.T) {
	if _, err := LoadFrom(map[string]string{"DICTIONARY_BACKEND": "redis"}); err == nil {
		t.Fatal("expected error for unknown backend")
	}
}
