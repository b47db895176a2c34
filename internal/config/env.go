package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Env carries process-level settings read from the environment.
type Env struct {
	Addr            string
	LogLevel        slog.Level
	ProviderURL     string
	ProviderKey     string
	ProviderModel   string
	ProviderTimeout time.Duration
	ProviderADC     bool
}

// ProviderConfigured reports whether the external policy has somewhere to go.
func (e Env) ProviderConfigured() bool {
	return e.ProviderURL != "" && (e.ProviderKey != "" || e.ProviderADC)
}

// LoadEnv reads an optional dotenv file and then the LANEWAR_* variables.
// A missing dotenv file is not an error.
func LoadEnv(dotenv string) (Env, error) {
	if dotenv != "" {
		if err := godotenv.Load(dotenv); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Env{}, fmt.Errorf("load %s: %w", dotenv, err)
		}
	}
	e := Env{
		Addr:            getenv("LANEWAR_ADDR", ":8080"),
		ProviderURL:     os.Getenv("LANEWAR_PROVIDER_URL"),
		ProviderKey:     os.Getenv("LANEWAR_PROVIDER_KEY"),
		ProviderModel:   getenv("LANEWAR_PROVIDER_MODEL", "gemini-2.5-flash"),
		ProviderTimeout: 5 * time.Second,
	}
	if v := os.Getenv("LANEWAR_PROVIDER_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return Env{}, fmt.Errorf("LANEWAR_PROVIDER_TIMEOUT: %w", err)
		}
		e.ProviderTimeout = d
	}
	switch strings.ToLower(os.Getenv("LANEWAR_PROVIDER_ADC")) {
	case "1", "true", "yes":
		e.ProviderADC = true
	}
	lvl, err := ParseLevel(getenv("LANEWAR_LOG_LEVEL", "info"))
	if err != nil {
		return Env{}, err
	}
	e.LogLevel = lvl
	return e, nil
}

func ParseLevel(s string) (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("log level %q: %w", s, err)
	}
	return l, nil
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
