// Package config loads punchclock settings from PUNCHCLOCK_* environment
// variables.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/alexanderramin/punchclock/internal/export"
)

// Config is read once at startup and treated as immutable.
type Config struct {
	DBPath string

	// AdminPassphraseHash is a bcrypt hash. AdminPassphrase is only used
	// when no hash is configured.
	AdminPassphraseHash string
	AdminPassphrase     string

	LogUseCases  bool
	WeekStart    time.Weekday
	HTTPAddr     string
	ExportPrefix string

	// Failed-passphrase throttling for the HTTP API, per client.
	AuthRate  float64 // attempts per second
	AuthBurst int
}

// Default returns the configuration used when no variables are set. DBPath
// stays empty until resolved against the home directory by Load.
func Default() Config {
	return Config{
		WeekStart:    time.Sunday,
		HTTPAddr:     "127.0.0.1:8080",
		ExportPrefix: export.DefaultPrefix,
		AuthRate:     5.0 / 60.0,
		AuthBurst:    5,
	}
}

// Load reads configuration from the environment, falling back to defaults
// for unset or invalid values.
func Load() (Config, error) {
	return load(os.Getenv, os.UserHomeDir)
}

func load(getenv func(string) string, home func() (string, error)) (Config, error) {
	cfg := Default()

	cfg.DBPath = getenv("PUNCHCLOCK_DB")
	if cfg.DBPath == "" {
		dir, err := home()
		if err != nil {
			return Config{}, fmt.Errorf("finding home directory: %w", err)
		}
		cfg.DBPath = filepath.Join(dir, ".punchclock", "punchclock.db")
	}

	cfg.AdminPassphraseHash = getenv("PUNCHCLOCK_ADMIN_PASSPHRASE_HASH")
	cfg.AdminPassphrase = getenv("PUNCHCLOCK_ADMIN_PASSPHRASE")

	if v := getenv("PUNCHCLOCK_LOG_USE_CASES"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.LogUseCases = b
		}
	}
	if v := getenv("PUNCHCLOCK_WEEK_START"); v != "" {
		if d, ok := ParseWeekday(v); ok {
			cfg.WeekStart = d
		}
	}
	if v := getenv("PUNCHCLOCK_HTTP_ADDR"); v != "" {
		cfg.HTTPAddr = v
	}
	if v := getenv("PUNCHCLOCK_EXPORT_PREFIX"); v != "" {
		cfg.ExportPrefix = v
	}
	if v := getenv("PUNCHCLOCK_AUTH_RATE"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f > 0 {
			cfg.AuthRate = f
		}
	}
	if v := getenv("PUNCHCLOCK_AUTH_BURST"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.AuthBurst = n
		}
	}

	return cfg, nil
}

// ParseWeekday accepts "sunday" or "monday", case-insensitively.
func ParseWeekday(s string) (time.Weekday, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "sunday", "sun":
		return time.Sunday, true
	case "monday", "mon":
		return time.Monday, true
	}
	return time.Sunday, false
}
