package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	toml "github.com/pelletier/go-toml/v2"
)

// Config is the resolved application configuration.
type Config struct {
	DBPath              string
	LogPath             string
	LogLevel            string
	ReadingsDelay       time.Duration
	CatalogDelay        time.Duration
	PruneStalePractices bool
	Remote              Remote
}

// Remote describes where content is fetched from. PostgresDSN wins over URL.
type Remote struct {
	URL         string
	AnonKey     string
	PostgresDSN string
	Timeout     time.Duration
}

// Kind names the configured remote backend: "postgres", "rest" or "".
func (r Remote) Kind() string {
	switch {
	case r.PostgresDSN != "":
		return "postgres"
	case r.URL != "" && r.AnonKey != "":
		return "rest"
	default:
		return ""
	}
}

const (
	defaultConfigPath    = "~/.config/bkspace/config.toml"
	defaultDBPath        = "~/.config/bkspace/bkspace.db"
	defaultLogPath       = "~/.local/state/bkspace/bkspace.log"
	defaultLogLevel      = "info"
	defaultFallbackDelay = 300
	defaultTimeout       = 5
)

// env holds the environment overrides. Empty values leave the file value alone.
type env struct {
	RemoteURL   string `envconfig:"SUPABASE_URL"`
	AnonKey     string `envconfig:"SUPABASE_ANON_KEY"`
	PostgresDSN string `envconfig:"BKSPACE_PG_DSN"`
	DBPath      string `envconfig:"BKSPACE_DB_PATH"`
	LogLevel    string `envconfig:"BKSPACE_LOG_LEVEL"`
}

type fileConfig struct {
	DBPath              string `toml:"db_path"`
	LogPath             string `toml:"log_path"`
	LogLevel            string `toml:"log_level"`
	FallbackDelayMS     *int   `toml:"fallback_delay_ms"`
	PruneStalePractices bool   `toml:"prune_stale_practices"`
	Remote              struct {
		URL            string `toml:"url"`
		AnonKey        string `toml:"anon_key"`
		PostgresDSN    string `toml:"postgres_dsn"`
		TimeoutSeconds int    `toml:"timeout_seconds"`
	} `toml:"remote"`
}

// Load reads the config file at path (default location when empty), then
// applies environment overrides. A missing file yields defaults.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	var raw fileConfig
	bytes, err := readFile(resolved)
	if err != nil {
		return Config{}, err
	}
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	var e env
	if err := envconfig.Process("", &e); err != nil {
		return Config{}, fmt.Errorf("read environment: %w", err)
	}

	delayMS := defaultFallbackDelay
	if raw.FallbackDelayMS != nil && *raw.FallbackDelayMS >= 0 {
		delayMS = *raw.FallbackDelayMS
	}
	timeout := raw.Remote.TimeoutSeconds
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	cfg := Config{
		DBPath:              mustExpand(firstNonEmpty(e.DBPath, raw.DBPath, defaultDBPath)),
		LogPath:             mustExpand(firstNonEmpty(raw.LogPath, defaultLogPath)),
		LogLevel:            strings.ToLower(firstNonEmpty(e.LogLevel, raw.LogLevel, defaultLogLevel)),
		ReadingsDelay:       time.Duration(delayMS) * time.Millisecond,
		CatalogDelay:        time.Duration(delayMS*2/3) * time.Millisecond,
		PruneStalePractices: raw.PruneStalePractices,
		Remote: Remote{
			URL:         firstNonEmpty(e.RemoteURL, raw.Remote.URL),
			AnonKey:     firstNonEmpty(e.AnonKey, raw.Remote.AnonKey),
			PostgresDSN: firstNonEmpty(e.PostgresDSN, raw.Remote.PostgresDSN),
			Timeout:     time.Duration(timeout) * time.Second,
		},
	}
	return cfg, nil
}

func readFile(path string) ([]byte, error) {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return bytes, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
