// Package config loads application configuration from environment variables
// and an optional TOML file.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/ericfisherdev/gitexplorer/internal/application"
)

// StoreKind selects the KeyValueStore adapter.
type StoreKind string

// Supported stores.
const (
	StoreSQLite StoreKind = "sqlite"
	StoreBolt   StoreKind = "bolt"
)

// Defaults applied when neither the config file nor the environment set a value.
const (
	DefaultAPIBaseURL = "https://api.github.com/"
	DefaultStore      = StoreSQLite
	DefaultDBPath     = "gitexplorer.db"
	DefaultListenAddr = "127.0.0.1:8080"
	DefaultLocale     = application.LocaleEnglish
)

// Config holds the application configuration.
type Config struct {
	APIBaseURL string
	Store      StoreKind
	DBPath     string
	ListenAddr string
	Locale     application.Locale
	LogLevel   slog.Level
	// LogFile is where the TUI writes its logs. Empty discards them.
	LogFile string
}

// fileConfig mirrors the TOML file. Pointer fields distinguish absent keys from
// empty values.
type fileConfig struct {
	APIBaseURL *string `toml:"api_base_url"`
	Store      *string `toml:"store"`
	DBPath     *string `toml:"db_path"`
	ListenAddr *string `toml:"listen_addr"`
	Locale     *string `toml:"locale"`
	LogLevel   *string `toml:"log_level"`
	LogFile    *string `toml:"log_file"`
}

// Load builds a Config from defaults, then the TOML file named by
// GITEXPLORER_CONFIG_FILE (if set), then GITEXPLORER_* environment variables.
// Later sources win. Invalid values fail fast.
//
// Variables: GITEXPLORER_API_BASE_URL (https://api.github.com/),
// GITEXPLORER_STORE (sqlite|bolt, default sqlite), GITEXPLORER_DB_PATH
// (gitexplorer.db), GITEXPLORER_LISTEN_ADDR (127.0.0.1:8080),
// GITEXPLORER_LOCALE (en|pt-BR, default en), GITEXPLORER_LOG_LEVEL
// (debug|info|warn|error, default info), GITEXPLORER_LOG_FILE (empty).
func Load() (*Config, error) {
	raw := map[string]string{
		"api_base_url": DefaultAPIBaseURL,
		"store":        string(DefaultStore),
		"db_path":      DefaultDBPath,
		"listen_addr":  DefaultListenAddr,
		"locale":       string(DefaultLocale),
		"log_level":    "info",
		"log_file":     "",
	}

	if path, ok := os.LookupEnv("GITEXPLORER_CONFIG_FILE"); ok && path != "" {
		if err := applyFile(raw, path); err != nil {
			return nil, err
		}
	}

	for key := range raw {
		if v, ok := os.LookupEnv(envName(key)); ok {
			raw[key] = v
		}
	}

	return parse(raw)
}

func envName(key string) string {
	return "GITEXPLORER_" + strings.ToUpper(key)
}

func applyFile(raw map[string]string, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open config file %s: %w", path, err)
	}
	defer f.Close()

	var fc fileConfig
	if err := toml.NewDecoder(f).DisallowUnknownFields().Decode(&fc); err != nil {
		var strict *toml.StrictMissingError
		if errors.As(err, &strict) {
			return fmt.Errorf("config file %s has unknown keys:\n%s", path, strict.String())
		}
		return fmt.Errorf("decode config file %s: %w", path, err)
	}

	for key, v := range map[string]*string{
		"api_base_url": fc.APIBaseURL,
		"store":        fc.Store,
		"db_path":      fc.DBPath,
		"listen_addr":  fc.ListenAddr,
		"locale":       fc.Locale,
		"log_level":    fc.LogLevel,
		"log_file":     fc.LogFile,
	} {
		if v != nil {
			raw[key] = *v
		}
	}

	return nil
}

func parse(raw map[string]string) (*Config, error) {
	baseURL := raw["api_base_url"]
	u, err := url.Parse(baseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("%s must be an absolute http(s) URL, got %q", envName("api_base_url"), baseURL)
	}

	store := StoreKind(raw["store"])
	if store != StoreSQLite && store != StoreBolt {
		return nil, fmt.Errorf("%s must be %q or %q, got %q", envName("store"), StoreSQLite, StoreBolt, store)
	}

	if raw["db_path"] == "" {
		return nil, fmt.Errorf("%s must not be empty", envName("db_path"))
	}

	locale, err := application.ParseLocale(raw["locale"])
	if err != nil {
		return nil, fmt.Errorf("%s: %w", envName("locale"), err)
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(raw["log_level"])); err != nil {
		return nil, fmt.Errorf("%s has invalid level %q: %w", envName("log_level"), raw["log_level"], err)
	}

	return &Config{
		APIBaseURL: baseURL,
		Store:      store,
		DBPath:     raw["db_path"],
		ListenAddr: raw["listen_addr"],
		Locale:     locale,
		LogLevel:   level,
		LogFile:    raw["log_file"],
	}, nil
}
