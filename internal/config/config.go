// Package config resolves settings from defaults, a TOML file, LISTS_*
// environment variables and root flags, in that order of precedence.
package config

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
)

const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"

	DefaultBackend   = BackendFile
	DefaultTheme     = "classic"
	DefaultLogLevel  = "warn"
	DefaultLogFormat = "text"

	// SQLiteFile is the database name used inside DataDir.
	SQLiteFile = "lists.db"
)

// Config holds every user-tunable setting.
type Config struct {
	DataDir     string `toml:"data_dir"`
	Backend     string `toml:"backend"`
	Theme       string `toml:"theme"`
	LogLevel    string `toml:"log_level"`
	LogFormat   string `toml:"log_format"`
	HideChecked bool   `toml:"hide_checked"`

	// File is the config file that was read, if any.
	File string `toml:"-"`
}

// Load builds the configuration. fs receives the root flags and is parsed
// with args; callers read the remaining arguments from fs.Args().
func Load(fs *flag.FlagSet, args []string) (*Config, error) {
	if fs == nil {
		fs = flag.NewFlagSet("lists", flag.ContinueOnError)
	}
	var (
		configFile  = fs.String("config", "", "path to a TOML config file")
		dataDir     = fs.String("data-dir", "", "directory holding the list data")
		backend     = fs.String("backend", "", "storage backend: file or sqlite")
		theme       = fs.String("theme", "", "color theme: classic, neon or mono")
		logLevel    = fs.String("log-level", "", "debug, info, warn or error")
		logFormat   = fs.String("log-format", "", "text, json or logfmt")
		hideChecked = fs.Bool("hide-checked", false, "hide checked items in listings")
	)
	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("parsing flags: %w", err)
	}

	cfg := &Config{}
	setDefaults(cfg)

	path := *configFile
	if path == "" {
		path = os.Getenv("LISTS_CONFIG")
	}
	if path != "" {
		if err := loadConfigFile(cfg, expandPath(path)); err != nil {
			return nil, fmt.Errorf("loading config file %s: %w", path, err)
		}
	} else if p := findUserConfigFile(); p != "" {
		if err := loadConfigFile(cfg, p); err != nil {
			return nil, fmt.Errorf("loading config file %s: %w", p, err)
		}
	}

	if err := loadFromEnv(cfg); err != nil {
		return nil, err
	}

	// Flags win, but only the ones actually given.
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "data-dir":
			cfg.DataDir = *dataDir
		case "backend":
			cfg.Backend = *backend
		case "theme":
			cfg.Theme = *theme
		case "log-level":
			cfg.LogLevel = *logLevel
		case "log-format":
			cfg.LogFormat = *logFormat
		case "hide-checked":
			cfg.HideChecked = *hideChecked
		}
	})

	if err := finalizeConfig(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDefaults(cfg *Config) {
	cfg.DataDir = defaultDataDir()
	cfg.Backend = DefaultBackend
	cfg.Theme = DefaultTheme
	cfg.LogLevel = DefaultLogLevel
	cfg.LogFormat = DefaultLogFormat
}

func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".lists"
	}
	return filepath.Join(home, ".lists")
}

// findUserConfigFile looks in ~/.lists first, then the OS config directory.
func findUserConfigFile() string {
	var candidates []string
	if home, err := os.UserHomeDir(); err == nil {
		candidates = append(candidates, filepath.Join(home, ".lists", "config.toml"))
	}
	if dir, err := os.UserConfigDir(); err == nil {
		candidates = append(candidates, filepath.Join(dir, "lists", "config.toml"))
	}
	for _, p := range candidates {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

func loadConfigFile(cfg *Config, path string) error {
	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return err
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return fmt.Errorf("unknown keys: %s", strings.Join(keys, ", "))
	}
	cfg.File = path
	return nil
}

func loadFromEnv(cfg *Config) error {
	if v := os.Getenv("LISTS_DATA_DIR"); v != "" {
		cfg.DataDir = v
	}
	if v := os.Getenv("LISTS_BACKEND"); v != "" {
		cfg.Backend = v
	}
	if v := os.Getenv("LISTS_THEME"); v != "" {
		cfg.Theme = v
	}
	if v := os.Getenv("LISTS_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("LISTS_LOG_FORMAT"); v != "" {
		cfg.LogFormat = v
	}
	if v := os.Getenv("LISTS_HIDE_CHECKED"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("LISTS_HIDE_CHECKED: %w", err)
		}
		cfg.HideChecked = b
	}
	return nil
}

func finalizeConfig(cfg *Config) error {
	cfg.Backend = strings.ToLower(strings.TrimSpace(cfg.Backend))
	cfg.Theme = strings.ToLower(strings.TrimSpace(cfg.Theme))
	cfg.LogLevel = strings.ToLower(strings.TrimSpace(cfg.LogLevel))
	cfg.LogFormat = strings.ToLower(strings.TrimSpace(cfg.LogFormat))

	switch cfg.Backend {
	case BackendFile, BackendSQLite:
	default:
		return fmt.Errorf("backend %q: want %s or %s", cfg.Backend, BackendFile, BackendSQLite)
	}
	switch cfg.Theme {
	case "classic", "neon", "mono":
	default:
		return fmt.Errorf("theme %q: want classic, neon or mono", cfg.Theme)
	}
	if strings.TrimSpace(cfg.DataDir) == "" {
		return errors.New("data_dir is empty")
	}
	cfg.DataDir = expandPath(cfg.DataDir)
	return nil
}

// SQLitePath is where the sqlite backend keeps its database.
func (c *Config) SQLitePath() string {
	return filepath.Join(c.DataDir, SQLiteFile)
}

func expandPath(p string) string {
	p = os.ExpandEnv(p)
	if p == "~" || strings.HasPrefix(p, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return p
		}
		return filepath.Join(home, strings.TrimPrefix(p, "~"))
	}
	return p
}
