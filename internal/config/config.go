// Package config loads the editor settings shared by the binaries: defaults,
// then an optional YAML file, then a .env file and RESUMEGEN_* environment
// variables, then command-line flags.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-resumegen/pkg/model"
	"github.com/goliatone/go-resumegen/pkg/storage"
	"github.com/goliatone/go-resumegen/pkg/themes"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "RESUMEGEN_"

// Config holds runtime settings.
type Config struct {
	Addr          string        `yaml:"addr"`
	DataDir       string        `yaml:"dataDir"`
	StorageKey    string        `yaml:"storageKey"`
	PrefsKey      string        `yaml:"prefsKey"`
	AutoSaveDelay time.Duration `yaml:"autoSaveDelay"`
	ToastDuration time.Duration `yaml:"toastDuration"`
	DefaultFormat model.Format  `yaml:"defaultFormat"`
	Theme         string        `yaml:"theme"`
	QuotaBytes    int64         `yaml:"quotaBytes"`
	ShutdownGrace time.Duration `yaml:"shutdownGrace"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Addr:          "127.0.0.1:8080",
		StorageKey:    storage.DefaultDataKey,
		PrefsKey:      storage.DefaultPrefsKey,
		AutoSaveDelay: time.Second,
		ToastDuration: 3 * time.Second,
		DefaultFormat: model.FormatGeneral,
		Theme:         themes.DefaultTheme,
		QuotaBytes:    5 << 20,
		ShutdownGrace: 5 * time.Second,
	}
}

// LoadFile overlays the YAML document at path onto cfg. A missing file is
// not an error.
func LoadFile(cfg *Config, fsys fs.FS, path string) error {
	if cfg == nil {
		return errors.New("config: nil config")
	}
	if strings.TrimSpace(path) == "" {
		return nil
	}
	var (
		data []byte
		err  error
	)
	if fsys != nil {
		data, err = fs.ReadFile(fsys, path)
	} else {
		data, err = os.ReadFile(path)
	}
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("config: parse %s: %w", path, err)
	}
	return nil
}

// LoadDotEnv exports the variables of a .env file that are not already set.
// A missing file is not an error.
func LoadDotEnv(path string) error {
	if strings.TrimSpace(path) == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("config: load %s: %w", path, err)
	}
	return nil
}

// ApplyEnv overlays RESUMEGEN_* variables read through getenv.
func ApplyEnv(cfg *Config, getenv func(string) string) error {
	if cfg == nil {
		return errors.New("config: nil config")
	}
	if getenv == nil {
		getenv = os.Getenv
	}
	get := func(key string) string {
		return strings.TrimSpace(getenv(EnvPrefix + key))
	}

	if v := get("ADDR"); v != "" {
		cfg.Addr = v
	}
	if v := get("DATA_DIR"); v != "" {
		cfg.DataDir = v
	}
	if v := get("STORAGE_KEY"); v != "" {
		cfg.StorageKey = v
	}
	if v := get("PREFS_KEY"); v != "" {
		cfg.PrefsKey = v
	}
	if v := get("THEME"); v != "" {
		cfg.Theme = v
	}
	if v := get("DEFAULT_FORMAT"); v != "" {
		cfg.DefaultFormat = model.Format(v)
	}
	for key, target := range map[string]*time.Duration{
		"AUTOSAVE_DELAY": &cfg.AutoSaveDelay,
		"TOAST_DURATION": &cfg.ToastDuration,
		"SHUTDOWN_GRACE": &cfg.ShutdownGrace,
	} {
		v := get(key)
		if v == "" {
			continue
		}
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("config: %s%s: %w", EnvPrefix, key, err)
		}
		*target = d
	}
	if v := get("QUOTA_BYTES"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("config: %sQUOTA_BYTES: %w", EnvPrefix, err)
		}
		cfg.QuotaBytes = n
	}
	return nil
}

// RegisterFlags binds every setting to a flag on fs, using the current
// values of cfg as defaults.
func RegisterFlags(flags *flag.FlagSet, cfg *Config) {
	flags.StringVar(&cfg.Addr, "addr", cfg.Addr, "listen address")
	flags.StringVar(&cfg.DataDir, "data-dir", cfg.DataDir, "directory for stored data (memory only when empty)")
	flags.StringVar(&cfg.StorageKey, "storage-key", cfg.StorageKey, "storage key for the resume record")
	flags.StringVar(&cfg.PrefsKey, "prefs-key", cfg.PrefsKey, "storage key for editor preferences")
	flags.DurationVar(&cfg.AutoSaveDelay, "autosave-delay", cfg.AutoSaveDelay, "delay before edits are saved")
	flags.DurationVar(&cfg.ToastDuration, "toast-duration", cfg.ToastDuration, "how long notifications stay visible")
	flags.Func("format", "default preview format (general or company)", func(v string) error {
		cfg.DefaultFormat = model.Format(v)
		return nil
	})
	flags.StringVar(&cfg.Theme, "theme", cfg.Theme, "theme name")
	flags.Int64Var(&cfg.QuotaBytes, "quota-bytes", cfg.QuotaBytes, "storage quota in bytes (0 disables it)")
	flags.DurationVar(&cfg.ShutdownGrace, "shutdown-grace", cfg.ShutdownGrace, "graceful shutdown timeout")
}

// Validate normalises the format and rejects unusable values.
func (c *Config) Validate() error {
	format, err := model.ParseFormat(string(c.DefaultFormat))
	if err != nil {
		return fmt.Errorf("config: defaultFormat: %w", err)
	}
	c.DefaultFormat = format
	if c.AutoSaveDelay < 0 {
		return errors.New("config: autoSaveDelay must not be negative")
	}
	if c.ToastDuration <= 0 {
		return errors.New("config: toastDuration must be positive")
	}
	if c.QuotaBytes < 0 {
		return errors.New("config: quotaBytes must not be negative")
	}
	if strings.TrimSpace(c.StorageKey) == "" || strings.TrimSpace(c.PrefsKey) == "" {
		return errors.New("config: storage keys are required")
	}
	if c.StorageKey == c.PrefsKey {
		return errors.New("config: storageKey and prefsKey must differ")
	}
	return nil
}

// Load builds a Config for a binary: defaults, the YAML file named by
// -config, .env, the environment and finally the remaining flags.
func Load(name string, args []string) (Config, error) {
	cfg := Default()

	configPath := findConfigFlag(args)
	if err := LoadFile(&cfg, nil, configPath); err != nil {
		return Config{}, err
	}
	if err := LoadDotEnv(".env"); err != nil {
		return Config{}, err
	}
	if err := ApplyEnv(&cfg, os.Getenv); err != nil {
		return Config{}, err
	}

	flags := flag.NewFlagSet(name, flag.ContinueOnError)
	flags.String("config", configPath, "YAML config file")
	RegisterFlags(flags, &cfg)
	if err := flags.Parse(args); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func findConfigFlag(args []string) string {
	for i, arg := range args {
		name, value, hasValue := strings.Cut(strings.TrimLeft(arg, "-"), "=")
		if !strings.HasPrefix(arg, "-") || name != "config" {
			continue
		}
		if hasValue {
			return value
		}
		if i+1 < len(args) {
			return args[i+1]
		}
	}
	return os.Getenv(EnvPrefix + "CONFIG")
}
