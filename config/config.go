// Package config loads diffcard settings from defaults, a config file,
// DIFFCARD_* environment variables, and command-line flags, in increasing
// order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fwojciec/diffcard/fs"
	"github.com/fwojciec/diffcard/gemini"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix is the prefix of environment variable overrides.
const EnvPrefix = "DIFFCARD"

// Keys.
const (
	KeyTheme            = "theme"
	KeyLayout           = "layout"
	KeyLanguage         = "language"
	KeyContextLines     = "context_lines"
	KeyMarkdown         = "markdown"
	KeyLink             = "link"
	KeyLogLevel         = "log.level"
	KeyLogFile          = "log.file"
	KeyLogFormat        = "log.format"
	KeyDescribe         = "describe.enabled"
	KeyDescribeModel    = "describe.model"
	KeyDescribeCacheDir = "describe.cache_dir"
	KeyDescribeParallel = "describe.concurrency"
	KeyWatchDebounce    = "watch.debounce"
)

// Config is the resolved configuration.
type Config struct {
	Theme        string `mapstructure:"theme"`
	Layout       string `mapstructure:"layout"`
	Language     string `mapstructure:"language"`
	ContextLines int    `mapstructure:"context_lines"`
	Markdown     bool   `mapstructure:"markdown"`
	Link         string `mapstructure:"link"`
	Log          struct {
		Level  string `mapstructure:"level"`
		File   string `mapstructure:"file"`
		Format string `mapstructure:"format"`
	} `mapstructure:"log"`
	Describe struct {
		Enabled     bool   `mapstructure:"enabled"`
		Model       string `mapstructure:"model"`
		CacheDir    string `mapstructure:"cache_dir"`
		Concurrency int    `mapstructure:"concurrency"`
	} `mapstructure:"describe"`
	Watch struct {
		Debounce time.Duration `mapstructure:"debounce"`
	} `mapstructure:"watch"`
}

// New returns a viper instance with defaults and environment overrides set.
func New() *viper.Viper {
	v := viper.New()
	v.SetDefault(KeyTheme, "dark")
	v.SetDefault(KeyLayout, "unified")
	v.SetDefault(KeyLanguage, "")
	v.SetDefault(KeyContextLines, 3)
	v.SetDefault(KeyMarkdown, true)
	v.SetDefault(KeyLink, "")
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyLogFile, fs.DefaultLogPath())
	v.SetDefault(KeyLogFormat, "text")
	v.SetDefault(KeyDescribe, false)
	v.SetDefault(KeyDescribeModel, gemini.DefaultModel)
	v.SetDefault(KeyDescribeCacheDir, fs.DefaultCacheDir())
	v.SetDefault(KeyDescribeParallel, 4)
	v.SetDefault(KeyWatchDebounce, fs.DefaultDebounce)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// BindFlags binds flags to keys. Only flags the user set override lower
// layers.
func BindFlags(v *viper.Viper, flags *pflag.FlagSet, keys map[string]string) error {
	for name, key := range keys {
		f := flags.Lookup(name)
		if f == nil {
			return fmt.Errorf("config: unknown flag %q", name)
		}
		if err := v.BindPFlag(key, f); err != nil {
			return fmt.Errorf("config: bind %s: %w", name, err)
		}
	}
	return nil
}

// Read reads the config file. With an explicit path the file must exist;
// otherwise config.{yaml,toml,json} is looked up in dir and its absence is
// not an error.
func Read(v *viper.Viper, path, dir string) error {
	if path != "" {
		v.SetConfigFile(expandTilde(path))
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(dir)
	}
	err := v.ReadInConfig()
	if err == nil {
		return nil
	}
	var notFound viper.ConfigFileNotFoundError
	if path == "" && errors.As(err, &notFound) {
		return nil
	}
	return fmt.Errorf("config: read %s: %w", describePath(v, path), err)
}

// Decode unmarshals v into a Config and checks it.
func Decode(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: decode: %w", err)
	}
	cfg.Log.File = expandTilde(cfg.Log.File)
	cfg.Describe.CacheDir = expandTilde(cfg.Describe.CacheDir)
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks values viper cannot type-check.
func (c Config) Validate() error {
	switch strings.ToLower(c.Theme) {
	case "dark", "light":
	default:
		return fmt.Errorf("config: %s: unknown theme %q (want dark or light)", KeyTheme, c.Theme)
	}
	switch strings.ToLower(c.Layout) {
	case "unified", "split":
	default:
		return fmt.Errorf("config: %s: unknown layout %q (want unified or split)", KeyLayout, c.Layout)
	}
	switch strings.ToLower(c.Log.Format) {
	case "", "text", "json":
	default:
		return fmt.Errorf("config: %s: unknown format %q (want text or json)", KeyLogFormat, c.Log.Format)
	}
	if c.ContextLines < 0 {
		return fmt.Errorf("config: %s: must not be negative, got %d", KeyContextLines, c.ContextLines)
	}
	if c.Watch.Debounce < 0 {
		return fmt.Errorf("config: %s: must not be negative, got %s", KeyWatchDebounce, c.Watch.Debounce)
	}
	if c.Describe.Concurrency < 0 {
		return fmt.Errorf("config: %s: must not be negative, got %d", KeyDescribeParallel, c.Describe.Concurrency)
	}
	return nil
}

func describePath(v *viper.Viper, path string) string {
	if used := v.ConfigFileUsed(); used != "" {
		return used
	}
	return path
}

func expandTilde(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}
