// Package config loads the `.formcheck.yaml` project file used by the CLI.
// Command-line flags override values read here.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-formcheck/pkg/engine"
	"github.com/goliatone/go-formcheck/pkg/render"
)

// DefaultFile is the file name looked up when no explicit path is given.
const DefaultFile = ".formcheck.yaml"

// Config is the decoded project configuration.
type Config struct {
	Mode              string `yaml:"mode"`
	AutoFix           bool   `yaml:"autoFix"`
	MaxTopLevelFields int    `yaml:"maxTopLevelFields"`
	MaxLookupFields   int    `yaml:"maxLookupFields"`
	MinScore          int    `yaml:"minScore"`
	Format            string `yaml:"format"`

	Serve ServeConfig `yaml:"serve"`
	Watch WatchConfig `yaml:"watch"`
}

// ServeConfig configures `formcheck serve`.
type ServeConfig struct {
	Addr           string        `yaml:"addr"`
	CacheSize      int           `yaml:"cacheSize"`
	MaxBodyBytes   int64         `yaml:"maxBodyBytes"`
	ReadTimeout    time.Duration `yaml:"readTimeout"`
	DisableMetrics bool          `yaml:"disableMetrics"`
}

// WatchConfig configures `formcheck watch`.
type WatchConfig struct {
	Debounce time.Duration `yaml:"debounce"`
}

// Default returns the configuration used when no file exists.
func Default() Config {
	cfg := Config{}
	ApplyDefaults(&cfg)
	return cfg
}

// ApplyDefaults fills zero values.
func ApplyDefaults(cfg *Config) {
	if cfg.Mode == "" {
		cfg.Mode = string(engine.ModeStandard)
	}
	if cfg.MaxTopLevelFields == 0 {
		cfg.MaxTopLevelFields = 50
	}
	if cfg.MaxLookupFields == 0 {
		cfg.MaxLookupFields = 5
	}
	if cfg.Format == "" {
		cfg.Format = string(render.FormatText)
	}
	if cfg.Serve.Addr == "" {
		cfg.Serve.Addr = ":8080"
	}
	if cfg.Serve.CacheSize == 0 {
		cfg.Serve.CacheSize = 256
	}
	if cfg.Serve.MaxBodyBytes == 0 {
		cfg.Serve.MaxBodyBytes = 1 << 20
	}
	if cfg.Serve.ReadTimeout == 0 {
		cfg.Serve.ReadTimeout = 10 * time.Second
	}
	if cfg.Watch.Debounce == 0 {
		cfg.Watch.Debounce = 200 * time.Millisecond
	}
}

// Validate rejects values the CLI cannot act on.
func Validate(cfg *Config) error {
	var errs []error
	if _, err := engine.ParseMode(cfg.Mode); err != nil {
		errs = append(errs, err)
	}
	if _, err := render.ParseFormat(cfg.Format); err != nil {
		errs = append(errs, err)
	}
	if cfg.MinScore < 0 || cfg.MinScore > 100 {
		errs = append(errs, fmt.Errorf("config: minScore must be within 0-100, got %d", cfg.MinScore))
	}
	if cfg.MaxTopLevelFields < 0 {
		errs = append(errs, fmt.Errorf("config: maxTopLevelFields must not be negative"))
	}
	if cfg.MaxLookupFields < 0 {
		errs = append(errs, fmt.Errorf("config: maxLookupFields must not be negative"))
	}
	if cfg.Serve.CacheSize < 0 {
		errs = append(errs, fmt.Errorf("config: serve.cacheSize must not be negative"))
	}
	if cfg.Watch.Debounce < 0 {
		errs = append(errs, fmt.Errorf("config: watch.debounce must not be negative"))
	}
	return errors.Join(errs...)
}

// Load reads path, applies defaults and environment overrides, then
// validates the result. An empty path looks for DefaultFile in the working
// directory and falls back to Default when it does not exist.
func Load(path string) (Config, error) {
	explicit := path != ""
	if !explicit {
		path = DefaultFile
	}

	var cfg Config
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("config: parse %q: %w", path, err)
		}
	case !explicit && errors.Is(err, fs.ErrNotExist):
	default:
		return Config{}, fmt.Errorf("config: read %q: %w", path, err)
	}

	ApplyDefaults(&cfg)
	applyEnvOverrides(&cfg)
	if err := Validate(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// applyEnvOverrides reads FORMCHECK_* variables. Unparseable values are
// ignored.
func applyEnvOverrides(cfg *Config) {
	if val := os.Getenv("FORMCHECK_MODE"); val != "" {
		cfg.Mode = val
	}
	if val := os.Getenv("FORMCHECK_FORMAT"); val != "" {
		cfg.Format = val
	}
	if val := os.Getenv("FORMCHECK_MIN_SCORE"); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			cfg.MinScore = i
		}
	}
	if val := os.Getenv("FORMCHECK_SERVE_ADDR"); val != "" {
		cfg.Serve.Addr = val
	}
	if val := os.Getenv("FORMCHECK_WATCH_DEBOUNCE"); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			cfg.Watch.Debounce = d
		}
	}
}

// EngineOptions converts the file settings into engine options. Mode must
// already be valid.
func (c Config) EngineOptions() engine.Options {
	mode, _ := engine.ParseMode(c.Mode)
	return engine.Options{
		AutoFix:           c.AutoFix,
		Mode:              mode,
		MaxTopLevelFields: c.MaxTopLevelFields,
		MaxLookupFields:   c.MaxLookupFields,
	}
}

// RenderFormat returns the configured report format. Format must already be
// valid.
func (c Config) RenderFormat() render.Format {
	format, _ := render.ParseFormat(c.Format)
	return format
}
