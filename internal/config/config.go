package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"wheel-backtest/internal/data"
	"wheel-backtest/internal/model"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Config is the on-disk configuration shape (YAML).
type Config struct {
	Data    DataConfig  `yaml:"data"`
	Wheel   WheelConfig `yaml:"wheel"`
	Horizon string      `yaml:"horizon" validate:"omitempty,oneof=3M 6M 1Y 2Y 3Y ALL"`
	Log     LogConfig   `yaml:"log"`
	API     APIConfig   `yaml:"api"`
}

// DataConfig points at the daily price series: a local CSV/JSON file or a URL
// serving CSV. URL wins when both are set.
type DataConfig struct {
	Path    string        `yaml:"path"`
	URL     string        `yaml:"url" validate:"omitempty,url"`
	Timeout time.Duration `yaml:"timeout" validate:"gte=0"`
}

// WheelConfig holds the engine parameters. Percentages are decimal fractions.
// A nil field is unset; an explicit zero premium is kept.
type WheelConfig struct {
	InitialCapital *float64 `yaml:"initial_capital" validate:"omitempty,gt=0"`
	CallPremiumPct *float64 `yaml:"call_premium_pct" validate:"omitempty,gte=0"`
	PutPremiumPct  *float64 `yaml:"put_premium_pct" validate:"omitempty,gte=0"`
}

type LogConfig struct {
	Level    string `yaml:"level" validate:"omitempty,oneof=debug info warn error"`
	Encoding string `yaml:"encoding" validate:"omitempty,oneof=json console"`
}

type APIConfig struct {
	Port        int           `yaml:"port" validate:"gte=0,lte=65535"`
	CORSOrigins []string      `yaml:"cors_origins"`
	CacheTTL    time.Duration `yaml:"cache_ttl" validate:"gte=0"`
}

var validate = validator.New()

// Default returns the configuration used when no file is given.
func Default() *Config {
	c := &Config{}
	c.ApplyDefaults()
	return c
}

func Load(path string) (*Config, error) {
	c, err := LoadUnchecked(path)
	if err != nil {
		return nil, err
	}
	c.ApplyDefaults()
	if err := c.ApplyEnv(); err != nil {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// LoadUnchecked loads config but does not default or validate it.
// Useful for debugging/printing partial configs.
func LoadUnchecked(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var c Config
	if err := yaml.Unmarshal(raw, &c); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if c.Data.Path != "" && !filepath.IsAbs(c.Data.Path) {
		// Prefer interpreting relative paths as relative to the config file directory,
		// but fall back to the provided path (relative to cwd) if that doesn't exist.
		cand := filepath.Join(filepath.Dir(path), c.Data.Path)
		if _, err := os.Stat(cand); err == nil {
			c.Data.Path = cand
		}
	}
	return &c, nil
}

// ApplyDefaults fills zero-valued fields.
func (c *Config) ApplyDefaults() {
	c.Wheel = MergeWheel(WheelFromParams(model.DefaultWheelParams()), c.Wheel)
	if c.Horizon == "" {
		c.Horizon = string(model.HorizonAll)
	}
	if c.Data.Timeout == 0 {
		c.Data.Timeout = 30 * time.Second
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Encoding == "" {
		c.Log.Encoding = "console"
	}
	if c.API.Port == 0 {
		c.API.Port = 8080
	}
	if len(c.API.CORSOrigins) == 0 {
		c.API.CORSOrigins = []string{"*"}
	}
	if c.API.CacheTTL == 0 {
		c.API.CacheTTL = 10 * time.Minute
	}
}

// ApplyEnv applies WHEEL_API_PORT and WHEEL_LOG_LEVEL overrides.
func (c *Config) ApplyEnv() error {
	if v := os.Getenv("WHEEL_API_PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("WHEEL_API_PORT: %w", err)
		}
		c.API.Port = port
	}
	if v := os.Getenv("WHEEL_LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	return nil
}

func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("config invalid: %w", err)
	}
	return nil
}

func (w WheelConfig) Validate() error {
	if err := validate.Struct(w); err != nil {
		return fmt.Errorf("wheel params invalid: %w", err)
	}
	return nil
}

// ToModelParams resolves w, falling back to the engine defaults for unset
// fields.
func (w WheelConfig) ToModelParams() model.WheelParams {
	p := model.DefaultWheelParams()
	if w.InitialCapital != nil {
		p.InitialCapital = *w.InitialCapital
	}
	if w.CallPremiumPct != nil {
		p.CallPremiumPct = *w.CallPremiumPct
	}
	if w.PutPremiumPct != nil {
		p.PutPremiumPct = *w.PutPremiumPct
	}
	return p
}

// WheelFromParams returns a WheelConfig with every field set.
func WheelFromParams(p model.WheelParams) WheelConfig {
	return WheelConfig{
		InitialCapital: Float(p.InitialCapital),
		CallPremiumPct: Float(p.CallPremiumPct),
		PutPremiumPct:  Float(p.PutPremiumPct),
	}
}

// Float returns a pointer to v.
func Float(v float64) *float64 { return &v }

func (d DataConfig) ToSource() data.Source {
	return data.Source{Path: d.Path, URL: d.URL, Timeout: d.Timeout}
}

func (c *Config) HorizonValue() model.Horizon {
	h, err := model.ParseHorizon(c.Horizon)
	if err != nil {
		return model.HorizonAll
	}
	return h
}

// MergeWheel overlays the set fields of override onto base.
func MergeWheel(base, override WheelConfig) WheelConfig {
	out := base
	if override.InitialCapital != nil {
		out.InitialCapital = override.InitialCapital
	}
	if override.CallPremiumPct != nil {
		out.CallPremiumPct = override.CallPremiumPct
	}
	if override.PutPremiumPct != nil {
		out.PutPremiumPct = override.PutPremiumPct
	}
	return out
}
