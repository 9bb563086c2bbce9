// Package config loads and validates the YAML experiment definition.
// Defaults are applied before unmarshalling, so any field present in the
// file overrides them, including explicit zeros.
package config

import (
	"fmt"
	"os"

	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/Emil667/Delta-Hedging-EU-Call-Options-Sim/internal/experiment"
	"github.com/Emil667/Delta-Hedging-EU-Call-Options-Sim/internal/hedge"
	"github.com/Emil667/Delta-Hedging-EU-Call-Options-Sim/internal/pricing"
)

// Config mirrors the experiment YAML file.
type Config struct {
	Market struct {
		Spot     float64 `yaml:"spot" default:"100" validate:"gt=0"`
		Strike   float64 `yaml:"strike" default:"100" validate:"gt=0"`
		Maturity float64 `yaml:"maturity_years" default:"1" validate:"gt=0"`
		Rate     float64 `yaml:"rate" default:"0.01"`
		Vol      float64 `yaml:"vol" default:"0.2" validate:"gt=0"`
	} `yaml:"market"`

	Simulation struct {
		Steps int   `yaml:"steps" default:"252" validate:"gte=1"`
		Paths int   `yaml:"paths" default:"10000" validate:"gte=1"`
		Seed  int64 `yaml:"seed" default:"42"`
	} `yaml:"simulation"`

	// Schedules are evaluated in file order, which is also the order of
	// the output summaries.
	Schedules []ScheduleConfig `yaml:"schedules" validate:"min=1,dive"`

	Output struct {
		Dir           string `yaml:"dir" default:"./out"`
		HistogramBins int    `yaml:"histogram_bins" default:"50" validate:"gte=1"`
	} `yaml:"output"`

	Verbosity int `yaml:"verbosity" default:"1" validate:"gte=0,lte=3"`
}

// ScheduleConfig is one named rebalancing frequency.
type ScheduleConfig struct {
	Name   string `yaml:"name" validate:"required"`
	Stride int    `yaml:"stride" validate:"gte=1"`
}

// Load reads, defaults and validates a config file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	return Parse(data)
}

// Parse builds a Config from raw YAML. Exposed separately so the REST
// layer and tests can feed in-memory documents through the same
// default/validate pipeline.
func Parse(data []byte) (*Config, error) {
	cfg := &Config{}
	if err := defaults.Set(cfg); err != nil {
		return nil, fmt.Errorf("applying defaults: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if len(cfg.Schedules) == 0 {
		cfg.Schedules = DefaultSchedules()
	}
	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// Default returns the configuration used when no file is supplied.
func Default() (*Config, error) {
	return Parse(nil)
}

// DefaultSchedules is the conventional trading-calendar set: daily,
// weekly and monthly strides on a 252-step year.
func DefaultSchedules() []ScheduleConfig {
	return []ScheduleConfig{
		{Name: "daily", Stride: 1},
		{Name: "weekly", Stride: 5},
		{Name: "monthly", Stride: 21},
	}
}

// Definition converts the config into the runner's input.
func (c *Config) Definition() experiment.Definition {
	schedules := make([]hedge.Schedule, 0, len(c.Schedules))
	for _, s := range c.Schedules {
		schedules = append(schedules, hedge.Schedule{Name: s.Name, Stride: s.Stride})
	}
	return experiment.Definition{
		Params: pricing.MarketParams{
			S0:    c.Market.Spot,
			K:     c.Market.Strike,
			T:     c.Market.Maturity,
			R:     c.Market.Rate,
			Sigma: c.Market.Vol,
		},
		Steps:     c.Simulation.Steps,
		NumPaths:  c.Simulation.Paths,
		Seed:      c.Simulation.Seed,
		Schedules: schedules,
	}
}
