// Package config loads the vimlife settings from a YAML file and the command line.
package config

import (
	"os"
	"time"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"vimlife/src/universe"
)

// Config holds every startup setting. The core only sees the derived
// universe.Options and seed data.
type Config struct {
	Width    int           `yaml:"width"`
	Height   int           `yaml:"height"`
	Interval time.Duration `yaml:"interval"`
	// MaxSteps limits headless runs, 0 means no limit.
	MaxSteps int    `yaml:"max_steps"`
	Headless bool   `yaml:"headless"`
	Engine   string `yaml:"engine"`
	Topology string `yaml:"topology"`
	// Template seeds the grid by name, Random wins over it.
	Template string  `yaml:"template"`
	Random   bool    `yaml:"random"`
	Seed     int64   `yaml:"seed"`
	Density  float64 `yaml:"density"`
	Workers  int     `yaml:"workers"`

	Templates []TemplateConfig `yaml:"templates"`
	Logging   LoggingConfig    `yaml:"logging"`
}

// TemplateConfig is an extra seed pattern given as [x, y] pairs.
type TemplateConfig struct {
	Name        string  `yaml:"name"`
	Description string  `yaml:"description"`
	Cells       [][]int `yaml:"cells"`
}

// LoggingConfig configures the operational log.
type LoggingConfig struct {
	// Level is "debug", "info" (default), "warn" or "error".
	Level string `yaml:"level"`
	// File receives the log in interactive mode, empty discards it.
	// Headless runs log to stderr.
	File string `yaml:"file"`
}

// Overrides carries command line values. Zero values leave the config untouched.
type Overrides struct {
	Width    int
	Height   int
	Interval time.Duration
	MaxSteps int
	Headless bool
	Engine   string
	Topology string
	Template string
	Random   bool
	Seed     int64
	LogFile  string
	LogLevel string
}

const (
	DefInterval = 150 * time.Millisecond
	DefMaxSteps = 1000
	DefSeed     = 42
)

var ErrInvalid = errors.New("invalid configuration")

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		Width:    universe.DefWidth,
		Height:   universe.DefHeight,
		Interval: DefInterval,
		MaxSteps: DefMaxSteps,
		Engine:   universe.DefEngine,
		Topology: universe.TopologyClamped.String(),
		Seed:     DefSeed,
		Density:  universe.DefRandomDensity,
		Logging:  LoggingConfig{Level: "info"},
	}
}

// Load reads filename over the defaults and validates the result.
func Load(filename string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, errors.Wrapf(err, "[Load] failed to read file: %s", filename)
	}
	if err = yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrapf(err, "[Load] failed to unmarshal data from file: %s", filename)
	}
	if err = cfg.Validate(); err != nil {
		return nil, errors.Wrapf(err, "[Load] %s", filename)
	}
	return cfg, nil
}

// Apply copies every non-zero override into the config.
func (c *Config) Apply(o Overrides) {
	if o.Width != 0 {
		c.Width = o.Width
	}
	if o.Height != 0 {
		c.Height = o.Height
	}
	if o.Interval != 0 {
		c.Interval = o.Interval
	}
	if o.MaxSteps != 0 {
		c.MaxSteps = o.MaxSteps
	}
	if o.Engine != "" {
		c.Engine = o.Engine
	}
	if o.Topology != "" {
		c.Topology = o.Topology
	}
	if o.Template != "" {
		c.Template = o.Template
	}
	if o.Seed != 0 {
		c.Seed = o.Seed
	}
	if o.LogFile != "" {
		c.Logging.File = o.LogFile
	}
	if o.LogLevel != "" {
		c.Logging.Level = o.LogLevel
	}
	c.Headless = c.Headless || o.Headless
	c.Random = c.Random || o.Random
}

// Validate reports the first setting the engine or the UI cannot use.
func (c *Config) Validate() error {
	switch {
	case c.Width <= 0 || c.Height <= 0:
		return errors.Wrapf(ErrInvalid, "grid size %dx%d", c.Width, c.Height)
	case c.Interval <= 0:
		return errors.Wrapf(ErrInvalid, "interval %v", c.Interval)
	case c.MaxSteps < 0:
		return errors.Wrapf(ErrInvalid, "max_steps %d", c.MaxSteps)
	case c.Density <= 0 || c.Density > 1:
		return errors.Wrapf(ErrInvalid, "density %v is outside (0, 1]", c.Density)
	case c.Workers < 0:
		return errors.Wrapf(ErrInvalid, "workers %d", c.Workers)
	}
	if _, ok := universe.Engines[c.Engine]; !ok {
		return errors.Wrapf(universe.ErrUnknownEngine, "%q", c.Engine)
	}
	if _, err := universe.ParseTopology(c.Topology); err != nil {
		return err
	}
	for i, t := range c.Templates {
		if t.Name == "" {
			return errors.Wrapf(ErrInvalid, "template #%d has no name", i+1)
		}
		for _, v := range t.Cells {
			if len(v) != 2 {
				return errors.Wrapf(ErrInvalid, "template %q: cell %v is not an [x, y] pair", t.Name, v)
			}
		}
	}
	return nil
}

// UniverseOptions derives the engine options.
func (c *Config) UniverseOptions() (*universe.Options, error) {
	topology, err := universe.ParseTopology(c.Topology)
	if err != nil {
		return nil, err
	}
	return &universe.Options{
		Width:         c.Width,
		Height:        c.Height,
		Topology:      topology,
		Workers:       c.Workers,
		RandomDensity: c.Density,
	}, nil
}

// UniverseTemplates converts the extra seed patterns.
func (c *Config) UniverseTemplates() []universe.Template {
	tt := make([]universe.Template, 0, len(c.Templates))
	for _, t := range c.Templates {
		tt = append(tt, universe.Template{Name: t.Name, Descr: t.Description, Coordinates: t.Cells})
	}
	return tt
}
