// Package config loads poker-odds settings from an HCL file with environment
// overrides.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"runtime"

	"github.com/charmbracelet/log"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/ilyakaznacheev/cleanenv"

	"github.com/lox/holdem-equity/internal/equity"
	"github.com/lox/holdem-equity/internal/table"
)

// Config is the complete poker-odds configuration.
type Config struct {
	Simulation Simulation
	Log        Log
	Table      Table
}

// Simulation controls the equity simulator.
type Simulation struct {
	Trials  int    `hcl:"trials,optional"`
	Workers int    `hcl:"workers,optional"`
	Seed    *int64 `hcl:"seed,optional"`
}

// Log controls diagnostic output.
type Log struct {
	Level string `hcl:"level,optional"`
}

// Table controls the table state manager.
type Table struct {
	MaxPlayers int `hcl:"max_players,optional"`
}

// file mirrors the HCL layout. Every block is optional.
type file struct {
	Simulation *Simulation `hcl:"simulation,block"`
	Log        *Log        `hcl:"log,block"`
	Table      *Table      `hcl:"table,block"`
}

// environment holds the variables that override file settings.
type environment struct {
	Trials   int    `env:"POKER_ODDS_TRIALS" env-description:"number of Monte Carlo trials per run"`
	Workers  int    `env:"POKER_ODDS_WORKERS" env-description:"number of simulation workers"`
	Seed     int64  `env:"POKER_ODDS_SEED" env-description:"seed for reproducible runs"`
	LogLevel string `env:"POKER_ODDS_LOG_LEVEL" env-description:"log level (debug, info, warn, error)"`
}

const envSeed = "POKER_ODDS_SEED"

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Simulation: Simulation{
			Trials:  equity.DefaultTrials,
			Workers: runtime.NumCPU(),
		},
		Log: Log{
			Level: "warn",
		},
		Table: Table{
			MaxPlayers: table.DefaultMaxPlayers,
		},
	}
}

// Load reads the configuration from filename. A missing file yields the
// defaults. Environment overrides are applied and the result validated.
func Load(filename string) (*Config, error) {
	if filename == "" {
		return finish(Default())
	}

	src, err := os.ReadFile(filename)
	if errors.Is(err, os.ErrNotExist) {
		return finish(Default())
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	return Parse(src, filename)
}

// Parse decodes HCL source, fills in defaults for anything it leaves unset
// and applies environment overrides.
func Parse(src []byte, filename string) (*Config, error) {
	parser := hclparse.NewParser()
	f, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var raw file
	diags = gohcl.DecodeBody(f.Body, nil, &raw)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	cfg := Default()
	if s := raw.Simulation; s != nil {
		if s.Trials != 0 {
			cfg.Simulation.Trials = s.Trials
		}
		if s.Workers != 0 {
			cfg.Simulation.Workers = s.Workers
		}
		cfg.Simulation.Seed = s.Seed
	}
	if raw.Log != nil && raw.Log.Level != "" {
		cfg.Log.Level = raw.Log.Level
	}
	if raw.Table != nil && raw.Table.MaxPlayers != 0 {
		cfg.Table.MaxPlayers = raw.Table.MaxPlayers
	}

	return finish(cfg)
}

func finish(cfg *Config) (*Config, error) {
	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyEnv overrides settings from the environment. Unset variables leave
// the current value in place.
func (c *Config) applyEnv() error {
	env := environment{
		Trials:   c.Simulation.Trials,
		Workers:  c.Simulation.Workers,
		LogLevel: c.Log.Level,
	}
	if err := cleanenv.ReadEnv(&env); err != nil {
		return fmt.Errorf("failed to read environment: %w", err)
	}

	c.Simulation.Trials = env.Trials
	c.Simulation.Workers = env.Workers
	c.Log.Level = env.LogLevel
	if _, ok := os.LookupEnv(envSeed); ok {
		seed := env.Seed
		c.Simulation.Seed = &seed
	}
	return nil
}

// Validate checks that every setting is usable.
func (c *Config) Validate() error {
	if c.Simulation.Trials <= 0 {
		return fmt.Errorf("trials must be positive: %d", c.Simulation.Trials)
	}
	if c.Simulation.Workers <= 0 {
		return fmt.Errorf("workers must be positive: %d", c.Simulation.Workers)
	}
	if c.Table.MaxPlayers < 2 || c.Table.MaxPlayers > table.MaxSeats {
		return fmt.Errorf("max players must be between 2 and %d: %d", table.MaxSeats, c.Table.MaxPlayers)
	}
	if _, err := log.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("invalid log level %q: %w", c.Log.Level, err)
	}
	return nil
}

// SimulatorOptions returns the equity simulator options for these settings.
func (c *Config) SimulatorOptions() []equity.Option {
	opts := []equity.Option{
		equity.WithTrials(c.Simulation.Trials),
		equity.WithWorkers(c.Simulation.Workers),
	}
	if c.Simulation.Seed != nil {
		opts = append(opts, equity.WithSeed(*c.Simulation.Seed))
	}
	return opts
}

// NewLogger creates a logger writing to w at the configured level.
func (c *Config) NewLogger(w io.Writer) *log.Logger {
	level, err := log.ParseLevel(c.Log.Level)
	if err != nil {
		level = log.WarnLevel
	}
	return log.NewWithOptions(w, log.Options{
		Level:           level,
		ReportTimestamp: level == log.DebugLevel,
		Prefix:          "poker-odds",
	})
}

// EnvUsage describes the environment variables Load understands.
func EnvUsage() string {
	desc, err := cleanenv.GetDescription(&environment{}, nil)
	if err != nil {
		return ""
	}
	return desc
}
