package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "GUGON_"

// Archive drivers.
const (
	ArchiveNone     = "none"
	ArchivePostgres = "postgres"
	ArchiveSQLite   = "sqlite"
)

// Simulator holds all configuration for the combat simulator.
type Simulator struct {
	LogLevel string `yaml:"log_level" env:"LOG_LEVEL"`
	// AIDebug traces every behavior tree decision.
	AIDebug bool `yaml:"ai_debug" env:"AI_DEBUG"`

	// Master seed; every encounter derives its own stream from it.
	Seed    uint64 `yaml:"seed"    env:"SEED"`
	Runs    int    `yaml:"runs"    env:"RUNS"`
	Workers int    `yaml:"workers" env:"WORKERS"`

	// Player
	Hero  string `yaml:"hero"  env:"HERO"`
	Level int    `yaml:"level" env:"LEVEL"`
	// Interactive asks on stdin for level-up choices; single runs only.
	Interactive bool `yaml:"interactive" env:"INTERACTIVE"`

	// Bestiary names spawned in initiative order.
	Encounter []string `yaml:"encounter"  env:"ENCOUNTER" envSeparator:","`
	MaxRounds int      `yaml:"max_rounds" env:"MAX_ROUNDS"`

	// Combat log lines kept per encounter.
	LogLines int `yaml:"log_lines" env:"LOG_LINES"`

	Archive  ArchiveConfig  `yaml:"archive"  envPrefix:"ARCHIVE_"`
	Database DatabaseConfig `yaml:"database" envPrefix:"DB_"`
}

// ArchiveConfig selects where reports are stored.
type ArchiveConfig struct {
	Driver string `yaml:"driver" env:"DRIVER"`
	// Path of the SQLite database file.
	Path string `yaml:"path" env:"PATH"`
}

// DatabaseConfig holds PostgreSQL connection parameters.
type DatabaseConfig struct {
	Host     string `yaml:"host"     env:"HOST"`
	Port     int    `yaml:"port"     env:"PORT"`
	User     string `yaml:"user"     env:"USER"`
	Password string `yaml:"password" env:"PASSWORD"`
	DBName   string `yaml:"dbname"   env:"NAME"`
	SSLMode  string `yaml:"sslmode"  env:"SSLMODE"`
}

// DSN returns the PostgreSQL connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.DBName, d.SSLMode,
	)
}

// DefaultSimulator returns Simulator config with sensible defaults.
func DefaultSimulator() Simulator {
	return Simulator{
		LogLevel:  "info",
		Seed:      1,
		Runs:      1,
		Workers:   4,
		Hero:      "Paladin",
		Level:     1,
		Encounter: []string{"Skeleton", "Skeleton", "Goblin"},
		MaxRounds: 100,
		LogLines:  10,
		Archive: ArchiveConfig{
			Driver: ArchiveNone,
			Path:   "gugon.db",
		},
		Database: DatabaseConfig{
			Host:     "127.0.0.1",
			Port:     5432,
			User:     "gugon",
			Password: "gugon",
			DBName:   "gugon",
			SSLMode:  "disable",
		},
	}
}

// LoadSimulator loads simulator config from a YAML file, then applies
// GUGON_* environment overrides. If the file doesn't exist, the overrides
// apply to the defaults.
func LoadSimulator(path string) (Simulator, error) {
	cfg := DefaultSimulator()

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		slog.Debug("config file not found, using defaults", "path", path)
	case err != nil:
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	default:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parsing config %s: %w", path, err)
		}
	}

	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return cfg, fmt.Errorf("parsing environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate checks values that have no usable fallback.
func (s Simulator) Validate() error {
	var errs []error
	if s.Runs < 1 {
		errs = append(errs, fmt.Errorf("runs must be positive, got %d", s.Runs))
	}
	if s.Workers < 1 {
		errs = append(errs, fmt.Errorf("workers must be positive, got %d", s.Workers))
	}
	if s.Interactive && s.Runs != 1 {
		errs = append(errs, errors.New("interactive needs exactly one run"))
	}
	if s.Level < 0 {
		errs = append(errs, fmt.Errorf("level must not be negative, got %d", s.Level))
	}
	if len(s.Encounter) == 0 {
		errs = append(errs, errors.New("encounter lists no monsters"))
	}
	if _, err := ParseLevel(s.LogLevel); err != nil {
		errs = append(errs, err)
	}
	switch s.Archive.Driver {
	case ArchiveNone, ArchivePostgres, ArchiveSQLite:
	default:
		errs = append(errs, fmt.Errorf("unknown archive driver %q", s.Archive.Driver))
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// ParseLevel maps a log_level value to a slog level.
func ParseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return 0, fmt.Errorf("log_level: %w", err)
	}
	return level, nil
}
