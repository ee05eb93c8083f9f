// Package config provides unified configuration loading for walkheat.
// It supports loading from YAML files, a .env file and environment variables.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/nvandessel/walkheat/internal/constants"
	"github.com/nvandessel/walkheat/internal/logging"
)

// WalkheatConfig contains all walkheat configuration settings.
type WalkheatConfig struct {
	// Simulation contains the batch parameters.
	Simulation SimulationConfig `json:"simulation" yaml:"simulation"`

	// Output contains settings for the rendered heatmap.
	Output OutputConfig `json:"output" yaml:"output"`

	// Store contains settings for the run ledger.
	Store StoreConfig `json:"store" yaml:"store"`

	// Logging contains settings for operational logging.
	Logging LoggingConfig `json:"logging" yaml:"logging"`
}

// SimulationConfig configures a batch of walks.
type SimulationConfig struct {
	// Walks is the number of walks in the batch. Must be at least 1.
	Walks int `json:"walks" yaml:"walks"`

	// Boundary is the half-width n of the square |x| <= n, |y| <= n.
	Boundary int `json:"boundary" yaml:"boundary"`

	// Seed fixes the direction generator. 0 derives a seed from the clock.
	Seed uint64 `json:"seed" yaml:"seed"`
}

// OutputConfig configures rendering.
type OutputConfig struct {
	// Image is the PNG path. Empty disables the image.
	Image string `json:"image" yaml:"image"`

	// ASCII prints the heatmap to stdout after the report.
	ASCII bool `json:"ascii" yaml:"ascii"`

	// Open shows the image in the default viewer once written.
	Open bool `json:"open" yaml:"open"`

	// CellSize is the pixel size of one lattice cell in the image.
	CellSize int `json:"cell_size" yaml:"cell_size"`
}

// StoreConfig configures the SQLite run ledger.
type StoreConfig struct {
	// Path is the database file.
	Path string `json:"path" yaml:"path"`

	// Record saves every batch summary to the ledger.
	Record bool `json:"record" yaml:"record"`
}

// LoggingConfig configures walkheat's logging behavior.
type LoggingConfig struct {
	// Level sets the log verbosity: "info" (default), "debug", or "trace".
	// "trace" logs every walk.
	Level string `json:"level" yaml:"level"`
}

// Default returns a WalkheatConfig with sensible defaults.
func Default() *WalkheatConfig {
	return &WalkheatConfig{
		Simulation: SimulationConfig{
			Walks:    constants.DefaultWalks,
			Boundary: constants.DefaultBoundary,
			Seed:     0,
		},
		Output: OutputConfig{
			Image:    constants.DefaultImagePath,
			CellSize: 48,
		},
		Store: StoreConfig{
			Path: DefaultStorePath(),
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// DefaultConfigPath returns ~/.walkheat/config.yaml, or "" if there is no home.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, constants.HomeDirName, constants.ConfigFileName)
}

// DefaultStorePath returns ~/.walkheat/runs.db, falling back to the working
// directory when there is no home.
func DefaultStorePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(constants.HomeDirName, constants.RunsDBFileName)
	}
	return filepath.Join(home, constants.HomeDirName, constants.RunsDBFileName)
}

// Load loads configuration from path (or the default location when path is
// empty), then applies .env and environment variable overrides.
// Order: defaults -> config file -> .env -> environment variables.
// A missing default config file is not an error; a missing explicit one is.
func Load(path string) (*WalkheatConfig, error) {
	config := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultConfigPath()
	}
	if path != "" {
		if _, statErr := os.Stat(path); statErr == nil || explicit {
			fileConfig, loadErr := LoadFromFile(path)
			if loadErr != nil {
				return nil, fmt.Errorf("loading config file: %w", loadErr)
			}
			config = fileConfig
		}
	}

	dotenv, err := readDotenv(constants.EnvFileName)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", constants.EnvFileName, err)
	}

	if err := applyEnvOverrides(config, envLookup(dotenv)); err != nil {
		return nil, err
	}

	return config, nil
}

// LoadFromFile loads configuration from a specific YAML file.
func LoadFromFile(path string) (*WalkheatConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	config := Default()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	config.Output.Image = os.ExpandEnv(config.Output.Image)
	config.Store.Path = os.ExpandEnv(config.Store.Path)

	return config, nil
}

// Validate checks that the configuration is valid.
func (c *WalkheatConfig) Validate() error {
	if c.Simulation.Walks < 1 {
		return fmt.Errorf("walks must be at least 1, got %d", c.Simulation.Walks)
	}

	if c.Simulation.Boundary < 0 {
		return fmt.Errorf("boundary must be non-negative, got %d", c.Simulation.Boundary)
	}

	if c.Output.CellSize < 1 {
		return fmt.Errorf("cell_size must be positive, got %d", c.Output.CellSize)
	}

	if c.Store.Record && c.Store.Path == "" {
		return fmt.Errorf("store.path is required when store.record is enabled")
	}

	if !logging.ValidLevel(c.Logging.Level) {
		return fmt.Errorf("invalid log level: %s (valid: info, debug, trace, or empty for default)", c.Logging.Level)
	}

	return nil
}

// readDotenv reads KEY=VALUE pairs from path without touching the process
// environment. A missing file yields an empty map.
func readDotenv(path string) (map[string]string, error) {
	values, err := godotenv.Read(path)
	if errors.Is(err, fs.ErrNotExist) {
		return map[string]string{}, nil
	}
	return values, err
}

// envLookup prefers the real environment over .env values.
func envLookup(dotenv map[string]string) func(string) string {
	return func(key string) string {
		if v, ok := os.LookupEnv(key); ok {
			return v
		}
		return dotenv[key]
	}
}

// applyEnvOverrides applies environment variable overrides to the config.
func applyEnvOverrides(config *WalkheatConfig, getenv func(string) string) error {
	if v := getenv("WALKHEAT_WALKS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("WALKHEAT_WALKS: %w", err)
		}
		config.Simulation.Walks = n
	}

	if v := getenv("WALKHEAT_BOUNDARY"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("WALKHEAT_BOUNDARY: %w", err)
		}
		config.Simulation.Boundary = n
	}

	if v := getenv("WALKHEAT_SEED"); v != "" {
		n, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return fmt.Errorf("WALKHEAT_SEED: %w", err)
		}
		config.Simulation.Seed = n
	}

	if v := getenv("WALKHEAT_IMAGE"); v != "" {
		config.Output.Image = v
	}

	if v := getenv("WALKHEAT_DB"); v != "" {
		config.Store.Path = v
	}

	if v := getenv("WALKHEAT_RECORD"); v != "" {
		config.Store.Record = v == "true" || v == "1"
	}

	if v := getenv("WALKHEAT_LOG_LEVEL"); v != "" {
		config.Logging.Level = v
	}

	return nil
}
