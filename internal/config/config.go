package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// Colour modes
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// Config represents the application configuration
type Config struct {
	PlayerName string `toml:"player_name"`
	Seed       uint64 `toml:"seed"`
	DelayMs    int    `toml:"delay_ms"`
	MaxRounds  int    `toml:"max_rounds"`
	Color      string `toml:"color"`
	TrueColor  bool   `toml:"truecolor"`
}

// Default returns the built-in configuration
func Default() *Config {
	return &Config{
		PlayerName: "You",
		DelayMs:    300,
		MaxRounds:  10000,
		Color:      ColorAuto,
	}
}

// Delay is the pause the display takes before showing a round
func (c *Config) Delay() time.Duration {
	return time.Duration(c.DelayMs) * time.Millisecond
}

// Validate checks value ranges
func (c *Config) Validate() error {
	switch c.Color {
	case ColorAuto, ColorAlways, ColorNever:
	default:
		return fmt.Errorf("invalid color mode %q (want auto, always or never)", c.Color)
	}
	if c.DelayMs < 0 {
		return fmt.Errorf("delay_ms must not be negative")
	}
	if c.MaxRounds < 0 {
		return fmt.Errorf("max_rounds must not be negative")
	}
	return nil
}

// GetXDGDataHome returns XDG_DATA_HOME or default path
func GetXDGDataHome() string {
	if xdgData := os.Getenv("XDG_DATA_HOME"); xdgData != "" {
		return xdgData
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(homeDir, ".local", "share")
}

// GetXDGConfigHome returns XDG_CONFIG_HOME or default path
func GetXDGConfigHome() string {
	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		return xdgConfig
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(homeDir, ".config")
}

// GetScenarioLibraryPath returns the directory holding saved scenarios
func GetScenarioLibraryPath() string {
	return filepath.Join(GetXDGDataHome(), "war", "scenarios")
}

// GetConfigFilePath returns the path to the config file
func GetConfigFilePath() string {
	return filepath.Join(GetXDGConfigHome(), "war", "config.toml")
}

// GetScenarioPath resolves a scenario name from the library, falling back to a plain path
func GetScenarioPath(name string) (string, error) {
	for _, candidate := range []string{
		filepath.Join(GetScenarioLibraryPath(), name),
		filepath.Join(GetScenarioLibraryPath(), name+".toml"),
		name,
	} {
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("scenario not found: %s", name)
}

// LoadEnvFile loads KEY=VALUE pairs from path into the environment without
// overriding variables that are already set. A missing file is not an error.
func LoadEnvFile(path string) error {
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("error loading %s: %w", path, err)
	}
	return nil
}

// LoadConfig loads the config file, creating it on first use, then applies
// WAR_* environment overrides.
func LoadConfig() (*Config, error) {
	if err := LoadEnvFile(".env"); err != nil {
		return nil, err
	}

	cfg, err := loadFile(GetConfigFilePath())
	if err != nil {
		return nil, err
	}
	if err := applyEnv(cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func loadFile(configPath string) (*Config, error) {
	// Create default config if it doesn't exist
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return createDefaultConfig(configPath)
	}

	cfg := Default()
	if _, err := toml.DecodeFile(configPath, cfg); err != nil {
		return nil, fmt.Errorf("error decoding config file: %w", err)
	}
	return cfg, nil
}

func applyEnv(cfg *Config) error {
	if v, ok := os.LookupEnv("WAR_PLAYER_NAME"); ok && v != "" {
		cfg.PlayerName = v
	}
	if v, ok := os.LookupEnv("WAR_COLOR"); ok && v != "" {
		cfg.Color = strings.ToLower(v)
	}
	if v, ok := os.LookupEnv("WAR_SEED"); ok && v != "" {
		seed, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid WAR_SEED: %w", err)
		}
		cfg.Seed = seed
	}
	if v, ok := os.LookupEnv("WAR_DELAY_MS"); ok && v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid WAR_DELAY_MS: %w", err)
		}
		cfg.DelayMs = n
	}
	if v, ok := os.LookupEnv("WAR_MAX_ROUNDS"); ok && v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid WAR_MAX_ROUNDS: %w", err)
		}
		cfg.MaxRounds = n
	}
	return nil
}

// createDefaultConfig creates a default config file
func createDefaultConfig(configPath string) (*Config, error) {
	cfg := Default()
	if err := writeConfig(configPath, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func writeConfig(configPath string, cfg *Config) error {
	// Ensure the config directory exists
	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return fmt.Errorf("error creating config directory: %w", err)
	}

	file, err := os.Create(configPath)
	if err != nil {
		return fmt.Errorf("error creating config file: %w", err)
	}
	defer file.Close()

	encoder := toml.NewEncoder(file)
	if err := encoder.Encode(cfg); err != nil {
		return fmt.Errorf("error encoding config: %w", err)
	}
	return nil
}

// Set updates one key in the config file. Environment overrides are not
// written back.
func Set(key, value string) error {
	configPath := GetConfigFilePath()
	cfg, err := loadFile(configPath)
	if err != nil {
		return err
	}

	switch key {
	case "player_name":
		cfg.PlayerName = value
	case "color":
		cfg.Color = strings.ToLower(value)
	case "truecolor":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid truecolor value %q: %w", value, err)
		}
		cfg.TrueColor = b
	case "seed":
		n, err := strconv.ParseUint(value, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid seed %q: %w", value, err)
		}
		cfg.Seed = n
	case "delay_ms", "max_rounds":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", key, value, err)
		}
		if key == "delay_ms" {
			cfg.DelayMs = n
		} else {
			cfg.MaxRounds = n
		}
	default:
		return fmt.Errorf("unknown config key: %s", key)
	}

	if err := cfg.Validate(); err != nil {
		return err
	}
	return writeConfig(configPath, cfg)
}
