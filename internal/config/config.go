package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	// Probe settings
	CommandTimeout = 2 * time.Second

	// Display settings
	DefaultGap = 4

	// Build info (injected at build time via ldflags)
	Version   = "0.3.0"
	Commit    = "unknown"
	BuildDate = "unknown"

	// Config file location relative to the user config directory
	AppDirName     = "hostfetch"
	ConfigFileName = "config.yaml"
)

// Color modes
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// LogoAuto selects the logo from the detected OS
const LogoAuto = "auto"

// Config holds user preferences read from config.yaml
type Config struct {
	CommandTimeout time.Duration `yaml:"command_timeout"`
	Debug          bool          `yaml:"debug"`
	Gap            int           `yaml:"gap"`
	Color          string        `yaml:"color"`
	Logo           string        `yaml:"logo"`
}

// Default returns the configuration used when no file exists
func Default() *Config {
	return &Config{
		CommandTimeout: CommandTimeout,
		Gap:            DefaultGap,
		Color:          ColorAuto,
		Logo:           LogoAuto,
	}
}

// Load reads the config file at path over the defaults.
// A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}

	return cfg, nil
}

// LoadDefault reads the config from GetConfigPath and applies env overrides
func LoadDefault() (*Config, error) {
	cfg, err := Load(GetConfigPath())
	if err != nil {
		return nil, err
	}

	if IsDebugMode() {
		cfg.Debug = true
	}
	if timeout, ok := GetTimeout(); ok {
		cfg.CommandTimeout = timeout
	}

	return cfg, nil
}

func (c *Config) validate() error {
	if c.CommandTimeout <= 0 {
		return fmt.Errorf("command_timeout must be positive, got %s", c.CommandTimeout)
	}
	if c.Gap < 0 {
		return fmt.Errorf("gap must not be negative, got %d", c.Gap)
	}

	c.Color = strings.ToLower(strings.TrimSpace(c.Color))
	switch c.Color {
	case ColorAuto, ColorAlways, ColorNever:
	case "":
		c.Color = ColorAuto
	default:
		return fmt.Errorf("color must be auto, always or never, got %q", c.Color)
	}

	c.Logo = strings.ToLower(strings.TrimSpace(c.Logo))
	if c.Logo == "" {
		c.Logo = LogoAuto
	}

	return nil
}

// GetConfigPath returns the config path from env or the user config directory
func GetConfigPath() string {
	if path := os.Getenv("HOSTFETCH_CONFIG"); path != "" {
		return path
	}

	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return filepath.Join(AppDirName, ConfigFileName)
		}
		dir = filepath.Join(home, ".config")
	}

	return filepath.Join(dir, AppDirName, ConfigFileName)
}

// GetTimeout returns the per-command timeout override from env, if valid
func GetTimeout() (time.Duration, bool) {
	raw := os.Getenv("HOSTFETCH_TIMEOUT")
	if raw == "" {
		return 0, false
	}

	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		return 0, false
	}
	return d, true
}

// IsDebugMode checks if debug mode is enabled
func IsDebugMode() bool {
	debug := os.Getenv("HOSTFETCH_DEBUG")
	return debug == "true" || debug == "1"
}
