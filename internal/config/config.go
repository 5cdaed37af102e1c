package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const envPrefix = "MARQUEE"

// Config holds all application configuration
type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	Storage StorageConfig `mapstructure:"storage"`
	UI      UIConfig      `mapstructure:"ui"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// ServerConfig holds the movie backend configuration
type ServerConfig struct {
	URL               string        `mapstructure:"url"`
	Timeout           time.Duration `mapstructure:"timeout"`
	RequestsPerSecond float64       `mapstructure:"requests_per_second"`
	Burst             int           `mapstructure:"burst"`
}

// StorageConfig holds the local database location
type StorageConfig struct {
	Path string `mapstructure:"path"` // Directory holding marquee.db
}

// UIConfig holds UI configuration
type UIConfig struct {
	SplashDuration time.Duration `mapstructure:"splash_duration"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	File  string `mapstructure:"file"`
	Level string `mapstructure:"level"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Timeout:           30 * time.Second,
			RequestsPerSecond: 10,
			Burst:             5,
		},
		Storage: StorageConfig{
			Path: defaultDataPath(),
		},
		UI: UIConfig{
			SplashDuration: 600 * time.Millisecond,
		},
		Logging: LoggingConfig{
			File:  filepath.Join(defaultDataPath(), "marquee.log"),
			Level: "INFO",
		},
	}
}

// defaultDataPath returns the default data directory for the current OS
func defaultDataPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("LOCALAPPDATA"), "marquee")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".local", "share", "marquee")
	}
}

// DefaultConfigDir returns the default config directory for the current OS
func DefaultConfigDir() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "marquee")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "marquee")
	}
}

// LoadDotEnv loads KEY=value pairs from path into the environment. A
// missing file is not an error. Variables already set are kept.
func LoadDotEnv(path string) error {
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("error reading %s: %w", path, err)
	}
	return nil
}

// Load reads config.yaml from the first of dirs that has one (the default
// config directory and "." when dirs is empty), then applies MARQUEE_*
// environment overrides, e.g. MARQUEE_SERVER_URL.
func Load(dirs ...string) (*Config, error) {
	if len(dirs) == 0 {
		dirs = []string{DefaultConfigDir(), "."}
	}

	v := newViper()
	for _, dir := range dirs {
		v.AddConfigPath(dir)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found is OK, use defaults
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}

	cfg.Server.URL = strings.TrimRight(strings.TrimSpace(cfg.Server.URL), "/")
	cfg.Storage.Path = expandHome(cfg.Storage.Path)
	cfg.Logging.File = expandHome(cfg.Logging.File)
	return cfg, nil
}

// newViper returns a viper instance with every key defaulted, so
// environment overrides apply even to keys absent from the file.
func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	setAll(v, DefaultConfig(), v.SetDefault)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

func setAll(v *viper.Viper, cfg *Config, set func(key string, value any)) {
	set("server.url", cfg.Server.URL)
	set("server.timeout", cfg.Server.Timeout.String())
	set("server.requests_per_second", cfg.Server.RequestsPerSecond)
	set("server.burst", cfg.Server.Burst)
	set("storage.path", cfg.Storage.Path)
	set("ui.splash_duration", cfg.UI.SplashDuration.String())
	set("logging.file", cfg.Logging.File)
	set("logging.level", cfg.Logging.Level)
}

// SaveConfig writes cfg to config.yaml in dir (the default config directory
// when dir is empty)
func SaveConfig(cfg *Config, dir string) error {
	if dir == "" {
		dir = DefaultConfigDir()
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	v := viper.New()
	v.SetConfigType("yaml")
	setAll(v, cfg, v.Set)

	configFile := filepath.Join(dir, "config.yaml")
	if err := v.WriteConfigAs(configFile); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// IsConfigured returns true if the backend URL is set
func (c *Config) IsConfigured() bool {
	return c.Server.URL != ""
}

func expandHome(path string) string {
	if !strings.HasPrefix(path, "~") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}
