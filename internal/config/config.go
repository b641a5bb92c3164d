package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultTimeout applies to every remote call.
const DefaultTimeout = 30 * time.Second

// ServerConfig configures the development API server.
type ServerConfig struct {
	Addr      string `yaml:"addr"`
	JWTSecret string `yaml:"jwt_secret"`
	LogFile   string `yaml:"log_file"`
	DBPath    string `yaml:"db_path"`
}

// Config holds client and development-server settings.
type Config struct {
	BaseURL  string        `yaml:"base_url"`
	Timeout  time.Duration `yaml:"timeout"`
	DBPath   string        `yaml:"db_path"`
	LogCalls bool          `yaml:"log_calls"`
	Server   ServerConfig  `yaml:"server"`
}

// Dir returns ~/.wisemind, where local state lives.
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("finding home directory: %w", err)
	}
	return filepath.Join(home, ".wisemind"), nil
}

// DefaultConfig returns the built-in settings rooted at dir.
func DefaultConfig(dir string) Config {
	return Config{
		BaseURL:  "http://localhost:8787/api/v1",
		Timeout:  DefaultTimeout,
		DBPath:   filepath.Join(dir, "wisemind.db"),
		LogCalls: false,
		Server: ServerConfig{
			Addr:      "127.0.0.1:8787",
			JWTSecret: "",
			LogFile:   filepath.Join(dir, "logs", "devserver.log"),
			DBPath:    filepath.Join(dir, "devserver.db"),
		},
	}
}

// Load builds the effective configuration: defaults, then the YAML file
// (WISEMIND_CONFIG or ~/.wisemind/config.yaml) if it exists, then
// environment variables. Invalid environment values are ignored.
func Load() (Config, error) {
	dir, err := Dir()
	if err != nil {
		return Config{}, err
	}
	cfg := DefaultConfig(dir)

	path := os.Getenv("WISEMIND_CONFIG")
	if path == "" {
		path = filepath.Join(dir, "config.yaml")
	}
	if err := mergeFile(&cfg, path); err != nil {
		return Config{}, err
	}

	applyEnv(&cfg)
	return cfg, nil
}

func mergeFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("reading config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parsing config %s: %w", path, err)
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	return nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("WISEMIND_BASE_URL"); v != "" {
		cfg.BaseURL = v
	}
	if v := os.Getenv("WISEMIND_TIMEOUT_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.Timeout = time.Duration(n) * time.Millisecond
		}
	}
	if v := os.Getenv("WISEMIND_DB"); v != "" {
		cfg.DBPath = v
	}
	if v := os.Getenv("WISEMIND_LOG_CALLS"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.LogCalls = b
		}
	}
	if v := os.Getenv("WISEMIND_SERVER_ADDR"); v != "" {
		cfg.Server.Addr = v
	}
	if v := os.Getenv("WISEMIND_JWT_SECRET"); v != "" {
		cfg.Server.JWTSecret = v
	}
	if v := os.Getenv("WISEMIND_SERVER_LOG"); v != "" {
		cfg.Server.LogFile = v
	}
	if v := os.Getenv("WISEMIND_SERVER_DB"); v != "" {
		cfg.Server.DBPath = v
	}
}
