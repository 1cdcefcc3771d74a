package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config defines client and server configuration.
type Config struct {
	API       APIConfig       `yaml:"api"`
	Server    ServerConfig    `yaml:"server"`
	DB        DBConfig        `yaml:"db"`
	Log       LogConfig       `yaml:"log"`
	Transport TransportConfig `yaml:"transport"`
}

// APIConfig points at the projeto backend.
type APIConfig struct {
	BaseURL string        `yaml:"base_url"`
	Token   string        `yaml:"token"`
	Timeout time.Duration `yaml:"timeout"`
	// SilentListings stops failed listings from raising notifications.
	SilentListings bool `yaml:"silent_listings"`
}

type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
	// Token, when set, is required as a bearer token on every HTTP route
	// except /health.
	Token string `yaml:"token"`
}

type DBConfig struct {
	Path string `yaml:"path"`
}

type LogConfig struct {
	Level string `yaml:"level"`
	Path  string `yaml:"path"`
}

type TransportConfig struct {
	Mode string `yaml:"mode"` // "stdio" or "http"
}

// Default returns the configuration used when nothing overrides it.
func Default() Config {
	return Config{
		API: APIConfig{
			BaseURL: "http://localhost:3000/api",
			Timeout: 30 * time.Second,
		},
		Server: ServerConfig{
			Host: "127.0.0.1",
			Port: 8080,
		},
		DB: DBConfig{
			Path: "projeto.db",
		},
		Log: LogConfig{
			Level: "info",
		},
		Transport: TransportConfig{
			Mode: "stdio",
		},
	}
}

// Load reads configuration from an optional YAML file and environment variables.
func Load() (Config, error) {
	cfg := Default()

	if path := os.Getenv("PROJETO_CONFIG_PATH"); path != "" {
		if err := loadFromFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}

	if baseURL := os.Getenv("PROJETO_API_BASE_URL"); baseURL != "" {
		cfg.API.BaseURL = baseURL
	}
	if token := os.Getenv("PROJETO_API_TOKEN"); token != "" {
		cfg.API.Token = token
	}
	if timeoutStr := os.Getenv("PROJETO_API_TIMEOUT"); timeoutStr != "" {
		timeout, err := time.ParseDuration(timeoutStr)
		if err != nil {
			return Config{}, fmt.Errorf("invalid PROJETO_API_TIMEOUT: %w", err)
		}
		cfg.API.Timeout = timeout
	}
	if silent := os.Getenv("PROJETO_API_SILENT_LISTINGS"); silent != "" {
		v, err := strconv.ParseBool(silent)
		if err != nil {
			return Config{}, fmt.Errorf("invalid PROJETO_API_SILENT_LISTINGS: %w", err)
		}
		cfg.API.SilentListings = v
	}
	if host := os.Getenv("PROJETO_SERVER_HOST"); host != "" {
		cfg.Server.Host = host
	}
	if portStr := os.Getenv("PROJETO_SERVER_PORT"); portStr != "" {
		port, err := strconv.Atoi(portStr)
		if err != nil {
			return Config{}, fmt.Errorf("invalid PROJETO_SERVER_PORT: %w", err)
		}
		cfg.Server.Port = port
	}
	if token := os.Getenv("PROJETO_SERVER_TOKEN"); token != "" {
		cfg.Server.Token = token
	}
	if dbPath := os.Getenv("PROJETO_DB_PATH"); dbPath != "" {
		cfg.DB.Path = dbPath
	}
	if level := os.Getenv("PROJETO_LOG_LEVEL"); level != "" {
		cfg.Log.Level = level
	}
	if logPath := os.Getenv("PROJETO_LOG_PATH"); logPath != "" {
		cfg.Log.Path = logPath
	}
	if mode := os.Getenv("PROJETO_TRANSPORT_MODE"); mode != "" {
		cfg.Transport.Mode = mode
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks values a typo could make unusable.
func (c Config) Validate() error {
	if c.API.BaseURL == "" {
		return fmt.Errorf("api.base_url is required")
	}
	if c.API.Timeout < 0 {
		return fmt.Errorf("api.timeout must not be negative")
	}
	switch c.Transport.Mode {
	case "stdio", "http":
	default:
		return fmt.Errorf("transport.mode must be stdio or http, got %q", c.Transport.Mode)
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port out of range: %d", c.Server.Port)
	}
	return nil
}

func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}
