package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config defines server configuration.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Transport TransportConfig `yaml:"transport"`
	Registry  RegistryConfig  `yaml:"registry"`
	CourtAPI  CourtAPIConfig  `yaml:"court_api"`
	Ingest    IngestConfig    `yaml:"ingest"`
	DB        DBConfig        `yaml:"db"`
	Alerts    AlertsConfig    `yaml:"alerts"`
	Log       LogConfig       `yaml:"log"`
}

type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// TransportConfig selects how the MCP server is exposed.
type TransportConfig struct {
	Mode string `yaml:"mode"` // "stdio" or "http"
}

// RegistryConfig points at the Federal Register API.
type RegistryConfig struct {
	BaseURL string        `yaml:"base_url"`
	Timeout time.Duration `yaml:"timeout"`
}

// CourtAPIConfig points at the CourtListener API.
type CourtAPIConfig struct {
	BaseURL string        `yaml:"base_url"`
	APIKey  string        `yaml:"api_key"`
	Timeout time.Duration `yaml:"timeout"`
}

// IngestConfig controls URL ingestion.
type IngestConfig struct {
	FetchTimeout time.Duration `yaml:"fetch_timeout"`
}

type DBConfig struct {
	Path string `yaml:"path"`
}

// AlertsConfig holds outbound integration settings.
type AlertsConfig struct {
	SlackWebhookURL string `yaml:"slack_webhook_url"`
	NotionToken     string `yaml:"notion_token"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

// Load reads configuration from an optional YAML file and environment variables.
func Load() (Config, error) {
	cfg := Config{
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: 8080,
		},
		Transport: TransportConfig{
			Mode: "http",
		},
		Registry: RegistryConfig{
			BaseURL: "https://www.federalregister.gov/api/v1",
			Timeout: 15 * time.Second,
		},
		CourtAPI: CourtAPIConfig{
			BaseURL: "https://www.courtlistener.com/api/rest/v4",
			Timeout: 15 * time.Second,
		},
		Ingest: IngestConfig{
			FetchTimeout: 10 * time.Second,
		},
		DB: DBConfig{
			Path: "policynav.db",
		},
		Log: LogConfig{
			Level: "info",
		},
	}

	if path := os.Getenv("POLICYNAV_CONFIG_PATH"); path != "" {
		if err := loadFromFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}

	if host := os.Getenv("POLICYNAV_SERVER_HOST"); host != "" {
		cfg.Server.Host = host
	}
	if portStr := os.Getenv("POLICYNAV_SERVER_PORT"); portStr != "" {
		port, err := strconv.Atoi(portStr)
		if err != nil {
			return Config{}, fmt.Errorf("invalid POLICYNAV_SERVER_PORT: %w", err)
		}
		cfg.Server.Port = port
	}
	if mode := os.Getenv("POLICYNAV_TRANSPORT_MODE"); mode != "" {
		cfg.Transport.Mode = mode
	}
	if url := os.Getenv("POLICYNAV_REGISTRY_URL"); url != "" {
		cfg.Registry.BaseURL = url
	}
	if url := os.Getenv("POLICYNAV_COURT_API_URL"); url != "" {
		cfg.CourtAPI.BaseURL = url
	}
	if key := os.Getenv("COURTLISTENER_API_KEY"); key != "" {
		cfg.CourtAPI.APIKey = key
	}
	if dbPath := os.Getenv("POLICYNAV_DB_PATH"); dbPath != "" {
		cfg.DB.Path = dbPath
	}
	if webhook := os.Getenv("SLACK_WEBHOOK_URL"); webhook != "" {
		cfg.Alerts.SlackWebhookURL = webhook
	}
	if token := os.Getenv("NOTION_TOKEN"); token != "" {
		cfg.Alerts.NotionToken = token
	}
	if level := os.Getenv("POLICYNAV_LOG_LEVEL"); level != "" {
		cfg.Log.Level = level
	}

	return cfg, nil
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
