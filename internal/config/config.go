package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server       ServerConfig       `yaml:"server"`
	Store        StoreConfig        `yaml:"store"`
	Logging      LoggingConfig      `yaml:"logging"`
	Housekeeping HousekeepingConfig `yaml:"housekeeping"`
}

type ServerConfig struct {
	Port         string        `yaml:"port"`
	Host         string        `yaml:"host"`
	RateLimitRPM int           `yaml:"rate_limit_rpm"`
	Timeout      time.Duration `yaml:"timeout"`
}

// StoreConfig selects the document-store engine. Engine is one of
// "inmemory", "sqlite" or "postgres"; Path is used by sqlite, DSN by
// postgres.
type StoreConfig struct {
	Engine string `yaml:"engine"`
	Path   string `yaml:"path"`
	DSN    string `yaml:"dsn"`
}

type LoggingConfig struct {
	Development bool `yaml:"development"`
}

type HousekeepingConfig struct {
	RetentionDays int    `yaml:"retention_days"`
	Schedule      string `yaml:"schedule"` // cron expression
}

func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Host:         "0.0.0.0",
			Port:         "8080",
			RateLimitRPM: 100,
			Timeout:      30 * time.Second,
		},
		Store: StoreConfig{
			Engine: "inmemory",
		},
		Logging: LoggingConfig{Development: true},
		Housekeeping: HousekeepingConfig{
			RetentionDays: 30,
			Schedule:      "0 3 * * *",
		},
	}
}

// Load reads config.yml from the working directory, falling back to
// defaults when the file does not exist.
func Load(path string) (*Config, error) {
	cfg := Default()

	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer file.Close()

	decoder := yaml.NewDecoder(file)
	if err := decoder.Decode(cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	return cfg, nil
}

func (c *Config) ServerAddr() string {
	return fmt.Sprintf("%s:%s", c.Server.Host, c.Server.Port)
}

func (c *Config) Retention() time.Duration {
	return time.Duration(c.Housekeeping.RetentionDays) * 24 * time.Hour
}
