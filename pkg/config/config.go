package config

import (
	"fmt"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config holds all configuration for nsight-engine.
// Configuration can come from YAML file (config.yaml) or environment variables.
// Environment variables always override YAML values for fields that support both.
// Secrets (passwords, keys) must only come from environment variables.
type Config struct {
	// Server configuration
	BindAddr string `yaml:"bind_addr" env:"BIND_ADDR" env-default:"0.0.0.0"`
	Port     string `yaml:"port" env:"PORT" env-default:"5000"`
	Env      string `yaml:"env" env:"ENVIRONMENT" env-default:"local"`
	Version  string `yaml:"-"` // Set at load time, not from config

	// AllowedOrigins is a comma-separated CORS origin whitelist.
	// "*" allows any origin (the default suits a local frontend).
	AllowedOrigins string `yaml:"allowed_origins" env:"ALLOWED_ORIGINS" env-default:"*"`

	// Target analytics database (MySQL)
	Database DatabaseConfig `yaml:"database"`

	// Text-generation service
	AI AIConfig `yaml:"ai"`
}

// DatabaseConfig holds MySQL connection settings for the analytics store.
type DatabaseConfig struct {
	Host     string `yaml:"host" env:"DB_HOST" env-default:"localhost"`
	Port     int    `yaml:"port" env:"DB_PORT" env-default:"3306"`
	User     string `yaml:"user" env:"DB_USER" env-default:"root"`
	Password string `yaml:"-" env:"DB_PASSWORD"` // Secret - not in YAML
	Name     string `yaml:"name" env:"DB_NAME" env-default:"finance_data"`
	Charset  string `yaml:"charset" env:"DB_CHARSET" env-default:"utf8mb4"`
}

// DSN returns a go-sql-driver/mysql connection string.
// parseTime makes the driver return time.Time for DATE/DATETIME columns.
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=true",
		c.User, c.Password, c.Host, c.Port, c.Name, c.Charset)
}

// AIConfig holds settings for the text-generation service.
type AIConfig struct {
	// Provider selects the client implementation: "openai" (any
	// OpenAI-compatible endpoint) or "anthropic".
	Provider string `yaml:"provider" env:"AI_PROVIDER" env-default:"openai"`
	BaseURL  string `yaml:"base_url" env:"AI_BASE_URL" env-default:"https://api.openai.com/v1"`
	Model    string `yaml:"model" env:"AI_MODEL" env-default:"gpt-4o-mini"`
	APIKey   string `yaml:"-" env:"AI_API_KEY"` // Secret - not in YAML

	// Sampling and budget knobs per call path.
	SQLTemperature     float64 `yaml:"sql_temperature" env:"AI_SQL_TEMPERATURE" env-default:"0.1"`
	SQLMaxTokens       int     `yaml:"sql_max_tokens" env:"AI_SQL_MAX_TOKENS" env-default:"500"`
	InsightTemperature float64 `yaml:"insight_temperature" env:"AI_INSIGHT_TEMPERATURE" env-default:"0.3"`
	InsightMaxTokens   int     `yaml:"insight_max_tokens" env:"AI_INSIGHT_MAX_TOKENS" env-default:"800"`
}

// IsConfigured reports whether the AI service can be used.
func (c *AIConfig) IsConfigured() bool {
	return c.APIKey != "" && c.Model != ""
}

// Load reads configuration from config.yaml with environment variable
// overrides. The YAML file is optional; when absent only the environment is
// consulted. The version parameter is injected at build time.
func Load(version string) (*Config, error) {
	cfg := &Config{Version: version}

	if _, err := os.Stat("config.yaml"); err == nil {
		if err := cleanenv.ReadConfig("config.yaml", cfg); err != nil {
			return nil, fmt.Errorf("failed to read config.yaml: %w", err)
		}
	} else {
		if err := cleanenv.ReadEnv(cfg); err != nil {
			return nil, fmt.Errorf("failed to read environment: %w", err)
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.AI.Provider {
	case "openai", "anthropic":
	default:
		return fmt.Errorf("invalid ai provider %q: must be openai or anthropic", c.AI.Provider)
	}
	if c.Database.Name == "" {
		return fmt.Errorf("database name is required")
	}
	return nil
}
