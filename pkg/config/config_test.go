package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("test-version")
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0", cfg.BindAddr)
	assert.Equal(t, "5000", cfg.Port)
	assert.Equal(t, "local", cfg.Env)
	assert.Equal(t, "test-version", cfg.Version)
	assert.Equal(t, "*", cfg.AllowedOrigins)

	assert.Equal(t, "localhost", cfg.Database.Host)
	assert.Equal(t, 3306, cfg.Database.Port)
	assert.Equal(t, "root", cfg.Database.User)
	assert.Equal(t, "finance_data", cfg.Database.Name)

	assert.Equal(t, "openai", cfg.AI.Provider)
	assert.Equal(t, 0.1, cfg.AI.SQLTemperature)
	assert.Equal(t, 500, cfg.AI.SQLMaxTokens)
	assert.Equal(t, 0.3, cfg.AI.InsightTemperature)
	assert.Equal(t, 800, cfg.AI.InsightMaxTokens)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("PORT", "8080")
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("DB_PASSWORD", "hunter2")
	t.Setenv("AI_PROVIDER", "anthropic")
	t.Setenv("AI_MODEL", "claude-sonnet-4-20250514")
	t.Setenv("AI_API_KEY", "sk-test")

	cfg, err := Load("v")
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, "hunter2", cfg.Database.Password)
	assert.Equal(t, "anthropic", cfg.AI.Provider)
	assert.True(t, cfg.AI.IsConfigured())
}

func TestLoad_InvalidProvider(t *testing.T) {
	t.Setenv("AI_PROVIDER", "cohere")

	_, err := Load("v")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid ai provider")
}

func TestDatabaseConfig_DSN(t *testing.T) {
	cfg := DatabaseConfig{
		Host:     "localhost",
		Port:     3306,
		User:     "root",
		Password: "secret",
		Name:     "finance_data",
		Charset:  "utf8mb4",
	}
	want := "root:secret@tcp(localhost:3306)/finance_data?charset=utf8mb4&parseTime=true"
	assert.Equal(t, want, cfg.DSN())
}

func TestAIConfig_IsConfigured(t *testing.T) {
	assert.False(t, (&AIConfig{Model: "m"}).IsConfigured())
	assert.False(t, (&AIConfig{APIKey: "k"}).IsConfigured())
	assert.True(t, (&AIConfig{APIKey: "k", Model: "m"}).IsConfigured())
}
