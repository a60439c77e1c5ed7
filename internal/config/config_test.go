package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, "resume-matcher", cfg.App.Name)
	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, ":8080", cfg.App.Port)
	assert.Equal(t, ProviderGemini, cfg.Embedder.Provider)
	assert.Equal(t, "all-minilm", cfg.Embedder.LocalModel)
	assert.Equal(t, 90*time.Second, cfg.Embedder.RequestTimeout)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("APP_PORT", ":9090")
	t.Setenv("APP_ENV", "production")
	t.Setenv("EMBEDDER_PROVIDER", ProviderLocal)
	t.Setenv("EMBEDDER_LOCAL_URL", "http://embedder:11434")
	t.Setenv("GEMINI_API_KEY", "test-key")
	t.Setenv("DB_HOST", "db.internal")

	cfg := Load()

	assert.Equal(t, ":9090", cfg.App.Port)
	assert.Equal(t, "production", cfg.App.Env)
	assert.Equal(t, ProviderLocal, cfg.Embedder.Provider)
	assert.Equal(t, "http://embedder:11434", cfg.Embedder.LocalURL)
	assert.Equal(t, "test-key", cfg.Embedder.GeminiAPIKey)
	assert.Equal(t, "db.internal", cfg.DB.Host)
}

func TestDSN(t *testing.T) {
	dsn := DBConfig{
		Host:     "localhost",
		Port:     "5432",
		User:     "postgres",
		Password: "secret",
		Name:     "resume_matcher",
		SSLMode:  "disable",
	}.DSN()

	assert.Equal(t,
		"host=localhost user=postgres password=secret dbname=resume_matcher port=5432 sslmode=disable",
		dsn)
}
