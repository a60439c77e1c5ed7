package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Embedding provider names accepted in EMBEDDER_PROVIDER.
const (
	ProviderGemini = "gemini"
	ProviderLocal  = "local"
)

type AppConfig struct {
	Name string
	Env  string
	Port string
}

type DBConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

type EmbedderConfig struct {
	Provider       string
	GeminiAPIKey   string
	GeminiModel    string
	LocalURL       string
	LocalModel     string
	RequestTimeout time.Duration
}

type Config struct {
	App      AppConfig
	DB       DBConfig
	Embedder EmbedderConfig
}

// Load reads configuration from the environment (APP_*, DB_*, GEMINI_*,
// EMBEDDER_*), falling back to development defaults. Call godotenv.Load
// beforehand if a .env file should contribute.
func Load() *Config {
	v := viper.New()
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("app.name", "resume-matcher")
	v.SetDefault("app.env", "development")
	v.SetDefault("app.port", ":8080")

	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", "5432")
	v.SetDefault("db.user", "postgres")
	v.SetDefault("db.password", "postgres")
	v.SetDefault("db.name", "resume_matcher")
	v.SetDefault("db.sslmode", "disable")

	v.SetDefault("embedder.provider", ProviderGemini)
	v.SetDefault("embedder.gemini_model", "gemini-embedding-001")
	v.SetDefault("embedder.local_url", "http://localhost:11434")
	v.SetDefault("embedder.local_model", "all-minilm")
	v.SetDefault("embedder.timeout", 90*time.Second)

	return &Config{
		App: AppConfig{
			Name: v.GetString("app.name"),
			Env:  v.GetString("app.env"),
			Port: v.GetString("app.port"),
		},
		DB: DBConfig{
			Host:     v.GetString("db.host"),
			Port:     v.GetString("db.port"),
			User:     v.GetString("db.user"),
			Password: v.GetString("db.password"),
			Name:     v.GetString("db.name"),
			SSLMode:  v.GetString("db.sslmode"),
		},
		Embedder: EmbedderConfig{
			Provider:       v.GetString("embedder.provider"),
			GeminiAPIKey:   v.GetString("gemini.api_key"),
			GeminiModel:    v.GetString("embedder.gemini_model"),
			LocalURL:       v.GetString("embedder.local_url"),
			LocalModel:     v.GetString("embedder.local_model"),
			RequestTimeout: v.GetDuration("embedder.timeout"),
		},
	}
}

// DSN builds the Postgres connection string for gorm.
func (c DBConfig) DSN() string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		c.Host, c.User, c.Password, c.Name, c.Port, c.SSLMode,
	)
}
