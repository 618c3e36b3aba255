package config

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/alkime/jailu/internal/llm"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

const (
	// EnvProduction represents the production environment.
	EnvProduction = "production"
	// EnvDevelopment represents the development environment.
	EnvDevelopment = "development"
)

// Config holds all application configuration.
type Config struct {
	// Server settings
	Env            string   `envconfig:"ENV" default:"development"`
	Port           string   `envconfig:"PORT" default:"8080"`
	TrustedProxies []string `envconfig:"TRUSTED_PROXIES" default:"10.0.0.0/8,172.16.0.0/12"`
	PublicDir      string   `envconfig:"PUBLIC_DIR" default:"./public"`
	// SessionIdleTTL is how long a session without requests or event streams is kept.
	SessionIdleTTL time.Duration `envconfig:"SESSION_IDLE_TTL" default:"30m"`

	// Security settings
	HSTSMaxAge int    `envconfig:"HSTS_MAX_AGE" default:"31536000"`
	CSPMode    string `envconfig:"CSP_MODE" default:"relaxed"`

	// Logging settings
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`

	// Generation settings
	LLMProvider     string `envconfig:"LLM_PROVIDER" default:"gemini"`
	LLMModel        string `envconfig:"LLM_MODEL"`
	APIKey          string `envconfig:"API_KEY"`
	GeminiAPIKey    string `envconfig:"GEMINI_API_KEY"`
	AnthropicAPIKey string `envconfig:"ANTHROPIC_API_KEY"`
	OpenAIAPIKey    string `envconfig:"OPENAI_API_KEY"`

	// Storage settings; empty means the user config directory.
	DataDir string `envconfig:"DATA_DIR"`
}

// LoadConfig loads configuration from .env file and environment variables.
func LoadConfig() (*Config, error) {
	// Try to load .env file (optional for development)
	if err := godotenv.Load(); err != nil {
		// Not an error if file doesn't exist (expected in production)
		if !os.IsNotExist(err) {
			log.Printf("Warning: Error loading .env file: %v", err)
		}
	}

	// Parse environment variables into config struct
	var config Config
	if err := envconfig.Process("", &config); err != nil {
		return nil, fmt.Errorf("failed to process environment variables: %w", err)
	}

	return &config, nil
}

// LLMSettings derives the generation client settings. API_KEY wins over the
// provider-specific variable.
func (c *Config) LLMSettings() (llm.Settings, error) {
	provider, err := llm.ParseProvider(c.LLMProvider)
	if err != nil {
		return llm.Settings{}, err
	}

	key := strings.TrimSpace(c.APIKey)
	if key == "" {
		switch provider {
		case llm.ProviderAnthropic:
			key = c.AnthropicAPIKey
		case llm.ProviderOpenAI:
			key = c.OpenAIAPIKey
		default:
			key = c.GeminiAPIKey
		}
	}

	return llm.Settings{
		Provider: provider,
		APIKey:   strings.TrimSpace(key),
		Model:    c.LLMModel,
	}, nil
}

// BuildCSP constructs Content Security Policy based on mode.
func BuildCSP(mode string) string {
	if mode == "strict" {
		// Production CSP
		return "default-src 'self'; " +
			"style-src 'self' 'unsafe-inline'; " +
			"script-src 'self'; " +
			"img-src 'self' data:; " +
			"connect-src 'self'; " +
			"object-src 'none'; " +
			"base-uri 'self'; " +
			"form-action 'self'"
	}

	// Development/relaxed CSP
	return "default-src 'self'; " +
		"style-src 'self' 'unsafe-inline'; " +
		"script-src 'self' 'unsafe-inline'; " +
		"img-src 'self' data:; " +
		"connect-src 'self'"
}
