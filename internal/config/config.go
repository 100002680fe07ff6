package config

import (
	"fmt"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

type Config struct {
	APIPort  string `env:"API_PORT" envDefault:"8080"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
	APIKey   string `env:"API_KEY"`

	DataDir  string `env:"DATA_DIR" envDefault:"./data/curriculum"`
	IndexDir string `env:"INDEX_DIR" envDefault:"./data/index"`

	OllamaURL       string `env:"OLLAMA_URL" envDefault:"http://localhost:11434"`
	EmbedModel      string `env:"EMBED_MODEL" envDefault:"all-minilm"`
	EmbedDimensions int    `env:"EMBED_DIMENSIONS" envDefault:"384"`

	LLMBaseURL        string  `env:"LLM_BASE_URL" envDefault:"http://localhost:11434/v1"`
	LLMAPIKey         string  `env:"LLM_API_KEY"`
	LLMModel          string  `env:"LLM_MODEL" envDefault:"llama3.1:8b"`
	LLMTimeoutSeconds int     `env:"LLM_TIMEOUT_SECONDS" envDefault:"30"`
	LLMTemperature    float64 `env:"LLM_TEMPERATURE" envDefault:"0.2"`
	LLMMaxTokens      int     `env:"LLM_MAX_TOKENS" envDefault:"600"`

	TopK            int `env:"TOP_K" envDefault:"5"`
	OverfetchFactor int `env:"OVERFETCH_FACTOR" envDefault:"3"`

	ChunkSize    int `env:"CHUNK_SIZE" envDefault:"700"`
	ChunkOverlap int `env:"CHUNK_OVERLAP" envDefault:"120"`

	RoutingRulesPath string `env:"ROUTING_RULES_PATH"`

	APIRateLimitRPS   float64 `env:"API_RATE_LIMIT_RPS" envDefault:"10"`
	APIRateLimitBurst int     `env:"API_RATE_LIMIT_BURST" envDefault:"20"`
	APIMaxConcurrent  int     `env:"API_MAX_CONCURRENT" envDefault:"8"`
}

// Load reads configuration from the environment, picking up a local .env
// file first when one exists.
func Load() (Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}
