package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// ContextTokenBudget caps the token estimate of assembled source material
// before it is summarized down to begin/middle/end excerpts.
const ContextTokenBudget = 500

// GenerationConfig carries the LLM budgets for one process. It is constructed
// once at startup and passed by value into the generator so tests can inject
// arbitrary budgets.
type GenerationConfig struct {
	Temperature        float64
	MaxTokens          int
	ResponseRatio      float64
	ContextTokenBudget int
}

// ResponseBudget is the per-call response token budget that the pipeline
// steps divide between themselves.
func (g GenerationConfig) ResponseBudget() int {
	return int(float64(g.MaxTokens) * g.ResponseRatio)
}

type Config struct {
	Port              string
	DatabaseURL       string
	OllamaBaseURL     string
	OllamaModel       string
	PineconeAPIKey    string
	PineconeIndexName string
	RendererURL       string
	Generation        GenerationConfig
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Printf("[INFO] No .env file found, using process environment")
	}

	return &Config{
		Port:              getEnv("PORT", "8080"),
		DatabaseURL:       os.Getenv("DB_URL"),
		OllamaBaseURL:     getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
		OllamaModel:       getEnv("OLLAMA_MODEL", "llama3.1"),
		PineconeAPIKey:    os.Getenv("PINECONE_API_KEY"),
		PineconeIndexName: getEnv("PINECONE_INDEX_NAME", "coursegen-sources-index"),
		RendererURL:       os.Getenv("RENDERER_URL"),
		Generation: GenerationConfig{
			Temperature:        getEnvFloat("LLM_TEMPERATURE", 0.1),
			MaxTokens:          getEnvInt("LLM_MAX_TOKENS", 2048),
			ResponseRatio:      getEnvFloat("LLM_RESPONSE_RATIO", 0.7),
			ContextTokenBudget: ContextTokenBudget,
		},
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		log.Printf("[ERROR] Invalid integer for %s: %q, using default %d", key, value, fallback)
		return fallback
	}
	return parsed
}

func getEnvFloat(key string, fallback float64) float64 {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		log.Printf("[ERROR] Invalid float for %s: %q, using default %f", key, value, fallback)
		return fallback
	}
	return parsed
}
