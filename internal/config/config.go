package config

import (
	"errors"
	"os"
	"strconv"
)

type Config struct {
	BotToken string
	LogLevel string

	GeminiAPIKey string
	GeminiModel  string

	DownloadDir string

	MetricsPort string

	WorkerPoolSize        int
	ExtractTimeoutSeconds int
	AnswerTimeoutSeconds  int

	TesseractLangs string
}

var (
	ErrMissingBotToken = errors.New("BOT_TOKEN is required")
	ErrMissingAPIKey   = errors.New("GEMINI_API_KEY or GOOGLE_API_KEY is required")
)

func Load() (Config, error) {
	cfg := Config{
		BotToken: os.Getenv("BOT_TOKEN"),
		LogLevel: mustEnv("LOG_LEVEL", "info"),

		GeminiAPIKey: firstEnv("GEMINI_API_KEY", "GOOGLE_API_KEY"),
		GeminiModel:  mustEnv("GEMINI_MODEL", "gemini-2.5-flash"),

		DownloadDir: mustEnv("DOWNLOAD_DIR", "./downloads"),

		MetricsPort: mustEnv("METRICS_PORT", "9090"),

		WorkerPoolSize:        mustEnvInt("WORKER_POOL_SIZE", 4),
		ExtractTimeoutSeconds: mustEnvInt("EXTRACT_TIMEOUT_SECONDS", 120),
		AnswerTimeoutSeconds:  mustEnvInt("ANSWER_TIMEOUT_SECONDS", 90),

		TesseractLangs: mustEnv("TESSERACT_LANGS", "fas+eng"),
	}

	if cfg.BotToken == "" {
		return Config{}, ErrMissingBotToken
	}
	if cfg.GeminiAPIKey == "" {
		return Config{}, ErrMissingAPIKey
	}
	return cfg, nil
}

func mustEnv(key, fallback string) string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	return v
}

func mustEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

// firstEnv returns the first non-empty value among the named variables.
func firstEnv(keys ...string) string {
	for _, key := range keys {
		if v := os.Getenv(key); v != "" {
			return v
		}
	}
	return ""
}
