package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application.
type Config struct {
	// Filesystem layout. InboxPath, AblagePath and ProcessedPath are
	// derived from RootPath and created at load time.
	RootPath      string
	InboxPath     string
	AblagePath    string
	ProcessedPath string
	LearningPath  string
	DBPath        string

	// Ollama completion service.
	OllamaBaseURL string
	OllamaModel   string
	OllamaTimeout time.Duration

	// Minimum confidence a suggestion must reach before the engine
	// accepts the match; below it the new-folder proposer takes over.
	SuggestMinConfidence float64

	APIPort   string
	LogLevel  slog.Level
	LogFormat string
}

// Load reads configuration from environment variables and returns a Config struct.
// It applies defaults for optional fields and validates the rest.
// If a .env file exists in the current directory or project root, it is loaded
// automatically; environment variables already set take precedence.
func Load() (*Config, error) {
	// Try to load .env file (ignore error if it doesn't exist)
	_ = godotenv.Load()

	// Walk up from the working directory to find a project-root .env.
	wd, err := os.Getwd()
	if err == nil {
		dir := wd
		for i := 0; i < 5; i++ {
			envPath := filepath.Join(dir, ".env")
			if _, err := os.Stat(envPath); err == nil {
				_ = godotenv.Load(envPath)
				break
			}
			parent := filepath.Dir(dir)
			if parent == dir {
				break
			}
			dir = parent
		}
	}

	root := getEnv("NAS_ROOT", "~/NAS")
	root, err = expandHome(root)
	if err != nil {
		return nil, fmt.Errorf("NAS_ROOT: %w", err)
	}

	cfg := &Config{
		RootPath:      root,
		InboxPath:     filepath.Join(root, "inbox"),
		AblagePath:    filepath.Join(root, "ablage"),
		ProcessedPath: filepath.Join(root, "processed"),
		OllamaBaseURL: getEnv("OLLAMA_URL", "http://localhost:11434"),
		OllamaModel:   getEnv("OLLAMA_MODEL", "qwen2.5:7b-instruct"),
		APIPort:       getEnv("API_PORT", "8080"),
		LogFormat:     getEnv("LOG_FORMAT", "text"),
	}
	cfg.LearningPath = filepath.Join(cfg.ProcessedPath, "learning_data.json")
	cfg.DBPath = getEnv("DB_PATH", filepath.Join(cfg.ProcessedPath, "ablage-ai.db"))

	timeoutStr := getEnv("OLLAMA_TIMEOUT", "30")
	timeoutSec, err := strconv.Atoi(timeoutStr)
	if err != nil || timeoutSec <= 0 {
		return nil, fmt.Errorf("OLLAMA_TIMEOUT must be a positive number of seconds, got %q", timeoutStr)
	}
	cfg.OllamaTimeout = time.Duration(timeoutSec) * time.Second

	minConfStr := getEnv("SUGGEST_MIN_CONFIDENCE", "0.6")
	minConf, err := strconv.ParseFloat(minConfStr, 64)
	if err != nil || minConf < 0 || minConf > 1 {
		return nil, fmt.Errorf("SUGGEST_MIN_CONFIDENCE must be a number in [0,1], got %q", minConfStr)
	}
	cfg.SuggestMinConfidence = minConf

	switch level := getEnv("LOG_LEVEL", "info"); level {
	case "debug":
		cfg.LogLevel = slog.LevelDebug
	case "info":
		cfg.LogLevel = slog.LevelInfo
	case "warn":
		cfg.LogLevel = slog.LevelWarn
	case "error":
		cfg.LogLevel = slog.LevelError
	default:
		return nil, fmt.Errorf("LOG_LEVEL must be one of debug, info, warn, error, got %q", level)
	}

	// Ensure the working directories exist up front.
	for _, dir := range []string{cfg.InboxPath, cfg.AblagePath, cfg.ProcessedPath} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	return cfg, nil
}

// expandHome replaces a leading "~" with the user's home directory.
func expandHome(path string) (string, error) {
	if path == "~" || (len(path) > 1 && path[0] == '~' && path[1] == filepath.Separator) {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to resolve home directory: %w", err)
		}
		return filepath.Join(home, path[1:]), nil
	}
	return path, nil
}

// getEnv gets an environment variable or returns a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
