package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	App       AppConfig
	Database  DatabaseConfig
	Assistant AssistantConfig
}

type AppConfig struct {
	Port               string
	BaseURL            string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
}

type DatabaseConfig struct {
	// Connection is optional: when empty the assistant runs without a
	// database and the learning cache persists to its JSON file only.
	Connection string
}

type AssistantConfig struct {
	KnowledgeDir       string
	LearningCachePath  string
	LearningFlushEvery int
	// LearningStore selects the persistence backend: "file" or "postgres".
	LearningStore string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, using system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			BaseURL:            getEnv("APP_BASE_URL", "http://localhost:3000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "logs/app.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:3001"),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		Assistant: AssistantConfig{
			KnowledgeDir:       getEnv("KNOWLEDGE_DIR", "uploads/documents"),
			LearningCachePath:  getEnv("LEARNING_CACHE_PATH", "data/learning_cache.json"),
			LearningFlushEvery: getEnvAsInt("LEARNING_FLUSH_EVERY", 10),
			LearningStore:      getEnv("LEARNING_STORE", "file"),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}
