package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App     AppConfig
	Storage StorageConfig
	Cleanup CleanupConfig
	Editor  EditorConfig
}

type AppConfig struct {
	Port               string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
}

type StorageConfig struct {
	Path            string
	ChangeTopicName string
}

type CleanupConfig struct {
	APIKey  string
	BaseURL string
	Model   string
}

type EditorConfig struct {
	SessionTTL time.Duration
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "logs/app.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
		},
		Storage: StorageConfig{
			Path:            getEnv("STORAGE_PATH", "data/notepocket.db"),
			ChangeTopicName: getEnv("STORE_CHANGE_TOPIC_NAME", "STORE_CHANGED"),
		},
		Cleanup: CleanupConfig{
			APIKey:  getEnv("GROQ_API_KEY", ""),
			BaseURL: getEnv("GROQ_BASE_URL", "https://api.groq.com/openai/v1"),
			Model:   getEnv("GROQ_MODEL", "llama-3.3-70b-versatile"),
		},
		Editor: EditorConfig{
			SessionTTL: time.Duration(getEnvAsInt("EDITOR_SESSION_TTL_MINUTES", 60)) * time.Minute,
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
