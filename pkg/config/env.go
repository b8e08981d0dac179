// Env loader
package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	AppEnv     string
	Port       string
	DBHost     string
	DBPort     string
	DBName     string
	DBUser     string
	DBPassword string
	DBSchema   string

	// Data directory for the device-local stores (daily cache, journal).
	DataDir string

	// Reference timezone that defines the "calendar day" of a devotional.
	Timezone string

	OpenAIAPIKey  string
	OpenAIBaseURL string
	OpenAIModel   string

	ElevenLabsAPIKey  string
	ElevenLabsVoiceID string
	ElevenLabsBaseURL string

	AudioBucket       string
	AudioRegion       string
	AudioAccessKeyID  string
	AudioSecretKey    string
	AudioEndpoint     string
	AudioCustomDomain string

	AdminToken string
}

// LoadConfig loads environment variables from the .env file
func LoadConfig() *Config {

	appEnv := os.Getenv("APP_ENV")

	switch appEnv {
	case "production":
		if err := godotenv.Load(".env.production"); err == nil {
			fmt.Println("Loaded .env.production")
		}
	default:
		if err := godotenv.Load(".env.development"); err == nil {
			fmt.Println("Loaded .env.development")
		}
	}

	cfg := &Config{
		AppEnv:     getEnv("APP_ENV", "development"),
		Port:       getEnv("PORT", "8080"),
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBName:     getEnv("DB_DATABASE", "terapia_com_deus"),
		DBUser:     getEnv("DB_USERNAME", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", ""),
		DBSchema:   getEnv("DB_SCHEMA", "public"),

		DataDir:  getEnv("DATA_DIR", "data"),
		Timezone: getEnv("REFERENCE_TIMEZONE", "America/Sao_Paulo"),

		OpenAIAPIKey:  getEnv("OPENAI_API_KEY", ""),
		OpenAIBaseURL: getEnv("OPENAI_BASE_URL", ""),
		OpenAIModel:   getEnv("OPENAI_MODEL", "gpt-4o-mini"),

		ElevenLabsAPIKey:  getEnv("ELEVEN_LABS_API_KEY", ""),
		ElevenLabsVoiceID: getEnv("ELEVEN_LABS_VOICE_ID", "33B4UnXyTNbgLmdEDh5P"),
		ElevenLabsBaseURL: getEnv("ELEVEN_LABS_BASE_URL", "https://api.elevenlabs.io"),

		AudioBucket:       getEnv("AUDIO_BUCKET", "devotional-audios"),
		AudioRegion:       getEnv("AUDIO_REGION", "us-east-1"),
		AudioAccessKeyID:  getEnv("AUDIO_ACCESS_KEY_ID", ""),
		AudioSecretKey:    getEnv("AUDIO_SECRET_ACCESS_KEY", ""),
		AudioEndpoint:     getEnv("AUDIO_ENDPOINT", ""),
		AudioCustomDomain: getEnv("AUDIO_CUSTOM_DOMAIN", ""),

		AdminToken: getEnv("ADMIN_TOKEN", ""),
	}

	return cfg
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func GetAppEnv() string {
	if value, exists := os.LookupEnv("APP_ENV"); exists {
		return value
	}
	return "development"
}
