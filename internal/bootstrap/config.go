package bootstrap

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	ServerAddr string
	LogLevel   string

	DatabaseDSN string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	RecognizerURL   string
	RecognizerToken string

	RemoteEndpoint string
	RemoteModel    string
	RemoteTimeout  time.Duration
	RemoteAPIKey   string

	ArtifactDir string
	Language    string
	SampleRate  int

	SegmentDuration time.Duration
	MaxRetries      int
	MaxActive       int
}

func LoadConfig() *Config {
	return &Config{
		ServerAddr: getEnv("SERVER_ADDR", ":8080"),
		LogLevel:   getEnv("LOG_LEVEL", "info"),

		DatabaseDSN: getEnv("DATABASE_DSN", ""),

		RedisAddr:     getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       getEnvInt("REDIS_DB", 0),

		RecognizerURL:   getEnv("RECOGNIZER_URL", "ws://localhost:50052/stream"),
		RecognizerToken: getEnv("RECOGNIZER_TOKEN", ""),

		RemoteEndpoint: getEnv("TRANSCRIPTION_ENDPOINT", ""),
		RemoteModel:    getEnv("TRANSCRIPTION_MODEL", ""),
		RemoteTimeout:  getEnvDuration("TRANSCRIPTION_TIMEOUT", 60*time.Second),
		RemoteAPIKey:   getEnv("TRANSCRIPTION_API_KEY", ""),

		ArtifactDir: getEnv("ARTIFACT_DIR", "./artifacts"),
		Language:    getEnv("RECOGNIZER_LANGUAGE", "en-US"),
		SampleRate:  getEnvInt("AUDIO_SAMPLE_RATE", 16000),

		SegmentDuration: getEnvDuration("SEGMENT_DURATION", 30*time.Second),
		MaxRetries:      getEnvInt("JOB_MAX_RETRIES", 5),
		MaxActive:       getEnvInt("JOB_MAX_ACTIVE", 3),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
