package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server ServerConfig
	Upload UploadConfig
	Worker WorkerConfig
	NLP    NLPConfig
}

type ServerConfig struct {
	Port string
	Env  string
}

type UploadConfig struct {
	MaxFileSize int64
}

type WorkerConfig struct {
	Concurrency     int
	QueueSize       int
	AnalysisTimeout time.Duration
}

type NLPConfig struct {
	// ModelPath points at a prose NER model directory; empty uses the built-in model.
	ModelPath string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found. Using default values.")
	}

	return &Config{
		Server: ServerConfig{
			Port: getEnv("PORT", "3000"),
			Env:  getEnv("ENV", "development"),
		},
		Upload: UploadConfig{
			MaxFileSize: getEnvAsInt64("MAX_FILE_SIZE", 10485760),
		},
		Worker: WorkerConfig{
			Concurrency:     getEnvAsInt("WORKER_CONCURRENCY", 3),
			QueueSize:       getEnvAsInt("WORKER_QUEUE_SIZE", 100),
			AnalysisTimeout: getEnvAsDuration("ANALYSIS_TIMEOUT", "30s"),
		},
		NLP: NLPConfig{
			ModelPath: getEnv("NLP_MODEL_PATH", ""),
		},
	}
}

func (c *Config) IsDevelopment() bool {
	return c.Server.Env == "development"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseInt(valueStr, 10, 64); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue string) time.Duration {
	valueStr := getEnv(key, defaultValue)
	if duration, err := time.ParseDuration(valueStr); err == nil {
		return duration
	}
	duration, _ := time.ParseDuration(defaultValue)
	return duration
}
