package config

import (
	"os"
	"path/filepath"
	"strconv"
)

// Config holds environment-driven configuration.
type Config struct {
	Addr string

	DBHost     string
	DBPort     int
	DBName     string
	DBUser     string
	DBPassword string

	ModelPath           string
	LabelsPath          string
	ModelInputSize      int
	ConfidenceThreshold float32
	IoUThreshold        float32

	TempDir     string
	Currency    string
	LogDir      string
	MaxUploadMB int
}

// Load reads configuration from environment variables. Required database
// values are not validated; a missing one shows up later as a failed lookup.
func Load() *Config {
	return &Config{
		Addr: getEnv("APP_ADDR", ":8080"),

		DBHost:     os.Getenv("DB_HOST"),
		DBPort:     getEnvAsInt("DB_PORT", 5432),
		DBName:     os.Getenv("DB_NAME"),
		DBUser:     os.Getenv("DB_USER"),
		DBPassword: os.Getenv("DB_PASSWORD"),

		ModelPath:           getEnv("MODEL_PATH", filepath.Join("model", "best.onnx")),
		LabelsPath:          getEnv("LABELS_PATH", filepath.Join("model", "data.yaml")),
		ModelInputSize:      getEnvAsInt("MODEL_INPUT_SIZE", 640),
		ConfidenceThreshold: getEnvAsFloat32("CONFIDENCE_THRESHOLD", 0.25),
		IoUThreshold:        getEnvAsFloat32("IOU_THRESHOLD", 0.7),

		TempDir:     getEnv("TEMP_DIR", "temp"),
		Currency:    getEnv("CURRENCY", "บาท"),
		LogDir:      getEnv("LOG_DIR", "logs"),
		MaxUploadMB: getEnvAsInt("MAX_UPLOAD_MB", 10),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsFloat32(key string, defaultValue float32) float32 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 32); err == nil {
			return float32(f)
		}
	}
	return defaultValue
}
