package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	App      AppConfig
	Storage  StorageConfig
	Redis    RedisConfig
	Firebase FirebaseConfig
	CORS     CORSConfig
}

type ServerConfig struct {
	Port           string
	RequestTimeout time.Duration
}

type DatabaseConfig struct {
	URL      string
	Host     string
	Port     int
	User     string
	Password string
	Name     string
}

type AppConfig struct {
	Environment string
	LogLevel    string
	Version     string
}

// StorageConfig drives attachment validation, image normalization and the
// choice of storage backend.
type StorageConfig struct {
	UseMock           bool
	MaxUploadBytes    int64
	AllowedImageTypes []string
	ImageMaxWidth     int
	ImageMaxHeight    int
	JPEGQuality       int

	LocalDir     string
	LocalBaseURL string

	AWSAccessKeyID     string
	AWSSecretAccessKey string
	AWSRegion          string
	S3Bucket           string
	S3BaseURL          string
	S3Endpoint         string
}

type RedisConfig struct {
	URL           string
	AdminCacheTTL time.Duration
}

type FirebaseConfig struct {
	CredentialsPath string
}

type CORSConfig struct {
	AllowedOrigins []string
}

func Load() (*Config, error) {
	// Load .env file if it exists (ignore error in production)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:           getEnv("PORT", "8080"),
			RequestTimeout: getEnvAsDuration("REQUEST_TIMEOUT", 30*time.Second),
		},
		Database: DatabaseConfig{
			URL:      getEnv("DATABASE_URL", ""),
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnvAsInt("DB_PORT", 5432),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", ""),
			Name:     getEnv("DB_NAME", "projects_catalog"),
		},
		App: AppConfig{
			Environment: getEnv("APP_ENV", "development"),
			LogLevel:    getEnv("LOG_LEVEL", "info"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
		},
		Storage: StorageConfig{
			UseMock:           getEnvAsBool("USE_MOCK_S3", true),
			MaxUploadBytes:    int64(getEnvAsInt("MAX_UPLOAD_BYTES", 5*1024*1024)),
			AllowedImageTypes: getEnvAsList("ALLOWED_IMAGE_TYPES", []string{"image/jpeg", "image/png", "image/gif", "image/webp"}),
			ImageMaxWidth:     getEnvAsInt("IMAGE_MAX_WIDTH", 1024),
			ImageMaxHeight:    getEnvAsInt("IMAGE_MAX_HEIGHT", 1024),
			JPEGQuality:       getEnvAsInt("IMAGE_JPEG_QUALITY", 85),

			LocalDir:     getEnv("LOCAL_STORAGE_DIR", "./uploads"),
			LocalBaseURL: strings.TrimRight(getEnv("LOCAL_STORAGE_BASE_URL", "http://localhost:8080/uploads"), "/"),

			AWSAccessKeyID:     getEnv("AWS_ACCESS_KEY_ID", ""),
			AWSSecretAccessKey: getEnv("AWS_SECRET_ACCESS_KEY", ""),
			AWSRegion:          getEnv("AWS_REGION", "us-east-1"),
			S3Bucket:           getEnv("S3_BUCKET_NAME", "projects-catalog-images"),
			S3BaseURL:          strings.TrimRight(getEnv("S3_BASE_URL", ""), "/"),
			S3Endpoint:         getEnv("S3_ENDPOINT", ""),
		},
		Redis: RedisConfig{
			URL:           getEnv("REDIS_URL", ""),
			AdminCacheTTL: getEnvAsDuration("ADMIN_CACHE_TTL", 30*time.Second),
		},
		Firebase: FirebaseConfig{
			CredentialsPath: getEnv("FIREBASE_CREDENTIALS_PATH", ""),
		},
		CORS: CORSConfig{
			AllowedOrigins: getEnvAsList("CORS_ALLOWED_ORIGINS", []string{"http://localhost:5173"}),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("PORT is required")
	}

	if c.Database.URL == "" && c.Database.Host == "" {
		return fmt.Errorf("DATABASE_URL or DB_HOST is required")
	}

	if c.Storage.MaxUploadBytes <= 0 {
		return fmt.Errorf("MAX_UPLOAD_BYTES must be positive")
	}

	if len(c.Storage.AllowedImageTypes) == 0 {
		return fmt.Errorf("ALLOWED_IMAGE_TYPES must not be empty")
	}

	if c.Storage.ImageMaxWidth <= 0 || c.Storage.ImageMaxHeight <= 0 {
		return fmt.Errorf("IMAGE_MAX_WIDTH and IMAGE_MAX_HEIGHT must be positive")
	}

	if c.Storage.JPEGQuality < 1 || c.Storage.JPEGQuality > 100 {
		return fmt.Errorf("IMAGE_JPEG_QUALITY must be between 1 and 100")
	}

	if c.Storage.UseMock && c.Storage.LocalDir == "" {
		return fmt.Errorf("LOCAL_STORAGE_DIR is required when USE_MOCK_S3 is enabled")
	}

	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("Warning: Invalid integer for %s, using default: %d", key, defaultValue)
		return defaultValue
	}

	return value
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		log.Printf("Warning: Invalid boolean for %s, using default: %t", key, defaultValue)
		return defaultValue
	}

	return value
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := time.ParseDuration(valueStr)
	if err != nil {
		log.Printf("Warning: Invalid duration for %s, using default: %s", key, defaultValue)
		return defaultValue
	}

	return value
}

// getEnvAsList splits a comma separated value, dropping blanks.
func getEnvAsList(key string, defaultValue []string) []string {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	var out []string
	for _, part := range strings.Split(valueStr, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
