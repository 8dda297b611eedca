package config

import (
	"fmt"
	"os"
	"time"
)

// Config holds every environment-driven setting the service reads.
// Values come from the process environment; main loads a .env file
// first outside of production.
type Config struct {
	Port       string
	AuthSecret string

	DatabaseDriver string // "postgres" or "sqlite"
	DatabaseURL    string

	MediaBackend string // "cloudinary" or "local"

	CloudinaryCloudName string
	CloudinaryAPIKey    string
	CloudinaryAPISecret string

	// Local media backend settings
	MediaDir    string
	BaseURL     string
	StorageType string // "disk" or "s3"

	AWSRegion   string
	AWSS3Bucket string

	ShutdownTimeout time.Duration
}

func Load() (*Config, error) {
	cfg := &Config{
		Port:                getEnv("PORT", "8080"),
		AuthSecret:          os.Getenv("AUTH_SECRET"),
		DatabaseDriver:      getEnv("DATABASE_DRIVER", "sqlite"),
		DatabaseURL:         getEnv("DATABASE_URL", "videos.db"),
		MediaBackend:        getEnv("MEDIA_BACKEND", "local"),
		CloudinaryCloudName: os.Getenv("CLOUDINARY_CLOUD_NAME"),
		CloudinaryAPIKey:    os.Getenv("CLOUDINARY_API_KEY"),
		CloudinaryAPISecret: os.Getenv("CLOUDINARY_API_SECRET"),
		MediaDir:            getEnv("MEDIA_DIR", "./media-data"),
		BaseURL:             getEnv("BASE_URL", "http://localhost:8080"),
		StorageType:         getEnv("STORAGE_TYPE", "disk"),
		AWSRegion:           os.Getenv("AWS_REGION"),
		AWSS3Bucket:         os.Getenv("AWS_S3_BUCKET"),
		ShutdownTimeout:     10 * time.Second,
	}

	if cfg.AuthSecret == "" {
		return nil, fmt.Errorf("AUTH_SECRET is required")
	}

	switch cfg.DatabaseDriver {
	case "postgres", "sqlite":
	default:
		return nil, fmt.Errorf("unsupported DATABASE_DRIVER: %s", cfg.DatabaseDriver)
	}

	switch cfg.MediaBackend {
	case "cloudinary", "local":
	default:
		return nil, fmt.Errorf("unsupported MEDIA_BACKEND: %s", cfg.MediaBackend)
	}

	if cfg.MediaBackend == "local" && cfg.StorageType == "s3" {
		if cfg.AWSRegion == "" || cfg.AWSS3Bucket == "" {
			return nil, fmt.Errorf("AWS_REGION and AWS_S3_BUCKET are required when STORAGE_TYPE=s3")
		}
	}

	return cfg, nil
}

// HasCloudinary reports whether all cloudinary credentials are present.
// The video upload route fails with a configuration error when the
// cloudinary backend is selected without them.
func (c *Config) HasCloudinary() bool {
	return c.CloudinaryCloudName != "" && c.CloudinaryAPIKey != "" && c.CloudinaryAPISecret != ""
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
