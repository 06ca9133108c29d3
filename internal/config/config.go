package config

import (
	"os"
	"strconv"
)

type Config struct {
	// Redis
	RedisURL string

	// Server
	Port        string
	Environment string

	// Pagination
	DefaultPageSize int
	MaxPageSize     int

	// Upload limits
	MaxUploadFiles int

	// Export
	MaxExportRows int
}

func Load() *Config {
	defaultPageSize, _ := strconv.Atoi(getEnv("DEFAULT_PAGE_SIZE", "12"))
	maxPageSize, _ := strconv.Atoi(getEnv("MAX_PAGE_SIZE", "100"))
	maxUploadFiles, _ := strconv.Atoi(getEnv("MAX_UPLOAD_FILES", "12"))
	maxExportRows, _ := strconv.Atoi(getEnv("MAX_EXPORT_ROWS", "10000"))

	return &Config{
		// Redis
		RedisURL: getEnv("REDIS_URL", "redis://redis.redis-marketplace.svc.cluster.local:6379/0"),

		// Server
		Port:        getEnv("PORT", "8095"),
		Environment: getEnv("ENVIRONMENT", "development"),

		// Pagination
		DefaultPageSize: defaultPageSize,
		MaxPageSize:     maxPageSize,

		// Upload limits
		MaxUploadFiles: maxUploadFiles,

		// Export
		MaxExportRows: maxExportRows,
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
