package api

import (
	"fmt"
	"os"
	"strings"

	"github.com/Apurer/coffee-admin/internal/platform/observability"
)

// Config carries environment-driven settings for the fake API process.
type Config struct {
	Port string
	// UploadsDir stores uploaded images on disk; empty keeps them in memory.
	UploadsDir string
	// S3Bucket stores uploaded images in S3 instead, taking precedence over
	// UploadsDir.
	S3Bucket    string
	S3Region    string
	S3Endpoint  string
	S3PathStyle bool
	Seed        bool
	LogLevel    string
	Exporter    string
}

// LoadConfig reads environment variables, applies defaults, and validates basic constraints.
func LoadConfig() (Config, error) {
	cfg := Config{
		Port:        envDefault("PORT", "8080"),
		UploadsDir:  strings.TrimSpace(os.Getenv("UPLOADS_DIR")),
		S3Bucket:    strings.TrimSpace(os.Getenv("UPLOADS_S3_BUCKET")),
		S3Region:    strings.TrimSpace(os.Getenv("AWS_REGION")),
		S3Endpoint:  strings.TrimSpace(os.Getenv("UPLOADS_S3_ENDPOINT")),
		S3PathStyle: isTruthy(os.Getenv("UPLOADS_S3_PATH_STYLE")),
		Seed:        isTruthy(envDefault("SEED", "true")),
		LogLevel:    envDefault("LOG_LEVEL", "info"),
		Exporter:    envDefault("OTEL_TRACES_EXPORTER", observability.ExporterNone),
	}
	for _, r := range cfg.Port {
		if r < '0' || r > '9' {
			return Config{}, fmt.Errorf("PORT must be numeric, got %q", cfg.Port)
		}
	}
	switch cfg.Exporter {
	case observability.ExporterOTLP, observability.ExporterStdout, observability.ExporterNone:
	default:
		return Config{}, fmt.Errorf("OTEL_TRACES_EXPORTER must be otlp, stdout or none")
	}
	return cfg, nil
}

func envDefault(key, fallback string) string {
	if val := strings.TrimSpace(os.Getenv(key)); val != "" {
		return val
	}
	return fallback
}

func isTruthy(value string) bool {
	value = strings.TrimSpace(strings.ToLower(value))
	return value == "1" || value == "true" || value == "yes"
}
