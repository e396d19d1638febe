package config

import (
	"fmt"
	"os"
	"time"
)

type Config struct {
	DatabaseURL string // TZUROT_DATABASE_URL (required)
	NATSURL     string // TZUROT_NATS_URL (optional, empty = no events)

	// Avatar URL derivation. Public is preferred; Internal is the
	// fallback. Both empty means avatar URLs are omitted.
	PublicBaseURL   string // TZUROT_PUBLIC_URL
	InternalBaseURL string // TZUROT_INTERNAL_URL

	// AdminUserID is the external id of the system administrator used by
	// name-collision tie-breaking (optional, empty = no admin scoring).
	AdminUserID string // TZUROT_ADMIN_USER_ID

	// Resolution cache bounds.
	CacheSize int           // TZUROT_CACHE_SIZE (default 100)
	CacheTTL  time.Duration // TZUROT_CACHE_TTL (default 10m)

	// Roster export settings.
	ExportInterval   time.Duration // TZUROT_EXPORT_INTERVAL (default 0 = disabled)
	ExportS3Bucket   string        // TZUROT_EXPORT_S3_BUCKET (enables S3 when set)
	ExportS3Endpoint string        // TZUROT_EXPORT_S3_ENDPOINT (custom endpoint for MinIO)
	ExportS3Region   string        // TZUROT_EXPORT_S3_REGION (default "us-east-1")
	ExportS3Key      string        // TZUROT_EXPORT_S3_KEY (default "tzurot/roster.jsonl")
}

func Load() (*Config, error) {
	c := &Config{
		DatabaseURL:      os.Getenv("TZUROT_DATABASE_URL"),
		NATSURL:          os.Getenv("TZUROT_NATS_URL"),
		PublicBaseURL:    os.Getenv("TZUROT_PUBLIC_URL"),
		InternalBaseURL:  os.Getenv("TZUROT_INTERNAL_URL"),
		AdminUserID:      os.Getenv("TZUROT_ADMIN_USER_ID"),
		ExportS3Bucket:   os.Getenv("TZUROT_EXPORT_S3_BUCKET"),
		ExportS3Endpoint: os.Getenv("TZUROT_EXPORT_S3_ENDPOINT"),
		ExportS3Region:   envOrDefault("TZUROT_EXPORT_S3_REGION", "us-east-1"),
		ExportS3Key:      envOrDefault("TZUROT_EXPORT_S3_KEY", "tzurot/roster.jsonl"),
	}
	if c.DatabaseURL == "" {
		return nil, fmt.Errorf("TZUROT_DATABASE_URL is required")
	}

	size, err := envInt("TZUROT_CACHE_SIZE", 100)
	if err != nil {
		return nil, err
	}
	c.CacheSize = size

	ttl, err := envDuration("TZUROT_CACHE_TTL", 10*time.Minute)
	if err != nil {
		return nil, err
	}
	c.CacheTTL = ttl

	interval, err := envDuration("TZUROT_EXPORT_INTERVAL", 0)
	if err != nil {
		return nil, err
	}
	c.ExportInterval = interval

	return c, nil
}

// AvatarBaseURL returns the base URL used for avatar derivation, preferring
// the public URL. Empty when neither is configured.
func (c *Config) AvatarBaseURL() string {
	if c.PublicBaseURL != "" {
		return c.PublicBaseURL
	}
	return c.InternalBaseURL
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	var n int
	if _, err := fmt.Sscanf(v, "%d", &n); err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return n, nil
}

func envDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return d, nil
}
