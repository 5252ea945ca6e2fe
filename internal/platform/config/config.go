// Package config builds runtime configuration from environment variables so
// main stays lean. Every knob has a development-friendly default.
package config

import (
	"os"
	"strconv"
	"time"
)

// Server captures HTTP server level configuration.
type Server struct {
	Addr            string
	RequestTimeout  time.Duration
	ShutdownTimeout time.Duration
	CORSOrigins     []string
}

// Database captures Postgres configuration. An empty URL selects the
// in-memory stores.
type Database struct {
	URL string
}

// Redis captures the optional stats cache configuration. An empty URL
// disables Redis entirely.
type Redis struct {
	URL           string
	StatsCacheTTL time.Duration
}

// Storage captures evidence blob store configuration. When Endpoint is empty
// evidence is written to LocalDir (the development default).
type Storage struct {
	Endpoint       string
	Region         string
	Bucket         string
	AccessKey      string
	SecretKey      string
	UseSSL         bool
	LocalDir       string
	MaxUploadBytes int64
}

// Auth captures identity token configuration.
type Auth struct {
	JWTSigningKey string
	TokenTTL      time.Duration
	SeedDemoUsers bool
}

// Config is the root configuration for the server process.
type Config struct {
	Server   Server
	Database Database
	Redis    Redis
	Storage  Storage
	Auth     Auth
}

// FromEnv builds a Config from environment variables.
func FromEnv() Config {
	jwtSigningKey := os.Getenv("APPGUARD_JWT_SIGNING_KEY")
	if jwtSigningKey == "" {
		// Development default - must be overridden in production.
		jwtSigningKey = "dev-secret-key-change-in-production"
	}

	return Config{
		Server: Server{
			Addr:            envOr("APPGUARD_ADDR", ":8080"),
			RequestTimeout:  envDuration("APPGUARD_REQUEST_TIMEOUT", 15*time.Second),
			ShutdownTimeout: envDuration("APPGUARD_SHUTDOWN_TIMEOUT", 10*time.Second),
			CORSOrigins:     []string{envOr("APPGUARD_CORS_ORIGIN", "*")},
		},
		Database: Database{
			URL: os.Getenv("APPGUARD_DATABASE_URL"),
		},
		Redis: Redis{
			URL:           os.Getenv("APPGUARD_REDIS_URL"),
			StatsCacheTTL: envDuration("APPGUARD_STATS_CACHE_TTL", 5*time.Second),
		},
		Storage: Storage{
			Endpoint:       os.Getenv("APPGUARD_MINIO_ENDPOINT"),
			Region:         envOr("APPGUARD_MINIO_REGION", "us-east-1"),
			Bucket:         envOr("APPGUARD_MINIO_BUCKET", "appguard-evidence"),
			AccessKey:      os.Getenv("APPGUARD_MINIO_ACCESS_KEY"),
			SecretKey:      os.Getenv("APPGUARD_MINIO_SECRET_KEY"),
			UseSSL:         os.Getenv("APPGUARD_MINIO_USE_SSL") == "true",
			LocalDir:       envOr("APPGUARD_UPLOAD_DIR", "uploads"),
			MaxUploadBytes: envInt64("APPGUARD_MAX_UPLOAD_BYTES", 10<<20),
		},
		Auth: Auth{
			JWTSigningKey: jwtSigningKey,
			TokenTTL:      envDuration("APPGUARD_TOKEN_TTL", 12*time.Hour),
			SeedDemoUsers: os.Getenv("APPGUARD_SEED_DEMO_USERS") == "true",
		},
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

func envInt64(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}
