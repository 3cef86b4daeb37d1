package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Config holds everything the server reads from the environment.
// godotenv is loaded by main before Load is called.
type Config struct {
	ListenAddr string

	UploadMaxBytes    int64
	BankExtensions    []string
	CompanyExtensions []string

	MatchTimeout time.Duration

	CleanupEnabled  bool
	CleanupTokenTTL time.Duration

	AllowedOrigins []string
}

func Load() Config {
	cfg := Config{
		ListenAddr:        ":" + getenv("PORT", "8080"),
		UploadMaxBytes:    getenvInt64("UPLOAD_MAX_BYTES", 10<<20), // 10MB
		BankExtensions:    getenvList("BANK_UPLOAD_EXTENSIONS", ".csv,.ofx,.qfx"),
		CompanyExtensions: getenvList("COMPANY_UPLOAD_EXTENSIONS", ".csv"),
		MatchTimeout:      getenvDuration("MATCH_TIMEOUT", 30*time.Second),
		CleanupEnabled:    getenv("CLEANUP_ENABLED", "false") == "true",
		CleanupTokenTTL:   getenvDuration("CLEANUP_TOKEN_TTL", 5*time.Minute),
		AllowedOrigins:    getenvList("ALLOWED_ORIGINS", "http://localhost:3000"),
	}
	return cfg
}

// InitDB opens the Postgres connection from DB_* env vars.
func InitDB() *gorm.DB {
	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		getenv("DB_HOST", "localhost"),
		getenv("DB_USER", "postgres"),
		getenv("DB_PASSWORD", "postgres"),
		getenv("DB_NAME", "reconciliation"),
		getenv("DB_PORT", "5432"),
		getenv("DB_SSLMODE", "disable"),
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	return db
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getenvInt64(key string, fallback int64) int64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		log.Printf("invalid %s=%q, using default %d", key, v, fallback)
		return fallback
	}
	return n
}

func getenvDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		log.Printf("invalid %s=%q, using default %s", key, v, fallback)
		return fallback
	}
	return d
}

func getenvList(key, fallback string) []string {
	v := os.Getenv(key)
	if v == "" {
		v = fallback
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, strings.ToLower(p))
		}
	}
	return out
}
