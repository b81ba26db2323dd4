package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all runtime configuration loaded from environment variables.
type Config struct {
	CaptureDir  string
	CatalogPath string
	ChangeLog   string
	SourcesPath string

	UserAgent      string
	FetchTimeoutS  int
	MaxRetries     int
	MaxConcurrency int

	ServeAddr    string
	ScheduleHour int

	PostgresMirror   bool
	PostgresHost     string
	PostgresPort     string
	PostgresUser     string
	PostgresPassword string
	PostgresDB       string
	PostgresSSLMode  string
}

// Load reads the .env file and returns a populated Config struct.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("[config] No .env file found, falling back to system env vars")
	}

	return &Config{
		CaptureDir:  getEnv("CAPTURE_DIR", "./data/raw_html"),
		CatalogPath: getEnv("CATALOG_PATH", "./data/properties.json"),
		ChangeLog:   getEnv("CHANGELOG_PATH", "./data/changes.log"),
		SourcesPath: getEnv("SOURCES_PATH", "./configs/sources.yaml"),

		UserAgent: getEnv("USER_AGENT",
			"Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0 Safari/537.36"),
		FetchTimeoutS:  getEnvInt("FETCH_TIMEOUT_S", 30),
		MaxRetries:     getEnvInt("MAX_RETRIES", 3),
		MaxConcurrency: getEnvInt("MAX_CONCURRENCY", 4),

		ServeAddr:    getEnv("SERVE_ADDR", ":8080"),
		ScheduleHour: getEnvInt("SCHEDULE_HOUR", 19),

		PostgresMirror:   getEnvBool("POSTGRES_MIRROR", false),
		PostgresHost:     getEnv("POSTGRES_HOST", "localhost"),
		PostgresPort:     getEnv("POSTGRES_PORT", "5432"),
		PostgresUser:     getEnv("POSTGRES_USER", "tracker"),
		PostgresPassword: getEnv("POSTGRES_PASSWORD", "tracker123"),
		PostgresDB:       getEnv("POSTGRES_DB", "housetracker"),
		PostgresSSLMode:  getEnv("POSTGRES_SSLMODE", "disable"),
	}
}

// DSN returns the PostgreSQL connection string for the catalog mirror.
func (c *Config) DSN() string {
	return "host=" + c.PostgresHost +
		" port=" + c.PostgresPort +
		" user=" + c.PostgresUser +
		" password=" + c.PostgresPassword +
		" dbname=" + c.PostgresDB +
		" sslmode=" + c.PostgresSSLMode
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		n, err := strconv.Atoi(val)
		if err == nil {
			return n
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if val := os.Getenv(key); val != "" {
		b, err := strconv.ParseBool(val)
		if err == nil {
			return b
		}
	}
	return fallback
}
