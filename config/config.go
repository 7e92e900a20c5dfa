package config

import (
	"log"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the runtime configuration of the web shell.
type Config struct {
	Port           string
	BackendURL     string
	AllowedOrigins []string
	LogLevel       slog.Level

	// Redis. An empty address keeps tokens in memory.
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	// BackendSearch routes /search through the backend search endpoint.
	BackendSearch bool
	SessionIdle   time.Duration

	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
}

// LoadEnv reads a .env file into the process environment. A missing file is
// not an error.
func LoadEnv(path string) {
	if path == "" {
		path = ".env"
	}
	if err := godotenv.Load(path); err != nil {
		log.Printf("No %s file loaded: %v", path, err)
	}
}

// Load reads the configuration from the environment.
func Load() Config {
	return Config{
		Port:           getEnv("PORT", "8080"),
		BackendURL:     strings.TrimRight(getEnv("BACKEND_URL", "https://dormdashbackend.onrender.com"), "/"),
		AllowedOrigins: splitList(getEnv("ALLOWED_ORIGINS", "*")),
		LogLevel:       parseLevel(getEnv("LOG_LEVEL", "info")),

		RedisAddr:     os.Getenv("REDIS_ADD"),
		RedisPassword: os.Getenv("REDIS_PASS"),
		RedisDB:       getEnvInt("REDIS_DB", 0),

		BackendSearch: getEnvBool("BACKEND_SEARCH", false),
		SessionIdle:   time.Duration(getEnvInt("SESSION_IDLE_MINUTES", 24*60)) * time.Minute,

		// Dashboards wait on the backend with no deadline of their own, so the
		// write timeout stays generous.
		ReadTimeout:     10 * time.Second,
		WriteTimeout:    time.Duration(getEnvInt("WRITE_TIMEOUT_SECONDS", 120)) * time.Second,
		ShutdownTimeout: 10 * time.Second,
	}
}

func getEnv(key string, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("Ignoring %s=%q: %v", key, v, err)
		return fallback
	}
	return parsed
}

func getEnvBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(v)
	if err != nil {
		log.Printf("Ignoring %s=%q: %v", key, v, err)
		return fallback
	}
	return parsed
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func parseLevel(v string) slog.Level {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(v)); err != nil {
		log.Printf("Unknown LOG_LEVEL %q, using info", v)
		return slog.LevelInfo
	}
	return lvl
}
