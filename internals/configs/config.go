package configs

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port        string
	AppEnv      string
	Timezone    string
	Location    *time.Location
	DatabaseURL string
	DBLogLevel  string

	JWTSecret string
	JWTTTL    time.Duration

	RedisAddr     string
	RedisPassword string

	CORSOrigins string
}

// =======================
// ENV LOADER
// =======================
func LoadEnv() {
	if os.Getenv("RAILWAY_ENVIRONMENT") != "" {
		log.Println("🚀 Running in Railway, using system ENV")
		return
	}
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️ No .env file found, using system ENV")
	} else {
		log.Println("✅ .env file loaded")
	}
}

func GetEnv(key string, defaultValue ...string) string {
	value, exists := os.LookupEnv(key)
	if (!exists || strings.TrimSpace(value) == "") && len(defaultValue) > 0 {
		return defaultValue[0]
	}
	return strings.TrimSpace(value)
}

// Load builds the runtime config. Every missing or invalid value is reported in one error.
func Load() (*Config, error) {
	var problems []error

	cfg := &Config{
		Port:          GetEnv("PORT", "3000"),
		AppEnv:        GetEnv("APP_ENV", "development"),
		Timezone:      GetEnv("APP_TIMEZONE", "Local"),
		DBLogLevel:    GetEnv("DB_LOG_LEVEL", "warn"),
		JWTSecret:     GetEnv("JWT_SECRET"),
		RedisAddr:     GetEnv("REDIS_ADDR"),
		RedisPassword: GetEnv("REDIS_PASSWORD"),
		CORSOrigins:   GetEnv("CORS_ORIGINS", "http://localhost:5173,http://localhost:3000"),
	}

	if cfg.JWTSecret == "" {
		problems = append(problems, errors.New("JWT_SECRET is required"))
	}

	ttl, err := time.ParseDuration(GetEnv("JWT_TTL", "168h"))
	switch {
	case err != nil:
		problems = append(problems, fmt.Errorf("JWT_TTL: %w", err))
	case ttl <= 0:
		problems = append(problems, errors.New("JWT_TTL must be positive"))
	default:
		cfg.JWTTTL = ttl
	}

	loc, err := LoadLocation(cfg.Timezone)
	if err != nil {
		problems = append(problems, fmt.Errorf("APP_TIMEZONE: %w", err))
	}
	cfg.Location = loc

	dsn, err := databaseURL()
	if err != nil {
		problems = append(problems, err)
	}
	cfg.DatabaseURL = dsn

	switch cfg.DBLogLevel {
	case "silent", "error", "warn", "info":
	default:
		problems = append(problems, fmt.Errorf("DB_LOG_LEVEL: unknown level %q", cfg.DBLogLevel))
	}

	if len(problems) > 0 {
		return nil, errors.Join(problems...)
	}
	return cfg, nil
}

func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.AppEnv, "production")
}

func (c *Config) Addr() string {
	return "0.0.0.0:" + c.Port
}

// LoadLocation treats "" and "Local" as the process zone.
func LoadLocation(name string) (*time.Location, error) {
	if name == "" || strings.EqualFold(name, "Local") {
		return time.Local, nil
	}
	return time.LoadLocation(name)
}

func databaseURL() (string, error) {
	if url := GetEnv("DATABASE_URL"); url != "" {
		return url, nil
	}

	var missing []string
	read := func(key string) string {
		v := GetEnv(key)
		if v == "" {
			missing = append(missing, key)
		}
		return v
	}
	user := read("DB_USER")
	host := read("DB_HOST")
	name := read("DB_NAME")
	if len(missing) > 0 {
		return "", fmt.Errorf("database: set DATABASE_URL or %s", strings.Join(missing, ", "))
	}

	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s&application_name=attendance&options=-c statement_timeout=3000",
		user,
		GetEnv("DB_PASSWORD"),
		host,
		GetEnv("DB_PORT", "5432"),
		name,
		GetEnv("DB_SSLMODE", "disable"),
	), nil
}
