package config

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	ServerPort      string
	Env             string
	DatabaseType    string
	DatabaseURL     string
	DatabasePath    string
	SessionSecret   string
	SessionDuration time.Duration
	MigrationsPath  string
	TemplatesPath   string
	StaticFilesPath string
	AppBaseURL      string

	// Email (Amazon SES)
	AWSRegion    string
	SESFromEmail string
	SESFromName  string

	// OAuth (Google staff sign-in)
	GoogleClientID     string
	GoogleClientSecret string

	// DevLoginBypass enables the fixed test credential pair. It can only
	// be true when Env is "development"; Load refuses it anywhere else.
	DevLoginBypass bool
}

// Load reads configuration from environment variables with sensible defaults.
// A .env file is loaded first when not running in production, matching how
// the managed deployment injects real env vars.
func Load() *Config {
	env := getEnv("APP_ENV", "development")

	if env != "production" {
		if err := godotenv.Load(); err == nil {
			log.Println("Loaded configuration from .env")
		}
	}

	cfg := &Config{
		ServerPort:      getEnv("PORT", "8080"),
		Env:             env,
		DatabaseType:    getEnv("DB_TYPE", "sqlite"),
		DatabaseURL:     os.Getenv("DATABASE_URL"),
		DatabasePath:    getEnv("DB_PATH", "./ellarises.db"),
		SessionSecret:   getEnv("SESSION_SECRET", "dev-session-secret"),
		SessionDuration: 24 * time.Hour,
		MigrationsPath:  getEnv("MIGRATIONS_PATH", "./migrations"),
		TemplatesPath:   getEnv("TEMPLATES_PATH", "./templates"),
		StaticFilesPath: getEnv("STATIC_PATH", "./static"),
		AppBaseURL:      getEnv("APP_BASE_URL", "http://localhost:8080"),

		AWSRegion:    getEnv("AWS_REGION", "us-east-1"),
		SESFromEmail: os.Getenv("SES_FROM_EMAIL"),
		SESFromName:  getEnv("SES_FROM_NAME", "Ella Rises"),

		GoogleClientID:     os.Getenv("GOOGLE_CLIENT_ID"),
		GoogleClientSecret: os.Getenv("GOOGLE_CLIENT_SECRET"),
	}

	// The bypass credential is a development shortcut, never a deployment
	// option. Outside development the flag is ignored even if set.
	if env == "development" && os.Getenv("DEV_LOGIN_BYPASS") == "1" {
		cfg.DevLoginBypass = true
	}

	// Managed deployments hand us a single connection string; local
	// development uses the discrete DB_* variables.
	if cfg.DatabaseURL == "" && cfg.DatabaseType != "sqlite" {
		cfg.DatabaseURL = buildConnectionString(cfg.DatabaseType)
	}

	return cfg
}

// buildConnectionString assembles a DSN from the discrete DB_* variables
func buildConnectionString(dbType string) string {
	host := getEnv("DB_HOST", "127.0.0.1")
	user := getEnv("DB_USER", "postgres")
	password := os.Getenv("DB_PASSWORD")
	name := getEnv("DB_NAME", "ellarises_local")

	switch dbType {
	case "mysql":
		port := getEnv("DB_PORT", "3306")
		return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?parseTime=true", user, password, host, port, name)
	default:
		port := getEnv("DB_PORT", "5432")
		return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable", host, port, user, password, name)
	}
}

// getEnv reads an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
