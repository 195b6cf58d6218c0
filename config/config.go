package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	Port      string
	JWTKey    string
	SaltRound int

	DBHost     string
	DBUser     string
	DBPassword string
	DBName     string
	DBPort     string

	// Mailer provider: "smtp" or "sendgrid"
	MailProvider   string
	EmailSender    string
	SMTPHost       string
	SMTPPort       string
	SMTPPassword   string // App password
	SendGridAPIKey string

	// CMS provider: "local" or "http"
	CMSProvider   string
	CMSContentDir string
	CMSBaseURL    string
	CMSAPIKey     string

	AppBaseURL string // used in invitation links
}

// Load reads configuration from environment variables (and .env if present).
// The returned struct is resolved once at startup and handed to the
// components that need it.
func Load() *Config {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found. Using system environment variables.")
	}

	cfg := &Config{
		Port:      getEnv("PORT", "3000"),
		JWTKey:    getEnv("JWT_SECRET_KEY", "defaultSecret"),
		SaltRound: getEnvInt("SALT_ROUND", 10),

		DBHost:     getEnv("DB_HOST", "localhost"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", "postgres"),
		DBName:     getEnv("DB_NAME", "truckscout"),
		DBPort:     getEnv("DB_PORT", "5432"),

		MailProvider:   getEnv("MAIL_PROVIDER", "smtp"),
		EmailSender:    getEnv("EMAIL_SENDER", "no-reply@truckscout.io"),
		SMTPHost:       getEnv("SMTP_HOST", "smtp.gmail.com"),
		SMTPPort:       getEnv("SMTP_PORT", "587"),
		SMTPPassword:   getEnv("SMTP_PASSWORD", ""),
		SendGridAPIKey: getEnv("SENDGRID_API_KEY", ""),

		CMSProvider:   getEnv("CMS_PROVIDER", "local"),
		CMSContentDir: getEnv("CMS_CONTENT_DIR", "./content"),
		CMSBaseURL:    getEnv("CMS_BASE_URL", ""),
		CMSAPIKey:     getEnv("CMS_API_KEY", ""),

		AppBaseURL: getEnv("APP_BASE_URL", "http://localhost:3000"),
	}

	// Validate critical configuration
	if cfg.JWTKey == "defaultSecret" {
		log.Println("Warning: Using default JWT_SECRET_KEY. Update it in your environment.")
	}
	if cfg.MailProvider == "sendgrid" && cfg.SendGridAPIKey == "" {
		log.Println("Warning: MAIL_PROVIDER is sendgrid but SENDGRID_API_KEY is empty.")
	}

	return cfg
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// getEnvInt retrieves an environment variable as an integer or returns the default integer value
func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	intValue, err := strconv.Atoi(value)
	if err != nil {
		log.Printf("Error converting environment variable %s to int: %v", key, err)
		return defaultValue
	}
	return intValue
}
