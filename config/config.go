package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config aggregates every section the application needs. It is built once in
// main and handed to the components that use it; nothing reads the
// environment after startup.
type Config struct {
	App      AppConfig
	Database DatabaseConfig
	SMTP     SMTPConfig
	Token    TokenConfig
	Session  SessionConfig
}

type AppConfig struct {
	Addr      string
	BaseURL   string
	SecretKey []byte
}

type DatabaseConfig struct {
	Host   string
	Port   string
	User   string
	Pass   string
	Name   string
	Params string
}

type SMTPConfig struct {
	Host        string
	Port        int
	Username    string
	Password    string
	FromAddress string
}

type TokenConfig struct {
	Issuer   string
	ResetTTL time.Duration
}

type SessionConfig struct {
	TTL         time.Duration
	RememberTTL time.Duration
}

func LoadEnv() {
	_ = godotenv.Load()
}

// Load reads every section from the environment, applying defaults for the
// optional values. Call Validate afterwards to reject incomplete setups.
func Load() Config {
	LoadEnv()

	return Config{
		App:      loadAppConfig(),
		Database: loadDatabaseConfig(),
		SMTP:     loadSMTPConfig(),
		Token:    loadTokenConfig(),
		Session:  loadSessionConfig(),
	}
}

func loadAppConfig() AppConfig {
	addr := os.Getenv("APP_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	baseURL := os.Getenv("APP_BASE_URL")
	if baseURL == "" {
		baseURL = "http://localhost:8080"
	}

	return AppConfig{
		Addr:      addr,
		BaseURL:   baseURL,
		SecretKey: []byte(os.Getenv("SECRET_KEY")),
	}
}

func loadDatabaseConfig() DatabaseConfig {
	params := os.Getenv("DB_PARAMS")
	if params == "" {
		params = "charset=utf8mb4&parseTime=true&loc=Local"
	}

	return DatabaseConfig{
		Host:   os.Getenv("DB_HOST"),
		Port:   os.Getenv("DB_PORT"),
		User:   os.Getenv("DB_USER"),
		Pass:   os.Getenv("DB_PASS"),
		Name:   os.Getenv("DB_NAME"),
		Params: params,
	}
}

// DSN renders the mysql connection string.
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?%s", c.User, c.Pass, c.Host, c.Port, c.Name, c.Params)
}

func loadSMTPConfig() SMTPConfig {
	port, err := strconv.Atoi(os.Getenv("SMTP_PORT"))
	if err != nil || port <= 0 {
		port = 587
	}

	return SMTPConfig{
		Host:        os.Getenv("SMTP_HOST"),
		Port:        port,
		Username:    os.Getenv("SMTP_USERNAME"),
		Password:    os.Getenv("SMTP_PASSWORD"),
		FromAddress: os.Getenv("SMTP_FROM"),
	}
}

func loadTokenConfig() TokenConfig {
	issuer := os.Getenv("TOKEN_ISSUER")
	if issuer == "" {
		issuer = "bubble"
	}

	ttl := 30 * time.Minute
	if ttlStr := os.Getenv("RESET_TOKEN_TTL"); ttlStr != "" {
		if parsed, err := time.ParseDuration(ttlStr); err == nil {
			ttl = parsed
		}
	}

	return TokenConfig{Issuer: issuer, ResetTTL: ttl}
}

func loadSessionConfig() SessionConfig {
	ttl := 24 * time.Hour
	if ttlStr := os.Getenv("SESSION_TTL"); ttlStr != "" {
		if parsed, err := time.ParseDuration(ttlStr); err == nil {
			ttl = parsed
		}
	}

	rememberTTL := 720 * time.Hour
	if ttlStr := os.Getenv("SESSION_REMEMBER_TTL"); ttlStr != "" {
		if parsed, err := time.ParseDuration(ttlStr); err == nil {
			rememberTTL = parsed
		}
	}

	return SessionConfig{TTL: ttl, RememberTTL: rememberTTL}
}
