package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// UserService is the identity provider configuration. The JWT secret is
// loaded once here and stays constant for the process lifetime.
type UserService struct {
	ServerPort         string
	ServerReadTimeout  time.Duration
	ServerWriteTimeout time.Duration
	ServerIdleTimeout  time.Duration
	RequestTimeout     time.Duration
	DatabaseURL        string
	DBMaxConns         int32
	DBMinConns         int32
	DBConnLifetime     time.Duration
	DBConnIdleTime     time.Duration
	DBHealthInterval   time.Duration
	JWTSecret          string
	TokenTTL           time.Duration
	CORSOrigins        []string
}

func LoadUserService() (*UserService, error) {
	_ = godotenv.Load()

	cfg := &UserService{
		ServerPort:         getEnv("SERVER_PORT", "4001"),
		ServerReadTimeout:  getDuration("SERVER_READ_TIMEOUT", 15*time.Second),
		ServerWriteTimeout: getDuration("SERVER_WRITE_TIMEOUT", 30*time.Second),
		ServerIdleTimeout:  getDuration("SERVER_IDLE_TIMEOUT", 120*time.Second),
		RequestTimeout:     getDuration("REQUEST_TIMEOUT", 30*time.Second),
		DatabaseURL:        strings.TrimSpace(os.Getenv("DATABASE_URL")),
		DBMaxConns:         int32(getInt("DB_MAX_CONNS", 10)),
		DBMinConns:         int32(getInt("DB_MIN_CONNS", 2)),
		DBConnLifetime:     getDuration("DB_CONN_LIFETIME", 30*time.Minute),
		DBConnIdleTime:     getDuration("DB_CONN_IDLE_TIME", 5*time.Minute),
		DBHealthInterval:   getDuration("DB_HEALTH_INTERVAL", 30*time.Second),
		JWTSecret:          strings.TrimSpace(os.Getenv("JWT_SECRET")),
		TokenTTL:           getDuration("JWT_TTL", 720*time.Hour),
		CORSOrigins:        splitCSV(getEnv("CORS_ORIGINS", "*")),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *UserService) Validate() error {
	if c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}

	if c.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}

	if c.TokenTTL <= 0 {
		return fmt.Errorf("JWT_TTL must be positive")
	}

	if c.ServerPort == "" {
		return fmt.Errorf("SERVER_PORT cannot be empty")
	}

	return nil
}

// BlogService holds the blog service configuration. It owns no credentials
// and no signing secret: authentication is delegated to the user service at
// UserServiceURL.
type BlogService struct {
	ServerPort         string
	ServerReadTimeout  time.Duration
	ServerWriteTimeout time.Duration
	ServerIdleTimeout  time.Duration
	RequestTimeout     time.Duration
	DatabaseURL        string
	DBMaxConns         int32
	DBMinConns         int32
	DBConnLifetime     time.Duration
	DBConnIdleTime     time.Duration
	DBHealthInterval   time.Duration
	UserServiceURL     string
	AuthTimeout        time.Duration
	CORSOrigins        []string
}

func LoadBlogService() (*BlogService, error) {
	_ = godotenv.Load()

	cfg := &BlogService{
		ServerPort:         getEnv("SERVER_PORT", "4002"),
		ServerReadTimeout:  getDuration("SERVER_READ_TIMEOUT", 15*time.Second),
		ServerWriteTimeout: getDuration("SERVER_WRITE_TIMEOUT", 30*time.Second),
		ServerIdleTimeout:  getDuration("SERVER_IDLE_TIMEOUT", 120*time.Second),
		RequestTimeout:     getDuration("REQUEST_TIMEOUT", 30*time.Second),
		DatabaseURL:        strings.TrimSpace(os.Getenv("DATABASE_URL")),
		DBMaxConns:         int32(getInt("DB_MAX_CONNS", 10)),
		DBMinConns:         int32(getInt("DB_MIN_CONNS", 2)),
		DBConnLifetime:     getDuration("DB_CONN_LIFETIME", 30*time.Minute),
		DBConnIdleTime:     getDuration("DB_CONN_IDLE_TIME", 5*time.Minute),
		DBHealthInterval:   getDuration("DB_HEALTH_INTERVAL", 30*time.Second),
		UserServiceURL:     strings.TrimRight(strings.TrimSpace(os.Getenv("USER_SERVICE_URL")), "/"),
		AuthTimeout:        getDuration("AUTH_TIMEOUT", 5*time.Second),
		CORSOrigins:        splitCSV(getEnv("CORS_ORIGINS", "*")),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *BlogService) Validate() error {
	if c.UserServiceURL == "" {
		return fmt.Errorf("USER_SERVICE_URL is required")
	}

	if c.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}

	if c.AuthTimeout <= 0 {
		return fmt.Errorf("AUTH_TIMEOUT must be positive")
	}

	if c.ServerPort == "" {
		return fmt.Errorf("SERVER_PORT cannot be empty")
	}

	return nil
}

// Gateway is the reverse-proxy configuration.
type Gateway struct {
	ServerPort         string
	ServerReadTimeout  time.Duration
	ServerWriteTimeout time.Duration
	ServerIdleTimeout  time.Duration
	UserServiceURL     string
	BlogServiceURL     string
	CORSOrigins        []string
}

func LoadGateway() (*Gateway, error) {
	_ = godotenv.Load()

	cfg := &Gateway{
		ServerPort:         getEnv("SERVER_PORT", "5000"),
		ServerReadTimeout:  getDuration("SERVER_READ_TIMEOUT", 15*time.Second),
		ServerWriteTimeout: getDuration("SERVER_WRITE_TIMEOUT", 30*time.Second),
		ServerIdleTimeout:  getDuration("SERVER_IDLE_TIMEOUT", 120*time.Second),
		UserServiceURL:     strings.TrimRight(strings.TrimSpace(os.Getenv("USER_SERVICE_URL")), "/"),
		BlogServiceURL:     strings.TrimRight(strings.TrimSpace(os.Getenv("BLOG_SERVICE_URL")), "/"),
		CORSOrigins:        splitCSV(getEnv("CORS_ORIGINS", "*")),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Gateway) Validate() error {
	if c.UserServiceURL == "" {
		return fmt.Errorf("USER_SERVICE_URL is required")
	}

	if c.BlogServiceURL == "" {
		return fmt.Errorf("BLOG_SERVICE_URL is required")
	}

	if c.ServerPort == "" {
		return fmt.Errorf("SERVER_PORT cannot be empty")
	}

	return nil
}

func getEnv(key string, fallback string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}

	return v
}

func getInt(key string, fallback int) int {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}

	v, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}

	return v
}

func getDuration(key string, fallback time.Duration) time.Duration {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}

	v, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}

	return v
}

func splitCSV(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed == "" {
			continue
		}
		out = append(out, trimmed)
	}

	return out
}
