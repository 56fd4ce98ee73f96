package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const defaultCluster = "doctors-portal.yp0gd.mongodb.net"

type Config struct {
	Port            string
	Environment     string
	MongoURI        string
	MongoUser       string
	MongoPassword   string
	MongoCluster    string
	Database        string
	JWTSecret       string
	TokenTTL        time.Duration
	StripeSecretKey string
	AllowedOrigins  []string
	RedisAddr       string
	RedisPassword   string
	RedisDB         int
	CatalogCacheTTL time.Duration
	RequestTimeout  time.Duration
	ShutdownTimeout time.Duration
}

func NewConfig() *Config {
	allowedOrigins := []string{"*"}
	if allowedOriginsStr := os.Getenv("ALLOWED_ORIGINS"); allowedOriginsStr != "" {
		allowedOrigins = strings.Split(allowedOriginsStr, ",")
	}

	return &Config{
		Port:            getEnvOrDefault("PORT", "5000"),
		Environment:     getEnvOrDefault("ENVIRONMENT", "development"),
		MongoURI:        os.Getenv("MONGODB_URI"),
		MongoUser:       os.Getenv("DP_USER1"),
		MongoPassword:   os.Getenv("DP_PASS"),
		MongoCluster:    getEnvOrDefault("DP_CLUSTER", defaultCluster),
		Database:        getEnvOrDefault("DP_DATABASE", "doctors-portal"),
		JWTSecret:       os.Getenv("DP_JWT_SECRET"),
		TokenTTL:        getDurationOrDefault("TOKEN_TTL", 24*time.Hour),
		StripeSecretKey: os.Getenv("DP_STRIPE_SECRET"),
		AllowedOrigins:  allowedOrigins,
		RedisAddr:       os.Getenv("REDIS_ADDR"),
		RedisPassword:   os.Getenv("REDIS_PASSWORD"),
		RedisDB:         getIntOrDefault("REDIS_DB", 0),
		CatalogCacheTTL: getDurationOrDefault("CATALOG_CACHE_TTL", 5*time.Minute),
		RequestTimeout:  getDurationOrDefault("REQUEST_TIMEOUT", 10*time.Second),
		ShutdownTimeout: getDurationOrDefault("SHUTDOWN_TIMEOUT", 10*time.Second),
	}
}

// MongoConnectionURI returns MONGODB_URI when set, otherwise the Atlas SRV
// address built from the credentials.
func (c *Config) MongoConnectionURI() string {
	if c.MongoURI != "" {
		return c.MongoURI
	}
	return fmt.Sprintf("mongodb+srv://%s:%s@%s/?retryWrites=true&w=majority",
		c.MongoUser, c.MongoPassword, c.MongoCluster)
}

func (c *Config) Validate() error {
	var errs []error
	if c.JWTSecret == "" {
		errs = append(errs, errors.New("DP_JWT_SECRET is required"))
	}
	if c.MongoURI == "" && (c.MongoUser == "" || c.MongoPassword == "") {
		errs = append(errs, errors.New("MONGODB_URI or DP_USER1/DP_PASS is required"))
	}
	if c.TokenTTL <= 0 {
		errs = append(errs, errors.New("TOKEN_TTL must be positive"))
	}
	return errors.Join(errs...)
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return defaultValue
	}
	return d
}

func getIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return n
}
