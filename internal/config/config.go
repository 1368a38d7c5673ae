// Package config reads service settings from the environment. A .env file in
// the working directory is loaded first by godotenv/autoload in main.
package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	StorageDynamoDB = "dynamodb"
	StorageMemory   = "memory"

	// DefaultJWTSecret is only acceptable with the memory driver.
	DefaultJWTSecret = "change-me"
)

var ErrDefaultJWTSecret = errors.New("JWT_SECRET must be set when storage is not memory")

type Config struct {
	Port      int
	LogLevel  string
	LogFormat string

	StorageDriver string
	Tables        Tables
	DynamoDB      DynamoDBConfig

	JWTSecret      string
	RateLimitRPS   float64
	RateLimitBurst int

	NATSURL     string
	NATSSubject string

	SMTP SMTPConfig

	NotifyWorkers   int
	NotifyQueueSize int
	NotifyTimeout   time.Duration

	Payments PaymentsConfig
}

// Tables holds the DynamoDB table names.
type Tables struct {
	ServiceRequests    string
	StatusHistory      string
	ServiceRequestKeys string
	Users              string
	ServiceTypes       string
	Payments           string
}

// DynamoDBConfig holds the AWS client settings. Credentials default to the
// placeholders DynamoDB Local accepts.
type DynamoDBConfig struct {
	Region          string
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string
}

// PaymentsConfig configures the Mercado Pago gateway. Mock skips the provider
// and approves every payment locally.
type PaymentsConfig struct {
	AccessToken     string
	Mock            bool
	TestPayerEmail  string
	TestPayerUserID string
}

type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

func Load() Config {
	return Config{
		Port:          getenvInt("PORT", 8080),
		LogLevel:      getenvDefault("LOG_LEVEL", "info"),
		LogFormat:     getenvDefault("LOG_FORMAT", "json"),
		StorageDriver: strings.ToLower(getenvDefault("STORAGE_DRIVER", StorageDynamoDB)),
		Tables: Tables{
			ServiceRequests:    getenvDefault("SERVICE_REQUESTS_TABLE", "service_requests"),
			StatusHistory:      getenvDefault("STATUS_HISTORY_TABLE", "status_history"),
			ServiceRequestKeys: getenvDefault("SERVICE_REQUEST_KEYS_TABLE", "service_request_keys"),
			Users:              getenvDefault("USERS_TABLE", "users"),
			ServiceTypes:       getenvDefault("SERVICE_TYPES_TABLE", "service_types"),
			Payments:           getenvDefault("PAYMENTS_TABLE", "payments"),
		},
		DynamoDB: DynamoDBConfig{
			Region:          getenvDefault("AWS_REGION", "us-east-1"),
			Endpoint:        strings.TrimSpace(os.Getenv("DYNAMODB_ENDPOINT")),
			AccessKeyID:     getenvDefault("AWS_ACCESS_KEY_ID", "local"),
			SecretAccessKey: getenvDefault("AWS_SECRET_ACCESS_KEY", "local"),
		},
		JWTSecret:      getenvDefault("JWT_SECRET", DefaultJWTSecret),
		RateLimitRPS:   getenvFloat("RATE_LIMIT_RPS", 10),
		RateLimitBurst: getenvInt("RATE_LIMIT_BURST", 20),
		NATSURL:        os.Getenv("NATS_URL"),
		NATSSubject:    getenvDefault("NATS_SUBJECT", "evt.service_request.lifecycle.v1"),
		SMTP: SMTPConfig{
			Host:     os.Getenv("SMTP_HOST"),
			Port:     getenvInt("SMTP_PORT", 587),
			Username: os.Getenv("SMTP_USERNAME"),
			Password: os.Getenv("SMTP_PASSWORD"),
			From:     getenvDefault("SMTP_FROM", "no-reply@mecanicahub.local"),
		},
		NotifyWorkers:   getenvInt("NOTIFY_WORKERS", 2),
		NotifyQueueSize: getenvInt("NOTIFY_QUEUE_SIZE", 256),
		NotifyTimeout:   getenvDuration("NOTIFY_TIMEOUT", 10*time.Second),
		Payments: PaymentsConfig{
			AccessToken:     strings.TrimSpace(os.Getenv("MERCADOPAGO_ACCESS_TOKEN")),
			Mock:            getenvBool("PAYMENT_GATEWAY_MOCK") || getenvBool("MERCADOPAGO_MOCK"),
			TestPayerEmail:  strings.TrimSpace(os.Getenv("MERCADOPAGO_TEST_PAYER_EMAIL")),
			TestPayerUserID: strings.TrimSpace(os.Getenv("MERCADOPAGO_TEST_PAYER_USER_ID")),
		},
	}
}

// UsesDefaultJWTSecret reports whether tokens would be signed with the
// built-in secret.
func (c Config) UsesDefaultJWTSecret() bool {
	return c.JWTSecret == DefaultJWTSecret
}

// ValidateServe rejects settings the API must not start with.
func (c Config) ValidateServe() error {
	if c.UsesDefaultJWTSecret() && c.StorageDriver != StorageMemory {
		return ErrDefaultJWTSecret
	}
	return nil
}

func getenvDefault(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v, err := strconv.Atoi(strings.TrimSpace(os.Getenv(key))); err == nil {
		return v
	}
	return def
}

func getenvFloat(key string, def float64) float64 {
	if v, err := strconv.ParseFloat(strings.TrimSpace(os.Getenv(key)), 64); err == nil {
		return v
	}
	return def
}

func getenvDuration(key string, def time.Duration) time.Duration {
	if v, err := time.ParseDuration(strings.TrimSpace(os.Getenv(key))); err == nil {
		return v
	}
	return def
}

func getenvBool(key string) bool {
	switch strings.ToLower(strings.TrimSpace(os.Getenv(key))) {
	case "1", "true", "yes", "on", "mock":
		return true
	}
	return false
}
