package config

import (
	"os"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

const (
	StoreBackendMemory   = "memory"
	StoreBackendDynamoDB = "dynamodb"
)

type Config struct {
	Port          string
	SessionSecret []byte

	// The single administrator principal. Held in configuration, never in
	// the Patients collection, so the identity spaces cannot overlap.
	AdminEmail        string
	AdminPasswordHash string

	StoreBackend string
	AWSRegion    string

	RedisAddress  string
	RedisPassword string

	RabbitMQURL     string
	NotifyQueueName string

	AllowedOrigins []string
}

func Load() *Config {
	secret := os.Getenv("SESSION_SECRET")
	if secret == "" {
		panic("SESSION_SECRET environment variable is required")
	}

	adminEmail := getenv("ADMIN_EMAIL", "admin@hospital.com")

	adminHash := os.Getenv("ADMIN_PASSWORD_HASH")
	if adminHash == "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(getenv("ADMIN_PASSWORD", "admin123")), bcrypt.DefaultCost)
		if err != nil {
			panic("Failed to hash administrator password: " + err.Error())
		}
		adminHash = string(hash)
	}

	backend := getenv("STORE_BACKEND", StoreBackendMemory)
	if backend != StoreBackendMemory && backend != StoreBackendDynamoDB {
		panic("STORE_BACKEND must be 'memory' or 'dynamodb', got: " + backend)
	}

	return &Config{
		Port:              getenv("PORT", "8080"),
		SessionSecret:     []byte(secret),
		AdminEmail:        strings.ToLower(adminEmail),
		AdminPasswordHash: adminHash,
		StoreBackend:      backend,
		AWSRegion:         getenv("AWS_REGION", "us-east-1"),
		RedisAddress:      getenv("REDIS_ADDRESS", "localhost:6379"),
		RedisPassword:     os.Getenv("REDIS_PASSWORD"),
		RabbitMQURL:       os.Getenv("RABBITMQ_URL"),
		NotifyQueueName:   getenv("NOTIFY_QUEUE_NAME", "clinic-notifications"),
		AllowedOrigins:    strings.Split(getenv("ALLOWED_ORIGINS", "*"), ","),
	}
}

// NotifierConfig holds configuration for the notification worker.
// This is a minimal config that only includes what the worker needs.
type NotifierConfig struct {
	RabbitMQURL     string
	NotifyQueueName string
	HealthPort      string
}

func LoadNotifierConfig() *NotifierConfig {
	rabbitURL := os.Getenv("RABBITMQ_URL")
	if rabbitURL == "" {
		panic("RABBITMQ_URL environment variable is required")
	}

	return &NotifierConfig{
		RabbitMQURL:     rabbitURL,
		NotifyQueueName: getenv("NOTIFY_QUEUE_NAME", "clinic-notifications"),
		HealthPort:      getenv("HEALTH_PORT", "8081"),
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
