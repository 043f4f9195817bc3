// Package config provides configuration management for the match highlights
// service. It handles loading configuration from environment variables with
// sensible defaults and validates the configuration so the service starts
// safely.
//
// The package supports two store backends (SQLite and PostgreSQL), Redis or
// an in-process cache for the read path, Kafka for the match-event bus, and
// the enrichment strategy selection.
//
// Environment Variables:
//
// Application Settings:
//   - PORT: Server port (default: 8080)
//   - LOG_LEVEL: Logging level (default: info)
//
// Store Configuration:
//   - DATABASE_TYPE: Store backend - "sqlite" or "postgres" (default: sqlite)
//   - DATABASE_PATH: SQLite database file path (default: ./highlights.db)
//   - POSTGRES_HOST: PostgreSQL host (required if using PostgreSQL)
//   - POSTGRES_PORT: PostgreSQL port (default: 5432)
//   - POSTGRES_DB: PostgreSQL database name (required if using PostgreSQL)
//   - POSTGRES_USER: PostgreSQL username (required if using PostgreSQL)
//   - POSTGRES_PASSWORD: PostgreSQL password
//   - POSTGRES_SSL_MODE: PostgreSQL SSL mode (default: disable)
//
// Cache Configuration:
//   - CACHE_BACKEND: "redis" or "local" (default: redis)
//   - REDIS_ADDRESS: Redis server address (default: localhost:6379)
//   - REDIS_PASSWORD: Redis password
//   - REDIS_DB: Redis database number 0-15 (default: 0)
//   - REDIS_POOL_SIZE: Redis connection pool size (default: 10)
//   - CACHE_TTL: Highlight cache entry time-to-live (default: 5m)
//
// Kafka Configuration:
//   - KAFKA_BROKERS: Comma-separated bootstrap servers (default: localhost:9092)
//   - KAFKA_ENABLED: Whether outbound publishing goes to Kafka (default: true)
//   - KAFKA_SECURITY_PROTOCOL: PLAINTEXT, SSL, SASL_PLAINTEXT or SASL_SSL (default: PLAINTEXT)
//   - KAFKA_SASL_MECHANISM: PLAIN, SCRAM-SHA-256 or SCRAM-SHA-512 (default: PLAIN when SASL)
//   - KAFKA_SASL_USERNAME: SASL username (required for SASL_* protocols)
//   - KAFKA_SASL_PASSWORD: SASL password (required for SASL_* protocols)
//   - MATCH_EVENTS_TOPIC: Topic for match events (default: match-events)
//   - CONSUMER_GROUP_ID: Consumer group id (default: highlights-consumer)
//   - CONSUMER_BACKOFF: Pause after a transient consume error (default: 1s)
//
// Enrichment Configuration:
//   - USE_STUB_ENRICHER: Use the deterministic enricher (default: true)
//   - ENRICHMENT_ENDPOINT: Remote enrichment service URL
//   - ENRICHMENT_API_KEY: Optional key sent as X-Api-Key
//   - ENRICHMENT_TIMEOUT: Remote call timeout (default: 30s)
//   - WORKER_POLL_INTERVAL: Delay between worker cycles (default: 5s)
//   - WORKER_BATCH_SIZE: Max pending highlights per cycle (default: 25)
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds all configuration values for the match highlights service.
// All fields correspond to environment variables that can be set to override
// the default values.
//
// The configuration is loaded using the Load() function and should be
// validated using the Validate() method before use.
type Config struct {
	// Application settings
	Port     string // Server port number
	LogLevel string // Logging level (debug, info, warn, error)

	// Store configuration
	DatabaseType     string // Store backend: "sqlite" or "postgres"
	DatabasePath     string // Path to SQLite database file
	PostgresHost     string // PostgreSQL host address
	PostgresPort     string // PostgreSQL port number
	PostgresDB       string // PostgreSQL database name
	PostgresUser     string // PostgreSQL username
	PostgresPassword string // PostgreSQL password
	PostgresSSLMode  string // PostgreSQL SSL mode (disable, require, etc.)

	// Cache configuration
	CacheBackend  string        // "redis" or "local"
	RedisAddress  string        // Redis server address (host:port)
	RedisPassword string        // Redis authentication password
	RedisDB       string        // Redis database number (0-15)
	RedisPoolSize string        // Redis connection pool size
	CacheTTL      time.Duration // TTL for cached highlight entries

	// Kafka configuration
	KafkaBrokers          string        // Comma-separated bootstrap servers
	KafkaEnabled          bool          // Whether outbound publishing goes to Kafka
	KafkaSecurityProtocol string        // PLAINTEXT, SSL, SASL_PLAINTEXT or SASL_SSL
	KafkaSASLMechanism    string        // PLAIN, SCRAM-SHA-256 or SCRAM-SHA-512
	KafkaSASLUsername     string        // SASL username (required for SASL_* protocols)
	KafkaSASLPassword     string        // SASL password (required for SASL_* protocols)
	MatchEventsTopic      string        // Topic carrying match events
	ConsumerGroupID       string        // Consumer group id for the ingestion loop
	ConsumerBackoff       time.Duration // Pause after a transient consume error

	// Enrichment configuration
	UseStubEnricher    bool          // Use the deterministic enricher
	EnrichmentEndpoint string        // Remote enrichment service URL
	EnrichmentAPIKey   string        // Optional pre-shared key for the remote service
	EnrichmentTimeout  time.Duration // Remote enrichment call timeout
	WorkerPollInterval time.Duration // Delay between enrichment worker cycles
	WorkerBatchSize    int           // Max pending highlights processed per cycle
}

// Load creates a new Config instance with values loaded from environment
// variables. If an environment variable is not set, the corresponding default
// value is used.
//
// This function does not validate the configuration - call Validate() on the
// returned Config to ensure all required values are properly set and valid.
func Load() *Config {
	return &Config{
		Port:     getEnv("PORT", "8080"),
		LogLevel: getEnv("LOG_LEVEL", "info"),

		DatabaseType:     getEnv("DATABASE_TYPE", "sqlite"),
		DatabasePath:     getEnv("DATABASE_PATH", "./highlights.db"),
		PostgresHost:     getEnv("POSTGRES_HOST", "localhost"),
		PostgresPort:     getEnv("POSTGRES_PORT", "5432"),
		PostgresDB:       getEnv("POSTGRES_DB", "highlights"),
		PostgresUser:     getEnv("POSTGRES_USER", "postgres"),
		PostgresPassword: getEnv("POSTGRES_PASSWORD", ""),
		PostgresSSLMode:  getEnv("POSTGRES_SSL_MODE", "disable"),

		CacheBackend:  getEnv("CACHE_BACKEND", "redis"),
		RedisAddress:  getEnv("REDIS_ADDRESS", "localhost:6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       getEnv("REDIS_DB", "0"),
		RedisPoolSize: getEnv("REDIS_POOL_SIZE", "10"),
		CacheTTL:      getDurationEnv("CACHE_TTL", 5*time.Minute),

		KafkaBrokers:          getEnv("KAFKA_BROKERS", "localhost:9092"),
		KafkaEnabled:          getBoolEnv("KAFKA_ENABLED", true),
		KafkaSecurityProtocol: getEnv("KAFKA_SECURITY_PROTOCOL", "PLAINTEXT"),
		KafkaSASLMechanism:    getEnv("KAFKA_SASL_MECHANISM", ""),
		KafkaSASLUsername:     getEnv("KAFKA_SASL_USERNAME", ""),
		KafkaSASLPassword:     getEnv("KAFKA_SASL_PASSWORD", ""),
		MatchEventsTopic:      getEnv("MATCH_EVENTS_TOPIC", "match-events"),
		ConsumerGroupID:       getEnv("CONSUMER_GROUP_ID", "highlights-consumer"),
		ConsumerBackoff:       getDurationEnv("CONSUMER_BACKOFF", time.Second),

		UseStubEnricher:    getBoolEnv("USE_STUB_ENRICHER", true),
		EnrichmentEndpoint: getEnv("ENRICHMENT_ENDPOINT", ""),
		EnrichmentAPIKey:   getEnv("ENRICHMENT_API_KEY", ""),
		EnrichmentTimeout:  getDurationEnv("ENRICHMENT_TIMEOUT", 30*time.Second),
		WorkerPollInterval: getDurationEnv("WORKER_POLL_INTERVAL", 5*time.Second),
		WorkerBatchSize:    getIntEnv("WORKER_BATCH_SIZE", 25),
	}
}

// getEnv retrieves an environment variable value or returns a default value if not set.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getBoolEnv retrieves a boolean environment variable value or returns a default value.
func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

// getIntEnv retrieves an integer environment variable value or returns a default value.
func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

// getDurationEnv retrieves a duration environment variable value or returns a default value.
func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

// Validate performs validation on the configuration to ensure all required
// fields are present and all values are valid.
//
// The application should call this method after loading configuration and
// before starting to ensure safe operation.
func (c *Config) Validate() error {
	if port, err := strconv.Atoi(c.Port); err != nil || port < 1 || port > 65535 {
		return fmt.Errorf("PORT must be a valid port number between 1 and 65535")
	}

	switch c.DatabaseType {
	case "sqlite", "postgres", "postgresql":
		// Valid store backends
	default:
		return fmt.Errorf("DATABASE_TYPE must be 'sqlite' or 'postgres'")
	}

	if c.DatabaseType == "postgres" || c.DatabaseType == "postgresql" {
		if c.PostgresHost == "" {
			return fmt.Errorf("POSTGRES_HOST is required when using PostgreSQL")
		}
		if c.PostgresDB == "" {
			return fmt.Errorf("POSTGRES_DB is required when using PostgreSQL")
		}
		if c.PostgresUser == "" {
			return fmt.Errorf("POSTGRES_USER is required when using PostgreSQL")
		}
		if port, err := strconv.Atoi(c.PostgresPort); err != nil || port < 1 || port > 65535 {
			return fmt.Errorf("POSTGRES_PORT must be a valid port number")
		}
	}

	switch c.CacheBackend {
	case "redis", "local":
		// Valid cache backends
	default:
		return fmt.Errorf("CACHE_BACKEND must be 'redis' or 'local'")
	}

	if c.CacheBackend == "redis" {
		if db, err := strconv.Atoi(c.RedisDB); err != nil || db < 0 || db > 15 {
			return fmt.Errorf("REDIS_DB must be a number between 0 and 15")
		}
		if poolSize, err := strconv.Atoi(c.RedisPoolSize); err != nil || poolSize < 1 {
			return fmt.Errorf("REDIS_POOL_SIZE must be a positive number")
		}
	}

	if c.CacheTTL <= 0 {
		return fmt.Errorf("CACHE_TTL must be a positive duration")
	}

	if c.KafkaEnabled && c.KafkaBrokers == "" {
		return fmt.Errorf("KAFKA_BROKERS is required when Kafka publishing is enabled")
	}
	if c.MatchEventsTopic == "" {
		return fmt.Errorf("MATCH_EVENTS_TOPIC must not be empty")
	}
	if c.ConsumerGroupID == "" {
		return fmt.Errorf("CONSUMER_GROUP_ID must not be empty")
	}

	if c.WorkerPollInterval <= 0 {
		return fmt.Errorf("WORKER_POLL_INTERVAL must be a positive duration")
	}
	if c.WorkerBatchSize < 1 {
		return fmt.Errorf("WORKER_BATCH_SIZE must be a positive number")
	}

	return nil
}
