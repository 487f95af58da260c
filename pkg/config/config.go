package config

import (
	"fmt"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds application configuration
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Session  SessionConfig
	Identity IdentityConfig
	Groq     GroqConfig
	Assembly AssemblyConfig
	Storage  StorageConfig
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port            string   `envconfig:"PORT" default:"8080"`
	Host            string   `envconfig:"HOST" default:"0.0.0.0"`
	Environment     string   `envconfig:"ENVIRONMENT" default:"development"`
	AllowedOrigins  []string `envconfig:"ALLOWED_ORIGINS" default:"http://localhost:3000"`
	ShutdownTimeout int      `envconfig:"SHUTDOWN_TIMEOUT" default:"10"`
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host     string `envconfig:"DB_HOST" default:"localhost"`
	Port     string `envconfig:"DB_PORT" default:"5432"`
	User     string `envconfig:"DB_USER" default:"postgres"`
	Password string `envconfig:"DB_PASSWORD" default:"postgres"`
	Name     string `envconfig:"DB_NAME" default:"meetmind"`
	SSLMode  string `envconfig:"DB_SSLMODE" default:"disable"`
	MaxConns int    `envconfig:"DB_MAX_CONNS" default:"25"`
	MinConns int    `envconfig:"DB_MIN_CONNS" default:"5"`

	// AutoMigrate applies the sql-migrate files at startup. Development
	// convenience only, refused in production.
	AutoMigrate bool `envconfig:"DB_AUTO_MIGRATE" default:"false"`
}

// RedisConfig holds Redis configuration. Leave Host empty to run with the
// in-memory cache instead.
type RedisConfig struct {
	Host     string `envconfig:"REDIS_HOST" default:""`
	Port     string `envconfig:"REDIS_PORT" default:"6379"`
	Password string `envconfig:"REDIS_PASSWORD" default:""`
	DB       int    `envconfig:"REDIS_DB" default:"0"`
}

// SessionConfig holds verification settings for provider-issued session JWTs
type SessionConfig struct {
	JWTSecret string `envconfig:"SESSION_JWT_SECRET"`
	Issuer    string `envconfig:"SESSION_ISSUER" default:""`
}

// IdentityConfig holds settings for the identity provider webhook
type IdentityConfig struct {
	WebhookSecret string `envconfig:"IDENTITY_WEBHOOK_SECRET"`
}

// GroqConfig holds Groq AI configuration
type GroqConfig struct {
	APIKey  string        `envconfig:"GROQ_API_KEY"`
	BaseURL string        `envconfig:"GROQ_BASE_URL" default:"https://api.groq.com"`
	Model   string        `envconfig:"GROQ_MODEL" default:"llama-3.3-70b-versatile"`
	Timeout time.Duration `envconfig:"GROQ_TIMEOUT" default:"90s"`
}

// AssemblyConfig holds AssemblyAI transcription configuration
type AssemblyConfig struct {
	APIKey       string        `envconfig:"ASSEMBLYAI_API_KEY"`
	PollInterval time.Duration `envconfig:"ASSEMBLYAI_POLL_INTERVAL" default:"3s"`
	PollTimeout  time.Duration `envconfig:"ASSEMBLYAI_POLL_TIMEOUT" default:"10m"`
}

// StorageConfig holds storage configuration
type StorageConfig struct {
	Endpoint        string `envconfig:"STORAGE_ENDPOINT" default:"localhost:9000"`
	AccessKeyID     string `envconfig:"STORAGE_ACCESS_KEY" default:"minioadmin"`
	SecretAccessKey string `envconfig:"STORAGE_SECRET_KEY" default:"minioadmin"`
	BucketName      string `envconfig:"STORAGE_BUCKET" default:"meetmind"`
	UseSSL          bool   `envconfig:"STORAGE_USE_SSL" default:"false"`
	PublicURL       string `envconfig:"STORAGE_PUBLIC_URL" default:""`
	MaxUploadSize   int64  `envconfig:"STORAGE_MAX_UPLOAD_SIZE" default:"524288000"`
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if exists (ignore error if file doesn't exist)
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found, using environment variables or defaults")
	}

	var config Config
	if err := envconfig.Process("", &config); err != nil {
		return nil, fmt.Errorf("failed to process environment: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Session.JWTSecret == "" {
		return fmt.Errorf("SESSION_JWT_SECRET is required")
	}
	if c.Groq.APIKey == "" {
		return fmt.Errorf("GROQ_API_KEY is required")
	}
	if c.Identity.WebhookSecret == "" {
		return fmt.Errorf("IDENTITY_WEBHOOK_SECRET is required")
	}
	return nil
}

// IsProduction reports whether the server runs in production mode
func (c *Config) IsProduction() bool {
	return c.Server.Environment == "production"
}

// GetDatabaseDSN returns the database connection string
func (c *Config) GetDatabaseDSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

// GetRedisAddr returns the Redis address
func (c *Config) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", c.Redis.Host, c.Redis.Port)
}
