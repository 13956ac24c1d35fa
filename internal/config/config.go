package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the service
type Config struct {
	Server    ServerConfig
	Storage   StorageConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	Kafka     KafkaConfig
	Auth      AuthConfig
	Retention RetentionConfig
	Logging   LoggingConfig
}

// ServerConfig holds server specific configuration
type ServerConfig struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

// StorageConfig selects the record store backend
type StorageConfig struct {
	// Backend is one of "memory", "redis", "postgres"
	Backend        string
	ConnectTimeout time.Duration
}

// DatabaseConfig holds postgres specific configuration
type DatabaseConfig struct {
	Host            string
	Port            string
	User            string
	Password        string
	DBName          string
	SSLMode         string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// RedisConfig holds redis specific configuration
type RedisConfig struct {
	URL      string
	Password string
	DB       int
}

// KafkaConfig holds kafka specific configuration
type KafkaConfig struct {
	Enabled  bool
	Brokers  []string
	ClientID string
	Topic    string
}

// AuthConfig holds authentication specific configuration
type AuthConfig struct {
	JWTSecret            string
	AccessTokenDuration  time.Duration
	RefreshTokenDuration time.Duration
	SeedAdmin            SeedAdminConfig
}

// SeedAdminConfig describes the admin account created at startup. Admin
// accounts cannot be registered, so seeding is the only way one comes to
// exist.
type SeedAdminConfig struct {
	Enabled  bool
	Username string
	Email    string
	Password string
}

// RetentionConfig holds the notification retention sweep configuration
type RetentionConfig struct {
	Enabled  bool
	Schedule string
	MaxAge   time.Duration
}

// LoggingConfig holds logging specific configuration
type LoggingConfig struct {
	Level  string
	Format string
}

// LoadConfig loads the configuration from file and environment variables
func LoadConfig(path string) (*Config, error) {
	v := viper.New()

	// Set defaults
	setDefaults(v)

	// Read config file
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Read from environment variables
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

// setDefaults sets default values for configuration
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.readTimeout", "10s")
	v.SetDefault("server.writeTimeout", "10s")
	v.SetDefault("server.idleTimeout", "120s")

	// Storage defaults
	v.SetDefault("storage.backend", "memory")
	v.SetDefault("storage.connectTimeout", "30s")

	// Database defaults
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.maxOpenConns", 25)
	v.SetDefault("database.maxIdleConns", 5)
	v.SetDefault("database.connMaxLifetime", "30m")

	// Kafka defaults
	v.SetDefault("kafka.enabled", false)
	v.SetDefault("kafka.clientID", "soulsync-api")
	v.SetDefault("kafka.topic", "soulsync-events")

	// Auth defaults
	v.SetDefault("auth.accessTokenDuration", "15m")
	v.SetDefault("auth.refreshTokenDuration", "168h")
	v.SetDefault("auth.seedAdmin.enabled", false)
	v.SetDefault("auth.seedAdmin.username", "admin")

	// Retention defaults
	v.SetDefault("retention.enabled", false)
	v.SetDefault("retention.schedule", "0 3 * * *")
	v.SetDefault("retention.maxAge", "720h")

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
}
