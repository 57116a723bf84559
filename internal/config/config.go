// File: internal/config/config.go
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	DBDriverPostgres = "postgres"
	DBDriverSQLite   = "sqlite"

	BlobStoreFilesystem = "filesystem"
	BlobStoreFirebase   = "firebase"

	// MinAccessTokenBytes keeps issued tokens at or above 128 bits of randomness.
	MinAccessTokenBytes = 16
)

// Config holds all configuration for the application.
type Config struct {
	// Server Configuration
	GinMode       string        `mapstructure:"GIN_MODE"`
	ServerHost    string        `mapstructure:"SERVER_HOST"`
	ServerPort    string        `mapstructure:"SERVER_PORT"`
	ServerTimeout time.Duration `mapstructure:"-"`

	// Database Configuration
	DBDriver          string        `mapstructure:"DB_DRIVER"`
	DBHost            string        `mapstructure:"DB_HOST"`
	DBPort            string        `mapstructure:"DB_PORT"`
	DBUser            string        `mapstructure:"DB_USER"`
	DBPassword        string        `mapstructure:"DB_PASSWORD"`
	DBName            string        `mapstructure:"DB_NAME"`
	DBSSLMode         string        `mapstructure:"DB_SSL_MODE"`
	DBTimezone        string        `mapstructure:"DB_TIMEZONE"`
	DBMaxIdleConns    int           `mapstructure:"DB_MAX_IDLE_CONNS"`
	DBMaxOpenConns    int           `mapstructure:"DB_MAX_OPEN_CONNS"`
	DBConnMaxLifetime time.Duration `mapstructure:"-"`
	DBSource          string        `mapstructure:"DB_SOURCE"`
	DBAutoMigrate     bool          `mapstructure:"DB_AUTO_MIGRATE"`

	// Logging Configuration
	LogLevel  string `mapstructure:"LOG_LEVEL"`
	LogFormat string `mapstructure:"LOG_FORMAT"`

	// Credentials
	BcryptCost       int `mapstructure:"BCRYPT_COST"`
	AccessTokenBytes int `mapstructure:"ACCESS_TOKEN_BYTES"`

	// Seed population
	ResetDatabase   bool   `mapstructure:"RESET_DATABASE"`
	SeedDataPath    string `mapstructure:"SEED_DATA_PATH"`
	SeedLogosDir    string `mapstructure:"SEED_LOGOS_DIR"`
	SeedConcurrency int    `mapstructure:"SEED_CONCURRENCY"`

	// Blob store
	BlobStoreDriver      string `mapstructure:"BLOB_STORE_DRIVER"`
	FileStoragePath      string `mapstructure:"FILE_STORAGE_PATH"`
	FileStoragePublicURL string `mapstructure:"FILE_STORAGE_PUBLIC_URL"`
	MaxUploadSizeMB      int64  `mapstructure:"MAX_UPLOAD_SIZE_MB"`

	// Firebase Configuration
	FirebaseServiceAccountKeyPath string `mapstructure:"FIREBASE_SERVICE_ACCOUNT_KEY_PATH"`
	FirebaseProjectID             string `mapstructure:"FIREBASE_PROJECT_ID"`
	FirebaseStorageBucket         string `mapstructure:"FIREBASE_STORAGE_BUCKET"`

	// Elasticsearch Configuration (empty URL disables indexing)
	ElasticsearchURL string `mapstructure:"ELASTICSEARCH_URL"`

	// Cron Jobs
	LocalsIndexJobSchedule string `mapstructure:"LOCALS_INDEX_JOB_SCHEDULE"`
}

// Load attempts to load configuration from a .env file (if present) and environment variables.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("error loading .env file: %w", err)
		}
	}

	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling configuration: %w", err)
	}

	// Convert duration fields
	cfg.ServerTimeout = time.Duration(v.GetInt("SERVER_TIMEOUT_SECONDS")) * time.Second
	cfg.DBConnMaxLifetime = time.Duration(v.GetInt("DB_CONN_MAX_LIFETIME_MINUTES")) * time.Minute

	cfg.DBDriver = strings.ToLower(strings.TrimSpace(cfg.DBDriver))
	cfg.BlobStoreDriver = strings.ToLower(strings.TrimSpace(cfg.BlobStoreDriver))

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("GIN_MODE", "debug")
	v.SetDefault("SERVER_HOST", "0.0.0.0")
	v.SetDefault("SERVER_PORT", "8080")
	v.SetDefault("SERVER_TIMEOUT_SECONDS", 30)

	v.SetDefault("DB_DRIVER", DBDriverPostgres)
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "password")
	v.SetDefault("DB_NAME", "torslanda_locals")
	v.SetDefault("DB_SSL_MODE", "disable")
	v.SetDefault("DB_TIMEZONE", "UTC")
	v.SetDefault("DB_MAX_IDLE_CONNS", 10)
	v.SetDefault("DB_MAX_OPEN_CONNS", 100)
	v.SetDefault("DB_CONN_MAX_LIFETIME_MINUTES", 60)
	v.SetDefault("DB_SOURCE", "")
	v.SetDefault("DB_AUTO_MIGRATE", true)

	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "")

	v.SetDefault("BCRYPT_COST", 10)
	v.SetDefault("ACCESS_TOKEN_BYTES", 128)

	v.SetDefault("RESET_DATABASE", false)
	v.SetDefault("SEED_DATA_PATH", "./data/locals.json")
	v.SetDefault("SEED_LOGOS_DIR", "./logos")
	v.SetDefault("SEED_CONCURRENCY", 4)

	v.SetDefault("BLOB_STORE_DRIVER", BlobStoreFilesystem)
	v.SetDefault("FILE_STORAGE_PATH", "./images")
	v.SetDefault("FILE_STORAGE_PUBLIC_URL", "http://localhost:8080/images")
	v.SetDefault("MAX_UPLOAD_SIZE_MB", 10)

	v.SetDefault("FIREBASE_SERVICE_ACCOUNT_KEY_PATH", "")
	v.SetDefault("FIREBASE_PROJECT_ID", "")
	v.SetDefault("FIREBASE_STORAGE_BUCKET", "")

	v.SetDefault("ELASTICSEARCH_URL", "")
	v.SetDefault("LOCALS_INDEX_JOB_SCHEDULE", "@hourly")
}

// Validate checks the settings that cannot be defaulted into something sane.
func (c *Config) Validate() error {
	switch c.DBDriver {
	case DBDriverPostgres:
	case DBDriverSQLite:
		if strings.TrimSpace(c.DBSource) == "" {
			return fmt.Errorf("DB_SOURCE is required when DB_DRIVER is %q", DBDriverSQLite)
		}
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.DBDriver)
	}

	if c.AccessTokenBytes < MinAccessTokenBytes {
		return fmt.Errorf("ACCESS_TOKEN_BYTES must be at least %d, got %d", MinAccessTokenBytes, c.AccessTokenBytes)
	}
	if c.SeedConcurrency <= 0 {
		c.SeedConcurrency = 1
	}

	switch c.BlobStoreDriver {
	case BlobStoreFilesystem:
		if strings.TrimSpace(c.FileStoragePath) == "" {
			return fmt.Errorf("FILE_STORAGE_PATH is required for the filesystem blob store")
		}
	case BlobStoreFirebase:
		if strings.TrimSpace(c.FirebaseServiceAccountKeyPath) == "" {
			return fmt.Errorf("FIREBASE_SERVICE_ACCOUNT_KEY_PATH is required when BLOB_STORE_DRIVER is %q", BlobStoreFirebase)
		}
		if _, err := os.Stat(c.FirebaseServiceAccountKeyPath); os.IsNotExist(err) {
			return fmt.Errorf("firebase service account key file (%s) not found", c.FirebaseServiceAccountKeyPath)
		}
		if strings.TrimSpace(c.FirebaseStorageBucket) == "" {
			return fmt.Errorf("FIREBASE_STORAGE_BUCKET is required when BLOB_STORE_DRIVER is %q", BlobStoreFirebase)
		}
	default:
		return fmt.Errorf("unsupported BLOB_STORE_DRIVER %q", c.BlobStoreDriver)
	}
	return nil
}

// PostgresDSN builds the GORM DSN from the individual DB_* settings.
func (c *Config) PostgresDSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s TimeZone=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSSLMode, c.DBTimezone)
}

// PostgresURL builds the URL form golang-migrate expects.
func (c *Config) PostgresURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName, c.DBSSLMode)
}

// MaxUploadBytes is the multipart memory limit for image uploads.
func (c *Config) MaxUploadBytes() int64 {
	if c.MaxUploadSizeMB <= 0 {
		return 10 << 20
	}
	return c.MaxUploadSizeMB << 20
}
