package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config structure represents the application configuration
type Config struct {
	Server struct {
		Port string `yaml:"port" env:"SERVER_PORT"`
		Mode string `yaml:"mode" env:"SERVER_MODE"`
	} `yaml:"server"`

	Database struct {
		Host            string `yaml:"host" env:"DB_HOST"`
		Port            string `yaml:"port" env:"DB_PORT"`
		User            string `yaml:"user" env:"DB_USER"`
		Password        string `yaml:"password" env:"DB_PASSWORD"`
		DBName          string `yaml:"dbname" env:"DB_NAME"`
		SSLMode         string `yaml:"sslmode" env:"DB_SSLMODE"`
		MaxIdleConns    int    `yaml:"max_idle_conns" env:"DB_MAX_IDLE_CONNS"`
		MaxOpenConns    int    `yaml:"max_open_conns" env:"DB_MAX_OPEN_CONNS"`
		ConnMaxLifetime string `yaml:"conn_max_lifetime" env:"DB_CONN_MAX_LIFETIME"`
	} `yaml:"database"`

	Session struct {
		Secret     string `yaml:"secret" env:"SESSION_SECRET"`
		TTL        string `yaml:"ttl" env:"SESSION_TTL"`
		CookieName string `yaml:"cookie_name" env:"SESSION_COOKIE_NAME"`
		Issuer     string `yaml:"issuer" env:"SESSION_ISSUER"`
	} `yaml:"session"`

	Registration struct {
		NumberPrefix    string `yaml:"number_prefix" env:"REGISTRATION_NUMBER_PREFIX"`
		PhotoWidth      int    `yaml:"photo_width" env:"REGISTRATION_PHOTO_WIDTH"`
		PhotoHeight     int    `yaml:"photo_height" env:"REGISTRATION_PHOTO_HEIGHT"`
		SignatureWidth  int    `yaml:"signature_width" env:"REGISTRATION_SIGNATURE_WIDTH"`
		SignatureHeight int    `yaml:"signature_height" env:"REGISTRATION_SIGNATURE_HEIGHT"`
	} `yaml:"registration"`

	Assets struct {
		Driver      string `yaml:"driver" env:"ASSETS_DRIVER"` // "local" or "minio"
		StoragePath string `yaml:"storage_path" env:"ASSETS_STORAGE_PATH"`
		BaseURL     string `yaml:"base_url" env:"ASSETS_BASE_URL"`

		Minio struct {
			Endpoint  string `yaml:"endpoint" env:"MINIO_ENDPOINT"`
			AccessKey string `yaml:"access_key" env:"MINIO_ACCESS_KEY"`
			SecretKey string `yaml:"secret_key" env:"MINIO_SECRET_KEY"`
			Bucket    string `yaml:"bucket" env:"MINIO_BUCKET"`
			UseSSL    bool   `yaml:"use_ssl" env:"MINIO_USE_SSL"`
		} `yaml:"minio"`
	} `yaml:"assets"`

	Logging struct {
		Level  string `yaml:"level" env:"LOG_LEVEL"`
		Format string `yaml:"format" env:"LOG_FORMAT"`
	} `yaml:"logging"`
}

// LoadConfig loads configuration from a file and environment variables
func LoadConfig(configPath string) (*Config, error) {
	config := &Config{}
	setDefaults(config)

	// Try to read config file if it exists
	if _, err := os.Stat(configPath); err == nil {
		file, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}

		err = yaml.Unmarshal(file, config)
		if err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	// Override with environment variables
	if err := loadFromEnv(config); err != nil {
		return nil, fmt.Errorf("failed to load from environment: %w", err)
	}

	if err := validateConfig(config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// setDefaults sets default values for the configuration
func setDefaults(config *Config) {
	config.Server.Port = "8080"
	config.Server.Mode = "development"

	config.Database.Host = "localhost"
	config.Database.Port = "5432"
	config.Database.User = "postgres"
	config.Database.Password = "postgres"
	config.Database.DBName = "olympiad"
	config.Database.SSLMode = "disable"
	config.Database.MaxIdleConns = 5
	config.Database.MaxOpenConns = 20
	config.Database.ConnMaxLifetime = "1h"

	config.Session.TTL = "24h"
	config.Session.CookieName = "admin_session"
	config.Session.Issuer = "olympiad.registration"

	config.Registration.NumberPrefix = "SSS"
	config.Registration.PhotoWidth = 600
	config.Registration.PhotoHeight = 600
	config.Registration.SignatureWidth = 300
	config.Registration.SignatureHeight = 80

	config.Assets.Driver = "local"
	config.Assets.StoragePath = "uploads"
	config.Assets.Minio.Bucket = "student-assets"

	config.Logging.Level = "info"
	config.Logging.Format = "json"
}

// loadFromEnv overrides configuration with environment variables
func loadFromEnv(config *Config) error {
	return processStructFields(config)
}

// validateConfig ensures that the configuration is valid
func validateConfig(config *Config) error {
	if config.Database.Host == "" {
		return fmt.Errorf("database host is required")
	}

	if config.Session.Secret == "" {
		return fmt.Errorf("session secret is required")
	}

	if _, err := time.ParseDuration(config.Session.TTL); err != nil {
		return fmt.Errorf("invalid session TTL format: %w", err)
	}

	switch strings.ToLower(config.Assets.Driver) {
	case "local":
		if config.Assets.StoragePath == "" {
			return fmt.Errorf("assets storage path is required for the local driver")
		}
	case "minio":
		if config.Assets.Minio.Endpoint == "" {
			return fmt.Errorf("minio endpoint is required for the minio driver")
		}
		if config.Assets.Minio.Bucket == "" {
			return fmt.Errorf("minio bucket is required for the minio driver")
		}
	default:
		return fmt.Errorf("unknown assets driver: %s", config.Assets.Driver)
	}

	if config.Registration.PhotoWidth <= 0 || config.Registration.PhotoHeight <= 0 {
		return fmt.Errorf("photo dimensions must be positive")
	}
	if config.Registration.SignatureWidth <= 0 || config.Registration.SignatureHeight <= 0 {
		return fmt.Errorf("signature dimensions must be positive")
	}

	return nil
}

// GetPostgresConnectionString returns postgres connection string
func (c *Config) GetPostgresConnectionString() string {
	sslMode := c.Database.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}

	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.DBName,
		sslMode,
	)
}
