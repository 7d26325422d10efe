package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	// MinPort is the minimum valid port number
	MinPort = 1
	// MaxPort is the maximum valid port number
	MaxPort = 65535
)

// Registry backends selectable via config
const (
	RegistryBackendMemory   = "memory"
	RegistryBackendPostgres = "postgres"
)

// Synthesis modes selectable via config
const (
	SynthesisModeDemo   = "demo"
	SynthesisModeNeural = "neural"
)

// Config represents the complete application configuration
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Storage   StorageConfig   `yaml:"storage"`
	Registry  RegistryConfig  `yaml:"registry"`
	Database  DatabaseConfig  `yaml:"database"`
	Synthesis SynthesisConfig `yaml:"synthesis"`
	Logging   LoggingConfig   `yaml:"logging"`
	App       AppConfig       `yaml:"app"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Port            int           `yaml:"port"`
	ReadTimeout     time.Duration `yaml:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

// StorageConfig holds upload/output directory and retention configuration
type StorageConfig struct {
	UploadsDir      string        `yaml:"uploads_dir"`
	OutputsDir      string        `yaml:"outputs_dir"`
	MaxUploadSizeMB int           `yaml:"max_upload_size_mb"`
	RetentionPeriod time.Duration `yaml:"retention_period"`
	CleanupInterval time.Duration `yaml:"cleanup_interval"`
}

// RegistryConfig selects the conversion registry backend
type RegistryConfig struct {
	Backend string `yaml:"backend"`
}

// DatabaseConfig holds PostgreSQL connection configuration.
// Only used when registry.backend is "postgres".
type DatabaseConfig struct {
	Host            string        `yaml:"host"`
	Port            int           `yaml:"port"`
	User            string        `yaml:"user"`
	Password        string        `yaml:"password"`
	Database        string        `yaml:"database"`
	SSLMode         string        `yaml:"sslmode"`
	MaxOpenConns    int           `yaml:"max_open_conns"`
	MaxIdleConns    int           `yaml:"max_idle_conns"`
	ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime"`
	ConnMaxIdleTime time.Duration `yaml:"conn_max_idle_time"`
}

// SynthesisConfig holds mesh synthesis configuration
type SynthesisConfig struct {
	Mode      string        `yaml:"mode"`
	ScriptDir string        `yaml:"script_dir"`
	Timeout   time.Duration `yaml:"timeout"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level        string `yaml:"level"`
	Format       string `yaml:"format"`
	Output       string `yaml:"output"`
	EnableCaller bool   `yaml:"enable_caller"`
}

// AppConfig holds application metadata
type AppConfig struct {
	Name        string `yaml:"name"`
	Version     string `yaml:"version"`
	Environment string `yaml:"environment"`
}

// Load reads and parses the configuration file
func Load(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	config.applyDefaults()

	return &config, nil
}

func (c *Config) applyDefaults() {
	if c.Storage.MaxUploadSizeMB == 0 {
		c.Storage.MaxUploadSizeMB = 10
	}
	if c.Storage.RetentionPeriod == 0 {
		c.Storage.RetentionPeriod = 24 * time.Hour
	}
	if c.Storage.CleanupInterval == 0 {
		c.Storage.CleanupInterval = time.Hour
	}
	if c.Registry.Backend == "" {
		c.Registry.Backend = RegistryBackendMemory
	}
	if c.Synthesis.Mode == "" {
		c.Synthesis.Mode = SynthesisModeDemo
	}
	if c.Synthesis.Timeout == 0 {
		c.Synthesis.Timeout = 5 * time.Minute
	}
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Server.Port < MinPort || c.Server.Port > MaxPort {
		return fmt.Errorf("invalid server port: %d (must be between %d and %d)", c.Server.Port, MinPort, MaxPort)
	}

	if c.Storage.UploadsDir == "" {
		return fmt.Errorf("storage uploads_dir is required")
	}

	if c.Storage.OutputsDir == "" {
		return fmt.Errorf("storage outputs_dir is required")
	}

	if c.Storage.MaxUploadSizeMB <= 0 {
		return fmt.Errorf("storage max_upload_size_mb must be greater than 0")
	}

	if c.Storage.RetentionPeriod <= 0 {
		return fmt.Errorf("storage retention_period must be greater than 0")
	}

	if c.Storage.CleanupInterval <= 0 {
		return fmt.Errorf("storage cleanup_interval must be greater than 0")
	}

	switch c.Registry.Backend {
	case RegistryBackendMemory:
	case RegistryBackendPostgres:
		if c.Database.Host == "" {
			return fmt.Errorf("database host is required for postgres registry")
		}
		if c.Database.Port < MinPort || c.Database.Port > MaxPort {
			return fmt.Errorf("invalid database port: %d (must be between %d and %d)", c.Database.Port, MinPort, MaxPort)
		}
		if c.Database.Database == "" {
			return fmt.Errorf("database name is required for postgres registry")
		}
	default:
		return fmt.Errorf("invalid registry backend: %q (must be %q or %q)", c.Registry.Backend, RegistryBackendMemory, RegistryBackendPostgres)
	}

	switch c.Synthesis.Mode {
	case SynthesisModeDemo:
	case SynthesisModeNeural:
		if c.Synthesis.ScriptDir == "" {
			return fmt.Errorf("synthesis script_dir is required for neural mode")
		}
	default:
		return fmt.Errorf("invalid synthesis mode: %q (must be %q or %q)", c.Synthesis.Mode, SynthesisModeDemo, SynthesisModeNeural)
	}

	return nil
}
