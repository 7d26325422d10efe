package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	tests := []struct {
		name      string
		filePath  string
		wantErr   bool
		errString string
	}{
		{
			name:     "valid config file",
			filePath: "testdata/valid_config.yaml",
			wantErr:  false,
		},
		{
			name:      "non-existent file",
			filePath:  "testdata/nonexistent.yaml",
			wantErr:   true,
			errString: "failed to read config file",
		},
		{
			name:      "malformed yaml",
			filePath:  "testdata/malformed.yaml",
			wantErr:   true,
			errString: "failed to parse config file",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Load(tt.filePath)

			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errString)
				assert.Nil(t, cfg)
			} else {
				require.NoError(t, err)
				require.NotNil(t, cfg)

				// Verify some key fields are populated
				assert.Equal(t, 8000, cfg.Server.Port)
				assert.Equal(t, "data/uploads", cfg.Storage.UploadsDir)
				assert.Equal(t, "data/outputs", cfg.Storage.OutputsDir)
				assert.Equal(t, RegistryBackendMemory, cfg.Registry.Backend)
				assert.Equal(t, SynthesisModeDemo, cfg.Synthesis.Mode)
				assert.Equal(t, "sketch2mesh-service", cfg.App.Name)
			}
		})
	}
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("testdata/valid_config.yaml")
	require.NoError(t, err)

	assert.Equal(t, 10, cfg.Storage.MaxUploadSizeMB)
	assert.Equal(t, 24*time.Hour, cfg.Storage.RetentionPeriod)
	assert.Equal(t, time.Hour, cfg.Storage.CleanupInterval)
	assert.Equal(t, 5*time.Minute, cfg.Synthesis.Timeout)
}

func TestConfig_Validate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Server: ServerConfig{Port: 8000},
			Storage: StorageConfig{
				UploadsDir:      "data/uploads",
				OutputsDir:      "data/outputs",
				MaxUploadSizeMB: 10,
				RetentionPeriod: 24 * time.Hour,
				CleanupInterval: time.Hour,
			},
			Registry:  RegistryConfig{Backend: RegistryBackendMemory},
			Synthesis: SynthesisConfig{Mode: SynthesisModeDemo},
		}
	}

	tests := []struct {
		name      string
		mutate    func(*Config)
		wantErr   bool
		errString string
	}{
		{
			name:    "valid config",
			mutate:  func(*Config) {},
			wantErr: false,
		},
		{
			name:      "invalid server port - too low",
			mutate:    func(c *Config) { c.Server.Port = 0 },
			wantErr:   true,
			errString: "invalid server port",
		},
		{
			name:      "invalid server port - too high",
			mutate:    func(c *Config) { c.Server.Port = 70000 },
			wantErr:   true,
			errString: "invalid server port",
		},
		{
			name:      "empty uploads dir",
			mutate:    func(c *Config) { c.Storage.UploadsDir = "" },
			wantErr:   true,
			errString: "uploads_dir is required",
		},
		{
			name:      "empty outputs dir",
			mutate:    func(c *Config) { c.Storage.OutputsDir = "" },
			wantErr:   true,
			errString: "outputs_dir is required",
		},
		{
			name:      "zero max upload size",
			mutate:    func(c *Config) { c.Storage.MaxUploadSizeMB = 0 },
			wantErr:   true,
			errString: "max_upload_size_mb must be greater than 0",
		},
		{
			name:      "unknown registry backend",
			mutate:    func(c *Config) { c.Registry.Backend = "redis" },
			wantErr:   true,
			errString: "invalid registry backend",
		},
		{
			name: "postgres backend without database host",
			mutate: func(c *Config) {
				c.Registry.Backend = RegistryBackendPostgres
			},
			wantErr:   true,
			errString: "database host is required",
		},
		{
			name: "postgres backend fully configured",
			mutate: func(c *Config) {
				c.Registry.Backend = RegistryBackendPostgres
				c.Database = DatabaseConfig{
					Host:     "localhost",
					Port:     5432,
					Database: "sketch2mesh_db",
				}
			},
			wantErr: false,
		},
		{
			name:      "unknown synthesis mode",
			mutate:    func(c *Config) { c.Synthesis.Mode = "hybrid" },
			wantErr:   true,
			errString: "invalid synthesis mode",
		},
		{
			name: "neural mode without script dir",
			mutate: func(c *Config) {
				c.Synthesis.Mode = SynthesisModeNeural
			},
			wantErr:   true,
			errString: "script_dir is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)

			err := cfg.Validate()

			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errString)
			} else {
				require.NoError(t, err)
			}
		})
	}
}
