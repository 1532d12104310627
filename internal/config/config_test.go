package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadAPIConfig(t *testing.T) {
	tests := []struct {
		name        string
		configFile  string
		expectError bool
		validate    func(*testing.T, *APIConfig)
	}{
		{
			name: "valid config file",
			configFile: `
debug: true
sentry_dsn: "https://sentry.example.com"
server:
  host: 127.0.0.1
  port: 9900
  read_timeout: 5
database:
  host: localhost
  port: 5432
  user: testuser
  password: testpass
  dbname: testdb
  sslmode: require
ledger:
  rpc_url: "http://localhost:8545"
  contract_address: "0x5FbDB2315678afecb367f032d93F642f64180aa3"
  chain_id: 31337
  private_key: "ac0974bec39a17e36ba4a6b4d238ff944bacb478cbed5efcae784d7bf4f2ff80"
  receipt_interval: "1s"
nats:
  url: "nats://localhost:4222"
  stream_name: "TEST_STREAM"
uploads:
  dir: "testdata/uploads/"
  max_file_size: 1048576
auth:
  api_keys:
    - "test-key"
aggregation:
  concurrency: 4
store_retry:
  initial_interval: "100ms"
  max_elapsed_time: "10s"
`,
			expectError: false,
			validate: func(t *testing.T, cfg *APIConfig) {
				assert.True(t, cfg.Debug)
				assert.Equal(t, "https://sentry.example.com", cfg.SentryDSN)
				assert.Equal(t, "127.0.0.1", cfg.Server.Host)
				assert.Equal(t, 9900, cfg.Server.Port)
				assert.Equal(t, 5, cfg.Server.ReadTimeout)
				assert.Equal(t, "localhost", cfg.Database.Host)
				assert.Equal(t, "require", cfg.Database.SSLMode)
				assert.Equal(t, "http://localhost:8545", cfg.Ledger.RPCURL)
				assert.Equal(t, int64(31337), cfg.Ledger.ChainID)
				assert.Equal(t, time.Second, cfg.Ledger.ReceiptInterval)
				assert.Equal(t, "nats://localhost:4222", cfg.NATS.URL)
				assert.Equal(t, "TEST_STREAM", cfg.NATS.StreamName)
				assert.Equal(t, "testdata/uploads/", cfg.Uploads.Dir)
				assert.Equal(t, int64(1048576), cfg.Uploads.MaxFileSize)
				assert.Equal(t, []string{"test-key"}, cfg.Auth.APIKeys)
				assert.Equal(t, 4, cfg.Aggregation.Concurrency)
				assert.Equal(t, 100*time.Millisecond, cfg.StoreRetry.InitialInterval)
				assert.Equal(t, 10*time.Second, cfg.StoreRetry.MaxElapsedTime)
			},
		},
		{
			name: "config with defaults",
			configFile: `
database:
  host: localhost
  user: testuser
  password: testpass
  dbname: testdb
ledger:
  rpc_url: "http://localhost:8545"
  contract_address: "0x5FbDB2315678afecb367f032d93F642f64180aa3"
  private_key: "ac0974bec39a17e36ba4a6b4d238ff944bacb478cbed5efcae784d7bf4f2ff80"
`,
			expectError: false,
			validate: func(t *testing.T, cfg *APIConfig) {
				assert.False(t, cfg.Debug)
				assert.Equal(t, "0.0.0.0", cfg.Server.Host)
				assert.Equal(t, 8800, cfg.Server.Port)
				assert.Equal(t, 10, cfg.Server.ReadTimeout)
				assert.Equal(t, 30, cfg.Server.WriteTimeout)
				assert.Equal(t, 120, cfg.Server.IdleTimeout)
				assert.Equal(t, 5432, cfg.Database.Port)
				assert.Equal(t, "disable", cfg.Database.SSLMode)
				assert.Equal(t, int64(11155111), cfg.Ledger.ChainID)
				assert.Equal(t, 2*time.Second, cfg.Ledger.ReceiptInterval)
				assert.Equal(t, 30*time.Second, cfg.Ledger.CallTimeout)
				assert.Equal(t, "MARKET_EVENTS", cfg.NATS.StreamName)
				assert.Equal(t, 10, cfg.NATS.MaxReconnects)
				assert.Equal(t, 2*time.Second, cfg.NATS.ReconnectWait)
				assert.Equal(t, "car-ledger-api", cfg.NATS.ConnectionName)
				assert.Equal(t, "uploads/", cfg.Uploads.Dir)
				assert.Equal(t, int64(10*1024*1024), cfg.Uploads.MaxFileSize)
				assert.Equal(t, 8, cfg.Aggregation.Concurrency)
				assert.Equal(t, 200*time.Millisecond, cfg.StoreRetry.InitialInterval)
				assert.Equal(t, 5*time.Second, cfg.StoreRetry.MaxInterval)
				assert.Equal(t, 30*time.Second, cfg.StoreRetry.MaxElapsedTime)
			},
		},
		{
			name:        "missing config file falls back to defaults",
			configFile:  "",
			expectError: false,
			validate:    nil,
		},
		{
			name: "invalid yaml",
			configFile: `
				server:
				  port: not-a-number
			`,
			expectError: true,
			validate:    nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmpDir := t.TempDir()
			var configFile string

			if tt.configFile != "" {
				configFile = filepath.Join(tmpDir, "config.yaml")
				err := os.WriteFile(configFile, []byte(tt.configFile), 0600)
				require.NoError(t, err)
			} else {
				configFile = filepath.Join(tmpDir, "nonexistent.yaml")
			}

			cfg, err := LoadAPIConfig(configFile, "")

			if tt.expectError {
				assert.Error(t, err)
				assert.Nil(t, cfg)
			} else {
				if tt.validate != nil {
					require.NoError(t, err)
					require.NotNil(t, cfg)
					tt.validate(t, cfg)
				}
			}
		})
	}
}

func TestLoadAPIConfig_EnvOverride(t *testing.T) {
	t.Setenv("CAR_LEDGER_SERVER_PORT", "9999")
	t.Setenv("CAR_LEDGER_DATABASE_HOST", "envhost")
	t.Setenv("CAR_LEDGER_LEDGER_CONTRACT_ADDRESS", "0x5FbDB2315678afecb367f032d93F642f64180aa3")

	cfg, err := LoadAPIConfig(filepath.Join(t.TempDir(), "nonexistent.yaml"), t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, 9999, cfg.Server.Port)
	assert.Equal(t, "envhost", cfg.Database.Host)
	assert.Equal(t, "0x5FbDB2315678afecb367f032d93F642f64180aa3", cfg.Ledger.ContractAddress)
}

func TestDatabaseConfigDSN(t *testing.T) {
	cfg := DatabaseConfig{
		Host:     "localhost",
		Port:     5432,
		User:     "postgres",
		Password: "secret",
		DBName:   "car_ledger",
		SSLMode:  "disable",
	}

	assert.Equal(t,
		"host=localhost port=5432 user=postgres password=secret dbname=car_ledger sslmode=disable",
		cfg.DSN())
}
