package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, StorageMemory, cfg.Storage.Driver)
	assert.Equal(t, "0.0.0.0:5000", cfg.App.Addr())
	assert.Equal(t, 7*24*time.Hour, cfg.Auth.TokenTTL)
	assert.Equal(t, 10, cfg.Auth.BcryptCost)
	assert.Equal(t, "hostel:complaints", cfg.Notification.RedisChannel)
	assert.False(t, cfg.Complaints.StrictTransitions)
	assert.False(t, cfg.Redis.Enabled())
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "SQLite")
	t.Setenv("SQLITE_PATH", "/tmp/hostel-test.db")
	t.Setenv("AUTH_TOKEN_TTL", "2h")
	t.Setenv("COMPLAINT_STRICT_TRANSITIONS", "true")
	t.Setenv("REDIS_ADDR", "localhost:6379")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, StorageSQLite, cfg.Storage.Driver)
	assert.Equal(t, "/tmp/hostel-test.db", cfg.SQLite.Path)
	assert.Equal(t, 2*time.Hour, cfg.Auth.TokenTTL)
	assert.True(t, cfg.Complaints.StrictTransitions)
	assert.True(t, cfg.Redis.Enabled())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{
			name: "memory",
			cfg:  Config{Storage: StorageConfig{Driver: "memory"}, Auth: AuthConfig{TokenTTL: time.Hour}},
		},
		{
			name:    "postgres without dsn",
			cfg:     Config{Storage: StorageConfig{Driver: "postgres"}, Auth: AuthConfig{TokenTTL: time.Hour}},
			wantErr: true,
		},
		{
			name: "postgres with dsn",
			cfg: Config{
				Storage:  StorageConfig{Driver: "postgres"},
				Postgres: PostgresConfig{DSN: "postgres://localhost/hostel"},
				Auth:     AuthConfig{TokenTTL: time.Hour},
			},
		},
		{
			name:    "unknown driver",
			cfg:     Config{Storage: StorageConfig{Driver: "mongo"}, Auth: AuthConfig{TokenTTL: time.Hour}},
			wantErr: true,
		},
		{
			name:    "zero ttl",
			cfg:     Config{Storage: StorageConfig{Driver: "memory"}},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestRequestTimeout(t *testing.T) {
	assert.Equal(t, time.Duration(0), AppConfig{}.RequestTimeout())
	assert.Equal(t, 15*time.Second, AppConfig{RequestTimeoutSeconds: 15}.RequestTimeout())
}
