package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("ENV", "")
	t.Setenv("STORE_DRIVER", "")
	t.Setenv("SQLITE_PATH", "")
	t.Setenv("MIGRATIONS_DIR", "")
	t.Setenv("LEDGER_APP_ID", "")
	t.Setenv("TELEGRAM_TOKEN", "")
	t.Setenv("DB_DSN", "postgres://localhost/ledger")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, DriverPostgres, cfg.StoreDriver)
	assert.Equal(t, "tutor_ledger.db", cfg.SQLitePath)
	assert.Equal(t, "migrations", cfg.MigrationsDir)
	assert.Equal(t, "default-teaching-app", cfg.AppID)
	assert.Error(t, cfg.RequireTelegram())
}

func TestLoad_SQLiteWithoutDSN(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("STORE_DRIVER", DriverSQLite)
	t.Setenv("DB_DSN", "")
	t.Setenv("LEDGER_OWNER", "tutor@example.com")
	t.Setenv("TELEGRAM_TOKEN", "123:abc")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, DriverSQLite, cfg.StoreDriver)
	assert.Equal(t, "tutor@example.com", cfg.Owner)
	assert.NoError(t, cfg.RequireTelegram())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr string
	}{
		{"postgres needs dsn", Config{StoreDriver: DriverPostgres}, "DB_DSN"},
		{"sqlite needs path", Config{StoreDriver: DriverSQLite}, "SQLITE_PATH"},
		{"unknown driver", Config{StoreDriver: "mysql"}, "unknown STORE_DRIVER"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}

	assert.NoError(t, (&Config{StoreDriver: DriverPostgres, DBDSN: "postgres://x"}).Validate())
}

// chdir changes the working directory for the duration of the test
// (equivalent of testing.T.Chdir, which needs Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
}
