package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var configKeys = []string{
	"APP_ENV", "APP_NAME", "LOG_LEVEL", "STORE_DRIVER",
	"DATABASE_URL", "DB_HOST", "DB_PORT", "DB_USER", "DB_PASSWORD", "DB_NAME", "DB_SSLMODE",
	"JWT_SECRET", "JWT_EXPIRATION_MINUTES", "JWT_ISSUER",
	"AUTH_ADMIN_EMAIL", "AUTH_ADMIN_PASSWORD",
	"HTTP_HOST", "HTTP_PORT", "SWAGGER_FILE",
	"REORDER_MIN_WEEKS", "REORDER_MAX_WEEKS", "REORDER_EXCLUDE_PROMO",
	"REORDER_SERVICE_LEVEL_Z", "REORDER_DEFAULT_LEAD_TIME_WEEKS",
}

// clearEnv deja vacías las variables conocidas; Viper trata vacío como no definido.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range configKeys {
		t.Setenv(k, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, "stock-ledger", cfg.App.Name)
	assert.Equal(t, StoreDriverMemory, cfg.Store.Driver)
	assert.Equal(t, "0.0.0.0:8080", cfg.HTTP.Addr())
	assert.Equal(t, 4, cfg.Reorder.MinWeeks)
	assert.Equal(t, 8, cfg.Reorder.MaxWeeks)
	assert.False(t, cfg.Reorder.ExcludePromoWeeks)
	assert.InDelta(t, 1.65, cfg.Reorder.ServiceLevelZ, 1e-9)
	assert.InDelta(t, 2.0, cfg.Reorder.DefaultLeadTimeWeeks, 1e-9)
	assert.Equal(t, "postgres://postgres:@localhost:5432/stock_ledger?sslmode=disable", cfg.DB.ConnectionString())
}

func TestLoad_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("STORE_DRIVER", "Postgres")
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("REORDER_MIN_WEEKS", "6")
	t.Setenv("REORDER_EXCLUDE_PROMO", "true")
	t.Setenv("REORDER_SERVICE_LEVEL_Z", "2.33")
	t.Setenv("DATABASE_URL", "postgres://u:p@db:5432/ledger")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, StoreDriverPostgres, cfg.Store.Driver)
	assert.Equal(t, 9090, cfg.HTTP.Port)
	assert.Equal(t, 6, cfg.Reorder.MinWeeks)
	assert.True(t, cfg.Reorder.ExcludePromoWeeks)
	assert.InDelta(t, 2.33, cfg.Reorder.ServiceLevelZ, 1e-9)
	assert.Equal(t, "postgres://u:p@db:5432/ledger", cfg.DB.ConnectionString())
}

func TestLoad_ValoresMalformadosTomanDefault(t *testing.T) {
	clearEnv(t)
	t.Setenv("HTTP_PORT", "ocho-mil")
	t.Setenv("REORDER_SERVICE_LEVEL_Z", "alto")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.HTTP.Port)
	assert.InDelta(t, 1.65, cfg.Reorder.ServiceLevelZ, 1e-9)
}

func TestLoad_DriverInvalido(t *testing.T) {
	clearEnv(t)
	t.Setenv("STORE_DRIVER", "redis")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoad_AdminSinPassword(t *testing.T) {
	clearEnv(t)
	t.Setenv("AUTH_ADMIN_EMAIL", "admin@bodega.co")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoad_LeadTimeNegativo(t *testing.T) {
	clearEnv(t)
	t.Setenv("REORDER_DEFAULT_LEAD_TIME_WEEKS", "-1")

	_, err := Load()
	assert.Error(t, err)
}

func TestDSN_EscapaCaracteresEspeciales(t *testing.T) {
	c := DBConfig{Host: "db", Port: 5432, User: "app", Password: "p@ss:w/rd", DBName: "ledger", SSLMode: "require"}
	assert.Equal(t, "postgres://app:p%40ss%3Aw%2Frd@db:5432/ledger?sslmode=require", c.DSN())
}
