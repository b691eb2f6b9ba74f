package config_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Convenios-api/pkg/config"
)

func TestLoad_ValoresPorDefecto(t *testing.T) {
	t.Setenv("APP_ENV", "development")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "convenios-api", cfg.App.Name)
	assert.Equal(t, 8080, cfg.HTTP.Port)
	assert.Equal(t, 30, cfg.Finance.ExpirationWindowDays)
	assert.True(t, cfg.Finance.WithholdingRate.Equal(decimal.RequireFromString("2.5")))
	assert.True(t, cfg.Finance.BankFeeRate.Equal(decimal.RequireFromString("0.5")))
}

func TestLoad_TasasDesdeEntornoConComa(t *testing.T) {
	t.Setenv("FINANCE_WITHHOLDING_RATE", "3,5")
	t.Setenv("HTTP_PORT", "9090")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.True(t, cfg.Finance.WithholdingRate.Equal(decimal.RequireFromString("3.5")))
	assert.Equal(t, 9090, cfg.HTTP.Port)
}

func TestLoad_TasaInvalida(t *testing.T) {
	t.Setenv("FINANCE_BANK_FEE_RATE", "abc")

	_, err := config.Load()
	assert.Error(t, err)
}

func TestLoad_ProduccionSinSecretoFalla(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("JWT_SECRET", "")

	_, err := config.Load()
	assert.Error(t, err)
}

func TestDBConfig_ConnectionString(t *testing.T) {
	c := config.DBConfig{Host: "db", Port: 5432, User: "car", Password: "p@ss:word", DBName: "convenios", SSLMode: "disable"}
	assert.Equal(t, "postgres://car:p%40ss%3Aword@db:5432/convenios?sslmode=disable", c.ConnectionString())

	c.DatabaseURL = "postgresql://x@y/z"
	assert.Equal(t, "postgresql://x@y/z", c.ConnectionString())
}
