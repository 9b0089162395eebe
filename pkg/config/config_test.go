package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/fincas-api/pkg/config"
)

func TestLoad_ValoresPorDefecto(t *testing.T) {
	t.Setenv("APP_ENV", "")
	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.HTTP.Port)
	assert.Equal(t, "0.0.0.0:8080", cfg.HTTP.Addr())
	assert.Equal(t, "https://ovc.catastro.meh.es", cfg.Catastro.BaseURL)
	assert.Equal(t, 10*time.Second, cfg.Catastro.Timeout())
	assert.False(t, cfg.DB.Enabled())
}

func TestLoad_VariablesDeEntorno(t *testing.T) {
	t.Setenv("APP_ENV", "staging")
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("DB_HOST", "db.interno")
	t.Setenv("DB_PASSWORD", "p@ss/word")
	t.Setenv("CATASTRO_TIMEOUT_SECONDS", "3")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "staging", cfg.App.Env)
	assert.Equal(t, "debug", cfg.App.LogLevel)
	assert.Equal(t, 9090, cfg.HTTP.Port)
	assert.Equal(t, 3*time.Second, cfg.Catastro.Timeout())
	assert.True(t, cfg.DB.Enabled())
	assert.Contains(t, cfg.DB.ConnectionString(), "p%40ss%2Fword@db.interno:5432/fincas")
}

func TestLoad_ProduccionExigeSecretoJWT(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("JWT_SECRET", "")
	_, err := config.Load()
	assert.Error(t, err)
}

func TestDBConfig_DatabaseURLTienePrioridad(t *testing.T) {
	c := config.DBConfig{DatabaseURL: "postgres://u:p@h:1/db", Host: "otro"}
	assert.Equal(t, "postgres://u:p@h:1/db", c.ConnectionString())
}
