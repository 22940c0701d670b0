package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromViper_Defaults(t *testing.T) {
	cfg, err := fromViper(viper.New())
	require.NoError(t, err)

	assert.Equal(t, DriverMemory, cfg.Store.Driver)
	assert.Equal(t, "0.0.0.0:8080", cfg.HTTP.Addr())
	assert.Equal(t, 30*time.Minute, cfg.Import.PendingTTL)
	assert.Equal(t, 200, cfg.AI.HistoryLimit)
	assert.Nil(t, cfg.Import.IDAliases)
	assert.Equal(t, ProviderAnthropic, cfg.AI.Provider)
	assert.Empty(t, cfg.AI.APIKey())
}

func TestFromViper_Valores(t *testing.T) {
	v := viper.New()
	v.Set("STORE_DRIVER", "SQLite")
	v.Set("HTTP_PORT", "9090")
	v.Set("IMPORT_ID_ALIASES", " sku, código ,,ref ")
	v.Set("IMPORT_PENDING_TTL", "5m")

	cfg, err := fromViper(v)
	require.NoError(t, err)

	assert.Equal(t, DriverSQLite, cfg.Store.Driver)
	assert.Equal(t, 9090, cfg.HTTP.Port)
	assert.Equal(t, []string{"sku", "código", "ref"}, cfg.Import.IDAliases)
	assert.Equal(t, 5*time.Minute, cfg.Import.PendingTTL)
}

func TestFromViper_Invalidos(t *testing.T) {
	v := viper.New()
	v.Set("STORE_DRIVER", "mongo")
	_, err := fromViper(v)
	assert.Error(t, err)

	v = viper.New()
	v.Set("IMPORT_PENDING_TTL", "media hora")
	_, err = fromViper(v)
	assert.Error(t, err)

	v = viper.New()
	v.Set("AI_PROVIDER", "openai")
	_, err = fromViper(v)
	assert.Error(t, err)
}

func TestAIConfig_APIKey(t *testing.T) {
	v := viper.New()
	v.Set("AI_PROVIDER", "Gemini")
	v.Set("AI_GEMINI_API_KEY", "g-key")
	v.Set("AI_ANTHROPIC_API_KEY", "a-key")

	cfg, err := fromViper(v)
	require.NoError(t, err)
	assert.Equal(t, ProviderGemini, cfg.AI.Provider)
	assert.Equal(t, "g-key", cfg.AI.APIKey())
	assert.Equal(t, "gemini-2.5-flash", cfg.AI.GeminiModel)
}

func TestDBConfig_ConnectionString(t *testing.T) {
	c := DBConfig{Host: "db", Port: 5432, User: "app", Password: "p@ss", DBName: "almacen", SSLMode: "disable"}
	assert.Equal(t, "postgres://app:p%40ss@db:5432/almacen?sslmode=disable", c.ConnectionString())

	c.DatabaseURL = "postgres://x"
	assert.Equal(t, "postgres://x", c.ConnectionString())
}
