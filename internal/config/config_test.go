package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestLoadConfig(t *testing.T) {
	// Устанавливаем переменные окружения для теста
	t.Setenv("DB_HOST", "localhost")
	t.Setenv("DB_USER", "test_user")
	t.Setenv("DB_PASSWORD", "test_password")
	t.Setenv("DB_NAME", "test_db")
	t.Setenv("ENGINE_TIMEOUT", "5s")

	// Сбрасываем то, что могло прийти из окружения
	for _, key := range []string{"DB_PORT", "DB_SSL_MODE", "DB_MAX_CONNS", "APP_ENV", "LOG_LEVEL", "APP_PORT",
		"ENGINE_BASE_URL", "PRESET_FILE", "KANA_CACHE_SIZE", "DICT_STATS_INTERVAL", "CORS_ALLOW_ORIGINS"} {
		t.Setenv(key, "")
	}

	cfg, err := Load()

	assert.NoError(t, err)
	assert.NotNil(t, cfg)

	assert.Equal(t, "localhost", cfg.Database.Host)
	assert.Equal(t, "test_user", cfg.Database.User)
	assert.Equal(t, "test_password", cfg.Database.Password)
	assert.Equal(t, "test_db", cfg.Database.Name)
	assert.Equal(t, 5*time.Second, cfg.Engine.Timeout)

	// Проверяем значения по умолчанию
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, "disable", cfg.Database.SSLMode)
	assert.Equal(t, 10, cfg.Database.MaxConns)
	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, "info", cfg.App.LogLevel)
	assert.Equal(t, 50021, cfg.App.Port)
	assert.Equal(t, "", cfg.Engine.BaseURL)
	assert.Equal(t, "presets.yaml", cfg.Dict.PresetFile)
	assert.Equal(t, 1024, cfg.Dict.KanaCacheSize)
	assert.Equal(t, time.Minute, cfg.Dict.StatsInterval)
	assert.Equal(t, []string{"http://localhost", "http://127.0.0.1"}, cfg.App.AllowedOrigins)
}

func TestLoadConfig_AllowedOrigins(t *testing.T) {
	t.Setenv("DB_USER", "test_user")
	t.Setenv("DB_PASSWORD", "test_password")
	t.Setenv("DB_NAME", "test_db")

	t.Setenv("CORS_ALLOW_ORIGINS", " https://example.com , http://localhost:3000,")
	cfg, err := Load()
	assert.NoError(t, err)
	assert.Equal(t, []string{"https://example.com", "http://localhost:3000"}, cfg.App.AllowedOrigins)

	t.Setenv("CORS_ALLOW_ORIGINS", "app://.")
	_, err = Load()
	assert.Error(t, err)
}

func TestLoadConfig_InvalidValuesFallBack(t *testing.T) {
	t.Setenv("DB_USER", "test_user")
	t.Setenv("DB_PASSWORD", "test_password")
	t.Setenv("DB_NAME", "test_db")
	t.Setenv("KANA_CACHE_SIZE", "много")
	t.Setenv("DICT_STATS_INTERVAL", "час")

	cfg, err := Load()

	assert.NoError(t, err)
	assert.Equal(t, 1024, cfg.Dict.KanaCacheSize)
	assert.Equal(t, time.Minute, cfg.Dict.StatsInterval)
}

func TestDatabaseDSN(t *testing.T) {
	cfg := &DatabaseConfig{
		Host:     "localhost",
		Port:     5432,
		User:     "test_user",
		Password: "test_password",
		Name:     "test_db",
		SSLMode:  "disable",
	}

	dsn := cfg.GetDSN()
	expected := "host=localhost port=5432 user=test_user password=test_password dbname=test_db sslmode=disable"
	assert.Equal(t, expected, dsn)
}

func TestAppConfigMethods(t *testing.T) {
	cfg := &AppConfig{
		Env:      "development",
		LogLevel: "debug",
	}

	assert.True(t, cfg.IsDevelopment())
	assert.False(t, cfg.IsProduction())
	assert.Equal(t, zap.DebugLevel, cfg.GetLogLevel().Level())

	cfg.Env = "production"
	cfg.LogLevel = "неизвестный"
	assert.False(t, cfg.IsDevelopment())
	assert.True(t, cfg.IsProduction())
	assert.Equal(t, zap.InfoLevel, cfg.GetLogLevel().Level())
}

func TestValidateConfig(t *testing.T) {
	// Тест с пустыми обязательными полями
	cfg := &Config{}
	err := validateConfig(cfg)
	assert.Error(t, err)

	// Тест с корректной конфигурацией
	cfg = &Config{
		Database: DatabaseConfig{
			Host:     "localhost",
			User:     "test_user",
			Password: "test_password",
			Name:     "test_db",
			MaxConns: 5,
		},
		Dict: DictConfig{
			PresetFile:    "presets.yaml",
			KanaCacheSize: 16,
			StatsInterval: time.Minute,
		},
	}
	err = validateConfig(cfg)
	assert.NoError(t, err)

	// Движок без таймаута
	cfg.Engine.BaseURL = "http://localhost:50021"
	err = validateConfig(cfg)
	assert.Error(t, err)
}
