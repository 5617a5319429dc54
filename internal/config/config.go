package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

// Config содержит все конфигурационные параметры приложения
type Config struct {
	Database DatabaseConfig
	App      AppConfig
	Engine   EngineConfig
	Dict     DictConfig
}

type DatabaseConfig struct {
	Host          string
	Port          int
	User          string
	Password      string
	Name          string
	SSLMode       string
	MaxConns      int
	MigrationPath string
}

type AppConfig struct {
	Env            string
	LogLevel       string
	Port           int
	AllowedOrigins []string // "*" - любой источник
}

// EngineConfig содержит настройки внешнего движка анализа текста
type EngineConfig struct {
	BaseURL string // пустой - анализ текста отключен
	Timeout time.Duration
}

// DictConfig содержит настройки словаря, пресетов и кеша разбора
type DictConfig struct {
	PresetFile    string
	KanaCacheSize int
	StatsInterval time.Duration
}

// Load загружает конфигурацию из переменных окружения и .env
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}

	// Database
	cfg.Database.Host = getEnvDefault("DB_HOST", "localhost")
	cfg.Database.Port = getEnvIntDefault("DB_PORT", 5432)
	cfg.Database.User = os.Getenv("DB_USER")
	cfg.Database.Password = os.Getenv("DB_PASSWORD")
	cfg.Database.Name = os.Getenv("DB_NAME")
	cfg.Database.SSLMode = getEnvDefault("DB_SSL_MODE", "disable")
	cfg.Database.MaxConns = getEnvIntDefault("DB_MAX_CONNS", 10)
	cfg.Database.MigrationPath = getEnvDefault("MIGRATION_PATH", "scripts/migrations")

	// Engine
	cfg.Engine.BaseURL = os.Getenv("ENGINE_BASE_URL")
	cfg.Engine.Timeout = getEnvDurationDefault("ENGINE_TIMEOUT", 30*time.Second)

	// Dict
	cfg.Dict.PresetFile = getEnvDefault("PRESET_FILE", "presets.yaml")
	cfg.Dict.KanaCacheSize = getEnvIntDefault("KANA_CACHE_SIZE", 1024)
	cfg.Dict.StatsInterval = getEnvDurationDefault("DICT_STATS_INTERVAL", time.Minute)

	// App
	cfg.App.Env = getEnvDefault("APP_ENV", "development")
	cfg.App.LogLevel = getEnvDefault("LOG_LEVEL", "info")
	cfg.App.Port = getEnvIntDefault("APP_PORT", 50021)
	cfg.App.AllowedOrigins = getEnvSliceDefault("CORS_ALLOW_ORIGINS", []string{"http://localhost", "http://127.0.0.1"})

	if err := validateConfig(cfg); err != nil {
		return nil, fmt.Errorf("ошибка валидации конфигурации: %w", err)
	}

	return cfg, nil
}

func getEnvDefault(key, def string) string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	return v
}

func getEnvIntDefault(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return i
}

func getEnvSliceDefault(key string, def []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return def
	}
	return out
}

func getEnvDurationDefault(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return def
	}
	return d
}

// validateConfig проверяет корректность конфигурации
func validateConfig(config *Config) error {
	if config.Database.Host == "" {
		return fmt.Errorf("DB_HOST не установлен")
	}
	if config.Database.User == "" {
		return fmt.Errorf("DB_USER не установлен")
	}
	if config.Database.Password == "" {
		return fmt.Errorf("DB_PASSWORD не установлен")
	}
	if config.Database.Name == "" {
		return fmt.Errorf("DB_NAME не установлен")
	}
	if config.Database.MaxConns <= 0 {
		return fmt.Errorf("DB_MAX_CONNS должен быть больше нуля")
	}
	if config.Dict.PresetFile == "" {
		return fmt.Errorf("PRESET_FILE не установлен")
	}
	if config.Dict.KanaCacheSize <= 0 {
		return fmt.Errorf("KANA_CACHE_SIZE должен быть больше нуля")
	}
	if config.Dict.StatsInterval <= 0 {
		return fmt.Errorf("DICT_STATS_INTERVAL должен быть больше нуля")
	}
	for _, origin := range config.App.AllowedOrigins {
		if origin != "*" && !strings.HasPrefix(origin, "http://") && !strings.HasPrefix(origin, "https://") {
			return fmt.Errorf("CORS_ALLOW_ORIGINS содержит некорректный источник: %s", origin)
		}
	}
	if config.Engine.BaseURL != "" && config.Engine.Timeout <= 0 {
		return fmt.Errorf("ENGINE_TIMEOUT должен быть больше нуля")
	}

	return nil
}

// GetDSN возвращает строку подключения к базе данных
func (c *DatabaseConfig) GetDSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode)
}

// IsDevelopment проверяет, запущено ли приложение в режиме разработки
func (c *AppConfig) IsDevelopment() bool {
	return c.Env == "development"
}

// IsProduction проверяет, запущено ли приложение в продакшн режиме
func (c *AppConfig) IsProduction() bool {
	return c.Env == "production"
}

// GetLogLevel возвращает уровень логирования в формате zap
func (c *AppConfig) GetLogLevel() zap.AtomicLevel {
	switch c.LogLevel {
	case "debug":
		return zap.NewAtomicLevelAt(zap.DebugLevel)
	case "info":
		return zap.NewAtomicLevelAt(zap.InfoLevel)
	case "warn":
		return zap.NewAtomicLevelAt(zap.WarnLevel)
	case "error":
		return zap.NewAtomicLevelAt(zap.ErrorLevel)
	default:
		return zap.NewAtomicLevelAt(zap.InfoLevel)
	}
}
