package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"yomi-engine/internal/api"
	"yomi-engine/internal/config"
	"yomi-engine/internal/metrics"
	"yomi-engine/internal/migrations"
	"yomi-engine/internal/preset"
	"yomi-engine/internal/scheduler"
	"yomi-engine/internal/store"
	"yomi-engine/internal/tts"
	"yomi-engine/internal/userdict"
)

func main() {
	// Инициализация логгера
	logger, err := initLogger()
	if err != nil {
		fmt.Printf("Ошибка инициализации логгера: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("запуск движка Yomi")

	// Загрузка конфигурации
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("ошибка загрузки конфигурации", zap.Error(err))
	}
	logger = logger.WithOptions(zap.IncreaseLevel(cfg.App.GetLogLevel()))

	// Инициализация базы данных
	store, err := store.NewStore(cfg, logger)
	if err != nil {
		logger.Fatal("ошибка инициализации базы данных", zap.Error(err))
	}
	defer store.Close()

	// Применение миграций
	if err := migrations.RunMigrations(cfg, logger); err != nil {
		logger.Fatal("ошибка применения миграций", zap.Error(err))
	}

	// Анализ обычного текста
	var analyzer tts.TextAnalyzer = tts.Disabled{}
	if cfg.Engine.BaseURL != "" {
		analyzer = tts.NewEngineClient(logger, cfg.Engine.BaseURL, cfg.Engine.Timeout)
		logger.Info("анализатор текста подключен", zap.String("base_url", cfg.Engine.BaseURL))
	} else {
		logger.Info("анализатор текста отключен, доступна только нотация AquesTalk")
	}

	// Инициализация сервисов
	dictService := userdict.NewService(store.UserDict(), logger)
	presetManager := preset.NewManager(cfg.Dict.PresetFile, logger)

	// Инициализация метрик
	metricsSystem := metrics.New(logger)

	if cfg.App.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	server, err := api.NewServer(api.Deps{
		Dict:           dictService,
		Presets:        presetManager,
		Analyzer:       analyzer,
		Metrics:        metricsSystem,
		Logger:         logger,
		AllowedOrigins: cfg.App.AllowedOrigins,
		KanaCacheSize:  cfg.Dict.KanaCacheSize,
	})
	if err != nil {
		logger.Fatal("ошибка создания HTTP сервера", zap.Error(err))
	}

	// Инициализация планировщика задач
	taskScheduler := scheduler.NewScheduler(logger)
	taskScheduler.AddJob(scheduler.NewDictStatsJob(dictService, metricsSystem, logger))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Обработка сигналов для graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go taskScheduler.Start(ctx, cfg.Dict.StatsInterval)

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- server.Start(fmt.Sprintf(":%d", cfg.App.Port))
	}()

	logger.Info("приложение запущено и готово к работе",
		zap.String("address", fmt.Sprintf("http://localhost:%d", cfg.App.Port)),
	)

	// Ожидание сигнала завершения
	select {
	case <-sigChan:
		logger.Info("получен сигнал завершения, начинаем graceful shutdown")
	case err := <-serverErr:
		if err != nil {
			logger.Error("HTTP сервер остановился с ошибкой", zap.Error(err))
		}
	}
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("ошибка при остановке HTTP сервера", zap.Error(err))
	}

	logger.Info("приложение завершено")
}

// initLogger инициализирует логгер
func initLogger() (*zap.Logger, error) {
	config := zap.NewDevelopmentConfig()
	config.OutputPaths = []string{"stdout", "logs/app.log"}
	config.ErrorOutputPaths = []string{"stderr", "logs/error.log"}

	// Создаем директорию для логов если её нет
	if err := os.MkdirAll("logs", 0755); err != nil {
		return nil, fmt.Errorf("ошибка создания директории логов: %w", err)
	}

	return config.Build()
}
