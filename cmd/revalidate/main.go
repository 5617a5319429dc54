package main

import (
	"context"
	"flag"
	"log"

	"go.uber.org/zap"

	"yomi-engine/internal/config"
	"yomi-engine/internal/migrations"
	"yomi-engine/internal/store"
	"yomi-engine/internal/userdict"
)

func main() {
	var (
		dryRun = flag.Bool("dry-run", false, "Показать устаревшие слова без перезаписи")
		status = flag.Bool("status", false, "Вывести статус миграций и выйти")
	)
	flag.Parse()

	// Инициализация логгера
	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatal("Ошибка инициализации логгера:", err)
	}
	defer logger.Sync()

	// Загрузка конфигурации
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Ошибка загрузки конфигурации", zap.Error(err))
	}

	if *status {
		if err := migrations.GetMigrationStatus(cfg, logger); err != nil {
			logger.Fatal("Ошибка получения статуса миграций", zap.Error(err))
		}
		return
	}

	// Подключение к базе данных
	store, err := store.NewStore(cfg, logger)
	if err != nil {
		logger.Fatal("Ошибка подключения к базе данных", zap.Error(err))
	}
	defer store.Close()

	service := userdict.NewService(store.UserDict(), logger)

	report, err := service.Revalidate(context.Background(), !*dryRun)
	if err != nil {
		logger.Fatal("Ошибка проверки словаря", zap.Error(err))
	}

	for _, id := range report.Stale {
		logger.Info("Устаревшие вычисляемые поля", zap.String("word_uuid", id.String()), zap.Bool("dry_run", *dryRun))
	}
	for _, invalid := range report.Invalid {
		logger.Warn("Слово не проходит проверку",
			zap.String("word_uuid", invalid.ID.String()),
			zap.String("surface", invalid.Surface),
			zap.Error(invalid.Err))
	}

	logger.Info("Проверка словаря завершена",
		zap.Int("checked", report.Checked),
		zap.Int("stale", len(report.Stale)),
		zap.Int("refreshed", report.Refreshed),
		zap.Int("invalid", len(report.Invalid)))
}
