package scheduler

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

// WordCounter источник количества слов словаря
type WordCounter interface {
	CountWords(ctx context.Context) (int, error)
}

// GaugeSetter приемник значения метрики
type GaugeSetter interface {
	SetDictWords(count int)
}

// DictStatsJob обновляет метрику размера пользовательского словаря
type DictStatsJob struct {
	words  WordCounter
	gauge  GaugeSetter
	logger *zap.Logger
}

// NewDictStatsJob создает задачу обновления статистики словаря
func NewDictStatsJob(words WordCounter, gauge GaugeSetter, logger *zap.Logger) *DictStatsJob {
	return &DictStatsJob{
		words:  words,
		gauge:  gauge,
		logger: logger,
	}
}

// Name возвращает имя задачи
func (j *DictStatsJob) Name() string {
	return "dict_stats"
}

// Run считает слова и обновляет метрику
func (j *DictStatsJob) Run(ctx context.Context) error {
	count, err := j.words.CountWords(ctx)
	if err != nil {
		return fmt.Errorf("ошибка подсчета слов словаря: %w", err)
	}

	j.gauge.SetDictWords(count)
	j.logger.Debug("статистика словаря обновлена", zap.Int("words_count", count))
	return nil
}
