// Package scheduler периодически запускает фоновые задачи обслуживания словаря.
package scheduler

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
)

// Job периодическая задача
type Job interface {
	Name() string
	Run(ctx context.Context) error
}

// Scheduler запускает задачи по тикеру, первый проход сразу после старта
type Scheduler struct {
	logger *zap.Logger
	jobs   []Job
}

// NewScheduler создает планировщик
func NewScheduler(logger *zap.Logger) *Scheduler {
	return &Scheduler{logger: logger}
}

// AddJob регистрирует задачу. Вызывать до Start.
func (s *Scheduler) AddJob(job Job) {
	s.jobs = append(s.jobs, job)
}

// Start блокируется до отмены ctx
func (s *Scheduler) Start(ctx context.Context, interval time.Duration) {
	s.logger.Info("планировщик запущен",
		zap.Duration("interval", interval),
		zap.Int("jobs_count", len(s.jobs)))

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		s.RunOnce(ctx)

		select {
		case <-ctx.Done():
			s.logger.Info("планировщик остановлен")
			return
		case <-ticker.C:
		}
	}
}

// RunOnce выполняет все задачи по порядку. Сбой одной задачи не мешает остальным.
func (s *Scheduler) RunOnce(ctx context.Context) {
	for _, job := range s.jobs {
		if ctx.Err() != nil {
			return
		}
		s.runJob(ctx, job)
	}
}

// runJob выполняет задачу, превращая панику в ошибку
func (s *Scheduler) runJob(ctx context.Context, job Job) {
	log := s.logger.With(zap.String("job", job.Name()))
	start := time.Now()

	err := func() (err error) {
		defer func() {
			if r := recover(); r != nil {
				err = fmt.Errorf("паника в задаче: %v", r)
			}
		}()
		return job.Run(ctx)
	}()

	if err != nil {
		log.Error("задача завершилась ошибкой", zap.Error(err), zap.Duration("duration", time.Since(start)))
		return
	}
	log.Debug("задача выполнена", zap.Duration("duration", time.Since(start)))
}
