package userdict

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"yomi-engine/internal/store"
	"yomi-engine/pkg/models"
)

// Service сервис пользовательского словаря
type Service struct {
	repo   store.UserDictRepository
	logger *zap.Logger
	newID  func() uuid.UUID
}

// NewService создает новый сервис словаря
func NewService(repo store.UserDictRepository, logger *zap.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
		newID:  uuid.New,
	}
}

// ListWords возвращает все слова словаря
func (s *Service) ListWords(ctx context.Context) (map[uuid.UUID]models.UserDictWord, error) {
	words, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения слов словаря: %w", err)
	}
	return words, nil
}

// CountWords возвращает количество слов в словаре
func (s *Service) CountWords(ctx context.Context) (int, error) {
	count, err := s.repo.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("ошибка подсчета слов словаря: %w", err)
	}
	return count, nil
}

// AddWord проверяет и сохраняет новое слово, возвращает его идентификатор
func (s *Service) AddWord(ctx context.Context, req AddWordRequest) (uuid.UUID, error) {
	word, err := NewWordFromType(req)
	if err != nil {
		return uuid.Nil, err
	}

	id := s.newID()
	if err := s.repo.Create(ctx, id, word); err != nil {
		return uuid.Nil, fmt.Errorf("ошибка сохранения слова: %w", err)
	}

	s.logger.Info("слово добавлено в словарь",
		zap.String("word_uuid", id.String()),
		zap.String("surface", word.Surface),
		zap.Ints("mora_count", word.MoraCount))

	return id, nil
}

// UpdateWord заменяет существующее слово.
// Несуществующий id дает ErrWordNotFound, новое слово не создается.
func (s *Service) UpdateWord(ctx context.Context, id uuid.UUID, req AddWordRequest) error {
	word, err := NewWordFromType(req)
	if err != nil {
		return err
	}

	previous, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrWordNotFound) {
			return ErrWordNotFound
		}
		return fmt.Errorf("ошибка получения слова: %w", err)
	}

	if err := s.repo.Update(ctx, id, word); err != nil {
		if errors.Is(err, store.ErrWordNotFound) {
			return ErrWordNotFound
		}
		return fmt.Errorf("ошибка обновления слова: %w", err)
	}

	s.logger.Info("слово обновлено",
		zap.String("word_uuid", id.String()),
		zap.String("previous_surface", previous.Surface),
		zap.String("surface", word.Surface))

	return nil
}

// DeleteWord удаляет слово
func (s *Service) DeleteWord(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, store.ErrWordNotFound) {
			return ErrWordNotFound
		}
		return fmt.Errorf("ошибка удаления слова: %w", err)
	}

	s.logger.Info("слово удалено", zap.String("word_uuid", id.String()))
	return nil
}

// ImportWords проверяет и импортирует набор слов.
// При override существующие слова с теми же идентификаторами заменяются,
// иначе они остаются без изменений. Если хотя бы одно слово не проходит проверку,
// ничего не сохраняется.
func (s *Service) ImportWords(ctx context.Context, words map[uuid.UUID]WordInput, override bool) error {
	ids := make([]uuid.UUID, 0, len(words))
	for id := range words {
		ids = append(ids, id)
	}
	slices.SortFunc(ids, func(a, b uuid.UUID) int { return slices.Compare(a[:], b[:]) })

	var all fieldErrors
	valid := make(map[uuid.UUID]models.UserDictWord, len(words))
	for _, id := range ids {
		word, err := NewWord(words[id])
		if err != nil {
			var verr *ValidationError
			if errors.As(err, &verr) {
				all = append(all, verr.prefixed(id.String()).Errors...)
				continue
			}
			return err
		}
		valid[id] = *word
	}
	if err := all.err(); err != nil {
		return err
	}

	if err := s.repo.Import(ctx, valid, override); err != nil {
		return fmt.Errorf("ошибка импорта словаря: %w", err)
	}

	s.logger.Info("словарь импортирован",
		zap.Int("words_count", len(valid)),
		zap.Bool("override", override))

	return nil
}

// InvalidWord сохраненное слово, не прошедшее повторную проверку
type InvalidWord struct {
	ID      uuid.UUID
	Surface string
	Err     error
}

// RevalidateReport результат повторной проверки словаря
type RevalidateReport struct {
	Checked   int
	Stale     []uuid.UUID // слова с устаревшим mora_count или surface
	Refreshed int
	Invalid   []InvalidWord
}

// Revalidate повторно проверяет все сохраненные слова.
// Если refresh, слова с устаревшими вычисляемыми полями перезаписываются.
func (s *Service) Revalidate(ctx context.Context, refresh bool) (*RevalidateReport, error) {
	words, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения слов словаря: %w", err)
	}

	ids := make([]uuid.UUID, 0, len(words))
	for id := range words {
		ids = append(ids, id)
	}
	slices.SortFunc(ids, func(a, b uuid.UUID) int { return slices.Compare(a[:], b[:]) })

	report := &RevalidateReport{Checked: len(words)}
	for _, id := range ids {
		stored := words[id]
		word, err := NewWord(InputFromWord(stored))
		if err != nil {
			s.logger.Warn("слово не прошло проверку",
				zap.String("word_uuid", id.String()),
				zap.String("surface", stored.Surface),
				zap.Error(err))
			report.Invalid = append(report.Invalid, InvalidWord{ID: id, Surface: stored.Surface, Err: err})
			continue
		}

		if word.Surface == stored.Surface && slices.Equal(word.MoraCount, stored.MoraCount) {
			continue
		}
		report.Stale = append(report.Stale, id)

		if !refresh {
			continue
		}
		if err := s.repo.Update(ctx, id, word); err != nil {
			return report, fmt.Errorf("ошибка обновления слова %s: %w", id, err)
		}
		report.Refreshed++
	}

	s.logger.Info("проверка словаря завершена",
		zap.Int("checked", report.Checked),
		zap.Int("stale", len(report.Stale)),
		zap.Int("refreshed", report.Refreshed),
		zap.Int("invalid", len(report.Invalid)))

	return report, nil
}
