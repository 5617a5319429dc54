package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"yomi-engine/pkg/models"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
)

const userDictTable = "user_dict_words"

// userDictColumns порядок колонок совпадает с wordValues и scanWord
var userDictColumns = []string{
	"id", "surface", "priority",
	"part_of_speech", "part_of_speech_detail_1", "part_of_speech_detail_2", "part_of_speech_detail_3",
	"inflectional_type", "inflectional_form",
	"stem", "yomi", "pronunciation", "accent_type", "mora_count",
	"accent_associative_rule", "updated_at",
}

// Querier часть pgxpool.Pool, которой пользуются репозитории
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Begin(ctx context.Context) (pgx.Tx, error)
}

// UserDictRepository интерфейс для работы с пользовательским словарем
type UserDictRepository interface {
	List(ctx context.Context) (map[uuid.UUID]models.UserDictWord, error)
	Get(ctx context.Context, id uuid.UUID) (*models.UserDictWord, error)
	Create(ctx context.Context, id uuid.UUID, word *models.UserDictWord) error
	Update(ctx context.Context, id uuid.UUID, word *models.UserDictWord) error
	Delete(ctx context.Context, id uuid.UUID) error
	Import(ctx context.Context, words map[uuid.UUID]models.UserDictWord, override bool) error
	Count(ctx context.Context) (int, error)
}

// userDictRepository реализует UserDictRepository
type userDictRepository struct {
	db     Querier
	logger *zap.Logger
}

// NewUserDictRepository создает новый репозиторий словаря
func NewUserDictRepository(db Querier, logger *zap.Logger) UserDictRepository {
	return &userDictRepository{
		db:     db,
		logger: logger,
	}
}

// List возвращает все слова словаря
func (r *userDictRepository) List(ctx context.Context) (map[uuid.UUID]models.UserDictWord, error) {
	query, args, err := selectWordsQuery().ToSql()
	if err != nil {
		return nil, fmt.Errorf("ошибка построения запроса: %w", err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения слов словаря: %w", err)
	}
	defer rows.Close()

	words := make(map[uuid.UUID]models.UserDictWord)
	for rows.Next() {
		id, word, err := scanWord(rows)
		if err != nil {
			return nil, fmt.Errorf("ошибка чтения слова: %w", err)
		}
		words[id] = *word
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ошибка чтения слов словаря: %w", err)
	}

	return words, nil
}

// Get возвращает слово по идентификатору
func (r *userDictRepository) Get(ctx context.Context, id uuid.UUID) (*models.UserDictWord, error) {
	query, args, err := selectWordsQuery().Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("ошибка построения запроса: %w", err)
	}

	_, word, err := scanWord(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		return nil, mapError(err, id)
	}
	return word, nil
}

// Create сохраняет новое слово
func (r *userDictRepository) Create(ctx context.Context, id uuid.UUID, word *models.UserDictWord) error {
	query, args, err := insertWordQuery(id, word, time.Now()).ToSql()
	if err != nil {
		return fmt.Errorf("ошибка построения запроса: %w", err)
	}

	if _, err := r.db.Exec(ctx, query, args...); err != nil {
		return mapError(err, id)
	}

	r.logger.Debug("слово сохранено", zap.String("word_uuid", id.String()))
	return nil
}

// Update заменяет слово целиком
func (r *userDictRepository) Update(ctx context.Context, id uuid.UUID, word *models.UserDictWord) error {
	query, args, err := updateWordQuery(id, word, time.Now()).ToSql()
	if err != nil {
		return fmt.Errorf("ошибка построения запроса: %w", err)
	}

	result, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return mapError(err, id)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("слово %s: %w", id, ErrWordNotFound)
	}
	return nil
}

// Delete удаляет слово
func (r *userDictRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query, args, err := psql.Delete(userDictTable).Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("ошибка построения запроса: %w", err)
	}

	result, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return mapError(err, id)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("слово %s: %w", id, ErrWordNotFound)
	}
	return nil
}

// Import сохраняет набор слов в одной транзакции.
// При override существующие слова заменяются, иначе пропускаются.
func (r *userDictRepository) Import(ctx context.Context, words map[uuid.UUID]models.UserDictWord, override bool) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("ошибка начала транзакции: %w", err)
	}

	if err := importWords(ctx, tx, words, override); err != nil {
		_ = tx.Rollback(ctx)
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("ошибка фиксации транзакции: %w", err)
	}

	r.logger.Info("слова импортированы",
		zap.Int("words_count", len(words)),
		zap.Bool("override", override))
	return nil
}

func importWords(ctx context.Context, tx pgx.Tx, words map[uuid.UUID]models.UserDictWord, override bool) error {
	now := time.Now()
	for id, word := range words {
		query, args, err := importWordQuery(id, &word, now, override).ToSql()
		if err != nil {
			return fmt.Errorf("ошибка построения запроса: %w", err)
		}
		if _, err := tx.Exec(ctx, query, args...); err != nil {
			return mapError(err, id)
		}
	}
	return nil
}

// Count возвращает количество слов
func (r *userDictRepository) Count(ctx context.Context) (int, error) {
	query, args, err := psql.Select("COUNT(*)").From(userDictTable).ToSql()
	if err != nil {
		return 0, fmt.Errorf("ошибка построения запроса: %w", err)
	}

	var count int
	if err := r.db.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("ошибка подсчета слов: %w", err)
	}
	return count, nil
}

func selectWordsQuery() squirrel.SelectBuilder {
	return psql.Select(userDictColumns[:len(userDictColumns)-1]...).
		From(userDictTable).
		OrderBy("created_at ASC", "id ASC")
}

func insertWordQuery(id uuid.UUID, word *models.UserDictWord, now time.Time) squirrel.InsertBuilder {
	return psql.Insert(userDictTable).
		Columns(userDictColumns...).
		Values(wordValues(id, word, now)...)
}

func updateWordQuery(id uuid.UUID, word *models.UserDictWord, now time.Time) squirrel.UpdateBuilder {
	values := wordValues(id, word, now)
	q := psql.Update(userDictTable)
	for i, col := range userDictColumns[1:] {
		q = q.Set(col, values[i+1])
	}
	return q.Where(squirrel.Eq{"id": id})
}

func importWordQuery(id uuid.UUID, word *models.UserDictWord, now time.Time, override bool) squirrel.InsertBuilder {
	q := insertWordQuery(id, word, now)
	if !override {
		return q.Suffix("ON CONFLICT (id) DO NOTHING")
	}

	suffix := "ON CONFLICT (id) DO UPDATE SET "
	for i, col := range userDictColumns[1:] {
		if i > 0 {
			suffix += ", "
		}
		suffix += col + " = EXCLUDED." + col
	}
	return q.Suffix(suffix)
}

func wordValues(id uuid.UUID, w *models.UserDictWord, now time.Time) []interface{} {
	return []interface{}{
		id, w.Surface, w.Priority,
		w.PartOfSpeech, w.PartOfSpeechDetail1, w.PartOfSpeechDetail2, w.PartOfSpeechDetail3,
		w.InflectionalType, w.InflectionalForm,
		w.Stem, w.Yomi, w.Pronunciation, toInt32s(w.AccentType), toInt32s(w.MoraCount),
		w.AccentAssociativeRule, now,
	}
}

func scanWord(row pgx.Row) (uuid.UUID, *models.UserDictWord, error) {
	var (
		id                    uuid.UUID
		w                     models.UserDictWord
		accentType, moraCount []int32
	)
	err := row.Scan(
		&id, &w.Surface, &w.Priority,
		&w.PartOfSpeech, &w.PartOfSpeechDetail1, &w.PartOfSpeechDetail2, &w.PartOfSpeechDetail3,
		&w.InflectionalType, &w.InflectionalForm,
		&w.Stem, &w.Yomi, &w.Pronunciation, &accentType, &moraCount,
		&w.AccentAssociativeRule,
	)
	if err != nil {
		return uuid.Nil, nil, err
	}
	w.AccentType = fromInt32s(accentType)
	w.MoraCount = fromInt32s(moraCount)
	return id, &w, nil
}

func toInt32s(in []int) []int32 {
	out := make([]int32, len(in))
	for i, v := range in {
		out[i] = int32(v)
	}
	return out
}

func fromInt32s(in []int32) []int {
	out := make([]int, len(in))
	for i, v := range in {
		out[i] = int(v)
	}
	return out
}

// mapError переводит ошибки драйвера в ошибки репозитория
func mapError(err error, id uuid.UUID) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("слово %s: %w", id, ErrWordNotFound)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
		return fmt.Errorf("слово %s уже существует: %w", id, err)
	}

	return fmt.Errorf("слово %s: %w", id, err)
}
