// Package preset хранит пресеты параметров синтеза в YAML-файле.
package preset

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"time"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"yomi-engine/pkg/models"
)

// InputError ошибка из-за некорректного запроса клиента
type InputError struct {
	Message string
}

func (e *InputError) Error() string { return e.Message }

// InternalError ошибка чтения или записи файла пресетов
type InternalError struct {
	Message string
	Err     error
}

func (e *InternalError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return e.Message + ": " + e.Err.Error()
}

func (e *InternalError) Unwrap() error { return e.Err }

// Manager управляет пресетами, доступ сериализуется мьютексом
type Manager struct {
	path    string
	logger  *zap.Logger
	mu      sync.Mutex
	presets []models.Preset
	modTime time.Time
	loaded  bool

	writeFile func(path string, data []byte) error
}

// NewManager создает менеджер пресетов для файла path
func NewManager(path string, logger *zap.Logger) *Manager {
	return &Manager{
		path:      path,
		logger:    logger,
		writeFile: writeFileAtomic,
	}
}

// LoadPresets возвращает копию списка пресетов
func (m *Manager) LoadPresets() ([]models.Preset, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.load(); err != nil {
		return nil, err
	}
	return slices.Clone(m.presets), nil
}

// AddPreset добавляет пресет. Если id занят, назначается max(id)+1.
func (m *Manager) AddPreset(p models.Preset) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.load(); err != nil {
		return 0, err
	}

	if m.indexOf(p.ID) >= 0 {
		maxID := 0
		for _, existing := range m.presets {
			maxID = max(maxID, existing.ID)
		}
		p.ID = maxID + 1
	}

	previous := m.presets
	m.presets = append(slices.Clone(previous), p)
	if err := m.save(); err != nil {
		m.presets = previous
		return 0, err
	}

	m.logger.Info("пресет добавлен", zap.Int("preset_id", p.ID), zap.String("name", p.Name))
	return p.ID, nil
}

// UpdatePreset заменяет пресет с тем же id
func (m *Manager) UpdatePreset(p models.Preset) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.load(); err != nil {
		return 0, err
	}

	i := m.indexOf(p.ID)
	if i < 0 {
		return 0, &InputError{Message: "更新先のプリセットが存在しません"}
	}

	previous := m.presets
	m.presets = slices.Clone(previous)
	m.presets[i] = p
	if err := m.save(); err != nil {
		m.presets = previous
		return 0, err
	}

	m.logger.Info("пресет обновлен", zap.Int("preset_id", p.ID))
	return p.ID, nil
}

// DeletePreset удаляет пресет по id
func (m *Manager) DeletePreset(id int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.load(); err != nil {
		return err
	}

	i := m.indexOf(id)
	if i < 0 {
		return &InputError{Message: "削除対象のプリセットが存在しません"}
	}

	previous := m.presets
	m.presets = slices.Delete(slices.Clone(previous), i, i+1)
	if err := m.save(); err != nil {
		m.presets = previous
		return err
	}

	m.logger.Info("пресет удален", zap.Int("preset_id", id))
	return nil
}

// Get возвращает пресет по id
func (m *Manager) Get(id int) (models.Preset, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.load(); err != nil {
		return models.Preset{}, err
	}

	i := m.indexOf(id)
	if i < 0 {
		return models.Preset{}, &InputError{Message: "該当するプリセットIDが見つかりません"}
	}
	return m.presets[i], nil
}

func (m *Manager) indexOf(id int) int {
	return slices.IndexFunc(m.presets, func(p models.Preset) bool { return p.ID == id })
}

// load перечитывает файл, если он изменился с прошлого чтения
func (m *Manager) load() error {
	info, err := os.Stat(m.path)
	if errors.Is(err, os.ErrNotExist) {
		if err := m.writeFile(m.path, []byte("[]\n")); err != nil {
			return &InternalError{Message: "プリセットの設定ファイルを作成できませんでした", Err: err}
		}
		m.logger.Info("создан пустой файл пресетов", zap.String("path", m.path))
		info, err = os.Stat(m.path)
	}
	if err != nil {
		return &InternalError{Message: "プリセットの設定ファイルを読み込めませんでした", Err: err}
	}

	if m.loaded && info.ModTime().Equal(m.modTime) {
		return nil
	}

	data, err := os.ReadFile(m.path)
	if err != nil {
		return &InternalError{Message: "プリセットの設定ファイルを読み込めませんでした", Err: err}
	}

	var presets []models.Preset
	if err := yaml.Unmarshal(data, &presets); err != nil {
		return &InternalError{Message: "プリセットの設定ファイルにミスがあります", Err: err}
	}

	seen := make(map[int]struct{}, len(presets))
	for _, p := range presets {
		if _, dup := seen[p.ID]; dup {
			return &InternalError{Message: "プリセットのidに重複があります"}
		}
		seen[p.ID] = struct{}{}
	}

	m.presets = presets
	m.modTime = info.ModTime()
	m.loaded = true
	return nil
}

// save записывает текущий список в файл
func (m *Manager) save() error {
	presets := m.presets
	if presets == nil {
		presets = []models.Preset{}
	}

	data, err := yaml.Marshal(presets)
	if err != nil {
		return &InternalError{Message: "プリセットの設定ファイルに書き込み失敗しました", Err: err}
	}
	if err := m.writeFile(m.path, data); err != nil {
		m.logger.Error("ошибка записи файла пресетов", zap.String("path", m.path), zap.Error(err))
		return &InternalError{Message: "プリセットの設定ファイルに書き込み失敗しました", Err: err}
	}

	if info, err := os.Stat(m.path); err == nil {
		m.modTime = info.ModTime()
	}
	return nil
}

// writeFileAtomic пишет во временный файл и переименовывает его
func writeFileAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("ошибка создания временного файла: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("ошибка записи временного файла: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("ошибка закрытия временного файла: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("ошибка замены файла пресетов: %w", err)
	}
	return nil
}
