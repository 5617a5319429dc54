package tts

import (
	"context"
	"errors"

	"yomi-engine/pkg/models"
)

// ErrAnalyzerNotConfigured анализ текста не настроен
var ErrAnalyzerNotConfigured = errors.New("анализатор текста не настроен")

// TextAnalyzer превращает обычный текст в акцентные фразы
type TextAnalyzer interface {
	// AnalyzeText возвращает акцентные фразы для текста и голоса speaker
	AnalyzeText(ctx context.Context, text string, speaker int) ([]models.AccentPhrase, error)
}

// Disabled анализатор, который всегда возвращает ErrAnalyzerNotConfigured
type Disabled struct{}

// AnalyzeText всегда возвращает ErrAnalyzerNotConfigured
func (Disabled) AnalyzeText(context.Context, string, int) ([]models.AccentPhrase, error) {
	return nil, ErrAnalyzerNotConfigured
}
