package tts

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"yomi-engine/pkg/models"
)

// maxErrorBody сколько байт тела ошибки попадает в сообщение
const maxErrorBody = 512

// EngineClient получает акцентные фразы от внешнего движка по HTTP
type EngineClient struct {
	logger  *zap.Logger
	baseURL string
	client  *http.Client
}

// NewEngineClient создает клиент движка анализа текста
func NewEngineClient(logger *zap.Logger, baseURL string, timeout time.Duration) *EngineClient {
	return &EngineClient{
		logger:  logger,
		baseURL: strings.TrimRight(baseURL, "/"),
		client: &http.Client{
			Timeout: timeout,
		},
	}
}

// AnalyzeText отправляет текст движку и разбирает ответ
func (c *EngineClient) AnalyzeText(ctx context.Context, text string, speaker int) ([]models.AccentPhrase, error) {
	query := url.Values{}
	query.Set("text", text)
	query.Set("speaker", strconv.Itoa(speaker))
	endpoint := c.baseURL + "/accent_phrases?" + query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("ошибка создания запроса: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("ошибка выполнения запроса к движку: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, fmt.Errorf("неожиданный статус от движка: %d, тело: %s", resp.StatusCode, body)
	}

	var phrases []models.AccentPhrase
	if err := json.NewDecoder(resp.Body).Decode(&phrases); err != nil {
		return nil, fmt.Errorf("ошибка разбора ответа движка: %w", err)
	}

	c.logger.Debug("текст проанализирован движком",
		zap.Int("text_length", len([]rune(text))),
		zap.Int("speaker", speaker),
		zap.Int("phrases", len(phrases)),
		zap.Duration("elapsed", time.Since(start)))

	return phrases, nil
}
