package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"yomi-engine/internal/kana"
	"yomi-engine/internal/preset"
	"yomi-engine/internal/tts"
	"yomi-engine/internal/userdict"
)

const (
	internalErrorMessage     = "内部エラーが発生しました"
	wordNotFoundMessage      = "指定された単語が見つかりませんでした"
	analyzerDisabledMessage  = "テキスト解析エンジンが設定されていません"
	singingNotSupportMessage = "歌唱機能はサポートされていません"
)

// errorResponse тело ответа об ошибке
type errorResponse struct {
	Detail interface{} `json:"detail"`
}

// parseKanaDetail описание ошибки разбора нотации для клиента
type parseKanaDetail struct {
	Text      string            `json:"text"`
	ErrorName string            `json:"error_name"`
	ErrorArgs map[string]string `json:"error_args"`
}

// respondError выбирает код ответа по типу ошибки
func (s *Server) respondError(c *gin.Context, err error) {
	var (
		parseErr         *kana.ParseError
		validationErr    *userdict.ValidationError
		presetInputErr   *preset.InputError
		presetInternalEr *preset.InternalError
	)

	switch {
	case errors.As(err, &parseErr):
		status := http.StatusBadRequest
		if parseErr.Internal() {
			status = http.StatusInternalServerError
			s.logger.Error("внутренняя ошибка разбора нотации", zap.Error(err))
		}
		c.JSON(status, errorResponse{Detail: parseKanaDetail{
			Text:      parseErr.Error(),
			ErrorName: "ParseKanaError",
			ErrorArgs: parseErr.Args(),
		}})

	case errors.As(err, &validationErr):
		s.metrics.RecordValidationFailure(metricFields(validationErr.Fields())...)
		c.JSON(http.StatusUnprocessableEntity, errorResponse{Detail: validationErr.Errors})

	case errors.Is(err, userdict.ErrWordNotFound):
		c.JSON(http.StatusUnprocessableEntity, errorResponse{Detail: wordNotFoundMessage})

	case errors.As(err, &presetInputErr):
		c.JSON(http.StatusUnprocessableEntity, errorResponse{Detail: presetInputErr.Message})

	case errors.As(err, &presetInternalEr):
		s.logger.Error("ошибка файла пресетов", zap.Error(err))
		c.JSON(http.StatusInternalServerError, errorResponse{Detail: presetInternalEr.Message})

	case errors.Is(err, tts.ErrAnalyzerNotConfigured):
		c.JSON(http.StatusNotImplemented, errorResponse{Detail: analyzerDisabledMessage})

	default:
		s.logger.Error("ошибка обработки запроса",
			zap.Error(err),
			zap.String("path", c.Request.URL.Path),
			zap.String("request_id", c.GetString(requestIDKey)))
		c.JSON(http.StatusInternalServerError, errorResponse{Detail: internalErrorMessage})
	}
}

// badRequest ответ на некорректные параметры запроса
func badRequest(c *gin.Context, message string) {
	c.JSON(http.StatusUnprocessableEntity, errorResponse{Detail: message})
}

// metricFields убирает из имен полей индексы и идентификаторы слов
func metricFields(fields []string) []string {
	out := make([]string, len(fields))
	for i, f := range fields {
		if dot := strings.LastIndexByte(f, '.'); dot >= 0 {
			f = f[dot+1:]
		}
		if br := strings.IndexByte(f, '['); br >= 0 {
			f = f[:br]
		}
		out[i] = f
	}
	return out
}
