package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"yomi-engine/internal/kana"
	"yomi-engine/pkg/models"
)

// HandleAccentPhrases возвращает фразы для текста или нотации AquesTalk
func (s *Server) HandleAccentPhrases(c *gin.Context) {
	text, speaker, isKana, ok := s.synthesisParams(c)
	if !ok {
		return
	}

	phrases, err := s.accentPhrases(c.Request.Context(), text, speaker, isKana)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, phrases)
}

// HandleAudioQuery возвращает запрос на синтез с параметрами по умолчанию
func (s *Server) HandleAudioQuery(c *gin.Context) {
	text, speaker, isKana, ok := s.synthesisParams(c)
	if !ok {
		return
	}

	phrases, err := s.accentPhrases(c.Request.Context(), text, speaker, isKana)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.NewAudioQuery(phrases, kana.CreateKana(phrases)))
}

// HandleAudioQueryFromPreset возвращает запрос на синтез с параметрами пресета
func (s *Server) HandleAudioQueryFromPreset(c *gin.Context) {
	text := c.Query("text")
	if text == "" {
		badRequest(c, "text は必須です")
		return
	}
	presetID, err := strconv.Atoi(c.Query("preset_id"))
	if err != nil {
		badRequest(c, "preset_id は整数でなくてはいけません")
		return
	}
	isKana, err := queryBool(c, "is_kana")
	if err != nil {
		badRequest(c, err.Error())
		return
	}

	p, err := s.presets.Get(presetID)
	if err != nil {
		s.respondError(c, err)
		return
	}

	phrases, err := s.accentPhrases(c.Request.Context(), text, p.StyleID, isKana)
	if err != nil {
		s.respondError(c, err)
		return
	}

	query := models.NewAudioQuery(phrases, kana.CreateKana(phrases))
	query.ApplyPreset(p)
	c.JSON(http.StatusOK, query)
}

// HandleSingerInfo пение не поддерживается
func (s *Server) HandleSingerInfo(c *gin.Context) {
	c.JSON(http.StatusNotImplemented, errorResponse{Detail: singingNotSupportMessage})
}

// synthesisParams читает text, speaker и is_kana, при ошибке отвечает сам
func (s *Server) synthesisParams(c *gin.Context) (string, int, bool, bool) {
	text := c.Query("text")
	if text == "" {
		badRequest(c, "text は必須です")
		return "", 0, false, false
	}
	speaker, err := strconv.Atoi(c.Query("speaker"))
	if err != nil {
		badRequest(c, "speaker は整数でなくてはいけません")
		return "", 0, false, false
	}
	isKana, err := queryBool(c, "is_kana")
	if err != nil {
		badRequest(c, err.Error())
		return "", 0, false, false
	}
	return text, speaker, isKana, true
}

// accentPhrases разбирает нотацию или отдает текст анализатору
func (s *Server) accentPhrases(ctx context.Context, text string, speaker int, isKana bool) ([]models.AccentPhrase, error) {
	if isKana {
		return s.parseKana(text)
	}
	return s.analyzer.AnalyzeText(ctx, text, speaker)
}

// parseKana разбирает нотацию через LRU-кеш
func (s *Server) parseKana(text string) ([]models.AccentPhrase, error) {
	if phrases, ok := s.cache.Get(text); ok {
		s.metrics.RecordCacheLookup(true)
		return phrases, nil
	}
	s.metrics.RecordCacheLookup(false)

	phrases, err := kana.ParseKana(text)
	if err != nil {
		var parseErr *kana.ParseError
		if errors.As(err, &parseErr) {
			s.metrics.RecordKanaParse(string(parseErr.Code))
		}
		return nil, err
	}

	s.metrics.RecordKanaParse("ok")
	s.cache.Add(text, phrases)
	return phrases, nil
}

// queryBool читает необязательный логический параметр, по умолчанию false
func queryBool(c *gin.Context, name string) (bool, error) {
	raw := c.Query(name)
	if raw == "" {
		return false, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("%s は真偽値でなくてはいけません", name)
	}
	return v, nil
}
