package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"yomi-engine/internal/userdict"
	"yomi-engine/pkg/models"
)

const defaultWordPriority = 5

// HandleGetUserDict возвращает словарь целиком
func (s *Server) HandleGetUserDict(c *gin.Context) {
	words, err := s.dict.ListWords(c.Request.Context())
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, words)
}

// HandleAddUserDictWord добавляет слово и возвращает его uuid
func (s *Server) HandleAddUserDictWord(c *gin.Context) {
	req, ok := wordRequest(c)
	if !ok {
		return
	}

	id, err := s.dict.AddWord(c.Request.Context(), req)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, id.String())
}

// HandleRewriteUserDictWord перезаписывает слово
func (s *Server) HandleRewriteUserDictWord(c *gin.Context) {
	id, ok := wordID(c)
	if !ok {
		return
	}
	req, ok := wordRequest(c)
	if !ok {
		return
	}

	if err := s.dict.UpdateWord(c.Request.Context(), id, req); err != nil {
		s.respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// HandleDeleteUserDictWord удаляет слово
func (s *Server) HandleDeleteUserDictWord(c *gin.Context) {
	id, ok := wordID(c)
	if !ok {
		return
	}

	if err := s.dict.DeleteWord(c.Request.Context(), id); err != nil {
		s.respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// HandleImportUserDict импортирует словарь из тела запроса
func (s *Server) HandleImportUserDict(c *gin.Context) {
	override, err := queryBool(c, "override")
	if err != nil {
		badRequest(c, err.Error())
		return
	}

	var words map[uuid.UUID]userdict.WordInput
	if err := c.ShouldBindJSON(&words); err != nil {
		badRequest(c, "辞書データの形式が正しくありません")
		return
	}

	if err := s.dict.ImportWords(c.Request.Context(), words, override); err != nil {
		s.respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func wordID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("word_uuid"))
	if err != nil {
		badRequest(c, "word_uuid は UUID でなくてはいけません")
		return uuid.Nil, false
	}
	return id, true
}

// wordRequest собирает упрощенный запрос из параметров строки запроса
func wordRequest(c *gin.Context) (userdict.AddWordRequest, bool) {
	req := userdict.AddWordRequest{
		Surface:       c.Query("surface"),
		Pronunciation: c.QueryArray("pronunciation"),
		WordType:      models.WordType(c.Query("word_type")),
		Priority:      defaultWordPriority,
	}
	if req.Surface == "" {
		badRequest(c, "surface は必須です")
		return req, false
	}

	for _, raw := range c.QueryArray("accent_type") {
		v, err := strconv.Atoi(raw)
		if err != nil {
			badRequest(c, "accent_type は整数でなくてはいけません")
			return req, false
		}
		req.AccentType = append(req.AccentType, v)
	}

	if raw := c.Query("priority"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil {
			badRequest(c, "priority は整数でなくてはいけません")
			return req, false
		}
		req.Priority = v
	}
	return req, true
}
