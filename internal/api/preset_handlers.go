package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"yomi-engine/pkg/models"
)

// HandleGetPresets возвращает все пресеты
func (s *Server) HandleGetPresets(c *gin.Context) {
	presets, err := s.presets.LoadPresets()
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, presets)
}

// HandleAddPreset добавляет пресет и возвращает его id
func (s *Server) HandleAddPreset(c *gin.Context) {
	var p models.Preset
	if err := c.ShouldBindJSON(&p); err != nil {
		badRequest(c, "プリセットの形式が正しくありません")
		return
	}

	id, err := s.presets.AddPreset(p)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, id)
}

// HandleUpdatePreset заменяет пресет с тем же id
func (s *Server) HandleUpdatePreset(c *gin.Context) {
	var p models.Preset
	if err := c.ShouldBindJSON(&p); err != nil {
		badRequest(c, "プリセットの形式が正しくありません")
		return
	}

	id, err := s.presets.UpdatePreset(p)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, id)
}

// HandleDeletePreset удаляет пресет по id
func (s *Server) HandleDeletePreset(c *gin.Context) {
	id, err := strconv.Atoi(c.Query("id"))
	if err != nil {
		badRequest(c, "id は整数でなくてはいけません")
		return
	}

	if err := s.presets.DeletePreset(id); err != nil {
		s.respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
