// Package api HTTP-интерфейс движка: разбор нотации, словарь и пресеты.
package api

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"regexp"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	lru "github.com/hashicorp/golang-lru/v2"
	"go.uber.org/zap"

	"yomi-engine/internal/metrics"
	"yomi-engine/internal/preset"
	"yomi-engine/internal/tts"
	"yomi-engine/internal/userdict"
	"yomi-engine/pkg/models"
)

// Deps зависимости HTTP-сервера
type Deps struct {
	Dict           *userdict.Service
	Presets        *preset.Manager
	Analyzer       tts.TextAnalyzer // nil - анализ текста отключен
	Metrics        *metrics.Metrics
	Logger         *zap.Logger
	AllowedOrigins []string
	KanaCacheSize  int
}

// Server HTTP-сервер на gin
type Server struct {
	router     *gin.Engine
	httpServer *http.Server
	logger     *zap.Logger
	metrics    *metrics.Metrics
	dict       *userdict.Service
	presets    *preset.Manager
	analyzer   tts.TextAnalyzer
	cache      *lru.Cache[string, []models.AccentPhrase]
}

// NewServer создает сервер и регистрирует маршруты
func NewServer(deps Deps) (*Server, error) {
	cache, err := lru.New[string, []models.AccentPhrase](deps.KanaCacheSize)
	if err != nil {
		return nil, fmt.Errorf("ошибка создания кеша разбора: %w", err)
	}

	analyzer := deps.Analyzer
	if analyzer == nil {
		analyzer = tts.Disabled{}
	}

	s := &Server{
		router:   gin.New(),
		logger:   deps.Logger,
		metrics:  deps.Metrics,
		dict:     deps.Dict,
		presets:  deps.Presets,
		analyzer: analyzer,
		cache:    cache,
	}

	s.SetupMiddleware(deps.AllowedOrigins)
	s.SetupRoutes()

	// Shutdown допустим и до начала Serve
	s.httpServer = &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	return s, nil
}

// SetupRoutes регистрирует маршруты
func (s *Server) SetupRoutes() {
	health := metrics.NewHandler(s.metrics, s.logger)
	s.router.GET("/health", gin.WrapF(health.HealthHandler))
	s.router.GET("/metrics", gin.WrapH(health.MetricsHandler()))

	// Запросы синтеза
	s.router.POST("/accent_phrases", s.HandleAccentPhrases)
	s.router.POST("/audio_query", s.HandleAudioQuery)
	s.router.POST("/audio_query_from_preset", s.HandleAudioQueryFromPreset)
	s.router.GET("/singer_info", s.HandleSingerInfo)

	// Пресеты
	s.router.GET("/presets", s.HandleGetPresets)
	s.router.POST("/add_preset", s.HandleAddPreset)
	s.router.POST("/update_preset", s.HandleUpdatePreset)
	s.router.POST("/delete_preset", s.HandleDeletePreset)

	// Пользовательский словарь
	s.router.GET("/user_dict", s.HandleGetUserDict)
	s.router.POST("/user_dict_word", s.HandleAddUserDictWord)
	s.router.PUT("/user_dict_word/:word_uuid", s.HandleRewriteUserDictWord)
	s.router.DELETE("/user_dict_word/:word_uuid", s.HandleDeleteUserDictWord)
	s.router.POST("/import_user_dict", s.HandleImportUserDict)
}

// SetupMiddleware подключает восстановление после паники, CORS, логирование и метрики
func (s *Server) SetupMiddleware(allowedOrigins []string) {
	s.router.Use(s.RecoveryMiddleware())

	corsConfig := cors.Config{
		AllowMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Length", "Content-Type"},
		MaxAge:       12 * time.Hour,
	}
	if len(allowedOrigins) == 0 || (len(allowedOrigins) == 1 && allowedOrigins[0] == "*") {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOriginFunc = originMatcher(allowedOrigins)
	}
	s.router.Use(cors.New(corsConfig))

	s.router.Use(s.RequestIDMiddleware())
	s.router.Use(s.LoggingMiddleware())
	s.router.Use(s.MetricsMiddleware())
}

// originMatcher разрешает источник из списка с любым портом.
// "http://localhost" пропускает и "http://localhost:5173".
func originMatcher(allowed []string) func(origin string) bool {
	patterns := make([]*regexp.Regexp, len(allowed))
	for i, o := range allowed {
		patterns[i] = regexp.MustCompile(`^` + regexp.QuoteMeta(o) + `(:\d+)?$`)
	}
	return func(origin string) bool {
		for _, p := range patterns {
			if p.MatchString(origin) {
				return true
			}
		}
		return false
	}
}

// Handler возвращает http.Handler сервера
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start слушает addr до вызова Shutdown
func (s *Server) Start(addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("ошибка открытия порта %s: %w", addr, err)
	}
	return s.Serve(ln)
}

// Serve обслуживает запросы на ln до вызова Shutdown
func (s *Server) Serve(ln net.Listener) error {
	s.logger.Info("запуск HTTP сервера", zap.String("addr", ln.Addr().String()))
	if err := s.httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("ошибка HTTP сервера: %w", err)
	}
	return nil
}

// Shutdown останавливает сервер, дожидаясь активных запросов.
// После Shutdown последующие Serve сразу возвращают nil.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("остановка HTTP сервера")
	return s.httpServer.Shutdown(ctx)
}
