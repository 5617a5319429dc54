package metrics

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// Metrics содержит все метрики приложения
type Metrics struct {
	logger   *zap.Logger
	registry *prometheus.Registry

	// Счетчики
	kanaParses         *prometheus.CounterVec
	kanaCache          *prometheus.CounterVec
	validationFailures *prometheus.CounterVec
	httpRequests       *prometheus.CounterVec

	// Гистограммы
	httpDuration *prometheus.HistogramVec

	// Gauge метрики
	dictWords prometheus.Gauge

	// Мьютекс для thread-safety
	mu sync.RWMutex
}

// New создает новый экземпляр метрик со своим реестром
func New(logger *zap.Logger) *Metrics {
	m := &Metrics{
		logger:   logger,
		registry: prometheus.NewRegistry(),

		// Результаты разбора нотации
		kanaParses: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "kana_parse_total",
				Help: "Количество разборов нотации по результату",
			},
			[]string{"result"}, // ok или код ошибки
		),

		kanaCache: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "kana_parse_cache_total",
				Help: "Обращения к кешу разбора нотации",
			},
			[]string{"result"}, // hit, miss
		),

		// Ошибки проверки слов словаря
		validationFailures: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "user_dict_validation_failures_total",
				Help: "Количество ошибок проверки слов по полю",
			},
			[]string{"field"},
		),

		httpRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Общее количество HTTP запросов",
			},
			[]string{"method", "path", "status"},
		),

		httpDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "Время обработки HTTP запроса в секундах",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),

		dictWords: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "user_dict_words",
				Help: "Количество слов в пользовательском словаре",
			},
		),
	}

	// Регистрируем все метрики
	m.registry.MustRegister(
		m.kanaParses,
		m.kanaCache,
		m.validationFailures,
		m.httpRequests,
		m.httpDuration,
		m.dictWords,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return m
}

// IncrementCounter увеличивает счетчик
func (m *Metrics) IncrementCounter(name string, labels ...string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var counter *prometheus.CounterVec

	switch name {
	case "kana_parse_total":
		counter = m.kanaParses
	case "kana_parse_cache_total":
		counter = m.kanaCache
	case "user_dict_validation_failures_total":
		counter = m.validationFailures
	case "http_requests_total":
		counter = m.httpRequests
	default:
		m.logger.Error("неизвестная метрика", zap.String("name", name))
		return
	}

	counter.WithLabelValues(labels...).Inc()
}

// SetGauge устанавливает значение gauge метрики
func (m *Metrics) SetGauge(name string, value float64) {
	m.mu.Lock()
	defer m.mu.Unlock()

	switch name {
	case "user_dict_words":
		m.dictWords.Set(value)
	default:
		m.logger.Error("неизвестная gauge метрика", zap.String("name", name))
		return
	}

	m.logger.Debug("метрика установлена", zap.String("metric", name), zap.Float64("value", value))
}

// ObserveHistogram добавляет наблюдение в гистограмму
func (m *Metrics) ObserveHistogram(name string, value float64, labels ...string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	switch name {
	case "http_request_duration_seconds":
		m.httpDuration.WithLabelValues(labels...).Observe(value)
	default:
		m.logger.Error("неизвестная гистограмма", zap.String("name", name))
	}
}

// RecordKanaParse записывает результат разбора нотации
func (m *Metrics) RecordKanaParse(result string) {
	m.IncrementCounter("kana_parse_total", result)
}

// RecordCacheLookup записывает обращение к кешу разбора
func (m *Metrics) RecordCacheLookup(hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	m.IncrementCounter("kana_parse_cache_total", result)
}

// RecordValidationFailure записывает ошибки проверки по полям
func (m *Metrics) RecordValidationFailure(fields ...string) {
	for _, field := range fields {
		m.IncrementCounter("user_dict_validation_failures_total", field)
	}
}

// RecordHTTPRequest записывает HTTP запрос
func (m *Metrics) RecordHTTPRequest(method, path, status string, seconds float64) {
	m.IncrementCounter("http_requests_total", method, path, status)
	m.ObserveHistogram("http_request_duration_seconds", seconds, method, path)
}

// SetDictWords устанавливает количество слов словаря
func (m *Metrics) SetDictWords(count int) {
	m.SetGauge("user_dict_words", float64(count))
}

// Registry возвращает реестр метрик
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler возвращает HTTP handler для метрик
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
