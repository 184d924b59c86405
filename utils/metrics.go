package utils

import (
	"sync"
	"time"
)

// Metrics содержит метрики приложения
type Metrics struct {
	mu sync.RWMutex

	// Метрики запросов
	TotalRequests   int64
	FailedRequests  int64
	totalLatency    time.Duration
	AverageLatency  time.Duration
	LastRequestTime time.Time

	// Метрики платежей
	PaymentsCreated   int64
	PaymentsGenerated int64 // Автоматически начисленные платежи
	PaymentsPaid      int64
	LastBillingRun    time.Time
}

// MetricsSnapshot представляет моментальный снимок метрик
type MetricsSnapshot struct {
	TotalRequests     int64         `json:"total_requests"`
	FailedRequests    int64         `json:"failed_requests"`
	AverageLatency    time.Duration `json:"average_latency_ns"`
	PaymentsCreated   int64         `json:"payments_created"`
	PaymentsGenerated int64         `json:"payments_generated"`
	PaymentsPaid      int64         `json:"payments_paid"`
}

var (
	metrics     *Metrics
	metricsOnce sync.Once
)

// GetMetrics возвращает экземпляр метрик
func GetMetrics() *Metrics {
	metricsOnce.Do(func() {
		metrics = &Metrics{}
	})
	return metrics
}

// RecordRequest записывает метрики запроса
func (m *Metrics) RecordRequest(duration time.Duration, statusCode int) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.TotalRequests++
	m.totalLatency += duration
	m.AverageLatency = m.totalLatency / time.Duration(m.TotalRequests)
	m.LastRequestTime = time.Now()

	if statusCode >= 500 {
		m.FailedRequests++
	}
}

// RecordPaymentCreated записывает создание платежа вручную
func (m *Metrics) RecordPaymentCreated() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.PaymentsCreated++
}

// RecordPaymentGenerated записывает автоматическое начисление платежа
func (m *Metrics) RecordPaymentGenerated() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.PaymentsGenerated++
	m.LastBillingRun = time.Now()
}

// RecordPaymentPaid записывает переход платежа в оплаченное состояние
func (m *Metrics) RecordPaymentPaid() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.PaymentsPaid++
}

// Snapshot возвращает моментальный снимок метрик
func (m *Metrics) Snapshot() MetricsSnapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return MetricsSnapshot{
		TotalRequests:     m.TotalRequests,
		FailedRequests:    m.FailedRequests,
		AverageLatency:    m.AverageLatency,
		PaymentsCreated:   m.PaymentsCreated,
		PaymentsGenerated: m.PaymentsGenerated,
		PaymentsPaid:      m.PaymentsPaid,
	}
}
