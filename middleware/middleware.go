package middleware

import (
	"net/http"
	"strconv"
	"time"

	"communityBilling/utils"
)

var (
	// Глобальный rate limiter на IP-адрес клиента
	globalLimiter = utils.NewRateLimiter(100, time.Minute) // 100 запросов в минуту
)

type LoggingResponseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (lrw *LoggingResponseWriter) WriteHeader(code int) {
	lrw.statusCode = code
	lrw.ResponseWriter.WriteHeader(code)
}

// LoggingMiddleware логирует информацию о запросе и ответе и записывает
// метрики запросов. Ответы 5xx попадают в лог ошибок.
func LoggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		// Создаем обертку для ResponseWriter
		lrw := &LoggingResponseWriter{
			ResponseWriter: w,
			statusCode:     http.StatusOK,
		}

		// Обрабатываем запрос
		next.ServeHTTP(lrw, r)

		// Логируем информацию
		duration := time.Since(start)
		if lrw.statusCode >= 500 {
			utils.LogError("Method: %s, Path: %s, Status: %d, Duration: %v",
				r.Method, r.URL.Path, lrw.statusCode, duration)
		} else {
			utils.LogInfo("Method: %s, Path: %s, Status: %d, Duration: %v",
				r.Method, r.URL.Path, lrw.statusCode, duration)
		}

		utils.GetMetrics().RecordRequest(duration, lrw.statusCode)
	})
}

// RateLimitMiddleware ограничивает частоту запросов по IP-адресу клиента
func RateLimitMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		clientIP := r.RemoteAddr

		// Проверяем лимит
		if !globalLimiter.Allow(clientIP) {
			utils.LogDebug("Превышен лимит запросов для %s", clientIP)
			w.Header().Set("X-RateLimit-Reset", globalLimiter.GetResetTime(clientIP).String())
			http.Error(w, "Too many requests", http.StatusTooManyRequests)
			return
		}

		// Добавляем заголовки с информацией о лимитах
		w.Header().Set("X-RateLimit-Limit", "100")
		w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(globalLimiter.GetRemaining(clientIP)))

		next.ServeHTTP(w, r)
	})
}
