package middleware

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"communityBilling/utils"
)

func TestLoggingMiddlewareWritesInfoLog(t *testing.T) {
	var buf bytes.Buffer
	utils.InfoLogger.SetOutput(&buf)
	t.Cleanup(func() { utils.InfoLogger.SetOutput(io.Discard) })

	handler := LoggingMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
	}))

	req := httptest.NewRequest("POST", "/api/payments", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	logged := buf.String()
	if !strings.Contains(logged, "Method: POST") {
		t.Errorf("Лог не содержит метода запроса: %q", logged)
	}
	if !strings.Contains(logged, "Path: /api/payments") {
		t.Errorf("Лог не содержит пути запроса: %q", logged)
	}
	if !strings.Contains(logged, "Status: 201") {
		t.Errorf("Лог не содержит статуса ответа: %q", logged)
	}
}

func TestLoggingMiddlewareWritesErrorLogOn5xx(t *testing.T) {
	var infoBuf, errorBuf bytes.Buffer
	utils.InfoLogger.SetOutput(&infoBuf)
	utils.ErrorLogger.SetOutput(&errorBuf)
	t.Cleanup(func() {
		utils.InfoLogger.SetOutput(io.Discard)
		utils.ErrorLogger.SetOutput(io.Discard)
	})

	handler := LoggingMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "сбой базы данных", http.StatusInternalServerError)
	}))

	req := httptest.NewRequest("GET", "/api/fees", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if !strings.Contains(errorBuf.String(), "Status: 500") {
		t.Errorf("Лог ошибок не содержит ответа 5xx: %q", errorBuf.String())
	}
	if strings.Contains(infoBuf.String(), "Status: 500") {
		t.Error("Ответ 5xx не должен попадать в информационный лог")
	}
}

func TestLoggingMiddlewareRecordsMetrics(t *testing.T) {
	utils.InfoLogger.SetOutput(io.Discard)

	before := utils.GetMetrics().Snapshot().TotalRequests

	handler := LoggingMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest("GET", "/health", nil))

	after := utils.GetMetrics().Snapshot().TotalRequests
	if after != before+1 {
		t.Errorf("Ожидалось %d запросов в метриках, получено %d", before+1, after)
	}
}
