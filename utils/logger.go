package utils

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"runtime"
	"time"
)

var (
	InfoLogger  *log.Logger
	ErrorLogger *log.Logger
	DebugLogger *log.Logger
)

// newFileLogger открывает файл лога на дозапись и создает логгер с префиксом
func newFileLogger(dir, name, prefix string) *log.Logger {
	file, err := os.OpenFile(filepath.Join(dir, name), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		log.Fatalf("Не удалось открыть файл лога %s: %v", name, err)
	}
	return log.New(file, prefix, log.Ldate|log.Ltime|log.Lshortfile)
}

func init() {
	// Директория логов переопределяется переменной окружения LOG_DIR
	logDir := os.Getenv("LOG_DIR")
	if logDir == "" {
		logDir = "logs"
	}
	if err := os.MkdirAll(logDir, 0755); err != nil {
		log.Fatalf("Не удалось создать директорию логов: %v", err)
	}

	InfoLogger = newFileLogger(logDir, "info.log", "INFO: ")
	ErrorLogger = newFileLogger(logDir, "error.log", "ERROR: ")
	DebugLogger = newFileLogger(logDir, "debug.log", "DEBUG: ")
}

// logTo дописывает к сообщению файл и строку вызывающего кода
func logTo(logger *log.Logger, format string, v ...interface{}) {
	_, file, line, _ := runtime.Caller(2)
	logger.Printf("%s:%d - %s", filepath.Base(file), line, fmt.Sprintf(format, v...))
}

// LogInfo логирует информационное сообщение
func LogInfo(format string, v ...interface{}) {
	logTo(InfoLogger, format, v...)
}

// LogError логирует сообщение об ошибке
func LogError(format string, v ...interface{}) {
	logTo(ErrorLogger, format, v...)
}

// LogDebug логирует отладочное сообщение
func LogDebug(format string, v ...interface{}) {
	logTo(DebugLogger, format, v...)
}

// LogOperation логирует результат операции с ее длительностью
func LogOperation(operation string, startTime time.Time, err error) {
	duration := time.Since(startTime)
	if err != nil {
		LogError("Операция %s завершилась ошибкой за %v: %v", operation, duration, err)
	} else {
		LogInfo("Операция %s выполнена за %v", operation, duration)
	}
}
