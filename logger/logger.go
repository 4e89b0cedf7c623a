package logger

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// Logger wraps logrus.Logger with the fields this application logs by.
type Logger struct {
	*logrus.Logger
}

// New creates a JSON logger writing to stdout at the given level.
func New(level string) *Logger {
	return NewWithOutput(level, os.Stdout)
}

// NewWithOutput is New with an explicit destination.
func NewWithOutput(level string, out io.Writer) *Logger {
	log := logrus.New()

	logLevel, err := logrus.ParseLevel(level)
	if err != nil {
		logLevel = logrus.InfoLevel
	}
	log.SetLevel(logLevel)

	log.SetFormatter(&logrus.JSONFormatter{
		TimestampFormat: "2006-01-02T15:04:05.000Z07:00",
		FieldMap: logrus.FieldMap{
			logrus.FieldKeyTime:  "timestamp",
			logrus.FieldKeyLevel: "level",
			logrus.FieldKeyMsg:   "message",
		},
	})
	log.SetOutput(out)

	return &Logger{Logger: log}
}

// Discard returns a logger that drops everything, for tests.
func Discard() *Logger {
	return NewWithOutput("panic", io.Discard)
}

// WithUserID creates a new logger entry with user ID field
func (l *Logger) WithUserID(userID string) *logrus.Entry {
	return l.Logger.WithField("user_id", userID)
}

// WithComponent creates a new logger entry with component name field
func (l *Logger) WithComponent(component string) *logrus.Entry {
	return l.Logger.WithField("component", component)
}

// BackendOperation logs one data access call.
func (l *Logger) BackendOperation(operation, table string, durationMs int64, err error) {
	entry := l.Logger.WithFields(logrus.Fields{
		"component":   "backend",
		"operation":   operation,
		"table":       table,
		"duration_ms": durationMs,
	})
	if err != nil {
		entry.WithError(err).Error("Backend operation failed")
		return
	}
	entry.Debug("Backend operation completed")
}

// HTTPRequest logs a served request.
func (l *Logger) HTTPRequest(method, path, clientIP string, statusCode int, durationMs int64) {
	entry := l.Logger.WithFields(logrus.Fields{
		"method":      method,
		"path":        path,
		"client_ip":   clientIP,
		"status_code": statusCode,
		"duration_ms": durationMs,
	})
	if statusCode >= 400 {
		entry.Warn("HTTP request completed with error")
		return
	}
	entry.Info("HTTP request completed")
}
