package queue

import (
	"github.com/ThreeDotsLabs/watermill"
	"go.uber.org/zap"
)

var _ watermill.LoggerAdapter = (*loggerAdapter)(nil)

// loggerAdapter adapts the zap sugared logger to watermill's Logger.
type loggerAdapter struct {
	base *zap.SugaredLogger
}

// NewLoggerAdapter wraps a zap logger for use by watermill components.
func NewLoggerAdapter(logger *zap.SugaredLogger) watermill.LoggerAdapter {
	return &loggerAdapter{base: logger}
}

func (l *loggerAdapter) Error(msg string, err error, fields watermill.LogFields) {
	l.withFields(fields).Errorw(msg, "error", err)
}

func (l *loggerAdapter) Info(msg string, fields watermill.LogFields) {
	l.withFields(fields).Infow(msg)
}

func (l *loggerAdapter) Debug(msg string, fields watermill.LogFields) {
	l.withFields(fields).Debugw(msg)
}

func (l *loggerAdapter) Trace(msg string, fields watermill.LogFields) {
	l.withFields(fields).Debugw(msg)
}

func (l *loggerAdapter) With(fields watermill.LogFields) watermill.LoggerAdapter {
	return &loggerAdapter{base: l.withFields(fields)}
}

func (l *loggerAdapter) withFields(fields watermill.LogFields) *zap.SugaredLogger {
	logger := l.base
	for k, v := range fields {
		logger = logger.With(zap.Any(k, v))
	}
	return logger
}
