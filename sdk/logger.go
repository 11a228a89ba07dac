package sdk

import (
	"context"

	"go.uber.org/zap"
)

// Logger is satisfied by *zap.SugaredLogger.
type Logger interface {
	Debugf(template string, args ...any)
	Infof(template string, args ...any)
	Warnf(template string, args ...any)
}

type contextLoggerValueT string

const ContextLoggerValue = contextLoggerValueT("inkabi-logger")

// LoggerFrom returns the logger stored in ctx under ContextLoggerValue, falling back to a zap
// production logger.
func LoggerFrom(ctx context.Context) Logger {
	value := ctx.Value(ContextLoggerValue)
	logger, ok := value.(Logger)
	if !ok {
		logger = zap.Must(zap.NewProduction()).Sugar()
	}

	return logger
}

// NopLogger returns a logger that discards everything.
func NopLogger() Logger {
	return zap.NewNop().Sugar()
}
