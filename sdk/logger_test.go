package sdk

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestLoggerFrom(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zap.DebugLevel)
	ctx := context.WithValue(context.Background(), ContextLoggerValue, Logger(zap.New(core).Sugar()))

	LoggerFrom(ctx).Warnf("selector %s seen twice", "0x84a15da1")

	assert.Equal(t, 1, logs.FilterMessage("selector 0x84a15da1 seen twice").Len())
}

func TestLoggerFrom_Fallback(t *testing.T) {
	t.Parallel()

	assert.NotNil(t, LoggerFrom(context.Background()))
}
