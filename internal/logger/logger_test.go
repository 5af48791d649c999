package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap/zapcore"
)

func TestInit(t *testing.T) {
	tests := []struct {
		name        string
		level       string
		expectedErr bool
		enabled     zapcore.Level
		disabled    *zapcore.Level
	}{
		{name: "debug", level: "debug", enabled: zapcore.DebugLevel},
		{name: "warn", level: "warn", enabled: zapcore.WarnLevel, disabled: levelPtr(zapcore.InfoLevel)},
		{name: "invalid", level: "verbose", expectedErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			previous := Logger
			t.Cleanup(func() { Logger = previous })

			err := Init(tt.level)

			if tt.expectedErr {
				assert.Error(t, err)
				assert.Same(t, previous, Logger)
				return
			}
			assert.NoError(t, err)
			assert.True(t, Logger.Core().Enabled(tt.enabled))
			if tt.disabled != nil {
				assert.False(t, Logger.Core().Enabled(*tt.disabled))
			}
		})
	}
}

func levelPtr(l zapcore.Level) *zapcore.Level { return &l }
