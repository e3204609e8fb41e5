package logger

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input   string
		want    zapcore.Level
		wantErr bool
	}{
		{input: "debug", want: zapcore.DebugLevel},
		{input: "", want: zapcore.InfoLevel},
		{input: "INFO", want: zapcore.InfoLevel},
		{input: "warning", want: zapcore.WarnLevel},
		{input: "error", want: zapcore.ErrorLevel},
		{input: "verbose", want: zapcore.InfoLevel, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseLevel(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLogger_FormatsMessages(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	l := NewWithCore(core)

	l.Debug("debug %d", 1)
	l.Info("CreateBooking: booking id=%d created", 42)
	l.Warn("slot %s taken", "09:00")
	l.Error("boom: %v", assert.AnError)

	entries := logs.AllUntimed()
	require.Len(t, entries, 4)
	assert.Equal(t, "debug 1", entries[0].Message)
	assert.Equal(t, zapcore.InfoLevel, entries[1].Level)
	assert.Equal(t, "CreateBooking: booking id=42 created", entries[1].Message)
	assert.Equal(t, zapcore.WarnLevel, entries[2].Level)
	assert.Equal(t, zapcore.ErrorLevel, entries[3].Level)
	assert.Contains(t, entries[3].Message, assert.AnError.Error())
}

func TestLogger_RespectsLevel(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	l := NewWithCore(core)

	l.Info("hidden")
	l.Warn("visible")

	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "visible", logs.All()[0].Message)
}

func TestNew_WithFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "logs", "app.log")

	l, err := New(file, "info")
	require.NoError(t, err)
	l.Info("hello")
	l.Close()

	assert.FileExists(t, file)
}

func TestNew_InvalidLevel(t *testing.T) {
	_, err := New("", "loud")
	assert.Error(t, err)
}
