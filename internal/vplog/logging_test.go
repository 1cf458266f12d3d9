package vplog

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, LevelTrace, ParseLevel("trace"))
	assert.Equal(t, slog.LevelDebug, ParseLevel("debug"))
	assert.Equal(t, slog.LevelInfo, ParseLevel("info"))
	assert.Equal(t, slog.LevelInfo, ParseLevel(""))
	assert.Equal(t, slog.LevelWarn, ParseLevel("warn"))
	assert.Equal(t, slog.LevelError, ParseLevel("error"))
	assert.Equal(t, slog.LevelInfo, ParseLevel("nonsense"))
}

func TestMultiHandlerFansOutToEveryHandler(t *testing.T) {
	var bufA, bufB bytes.Buffer
	h := MultiHandler{hs: []slog.Handler{
		slog.NewTextHandler(&bufA, nil),
		slog.NewTextHandler(&bufB, nil),
	}}
	logger := slog.New(h)
	logger.Info("hello")

	assert.Contains(t, bufA.String(), "hello")
	assert.Contains(t, bufB.String(), "hello")
}

func TestLevelFilterOnlyPassesMatchingLevels(t *testing.T) {
	var buf bytes.Buffer
	f := LevelFilter{
		pass: func(l slog.Level) bool { return l >= slog.LevelError },
		h:    slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}),
	}

	logger := slog.New(f)
	logger.Info("should be dropped")
	assert.Empty(t, buf.String())

	logger.Error("should pass")
	assert.Contains(t, buf.String(), "should pass")
}

func TestLevelFilterEnabledRespectsPredicate(t *testing.T) {
	f := LevelFilter{
		pass: func(l slog.Level) bool { return l >= slog.LevelWarn },
		h:    slog.NewTextHandler(&bytes.Buffer{}, &slog.HandlerOptions{Level: slog.LevelDebug}),
	}

	assert.False(t, f.Enabled(context.Background(), slog.LevelInfo))
	assert.True(t, f.Enabled(context.Background(), slog.LevelWarn))
}
