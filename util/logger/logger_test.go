package logger

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	require.Equal(t, slog.LevelDebug, parseLevel("DEBUG"))
	require.Equal(t, slog.LevelWarn, parseLevel("warning"))
	require.Equal(t, slog.LevelError, parseLevel("error"))
	require.Equal(t, slog.LevelInfo, parseLevel(""))
	require.Equal(t, slog.LevelInfo, parseLevel("verbose"))
}

func TestNew_HandlerByEnv(t *testing.T) {
	_, isJSON := New("prod", "info").Handler().(*slog.JSONHandler)
	require.True(t, isJSON)

	_, isText := New("dev", "info").Handler().(*slog.TextHandler)
	require.True(t, isText)

	require.False(t, New("dev", "warn").Enabled(context.Background(), slog.LevelInfo))
}
