package logger

import (
	"bytes"
	"context"
	log "log/slog"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var out []map[string]any
	for _, line := range bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n")) {
		if len(line) == 0 {
			continue
		}
		m := map[string]any{}
		require.NoError(t, json.Unmarshal(line, &m))
		out = append(out, m)
	}
	return out
}

func TestContextHandler_AddsTraceID(t *testing.T) {
	var buf bytes.Buffer
	l := log.New(&ContextHandler{log.NewJSONHandler(&buf, nil)})

	ctx := context.WithValue(context.Background(), TraceIDKey, "abc")
	l.InfoContext(ctx, "hello")
	l.Info("no trace")

	lines := decodeLines(t, &buf)
	require.Len(t, lines, 2)
	assert.Equal(t, "abc", lines[0][TraceIDKey])
	assert.NotContains(t, lines[1], TraceIDKey)
}

func TestTeeHandler_RemoteFilter(t *testing.T) {
	var local, remote bytes.Buffer
	h := NewTeeHandler(
		log.NewJSONHandler(&local, nil),
		&RemoteFilterHandler{next: log.NewJSONHandler(&remote, nil)},
	)
	l := log.New(&ContextHandler{h})

	l.Info("startup")
	l.InfoContext(NewJobContext("job"), "tick")

	assert.Len(t, decodeLines(t, &local), 2)
	remoteLines := decodeLines(t, &remote)
	require.Len(t, remoteLines, 1)
	assert.Equal(t, "tick", remoteLines[0]["msg"])
	assert.Contains(t, remoteLines[0][TraceIDKey], "job-")
}

func TestTeeHandler_Enabled(t *testing.T) {
	var a, b bytes.Buffer
	h := NewTeeHandler(
		log.NewJSONHandler(&a, &log.HandlerOptions{Level: log.LevelError}),
		log.NewJSONHandler(&b, &log.HandlerOptions{Level: log.LevelInfo}),
	)
	assert.True(t, h.Enabled(context.Background(), log.LevelInfo))
	assert.False(t, h.Enabled(context.Background(), log.LevelDebug))

	log.New(h).Info("only b")
	assert.Empty(t, a.String())
	assert.NotEmpty(t, b.String())
}
