package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lastEntry(t *testing.T, data []byte) map[string]any {
	t.Helper()
	lines := bytes.Split(bytes.TrimSpace(data), []byte("\n"))

	var entry map[string]any
	require.NoError(t, json.Unmarshal(lines[len(lines)-1], &entry), "log: %s", data)
	return entry
}

// TestNewLogger_Fields verifies the role, timestamp and caller fields of a
// server logger entry.
func TestNewLogger_Fields(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger("playground-auth-server")
	l.Logger = l.Output(&buf)

	l.Info().Msg("listening")

	entry := lastEntry(t, buf.Bytes())
	assert.Equal(t, "playground-auth-server", entry["role"])
	assert.Contains(t, entry, "time")
	assert.Contains(t, entry, "func")
	assert.Equal(t, zerolog.DebugLevel, zerolog.GlobalLevel())
}

func TestNop_DiscardsOutput(t *testing.T) {
	var buf bytes.Buffer
	l := Nop()
	l.Logger = l.Output(&buf)

	l.Info().Msg("should be discarded")

	assert.Empty(t, buf.String())
}

// TestGetChildLogger verifies that a child carries the parent's fields and
// that fields added to the child do not leak into the parent.
func TestGetChildLogger(t *testing.T) {
	var buf bytes.Buffer
	parent := &Logger{zerolog.New(&buf).With().Str("role", "server").Logger()}

	child := parent.GetChildLogger()
	require.NotSame(t, parent, child)
	child.UpdateContext(func(c zerolog.Context) zerolog.Context {
		return c.Str("trace_id", "t-1")
	})

	child.Info().Msg("child")
	entry := lastEntry(t, buf.Bytes())
	assert.Equal(t, "server", entry["role"])
	assert.Equal(t, "t-1", entry["trace_id"])

	parent.Info().Msg("parent")
	assert.NotContains(t, lastEntry(t, buf.Bytes()), "trace_id")
}

// TestFromContext covers the attached logger round trip and the fallback
// for a bare context.
func TestFromContext(t *testing.T) {
	require.NotNil(t, FromContext(context.Background()))

	var buf bytes.Buffer
	l := &Logger{zerolog.New(&buf).With().Str("trace_id", "abc").Logger()}

	FromContext(l.WithContext(context.Background())).Info().Msg("round trip")

	assert.Equal(t, "abc", lastEntry(t, buf.Bytes())["trace_id"])
}

func TestFromRequest(t *testing.T) {
	var buf bytes.Buffer
	l := &Logger{zerolog.New(&buf).With().Str("trace_id", "req-1").Logger()}

	req := httptest.NewRequest(http.MethodGet, "/api/protected", nil)
	require.NotNil(t, FromRequest(req))

	req = req.WithContext(l.WithContext(req.Context()))
	FromRequest(req).Info().Msg("from request")

	assert.Equal(t, "req-1", lastEntry(t, buf.Bytes())["trace_id"])
}

func TestNewClientLogger_WritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "client.log")

	l := NewClientLogger("client", path)
	l.Info().Msg("to file")

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	entry := lastEntry(t, data)
	assert.Equal(t, "client", entry["role"])
	assert.Equal(t, "to file", entry["message"])
}

// TestNewClientLogger_FallsBackOnBadPath verifies that an unwritable path
// still yields a usable logger.
func TestNewClientLogger_FallsBackOnBadPath(t *testing.T) {
	l := NewClientLogger("client", filepath.Join(t.TempDir(), "missing", "dir", "client.log"))
	require.NotNil(t, l)
}
