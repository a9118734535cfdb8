package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWithWriter_JSON(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter("warn", "production", &buf)

	l.Info().Msg("dropped")
	l.Warn().Str("project_id", "p1").Msg("kept")

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 1)

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(lines[0], &entry))
	assert.Equal(t, "warn", entry["level"])
	assert.Equal(t, "p1", entry["project_id"])
	assert.Equal(t, "kept", entry["message"])
}

func TestNewWithWriter_BadLevelDefaultsToInfo(t *testing.T) {
	l := NewWithWriter("loud", "production", &bytes.Buffer{})
	assert.Equal(t, zerolog.InfoLevel, l.GetLevel())
}

func TestFromContext(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter("info", "production", &buf).With().Str("request_id", "abc").Logger()

	ctx := WithContext(context.Background(), l)
	got := FromContext(ctx)
	got.Info().Msg("hello")
	assert.Contains(t, buf.String(), `"request_id":"abc"`)

	nop := FromContext(context.Background())
	assert.Equal(t, zerolog.Disabled, nop.GetLevel())
}

func TestFromContext_ReturnsSharedPointer(t *testing.T) {
	var buf bytes.Buffer
	ctx := WithContext(context.Background(), NewWithWriter("info", "production", &buf))

	FromContext(ctx).Info().Str("step", "one").Msg("direct call")
	assert.Contains(t, buf.String(), `"step":"one"`)
	assert.Same(t, FromContext(ctx), FromContext(ctx))

	FromContext(nil).Warn().Msg("nowhere")
}
