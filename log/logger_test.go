package log

import (
	"bytes"
	"encoding/json"
	"os"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewLevel(t *testing.T) {
	for _, l := range []Level{LevelTrace, LevelDebug, LevelInfo, LevelWarn, LevelError, LevelFatal} {
		parsed, err := NewLevel(l.String())
		require.NoError(t, err)
		require.Equal(t, l, parsed)
	}
	parsed, err := NewLevel("WARN")
	require.NoError(t, err)
	require.Equal(t, LevelWarn, parsed)
	_, err = NewLevel("loud")
	require.Error(t, err)
}

func TestLogger_Fields(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	SetFormat(FormatJSON)
	defer func() {
		SetOutput(os.Stderr)
		SetFormat(FormatText)
	}()

	WithModule("inspect").Sub("path", "fit.rds").Trace("decoded", "nodes", 3)

	var line map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	require.Equal(t, "inspect", line["module"])
	require.Equal(t, "fit.rds", line["path"])
	require.EqualValues(t, 3, line["nodes"])
	require.Equal(t, "decoded", line["msg"])
	require.Equal(t, "trace", line["level"])

	require.Panics(t, func() {
		WithModule("inspect").Info("odd", "key")
	})
}

func TestNewFormat(t *testing.T) {
	f, err := NewFormat("JSON")
	require.NoError(t, err)
	require.Equal(t, FormatJSON, f)
	_, err = NewFormat("xml")
	require.Error(t, err)
}
