package logger_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/rockbuild/internal/adapters/logger"
)

func TestLogger_Pretty(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	buf := &bytes.Buffer{}
	l := logger.New()
	l.SetOutput(buf)

	l.Info("building rocksdb")
	l.Warn("skipping bindings")
	l.Error(errors.New("compiler exited"))
	l.Error(nil)

	assert.Equal(t, "building rocksdb\n! skipping bindings\n✗ Error: compiler exited\n", buf.String())
}

func TestLogger_JSON(t *testing.T) {
	buf := &bytes.Buffer{}
	l := logger.New()
	l.SetOutput(buf)
	l.SetJSON(true)

	l.Error(errors.New("compiler exited"))

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "ERROR", rec["level"])
	assert.Equal(t, "operation failed", rec["msg"])
	assert.Equal(t, "compiler exited", rec["error"])
}

func TestLogger_SetJSON_KeepsOutput(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	buf := &bytes.Buffer{}
	l := logger.New()
	l.SetOutput(buf)
	l.SetJSON(true)
	l.SetJSON(false)

	l.Info("back to pretty")
	assert.Equal(t, "back to pretty\n", buf.String())
}

func TestLogger_Output(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	buf := &bytes.Buffer{}
	l := logger.New()
	l.SetOutput(buf)

	l.Output("lz4", "lz4.c:12: note: expanded from macro", false)
	l.Output("lz4", "lz4.c:40: warning: comparison of integers", true)
	l.Output("", "ranlib: no symbols", false)

	assert.Equal(t, "[lz4] │ lz4.c:12: note: expanded from macro\n"+
		"[lz4] │ lz4.c:40: warning: comparison of integers\n"+
		"│ ranlib: no symbols\n", buf.String())
}

func TestLogger_Output_JSON(t *testing.T) {
	buf := &bytes.Buffer{}
	l := logger.New()
	l.SetOutput(buf)
	l.SetJSON(true)

	l.Output("bzip2", "bzlib.c:9: warning: unused parameter", true)

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "WARN", rec["level"])
	assert.Equal(t, "bzlib.c:9: warning: unused parameter", rec["msg"])
	assert.Equal(t, "bzip2", rec[logger.ComponentKey])
	assert.Equal(t, logger.StreamStderr, rec[logger.StreamKey])
}
