package logger_test

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"go.trai.ch/rockbuild/internal/adapters/logger"
)

func TestPrettyHandler_Handle_Levels(t *testing.T) {
	tests := []struct {
		name       string
		level      slog.Level
		msg        string
		goldenName string
	}{
		{name: "info level", level: slog.LevelInfo, msg: "compiling snappy", goldenName: "handler_info"},
		{name: "warn level", level: slog.LevelWarn, msg: "flag -Wno-shadow not supported", goldenName: "handler_warn"},
		{name: "error level", level: slog.LevelError, msg: "toolchain invocation failed", goldenName: "handler_error"},
		{name: "debug level filtered", level: slog.LevelDebug, msg: "cache lookup", goldenName: "handler_debug_filtered"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("NO_COLOR", "1")

			buf := &bytes.Buffer{}
			lg := slog.New(logger.NewPrettyHandler(buf, &slog.HandlerOptions{Level: slog.LevelInfo}))
			lg.Log(t.Context(), tt.level, tt.msg)

			g := goldie.New(t)
			g.Assert(t, tt.goldenName, buf.Bytes())
		})
	}
}

func TestPrettyHandler_Attrs(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	buf := &bytes.Buffer{}
	lg := slog.New(logger.NewPrettyHandler(buf, nil)).With("component", "zstd")
	lg.Info("compiling zstd", "jobs", 4)

	g := goldie.New(t)
	g.Assert(t, "handler_attrs", buf.Bytes())
}

func TestPrettyHandler_ToolOutput(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	buf := &bytes.Buffer{}
	lg := slog.New(logger.NewPrettyHandler(buf, nil))
	snappy := lg.With(logger.ComponentKey, "snappy")
	snappy.Info("snappy.cc:41:7: note: candidate function", logger.StreamKey, logger.StreamStdout)
	snappy.Warn("snappy.cc:88:3: warning: unused variable 'n'", logger.StreamKey, logger.StreamStderr)
	lg.Info("ar: creating libsnappy.a", logger.StreamKey, logger.StreamStdout)

	g := goldie.New(t)
	g.Assert(t, "handler_output", buf.Bytes())
}

func TestPrettyHandler_ToolOutputHasNoLevelMarker(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	buf := &bytes.Buffer{}
	lg := slog.New(logger.NewPrettyHandler(buf, nil))
	lg.Warn("warning: implicit fallthrough", logger.StreamKey, logger.StreamStderr)

	assert.Equal(t, "│ warning: implicit fallthrough\n", buf.String())
}

func TestPrettyHandler_WithGroup(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	buf := &bytes.Buffer{}
	lg := slog.New(logger.NewPrettyHandler(buf, nil).WithGroup("build"))
	lg.Info("done", "component", "lz4")

	assert.Equal(t, "done build.component=lz4\n", buf.String())
}
