package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"go.trai.ch/rockbuild/internal/ui/output"
	"go.trai.ch/rockbuild/internal/ui/style"
)

// Attribute keys the pretty handler renders outside the key=value tail.
const (
	// ComponentKey names the library a record belongs to. It becomes a "[name]" prefix.
	ComponentKey = "component"
	// StreamKey marks a line of compiler or archiver output with its stream.
	StreamKey = "stream"
)

// Stream values for StreamKey.
const (
	StreamStdout = "stdout"
	StreamStderr = "stderr"
)

// outputGutter precedes each line of tool output.
const outputGutter = "│ "

// PrettyHandler is a slog.Handler that renders build progress for a terminal.
// Records tagged with a component get a "[component]" prefix; tool output lines
// are indented behind a gutter and drawn muted, stderr lines in the warning color.
type PrettyHandler struct {
	out   *termenv.Output
	level slog.Leveler
	attrs []slog.Attr
	group string
}

// NewPrettyHandler creates a new PrettyHandler writing to the provided writer.
func NewPrettyHandler(w io.Writer, opts *slog.HandlerOptions) *PrettyHandler {
	if w == nil {
		w = os.Stderr
	}

	var level slog.Leveler = slog.LevelInfo
	if opts != nil && opts.Level != nil {
		level = opts.Level
	}

	return &PrettyHandler{
		out:   output.New(w),
		level: level,
	}
}

// Enabled reports whether the handler handles records at the given level.
func (h *PrettyHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

// line is one record split into the parts rendered with their own style.
type line struct {
	component string
	stream    string
	rest      []string
}

func (l *line) add(group string, attr slog.Attr) {
	if group == "" {
		switch attr.Key {
		case ComponentKey:
			l.component = attr.Value.String()
			return
		case StreamKey:
			l.stream = attr.Value.String()
			return
		}
	}
	l.rest = append(l.rest, formatAttr(group, attr))
}

// Handle formats and outputs the log record.
//
//nolint:gocritic // slog.Handler interface requires slog.Record by value
func (h *PrettyHandler) Handle(_ context.Context, r slog.Record) error {
	l := line{rest: make([]string, 0, len(h.attrs)+r.NumAttrs())}
	for _, attr := range h.attrs {
		l.add(h.group, attr)
	}
	r.Attrs(func(attr slog.Attr) bool {
		l.add(h.group, attr)
		return true
	})

	var b strings.Builder
	if l.component != "" {
		b.WriteString(h.paint("["+l.component+"] ", style.Iris))
	}

	if l.stream != "" {
		color := style.Slate
		if l.stream == StreamStderr {
			color = style.Yellow
		}
		b.WriteString(h.paint(outputGutter+r.Message, color))
	} else {
		b.WriteString(h.message(r.Level, r.Message))
	}

	if len(l.rest) > 0 {
		b.WriteString(" " + h.paint(strings.Join(l.rest, " "), style.Slate))
	}
	b.WriteString("\n")

	_, err := h.out.WriteString(b.String())
	return err
}

// message renders a rockbuild message with its level marker.
func (h *PrettyHandler) message(level slog.Level, msg string) string {
	switch {
	case level >= slog.LevelError:
		return h.paint(style.Cross+" "+msg, style.Red)
	case level >= slog.LevelWarn:
		return h.paint(style.Warning+" "+msg, style.Yellow)
	default:
		return h.paint(msg, style.Slate)
	}
}

func (h *PrettyHandler) paint(s string, c lipgloss.Color) string {
	return h.out.String(s).Foreground(termenv.RGBColor(string(c))).String()
}

// WithAttrs returns a new Handler with the given attributes appended.
func (h *PrettyHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	newAttrs := make([]slog.Attr, len(h.attrs)+len(attrs))
	copy(newAttrs, h.attrs)
	copy(newAttrs[len(h.attrs):], attrs)

	return &PrettyHandler{
		out:   h.out,
		level: h.level,
		attrs: newAttrs,
		group: h.group,
	}
}

// WithGroup returns a new Handler with the given group name.
func (h *PrettyHandler) WithGroup(name string) slog.Handler {
	return &PrettyHandler{
		out:   h.out,
		level: h.level,
		attrs: h.attrs,
		group: name,
	}
}

func formatAttr(group string, attr slog.Attr) string {
	key := attr.Key
	if group != "" {
		key = group + "." + key
	}
	return key + "=" + attr.Value.String()
}
