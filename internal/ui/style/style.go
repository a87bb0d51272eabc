// Package style provides shared colors and icons for terminal output.
package style

import (
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"go.trai.ch/rockbuild/internal/ui/output"
)

// Brand Colors.
var (
	Iris   = lipgloss.Color("#8B5CF6")
	Slate  = lipgloss.Color("#667085")
	Green  = lipgloss.Color("#22A06B")
	Red    = lipgloss.Color("#D93025")
	Yellow = lipgloss.Color("#F59E0B")
)

// Icons.
const (
	Check   = "✓"
	Cross   = "✗"
	Warning = "!"
	Dot     = "●"
	Circle  = "○"
)

// Styles are the text styles of summary output, bound to one renderer.
type Styles struct {
	Heading lipgloss.Style
	Muted   lipgloss.Style
	Bundled lipgloss.Style
	Extern  lipgloss.Style
	Off     lipgloss.Style
}

// NewRenderer returns a lipgloss renderer for w. NO_COLOR disables styling.
func NewRenderer(w io.Writer) *lipgloss.Renderer {
	return lipgloss.NewRenderer(w, termenv.WithProfile(output.ColorProfile()))
}

// New creates the styles for the given renderer.
func New(r *lipgloss.Renderer) Styles {
	return Styles{
		Heading: r.NewStyle().Bold(true).Foreground(Iris),
		Muted:   r.NewStyle().Foreground(Slate),
		Bundled: r.NewStyle().Foreground(Green),
		Extern:  r.NewStyle().Foreground(Yellow),
		Off:     r.NewStyle().Foreground(Slate).Faint(true),
	}
}
