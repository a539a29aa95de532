package repl

import (
	"io"

	"github.com/charmbracelet/lipgloss"
)

var (
	colorPrimary = lipgloss.Color("#8B5CF6") // violet
	colorKind    = lipgloss.Color("#06B6D4") // cyan
	colorLiteral = lipgloss.Color("#F59E0B") // amber
	colorProgram = lipgloss.Color("#10B981") // emerald
	colorError   = lipgloss.Color("#EF4444") // red
)

type styles struct {
	banner  lipgloss.Style
	kind    lipgloss.Style
	literal lipgloss.Style
	program lipgloss.Style
	err     lipgloss.Style
}

// newStyles builds styles bound to out, so colour is only emitted when out is
// a terminal. With color false every style renders plain text.
func newStyles(out io.Writer, color bool) styles {
	r := lipgloss.NewRenderer(out)
	if !color {
		plain := r.NewStyle()
		return styles{banner: plain, kind: plain, literal: plain, program: plain, err: plain}
	}
	return styles{
		banner:  r.NewStyle().Foreground(colorPrimary).Bold(true),
		kind:    r.NewStyle().Foreground(colorKind),
		literal: r.NewStyle().Foreground(colorLiteral),
		program: r.NewStyle().Foreground(colorProgram),
		err:     r.NewStyle().Foreground(colorError),
	}
}
