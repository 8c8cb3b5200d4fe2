// Package output provides kconfgen's console output: a color palette and a
// slog-backed logger with optional rotating file logging.
package output

import (
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
)

const bannerWidth = 100

// Palette holds the output styles. With colors disabled every method
// returns its input unchanged.
type Palette struct {
	enabled bool

	banner lipgloss.Style
	warn   lipgloss.Style
	err    lipgloss.Style
	symbol lipgloss.Style
	dim    lipgloss.Style
	ok     lipgloss.Style
}

// NewPalette creates the palette. Colors are enabled only on a color-capable
// terminal and can be forced off with noColor or the NO_COLOR convention.
func NewPalette(noColor bool) *Palette {
	enabled := !noColor &&
		os.Getenv("NO_COLOR") == "" &&
		isatty.IsTerminal(os.Stdout.Fd()) &&
		termenv.ColorProfile() != termenv.Ascii

	return &Palette{
		enabled: enabled,
		banner:  lipgloss.NewStyle().Bold(true),
		warn:    lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
		err:     lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
		symbol:  lipgloss.NewStyle().Foreground(lipgloss.Color("6")),
		dim:     lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		ok:      lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
	}
}

// Banner formats a stage banner: the message padded with dashes to a fixed
// width, in the style of the kernel build's configuration output
func (p *Palette) Banner(msg string) string {
	line := "-- " + msg + " "
	if len(line) < bannerWidth {
		line += strings.Repeat("-", bannerWidth-len(line))
	}
	return p.render(p.banner, line)
}

// Warning styles warning text
func (p *Palette) Warning(s string) string {
	return p.render(p.warn, s)
}

// Error styles error text
func (p *Palette) Error(s string) string {
	return p.render(p.err, s)
}

// Symbol styles a configuration symbol name
func (p *Palette) Symbol(s string) string {
	return p.render(p.symbol, s)
}

// Dim styles de-emphasized text
func (p *Palette) Dim(s string) string {
	return p.render(p.dim, s)
}

// OK styles success text
func (p *Palette) OK(s string) string {
	return p.render(p.ok, s)
}

func (p *Palette) render(style lipgloss.Style, s string) string {
	if !p.enabled {
		return s
	}
	return style.Render(s)
}
