package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).
			Foreground(lipgloss.AdaptiveColor{Light: "#5A3FC0", Dark: "#BD93F9"})
	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#666666", Dark: "#9A9A9A"}).
			Width(12)
	valueStyle   = lipgloss.NewStyle().Bold(true)
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#1E7B34", Dark: "#50FA7B"})
	treeStyle    = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.AdaptiveColor{Light: "#BBBBBB", Dark: "#44475A"}).
			Padding(0, 1)
)

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// printer writes CLI output, styled only when the writer is a terminal.
type printer struct {
	w     io.Writer
	color bool
}

func newPrinter(w io.Writer) *printer {
	f, ok := w.(*os.File)
	return &printer{w: w, color: ok && isTerminal(f)}
}

func (p *printer) render(s lipgloss.Style, text string) string {
	if !p.color {
		return text
	}
	return s.Render(text)
}

func (p *printer) title(text string) {
	fmt.Fprintln(p.w, p.render(titleStyle, text))
}

func (p *printer) field(label string, value any) {
	if !p.color {
		fmt.Fprintf(p.w, "  %-12s%v\n", label, value)
		return
	}
	fmt.Fprintf(p.w, "  %s%s\n", labelStyle.Render(label), valueStyle.Render(fmt.Sprint(value)))
}

func (p *printer) success(format string, args ...any) {
	fmt.Fprintln(p.w, p.render(successStyle, "✓")+" "+fmt.Sprintf(format, args...))
}

func (p *printer) block(text string) {
	fmt.Fprintln(p.w, p.render(treeStyle, text))
}
