// Package termview renders an output stream for a terminal: log lines are
// styled per tag, tables become bordered tables, svg lanes are summarised and
// separators become horizontal rules.
package termview

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"golang.org/x/net/html"

	"github.com/goliatone/go-f2f/pkg/dom"
	"github.com/goliatone/go-f2f/pkg/output"
)

// Option configures rendering.
type Option func(*config)

type config struct {
	width  int
	styles map[string]lipgloss.Style
}

// WithWidth sets the separator width.
func WithWidth(width int) Option {
	return func(cfg *config) {
		if width > 0 {
			cfg.width = width
		}
	}
}

// WithStyle overrides the style used for lines carrying tag.
func WithStyle(tag string, style lipgloss.Style) Option {
	return func(cfg *config) {
		cfg.styles[tag] = style
	}
}

func defaultStyles() map[string]lipgloss.Style {
	return map[string]lipgloss.Style{
		output.TagInfo:    lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
		output.TagWarn:    lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
		output.TagError:   lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
		output.TagDebug:   lipgloss.NewStyle().Faint(true),
		output.TagSuccess: lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
	}
}

// Render writes every lane of s to w.
func Render(w io.Writer, s *output.Stream, options ...Option) error {
	cfg := config{width: 40, styles: defaultStyles()}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	var b strings.Builder
	for _, lane := range dom.Children(s.Root()) {
		kind, _ := dom.GetAttr(lane, "data-lane")
		switch output.Lane(kind) {
		case output.LaneLog:
			for _, line := range dom.Children(lane) {
				b.WriteString(cfg.styleFor(line).Render(dom.TextContent(line)))
				b.WriteByte('\n')
			}
		case output.LaneTable:
			b.WriteString(renderTable(lane))
			b.WriteByte('\n')
		case output.LaneSVG:
			shapes := len(dom.Children(lane))
			b.WriteString(lipgloss.NewStyle().Faint(true).Render(fmt.Sprintf("[svg: %d elements]", shapes)))
			b.WriteByte('\n')
		case output.LaneSeparator:
			b.WriteString(strings.Repeat("─", cfg.width))
			b.WriteByte('\n')
		default:
			if text := strings.TrimSpace(dom.TextContent(lane)); text != "" {
				b.WriteString(text)
				b.WriteByte('\n')
			}
		}
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// String renders s to a string.
func String(s *output.Stream, options ...Option) string {
	var b strings.Builder
	if err := Render(&b, s, options...); err != nil {
		return ""
	}
	return b.String()
}

func (cfg config) styleFor(line *html.Node) lipgloss.Style {
	for _, tag := range []string{output.TagError, output.TagWarn, output.TagSuccess, output.TagInfo, output.TagDebug} {
		if dom.HasClass(line, tag) {
			if style, ok := cfg.styles[tag]; ok {
				return style
			}
		}
	}
	return lipgloss.NewStyle()
}

func renderTable(lane *html.Node) string {
	t := table.New().Border(lipgloss.NormalBorder())
	for idx, row := range dom.Children(lane) {
		cells := dom.Children(row)
		values := make([]string, 0, len(cells))
		header := len(cells) > 0
		for _, cell := range cells {
			values = append(values, dom.TextContent(cell))
			if cell.Data != "th" {
				header = false
			}
		}
		if idx == 0 && header {
			t.Headers(values...)
			continue
		}
		t.Row(values...)
	}
	return t.String()
}
