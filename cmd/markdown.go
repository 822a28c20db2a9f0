package cmd

import (
	"fmt"
	"log/slog"

	"github.com/charmbracelet/glamour"
)

// renderMarkdown renders md for the terminal with the named glamour style.
// "plain" returns md untouched.
func renderMarkdown(md, style string) (string, error) {
	var opt glamour.TermRendererOption
	switch style {
	case "plain":
		return md, nil
	case "", "auto":
		opt = glamour.WithAutoStyle()
	default:
		opt = glamour.WithStandardStyle(style)
	}
	r, err := glamour.NewTermRenderer(opt, glamour.WithWordWrap(120))
	if err != nil {
		return "", err
	}
	return r.Render(md)
}

func printMarkdown(md string) {
	out, err := renderMarkdown(md, config.Style)
	if err != nil {
		slog.Warn("cannot render markdown, printing it raw", "style", config.Style, "error", err)
		out = md
	}
	fmt.Fprint(stdout, out)
}
