package notify

import (
	"fmt"
	"io"

	"github.com/charmbracelet/glamour"
)

const (
	StyleAuto  = "auto"
	StylePlain = "plain"
)

// Console prints markdown to a terminal through glamour. StylePlain, or any
// rendering failure, prints the markdown as is.
type Console struct {
	Out   io.Writer
	Style string // auto, plain, or a glamour standard style such as dark or notty
	Width int
}

func (c Console) Print(markdown string) error {
	out, err := c.render(markdown)
	if err != nil {
		out = markdown
	}
	_, err = io.WriteString(c.Out, out)
	return err
}

func (c Console) render(markdown string) (string, error) {
	opts := []glamour.TermRendererOption{}
	switch c.Style {
	case StylePlain:
		return markdown, nil
	case "", StyleAuto:
		opts = append(opts, glamour.WithAutoStyle())
	default:
		opts = append(opts, glamour.WithStandardStyle(c.Style))
	}
	if c.Width > 0 {
		opts = append(opts, glamour.WithWordWrap(c.Width))
	}

	r, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		return "", fmt.Errorf("failed to create terminal renderer: %w", err)
	}
	return r.Render(markdown)
}
