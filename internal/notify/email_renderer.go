package notify

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/shanehull/lmsentiment/internal/summary"
)

// RenderedMessage is an email ready to send.
type RenderedMessage struct {
	Subject string
	Text    string
	HTML    string
}

type emailData struct {
	Title string
	RunID string
	Body  template.HTML
}

// HTMLEmailRenderer renders a summary as an HTML email with the markdown report as plain text fallback.
type HTMLEmailRenderer struct {
	tmpl *template.Template
	md   goldmark.Markdown
}

// NewHTMLEmailRenderer creates a renderer with the default email template.
func NewHTMLEmailRenderer() *HTMLEmailRenderer {
	t := template.Must(template.New("email").Parse(emailHTMLTemplate))
	return &HTMLEmailRenderer{
		tmpl: t,
		md:   goldmark.New(goldmark.WithExtensions(extension.Table)),
	}
}

func (r *HTMLEmailRenderer) Render(s summary.Summary) (*RenderedMessage, error) {
	report := Markdown(s)

	var body bytes.Buffer
	if err := r.md.Convert([]byte(report), &body); err != nil {
		return nil, fmt.Errorf("failed to convert report to HTML: %w", err)
	}

	subject := Subject(s)
	var htmlBuf bytes.Buffer
	err := r.tmpl.Execute(&htmlBuf, emailData{
		Title: subject,
		RunID: s.RunID,
		// goldmark drops raw HTML unless WithUnsafe is set.
		Body: template.HTML(body.String()),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to render HTML template: %w", err)
	}

	return &RenderedMessage{
		Subject: subject,
		Text:    report,
		HTML:    htmlBuf.String(),
	}, nil
}

// Subject names the report date and the proposed tickers.
func Subject(s summary.Summary) string {
	if len(s.Proposal.Positions) == 0 {
		return fmt.Sprintf("Sentiment ranking %s: no ticker scored", s.ReportDate)
	}
	tickers := make([]string, 0, len(s.Proposal.Positions))
	for _, p := range s.Proposal.Positions {
		tickers = append(tickers, p.Ticker)
	}
	return fmt.Sprintf("Sentiment ranking %s: %s", s.ReportDate, strings.Join(tickers, ", "))
}
