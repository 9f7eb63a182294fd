package extract

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/shanehull/lmsentiment/internal/types"
)

const pdfMagic = "%PDF"

// Native extracts text in-process, page by page.
type Native struct {
	// MaxChars stops reading once this much text was collected. Zero means no limit.
	MaxChars int
}

// Extract recovers from panics raised by the PDF parser on corrupt files.
func (n Native) Extract(ctx context.Context, doc types.Document) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			text = ""
			err = fmt.Errorf("%w: %s: panic during PDF parsing: %v", ErrExtraction, doc.Name, r)
		}
	}()

	if len(doc.Content) < 4 || string(doc.Content[:4]) != pdfMagic {
		return "", fmt.Errorf("%w: %s is not a PDF (%d bytes)", ErrExtraction, doc.Name, len(doc.Content))
	}

	r, err := pdf.NewReader(bytes.NewReader(doc.Content), int64(len(doc.Content)))
	if err != nil {
		return "", fmt.Errorf("%w: %s: failed to open PDF: %v", ErrExtraction, doc.Name, err)
	}

	var sb strings.Builder
	for i := 1; i <= r.NumPage(); i++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		pageText, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		sb.WriteString(pageText)
		sb.WriteString("\n")

		if n.MaxChars > 0 && sb.Len() >= n.MaxChars {
			break
		}
	}

	text = sb.String()
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("%w: %s: no text layer found, file may be image-based", ErrExtraction, doc.Name)
	}
	return text, nil
}
