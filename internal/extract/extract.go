/*
Package extract turns document bytes into plain text. Several backends can be
chained; the first one that yields non-blank text wins.
*/
package extract

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shanehull/lmsentiment/internal/types"
)

// ErrExtraction is a per-document, recoverable failure.
var ErrExtraction = errors.New("text extraction failed")

type Extractor interface {
	Extract(ctx context.Context, doc types.Document) (string, error)
}

// Func adapts a plain function to Extractor.
type Func func(ctx context.Context, doc types.Document) (string, error)

func (f Func) Extract(ctx context.Context, doc types.Document) (string, error) { return f(ctx, doc) }

// Named pairs an extractor with the name used in logs and errors.
type Named struct {
	Name string
	Extractor
}

// Chain tries each backend in order.
type Chain []Named

func (c Chain) Extract(ctx context.Context, doc types.Document) (string, error) {
	if len(c) == 0 {
		return "", fmt.Errorf("%w: no extractor configured", ErrExtraction)
	}
	var errs []error
	for _, n := range c {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		text, err := n.Extract(ctx, doc)
		if err == nil && strings.TrimSpace(text) != "" {
			return text, nil
		}
		if err == nil {
			err = errors.New("empty text")
		}
		errs = append(errs, fmt.Errorf("%s: %w", n.Name, err))
	}
	return "", fmt.Errorf("%w: %s: %w", ErrExtraction, doc.Name, errors.Join(errs...))
}

type timeoutExtractor struct {
	next    Extractor
	timeout time.Duration
}

// WithTimeout bounds every call to next. A zero timeout returns next unchanged.
func WithTimeout(next Extractor, timeout time.Duration) Extractor {
	if timeout <= 0 {
		return next
	}
	return &timeoutExtractor{next: next, timeout: timeout}
}

func (t *timeoutExtractor) Extract(ctx context.Context, doc types.Document) (string, error) {
	callCtx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()

	text, err := t.next.Extract(callCtx, doc)
	if err != nil && ctx.Err() == nil && errors.Is(callCtx.Err(), context.DeadlineExceeded) {
		return "", fmt.Errorf("%w: %s: timed out after %s", ErrExtraction, doc.Name, t.timeout)
	}
	return text, err
}

// PlainText accepts documents that already are text.
type PlainText struct{}

func (PlainText) Extract(_ context.Context, doc types.Document) (string, error) {
	if len(doc.Content) >= 4 && string(doc.Content[:4]) == pdfMagic {
		return "", fmt.Errorf("%w: %s is a PDF, not plain text", ErrExtraction, doc.Name)
	}
	return string(doc.Content), nil
}
