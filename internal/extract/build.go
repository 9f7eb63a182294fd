package extract

import (
	"context"
	"fmt"
	"strings"
	"time"
)

const (
	BackendNative    = "native"
	BackendPdftotext = "pdftotext"
	BackendGemini    = "gemini"
)

type Options struct {
	Backends      []string
	Timeout       time.Duration
	PdftotextPath string
	MaxChars      int
	GeminiAPIKey  string
	GeminiModel   string
}

// Build assembles the configured backends into a chain bounded by opts.Timeout.
func Build(ctx context.Context, opts Options) (Extractor, error) {
	var chain Chain
	for _, name := range opts.Backends {
		switch strings.ToLower(strings.TrimSpace(name)) {
		case BackendNative:
			chain = append(chain, Named{Name: BackendNative, Extractor: Native{MaxChars: opts.MaxChars}})
		case BackendPdftotext:
			chain = append(chain, Named{Name: BackendPdftotext, Extractor: Pdftotext{Path: opts.PdftotextPath}})
		case BackendGemini:
			g, err := NewGemini(ctx, opts.GeminiAPIKey, opts.GeminiModel)
			if err != nil {
				return nil, err
			}
			chain = append(chain, Named{Name: BackendGemini, Extractor: g})
		case "":
		default:
			return nil, fmt.Errorf("unknown extractor backend %q", name)
		}
	}
	if len(chain) == 0 {
		return nil, fmt.Errorf("no extractor backend configured")
	}
	return WithTimeout(chain, opts.Timeout), nil
}
