package extract

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/shanehull/lmsentiment/internal/types"
)

// Pdftotext shells out to poppler's pdftotext.
type Pdftotext struct {
	// Path to the binary; "pdftotext" resolves through PATH.
	Path string
}

func (p Pdftotext) Extract(ctx context.Context, doc types.Document) (string, error) {
	bin := p.Path
	if bin == "" {
		bin = "pdftotext"
	}

	tmpFile, err := os.CreateTemp("", "lmsentiment_*.pdf")
	if err != nil {
		return "", fmt.Errorf("%w: failed to create temporary file: %v", ErrExtraction, err)
	}
	tmpFileName := tmpFile.Name()
	defer os.Remove(tmpFileName)

	_, writeErr := tmpFile.Write(doc.Content)
	if closeErr := tmpFile.Close(); writeErr == nil {
		writeErr = closeErr
	}
	if writeErr != nil {
		return "", fmt.Errorf("%w: failed to write PDF bytes to temp file: %v", ErrExtraction, writeErr)
	}

	cmd := exec.CommandContext(ctx, bin, "-raw", tmpFileName, "-")

	var out bytes.Buffer
	var stderr bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", ctxErr
		}
		if errors.Is(err, exec.ErrNotFound) {
			return "", fmt.Errorf("%w: pdftotext binary not found, please ensure poppler-utils is installed: %v", ErrExtraction, err)
		}
		return "", fmt.Errorf("%w: %s: pdftotext failed: %v. Stderr: %s", ErrExtraction, doc.Name, err, strings.TrimSpace(stderr.String()))
	}

	text := out.String()
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("%w: %s: pdftotext extracted empty text, file may be image-based or protected", ErrExtraction, doc.Name)
	}
	return text, nil
}
