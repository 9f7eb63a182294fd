/*
Package corpus scores every document of one ticker and averages the results.
*/
package corpus

import (
	"context"
	"errors"
	"fmt"

	"github.com/shanehull/lmsentiment/internal/archive"
	"github.com/shanehull/lmsentiment/internal/extract"
	"github.com/shanehull/lmsentiment/internal/lexicon"
	"github.com/shanehull/lmsentiment/internal/logging"
	"github.com/shanehull/lmsentiment/internal/score"
	"github.com/shanehull/lmsentiment/internal/tokenize"
	"github.com/shanehull/lmsentiment/internal/types"
)

// ErrNoScorableDocuments is returned when not a single document of a ticker could be scored.
var ErrNoScorableDocuments = errors.New("no scorable documents")

// Source yields the documents of one ticker. A document that could not be read
// is passed with readErr set.
type Source interface {
	Each(ctx context.Context, yield func(doc types.Document, readErr error) error) error
}

// SourceFunc adapts a function to Source.
type SourceFunc func(ctx context.Context, yield func(doc types.Document, readErr error) error) error

func (f SourceFunc) Each(ctx context.Context, yield func(doc types.Document, readErr error) error) error {
	return f(ctx, yield)
}

// ArchiveSource reads the documents of the ZIP archive at path and releases it
// once iteration ends.
func ArchiveSource(path string) Source {
	return SourceFunc(func(ctx context.Context, yield func(types.Document, error) error) error {
		return archive.Walk(ctx, path, yield)
	})
}

// Documents is an in-memory Source.
type Documents []types.Document

func (d Documents) Each(ctx context.Context, yield func(doc types.Document, readErr error) error) error {
	for _, doc := range d {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := yield(doc, nil); err != nil {
			return err
		}
	}
	return nil
}

// DocumentScore is the outcome of one successfully scored document.
type DocumentScore struct {
	Name   string
	Tokens int
	Score  float64
}

// Failure records a document that was skipped and why.
type Failure struct {
	Name string
	Err  error
}

// Result is the aggregate of one ticker.
type Result struct {
	Ticker    string
	Mean      float64
	Scored    int
	Documents []DocumentScore
	Failures  []Failure
}

// Aggregator holds the read-only collaborators shared by every ticker of a run.
type Aggregator struct {
	Extractor extract.Extractor
	Tokenizer *tokenize.Tokenizer
	Lexicon   *lexicon.Lexicon
	Logger    *logging.Logger

	// Accept filters documents before extraction. Nil keeps .pdf files only.
	Accept func(types.Document) bool
}

func (a *Aggregator) accept(doc types.Document) bool {
	if a.Accept == nil {
		return doc.IsPDF()
	}
	return a.Accept(doc)
}

// Aggregate scores every accepted document of src in continuous mode and returns
// the mean over the documents that scored. Documents that fail to read, extract
// or tokenize are recorded as failures and skipped. When none scored, the
// returned error wraps ErrNoScorableDocuments and still carries the failures.
// A cancelled context returns ctx.Err() and no result.
func (a *Aggregator) Aggregate(ctx context.Context, ticker string, src Source) (*Result, error) {
	if a.Extractor == nil || a.Tokenizer == nil || a.Lexicon == nil {
		return nil, fmt.Errorf("%w: aggregator needs an extractor, a tokenizer and a lexicon", types.ErrConfiguration)
	}
	log := a.Logger
	if log == nil {
		log = logging.NewDiscardLogger()
	}

	res := &Result{Ticker: ticker}
	var sum float64

	fail := func(name string, err error) {
		log.Warn("%s: skipping %s: %v", ticker, name, err)
		res.Failures = append(res.Failures, Failure{Name: name, Err: err})
	}

	err := src.Each(ctx, func(doc types.Document, readErr error) error {
		if readErr != nil {
			fail(doc.Name, readErr)
			return nil
		}
		if !a.accept(doc) {
			log.Debug("%s: ignoring %s", ticker, doc.Name)
			return nil
		}

		text, err := a.Extractor.Extract(ctx, doc)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return ctxErr
			}
			fail(doc.Name, err)
			return nil
		}

		result := score.Score(a.Tokenizer.Tokenize(text), a.Lexicon)
		s, err := result.Sentiment()
		if err != nil {
			fail(doc.Name, err)
			return nil
		}

		log.Debug("%s: %s scored %.6f over %d tokens", ticker, doc.Name, s, result.Tokens)
		sum += s
		res.Scored++
		res.Documents = append(res.Documents, DocumentScore{Name: doc.Name, Tokens: result.Tokens, Score: s})
		return nil
	})
	if ctxErr := ctx.Err(); ctxErr != nil {
		return nil, ctxErr
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read documents of %s: %w", ticker, err)
	}

	if res.Scored == 0 {
		return res, fmt.Errorf("%w for %s (%d failed)", ErrNoScorableDocuments, ticker, len(res.Failures))
	}
	res.Mean = sum / float64(res.Scored)
	return res, nil
}
