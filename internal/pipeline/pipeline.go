/*
Package pipeline runs one scoring pass: every ticker is aggregated, the scored
ones are ranked, and the top of the ranking becomes the exported proposal.
*/
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/shanehull/lmsentiment/internal/archive"
	"github.com/shanehull/lmsentiment/internal/config"
	"github.com/shanehull/lmsentiment/internal/corpus"
	"github.com/shanehull/lmsentiment/internal/extract"
	"github.com/shanehull/lmsentiment/internal/lexicon"
	"github.com/shanehull/lmsentiment/internal/logging"
	"github.com/shanehull/lmsentiment/internal/portfolio"
	"github.com/shanehull/lmsentiment/internal/rank"
	"github.com/shanehull/lmsentiment/internal/summary"
	"github.com/shanehull/lmsentiment/internal/tokenize"
	"github.com/shanehull/lmsentiment/internal/types"
)

// Ticker is one unit of work: a symbol, its display name and its archive.
type Ticker struct {
	Symbol string
	Name   string
	Path   string
}

// Tickers returns the listed tickers in order, each pointing at its archive in
// dataDir. Archive file names match listed symbols regardless of case. Without
// a list, every archive of dataDir is used in file name order.
func Tickers(dataDir string, listed []config.Ticker) ([]Ticker, error) {
	if len(listed) > 0 {
		found := archivesBySymbol(dataDir)
		tickers := make([]Ticker, 0, len(listed))
		for _, t := range listed {
			path, ok := found[strings.ToUpper(t.Symbol)]
			if !ok {
				path = archive.PathFor(dataDir, t.Symbol)
			}
			tickers = append(tickers, Ticker{Symbol: t.Symbol, Name: t.Name, Path: path})
		}
		return tickers, nil
	}

	entries, err := archive.Discover(dataDir)
	if err != nil {
		return nil, err
	}
	tickers := make([]Ticker, 0, len(entries))
	for _, e := range entries {
		tickers = append(tickers, Ticker{Symbol: e.Ticker, Path: e.Path})
	}
	return tickers, nil
}

// archivesBySymbol maps upper-cased tickers to archive paths. Discover sorts
// by name, so AAPL.zip wins over aapl.zip when both exist. An unreadable
// directory yields an empty map and every listed ticker is later reported
// missing.
func archivesBySymbol(dataDir string) map[string]string {
	entries, err := archive.Discover(dataDir)
	if err != nil {
		return nil
	}
	found := make(map[string]string, len(entries))
	for _, e := range entries {
		key := strings.ToUpper(e.Ticker)
		if _, ok := found[key]; !ok {
			found[key] = e.Path
		}
	}
	return found
}

type Pipeline struct {
	Aggregator *corpus.Aggregator
	Logger     *logging.Logger
	TopN       int
	Amount     decimal.Decimal
	Currency   string
	TimeZone   string
	// Output is the CSV path; empty skips the export.
	Output string
}

// New loads the lexicon and builds the tokenizer and extractor chain described
// by cfg. Lexicon and tokenizer errors are fatal for the run.
func New(ctx context.Context, cfg *config.Config, logger *logging.Logger) (*Pipeline, error) {
	log := logger
	if log == nil {
		log = logging.NewDiscardLogger()
	}
	lex, err := LoadLexicon(cfg)
	if err != nil {
		return nil, err
	}
	tok, err := NewTokenizer(cfg)
	if err != nil {
		return nil, err
	}
	if sw := tok.Stopwords(); sw != nil {
		log.Info("Tokenizer: %s mode, excluding %d stopwords from %s", tok.Mode(), sw.Len(), sw.Version())
	} else {
		log.Info("Tokenizer: %s mode, stopwords kept", tok.Mode())
	}
	ex, err := extract.Build(ctx, extract.Options{
		Backends:      cfg.Extract.Backends,
		Timeout:       cfg.ExtractTimeout(),
		PdftotextPath: cfg.Extract.PdftotextPath,
		MaxChars:      cfg.Extract.MaxChars,
		GeminiAPIKey:  cfg.Extract.GeminiAPIKey,
		GeminiModel:   cfg.Extract.GeminiModel,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", types.ErrConfiguration, err)
	}

	return &Pipeline{
		Aggregator: &corpus.Aggregator{Extractor: ex, Tokenizer: tok, Lexicon: lex, Logger: logger},
		Logger:     logger,
		TopN:       cfg.Run.TopN,
		Amount:     cfg.Run.Amount,
		Currency:   cfg.Run.Currency,
		TimeZone:   cfg.App.TimeZone,
		Output:     cfg.Run.Output,
	}, nil
}

// LoadLexicon reads the Loughran-McDonald lists from the configured directory.
func LoadLexicon(cfg *config.Config) (*lexicon.Lexicon, error) {
	return lexicon.Load(lexicon.DefaultFiles(cfg.Run.LexiconDir, cfg.Run.ExtendedLexicon))
}

func NewTokenizer(cfg *config.Config) (*tokenize.Tokenizer, error) {
	mode, err := tokenize.ParseMode(cfg.Tokenizer.Mode)
	if err != nil {
		return nil, err
	}
	var stopwords *tokenize.StopwordSet
	if cfg.Tokenizer.ExcludeStopwords {
		if cfg.Tokenizer.StopwordsFile != "" {
			if stopwords, err = tokenize.LoadStopwords(cfg.Tokenizer.StopwordsFile); err != nil {
				return nil, err
			}
		} else {
			stopwords = tokenize.DefaultStopwords()
		}
	}
	return tokenize.New(tokenize.Options{Mode: mode, ExcludeStopwords: cfg.Tokenizer.ExcludeStopwords, Stopwords: stopwords})
}

// Run aggregates every ticker in order. A ticker that fails is recorded as
// skipped and the run carries on. Cancellation returns ctx.Err() and no summary.
func (p *Pipeline) Run(ctx context.Context, tickers []Ticker) (summary.Summary, error) {
	log := p.Logger
	if log == nil {
		log = logging.NewDiscardLogger()
	}
	rec, err := summary.NewRecorder(p.TimeZone)
	if err != nil {
		return summary.Summary{}, err
	}
	log.Info("Run %s: scoring %d tickers", rec.RunID(), len(tickers))

	names := make(map[string]string, len(tickers))
	scores := make([]rank.Entry, 0, len(tickers))
	for i, t := range tickers {
		if err := ctx.Err(); err != nil {
			return summary.Summary{}, err
		}
		names[t.Symbol] = t.Name
		log.Info("Processing... %d/%d (%s)", i+1, len(tickers), t.Symbol)

		res, err := p.Aggregator.Aggregate(ctx, t.Symbol, corpus.ArchiveSource(t.Path))
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return summary.Summary{}, ctxErr
			}
			if errors.Is(err, types.ErrConfiguration) {
				return summary.Summary{}, err
			}
			log.Warn("%s: skipped: %v", t.Symbol, err)
			rec.RecordSkipped(t.Symbol, t.Name, err, res)
			continue
		}

		log.Info("%s: mean %.6f over %d documents (%d skipped)", t.Symbol, res.Mean, res.Scored, len(res.Failures))
		rec.RecordScored(t.Name, res)
		scores = append(scores, rank.Entry{Ticker: t.Symbol, Score: res.Mean})
	}

	ranked := rank.Rank(scores)
	amount := p.Amount
	if amount.IsZero() {
		amount = portfolio.DefaultAmount
	}
	proposal := portfolio.Build(rank.Top(ranked, p.TopN), names, amount, p.Currency)
	rec.RecordProposal(ranked, proposal)

	if p.Output != "" {
		if err := portfolio.WriteFile(p.Output, proposal); err != nil {
			return summary.Summary{}, err
		}
		log.Info("Wrote %d positions to %s", len(proposal.Positions), p.Output)
	}
	return rec.Finish(), nil
}
