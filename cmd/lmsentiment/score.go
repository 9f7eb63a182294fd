package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/subcommands"

	"github.com/shanehull/lmsentiment/internal/config"
	"github.com/shanehull/lmsentiment/internal/extract"
	"github.com/shanehull/lmsentiment/internal/logging"
	"github.com/shanehull/lmsentiment/internal/notify"
	"github.com/shanehull/lmsentiment/internal/pipeline"
	"github.com/shanehull/lmsentiment/internal/score"
	"github.com/shanehull/lmsentiment/internal/types"
)

type scoreCmd struct {
	cfg     *config.Config
	logger  *logging.Logger
	outcome string
}

func (*scoreCmd) Name() string     { return "score" }
func (*scoreCmd) Synopsis() string { return "score single PDF or text files" }
func (*scoreCmd) Usage() string {
	return `lmsentiment score [-lexicon <dir>] [-extended] [-mode words|fields] [-outcome categorical|continuous] <file>...

  Prints the category counts, the label (categorical) or the sentiment
  score (continuous), and the positive/negative and strong/weak ratios
  of every file.
`
}

func (c *scoreCmd) SetFlags(f *flag.FlagSet) {
	cfg := c.cfg
	f.StringVar(&cfg.Run.LexiconDir, "lexicon", cfg.Run.LexiconDir, "Directory holding the Loughran-McDonald word lists")
	f.BoolVar(&cfg.Run.ExtendedLexicon, "extended", cfg.Run.ExtendedLexicon, "Also load modal, litigious and uncertainty lists")
	f.StringVar(&cfg.Tokenizer.Mode, "mode", cfg.Tokenizer.Mode, "Tokenizer mode (words, fields)")
	f.BoolVar(&cfg.Tokenizer.ExcludeStopwords, "stopwords", cfg.Tokenizer.ExcludeStopwords, "Drop English stopwords before scoring")
	f.StringVar(&c.outcome, "outcome", string(score.Continuous), "Derivation mode (categorical, continuous)")
	f.Var(listFlag{&cfg.Extract.Backends}, "extractors", "Comma-separated extractor backends tried in order (native, pdftotext, gemini)")
	f.StringVar(&cfg.App.ConsoleStyle, "style", cfg.App.ConsoleStyle, "Report style (auto, plain, dark, light, notty)")
}

func (c *scoreCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "Error: at least one file is required")
		return subcommands.ExitUsageError
	}
	cfg := c.cfg
	mode, err := score.ParseMode(c.outcome)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}

	lex, err := pipeline.LoadLexicon(cfg)
	if err != nil {
		c.logger.Error("%v", err)
		return subcommands.ExitFailure
	}
	tok, err := pipeline.NewTokenizer(cfg)
	if err != nil {
		c.logger.Error("%v", err)
		return subcommands.ExitUsageError
	}
	pdfExtractor, err := extract.Build(ctx, extract.Options{
		Backends:      cfg.Extract.Backends,
		Timeout:       cfg.ExtractTimeout(),
		PdftotextPath: cfg.Extract.PdftotextPath,
		MaxChars:      cfg.Extract.MaxChars,
		GeminiAPIKey:  cfg.Extract.GeminiAPIKey,
		GeminiModel:   cfg.Extract.GeminiModel,
	})
	if err != nil {
		c.logger.Error("%v", err)
		return subcommands.ExitUsageError
	}

	var sb strings.Builder
	status := subcommands.ExitSuccess
	for _, path := range f.Args() {
		content, err := os.ReadFile(path)
		if err != nil {
			c.logger.Error("%v", err)
			status = subcommands.ExitFailure
			continue
		}
		doc := types.Document{Name: filepath.Base(path), Content: content}

		var ex extract.Extractor = extract.PlainText{}
		if doc.IsPDF() {
			ex = pdfExtractor
		}
		text, err := ex.Extract(ctx, doc)
		if err != nil {
			c.logger.Error("%v", err)
			status = subcommands.ExitFailure
			continue
		}

		sb.WriteString(notify.DocumentMarkdown(doc.Name, score.Score(tok.Tokenize(text), lex), lex, mode))
	}

	if sb.Len() > 0 {
		printMarkdown(cfg, sb.String())
	}
	return status
}
