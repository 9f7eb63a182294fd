package main

import (
	"context"
	"flag"

	"github.com/google/subcommands"

	"github.com/shanehull/lmsentiment/internal/config"
	"github.com/shanehull/lmsentiment/internal/logging"
	"github.com/shanehull/lmsentiment/internal/notify"
	"github.com/shanehull/lmsentiment/internal/pipeline"
)

type lexiconCmd struct {
	cfg    *config.Config
	logger *logging.Logger
}

func (*lexiconCmd) Name() string     { return "lexicon" }
func (*lexiconCmd) Synopsis() string { return "print the number of words per lexicon category" }
func (*lexiconCmd) Usage() string {
	return `lmsentiment lexicon [-lexicon <dir>] [-extended]
`
}

func (c *lexiconCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.cfg.Run.LexiconDir, "lexicon", c.cfg.Run.LexiconDir, "Directory holding the Loughran-McDonald word lists")
	f.BoolVar(&c.cfg.Run.ExtendedLexicon, "extended", c.cfg.Run.ExtendedLexicon, "Also load modal, litigious and uncertainty lists")
	f.StringVar(&c.cfg.App.ConsoleStyle, "style", c.cfg.App.ConsoleStyle, "Report style (auto, plain, dark, light, notty)")
}

func (c *lexiconCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	lex, err := pipeline.LoadLexicon(c.cfg)
	if err != nil {
		c.logger.Error("%v", err)
		return subcommands.ExitFailure
	}
	printMarkdown(c.cfg, notify.LexiconMarkdown(lex))
	return subcommands.ExitSuccess
}
