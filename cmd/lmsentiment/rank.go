package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/shanehull/lmsentiment/internal/config"
	"github.com/shanehull/lmsentiment/internal/logging"
	"github.com/shanehull/lmsentiment/internal/notify"
	"github.com/shanehull/lmsentiment/internal/pipeline"
)

type rankCmd struct {
	cfg         *config.Config
	logger      *logging.Logger
	tickersFile string
	email       bool
}

func (*rankCmd) Name() string     { return "rank" }
func (*rankCmd) Synopsis() string { return "score every ticker archive, rank them and export the proposal" }
func (*rankCmd) Usage() string {
	return `lmsentiment rank [-data <dir>] [-lexicon <dir>] [-tickers <file.yaml>] [-top n] [-amount a] [-o <file.csv>] [-email]

  Scores the PDF filings of every <TICKER>.zip archive, ranks tickers by mean
  sentiment and writes the top of the ranking as TICKER,NAME,AMOUNT_INVESTED.
  Tickers listed with -tickers are upper-cased and matched to archive file
  names regardless of case.
`
}

func (c *rankCmd) SetFlags(f *flag.FlagSet) {
	cfg := c.cfg
	f.StringVar(&cfg.Run.DataDir, "data", cfg.Run.DataDir, "Directory holding one <TICKER>.zip per ticker")
	f.StringVar(&cfg.Run.LexiconDir, "lexicon", cfg.Run.LexiconDir, "Directory holding the Loughran-McDonald word lists")
	f.BoolVar(&cfg.Run.ExtendedLexicon, "extended", cfg.Run.ExtendedLexicon, "Also load modal, litigious and uncertainty lists")
	f.StringVar(&c.tickersFile, "tickers", "", "YAML file listing tickers and display names (overrides LMS_TICKERS_FILE)")
	f.IntVar(&cfg.Run.TopN, "top", cfg.Run.TopN, "Number of tickers in the proposal, 0 for all")
	f.Var(decimalFlag{&cfg.Run.Amount}, "amount", "Amount invested per ticker")
	f.StringVar(&cfg.Run.Currency, "currency", cfg.Run.Currency, "Currency of the amount")
	f.StringVar(&cfg.Run.Output, "o", cfg.Run.Output, "Output CSV path")
	f.StringVar(&cfg.Tokenizer.Mode, "mode", cfg.Tokenizer.Mode, "Tokenizer mode (words, fields)")
	f.BoolVar(&cfg.Tokenizer.ExcludeStopwords, "stopwords", cfg.Tokenizer.ExcludeStopwords, "Drop English stopwords before scoring")
	f.Var(listFlag{&cfg.Extract.Backends}, "extractors", "Comma-separated extractor backends tried in order (native, pdftotext, gemini)")
	f.StringVar(&cfg.App.ConsoleStyle, "style", cfg.App.ConsoleStyle, "Report style (auto, plain, dark, light, notty)")
	f.BoolVar(&c.email, "email", false, "Email the report when SMTP settings are present")
}

func (c *rankCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg := c.cfg
	if c.tickersFile != "" {
		if err := cfg.LoadTickers(c.tickersFile); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitUsageError
		}
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}

	p, err := pipeline.New(ctx, cfg, c.logger)
	if err != nil {
		c.logger.Error("%v", err)
		return subcommands.ExitFailure
	}
	tickers, err := pipeline.Tickers(cfg.Run.DataDir, cfg.Run.Tickers)
	if err != nil {
		c.logger.Error("%v", err)
		return subcommands.ExitFailure
	}

	s, err := p.Run(ctx, tickers)
	if err != nil {
		c.logger.Error("run aborted: %v", err)
		return subcommands.ExitFailure
	}

	printMarkdown(cfg, notify.Markdown(s))

	if c.email {
		if !cfg.EmailEnabled() {
			c.logger.Warn("email requested but SMTP settings are incomplete")
			return subcommands.ExitSuccess
		}
		msg, err := notify.NewHTMLEmailRenderer().Render(s)
		if err != nil {
			c.logger.Error("%v", err)
			return subcommands.ExitFailure
		}
		sender := notify.NewEmailSender(notify.EmailConfig{
			SMTPServer: cfg.Email.SMTPServer,
			SMTPPort:   cfg.Email.SMTPPort,
			SMTPUser:   cfg.Email.SMTPUser,
			SMTPPass:   cfg.Email.SMTPPass,
			FromEmail:  cfg.Email.FromEmail,
			ToEmail:    cfg.Email.ToEmail,
			Enabled:    true,
		}, c.logger)
		if err := sender.Send(msg); err != nil {
			return subcommands.ExitFailure
		}
	}
	return subcommands.ExitSuccess
}
