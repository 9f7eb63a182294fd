package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/google/subcommands"

	"github.com/shanehull/lmsentiment/internal/archive"
	"github.com/shanehull/lmsentiment/internal/asx"
	"github.com/shanehull/lmsentiment/internal/config"
	"github.com/shanehull/lmsentiment/internal/logging"
)

type fetchCmd struct {
	cfg    *config.Config
	logger *logging.Logger
}

func (*fetchCmd) Name() string     { return "fetch" }
func (*fetchCmd) Synopsis() string { return "download ASX announcements into <TICKER>.zip archives" }
func (*fetchCmd) Usage() string {
	return `lmsentiment fetch [-data <dir>] [-months n] [-s] [TICKER...]

  Downloads the announcements of each ticker (or of every ticker of the
  tickers file when none is given) and stores them as <dir>/<TICKER>.zip.
`
}

func (c *fetchCmd) SetFlags(f *flag.FlagSet) {
	cfg := c.cfg
	f.StringVar(&cfg.Run.DataDir, "data", cfg.Run.DataDir, "Directory receiving one <TICKER>.zip per ticker")
	f.IntVar(&cfg.Fetch.Months, "months", cfg.Fetch.Months, "Number of months of announcements to download")
	f.BoolVar(&cfg.Fetch.PriceSensitiveOnly, "s", cfg.Fetch.PriceSensitiveOnly, "Download only price sensitive announcements")
}

func (c *fetchCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg := c.cfg

	tickers := f.Args()
	if len(tickers) == 0 {
		for _, t := range cfg.Run.Tickers {
			tickers = append(tickers, t.Symbol)
		}
	}
	if len(tickers) == 0 {
		fmt.Fprintln(os.Stderr, "Error: no ticker given and no tickers file configured")
		return subcommands.ExitUsageError
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	if err := os.MkdirAll(cfg.Run.DataDir, 0o755); err != nil {
		c.logger.Error("failed to create data directory %s: %v", cfg.Run.DataDir, err)
		return subcommands.ExitFailure
	}

	client := asx.NewClient(cfg.Fetch.BaseURL, cfg.FetchTimeout(), c.logger)
	status := subcommands.ExitSuccess
	for _, ticker := range tickers {
		ticker = strings.ToUpper(strings.TrimSpace(ticker))

		docs, err := client.FetchTicker(ctx, ticker, cfg.Fetch.Months, cfg.Fetch.PriceSensitiveOnly)
		if err != nil {
			if ctx.Err() != nil {
				c.logger.Error("fetch aborted: %v", ctx.Err())
				return subcommands.ExitFailure
			}
			c.logger.Warn("%s: %v", ticker, err)
			status = subcommands.ExitFailure
			continue
		}
		if len(docs) == 0 {
			c.logger.Warn("%s: no announcement downloaded, archive not written", ticker)
			continue
		}

		path := archive.PathFor(cfg.Run.DataDir, ticker)
		if err := archive.Write(path, docs); err != nil {
			c.logger.Error("%s: %v", ticker, err)
			status = subcommands.ExitFailure
			continue
		}
		c.logger.Info("%s: wrote %d documents to %s", ticker, len(docs), path)
	}
	return status
}
