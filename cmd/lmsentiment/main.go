package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path"
	"syscall"

	"github.com/google/subcommands"

	"github.com/shanehull/lmsentiment/internal/config"
	"github.com/shanehull/lmsentiment/internal/logging"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(int(subcommands.ExitUsageError))
	}
	logger := logging.NewLogger(cfg.App.LogLevel)

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	commander.Register(&rankCmd{cfg: cfg, logger: logger}, "")
	commander.Register(&scoreCmd{cfg: cfg, logger: logger}, "")
	commander.Register(&lexiconCmd{cfg: cfg, logger: logger}, "")
	commander.Register(&fetchCmd{cfg: cfg, logger: logger}, "")

	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	status := commander.Execute(ctx)
	stop()
	os.Exit(int(status))
}
