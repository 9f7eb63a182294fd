package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/shanehull/lmsentiment/internal/config"
	"github.com/shanehull/lmsentiment/internal/notify"
)

func printMarkdown(cfg *config.Config, md string) {
	console := notify.Console{Out: os.Stdout, Style: cfg.App.ConsoleStyle, Width: 100}
	if err := console.Print(md); err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to print report: %v\n", err)
	}
}

// decimalFlag binds a decimal.Decimal to a flag.
type decimalFlag struct{ d *decimal.Decimal }

func (f decimalFlag) String() string {
	if f.d == nil {
		return ""
	}
	return f.d.String()
}

func (f decimalFlag) Set(s string) error {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return err
	}
	*f.d = d
	return nil
}

// listFlag binds a comma-separated list to a flag.
type listFlag struct{ items *[]string }

func (f listFlag) String() string {
	if f.items == nil {
		return ""
	}
	return strings.Join(*f.items, ",")
}

func (f listFlag) Set(s string) error {
	var items []string
	for _, part := range strings.Split(s, ",") {
		if trimmed := strings.ToLower(strings.TrimSpace(part)); trimmed != "" {
			items = append(items, trimmed)
		}
	}
	*f.items = items
	return nil
}
