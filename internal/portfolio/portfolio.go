/*
Package portfolio turns a ranking into an equal-allocation proposal and writes it as CSV.
*/
package portfolio

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"

	"github.com/shanehull/lmsentiment/internal/rank"
)

// Header is the first row of the exported file.
var Header = []string{"TICKER", "NAME", "AMOUNT_INVESTED"}

// DefaultAmount is the allocation per ticker.
var DefaultAmount = decimal.NewFromInt(200000)

type Position struct {
	Ticker string
	Name   string
	Score  float64
	Amount decimal.Decimal
}

// Proposal lists the positions in ranking order.
type Proposal struct {
	Currency  string
	Positions []Position
}

// Build allocates amount to every ranked entry. Tickers without a display name
// use the ticker itself.
func Build(ranked []rank.Entry, names map[string]string, amount decimal.Decimal, currency string) Proposal {
	p := Proposal{Currency: currency, Positions: make([]Position, 0, len(ranked))}
	for _, e := range ranked {
		name := names[e.Ticker]
		if name == "" {
			name = e.Ticker
		}
		p.Positions = append(p.Positions, Position{Ticker: e.Ticker, Name: name, Score: e.Score, Amount: amount})
	}
	return p
}

func (p Proposal) Total() decimal.Decimal {
	total := decimal.Zero
	for _, pos := range p.Positions {
		total = total.Add(pos.Amount)
	}
	return total
}

// WriteCSV writes the header and one row per position, preserving order.
func WriteCSV(w io.Writer, p Proposal) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, pos := range p.Positions {
		if err := cw.Write([]string{pos.Ticker, pos.Name, pos.Amount.String()}); err != nil {
			return fmt.Errorf("failed to write CSV row for %s: %w", pos.Ticker, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteFile writes the proposal to path through a temporary file.
func WriteFile(path string, p Proposal) (err error) {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".tmp-*.csv")
	if err != nil {
		return fmt.Errorf("failed to create temporary CSV: %w", err)
	}
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()
	if err := WriteCSV(tmp, p); err != nil {
		return err
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temporary CSV: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// FormatAmount renders amount in currency, e.g. "$200,000.00".
func FormatAmount(amount decimal.Decimal, currency string) string {
	// money.New never returns a nil currency, unknown codes included.
	cur := money.New(0, currency).Currency()
	minor := amount.Shift(int32(cur.Fraction))
	return cur.Formatter().Format(minor.IntPart())
}
