/*
Package notify renders a run summary as a markdown report and delivers it to
the terminal or by email.
*/
package notify

import (
	"fmt"
	"strings"

	"github.com/shanehull/lmsentiment/internal/portfolio"
	"github.com/shanehull/lmsentiment/internal/summary"
)

// Markdown renders the ranking, the proposal, and the scored and skipped tickers of s.
func Markdown(s summary.Summary) string {
	var sb strings.Builder

	sb.WriteString("# Sentiment ranking\n\n")
	sb.WriteString(fmt.Sprintf("Run `%s`, report date %s.\n\n", s.RunID, s.ReportDate))

	sb.WriteString("## Proposal\n\n")
	if len(s.Proposal.Positions) == 0 {
		sb.WriteString("No ticker could be scored.\n\n")
	} else {
		sb.WriteString("| # | Ticker | Name | Score | Amount invested |\n")
		sb.WriteString("|---:|---|---|---:|---:|\n")
		for i, p := range s.Proposal.Positions {
			sb.WriteString(fmt.Sprintf("| %d | %s | %s | %.6f | %s |\n",
				i+1, cell(p.Ticker), cell(p.Name), p.Score, portfolio.FormatAmount(p.Amount, s.Proposal.Currency)))
		}
		sb.WriteString(fmt.Sprintf("\nTotal invested: %s across %d tickers.\n\n",
			portfolio.FormatAmount(s.Proposal.Total(), s.Proposal.Currency), len(s.Proposal.Positions)))
	}

	if len(s.Ranking) > len(s.Proposal.Positions) {
		sb.WriteString("## Full ranking\n\n")
		sb.WriteString("| # | Ticker | Score |\n")
		sb.WriteString("|---:|---|---:|\n")
		for i, e := range s.Ranking {
			sb.WriteString(fmt.Sprintf("| %d | %s | %.6f |\n", i+1, cell(e.Ticker), e.Score))
		}
		sb.WriteString("\n")
	}

	sb.WriteString("## Scored tickers\n\n")
	if len(s.Scored) == 0 {
		sb.WriteString("None.\n\n")
	} else {
		sb.WriteString("| Ticker | Name | Mean score | Documents scored | Documents skipped |\n")
		sb.WriteString("|---|---|---:|---:|---:|\n")
		for _, t := range s.Scored {
			sb.WriteString(fmt.Sprintf("| %s | %s | %.6f | %d | %d |\n",
				cell(t.Ticker), cell(t.Name), t.Mean, t.Scored, len(t.Failures)))
		}
		sb.WriteString("\n")
	}

	sb.WriteString("## Skipped tickers\n\n")
	if len(s.Skipped) == 0 {
		sb.WriteString("None.\n\n")
	} else {
		sb.WriteString("| Ticker | Reason | Documents skipped |\n")
		sb.WriteString("|---|---|---:|\n")
		for _, t := range s.Skipped {
			sb.WriteString(fmt.Sprintf("| %s | %s | %d |\n", cell(t.Ticker), cell(t.Reason()), len(t.Failures)))
		}
		sb.WriteString("\n")
	}

	if s.FailedDocuments() > 0 {
		sb.WriteString("## Skipped documents\n\n")
		for _, t := range s.Scored {
			for _, f := range t.Failures {
				sb.WriteString(fmt.Sprintf("- %s `%s`: %s\n", t.Ticker, f.Name, inline(f.Err)))
			}
		}
		for _, t := range s.Skipped {
			for _, f := range t.Failures {
				sb.WriteString(fmt.Sprintf("- %s `%s`: %s\n", t.Ticker, f.Name, inline(f.Err)))
			}
		}
	}

	return sb.String()
}

// cell keeps s on one table row.
func cell(s string) string {
	s = strings.ReplaceAll(s, "|", `\|`)
	return strings.Join(strings.Fields(s), " ")
}

func inline(err error) string {
	if err == nil {
		return "unknown"
	}
	return strings.Join(strings.Fields(err.Error()), " ")
}
