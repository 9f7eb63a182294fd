package summary

import (
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/shanehull/lmsentiment/internal/corpus"
	"github.com/shanehull/lmsentiment/internal/portfolio"
	"github.com/shanehull/lmsentiment/internal/rank"
)

func TestRecorder(t *testing.T) {
	r, err := NewRecorder("UTC")
	if err != nil {
		t.Fatalf("NewRecorder: %v", err)
	}
	if _, err := uuid.Parse(r.RunID()); err != nil {
		t.Errorf("run id is not a UUID: %q", r.RunID())
	}

	r.RecordScored("Apple", &corpus.Result{Ticker: "AAPL", Mean: 0.1, Scored: 2, Failures: []corpus.Failure{{Name: "x.pdf", Err: errors.New("bad")}}})
	r.RecordScored("", &corpus.Result{Ticker: "MSFT", Mean: 0.3, Scored: 1})
	r.RecordSkipped("DEAD", "Dead Corp", corpus.ErrNoScorableDocuments, &corpus.Result{Failures: []corpus.Failure{{Name: "a.pdf"}, {Name: "b.pdf"}}})
	r.RecordSkipped("GONE", "", errors.New("archive missing"), nil)

	ranking := rank.Rank(nil)
	r.RecordProposal(ranking, portfolio.Proposal{Currency: "USD"})

	s := r.Finish()
	if s.RunID != r.RunID() || s.ReportDate == "" || s.FinishedAt.Before(s.StartedAt) {
		t.Errorf("bad run metadata: %+v", s)
	}
	if len(s.Scored) != 2 || s.Scored[0].Ticker != "AAPL" || s.Scored[1].Mean != 0.3 {
		t.Errorf("Scored = %+v", s.Scored)
	}
	if len(s.Skipped) != 2 || !errors.Is(s.Skipped[0].Err, corpus.ErrNoScorableDocuments) {
		t.Errorf("Skipped = %+v", s.Skipped)
	}
	if s.Skipped[1].Reason() != "archive missing" {
		t.Errorf("Reason = %q", s.Skipped[1].Reason())
	}
	if s.FailedDocuments() != 3 {
		t.Errorf("FailedDocuments = %d, want 3", s.FailedDocuments())
	}
	if s.Proposal.Currency != "USD" {
		t.Errorf("proposal not recorded")
	}

	// Finish returns a copy.
	r.RecordScored("", &corpus.Result{Ticker: "IBM"})
	if len(s.Scored) != 2 {
		t.Error("summary changed after Finish")
	}
}

func TestNewRecorderBadZone(t *testing.T) {
	if _, err := NewRecorder("Mars/Olympus"); err == nil {
		t.Error("unknown time zone should fail")
	}
}

func TestSkippedReasonWithoutError(t *testing.T) {
	if got := (SkippedTicker{}).Reason(); got != "unknown" {
		t.Errorf("Reason = %q", got)
	}
}
