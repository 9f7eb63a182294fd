/*
Package summary records which tickers a run scored and which it skipped.
*/
package summary

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/shanehull/lmsentiment/internal/corpus"
	"github.com/shanehull/lmsentiment/internal/portfolio"
	"github.com/shanehull/lmsentiment/internal/rank"
)

type ScoredTicker struct {
	Ticker   string
	Name     string
	Mean     float64
	Scored   int
	Failures []corpus.Failure
}

type SkippedTicker struct {
	Ticker   string
	Name     string
	Err      error
	Failures []corpus.Failure
}

func (s SkippedTicker) Reason() string {
	if s.Err == nil {
		return "unknown"
	}
	return s.Err.Error()
}

// Summary is the outcome of one run.
type Summary struct {
	RunID      string
	ReportDate string
	StartedAt  time.Time
	FinishedAt time.Time
	Scored     []ScoredTicker
	Skipped    []SkippedTicker
	Ranking    []rank.Entry
	Proposal   portfolio.Proposal
}

// FailedDocuments counts skipped documents over every ticker.
func (s Summary) FailedDocuments() int {
	n := 0
	for _, t := range s.Scored {
		n += len(t.Failures)
	}
	for _, t := range s.Skipped {
		n += len(t.Failures)
	}
	return n
}

// Recorder collects the summary while a run progresses. It is safe for
// concurrent use.
type Recorder struct {
	summary        Summary
	mutex          sync.Mutex
	reportLocation *time.Location
	now            func() time.Time
}

// NewRecorder starts a run. tzName selects the zone of the report date; empty means UTC.
func NewRecorder(tzName string) (*Recorder, error) {
	loc, err := time.LoadLocation(tzName)
	if err != nil {
		return nil, fmt.Errorf("invalid time zone name '%s': %w", tzName, err)
	}
	r := &Recorder{reportLocation: loc, now: time.Now}
	r.summary.RunID = uuid.NewString()
	r.summary.StartedAt = r.now().In(loc)
	r.summary.ReportDate = r.summary.StartedAt.Format("2006-01-02")
	return r, nil
}

func (r *Recorder) RunID() string {
	return r.summary.RunID
}

func (r *Recorder) RecordScored(name string, res *corpus.Result) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	r.summary.Scored = append(r.summary.Scored, ScoredTicker{
		Ticker:   res.Ticker,
		Name:     name,
		Mean:     res.Mean,
		Scored:   res.Scored,
		Failures: res.Failures,
	})
}

// RecordSkipped marks ticker as excluded from the ranking. res may be nil when
// the ticker failed before any document was read.
func (r *Recorder) RecordSkipped(ticker, name string, reason error, res *corpus.Result) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	s := SkippedTicker{Ticker: ticker, Name: name, Err: reason}
	if res != nil {
		s.Failures = res.Failures
	}
	r.summary.Skipped = append(r.summary.Skipped, s)
}

func (r *Recorder) RecordProposal(ranking []rank.Entry, proposal portfolio.Proposal) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	r.summary.Ranking = ranking
	r.summary.Proposal = proposal
}

// Finish stamps the end time and returns a copy of the summary.
func (r *Recorder) Finish() Summary {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	r.summary.FinishedAt = r.now().In(r.reportLocation)
	s := r.summary
	s.Scored = append([]ScoredTicker(nil), r.summary.Scored...)
	s.Skipped = append([]SkippedTicker(nil), r.summary.Skipped...)
	s.Ranking = append([]rank.Entry(nil), r.summary.Ranking...)
	return s
}
