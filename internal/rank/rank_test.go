package rank

import (
	"reflect"
	"testing"
)

func TestRankIsStableOnTies(t *testing.T) {
	in := []Entry{{"AAPL", 0.5}, {"MSFT", 0.5}, {"IBM", 0.3}}
	got := Rank(in)
	want := []Entry{{"AAPL", 0.5}, {"MSFT", 0.5}, {"IBM", 0.3}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Rank = %v, want %v", got, want)
	}

	in = []Entry{{"IBM", 0.3}, {"MSFT", 0.5}, {"AAPL", 0.5}}
	got = Rank(in)
	want = []Entry{{"MSFT", 0.5}, {"AAPL", 0.5}, {"IBM", 0.3}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Rank = %v, want %v", got, want)
	}
}

func TestRankDoesNotModifyInput(t *testing.T) {
	in := []Entry{{"A", -0.1}, {"B", 0.2}}
	Rank(in)
	if in[0].Ticker != "A" {
		t.Errorf("input was reordered: %v", in)
	}
}

func TestTop(t *testing.T) {
	ranked := Rank([]Entry{{"A", 0.1}, {"B", 0.4}, {"C", -0.2}, {"D", 0.3}})
	tests := []struct {
		n    int
		want []string
	}{
		{2, []string{"B", "D"}},
		{0, []string{"B", "D", "A", "C"}},
		{-1, []string{"B", "D", "A", "C"}},
		{10, []string{"B", "D", "A", "C"}},
	}
	for _, tt := range tests {
		var got []string
		for _, e := range Top(ranked, tt.n) {
			got = append(got, e.Ticker)
		}
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("Top(%d) = %v, want %v", tt.n, got, tt.want)
		}
	}
	if len(ranked) != 4 {
		t.Error("Top must not shrink the full ranking")
	}
}

func TestRankEmpty(t *testing.T) {
	if got := Rank(nil); len(got) != 0 {
		t.Errorf("Rank(nil) = %v", got)
	}
}
