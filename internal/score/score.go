/*
Package score counts lexicon category hits in a token sequence and derives a
categorical label or a continuous sentiment score from the counts.
*/
package score

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shanehull/lmsentiment/internal/lexicon"
	"github.com/shanehull/lmsentiment/internal/tokenize"
)

// ErrEmptyDocument is returned when a continuous score is requested for a
// document without tokens.
var ErrEmptyDocument = errors.New("document has no tokens")

type Label string

const (
	Uncertain      Label = "uncertain"
	LitigiousFlag  Label = "litigious-flag"
	StrongPositive Label = "strong_positive"
	StrongNegative Label = "strong_negative"
	Positive       Label = "positive"
	Negative       Label = "negative"
	Neutral        Label = "neutral"
)

// Mode selects how a Result is turned into an Outcome.
type Mode string

const (
	Categorical Mode = "categorical"
	Continuous  Mode = "continuous"
)

func ParseMode(s string) (Mode, error) {
	switch m := Mode(strings.ToLower(strings.TrimSpace(s))); m {
	case Categorical, Continuous:
		return m, nil
	}
	return "", fmt.Errorf("unknown score mode %q", s)
}

// Counts holds the number of tokens found in each loaded category.
type Counts map[lexicon.Category]int

// Result is the outcome of counting one document. It is a pure function of
// the tokens and the lexicon.
type Result struct {
	Tokens int
	Counts Counts
}

// Score counts, in a single pass over tokens, the tokens belonging to each
// category of lex. A token present in several categories counts once in each.
// Tokens are matched case-insensitively whether or not they come from the tokenizer.
func Score(tokens []string, lex *lexicon.Lexicon) Result {
	cats := lex.Categories()
	counts := make(Counts, len(cats))
	for _, c := range cats {
		counts[c] = 0
	}
	for _, tok := range tokens {
		w := tokenize.NormalizeWord(tok)
		for _, c := range cats {
			if lex.ContainsNormalized(c, w) {
				counts[c]++
			}
		}
	}
	return Result{Tokens: len(tokens), Counts: counts}
}

// Count returns 0 for categories that were not loaded.
func (r Result) Count(c lexicon.Category) int {
	return r.Counts[c]
}

// Label applies the label precedence; the first matching rule wins.
func (r Result) Label() Label {
	pos, neg := r.Count(lexicon.Positive), r.Count(lexicon.Negative)
	strong, weak := r.Count(lexicon.ModalStrong), r.Count(lexicon.ModalWeak)

	switch {
	case r.Count(lexicon.Uncertainty) >= 1:
		return Uncertain
	case r.Count(lexicon.Litigious) >= 1:
		return LitigiousFlag
	case pos > neg && strong > weak:
		return StrongPositive
	case neg > pos && weak > strong:
		return StrongNegative
	case pos > neg:
		return Positive
	case neg > pos:
		return Negative
	default:
		return Neutral
	}
}

// Sentiment is (positive - negative) / tokens.
func (r Result) Sentiment() (float64, error) {
	if r.Tokens == 0 {
		return 0, ErrEmptyDocument
	}
	return float64(r.Count(lexicon.Positive)-r.Count(lexicon.Negative)) / float64(r.Tokens), nil
}

// PositiveNegativeRatio is undefined (ok=false) when no negative word was found.
func (r Result) PositiveNegativeRatio() (ratio float64, ok bool) {
	return ratio2(r.Count(lexicon.Positive), r.Count(lexicon.Negative))
}

// StrongWeakRatio is undefined (ok=false) when no weak modal word was found.
func (r Result) StrongWeakRatio() (ratio float64, ok bool) {
	return ratio2(r.Count(lexicon.ModalStrong), r.Count(lexicon.ModalWeak))
}

func ratio2(num, den int) (float64, bool) {
	if den == 0 {
		return 0, false
	}
	return float64(num) / float64(den), true
}

// Outcome is a Result reduced in one of the two modes.
type Outcome struct {
	Mode  Mode
	Label Label
	Score float64
}

func (r Result) Outcome(mode Mode) (Outcome, error) {
	switch mode {
	case Categorical:
		return Outcome{Mode: mode, Label: r.Label()}, nil
	case Continuous:
		s, err := r.Sentiment()
		if err != nil {
			return Outcome{}, err
		}
		return Outcome{Mode: mode, Score: s}, nil
	}
	return Outcome{}, fmt.Errorf("unknown score mode %q", mode)
}
