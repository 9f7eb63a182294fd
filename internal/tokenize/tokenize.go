/*
Package tokenize turns extracted document text into normalized tokens.
*/
package tokenize

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/shanehull/lmsentiment/internal/types"
)

// Mode selects the word-boundary rule. One mode is used for a whole run.
type Mode string

const (
	// Fields splits on whitespace only; punctuation stays attached to words.
	Fields Mode = "fields"
	// Words splits on anything that is not a letter, digit, apostrophe or hyphen,
	// then trims apostrophes and hyphens from the token edges.
	Words Mode = "words"
)

const DefaultMode = Words

func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case Fields:
		return Fields, nil
	case Words, "":
		return Words, nil
	}
	return "", fmt.Errorf("%w: unknown tokenizer mode %q", types.ErrConfiguration, s)
}

type Options struct {
	Mode             Mode
	ExcludeStopwords bool
	Stopwords        *StopwordSet
}

type Tokenizer struct {
	mode             Mode
	excludeStopwords bool
	stopwords        *StopwordSet
}

// New validates opts. An empty mode means DefaultMode.
func New(opts Options) (*Tokenizer, error) {
	mode := opts.Mode
	if mode == "" {
		mode = DefaultMode
	}
	if mode != Fields && mode != Words {
		return nil, fmt.Errorf("%w: unknown tokenizer mode %q", types.ErrConfiguration, mode)
	}
	if opts.ExcludeStopwords && opts.Stopwords == nil {
		return nil, fmt.Errorf("%w: stopword exclusion requested without a stopword set", types.ErrConfiguration)
	}
	return &Tokenizer{mode: mode, excludeStopwords: opts.ExcludeStopwords, stopwords: opts.Stopwords}, nil
}

func (t *Tokenizer) Mode() Mode { return t.mode }

// Stopwords returns the excluded list, or nil when stopwords are kept.
func (t *Tokenizer) Stopwords() *StopwordSet {
	if !t.excludeStopwords {
		return nil
	}
	return t.stopwords
}

// Tokenize returns the full token sequence of text.
func (t *Tokenizer) Tokenize(text string) []string {
	text = Normalize(text)

	var raw []string
	switch t.mode {
	case Fields:
		raw = strings.Fields(text)
	default:
		raw = splitWords(text)
	}

	if !t.excludeStopwords {
		return raw
	}
	tokens := raw[:0]
	for _, tok := range raw {
		if !t.stopwords.Contains(tok) {
			tokens = append(tokens, tok)
		}
	}
	return tokens
}

// Tokenize is the one-shot form using DefaultMode.
func Tokenize(text string, excludeStopwords bool, stopwords *StopwordSet) ([]string, error) {
	t, err := New(Options{ExcludeStopwords: excludeStopwords, Stopwords: stopwords})
	if err != nil {
		return nil, err
	}
	return t.Tokenize(text), nil
}

func isJoiner(r rune) bool {
	return r == '\'' || r == '’' || r == '-'
}

func splitWords(text string) []string {
	fields := strings.FieldsFunc(text, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r) && !isJoiner(r)
	})
	tokens := fields[:0]
	for _, f := range fields {
		if f = strings.TrimFunc(f, isJoiner); f != "" {
			tokens = append(tokens, f)
		}
	}
	return tokens
}
