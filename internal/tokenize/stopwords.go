package tokenize

import (
	"bufio"
	_ "embed"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/shanehull/lmsentiment/internal/types"
)

// StopwordsVersion identifies the bundled list. Bump it whenever the file changes.
const StopwordsVersion = "english-v1"

//go:embed stopwords/english_v1.txt
var englishStopwords string

var defaultStopwords = mustParseStopwords(englishStopwords, StopwordsVersion)

// StopwordSet is an immutable set of normalized stopwords.
type StopwordSet struct {
	version string
	words   map[string]struct{}
}

// NewStopwordSet normalizes words into a set.
func NewStopwordSet(words ...string) *StopwordSet {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		if w = NormalizeWord(w); w != "" {
			set[w] = struct{}{}
		}
	}
	return &StopwordSet{words: set}
}

// DefaultStopwords returns the bundled English list.
func DefaultStopwords() *StopwordSet {
	return defaultStopwords
}

// LoadStopwords reads a stopword file with one word per line; # starts a comment line.
func LoadStopwords(path string) (*StopwordSet, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: stopword list %s: %v", types.ErrConfiguration, path, err)
	}
	defer f.Close()

	set, err := parseStopwords(f)
	if err != nil {
		return nil, fmt.Errorf("%w: stopword list %s: %v", types.ErrConfiguration, path, err)
	}
	set.version = path
	return set, nil
}

// Version names the list: StopwordsVersion for the bundled one, the file path
// for a loaded one.
func (s *StopwordSet) Version() string {
	if s == nil {
		return ""
	}
	return s.version
}

func (s *StopwordSet) Contains(word string) bool {
	if s == nil {
		return false
	}
	_, ok := s.words[word]
	return ok
}

func (s *StopwordSet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.words)
}

func parseStopwords(r io.Reader) (*StopwordSet, error) {
	var words []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		words = append(words, line)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return NewStopwordSet(words...), nil
}

func mustParseStopwords(s, version string) *StopwordSet {
	set, err := parseStopwords(strings.NewReader(s))
	if err != nil {
		panic(err)
	}
	set.version = version
	return set
}
