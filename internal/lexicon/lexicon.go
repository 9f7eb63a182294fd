/*
Package lexicon holds the category word sets used for bag-of-words sentiment counting.
*/
package lexicon

import (
	"errors"
	"fmt"
	"path/filepath"
	"sort"

	"github.com/shanehull/lmsentiment/internal/tokenize"
)

// ErrLexiconLoad is fatal: no scoring is meaningful without the word lists.
var ErrLexiconLoad = errors.New("lexicon load failed")

type Category string

const (
	Positive    Category = "positive"
	Negative    Category = "negative"
	ModalWeak   Category = "modal_weak"
	ModalStrong Category = "modal_strong"
	Litigious   Category = "litigious"
	Uncertainty Category = "uncertainty"
)

// AllCategories lists every known category in canonical order.
var AllCategories = []Category{Positive, Negative, ModalWeak, ModalStrong, Litigious, Uncertainty}

// Required categories must be present in every lexicon.
var Required = []Category{Positive, Negative}

var fileNames = map[Category]string{
	Positive:    "LoughranMcDonald_Positive.csv",
	Negative:    "LoughranMcDonald_Negative.csv",
	ModalWeak:   "LoughranMcDonald_ModalWeak.csv",
	ModalStrong: "LoughranMcDonald_ModalStrong.csv",
	Litigious:   "LoughranMcDonald_Litigious.csv",
	Uncertainty: "LoughranMcDonald_Uncertainty.csv",
}

func (c Category) order() int {
	for i, k := range AllCategories {
		if k == c {
			return i
		}
	}
	return len(AllCategories)
}

// DefaultFiles maps categories to the Loughran-McDonald word list names inside dir.
// Only positive and negative are included unless extended is set.
func DefaultFiles(dir string, extended bool) map[Category]string {
	paths := make(map[Category]string)
	for _, c := range AllCategories {
		if !extended && c != Positive && c != Negative {
			continue
		}
		paths[c] = filepath.Join(dir, fileNames[c])
	}
	return paths
}

// Lexicon is immutable after construction and safe to share between goroutines.
type Lexicon struct {
	words map[Category]map[string]struct{}
}

// New builds a lexicon from in-memory word lists, normalizing every entry.
func New(lists map[Category][]string) *Lexicon {
	words := make(map[Category]map[string]struct{}, len(lists))
	for c, list := range lists {
		set := make(map[string]struct{}, len(list))
		for _, w := range list {
			if w = tokenize.NormalizeWord(w); w != "" {
				set[w] = struct{}{}
			}
		}
		words[c] = set
	}
	return &Lexicon{words: words}
}

// Load reads one word list per category from disk.
func Load(paths map[Category]string) (*Lexicon, error) {
	return LoadWith(FileLoader{}, paths)
}

// LoadWith reads word lists through loader. Every path in paths is required,
// and the positive and negative categories must be among them.
func LoadWith(loader WordListLoader, paths map[Category]string) (*Lexicon, error) {
	for _, c := range Required {
		if paths[c] == "" {
			return nil, fmt.Errorf("%w: no word list configured for category %s", ErrLexiconLoad, c)
		}
	}

	words := make(map[Category]map[string]struct{}, len(paths))
	for c, p := range paths {
		if p == "" {
			return nil, fmt.Errorf("%w: empty path for category %s", ErrLexiconLoad, c)
		}
		set, err := loader.LoadWords(p)
		if err != nil {
			return nil, fmt.Errorf("%w: category %s from %s: %v", ErrLexiconLoad, c, p, err)
		}
		normalized := make(map[string]struct{}, len(set))
		for w := range set {
			if w = tokenize.NormalizeWord(w); w != "" {
				normalized[w] = struct{}{}
			}
		}
		words[c] = normalized
	}
	return &Lexicon{words: words}, nil
}

// Contains normalizes token the way lexicon entries were normalized, so
// "Gain" and "gain" match alike.
func (l *Lexicon) Contains(c Category, token string) bool {
	return l.ContainsNormalized(c, tokenize.NormalizeWord(token))
}

// ContainsNormalized skips normalization for callers that already ran
// token through tokenize.NormalizeWord.
func (l *Lexicon) ContainsNormalized(c Category, token string) bool {
	_, ok := l.words[c][token]
	return ok
}

// Has reports whether the category was loaded.
func (l *Lexicon) Has(c Category) bool {
	_, ok := l.words[c]
	return ok
}

// Categories returns the loaded categories in canonical order.
func (l *Lexicon) Categories() []Category {
	cats := make([]Category, 0, len(l.words))
	for c := range l.words {
		cats = append(cats, c)
	}
	sort.Slice(cats, func(i, j int) bool {
		if cats[i].order() != cats[j].order() {
			return cats[i].order() < cats[j].order()
		}
		return cats[i] < cats[j]
	})
	return cats
}

// Size returns the number of distinct words in a category.
func (l *Lexicon) Size(c Category) int {
	return len(l.words[c])
}
