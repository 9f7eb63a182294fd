package lexicon

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// WordListLoader turns a word-list location into a set of words.
type WordListLoader interface {
	LoadWords(path string) (map[string]struct{}, error)
}

// FileLoader reads plain-text word lists, one word per line. Blank lines are ignored.
type FileLoader struct{}

func (FileLoader) LoadWords(path string) (map[string]struct{}, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	words := make(map[string]struct{})
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		w := strings.ToLower(strings.TrimSpace(sc.Text()))
		if w == "" {
			continue
		}
		words[w] = struct{}{}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return words, nil
}
