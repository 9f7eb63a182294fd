package lexicon

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func writeList(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", p, err)
	}
	return p
}

func TestLoadNormalizesEntries(t *testing.T) {
	dir := t.TempDir()
	paths := map[Category]string{
		Positive: writeList(t, dir, "pos.csv", "ACHIEVE\n  Gain \n\nprofitable\n"),
		Negative: writeList(t, dir, "neg.csv", "LOSS\r\nDecline\n"),
	}

	lex, err := Load(paths)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	for _, w := range []string{"achieve", "gain", "profitable"} {
		if !lex.Contains(Positive, w) {
			t.Errorf("positive should contain %q", w)
		}
	}
	for _, w := range []string{"loss", "decline"} {
		if !lex.Contains(Negative, w) {
			t.Errorf("negative should contain %q", w)
		}
	}
	if lex.Contains(Positive, "") {
		t.Error("blank lines must not become entries")
	}
	if got := lex.Size(Positive); got != 3 {
		t.Errorf("Size(Positive) = %d, want 3", got)
	}
	if lex.Has(Litigious) {
		t.Error("litigious was not loaded")
	}
}

func TestLoadFailures(t *testing.T) {
	dir := t.TempDir()
	pos := writeList(t, dir, "pos.csv", "gain\n")
	neg := writeList(t, dir, "neg.csv", "loss\n")

	tests := []struct {
		name  string
		paths map[Category]string
	}{
		{"missing negative", map[Category]string{Positive: pos}},
		{"unreadable file", map[Category]string{Positive: pos, Negative: filepath.Join(dir, "nope.csv")}},
		{"missing optional file", map[Category]string{Positive: pos, Negative: neg, Litigious: filepath.Join(dir, "lit.csv")}},
		{"empty path", map[Category]string{Positive: pos, Negative: neg, Uncertainty: ""}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(tt.paths)
			if !errors.Is(err, ErrLexiconLoad) {
				t.Fatalf("want ErrLexiconLoad, got %v", err)
			}
		})
	}
}

type mapLoader map[string][]string

func (m mapLoader) LoadWords(path string) (map[string]struct{}, error) {
	list, ok := m[path]
	if !ok {
		return nil, os.ErrNotExist
	}
	set := make(map[string]struct{}, len(list))
	for _, w := range list {
		set[w] = struct{}{}
	}
	return set, nil
}

func TestLoadWithCustomLoader(t *testing.T) {
	loader := mapLoader{
		"p": {"Strong"},
		"n": {"weak"},
		"u": {"MAYBE"},
	}
	lex, err := LoadWith(loader, map[Category]string{Positive: "p", Negative: "n", Uncertainty: "u"})
	if err != nil {
		t.Fatalf("LoadWith: %v", err)
	}
	if !lex.Contains(Positive, "strong") || !lex.Contains(Uncertainty, "maybe") {
		t.Error("entries from the loader must be lowercased")
	}
	want := []Category{Positive, Negative, Uncertainty}
	if got := lex.Categories(); !reflect.DeepEqual(got, want) {
		t.Errorf("Categories() = %v, want %v", got, want)
	}
}

func TestWordMayAppearInSeveralCategories(t *testing.T) {
	lex := New(map[Category][]string{
		Negative:  {"litigation"},
		Litigious: {"Litigation"},
	})
	if !lex.Contains(Negative, "litigation") || !lex.Contains(Litigious, "litigation") {
		t.Error("a word must be allowed in more than one category")
	}
}

func TestDefaultFiles(t *testing.T) {
	basic := DefaultFiles("lm", false)
	if len(basic) != 2 {
		t.Fatalf("basic lexicon should have 2 files, got %d", len(basic))
	}
	if basic[Positive] != filepath.Join("lm", "LoughranMcDonald_Positive.csv") {
		t.Errorf("unexpected positive path %q", basic[Positive])
	}

	extended := DefaultFiles("lm", true)
	if len(extended) != len(AllCategories) {
		t.Fatalf("extended lexicon should have %d files, got %d", len(AllCategories), len(extended))
	}
	if extended[ModalWeak] != filepath.Join("lm", "LoughranMcDonald_ModalWeak.csv") {
		t.Errorf("unexpected modal weak path %q", extended[ModalWeak])
	}
}

func TestContainsIgnoresCase(t *testing.T) {
	lex := New(map[Category][]string{Positive: {"gain"}, Negative: {"Loss"}})
	for _, tok := range []string{"gain", "Gain", "GAIN", " gain "} {
		if !lex.Contains(Positive, tok) {
			t.Errorf("Contains(positive, %q) = false", tok)
		}
	}
	if !lex.Contains(Negative, "LOSS") || !lex.ContainsNormalized(Negative, "loss") {
		t.Error("negative entry should match in any case")
	}
	if lex.ContainsNormalized(Negative, "LOSS") {
		t.Error("ContainsNormalized must not normalize its argument")
	}
}
