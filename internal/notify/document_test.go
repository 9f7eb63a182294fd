package notify

import (
	"strings"
	"testing"

	"github.com/shanehull/lmsentiment/internal/lexicon"
	"github.com/shanehull/lmsentiment/internal/score"
)

func TestDocumentMarkdown(t *testing.T) {
	lex := lexicon.New(map[lexicon.Category][]string{
		lexicon.Positive:    {"gain"},
		lexicon.Negative:    {"loss"},
		lexicon.ModalStrong: {"will"},
		lexicon.ModalWeak:   {"may"},
	})
	r := score.Score([]string{"gain", "gain", "loss", "will", "x"}, lex)

	tests := []struct {
		mode    score.Mode
		want    string
		notWant string
	}{
		{score.Categorical, "- Label: **strong_positive**", "- Sentiment:"},
		{score.Continuous, "- Sentiment: 0.200000", "- Label:"},
	}
	for _, tt := range tests {
		t.Run(string(tt.mode), func(t *testing.T) {
			md := DocumentMarkdown("q1.pdf", r, lex, tt.mode)
			for _, want := range []string{
				"## q1.pdf",
				"| tokens | 5 |",
				"| positive | 2 |",
				"| modal_weak | 0 |",
				tt.want,
				"- Positive/negative ratio: 2.0000",
				"- Strong/weak ratio: undefined",
			} {
				if !strings.Contains(md, want) {
					t.Errorf("missing %q in:\n%s", want, md)
				}
			}
			if strings.Contains(md, tt.notWant) {
				t.Errorf("%s report should not contain %q:\n%s", tt.mode, tt.notWant, md)
			}
		})
	}
}

func TestDocumentMarkdownEmpty(t *testing.T) {
	lex := lexicon.New(map[lexicon.Category][]string{lexicon.Positive: {"gain"}, lexicon.Negative: {"loss"}})
	empty := score.Score(nil, lex)
	if md := DocumentMarkdown("empty.pdf", empty, lex, score.Continuous); !strings.Contains(md, "- Sentiment: undefined (no tokens)") {
		t.Errorf("unexpected continuous report:\n%s", md)
	}
	md := DocumentMarkdown("empty.pdf", empty, lex, score.Categorical)
	if !strings.Contains(md, "- Label: **neutral**") {
		t.Errorf("unexpected categorical report:\n%s", md)
	}
	if strings.Contains(md, "Strong/weak") {
		t.Error("strong/weak ratio needs the modal lists")
	}
}

func TestLexiconMarkdown(t *testing.T) {
	lex := lexicon.New(map[lexicon.Category][]string{lexicon.Negative: {"loss", "fraud"}, lexicon.Positive: {"gain"}})
	md := LexiconMarkdown(lex)
	if !strings.Contains(md, "| positive | 1 |\n| negative | 2 |") {
		t.Errorf("unexpected table:\n%s", md)
	}
}
