package notify

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shanehull/lmsentiment/internal/lexicon"
	"github.com/shanehull/lmsentiment/internal/score"
)

// DocumentMarkdown renders the counts, the outcome in the given mode and the
// ratios of one scored document.
func DocumentMarkdown(name string, r score.Result, lex *lexicon.Lexicon, mode score.Mode) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("## %s\n\n", cell(name)))
	sb.WriteString("| Category | Count |\n")
	sb.WriteString("|---|---:|\n")
	sb.WriteString(fmt.Sprintf("| tokens | %d |\n", r.Tokens))
	for _, c := range lex.Categories() {
		sb.WriteString(fmt.Sprintf("| %s | %d |\n", c, r.Count(c)))
	}
	sb.WriteString("\n")

	o, err := r.Outcome(mode)
	switch {
	case errors.Is(err, score.ErrEmptyDocument):
		sb.WriteString("- Sentiment: undefined (no tokens)\n")
	case err != nil:
		sb.WriteString(fmt.Sprintf("- Outcome: %v\n", err))
	case o.Mode == score.Categorical:
		sb.WriteString(fmt.Sprintf("- Label: **%s**\n", o.Label))
	default:
		sb.WriteString(fmt.Sprintf("- Sentiment: %.6f\n", o.Score))
	}
	sb.WriteString(fmt.Sprintf("- Positive/negative ratio: %s\n", ratio(r.PositiveNegativeRatio())))
	if lex.Has(lexicon.ModalStrong) && lex.Has(lexicon.ModalWeak) {
		sb.WriteString(fmt.Sprintf("- Strong/weak ratio: %s\n", ratio(r.StrongWeakRatio())))
	}
	sb.WriteString("\n")
	return sb.String()
}

// LexiconMarkdown lists the number of words loaded per category.
func LexiconMarkdown(lex *lexicon.Lexicon) string {
	var sb strings.Builder
	sb.WriteString("| Category | Words |\n")
	sb.WriteString("|---|---:|\n")
	for _, c := range lex.Categories() {
		sb.WriteString(fmt.Sprintf("| %s | %d |\n", c, lex.Size(c)))
	}
	return sb.String()
}

func ratio(v float64, ok bool) string {
	if !ok {
		return "undefined"
	}
	return fmt.Sprintf("%.4f", v)
}
