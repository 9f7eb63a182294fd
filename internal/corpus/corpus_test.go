package corpus

import (
	"context"
	"errors"
	"fmt"
	"math"
	"path/filepath"
	"testing"

	"github.com/shanehull/lmsentiment/internal/archive"
	"github.com/shanehull/lmsentiment/internal/extract"
	"github.com/shanehull/lmsentiment/internal/lexicon"
	"github.com/shanehull/lmsentiment/internal/score"
	"github.com/shanehull/lmsentiment/internal/tokenize"
	"github.com/shanehull/lmsentiment/internal/types"
)

// textByName returns the content of the document as its text, or fails for
// names listed in broken.
func textByName(broken ...string) extract.Func {
	bad := map[string]bool{}
	for _, b := range broken {
		bad[b] = true
	}
	return func(_ context.Context, doc types.Document) (string, error) {
		if bad[doc.Name] {
			return "", fmt.Errorf("%w: %s: unreadable", extract.ErrExtraction, doc.Name)
		}
		return string(doc.Content), nil
	}
}

func newAggregator(t *testing.T, ex extract.Extractor) *Aggregator {
	t.Helper()
	tok, err := tokenize.New(tokenize.Options{Mode: tokenize.Words})
	if err != nil {
		t.Fatal(err)
	}
	return &Aggregator{
		Extractor: ex,
		Tokenizer: tok,
		Lexicon: lexicon.New(map[lexicon.Category][]string{
			lexicon.Positive: {"good"},
			lexicon.Negative: {"bad"},
		}),
	}
}

func doc(name, text string) types.Document {
	return types.Document{Name: name, Content: []byte(text)}
}

func TestAggregateMeanIgnoresFailedDocuments(t *testing.T) {
	docs := Documents{
		doc("a.pdf", "good x x x x"),          // 0.2
		doc("b.pdf", "bad x x x x x x x x x"), // -0.1
		doc("c.pdf", "good good x x x"),       // 0.4
		doc("d.pdf", "good good good good"),   // fails extraction
	}
	a := newAggregator(t, textByName("d.pdf"))

	res, err := a.Aggregate(context.Background(), "ACME", docs)
	if err != nil {
		t.Fatalf("Aggregate: %v", err)
	}
	want := (0.2 + -0.1 + 0.4) / 3
	if math.Abs(res.Mean-want) > 1e-9 {
		t.Errorf("Mean = %v, want %v", res.Mean, want)
	}
	if math.Abs(res.Mean-0.1667) > 1e-4 {
		t.Errorf("Mean = %v, want about 0.1667", res.Mean)
	}
	if res.Scored != 3 {
		t.Errorf("Scored = %d, want 3", res.Scored)
	}
	if len(res.Failures) != 1 || res.Failures[0].Name != "d.pdf" || !errors.Is(res.Failures[0].Err, extract.ErrExtraction) {
		t.Errorf("Failures = %+v", res.Failures)
	}
}

func TestAggregateSkipsEmptyDocuments(t *testing.T) {
	a := newAggregator(t, textByName())
	res, err := a.Aggregate(context.Background(), "ACME", Documents{
		doc("empty.pdf", " ... "),
		doc("ok.pdf", "good bad good x"),
	})
	if err != nil {
		t.Fatalf("Aggregate: %v", err)
	}
	if res.Scored != 1 || res.Mean != 0.25 {
		t.Errorf("Scored=%d Mean=%v", res.Scored, res.Mean)
	}
	if len(res.Failures) != 1 || !errors.Is(res.Failures[0].Err, score.ErrEmptyDocument) {
		t.Errorf("Failures = %+v", res.Failures)
	}
}

func TestAggregateNoScorableDocuments(t *testing.T) {
	a := newAggregator(t, textByName("a.pdf", "b.pdf"))
	res, err := a.Aggregate(context.Background(), "DEAD", Documents{doc("a.pdf", "good"), doc("b.pdf", "bad")})
	if !errors.Is(err, ErrNoScorableDocuments) {
		t.Fatalf("want ErrNoScorableDocuments, got %v", err)
	}
	if res == nil || len(res.Failures) != 2 {
		t.Errorf("failures should still be reported: %+v", res)
	}

	_, err = a.Aggregate(context.Background(), "NONE", Documents{})
	if !errors.Is(err, ErrNoScorableDocuments) {
		t.Errorf("empty corpus: want ErrNoScorableDocuments, got %v", err)
	}
}

func TestAggregateFiltersNonPDF(t *testing.T) {
	a := newAggregator(t, textByName())
	res, err := a.Aggregate(context.Background(), "ACME", Documents{
		doc("readme.txt", "bad bad bad"),
		doc("report.PDF", "good x"),
	})
	if err != nil {
		t.Fatalf("Aggregate: %v", err)
	}
	if res.Scored != 1 || res.Mean != 0.5 || len(res.Failures) != 0 {
		t.Errorf("Scored=%d Mean=%v Failures=%v", res.Scored, res.Mean, res.Failures)
	}
}

func TestAggregateRecordsReadErrors(t *testing.T) {
	errRead := errors.New("crc mismatch")
	src := SourceFunc(func(ctx context.Context, yield func(types.Document, error) error) error {
		if err := yield(types.Document{Name: "bad.pdf"}, errRead); err != nil {
			return err
		}
		return yield(doc("good.pdf", "good"), nil)
	})
	a := newAggregator(t, textByName())
	res, err := a.Aggregate(context.Background(), "ACME", src)
	if err != nil {
		t.Fatalf("Aggregate: %v", err)
	}
	if res.Scored != 1 || len(res.Failures) != 1 || !errors.Is(res.Failures[0].Err, errRead) {
		t.Errorf("res = %+v", res)
	}
}

func TestAggregateCancelledDiscardsPartialResult(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	calls := 0
	ex := extract.Func(func(_ context.Context, d types.Document) (string, error) {
		calls++
		if calls == 2 {
			cancel()
			return "", context.Canceled
		}
		return string(d.Content), nil
	})
	a := newAggregator(t, ex)
	res, err := a.Aggregate(ctx, "ACME", Documents{doc("a.pdf", "good"), doc("b.pdf", "good"), doc("c.pdf", "good")})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("want context.Canceled, got %v", err)
	}
	if res != nil {
		t.Errorf("no partial aggregate expected, got %+v", res)
	}
	if calls != 2 {
		t.Errorf("extraction should stop after cancellation, calls=%d", calls)
	}
}

func TestAggregateSourceError(t *testing.T) {
	a := newAggregator(t, textByName())
	_, err := a.Aggregate(context.Background(), "GONE", ArchiveSource(filepath.Join(t.TempDir(), "GONE.zip")))
	if !errors.Is(err, archive.ErrArchive) {
		t.Errorf("want ErrArchive, got %v", err)
	}
}

func TestAggregateFromArchive(t *testing.T) {
	path := archive.PathFor(t.TempDir(), "ACME")
	if err := archive.Write(path, []types.Document{doc("q1.pdf", "good x"), doc("q2.pdf", "bad x x x")}); err != nil {
		t.Fatal(err)
	}
	a := newAggregator(t, textByName())
	res, err := a.Aggregate(context.Background(), "ACME", ArchiveSource(path))
	if err != nil {
		t.Fatalf("Aggregate: %v", err)
	}
	if want := (0.5 + -0.25) / 2; res.Mean != want || res.Scored != 2 {
		t.Errorf("Mean=%v Scored=%d, want %v 2", res.Mean, res.Scored, want)
	}
}

func TestAggregateRequiresCollaborators(t *testing.T) {
	_, err := (&Aggregator{}).Aggregate(context.Background(), "X", Documents{})
	if !errors.Is(err, types.ErrConfiguration) {
		t.Errorf("want ErrConfiguration, got %v", err)
	}
}
