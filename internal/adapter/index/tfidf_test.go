package index

import (
	"testing"

	"bookrec/internal/adapter/analyzer"
)

func buildTestIndex(t *testing.T, corpus []string) *Index {
	t.Helper()
	return Build(corpus, analyzer.NewNormalizer(), Options{MaxFeatures: 1000, Bigrams: true})
}

func TestSimilaritiesRankRelevantDocFirst(t *testing.T) {
	ix := buildTestIndex(t, []string{
		"dragon kingdom magic quest sword",
		"romance love wedding couple",
		"murder detective investigation crime",
	})

	sims := ix.Similarities("dragon kingdom magic")
	if len(sims) != 3 {
		t.Fatalf("expected 3 scores, got %d", len(sims))
	}
	if sims[0] <= sims[1] || sims[0] <= sims[2] {
		t.Errorf("expected doc 0 to rank first, got %v", sims)
	}
	for i, s := range sims {
		if s < 0 || s > 1.0000001 {
			t.Errorf("similarity %d out of range: %f", i, s)
		}
	}
}

func TestSimilaritiesEmptyQuery(t *testing.T) {
	ix := buildTestIndex(t, []string{"some document text", "another document"})

	for _, query := range []string{"", "the and of", "zzzznonexistent"} {
		sims := ix.Similarities(query)
		if len(sims) != 2 {
			t.Fatalf("expected 2 scores, got %d", len(sims))
		}
		for i, s := range sims {
			if s != 0 {
				t.Errorf("query %q: expected zero similarity for doc %d, got %f", query, i, s)
			}
		}
	}
}

func TestIdenticalDocumentScoresOne(t *testing.T) {
	ix := buildTestIndex(t, []string{"space alien galaxy ship"})

	sims := ix.Similarities("space alien galaxy ship")
	if sims[0] < 0.999 {
		t.Errorf("expected near-1 similarity for identical text, got %f", sims[0])
	}
}

func TestBigramsImprovePhraseMatch(t *testing.T) {
	ix := buildTestIndex(t, []string{
		"time travel adventure story",
		"travel guide europe time management",
	})

	sims := ix.Similarities("time travel")
	if sims[0] <= sims[1] {
		t.Errorf("expected the document with the adjacent phrase to score higher, got %v", sims)
	}
}

func TestMaxFeaturesCapsVocabulary(t *testing.T) {
	corpus := []string{
		"alpha beta gamma delta epsilon",
		"zeta eta theta iota kappa",
	}
	ix := Build(corpus, analyzer.NewNormalizer(), Options{MaxFeatures: 4, Bigrams: false})

	if ix.VocabSize() != 4 {
		t.Errorf("expected vocabulary capped at 4, got %d", ix.VocabSize())
	}
}

func TestEmptyCorpus(t *testing.T) {
	ix := buildTestIndex(t, nil)

	if ix.Len() != 0 {
		t.Errorf("expected empty index, got %d docs", ix.Len())
	}
	if sims := ix.Similarities("anything"); len(sims) != 0 {
		t.Errorf("expected no scores, got %v", sims)
	}
}
