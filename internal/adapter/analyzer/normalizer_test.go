package analyzer

import (
	"strings"
	"testing"
)

func TestNormalize(t *testing.T) {
	n := NewNormalizer()

	got := n.Normalize("The Dragon's Quest: A Tale of Magic!")
	want := "dragon s quest tale magic"
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	n := NewNormalizer()

	inputs := []string{
		"The quick brown fox, jumped over the lazy dog.",
		"MAGIC & Dragons!!!",
		"",
		"already normalized text",
	}
	for _, in := range inputs {
		once := n.Normalize(in)
		twice := n.Normalize(once)
		if once != twice {
			t.Errorf("normalize not idempotent for %q: %q != %q", in, once, twice)
		}
	}
}

func TestNormalizeDropsStopwords(t *testing.T) {
	n := NewNormalizer()

	got := n.Normalize("the and of to in on for with")
	if got != "" {
		t.Errorf("expected all stopwords removed, got %q", got)
	}
}

func TestNormalizeEmpty(t *testing.T) {
	n := NewNormalizer()

	if got := n.Normalize(""); got != "" {
		t.Errorf("expected empty string, got %q", got)
	}
	if toks := n.Tokens(""); len(toks) != 0 {
		t.Errorf("expected no tokens, got %v", toks)
	}
}

func TestFlattenBook(t *testing.T) {
	n := NewNormalizer()

	got := n.FlattenBook("The Last Kingdom", "A story of war and honor.", []string{"Historical", "Fantasy"})
	for _, term := range []string{"last", "kingdom", "story", "war", "honor", "historical", "fantasy"} {
		if !strings.Contains(got, term) {
			t.Errorf("expected flattened text to contain %q, got %q", term, got)
		}
	}
	if strings.Contains(got, "the") {
		t.Errorf("expected stopwords removed, got %q", got)
	}
}
