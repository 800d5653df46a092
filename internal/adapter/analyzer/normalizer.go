package analyzer

import "strings"

// Normalizer lowercases text, maps punctuation to spaces and drops stopwords.
// It does no stemming. Normalization is idempotent: running it twice yields
// the same string as running it once.
type Normalizer struct {
	stopwords map[string]struct{}
}

// NewNormalizer creates a Normalizer with the default English stopword set.
func NewNormalizer() *Normalizer {
	return &Normalizer{stopwords: defaultStopwords()}
}

// Tokens splits text into normalized tokens with stopwords removed.
func (n *Normalizer) Tokens(text string) []string {
	words := splitWords(strings.ToLower(text))
	tokens := make([]string, 0, len(words))
	for _, word := range words {
		if _, isStop := n.stopwords[word]; isStop {
			continue
		}
		tokens = append(tokens, word)
	}
	return tokens
}

// Normalize returns the normalized form of text: lowercase tokens with
// punctuation stripped and stopwords removed, joined by single spaces.
func (n *Normalizer) Normalize(text string) string {
	return strings.Join(n.Tokens(text), " ")
}

// FlattenBook joins a book's title, summary and genre tags into one
// normalized string for indexing and classification.
func (n *Normalizer) FlattenBook(title, summary string, genres []string) string {
	parts := make([]string, 0, 2+len(genres))
	parts = append(parts, n.Normalize(title), n.Normalize(summary))
	for _, g := range genres {
		parts = append(parts, n.Normalize(g))
	}
	return strings.Join(parts, " ")
}

// splitWords splits lowercased text on any non-alphanumeric rune.
func splitWords(text string) []string {
	var words []string
	var current strings.Builder

	for _, r := range text {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			current.WriteRune(r)
		} else {
			if current.Len() > 0 {
				words = append(words, current.String())
				current.Reset()
			}
		}
	}
	if current.Len() > 0 {
		words = append(words, current.String())
	}

	return words
}

func defaultStopwords() map[string]struct{} {
	stops := []string{
		"a", "an", "the", "and", "or", "but", "if", "while", "is",
		"are", "was", "were", "be", "been", "being", "have", "has",
		"had", "do", "did", "does", "of", "to", "in", "on", "for",
		"with", "from", "that", "this", "those", "these", "as", "by",
		"at", "into", "over", "after", "before", "about",
	}
	m := make(map[string]struct{}, len(stops))
	for _, s := range stops {
		m[s] = struct{}{}
	}
	return m
}
