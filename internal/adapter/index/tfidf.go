// Package index builds a TF-IDF weighted vector space over normalized book
// text and answers cosine-similarity queries against it. The index is always
// rebuilt wholesale from the full catalog; there is no incremental update.
package index

import (
	"math"
	"sort"

	"bookrec/internal/adapter/analyzer"
)

// Vector is a sparse L2-normalized term-weight vector keyed by vocabulary id.
type Vector map[int]float64

// Index holds the vocabulary, per-term inverse document frequencies and one
// weight vector per document, in document order.
type Index struct {
	normalizer  *analyzer.Normalizer
	vocab       map[string]int
	idf         []float64
	docs        []Vector
	maxFeatures int
	bigrams     bool
}

// Options controls index construction.
type Options struct {
	// MaxFeatures caps the vocabulary to the most frequent terms.
	MaxFeatures int
	// Bigrams adds adjacent token pairs to the term stream.
	Bigrams bool
}

// Build constructs an Index over the corpus. Each corpus entry is one
// document's raw text; position in the slice is the document id.
func Build(corpus []string, normalizer *analyzer.Normalizer, opts Options) *Index {
	if opts.MaxFeatures <= 0 {
		opts.MaxFeatures = 20000
	}

	ix := &Index{
		normalizer:  normalizer,
		maxFeatures: opts.MaxFeatures,
		bigrams:     opts.Bigrams,
	}

	termDocs := make([][]string, len(corpus))
	corpusFreq := make(map[string]int)
	for i, text := range corpus {
		terms := ix.terms(text)
		termDocs[i] = terms
		for _, t := range terms {
			corpusFreq[t]++
		}
	}

	ix.vocab = buildVocab(corpusFreq, opts.MaxFeatures)

	// Document frequency per vocabulary term.
	df := make([]int, len(ix.vocab))
	for _, terms := range termDocs {
		seen := make(map[int]struct{})
		for _, t := range terms {
			if id, ok := ix.vocab[t]; ok {
				seen[id] = struct{}{}
			}
		}
		for id := range seen {
			df[id]++
		}
	}

	// Smoothed idf: ln((1+n)/(1+df)) + 1, so terms present in every
	// document still carry weight.
	n := float64(len(corpus))
	ix.idf = make([]float64, len(ix.vocab))
	for id, d := range df {
		ix.idf[id] = math.Log((1+n)/(1+float64(d))) + 1
	}

	ix.docs = make([]Vector, len(corpus))
	for i, terms := range termDocs {
		ix.docs[i] = ix.vectorize(terms)
	}

	return ix
}

// Len returns the number of indexed documents.
func (ix *Index) Len() int {
	return len(ix.docs)
}

// VocabSize returns the number of terms in the vocabulary.
func (ix *Index) VocabSize() int {
	return len(ix.vocab)
}

// Similarities computes the cosine similarity of the query against every
// document, in document order. Vectors are non-negative so scores lie in
// [0,1]. An empty or out-of-vocabulary query yields all zeros.
func (ix *Index) Similarities(query string) []float64 {
	sims := make([]float64, len(ix.docs))
	q := ix.vectorize(ix.terms(query))
	if len(q) == 0 {
		return sims
	}
	for i, doc := range ix.docs {
		sims[i] = dot(q, doc)
	}
	return sims
}

// Vectorize maps arbitrary text into the index's tf-idf vector space.
// Out-of-vocabulary terms are dropped; text with no known terms yields nil.
func (ix *Index) Vectorize(text string) Vector {
	return ix.vectorize(ix.terms(text))
}

// terms normalizes text and expands it into unigram (and optionally bigram)
// terms.
func (ix *Index) terms(text string) []string {
	tokens := ix.normalizer.Tokens(text)
	if !ix.bigrams {
		return tokens
	}
	terms := make([]string, 0, len(tokens)*2)
	terms = append(terms, tokens...)
	for i := 0; i+1 < len(tokens); i++ {
		terms = append(terms, tokens[i]+" "+tokens[i+1])
	}
	return terms
}

// vectorize maps terms to an L2-normalized tf-idf vector over the vocabulary.
func (ix *Index) vectorize(terms []string) Vector {
	tf := make(map[int]float64)
	for _, t := range terms {
		if id, ok := ix.vocab[t]; ok {
			tf[id]++
		}
	}
	if len(tf) == 0 {
		return nil
	}

	vec := make(Vector, len(tf))
	var norm float64
	for id, f := range tf {
		w := f * ix.idf[id]
		vec[id] = w
		norm += w * w
	}
	norm = math.Sqrt(norm)
	if norm > 0 {
		for id := range vec {
			vec[id] /= norm
		}
	}
	return vec
}

// buildVocab keeps the maxFeatures most frequent terms, breaking frequency
// ties alphabetically so vocabulary assignment is deterministic.
func buildVocab(corpusFreq map[string]int, maxFeatures int) map[string]int {
	type termCount struct {
		term  string
		count int
	}
	ranked := make([]termCount, 0, len(corpusFreq))
	for t, c := range corpusFreq {
		ranked = append(ranked, termCount{t, c})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].count != ranked[j].count {
			return ranked[i].count > ranked[j].count
		}
		return ranked[i].term < ranked[j].term
	})
	if len(ranked) > maxFeatures {
		ranked = ranked[:maxFeatures]
	}

	vocab := make(map[string]int, len(ranked))
	for i, tc := range ranked {
		vocab[tc.term] = i
	}
	return vocab
}

// dot computes the dot product of two sparse vectors, iterating the smaller.
func dot(a, b Vector) float64 {
	if len(b) < len(a) {
		a, b = b, a
	}
	var sum float64
	for id, w := range a {
		if v, ok := b[id]; ok {
			sum += w * v
		}
	}
	return sum
}
