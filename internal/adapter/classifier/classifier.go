// Package classifier assigns genre labels to free text using a two-tier
// strategy: a trained Naive Bayes model gated on prediction confidence, and a
// keyword-count fallback that is always available. Every result records which
// tier produced it and, when the model tier was skipped, why.
package classifier

import (
	"bookrec/internal/adapter/analyzer"
	"bookrec/internal/domain"
)

// Method identifies the tier that produced a classification.
type Method string

const (
	MethodModel    Method = "model"
	MethodKeywords Method = "keywords"
)

// FallbackReason explains why the model tier did not produce the result.
type FallbackReason string

const (
	// FallbackNone means the model tier produced the result.
	FallbackNone FallbackReason = ""
	// FallbackModelAbsent means no model was trained (fewer than two
	// distinct genres at load time, or no catalog loaded).
	FallbackModelAbsent FallbackReason = "model_absent"
	// FallbackModelError means prediction failed.
	FallbackModelError FallbackReason = "model_error"
	// FallbackLowConfidence means the model predicted below the
	// confidence threshold.
	FallbackLowConfidence FallbackReason = "low_confidence"
)

// Result is a classification outcome. Genres is sorted by score descending;
// the model tier returns exactly one entry, the keyword tier up to top-k.
type Result struct {
	Genres   []domain.GenreScore
	Method   Method
	Fallback FallbackReason
}

// Classifier applies the model tier when present and confident, otherwise
// the keyword tier.
type Classifier struct {
	normalizer *analyzer.Normalizer
	model      *NaiveBayes
	threshold  float64
}

// New creates a Classifier. model may be nil, in which case every call takes
// the keyword path with FallbackModelAbsent.
func New(normalizer *analyzer.Normalizer, model *NaiveBayes, threshold float64) *Classifier {
	if threshold <= 0 {
		threshold = 0.3
	}
	return &Classifier{
		normalizer: normalizer,
		model:      model,
		threshold:  threshold,
	}
}

// HasModel reports whether the statistical tier is available.
func (c *Classifier) HasModel() bool {
	return c.model != nil
}

// Classify returns the top-k genres for the text.
func (c *Classifier) Classify(text string, topK int) Result {
	if topK <= 0 {
		topK = 3
	}

	fallback := FallbackModelAbsent
	if c.model != nil {
		genre, confidence, err := c.model.Predict(c.normalizer.Normalize(text))
		switch {
		case err != nil:
			fallback = FallbackModelError
		case confidence > c.threshold:
			return Result{
				Genres: []domain.GenreScore{{Genre: genre, Score: confidence}},
				Method: MethodModel,
			}
		default:
			fallback = FallbackLowConfidence
		}
	}

	return Result{
		Genres:   KeywordScores(c.normalizer.Normalize(text), topK),
		Method:   MethodKeywords,
		Fallback: fallback,
	}
}

// MatchScore returns the fraction of predicted genres for the query that
// intersect the book's genre tags.
func (c *Classifier) MatchScore(query string, bookGenres []string) float64 {
	result := c.Classify(query, 3)

	tags := make(map[string]struct{}, len(bookGenres))
	for _, g := range bookGenres {
		tags[g] = struct{}{}
	}

	matched := 0
	for _, gs := range result.Genres {
		if _, ok := tags[gs.Genre]; ok {
			matched++
		}
	}

	denom := len(tags)
	if denom < 1 {
		denom = 1
	}
	return float64(matched) / float64(denom)
}
