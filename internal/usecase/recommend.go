package usecase

import (
	"sort"

	"bookrec/internal/domain"
)

// Recommend ranks books for a query by blending tf-idf cosine similarity,
// popularity and the per-book feedback boost under the configured weights.
// The sort is stable, so books with equal blend scores keep catalog order.
// An empty catalog yields an empty list.
func (e *Engine) Recommend(query string, topK int) []domain.Recommendation {
	if topK <= 0 {
		topK = e.cfg.Recommend.TopK
	}

	snap := e.Current()
	if len(snap.Books) == 0 {
		return []domain.Recommendation{}
	}

	sims := snap.Index.Similarities(query)
	w := e.cfg.Recommend

	type scored struct {
		book  domain.Book
		blend float64
		why   domain.ScoreBreakdown
	}
	candidates := make([]scored, len(snap.Books))
	for i, b := range snap.Books {
		boost := e.feedback.Boost(b.ID)
		candidates[i] = scored{
			book:  b,
			blend: w.SimilarityWeight*sims[i] + w.PopularityWeight*b.PopScore + w.FeedbackWeight*boost,
			why: domain.ScoreBreakdown{
				Similarity:    sims[i],
				Popularity:    b.PopScore,
				FeedbackBoost: boost,
			},
		}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].blend > candidates[j].blend
	})
	if len(candidates) > topK {
		candidates = candidates[:topK]
	}

	// Genre match is reported for transparency on the returned results
	// only; it does not participate in the blend.
	out := make([]domain.Recommendation, len(candidates))
	for i, c := range candidates {
		c.why.Genre = snap.Classifier.MatchScore(query, c.book.Genres)
		out[i] = domain.Recommendation{
			ID:     c.book.ID,
			Title:  c.book.Title,
			Genres: c.book.Genres,
			Year:   c.book.Year,
			Score:  c.blend,
			Why:    c.why,
		}
	}
	return out
}
