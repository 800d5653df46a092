// Package popularity computes Bayesian-average popularity scores and
// catalog-level popularity analytics.
package popularity

// Prior is the Bayesian prior blended into every book's score. With zero
// ratings a book scores exactly Mean; as the rating count grows the score
// converges to the book's own avg_rating/5.
type Prior struct {
	Weight float64
	Mean   float64
}

// DefaultPrior matches the tuning the scoring formula was calibrated with.
func DefaultPrior() Prior {
	return Prior{Weight: 150, Mean: 0.6}
}

// Score computes the popularity score in [0,1] for a book.
func Score(avgRating float64, ratingsCount int, prior Prior) float64 {
	r := clamp(avgRating, 0, 5) / 5.0
	c := float64(ratingsCount)
	m := prior.Weight
	return (c/(c+m))*r + (m/(c+m))*prior.Mean
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
