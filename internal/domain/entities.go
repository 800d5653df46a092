package domain

import "time"

// Book is one catalog record. Records are created in bulk on ingest and are
// immutable until the next full reload.
type Book struct {
	ID           string   `json:"id"`
	Title        string   `json:"title"`
	Summary      string   `json:"summary"`
	Genres       []string `json:"genres"`
	Year         int      `json:"year"`
	AvgRating    float64  `json:"avg_rating"`
	RatingsCount int      `json:"ratings_count"`
	PopScore     float64  `json:"pop_score"`
}

// PrimaryGenre returns the first genre tag, or empty when the book is untagged.
func (b Book) PrimaryGenre() string {
	if len(b.Genres) == 0 {
		return ""
	}
	return b.Genres[0]
}

// FeedbackEvent is a single user rating for a book. Events are append-only.
type FeedbackEvent struct {
	Rating    int       `json:"rating"`
	Text      string    `json:"feedback_text,omitempty"`
	UserID    string    `json:"user_id,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// GenreScore pairs a genre label with a score. Depending on the classifier
// tier that produced it, the score is either a model confidence or a
// max-normalized keyword count; both live in [0,1].
type GenreScore struct {
	Genre string  `json:"genre"`
	Score float64 `json:"score"`
}

// ScoreBreakdown exposes the constituent signals behind a recommendation.
type ScoreBreakdown struct {
	Similarity    float64 `json:"similarity"`
	Popularity    float64 `json:"popularity"`
	Genre         float64 `json:"genre"`
	FeedbackBoost float64 `json:"feedback_boost"`
}

// Recommendation is one ranked result with its blend score and sub-scores.
type Recommendation struct {
	ID     string         `json:"id"`
	Title  string         `json:"title"`
	Genres []string       `json:"genres"`
	Year   int            `json:"year"`
	Score  float64        `json:"score"`
	Why    ScoreBreakdown `json:"why"`
}
