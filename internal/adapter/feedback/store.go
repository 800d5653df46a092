// Package feedback keeps an append-only in-memory log of user ratings per
// book. Events survive catalog reloads but not process restarts.
package feedback

import (
	"errors"
	"sort"
	"sync"
	"time"

	"bookrec/internal/domain"
)

// ErrInvalidRating is returned for ratings outside 1-5.
var ErrInvalidRating = errors.New("feedback: rating must be between 1 and 5")

// Store is a mutex-guarded per-book event log.
type Store struct {
	mu     sync.RWMutex
	events map[string][]domain.FeedbackEvent
	now    func() time.Time
}

// NewStore creates an empty feedback store.
func NewStore() *Store {
	return &Store{
		events: make(map[string][]domain.FeedbackEvent),
		now:    time.Now,
	}
}

// Add appends a feedback event for the book.
func (s *Store) Add(bookID string, rating int, text, userID string) error {
	if rating < 1 || rating > 5 {
		return ErrInvalidRating
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.events[bookID] = append(s.events[bookID], domain.FeedbackEvent{
		Rating:    rating,
		Text:      text,
		UserID:    userID,
		Timestamp: s.now(),
	})
	return nil
}

// Count returns the number of events recorded for the book.
func (s *Store) Count(bookID string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.events[bookID])
}

// Boost returns the recommendation boost factor for a book:
// 1.0 + (mean rating - 3.0) * 0.1, or 1.0 when the book has no feedback.
func (s *Store) Boost(bookID string) float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()

	events := s.events[bookID]
	if len(events) == 0 {
		return 1.0
	}
	var sum float64
	for _, e := range events {
		sum += float64(e.Rating)
	}
	mean := sum / float64(len(events))
	return 1.0 + (mean-3.0)*0.1
}

// BookCount pairs a book id with its feedback event count.
type BookCount struct {
	BookID string `json:"book_id"`
	Count  int    `json:"count"`
}

// SentimentBuckets is a 3-bucket rating histogram: positive >= 4,
// neutral = 3, negative <= 2.
type SentimentBuckets struct {
	Positive int `json:"positive"`
	Neutral  int `json:"neutral"`
	Negative int `json:"negative"`
}

// Insights aggregates the whole feedback log.
type Insights struct {
	TotalCount    int              `json:"total_feedback_count"`
	AverageRating float64          `json:"average_user_rating"`
	TopBooks      []BookCount      `json:"books_with_most_feedback"`
	Distribution  SentimentBuckets `json:"feedback_distribution"`
}

// Insights returns aggregate statistics, or nil when no feedback exists.
func (s *Store) Insights() *Insights {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.events) == 0 {
		return nil
	}

	ins := &Insights{}
	var ratingSum float64
	counts := make([]BookCount, 0, len(s.events))
	for bookID, events := range s.events {
		counts = append(counts, BookCount{BookID: bookID, Count: len(events)})
		for _, e := range events {
			ins.TotalCount++
			ratingSum += float64(e.Rating)
			switch {
			case e.Rating >= 4:
				ins.Distribution.Positive++
			case e.Rating == 3:
				ins.Distribution.Neutral++
			default:
				ins.Distribution.Negative++
			}
		}
	}
	ins.AverageRating = ratingSum / float64(ins.TotalCount)

	sort.Slice(counts, func(i, j int) bool {
		if counts[i].Count != counts[j].Count {
			return counts[i].Count > counts[j].Count
		}
		return counts[i].BookID < counts[j].BookID
	})
	if len(counts) > 5 {
		counts = counts[:5]
	}
	ins.TopBooks = counts

	return ins
}
