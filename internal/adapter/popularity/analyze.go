package popularity

import (
	"errors"
	"sort"

	"bookrec/internal/domain"
)

// Analysis errors. Handlers surface these as payload-level errors rather
// than transport failures.
var (
	ErrNoBooks  = errors.New("no books loaded")
	ErrNoMatch  = errors.New("no books match the criteria")
	errBadRange = errors.New("year_range must be [from, to]")
)

// Filter narrows an analysis to a single book, a genre, and/or a year range.
// Zero values mean no filtering on that axis.
type Filter struct {
	BookID    string
	Genre     string
	YearRange []int
}

// Distribution buckets books by popularity score.
type Distribution struct {
	High   int `json:"high_popularity"`   // > 0.8
	Medium int `json:"medium_popularity"` // 0.5 - 0.8
	Low    int `json:"low_popularity"`    // < 0.5
}

// Analysis aggregates popularity metrics over the filtered books.
type Analysis struct {
	TotalBooks       int                `json:"total_books"`
	AverageRating    float64            `json:"average_rating"`
	TotalRatings     int                `json:"total_ratings"`
	AveragePopScore  float64            `json:"average_popularity_score"`
	TopRatedBooks    []domain.Book      `json:"top_rated_books"`
	MostPopularBooks []domain.Book      `json:"most_popular_books"`
	YearTrend        map[int]float64    `json:"year_popularity_trend"`
	GenrePopularity  map[string]float64 `json:"genre_popularity"`
	Distribution     Distribution       `json:"popularity_distribution"`
}

// Analyze computes aggregate popularity metrics over books matching the
// filter. Returns ErrNoBooks for an empty catalog and ErrNoMatch when the
// filter excludes everything.
func Analyze(books []domain.Book, filter Filter) (*Analysis, error) {
	if len(books) == 0 {
		return nil, ErrNoBooks
	}
	if filter.YearRange != nil && len(filter.YearRange) != 2 {
		return nil, errBadRange
	}

	filtered := make([]domain.Book, 0, len(books))
	for _, b := range books {
		if filter.BookID != "" && b.ID != filter.BookID {
			continue
		}
		if filter.Genre != "" && !hasGenre(b, filter.Genre) {
			continue
		}
		if len(filter.YearRange) == 2 && (b.Year < filter.YearRange[0] || b.Year > filter.YearRange[1]) {
			continue
		}
		filtered = append(filtered, b)
	}
	if len(filtered) == 0 {
		return nil, ErrNoMatch
	}

	a := &Analysis{
		TotalBooks:      len(filtered),
		YearTrend:       make(map[int]float64),
		GenrePopularity: make(map[string]float64),
	}

	var ratingSum, popSum float64
	yearPops := make(map[int][]float64)
	genrePops := make(map[string][]float64)
	for _, b := range filtered {
		ratingSum += b.AvgRating
		popSum += b.PopScore
		a.TotalRatings += b.RatingsCount

		yearPops[b.Year] = append(yearPops[b.Year], b.PopScore)
		for _, g := range b.Genres {
			genrePops[g] = append(genrePops[g], b.PopScore)
		}

		switch {
		case b.PopScore > 0.8:
			a.Distribution.High++
		case b.PopScore >= 0.5:
			a.Distribution.Medium++
		default:
			a.Distribution.Low++
		}
	}
	a.AverageRating = ratingSum / float64(len(filtered))
	a.AveragePopScore = popSum / float64(len(filtered))

	for year, pops := range yearPops {
		a.YearTrend[year] = mean(pops)
	}
	for genre, pops := range genrePops {
		a.GenrePopularity[genre] = mean(pops)
	}

	a.TopRatedBooks = topBy(filtered, 5, func(x, y domain.Book) bool { return x.AvgRating > y.AvgRating })
	a.MostPopularBooks = topBy(filtered, 5, func(x, y domain.Book) bool { return x.PopScore > y.PopScore })

	return a, nil
}

func hasGenre(b domain.Book, genre string) bool {
	for _, g := range b.Genres {
		if g == genre {
			return true
		}
	}
	return false
}

func mean(vals []float64) float64 {
	var sum float64
	for _, v := range vals {
		sum += v
	}
	return sum / float64(len(vals))
}

// topBy returns the first n books under a stable descending sort, preserving
// catalog order among ties.
func topBy(books []domain.Book, n int, less func(x, y domain.Book) bool) []domain.Book {
	out := make([]domain.Book, len(books))
	copy(out, books)
	sort.SliceStable(out, func(i, j int) bool { return less(out[i], out[j]) })
	if len(out) > n {
		out = out[:n]
	}
	return out
}
