package popularity

import (
	"math"
	"testing"

	"bookrec/internal/domain"
)

func TestScoreZeroRatingsEqualsPrior(t *testing.T) {
	prior := DefaultPrior()

	for _, avg := range []float64{0, 2.5, 5, 100, -3} {
		if got := Score(avg, 0, prior); got != 0.6 {
			t.Errorf("avg=%f: expected exactly 0.6, got %f", avg, got)
		}
	}
}

func TestScoreMonotonicInRating(t *testing.T) {
	prior := DefaultPrior()

	prev := -1.0
	for avg := 0.0; avg <= 5.0; avg += 0.5 {
		got := Score(avg, 100, prior)
		if got < prev {
			t.Errorf("score decreased at avg=%f: %f < %f", avg, got, prev)
		}
		prev = got
	}
}

func TestScoreConvergesToRating(t *testing.T) {
	prior := DefaultPrior()

	got := Score(4.5, 10_000_000, prior)
	want := 4.5 / 5.0
	if math.Abs(got-want) > 0.001 {
		t.Errorf("expected convergence toward %f, got %f", want, got)
	}
}

func TestScoreClampsRating(t *testing.T) {
	prior := DefaultPrior()

	if got := Score(10, 1000, prior); got > 1 {
		t.Errorf("score above 1 for out-of-range rating: %f", got)
	}
	if got := Score(-5, 1000, prior); got < 0 {
		t.Errorf("score below 0 for out-of-range rating: %f", got)
	}
}

func testBooks() []domain.Book {
	return []domain.Book{
		{ID: "1", Title: "A", Genres: []string{"Fantasy"}, Year: 2019, AvgRating: 4.5, RatingsCount: 900, PopScore: 0.85},
		{ID: "2", Title: "B", Genres: []string{"Fantasy", "Young Adult"}, Year: 2020, AvgRating: 3.9, RatingsCount: 500, PopScore: 0.72},
		{ID: "3", Title: "C", Genres: []string{"Mystery"}, Year: 2020, AvgRating: 3.0, RatingsCount: 50, PopScore: 0.45},
	}
}

func TestAnalyzeEmptyCatalog(t *testing.T) {
	if _, err := Analyze(nil, Filter{}); err != ErrNoBooks {
		t.Errorf("expected ErrNoBooks, got %v", err)
	}
}

func TestAnalyzeNoMatch(t *testing.T) {
	if _, err := Analyze(testBooks(), Filter{Genre: "Horror"}); err != ErrNoMatch {
		t.Errorf("expected ErrNoMatch, got %v", err)
	}
}

func TestAnalyzeAggregates(t *testing.T) {
	a, err := Analyze(testBooks(), Filter{})
	if err != nil {
		t.Fatal(err)
	}

	if a.TotalBooks != 3 {
		t.Errorf("expected 3 books, got %d", a.TotalBooks)
	}
	if a.TotalRatings != 1450 {
		t.Errorf("expected 1450 total ratings, got %d", a.TotalRatings)
	}
	if math.Abs(a.AverageRating-3.8) > 0.001 {
		t.Errorf("expected average rating 3.8, got %f", a.AverageRating)
	}
	if a.Distribution.High != 1 || a.Distribution.Medium != 1 || a.Distribution.Low != 1 {
		t.Errorf("unexpected distribution: %+v", a.Distribution)
	}
	if a.MostPopularBooks[0].ID != "1" {
		t.Errorf("expected book 1 most popular, got %s", a.MostPopularBooks[0].ID)
	}
	if got := a.YearTrend[2020]; math.Abs(got-0.585) > 0.001 {
		t.Errorf("expected 2020 trend 0.585, got %f", got)
	}
	if got := a.GenrePopularity["Fantasy"]; math.Abs(got-0.785) > 0.001 {
		t.Errorf("expected Fantasy popularity 0.785, got %f", got)
	}
}

func TestAnalyzeFilters(t *testing.T) {
	a, err := Analyze(testBooks(), Filter{Genre: "Fantasy", YearRange: []int{2020, 2021}})
	if err != nil {
		t.Fatal(err)
	}
	if a.TotalBooks != 1 {
		t.Errorf("expected 1 book after filters, got %d", a.TotalBooks)
	}

	a, err = Analyze(testBooks(), Filter{BookID: "3"})
	if err != nil {
		t.Fatal(err)
	}
	if a.TotalBooks != 1 || a.MostPopularBooks[0].ID != "3" {
		t.Errorf("expected only book 3, got %+v", a)
	}
}
