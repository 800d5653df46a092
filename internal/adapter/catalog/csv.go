// Package catalog parses and preprocesses book catalogs uploaded as CSV.
package catalog

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"bookrec/internal/domain"
)

// Required header columns, in any order. Genres are semicolon-separated.
var requiredColumns = []string{"id", "title", "summary", "genres", "year", "avg_rating", "ratings_count"}

// ParseError describes a malformed CSV with enough context to fix the file.
type ParseError struct {
	Row    int // 1-based data row, 0 for header problems
	Column string
	Reason string
}

func (e *ParseError) Error() string {
	if e.Row == 0 {
		return fmt.Sprintf("csv: %s: %s", e.Column, e.Reason)
	}
	return fmt.Sprintf("csv row %d: column %q: %s", e.Row, e.Column, e.Reason)
}

// IsParseError reports whether err is a catalog parse error.
func IsParseError(err error) bool {
	var pe *ParseError
	return errors.As(err, &pe)
}

// ParseCSV decodes a book catalog. The header must contain all required
// columns; year, avg_rating and ratings_count must be numeric. Genres split
// on semicolons with blanks dropped. PopScore is left zero; scoring happens
// at load time.
func ParseCSV(r io.Reader) ([]domain.Book, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, &ParseError{Column: "header", Reason: "missing or unreadable header row"}
	}

	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.TrimSpace(strings.ToLower(name))] = i
	}
	for _, required := range requiredColumns {
		if _, ok := cols[required]; !ok {
			return nil, &ParseError{Column: required, Reason: "required column missing"}
		}
	}

	var books []domain.Book
	for row := 1; ; row++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, &ParseError{Row: row, Column: "record", Reason: err.Error()}
		}

		field := func(name string) string { return strings.TrimSpace(record[cols[name]]) }

		year, err := strconv.Atoi(field("year"))
		if err != nil {
			return nil, &ParseError{Row: row, Column: "year", Reason: "not an integer"}
		}
		avgRating, err := strconv.ParseFloat(field("avg_rating"), 64)
		if err != nil {
			return nil, &ParseError{Row: row, Column: "avg_rating", Reason: "not a number"}
		}
		ratingsCount, err := strconv.Atoi(field("ratings_count"))
		if err != nil {
			return nil, &ParseError{Row: row, Column: "ratings_count", Reason: "not an integer"}
		}

		books = append(books, domain.Book{
			ID:           field("id"),
			Title:        field("title"),
			Summary:      field("summary"),
			Genres:       SplitGenres(field("genres")),
			Year:         year,
			AvgRating:    avgRating,
			RatingsCount: ratingsCount,
		})
	}

	return books, nil
}

// SplitGenres splits a semicolon-separated genre field, trimming whitespace
// and dropping empty entries.
func SplitGenres(s string) []string {
	var genres []string
	for _, g := range strings.Split(s, ";") {
		g = strings.TrimSpace(g)
		if g != "" {
			genres = append(genres, g)
		}
	}
	return genres
}
