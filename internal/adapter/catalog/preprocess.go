package catalog

import (
	"strings"

	"bookrec/internal/domain"
)

// Options controls preprocessing before a catalog load.
type Options struct {
	Clean             bool `json:"clean_data"`
	Dedupe            bool `json:"remove_duplicates"`
	StandardizeGenres bool `json:"standardize_genres"`
}

// DefaultOptions enables every preprocessing step.
func DefaultOptions() Options {
	return Options{Clean: true, Dedupe: true, StandardizeGenres: true}
}

// Stats summarizes what preprocessing did.
type Stats struct {
	OriginalCount      int  `json:"original_count"`
	ProcessedCount     int  `json:"processed_count"`
	DuplicatesRemoved  int  `json:"duplicates_removed"`
	DataCleaned        bool `json:"data_cleaned"`
	GenresStandardized bool `json:"genres_standardized"`
}

// genreAliases standardizes common alternate spellings of genre names.
var genreAliases = map[string]string{
	"Sci-Fi":      "Science Fiction",
	"SciFi":       "Science Fiction",
	"SFF":         "Science Fiction",
	"Fiction":     "General Fiction",
	"Non-Fiction": "Nonfiction",
	"Self Help":   "Self-Help",
	"YA":          "Young Adult",
}

// Preprocess cleans, dedupes and standardizes parsed records per the
// options. Records keep catalog order; dedupe keeps the first of each
// (title, summary) pair.
func Preprocess(books []domain.Book, opts Options) ([]domain.Book, Stats) {
	stats := Stats{
		OriginalCount:      len(books),
		DataCleaned:        opts.Clean,
		GenresStandardized: opts.StandardizeGenres,
	}

	out := make([]domain.Book, 0, len(books))
	seen := make(map[string]struct{}, len(books))
	for _, b := range books {
		if opts.Clean {
			b.Title = strings.TrimSpace(b.Title)
			b.Summary = strings.TrimSpace(b.Summary)
			for i, g := range b.Genres {
				b.Genres[i] = strings.TrimSpace(g)
			}
			if b.Title == "" || b.Summary == "" {
				continue
			}
		}

		if opts.Dedupe {
			key := b.Title + "\x00" + b.Summary
			if _, dup := seen[key]; dup {
				stats.DuplicatesRemoved++
				continue
			}
			seen[key] = struct{}{}
		}

		if opts.StandardizeGenres {
			for i, g := range b.Genres {
				if canonical, ok := genreAliases[g]; ok {
					b.Genres[i] = canonical
				}
			}
		}

		out = append(out, b)
	}

	stats.ProcessedCount = len(out)
	return out, stats
}
