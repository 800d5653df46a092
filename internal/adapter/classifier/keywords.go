package classifier

import (
	"sort"
	"strings"

	"bookrec/internal/domain"
)

// genreKeywords maps each candidate genre to its hand-curated keyword list.
var genreKeywords = map[string][]string{
	"Fantasy":         {"magic", "dragon", "kingdom", "quest", "sword", "prophecy", "witch", "wizard", "elf", "dwarf", "orc", "spell", "enchanted"},
	"Science Fiction": {"space", "star", "planet", "future", "ai", "robot", "alien", "galaxy", "ship", "technology", "cyber", "dystopian", "time travel"},
	"Mystery":         {"murder", "detective", "clue", "investigation", "crime", "case", "secret", "mystery", "suspense", "whodunit"},
	"Romance":         {"love", "romance", "relationship", "heart", "kiss", "wedding", "couple", "passion", "affair", "dating"},
	"Thriller":        {"chase", "conspiracy", "danger", "threat", "spy", "heist", "mission", "race", "action", "adventure", "suspense"},
	"Nonfiction":      {"guide", "history", "science", "biography", "memoir", "how", "research", "educational", "academic"},
	"Historical":      {"empire", "war", "century", "king", "queen", "colonial", "ancient", "medieval", "renaissance", "victorian"},
	"Young Adult":     {"school", "teen", "coming", "age", "friendship", "young", "adolescent", "high school", "college"},
	"Horror":          {"ghost", "haunted", "darkness", "monster", "curse", "blood", "fear", "nightmare", "supernatural", "paranormal"},
	"Self-Help":       {"habit", "mindset", "improve", "productivity", "goal", "success", "anxiety", "motivation", "personal development"},
}

// KeywordScores scores every candidate genre by counting keyword occurrences
// in the normalized text, normalizes by the maximum count, and returns the
// top-k genres sorted by score descending with alphabetical tie-break.
func KeywordScores(normalized string, topK int) []domain.GenreScore {
	scores := make([]domain.GenreScore, 0, len(genreKeywords))
	for genre, keywords := range genreKeywords {
		count := 0
		for _, kw := range keywords {
			count += strings.Count(normalized, kw)
		}
		scores = append(scores, domain.GenreScore{Genre: genre, Score: float64(count)})
	}

	sort.Slice(scores, func(i, j int) bool {
		if scores[i].Score != scores[j].Score {
			return scores[i].Score > scores[j].Score
		}
		return scores[i].Genre < scores[j].Genre
	})

	max := scores[0].Score
	for i := range scores {
		if max > 0 {
			scores[i].Score /= max
		} else {
			scores[i].Score = 0
		}
	}

	if topK > 0 && len(scores) > topK {
		scores = scores[:topK]
	}
	return scores
}
