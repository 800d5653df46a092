package classifier

import (
	"testing"

	"bookrec/internal/adapter/analyzer"
)

func TestKeywordScoresFantasyText(t *testing.T) {
	n := analyzer.NewNormalizer()

	scores := KeywordScores(n.Normalize("A dragon guards the kingdom with ancient magic and a cursed sword."), 3)
	if len(scores) != 3 {
		t.Fatalf("expected 3 scores, got %d", len(scores))
	}
	if scores[0].Genre != "Fantasy" {
		t.Errorf("expected Fantasy first, got %s", scores[0].Genre)
	}
	if scores[0].Score != 1.0 {
		t.Errorf("expected top score normalized to 1.0, got %f", scores[0].Score)
	}
	for _, gs := range scores {
		if gs.Score < 0 || gs.Score > 1 {
			t.Errorf("score out of [0,1]: %s=%f", gs.Genre, gs.Score)
		}
	}
}

func TestKeywordScoresEmptyText(t *testing.T) {
	scores := KeywordScores("", 3)
	if len(scores) != 3 {
		t.Fatalf("expected 3 scores for empty text, got %d", len(scores))
	}
	for _, gs := range scores {
		if gs.Score != 0 {
			t.Errorf("expected zero score, got %s=%f", gs.Genre, gs.Score)
		}
	}
	// All-zero scores tie-break alphabetically.
	if scores[0].Genre != "Fantasy" || scores[1].Genre != "Historical" || scores[2].Genre != "Horror" {
		t.Errorf("expected alphabetical tie-break, got %v", scores)
	}
}

func TestKeywordScoresTieBreakAlphabetical(t *testing.T) {
	n := analyzer.NewNormalizer()

	// "suspense" appears in both the Mystery and Thriller keyword lists.
	scores := KeywordScores(n.Normalize("a story of suspense"), 10)
	var mysteryAt, thrillerAt int
	for i, gs := range scores {
		switch gs.Genre {
		case "Mystery":
			mysteryAt = i
		case "Thriller":
			thrillerAt = i
		}
	}
	if mysteryAt > thrillerAt {
		t.Errorf("expected Mystery before Thriller on equal score, got mystery=%d thriller=%d", mysteryAt, thrillerAt)
	}
}

func TestTrainNaiveBayesTooFewClasses(t *testing.T) {
	n := analyzer.NewNormalizer()

	_, err := TrainNaiveBayes(
		[]string{"dragon magic", "sword quest"},
		[]string{"Fantasy", "Fantasy"},
		n, 100,
	)
	if err != ErrTooFewClasses {
		t.Errorf("expected ErrTooFewClasses, got %v", err)
	}
}

func TestNaiveBayesPredict(t *testing.T) {
	n := analyzer.NewNormalizer()

	texts := []string{
		"dragon magic kingdom sword wizard spell",
		"magic quest prophecy enchanted witch dragon",
		"space alien galaxy robot future technology",
		"planet star ship alien space future",
	}
	labels := []string{"Fantasy", "Fantasy", "Science Fiction", "Science Fiction"}

	nb, err := TrainNaiveBayes(texts, labels, n, 1000)
	if err != nil {
		t.Fatal(err)
	}

	genre, confidence, err := nb.Predict(n.Normalize("a wizard casts a magic spell on the dragon"))
	if err != nil {
		t.Fatal(err)
	}
	if genre != "Fantasy" {
		t.Errorf("expected Fantasy, got %s", genre)
	}
	if confidence < 0 || confidence > 1 {
		t.Errorf("confidence out of [0,1]: %f", confidence)
	}

	genre, _, err = nb.Predict(n.Normalize("robots explore a distant planet in space"))
	if err != nil {
		t.Fatal(err)
	}
	if genre != "Science Fiction" {
		t.Errorf("expected Science Fiction, got %s", genre)
	}
}

func TestClassifyModelAbsentFallsBack(t *testing.T) {
	c := New(analyzer.NewNormalizer(), nil, 0.3)

	result := c.Classify("a haunted house full of ghosts", 3)
	if result.Method != MethodKeywords {
		t.Errorf("expected keyword method, got %s", result.Method)
	}
	if result.Fallback != FallbackModelAbsent {
		t.Errorf("expected model_absent fallback, got %s", result.Fallback)
	}
	if len(result.Genres) != 3 {
		t.Errorf("expected 3 genres, got %d", len(result.Genres))
	}
	if result.Genres[0].Genre != "Horror" {
		t.Errorf("expected Horror first, got %s", result.Genres[0].Genre)
	}
}

func TestClassifyModelPathSingleResult(t *testing.T) {
	n := analyzer.NewNormalizer()
	texts := []string{
		"dragon magic kingdom sword wizard",
		"magic quest prophecy dragon spell",
		"space alien galaxy robot future",
		"planet star ship alien technology",
	}
	labels := []string{"Fantasy", "Fantasy", "Science Fiction", "Science Fiction"}
	nb, err := TrainNaiveBayes(texts, labels, n, 1000)
	if err != nil {
		t.Fatal(err)
	}

	c := New(n, nb, 0.3)
	result := c.Classify("dragon magic wizard spell kingdom", 3)
	if result.Method != MethodModel {
		t.Fatalf("expected model method, got %s (fallback %s)", result.Method, result.Fallback)
	}
	if len(result.Genres) != 1 {
		t.Fatalf("expected exactly one model prediction, got %d", len(result.Genres))
	}
	if result.Genres[0].Genre != "Fantasy" {
		t.Errorf("expected Fantasy, got %s", result.Genres[0].Genre)
	}
	if result.Genres[0].Score <= 0.3 {
		t.Errorf("model path requires confidence above threshold, got %f", result.Genres[0].Score)
	}
}

func TestClassifyLowConfidenceFallsBack(t *testing.T) {
	n := analyzer.NewNormalizer()
	texts := []string{"dragon magic", "space alien"}
	labels := []string{"Fantasy", "Science Fiction"}
	nb, err := TrainNaiveBayes(texts, labels, n, 1000)
	if err != nil {
		t.Fatal(err)
	}

	// An impossible threshold forces the low-confidence path.
	c := New(n, nb, 0.999)
	result := c.Classify("dragon magic", 3)
	if result.Method != MethodKeywords {
		t.Errorf("expected keyword fallback, got %s", result.Method)
	}
	if result.Fallback != FallbackLowConfidence {
		t.Errorf("expected low_confidence fallback, got %s", result.Fallback)
	}
}

func TestMatchScore(t *testing.T) {
	c := New(analyzer.NewNormalizer(), nil, 0.3)

	score := c.MatchScore("dragon kingdom magic", []string{"Fantasy"})
	if score != 1.0 {
		t.Errorf("expected full match for a fantasy query against a Fantasy book, got %f", score)
	}

	if score := c.MatchScore("dragon kingdom magic", nil); score != 0 {
		t.Errorf("expected zero match for untagged book, got %f", score)
	}
}

func TestClassifyTopKBounds(t *testing.T) {
	c := New(analyzer.NewNormalizer(), nil, 0.3)

	result := c.Classify("murder investigation", 5)
	if len(result.Genres) != 5 {
		t.Errorf("expected 5 genres, got %d", len(result.Genres))
	}
	for i := 1; i < len(result.Genres); i++ {
		if result.Genres[i].Score > result.Genres[i-1].Score {
			t.Errorf("scores not descending at %d: %v", i, result.Genres)
		}
	}
}
