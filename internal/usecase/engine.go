// Package usecase wires the catalog, document index, genre classifier and
// feedback log into the service's operations. All derived state lives in an
// immutable Snapshot that is replaced atomically on reload, so concurrent
// readers never observe a half-rebuilt index.
package usecase

import (
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"bookrec/config"
	"bookrec/internal/adapter/analyzer"
	"bookrec/internal/adapter/catalog"
	"bookrec/internal/adapter/classifier"
	"bookrec/internal/adapter/feedback"
	"bookrec/internal/adapter/index"
	"bookrec/internal/adapter/popularity"
	"bookrec/internal/adapter/store"
	"bookrec/internal/domain"
)

// Snapshot bundles the book collection with everything derived from it.
// A Snapshot is built whole and never mutated.
type Snapshot struct {
	Books      []domain.Book
	Index      *index.Index
	Classifier *classifier.Classifier
	Genres     map[string]struct{}
	LoadedAt   time.Time
}

// Engine owns the current snapshot and the feedback log.
type Engine struct {
	cfg      *config.Config
	log      *slog.Logger
	current  atomic.Pointer[Snapshot]
	feedback *feedback.Store
	snapshot *store.BoltStore // nil when persistence is disabled
}

// NewEngine creates an engine with an empty catalog. The keyword classifier
// tier works before any load; the model tier appears after the first load
// with at least two distinct genres.
func NewEngine(cfg *config.Config, log *slog.Logger, snapshots *store.BoltStore) *Engine {
	e := &Engine{
		cfg:      cfg,
		log:      log,
		feedback: feedback.NewStore(),
		snapshot: snapshots,
	}
	e.current.Store(e.buildSnapshot(nil))
	return e
}

// Restore loads the persisted catalog snapshot, if any, and rebuilds the
// derived state from it. A missing snapshot is not an error.
func (e *Engine) Restore() error {
	if e.snapshot == nil {
		return nil
	}
	books, err := e.snapshot.LoadCatalog()
	if err != nil {
		if errors.Is(err, store.ErrNoSnapshot) {
			return nil
		}
		return fmt.Errorf("restore catalog: %w", err)
	}

	e.current.Store(e.buildSnapshot(books))
	e.log.Info("catalog restored from snapshot", "books", len(books))
	return nil
}

// LoadResult reports what a catalog load did.
type LoadResult struct {
	Count        int
	UniqueGenres int
	ModelTrained bool
	Preprocess   catalog.Stats
}

// Load preprocesses the parsed records, computes popularity scores, rebuilds
// the index, retrains the classifier and swaps the bundle in atomically.
func (e *Engine) Load(books []domain.Book, opts catalog.Options) (*LoadResult, error) {
	processed, stats := catalog.Preprocess(books, opts)

	prior := popularity.Prior{Weight: e.cfg.Popularity.PriorWeight, Mean: e.cfg.Popularity.PriorMean}
	for i := range processed {
		processed[i].PopScore = popularity.Score(processed[i].AvgRating, processed[i].RatingsCount, prior)
	}

	snap := e.buildSnapshot(processed)
	e.current.Store(snap)

	if e.snapshot != nil {
		if err := e.snapshot.SaveCatalog(processed); err != nil {
			// The in-memory load already succeeded; persistence is
			// best effort.
			e.log.Warn("failed to persist catalog snapshot", "error", err)
		}
	}

	e.log.Info("catalog loaded",
		"books", len(processed),
		"genres", len(snap.Genres),
		"model_trained", snap.Classifier.HasModel(),
	)

	return &LoadResult{
		Count:        len(processed),
		UniqueGenres: len(snap.Genres),
		ModelTrained: snap.Classifier.HasModel(),
		Preprocess:   stats,
	}, nil
}

// buildSnapshot derives index and classifier state from a book list.
func (e *Engine) buildSnapshot(books []domain.Book) *Snapshot {
	normalizer := analyzer.NewNormalizer()

	corpus := make([]string, len(books))
	labels := make([]string, len(books))
	genres := make(map[string]struct{})
	for i, b := range books {
		corpus[i] = normalizer.FlattenBook(b.Title, b.Summary, b.Genres)
		labels[i] = b.PrimaryGenre()
		if labels[i] == "" {
			labels[i] = "Unknown"
		}
		for _, g := range b.Genres {
			genres[g] = struct{}{}
		}
	}

	ix := index.Build(corpus, normalizer, index.Options{
		MaxFeatures: e.cfg.Index.MaxFeatures,
		Bigrams:     e.cfg.Index.Bigrams,
	})

	// The model tier needs at least two distinct genres; otherwise the
	// classifier runs keyword-only.
	var model *classifier.NaiveBayes
	if len(genres) > 1 {
		trained, err := classifier.TrainNaiveBayes(corpus, labels, normalizer, e.cfg.Classifier.MaxFeatures)
		if err != nil {
			if !errors.Is(err, classifier.ErrTooFewClasses) {
				e.log.Warn("classifier training failed, using keyword tier", "error", err)
			}
		} else {
			model = trained
		}
	}

	return &Snapshot{
		Books:      books,
		Index:      ix,
		Classifier: classifier.New(normalizer, model, e.cfg.Classifier.ConfidenceThreshold),
		Genres:     genres,
		LoadedAt:   time.Now(),
	}
}

// Current returns the active snapshot. The returned value is immutable.
func (e *Engine) Current() *Snapshot {
	return e.current.Load()
}

// Books returns up to limit books in catalog order.
func (e *Engine) Books(limit int) []domain.Book {
	books := e.Current().Books
	if limit > 0 && limit < len(books) {
		books = books[:limit]
	}
	return books
}

// Classify returns top-k genre predictions for the text.
func (e *Engine) Classify(text string, topK int) classifier.Result {
	if topK <= 0 {
		topK = e.cfg.Classifier.TopK
	}
	return e.Current().Classifier.Classify(text, topK)
}

// AnalyzePopularity runs a popularity analysis over the current catalog.
func (e *Engine) AnalyzePopularity(filter popularity.Filter) (*popularity.Analysis, error) {
	return popularity.Analyze(e.Current().Books, filter)
}

// AddFeedback records a user rating for a book and returns the book's new
// event count.
func (e *Engine) AddFeedback(bookID string, rating int, text, userID string) (int, error) {
	if err := e.feedback.Add(bookID, rating, text, userID); err != nil {
		return 0, err
	}
	return e.feedback.Count(bookID), nil
}

// FeedbackInsights returns aggregate feedback statistics, or nil when no
// feedback has been submitted.
func (e *Engine) FeedbackInsights() *feedback.Insights {
	return e.feedback.Insights()
}

// Status describes which components are live.
type Status struct {
	BooksLoaded    int  `json:"books_loaded"`
	IndexReady     bool `json:"index_ready"`
	ModelTrained   bool `json:"model_trained"`
	UniqueGenres   int  `json:"unique_genres"`
	FeedbackEvents int  `json:"feedback_events"`
	Persistence    bool `json:"persistence_enabled"`
}

// Status introspects the current snapshot and feedback log.
func (e *Engine) Status() Status {
	snap := e.Current()
	var events int
	if ins := e.feedback.Insights(); ins != nil {
		events = ins.TotalCount
	}
	return Status{
		BooksLoaded:    len(snap.Books),
		IndexReady:     snap.Index.Len() > 0,
		ModelTrained:   snap.Classifier.HasModel(),
		UniqueGenres:   len(snap.Genres),
		FeedbackEvents: events,
		Persistence:    e.snapshot != nil,
	}
}
