package api

import (
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"bookrec/internal/adapter/catalog"
	"bookrec/internal/adapter/classifier"
	"bookrec/internal/adapter/feedback"
	"bookrec/internal/adapter/popularity"
	"bookrec/internal/domain"
	"bookrec/internal/usecase"
)

const maxUploadBytes = 32 << 20

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":       "ok",
		"books_loaded": s.engine.Status().BooksLoaded,
	})
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// openCSVUpload extracts and validates the uploaded file from a multipart
// request.
func openCSVUpload(r *http.Request) (multipart.File, error) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		return nil, fmt.Errorf("invalid multipart request: %w", err)
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		return nil, errors.New("missing file field")
	}
	if !strings.HasSuffix(strings.ToLower(header.Filename), ".csv") {
		file.Close()
		return nil, errors.New("please upload a CSV file")
	}
	return file, nil
}

func (s *Server) handleIngestCSV(w http.ResponseWriter, r *http.Request) {
	file, err := openCSVUpload(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	defer file.Close()

	books, err := catalog.ParseCSV(file)
	if err != nil {
		if catalog.IsParseError(err) {
			writeError(w, http.StatusBadRequest, err.Error())
		} else {
			writeError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}

	opts := catalog.Options{
		Clean:             s.cfg.Preprocess.Clean,
		Dedupe:            s.cfg.Preprocess.Dedupe,
		StandardizeGenres: s.cfg.Preprocess.StandardizeGenres,
	}
	result, err := s.engine.Load(books, opts)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"ok": true, "count": result.Count})
}

func (s *Server) handleListBooks(w http.ResponseWriter, r *http.Request) {
	limit := 25
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			writeError(w, http.StatusBadRequest, "limit must be a non-negative integer")
			return
		}
		limit = parsed
	}

	items := s.engine.Books(0)
	total := len(items)
	if limit < len(items) {
		items = items[:limit]
	}
	if items == nil {
		items = []domain.Book{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"count": total, "items": items})
}

type classifyRequest struct {
	Text string `json:"text"`
	TopK int    `json:"top_k"`
}

func (s *Server) handleClassify(w http.ResponseWriter, r *http.Request) {
	var req classifyRequest
	if err := decodeJSON(r.Body, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	result := s.engine.Classify(req.Text, 3)
	writeJSON(w, http.StatusOK, map[string]any{"genres": result.Genres})
}

type recommendRequest struct {
	Query string `json:"query"`
	TopK  int    `json:"top_k"`
}

func (s *Server) handleRecommend(w http.ResponseWriter, r *http.Request) {
	var req recommendRequest
	if err := decodeJSON(r.Body, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	results := s.engine.Recommend(req.Query, req.TopK)
	writeJSON(w, http.StatusOK, map[string]any{"results": results})
}

// formBool reads a boolean form field, defaulting to true when absent.
func formBool(r *http.Request, name string) bool {
	raw := r.FormValue(name)
	if raw == "" {
		return true
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return true
	}
	return v
}

func (s *Server) handlePreprocess(w http.ResponseWriter, r *http.Request) {
	file, err := openCSVUpload(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	defer file.Close()

	books, err := catalog.ParseCSV(file)
	if err != nil {
		if catalog.IsParseError(err) {
			writeError(w, http.StatusBadRequest, err.Error())
		} else {
			writeError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}

	opts := catalog.Options{
		Clean:             formBool(r, "clean_data"),
		Dedupe:            formBool(r, "remove_duplicates"),
		StandardizeGenres: formBool(r, "standardize_genres"),
	}
	result, err := s.engine.Load(books, opts)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	var ratingSum float64
	loaded := s.engine.Books(0)
	for _, b := range loaded {
		ratingSum += b.AvgRating
	}
	var avgRating float64
	if len(loaded) > 0 {
		avgRating = ratingSum / float64(len(loaded))
	}

	sample := loaded
	if len(sample) > 5 {
		sample = sample[:5]
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"message":         "Data preprocessing completed successfully",
		"original_count":  result.Preprocess.OriginalCount,
		"processed_count": result.Preprocess.ProcessedCount,
		"books_loaded":    result.Count,
		"preprocessing_stats": map[string]any{
			"total_books":         result.Count,
			"unique_genres":       result.UniqueGenres,
			"average_rating":      avgRating,
			"duplicates_removed":  result.Preprocess.DuplicatesRemoved,
			"data_cleaned":        result.Preprocess.DataCleaned,
			"genres_standardized": result.Preprocess.GenresStandardized,
		},
		"sample_books": sample,
	})
}

func (s *Server) handleClassifyGenres(w http.ResponseWriter, r *http.Request) {
	var req classifyRequest
	if err := decodeJSON(r.Body, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	result := s.engine.Classify(req.Text, req.TopK)

	primary := "Unknown"
	if len(result.Genres) > 0 {
		primary = result.Genres[0].Genre
	}
	confidences := make(map[string]float64, len(result.Genres))
	for _, gs := range result.Genres {
		confidences[gs.Genre] = gs.Score
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"input_text":        req.Text,
		"genre_predictions": result.Genres,
		"primary_genre":     primary,
		"confidence_scores": confidences,
		"method":            result.Method,
		"fallback_reason":   result.Fallback,
	})
}

type popularityRequest struct {
	BookID    string `json:"book_id"`
	Genre     string `json:"genre"`
	YearRange []int  `json:"year_range"`
}

func (s *Server) handleAnalyzePopularity(w http.ResponseWriter, r *http.Request) {
	var req popularityRequest
	if err := decodeJSON(r.Body, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	analysis, err := s.engine.AnalyzePopularity(popularity.Filter{
		BookID:    req.BookID,
		Genre:     req.Genre,
		YearRange: req.YearRange,
	})
	if err != nil {
		// Empty or unmatched catalogs are payload-level errors, not
		// transport failures.
		if errors.Is(err, popularity.ErrNoBooks) || errors.Is(err, popularity.ErrNoMatch) {
			writeJSON(w, http.StatusOK, map[string]string{"error": err.Error()})
			return
		}
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"popularity_analysis": analysis})
}

func (s *Server) handleEnhancedRecommendation(w http.ResponseWriter, r *http.Request) {
	var req recommendRequest
	if err := decodeJSON(r.Body, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	results := s.engine.Recommend(req.Query, req.TopK)

	var insights any
	if ins := s.engine.FeedbackInsights(); ins != nil {
		insights = ins
	} else {
		insights = map[string]string{"message": "No user feedback available"}
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"query":                 req.Query,
		"recommendations":       results,
		"total_recommendations": len(results),
		"feedback_insights":     insights,
	})
}

type feedbackRequest struct {
	BookID string `json:"book_id"`
	Rating int    `json:"rating"`
	Text   string `json:"feedback_text"`
	UserID string `json:"user_id"`
}

func (s *Server) handleSubmitFeedback(w http.ResponseWriter, r *http.Request) {
	var req feedbackRequest
	if err := decodeJSON(r.Body, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.BookID == "" {
		writeError(w, http.StatusBadRequest, "book_id is required")
		return
	}

	count, err := s.engine.AddFeedback(req.BookID, req.Rating, req.Text, req.UserID)
	if err != nil {
		if errors.Is(err, feedback.ErrInvalidRating) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"message":        "Feedback submitted successfully",
		"book_id":        req.BookID,
		"rating":         req.Rating,
		"feedback_count": count,
	})
}

func (s *Server) handleFeedbackInsights(w http.ResponseWriter, r *http.Request) {
	ins := s.engine.FeedbackInsights()
	if ins == nil {
		writeJSON(w, http.StatusOK, map[string]string{"message": "No user feedback available"})
		return
	}
	writeJSON(w, http.StatusOK, ins)
}

func (s *Server) handleSystemStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, systemStatus(s.engine.Status()))
}

func systemStatus(st usecase.Status) map[string]any {
	classifierMode := classifier.MethodKeywords
	if st.ModelTrained {
		classifierMode = classifier.MethodModel
	}
	return map[string]any{
		"system":       "bookrec",
		"status":       "operational",
		"books_loaded": st.BooksLoaded,
		"components": map[string]any{
			"document_index":   st.IndexReady,
			"genre_classifier": string(classifierMode),
			"unique_genres":    st.UniqueGenres,
			"feedback_events":  st.FeedbackEvents,
			"persistence":      st.Persistence,
		},
	}
}
