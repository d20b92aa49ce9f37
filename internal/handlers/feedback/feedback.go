package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"unicode/utf8"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"villagepulse-main/internal/contextutil"
	"villagepulse-main/internal/feedback"
	"villagepulse-main/internal/similarity"
	"villagepulse-main/internal/trending"
	esDoc "villagepulse-main/internal/types/elastic"
	myErr "villagepulse-main/internal/types/errors"
	typesFb "villagepulse-main/internal/types/feedback"
)

// Лимиты формы создания фидбека
const (
	maxTitleLength = 200
	maxBodyLength  = 5000
)

// Searcher полнотекстовый поиск фидбеков
type Searcher interface {
	SearchByTitle(ctx context.Context, query string) ([]esDoc.FeedbackDoc, error)
}

type FeedbackHandler struct {
	Logger       *zap.SugaredLogger
	FeedbackRepo feedback.FeedbackRepo
	Matcher      *similarity.Matcher
	Ranker       *trending.Ranker
	Search       Searcher
}

func NewFeedbackHandler(
	l *zap.SugaredLogger,
	fr feedback.FeedbackRepo,
	matcher *similarity.Matcher,
	ranker *trending.Ranker,
	search Searcher,
) *FeedbackHandler {
	return &FeedbackHandler{
		Logger:       l,
		FeedbackRepo: fr,
		Matcher:      matcher,
		Ranker:       ranker,
		Search:       search,
	}
}

// Create handles POST /feedback
func (h *FeedbackHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := contextutil.GetUserIDFromContext(r.Context())
	if !ok {
		myErr.SendErrorTo(w, myErr.ErrNoAuth, http.StatusUnauthorized, h.Logger)
		return
	}

	var input typesFb.CreateFeedback
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		myErr.SendErrorTo(w, myErr.ErrInvalidJSONPayload, http.StatusBadRequest, h.Logger)
		return
	}
	input.AuthorID = userID

	if input.Title == "" {
		myErr.SendErrorTo(w, myErr.ErrTitleIsRequired, http.StatusBadRequest, h.Logger)
		return
	}
	if utf8.RuneCountInString(input.Title) > maxTitleLength {
		myErr.SendErrorTo(w, myErr.ErrTitleIsTooLong, http.StatusBadRequest, h.Logger)
		return
	}
	if utf8.RuneCountInString(input.Body) > maxBodyLength {
		myErr.SendErrorTo(w, myErr.ErrBodyIsTooLong, http.StatusBadRequest, h.Logger)
		return
	}

	fb, err := h.FeedbackRepo.Create(r.Context(), input)
	if err != nil {
		myErr.SendErrorTo(w, err, http.StatusInternalServerError, h.Logger)
		return
	}

	// Сразу подсказываем автору возможные дубликаты
	duplicates, err := h.Matcher.FindDuplicates(r.Context(), fb.Title, fb.ID)
	if err != nil {
		h.Logger.Warnf("failed to find duplicates for feedback %s: %v", fb.ID, err)
		duplicates = []similarity.Match{}
	}

	resp := struct {
		Feedback   *feedback.Feedback `json:"feedback"`
		Duplicates []similarity.Match `json:"duplicates"`
	}{
		Feedback:   fb,
		Duplicates: duplicates,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		myErr.SendErrorTo(w, err, http.StatusInternalServerError, h.Logger)
		return
	}

	h.Logger.Infof("feedback created: %s", fb.ID)
}

// GetByID handles GET /feedback/{id}
func (h *FeedbackHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id := vars["id"]
	if id == "" {
		myErr.SendErrorTo(w, errors.New("missing feedback id"), http.StatusBadRequest, h.Logger)
		return
	}

	fb, err := h.FeedbackRepo.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, myErr.ErrNotFound) {
			myErr.SendErrorTo(w, myErr.ErrNotFoundFeedback, http.StatusNotFound, h.Logger)
			return
		}
		myErr.SendErrorTo(w, err, http.StatusInternalServerError, h.Logger)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(fb); err != nil {
		myErr.SendErrorTo(w, err, http.StatusInternalServerError, h.Logger)
		return
	}

	h.Logger.Infof("fetched feedback by id: %s", id)
}

// Duplicates handles GET /feedback/duplicates?title={title}&exclude_id={id}
func (h *FeedbackHandler) Duplicates(w http.ResponseWriter, r *http.Request) {
	title := r.URL.Query().Get("title")
	if title == "" {
		myErr.SendErrorTo(w, myErr.ErrTitleIsRequired, http.StatusBadRequest, h.Logger)
		return
	}
	excludeID := r.URL.Query().Get("exclude_id")

	matches, err := h.Matcher.FindDuplicates(r.Context(), title, excludeID)
	if err != nil {
		myErr.SendErrorTo(w, err, http.StatusInternalServerError, h.Logger)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(matches); err != nil {
		myErr.SendErrorTo(w, err, http.StatusInternalServerError, h.Logger)
		return
	}

	h.Logger.Infof("found %d duplicates for title: %s", len(matches), title)
}

// Trending handles GET /feedback/trending?max_age_days={n}&limit={n}&min_votes={n}&feature_id={id}
func (h *FeedbackHandler) Trending(w http.ResponseWriter, r *http.Request) {
	params := typesFb.TrendingParams{
		FeatureID: r.URL.Query().Get("feature_id"),
	}

	if v := r.URL.Query().Get("max_age_days"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			params.MaxAgeDays = n
		}
	}
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			params.Limit = n
		}
	}
	if v := r.URL.Query().Get("min_votes"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			params.MinVotes = n
		}
	}

	ranked, err := h.Ranker.Trending(r.Context(), params)
	if err != nil {
		myErr.SendErrorTo(w, err, http.StatusInternalServerError, h.Logger)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(ranked); err != nil {
		myErr.SendErrorTo(w, err, http.StatusInternalServerError, h.Logger)
		return
	}

	h.Logger.Infof("fetched %d trending feedbacks", len(ranked))
}

// Search handles GET /feedback/search?q={query}
func (h *FeedbackHandler) SearchByTitle(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	if q == "" {
		myErr.SendErrorTo(w, errors.New("missing query parameter"), http.StatusBadRequest, h.Logger)
		return
	}

	docs, err := h.Search.SearchByTitle(r.Context(), q)
	if err != nil {
		myErr.SendErrorTo(w, err, http.StatusInternalServerError, h.Logger)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(docs); err != nil {
		myErr.SendErrorTo(w, err, http.StatusInternalServerError, h.Logger)
		return
	}

	h.Logger.Infof("searched feedback with query: %s", q)
}
