package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"villagepulse-main/internal/contextutil"
	"villagepulse-main/internal/kafka"
	myErr "villagepulse-main/internal/types/errors"
	"villagepulse-main/internal/vote"
	"villagepulse-main/internal/weight"
)

type VoteHandler struct {
	Logger     *zap.SugaredLogger
	VoteRepo   vote.VoteRepo
	Calc       *weight.Calculator
	Aggregator *vote.Aggregator
	Producer   kafka.EventProducer
}

func NewVoteHandler(
	l *zap.SugaredLogger,
	vr vote.VoteRepo,
	calc *weight.Calculator,
	agg *vote.Aggregator,
	producer kafka.EventProducer,
) *VoteHandler {
	return &VoteHandler{
		Logger:     l,
		VoteRepo:   vr,
		Calc:       calc,
		Aggregator: agg,
		Producer:   producer,
	}
}

// Cast handles POST /feedback/{id}/vote
// Вес голоса фиксируется в момент голосования и дальше не пересчитывается
func (h *VoteHandler) Cast(w http.ResponseWriter, r *http.Request) {
	userID, ok := contextutil.GetUserIDFromContext(r.Context())
	if !ok {
		myErr.SendErrorTo(w, myErr.ErrNoAuth, http.StatusUnauthorized, h.Logger)
		return
	}

	vars := mux.Vars(r)
	feedbackID := vars["id"]
	if feedbackID == "" {
		myErr.SendErrorTo(w, errors.New("missing feedback id"), http.StatusBadRequest, h.Logger)
		return
	}

	baseWeight, err := h.Calc.BaseWeight(r.Context(), userID, feedbackID)
	if err != nil {
		if errors.Is(err, myErr.ErrNotFound) {
			myErr.SendErrorTo(w, myErr.ErrNotFoundFeedback, http.StatusNotFound, h.Logger)
			return
		}
		myErr.SendErrorTo(w, err, http.StatusInternalServerError, h.Logger)
		return
	}

	created, err := h.VoteRepo.Create(r.Context(), &vote.Vote{
		ID:         uuid.New().String(),
		FeedbackID: feedbackID,
		UserID:     userID,
		Weight:     baseWeight,
	})
	if err != nil {
		if errors.Is(err, myErr.ErrAlreadyVoted) {
			myErr.SendErrorTo(w, err, http.StatusConflict, h.Logger)
			return
		}
		myErr.SendErrorTo(w, err, http.StatusInternalServerError, h.Logger)
		return
	}

	h.sendEvent(r, kafka.Event{
		FeedbackID: feedbackID,
		UserID:     userID,
		Type:       kafka.VoteCast,
		Weight:     created.Weight,
		Timestamp:  time.Now().UTC(),
	})

	stats, err := h.Aggregator.Stats(r.Context(), feedbackID)
	if err != nil {
		myErr.SendErrorTo(w, err, http.StatusInternalServerError, h.Logger)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(stats); err != nil {
		myErr.SendErrorTo(w, err, http.StatusInternalServerError, h.Logger)
		return
	}

	h.Logger.Infof("vote cast: user %s -> feedback %s (weight %.2f)", userID, feedbackID, created.Weight)
}

// Retract handles DELETE /feedback/{id}/vote
func (h *VoteHandler) Retract(w http.ResponseWriter, r *http.Request) {
	userID, ok := contextutil.GetUserIDFromContext(r.Context())
	if !ok {
		myErr.SendErrorTo(w, myErr.ErrNoAuth, http.StatusUnauthorized, h.Logger)
		return
	}

	vars := mux.Vars(r)
	feedbackID := vars["id"]
	if feedbackID == "" {
		myErr.SendErrorTo(w, errors.New("missing feedback id"), http.StatusBadRequest, h.Logger)
		return
	}

	if err := h.VoteRepo.Delete(r.Context(), feedbackID, userID); err != nil {
		if errors.Is(err, myErr.ErrVoteNotFound) {
			myErr.SendErrorTo(w, err, http.StatusNotFound, h.Logger)
			return
		}
		myErr.SendErrorTo(w, err, http.StatusInternalServerError, h.Logger)
		return
	}

	h.sendEvent(r, kafka.Event{
		FeedbackID: feedbackID,
		UserID:     userID,
		Type:       kafka.VoteRetracted,
		Timestamp:  time.Now().UTC(),
	})

	w.WriteHeader(http.StatusNoContent)
	h.Logger.Infof("vote retracted: user %s -> feedback %s", userID, feedbackID)
}

// Stats handles GET /feedback/{id}/votes
func (h *VoteHandler) Stats(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	feedbackID := vars["id"]
	if feedbackID == "" {
		myErr.SendErrorTo(w, errors.New("missing feedback id"), http.StatusBadRequest, h.Logger)
		return
	}

	stats, err := h.Aggregator.Stats(r.Context(), feedbackID)
	if err != nil {
		myErr.SendErrorTo(w, err, http.StatusInternalServerError, h.Logger)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(stats); err != nil {
		myErr.SendErrorTo(w, err, http.StatusInternalServerError, h.Logger)
		return
	}

	h.Logger.Infof("fetched vote stats for feedback: %s", feedbackID)
}

// Доставка события не влияет на результат запроса
func (h *VoteHandler) sendEvent(r *http.Request, event kafka.Event) {
	if h.Producer == nil {
		return
	}
	if err := h.Producer.SendEvent(r.Context(), event); err != nil {
		h.Logger.Warnf("failed to send %s event for feedback %s: %v", event.Type, event.FeedbackID, err)
	}
}
