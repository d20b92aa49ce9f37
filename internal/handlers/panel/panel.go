package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"villagepulse-main/internal/panel"
	myErr "villagepulse-main/internal/types/errors"
)

type PanelHandler struct {
	Logger    *zap.SugaredLogger
	PanelRepo panel.PanelRepo
	Tracker   *panel.Tracker
}

func NewPanelHandler(l *zap.SugaredLogger, pr panel.PanelRepo, tracker *panel.Tracker) *PanelHandler {
	return &PanelHandler{
		Logger:    l,
		PanelRepo: pr,
		Tracker:   tracker,
	}
}

// GetByID handles GET /panel/{id}
func (h *PanelHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id := vars["id"]
	if id == "" {
		myErr.SendErrorTo(w, errors.New("missing panel id"), http.StatusBadRequest, h.Logger)
		return
	}

	p, err := h.PanelRepo.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, myErr.ErrNotFound) {
			myErr.SendErrorTo(w, myErr.ErrNotFoundPanel, http.StatusNotFound, h.Logger)
			return
		}
		myErr.SendErrorTo(w, err, http.StatusInternalServerError, h.Logger)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(p); err != nil {
		myErr.SendErrorTo(w, err, http.StatusInternalServerError, h.Logger)
		return
	}

	h.Logger.Infof("fetched panel by id: %s", id)
}

// QuotaReport handles GET /panel/{id}/quotas
// Возвращает состояние каждой квоты и сводку здоровья панели
func (h *PanelHandler) QuotaReport(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id := vars["id"]
	if id == "" {
		myErr.SendErrorTo(w, errors.New("missing panel id"), http.StatusBadRequest, h.Logger)
		return
	}

	p, err := h.PanelRepo.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, myErr.ErrNotFound) {
			myErr.SendErrorTo(w, myErr.ErrNotFoundPanel, http.StatusNotFound, h.Logger)
			return
		}
		myErr.SendErrorTo(w, err, http.StatusInternalServerError, h.Logger)
		return
	}

	members, err := h.PanelRepo.ListMembers(r.Context(), id)
	if err != nil {
		myErr.SendErrorTo(w, err, http.StatusInternalServerError, h.Logger)
		return
	}

	progress := h.Tracker.QuotaProgress(p, members)
	summary := h.Tracker.HealthSummary(progress)

	resp := struct {
		PanelID string                `json:"panel_id"`
		Quotas  []panel.QuotaProgress `json:"quotas"`
		Summary panel.HealthSummary   `json:"summary"`
	}{
		PanelID: id,
		Quotas:  progress,
		Summary: summary,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		myErr.SendErrorTo(w, err, http.StatusInternalServerError, h.Logger)
		return
	}

	h.Logger.Infof("built quota report for panel: %s", id)
}
