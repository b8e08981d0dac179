package view

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/talitapaixao/terapia-com-deus-api/pkg/response"
)

type Handler struct {
	tracker *Tracker
}

func NewHandler(tracker *Tracker) Handler {
	return Handler{tracker: tracker}
}

type NavigateRequest struct {
	View        View   `json:"view"`
	ActiveTopic string `json:"active_topic"`
}

type LoadingRequest struct {
	Loading bool `json:"loading"`
}

func (h *Handler) GetViewHandler(w http.ResponseWriter, r *http.Request) {
	response.Success(w, h.tracker.Current(), "successfully")
}

func (h *Handler) NavigateHandler(w http.ResponseWriter, r *http.Request) {
	var req NavigateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid JSON body", err.Error())
		return
	}

	state, err := h.tracker.Navigate(req.View, req.ActiveTopic)
	if err != nil {
		if errors.Is(err, ErrUnknownView) {
			response.Error(w, http.StatusBadRequest, "Invalid view", err.Error())
			return
		}
		response.Error(w, http.StatusInternalServerError, "Failed to navigate", err.Error())
		return
	}

	response.Success(w, state, "successfully")
}

// SetLoadingHandler toggles the loading flag on the current screen without
// navigating.
func (h *Handler) SetLoadingHandler(w http.ResponseWriter, r *http.Request) {
	var req LoadingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid JSON body", err.Error())
		return
	}

	response.Success(w, h.tracker.SetLoading(req.Loading), "successfully")
}
