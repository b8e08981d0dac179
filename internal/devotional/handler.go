package devotional

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/talitapaixao/terapia-com-deus-api/pkg/response"
)

// DailyService is the slice of Service the HTTP layer needs.
type DailyService interface {
	ResolveDaily(ctx context.Context, forceRefresh bool) Resolution
	GenerateForTopic(ctx context.Context, topic string) DevotionalContent
	Narrate(ctx context.Context, content DevotionalContent) ([]byte, error)
}

// NotificationPrefs is the device-local notification preference flag.
type NotificationPrefs interface {
	NotificationsEnabled() bool
	SetNotificationsEnabled(enabled bool) error
}

type Handler struct {
	service DailyService
	prefs   NotificationPrefs
}

func NewHandler(service DailyService, prefs NotificationPrefs) Handler {
	return Handler{service: service, prefs: prefs}
}

type TopicRequest struct {
	Topic string `json:"topic"`
}

type NotificationsRequest struct {
	Enabled bool `json:"enabled"`
}

func (h *Handler) GetDailyHandler(w http.ResponseWriter, r *http.Request) {
	forceRefresh := r.URL.Query().Get("refresh") == "true"

	res := h.service.ResolveDaily(r.Context(), forceRefresh)
	response.Success(w, res, "successfully")
}

func (h *Handler) GetTopicsHandler(w http.ResponseWriter, r *http.Request) {
	response.Success(w, TopicsList, "successfully")
}

func (h *Handler) GenerateTopicHandler(w http.ResponseWriter, r *http.Request) {
	var req TopicRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid JSON body", err.Error())
		return
	}

	if strings.TrimSpace(req.Topic) == "" {
		response.Error(w, http.StatusBadRequest, "Missing required fields", map[string]string{
			"topic": "topic is required",
		})
		return
	}

	content := h.service.GenerateForTopic(r.Context(), strings.TrimSpace(req.Topic))
	response.Success(w, content, "successfully")
}

// NarrateHandler streams freshly synthesized audio for the posted content.
// Topic devotionals are never stored, so their narration has no shared asset
// to point at.
func (h *Handler) NarrateHandler(w http.ResponseWriter, r *http.Request) {
	var content DevotionalContent
	if err := json.NewDecoder(r.Body).Decode(&content); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid JSON body", err.Error())
		return
	}
	if !content.Complete() {
		response.Error(w, http.StatusBadRequest, "Missing required fields", "devotional content is incomplete")
		return
	}

	audio, err := h.service.Narrate(r.Context(), content)
	if err != nil {
		response.Error(w, http.StatusBadGateway, "Failed to generate audio", err.Error())
		return
	}

	w.Header().Set("Content-Type", "audio/mpeg")
	w.WriteHeader(http.StatusOK)
	w.Write(audio)
}

func (h *Handler) ShareHandler(w http.ResponseWriter, r *http.Request) {
	var content DevotionalContent
	if err := json.NewDecoder(r.Body).Decode(&content); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid JSON body", err.Error())
		return
	}

	response.Success(w, map[string]string{
		"text": ShareText(content),
	}, "successfully")
}

// RegenerateHandler forces a full resolution pass. Admin only.
func (h *Handler) RegenerateHandler(w http.ResponseWriter, r *http.Request) {
	res := h.service.ResolveDaily(r.Context(), true)
	response.Success(w, res, "successfully")
}

func (h *Handler) GetNotificationsHandler(w http.ResponseWriter, r *http.Request) {
	response.Success(w, map[string]bool{
		"enabled": h.prefs.NotificationsEnabled(),
	}, "successfully")
}

func (h *Handler) SetNotificationsHandler(w http.ResponseWriter, r *http.Request) {
	var req NotificationsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid JSON body", err.Error())
		return
	}

	if err := h.prefs.SetNotificationsEnabled(req.Enabled); err != nil {
		response.Error(w, http.StatusInternalServerError, "Failed to save preference", err.Error())
		return
	}

	response.Success(w, map[string]bool{"enabled": req.Enabled}, "successfully")
}
