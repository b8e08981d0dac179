package chat

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/talitapaixao/terapia-com-deus-api/pkg/response"
)

type Handler struct {
	assistant Assistant
}

func NewHandler(assistant Assistant) Handler {
	return Handler{assistant: assistant}
}

func (h *Handler) SendMessageHandler(w http.ResponseWriter, r *http.Request) {
	var req MessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid JSON body", err.Error())
		return
	}

	if strings.TrimSpace(req.Message) == "" {
		response.Error(w, http.StatusBadRequest, "Missing required fields", map[string]string{
			"message": "message is required",
		})
		return
	}

	reply := h.assistant.Reply(r.Context(), req.Message, req.History)

	response.Success(w, Message{
		ID:        uuid.NewString(),
		Text:      reply,
		IsUser:    false,
		Timestamp: time.Now().UnixMilli(),
	}, "successfully")
}
