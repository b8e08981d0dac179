package journal

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/talitapaixao/terapia-com-deus-api/pkg/response"
)

type Handler struct {
	store Store
}

func NewHandler(store Store) Handler {
	return Handler{store: store}
}

func (h *Handler) ListNotesHandler(w http.ResponseWriter, r *http.Request) {
	notes := h.store.Notes()
	if notes == nil {
		notes = []Note{}
	}
	response.Success(w, notes, "successfully")
}

func (h *Handler) SaveNoteHandler(w http.ResponseWriter, r *http.Request) {
	var req SaveNoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid JSON body", err.Error())
		return
	}

	notes, err := h.store.Save(req.Text)
	if err != nil {
		if errors.Is(err, ErrEmptyNote) {
			response.Error(w, http.StatusBadRequest, "Missing required fields", map[string]string{
				"text": "text is required",
			})
			return
		}
		response.Error(w, http.StatusInternalServerError, "Failed to save note", err.Error())
		return
	}

	response.Created(w, notes, "successfully")
}

func (h *Handler) DeleteNoteHandler(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.Error(w, http.StatusBadRequest, "Missing required fields", map[string]string{
			"id": "id is required",
		})
		return
	}

	notes, err := h.store.Delete(id)
	if err != nil {
		response.Error(w, http.StatusInternalServerError, "Failed to delete note", err.Error())
		return
	}

	response.Success(w, notes, "successfully")
}
