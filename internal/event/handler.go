package event

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"

	"github.com/mfauzanap/event-registration/internal/auth"
	"github.com/mfauzanap/event-registration/internal/transport"
	"github.com/mfauzanap/event-registration/pkg/logger"
)

type ServiceAPI interface {
	CreateEvent(ctx context.Context, dto CreateEventDTO) (*Event, error)
	GetEvent(id int64) (*Event, error)
	ListEvents(status string) ([]*Event, error)
	UpdateEvent(ctx context.Context, id int64, dto UpdateEventDTO) (*Event, error)
	SoftDelete(ctx context.Context, id, actorID int64) error
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(service ServiceAPI) *Handler {
	lg := logger.LoggerWrapper()
	if lg == nil {
		lg = slog.Default()
	}
	return &Handler{
		BaseHandler: transport.NewBaseHandler(lg),
		Service:     service,
	}
}

func (h *Handler) CreateEvent(w http.ResponseWriter, r *http.Request) {
	var dto CreateEventDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("CreateEvent: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	e, err := h.Service.CreateEvent(r.Context(), dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, e)
}

func (h *Handler) GetEvent(w http.ResponseWriter, r *http.Request) {
	id, err := h.eventID(r)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid event ID")
		return
	}

	e, err := h.Service.GetEvent(id)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, e)
}

func (h *Handler) ListEvents(w http.ResponseWriter, r *http.Request) {
	status := r.URL.Query().Get("status")

	list, err := h.Service.ListEvents(status)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"events": list,
	})
}

func (h *Handler) UpdateEvent(w http.ResponseWriter, r *http.Request) {
	id, err := h.eventID(r)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid event ID")
		return
	}

	var dto UpdateEventDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("UpdateEvent: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	e, err := h.Service.UpdateEvent(r.Context(), id, dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, e)
}

func (h *Handler) DeleteEvent(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id, err := h.eventID(r)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid event ID")
		return
	}

	if err := h.Service.SoftDelete(r.Context(), id, user.ID); err != nil {
		h.HandleServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) eventID(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}
