package inscription

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"

	"github.com/mfauzanap/event-registration/internal/auth"
	"github.com/mfauzanap/event-registration/internal/transport"
	"github.com/mfauzanap/event-registration/pkg/logger"
)

// maxRegistrationFormMemory bounds multipart parsing; larger files spill to disk.
const maxRegistrationFormMemory = 10 << 20

type ServiceAPI interface {
	CreateInscription(ctx context.Context, userID, eventID int64, dto CreateInscriptionDTO) (*CreateResult, error)
	GetInscription(id, actorID int64, isAdmin bool) (*Inscription, error)
	ListByEvent(eventID int64) ([]*Inscription, error)
	SubmitResponses(id, actorID int64, isAdmin bool, dto SubmitResponsesDTO) (*SubmitResult, error)
	CancelInscription(id, actorID int64, isAdmin bool) error
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

// CreateInscription handles multipart registration submissions. Answer keys
// follow the "field_<id>" shape for both text values and file parts.
func (h *Handler) CreateInscription(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	eventID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid event ID")
		return
	}

	if err := r.ParseMultipartForm(maxRegistrationFormMemory); err != nil {
		h.Logger.Error("CreateInscription: multipart parse failed", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	parsed := h.parseForm(r)

	result, err := h.Service.CreateInscription(r.Context(), user.ID, eventID, parsed)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, result)
}

func (h *Handler) GetInscription(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid inscription ID")
		return
	}

	ins, err := h.Service.GetInscription(id, user.ID, user.IsAdmin())
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, ins)
}

func (h *Handler) ListByEvent(w http.ResponseWriter, r *http.Request) {
	eventID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid event ID")
		return
	}

	list, err := h.Service.ListByEvent(eventID)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{"inscriptions": list})
}

// SubmitResponses applies a batch of answer edits. 201 when everything
// succeeded, 207 when some entries were skipped or failed.
func (h *Handler) SubmitResponses(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid inscription ID")
		return
	}

	var dto SubmitResponsesDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.Service.SubmitResponses(id, user.ID, user.IsAdmin(), dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	status := http.StatusCreated
	if !result.AllSucceeded() {
		status = http.StatusMultiStatus
	}
	h.WriteJSON(w, status, result)
}

func (h *Handler) CancelInscription(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid inscription ID")
		return
	}

	if err := h.Service.CancelInscription(id, user.ID, user.IsAdmin()); err != nil {
		h.HandleServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// parseForm walks the multipart form and buckets answers by field id.
// Malformed keys are collected as warnings, not errors.
func (h *Handler) parseForm(r *http.Request) CreateInscriptionDTO {
	dto := CreateInscriptionDTO{
		TextValues: map[int64]string{},
		Files:      map[int64]*multipart.FileHeader{},
	}

	for key, values := range r.MultipartForm.Value {
		fieldID, ok := ParseFieldKey(key)
		if !ok {
			h.Logger.Warn("skipping malformed field key", "key", key)
			dto.SkippedKeys = append(dto.SkippedKeys, fmt.Sprintf("unrecognized key %q", key))
			continue
		}
		if len(values) > 0 {
			dto.TextValues[fieldID] = values[0]
		}
	}

	for key, files := range r.MultipartForm.File {
		fieldID, ok := ParseFieldKey(key)
		if !ok {
			h.Logger.Warn("skipping malformed file key", "key", key)
			dto.SkippedKeys = append(dto.SkippedKeys, fmt.Sprintf("unrecognized key %q", key))
			continue
		}
		if len(files) > 0 {
			dto.Files[fieldID] = files[0]
		}
	}

	return dto
}
