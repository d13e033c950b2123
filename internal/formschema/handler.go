package formschema

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"

	"github.com/mfauzanap/event-registration/internal/transport"
	"github.com/mfauzanap/event-registration/pkg/logger"
)

type ServiceAPI interface {
	ListFieldTypes() ([]FieldType, error)
	ListFields(eventID int64) ([]*FormField, error)
	ReplaceFields(eventID int64, dto ReplaceFieldsDTO) ([]*FormField, error)
	CreateField(eventID int64, def FieldDefinitionDTO) (*FormField, error)
	UpdateField(fieldID int64, dto UpdateFieldDTO) (*FormField, error)
	DeleteField(fieldID int64) error
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

func (h *Handler) ListFieldTypes(w http.ResponseWriter, r *http.Request) {
	types, err := h.Service.ListFieldTypes()
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, map[string]interface{}{"field_types": types})
}

func (h *Handler) ListFields(w http.ResponseWriter, r *http.Request) {
	eventID, err := urlID(r, "id")
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid event ID")
		return
	}

	fields, err := h.Service.ListFields(eventID)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, map[string]interface{}{"fields": fields})
}

func (h *Handler) ReplaceFields(w http.ResponseWriter, r *http.Request) {
	eventID, err := urlID(r, "id")
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid event ID")
		return
	}

	var dto ReplaceFieldsDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("ReplaceFields: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	fields, err := h.Service.ReplaceFields(eventID, dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, map[string]interface{}{"fields": fields})
}

func (h *Handler) CreateField(w http.ResponseWriter, r *http.Request) {
	eventID, err := urlID(r, "id")
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid event ID")
		return
	}

	var def FieldDefinitionDTO
	if err := json.NewDecoder(r.Body).Decode(&def); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	field, err := h.Service.CreateField(eventID, def)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusCreated, field)
}

func (h *Handler) UpdateField(w http.ResponseWriter, r *http.Request) {
	fieldID, err := urlID(r, "id")
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid field ID")
		return
	}

	var dto UpdateFieldDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	field, err := h.Service.UpdateField(fieldID, dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, field)
}

func (h *Handler) DeleteField(w http.ResponseWriter, r *http.Request) {
	fieldID, err := urlID(r, "id")
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid field ID")
		return
	}

	if err := h.Service.DeleteField(fieldID); err != nil {
		h.HandleServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func urlID(r *http.Request, key string) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, key), 10, 64)
}
