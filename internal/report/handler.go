package report

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/mfauzanap/event-registration/internal/transport"
	"github.com/mfauzanap/event-registration/pkg/logger"
)

type ServiceAPI interface {
	RegistrationsPerEvent(ctx context.Context) ([]EventRegistrationCount, error)
	RegistrationsOverTime(ctx context.Context, days int) ([]DailyRegistrationCount, error)
	RegistrationsByDepartment(ctx context.Context) ([]DepartmentRegistrationCount, error)
	EventStatusCounts(ctx context.Context) ([]StatusCount, error)
	Dashboard(ctx context.Context) (*Dashboard, error)
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

func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	dash, err := h.Service.Dashboard(r.Context())
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, dash)
}

func (h *Handler) RegistrationsPerEvent(w http.ResponseWriter, r *http.Request) {
	rows, err := h.Service.RegistrationsPerEvent(r.Context())
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, map[string]interface{}{"registrations_per_event": rows})
}

func (h *Handler) RegistrationsOverTime(w http.ResponseWriter, r *http.Request) {
	days, _ := strconv.Atoi(r.URL.Query().Get("days"))
	rows, err := h.Service.RegistrationsOverTime(r.Context(), days)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, map[string]interface{}{"registrations_over_time": rows})
}

func (h *Handler) RegistrationsByDepartment(w http.ResponseWriter, r *http.Request) {
	rows, err := h.Service.RegistrationsByDepartment(r.Context())
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, map[string]interface{}{"registrations_by_departement": rows})
}

func (h *Handler) EventStatusCounts(w http.ResponseWriter, r *http.Request) {
	rows, err := h.Service.EventStatusCounts(r.Context())
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, map[string]interface{}{"event_status_counts": rows})
}
