package directory

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
	ListRoles() ([]*Role, error)
	GetRole(id int64) (*Role, error)
	CreateRole(dto RoleDTO) (*Role, error)
	UpdateRole(id int64, dto RoleDTO) (*Role, error)
	DeleteRole(id int64) error

	ListDepartments() ([]*Department, error)
	GetDepartment(id int64) (*Department, error)
	CreateDepartment(dto DepartmentDTO) (*Department, error)
	UpdateDepartment(id int64, dto DepartmentDTO) (*Department, error)
	DeleteDepartment(id int64) error
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

func (h *Handler) ListRoles(w http.ResponseWriter, r *http.Request) {
	roles, err := h.Service.ListRoles()
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, map[string]interface{}{"roles": roles})
}

func (h *Handler) GetRole(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid role ID")
		return
	}
	role, err := h.Service.GetRole(id)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, role)
}

func (h *Handler) CreateRole(w http.ResponseWriter, r *http.Request) {
	var dto RoleDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	role, err := h.Service.CreateRole(dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusCreated, role)
}

func (h *Handler) UpdateRole(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid role ID")
		return
	}
	var dto RoleDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	role, err := h.Service.UpdateRole(id, dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, role)
}

func (h *Handler) DeleteRole(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid role ID")
		return
	}
	if err := h.Service.DeleteRole(id); err != nil {
		h.HandleServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) ListDepartments(w http.ResponseWriter, r *http.Request) {
	depts, err := h.Service.ListDepartments()
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, map[string]interface{}{"departements": depts})
}

func (h *Handler) GetDepartment(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid department ID")
		return
	}
	dept, err := h.Service.GetDepartment(id)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, dept)
}

func (h *Handler) CreateDepartment(w http.ResponseWriter, r *http.Request) {
	var dto DepartmentDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	dept, err := h.Service.CreateDepartment(dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusCreated, dept)
}

func (h *Handler) UpdateDepartment(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid department ID")
		return
	}
	var dto DepartmentDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	dept, err := h.Service.UpdateDepartment(id, dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, dept)
}

func (h *Handler) DeleteDepartment(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid department ID")
		return
	}
	if err := h.Service.DeleteDepartment(id); err != nil {
		h.HandleServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func urlID(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}
