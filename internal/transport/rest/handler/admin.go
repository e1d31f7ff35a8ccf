package handler

import (
	"net/http"

	"github.com/gorilla/mux"

	"teambalancer/internal/apperror"
	"teambalancer/internal/logger"
	"teambalancer/internal/model"
	"teambalancer/internal/service"
)

// AdminHandler handles admin panel endpoints
type AdminHandler struct {
	adminSvc *service.AdminService
	log      *logger.Logger
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(adminSvc *service.AdminService, log *logger.Logger) *AdminHandler {
	return &AdminHandler{adminSvc: adminSvc, log: log}
}

// ListGroups handles GET /v1/admin/groups
func (h *AdminHandler) ListGroups(w http.ResponseWriter, r *http.Request) {
	groups, err := h.adminSvc.ListGroups(r.Context())
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, groups)
}

// CreateGroup handles POST /v1/admin/groups
func (h *AdminHandler) CreateGroup(w http.ResponseWriter, r *http.Request) {
	var req model.CreateGroupRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, h.log, err)
		return
	}

	group, err := h.adminSvc.CreateGroup(r.Context(), &req)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusCreated, group)
}

// UpdateGroup handles PUT /v1/admin/groups/{groupId}
func (h *AdminHandler) UpdateGroup(w http.ResponseWriter, r *http.Request) {
	var req model.UpdateGroupRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, h.log, err)
		return
	}
	if req.IsActive == nil {
		writeError(w, h.log, apperror.NewValidationError("isActive is required", nil))
		return
	}

	group, err := h.adminSvc.SetGroupActive(r.Context(), mux.Vars(r)["groupId"], *req.IsActive)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, group)
}

// DeleteGroup handles DELETE /v1/admin/groups/{groupId}
func (h *AdminHandler) DeleteGroup(w http.ResponseWriter, r *http.Request) {
	if err := h.adminSvc.DeleteGroup(r.Context(), mux.Vars(r)["groupId"]); err != nil {
		writeError(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Group deleted"})
}

// Stats handles GET /v1/admin/stats
func (h *AdminHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.adminSvc.Stats(r.Context())
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}
