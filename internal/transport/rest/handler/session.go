package handler

import (
	"net/http"

	"github.com/gorilla/mux"

	"teambalancer/internal/logger"
	"teambalancer/internal/model"
	"teambalancer/internal/service"
	"teambalancer/internal/transport/rest/middleware"
)

// SessionHandler handles balancing sessions and team snapshots. Sessions
// are always looked up within the group of the session token.
type SessionHandler struct {
	teamSvc *service.TeamService
	log     *logger.Logger
}

// NewSessionHandler creates a new session handler
func NewSessionHandler(teamSvc *service.TeamService, log *logger.Logger) *SessionHandler {
	return &SessionHandler{teamSvc: teamSvc, log: log}
}

// Start handles POST /v1/groups/{groupId}/sessions
func (h *SessionHandler) Start(w http.ResponseWriter, r *http.Request) {
	session, err := h.teamSvc.StartSession(r.Context(), mux.Vars(r)["groupId"], middleware.GetPlayerID(r.Context()))
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusCreated, session)
}

// Get handles GET /v1/sessions/{sessionId}
func (h *SessionHandler) Get(w http.ResponseWriter, r *http.Request) {
	session, err := h.teamSvc.GetSession(r.Context(), middleware.GetGroupID(r.Context()), mux.Vars(r)["sessionId"])
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, session)
}

// SetPresence handles PUT /v1/sessions/{sessionId}/presence/{playerId}
func (h *SessionHandler) SetPresence(w http.ResponseWriter, r *http.Request) {
	var req model.PresenceRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, h.log, err)
		return
	}

	vars := mux.Vars(r)
	session, err := h.teamSvc.SetPresence(r.Context(), middleware.GetGroupID(r.Context()), vars["sessionId"], vars["playerId"], req.Present)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, session)
}

// GenerateTeams handles POST /v1/sessions/{sessionId}/teams?mode=balanced|random
func (h *SessionHandler) GenerateTeams(w http.ResponseWriter, r *http.Request) {
	mode := model.TeamMode(r.URL.Query().Get("mode"))
	resp, err := h.teamSvc.GenerateTeams(r.Context(), middleware.GetGroupID(r.Context()), mux.Vars(r)["sessionId"], mode)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// ClearTeams handles DELETE /v1/sessions/{sessionId}/teams
func (h *SessionHandler) ClearTeams(w http.ResponseWriter, r *http.Request) {
	session, err := h.teamSvc.ClearTeams(r.Context(), middleware.GetGroupID(r.Context()), mux.Vars(r)["sessionId"])
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, session)
}

// Export handles GET /v1/sessions/{sessionId}/teams/export
func (h *SessionHandler) Export(w http.ResponseWriter, r *http.Request) {
	text, err := h.teamSvc.ExportTeams(r.Context(), middleware.GetGroupID(r.Context()), mux.Vars(r)["sessionId"])
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeText(w, http.StatusOK, text)
}

// ListSnapshots handles GET /v1/snapshots?limit=N
func (h *SessionHandler) ListSnapshots(w http.ResponseWriter, r *http.Request) {
	limit, err := queryInt(r, "limit", 0)
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	metas, err := h.teamSvc.ListSnapshots(r.Context(), middleware.GetGroupID(r.Context()), int64(limit))
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, metas)
}

// GetSnapshot handles GET /v1/snapshots/{sessionId}
func (h *SessionHandler) GetSnapshot(w http.ResponseWriter, r *http.Request) {
	snapshot, err := h.teamSvc.GetSnapshot(r.Context(), middleware.GetGroupID(r.Context()), mux.Vars(r)["sessionId"])
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, snapshot)
}
