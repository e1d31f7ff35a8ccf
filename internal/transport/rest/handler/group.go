package handler

import (
	"net/http"

	"github.com/gorilla/mux"

	"teambalancer/internal/logger"
	"teambalancer/internal/model"
	"teambalancer/internal/service"
	"teambalancer/internal/transport/rest/middleware"
)

// GroupHandler handles group and roster endpoints
type GroupHandler struct {
	groupSvc *service.GroupService
	statsSvc *service.StatsService
	log      *logger.Logger
}

// NewGroupHandler creates a new group handler
func NewGroupHandler(groupSvc *service.GroupService, statsSvc *service.StatsService, log *logger.Logger) *GroupHandler {
	return &GroupHandler{groupSvc: groupSvc, statsSvc: statsSvc, log: log}
}

// List handles GET /v1/groups
func (h *GroupHandler) List(w http.ResponseWriter, r *http.Request) {
	groups, err := h.groupSvc.ListActiveGroups(r.Context())
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, groups)
}

// Players handles GET /v1/groups/{groupId}/players
func (h *GroupHandler) Players(w http.ResponseWriter, r *http.Request) {
	players, err := h.groupSvc.GetActivePlayers(r.Context(), mux.Vars(r)["groupId"])
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, players)
}

// AddPlayer handles POST /v1/groups/{groupId}/players
func (h *GroupHandler) AddPlayer(w http.ResponseWriter, r *http.Request) {
	var req model.AddPlayerRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, h.log, err)
		return
	}

	player, err := h.groupSvc.AddPlayer(r.Context(), mux.Vars(r)["groupId"], &req)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusCreated, player)
}

// UpdatePlayer handles PUT /v1/groups/{groupId}/players/{playerId}
func (h *GroupHandler) UpdatePlayer(w http.ResponseWriter, r *http.Request) {
	var req model.UpdatePlayerRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, h.log, err)
		return
	}

	vars := mux.Vars(r)
	player, err := h.groupSvc.UpdatePlayer(r.Context(), vars["groupId"], vars["playerId"], &req)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, player)
}

// RemovePlayer handles DELETE /v1/groups/{groupId}/players/{playerId}
func (h *GroupHandler) RemovePlayer(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	actor := middleware.GetPlayerID(r.Context())
	if err := h.groupSvc.DeactivatePlayer(r.Context(), vars["groupId"], actor, vars["playerId"]); err != nil {
		writeError(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Player removed"})
}

// Stats handles GET /v1/groups/{groupId}/stats
func (h *GroupHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.statsSvc.GroupStats(r.Context(), mux.Vars(r)["groupId"])
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

// Ranking handles GET /v1/groups/{groupId}/ranking?top=N
func (h *GroupHandler) Ranking(w http.ResponseWriter, r *http.Request) {
	top, err := queryInt(r, "top", 0)
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	ranking, err := h.statsSvc.Ranking(r.Context(), mux.Vars(r)["groupId"], top)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, ranking)
}

// MyRank handles GET /v1/groups/{groupId}/ranking/me
func (h *GroupHandler) MyRank(w http.ResponseWriter, r *http.Request) {
	entry, err := h.statsSvc.PlayerRank(r.Context(), mux.Vars(r)["groupId"], middleware.GetPlayerID(r.Context()))
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, entry)
}
