package handler

import (
	"net/http"

	"github.com/gorilla/mux"

	"teambalancer/internal/logger"
	"teambalancer/internal/model"
	"teambalancer/internal/service"
	"teambalancer/internal/transport/rest/middleware"
)

// VoteHandler handles vote endpoints. The voter is always the player of
// the session token.
type VoteHandler struct {
	voteSvc *service.VoteService
	log     *logger.Logger
}

// NewVoteHandler creates a new vote handler
func NewVoteHandler(voteSvc *service.VoteService, log *logger.Logger) *VoteHandler {
	return &VoteHandler{voteSvc: voteSvc, log: log}
}

// List handles GET /v1/groups/{groupId}/votes
func (h *VoteHandler) List(w http.ResponseWriter, r *http.Request) {
	votes, err := h.voteSvc.ListVotes(r.Context(), mux.Vars(r)["groupId"])
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, votes)
}

// Submit handles POST /v1/groups/{groupId}/votes
func (h *VoteHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req model.SubmitVoteRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, h.log, err)
		return
	}

	vote, err := h.voteSvc.SubmitVote(r.Context(), mux.Vars(r)["groupId"], middleware.GetPlayerID(r.Context()), &req)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusCreated, vote)
}

// SubmitBatch handles POST /v1/groups/{groupId}/votes/batch
func (h *VoteHandler) SubmitBatch(w http.ResponseWriter, r *http.Request) {
	var req model.BatchVoteRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, h.log, err)
		return
	}

	result, err := h.voteSvc.SubmitVotes(r.Context(), mux.Vars(r)["groupId"], middleware.GetPlayerID(r.Context()), &req)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// Retract handles DELETE /v1/groups/{groupId}/votes/{toPlayerId}
func (h *VoteHandler) Retract(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	if err := h.voteSvc.RetractVote(r.Context(), vars["groupId"], middleware.GetPlayerID(r.Context()), vars["toPlayerId"]); err != nil {
		writeError(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// ResetScores handles POST /v1/groups/{groupId}/reset-scores
func (h *VoteHandler) ResetScores(w http.ResponseWriter, r *http.Request) {
	resp, err := h.voteSvc.ResetScores(r.Context(), mux.Vars(r)["groupId"])
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}
