package http

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/vncsmyrnk/evoting/internal/core/ports"
)

type CandidateHandler struct {
	service ports.CandidateService
}

func NewCandidateHandler(service ports.CandidateService) *CandidateHandler {
	return &CandidateHandler{
		service: service,
	}
}

type registerCandidateRequest struct {
	ElectionID uuid.UUID `json:"election_id"`
	PartyID    uuid.UUID `json:"party_id"`
	Name       string    `json:"name"`
}

func (h *CandidateHandler) RegisterCandidate(w http.ResponseWriter, r *http.Request) {
	var req registerCandidateRequest
	if err := decode(r, &req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	candidate, err := h.service.Register(r.Context(), ports.RegisterCandidateInput{
		ElectionID: req.ElectionID,
		PartyID:    req.PartyID,
		Name:       req.Name,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, candidate)
}

func (h *CandidateHandler) GetCandidate(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(r, "id")
	if !ok {
		http.Error(w, "invalid candidate id", http.StatusBadRequest)
		return
	}

	candidate, err := h.service.GetCandidate(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, candidate)
}

func (h *CandidateHandler) CountVotes(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(r, "id")
	if !ok {
		http.Error(w, "invalid candidate id", http.StatusBadRequest)
		return
	}

	count, err := h.service.CountVotes(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"candidate_id": id, "votes": count})
}
