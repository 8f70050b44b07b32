package http

import (
	"net/http"
	"time"

	"github.com/vncsmyrnk/evoting/internal/core/domain"
	"github.com/vncsmyrnk/evoting/internal/core/ports"
)

type ElectionHandler struct {
	service ports.ElectionService
	summary ports.SummaryService
	now     func() time.Time
}

func NewElectionHandler(service ports.ElectionService, summary ports.SummaryService) *ElectionHandler {
	return &ElectionHandler{
		service: service,
		summary: summary,
		now:     time.Now,
	}
}

type createElectionRequest struct {
	Title     string    `json:"title"`
	State     string    `json:"state"`
	LGA       string    `json:"lga"`
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
}

func (h *ElectionHandler) CreateElection(w http.ResponseWriter, r *http.Request) {
	var req createElectionRequest
	if err := decode(r, &req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	election, err := h.service.Create(r.Context(), ports.CreateElectionInput{
		Title:     req.Title,
		State:     req.State,
		LGA:       req.LGA,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, election)
}

func (h *ElectionHandler) ListElections(w http.ResponseWriter, r *http.Request) {
	elections, err := h.service.ListElections(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, nonNil(elections))
}

func (h *ElectionHandler) ListActive(w http.ResponseWriter, r *http.Request) {
	elections, err := h.service.ListActive(r.Context(), h.now())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, nonNil(elections))
}

// ListMine returns the open elections the caller's region takes part in.
func (h *ElectionHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	voterID, ok := voterFromContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized: missing user context", http.StatusUnauthorized)
		return
	}

	elections, err := h.service.ListActiveForVoter(r.Context(), voterID, h.now())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, nonNil(elections))
}

func (h *ElectionHandler) GetElection(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(r, "id")
	if !ok {
		http.Error(w, "invalid election id", http.StatusBadRequest)
		return
	}

	election, err := h.service.GetElection(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, election)
}

func (h *ElectionHandler) UpdateElection(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(r, "id")
	if !ok {
		http.Error(w, "invalid election id", http.StatusBadRequest)
		return
	}

	var update domain.ElectionUpdate
	if err := decode(r, &update); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	election, err := h.service.Update(r.Context(), id, update)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, election)
}

func (h *ElectionHandler) DeleteElection(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(r, "id")
	if !ok {
		http.Error(w, "invalid election id", http.StatusBadRequest)
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *ElectionHandler) ListParticipants(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(r, "id")
	if !ok {
		http.Error(w, "invalid election id", http.StatusBadRequest)
		return
	}

	participants, err := h.service.ListParticipants(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, participants)
}

// GetStatistics serves the last summarized tally, not the live ledger count.
func (h *ElectionHandler) GetStatistics(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(r, "id")
	if !ok {
		http.Error(w, "invalid election id", http.StatusBadRequest)
		return
	}

	stats, err := h.summary.GetStatistics(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, nonNil(stats))
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
