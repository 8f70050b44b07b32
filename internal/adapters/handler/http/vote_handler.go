package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/vncsmyrnk/evoting/internal/core/domain"
	"github.com/vncsmyrnk/evoting/internal/core/ports"
)

type VoteHandler struct {
	service ports.VoteService
	now     func() time.Time
}

func NewVoteHandler(service ports.VoteService) *VoteHandler {
	return &VoteHandler{
		service: service,
		now:     time.Now,
	}
}

type castVoteRequest struct {
	ElectionID  uuid.UUID `json:"election_id"`
	CandidateID uuid.UUID `json:"candidate_id"`
}

// CastVote godoc
// @Summary      Casts the authenticated voter's ballot
// @Description  Records one vote per voter and election. The election must be open, the candidate registered in it and the voter accredited for its region.
// @Tags         votes
// @Accept       json
// @Produce      json
// @Success      201
// @Failure      400,401,403,404,409
// @Router       /api/votes [post]
func (h *VoteHandler) CastVote(w http.ResponseWriter, r *http.Request) {
	voterID, ok := voterFromContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized: missing user context", http.StatusUnauthorized)
		return
	}

	var req castVoteRequest
	if err := decode(r, &req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if req.ElectionID == uuid.Nil || req.CandidateID == uuid.Nil {
		http.Error(w, "election_id and candidate_id are required", http.StatusBadRequest)
		return
	}

	vote, err := h.service.CastVote(r.Context(), ports.CastVoteInput{
		VoterID:     voterID,
		ElectionID:  req.ElectionID,
		CandidateID: req.CandidateID,
	}, h.now())
	if err != nil {
		// A valid token for a voter that is not registered is an auth problem.
		if errors.Is(err, domain.ErrVoterNotFound) {
			http.Error(w, "Unauthorized: unknown voter", http.StatusUnauthorized)
			return
		}
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, vote)
}

func (h *VoteHandler) ListVotes(w http.ResponseWriter, r *http.Request) {
	electionID, ok := uuidParam(r, "electionId")
	if !ok {
		http.Error(w, "invalid election id", http.StatusBadRequest)
		return
	}

	votes, err := h.service.ListVotesForElection(r.Context(), electionID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, votes)
}
