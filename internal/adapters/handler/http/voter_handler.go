package http

import (
	"net/http"

	"github.com/vncsmyrnk/evoting/internal/core/ports"
)

type VoterHandler struct {
	service ports.VoterService
}

func NewVoterHandler(service ports.VoterService) *VoterHandler {
	return &VoterHandler{
		service: service,
	}
}

type registerVoterRequest struct {
	Name  string `json:"name"`
	State string `json:"state"`
	LGA   string `json:"lga"`
}

func (h *VoterHandler) RegisterVoter(w http.ResponseWriter, r *http.Request) {
	var req registerVoterRequest
	if err := decode(r, &req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	voter, err := h.service.Register(r.Context(), ports.RegisterVoterInput{
		Name:  req.Name,
		State: req.State,
		LGA:   req.LGA,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, voter)
}

func (h *VoterHandler) GetMe(w http.ResponseWriter, r *http.Request) {
	voterID, ok := voterFromContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized: missing user context", http.StatusUnauthorized)
		return
	}

	voter, err := h.service.GetByID(r.Context(), voterID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, voter)
}

// Accredit godoc
// @Summary      Accredits a voter
// @Description  Idempotent. changed is false when the voter was already accredited.
// @Tags         officials
// @Produce      json
// @Success      200
// @Failure      400,404
// @Router       /api/officials/accredit/{voterId} [post]
func (h *VoterHandler) Accredit(w http.ResponseWriter, r *http.Request) {
	h.setAccreditation(w, r, true)
}

// DeAccredit godoc
// @Summary      Withdraws a voter's accreditation
// @Tags         officials
// @Produce      json
// @Success      200
// @Failure      400,404
// @Router       /api/officials/de_accredit/{voterId} [post]
func (h *VoterHandler) DeAccredit(w http.ResponseWriter, r *http.Request) {
	h.setAccreditation(w, r, false)
}

func (h *VoterHandler) setAccreditation(w http.ResponseWriter, r *http.Request, accredited bool) {
	voterID, ok := uuidParam(r, "voterId")
	if !ok {
		http.Error(w, "invalid voter id", http.StatusBadRequest)
		return
	}

	changed, err := h.service.SetAccreditation(r.Context(), voterID, accredited)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"voter_id":   voterID,
		"accredited": accredited,
		"changed":    changed,
	})
}
