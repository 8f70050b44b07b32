package http

import (
	"net/http"

	"github.com/vncsmyrnk/evoting/internal/core/ports"
)

type PartyHandler struct {
	service ports.PartyService
}

func NewPartyHandler(service ports.PartyService) *PartyHandler {
	return &PartyHandler{
		service: service,
	}
}

type createPartyRequest struct {
	Name    string `json:"name"`
	LogoURL string `json:"logo_url"`
}

func (h *PartyHandler) CreateParty(w http.ResponseWriter, r *http.Request) {
	var req createPartyRequest
	if err := decode(r, &req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	party, err := h.service.Create(r.Context(), ports.CreatePartyInput{Name: req.Name, LogoURL: req.LogoURL})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, party)
}

func (h *PartyHandler) ListParties(w http.ResponseWriter, r *http.Request) {
	parties, err := h.service.ListParties(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, nonNil(parties))
}

func (h *PartyHandler) GetParty(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(r, "id")
	if !ok {
		http.Error(w, "invalid party id", http.StatusBadRequest)
		return
	}

	party, err := h.service.GetParty(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, party)
}
