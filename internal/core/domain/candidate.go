package domain

import (
	"time"

	"github.com/google/uuid"
)

type Candidate struct {
	ID         uuid.UUID `json:"id"`
	ElectionID uuid.UUID `json:"election_id"`
	PartyID    uuid.UUID `json:"party_id"`
	Name       string    `json:"name"`
	CreatedAt  time.Time `json:"created_at"`
}

type Party struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	LogoURL   string    `json:"logo_url"`
	CreatedAt time.Time `json:"created_at"`
}

// Participant is the read view of a candidate standing in an election.
type Participant struct {
	PartyName     string    `json:"party_name"`
	PartyLogoURL  string    `json:"party_logo"`
	CandidateName string    `json:"candidate_name"`
	CandidateID   uuid.UUID `json:"candidate_id"`
}
