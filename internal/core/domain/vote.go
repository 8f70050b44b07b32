package domain

import (
	"time"

	"github.com/google/uuid"
)

// Vote is a ledger entry. (VoterID, ElectionID) is unique.
type Vote struct {
	VoterID     uuid.UUID `json:"voter_id"`
	ElectionID  uuid.UUID `json:"election_id"`
	CandidateID uuid.UUID `json:"candidate_id"`
	CastAt      time.Time `json:"cast_at"`
}
