package domain

import "github.com/google/uuid"

// CandidateStats is the summarized tally of one candidate. Percentage is
// relative to all summarized votes of the election.
type CandidateStats struct {
	CandidateID uuid.UUID `json:"candidate_id"`
	VoteCount   int64     `json:"vote_count"`
	Percentage  float64   `json:"percentage"`
}
