package domain

import "errors"

// Errors returned by CastVote, in the order the checks run.
var (
	ErrElectionNotFound = errors.New("election not found")
	ErrElectionClosed   = errors.New("election is closed")
	ErrInvalidCandidate = errors.New("candidate is not registered for this election")
	ErrNotEligible      = errors.New("voter is not eligible to vote in this election")
	ErrAlreadyVoted     = errors.New("voter has already voted in this election")
)

var (
	ErrVoterNotFound     = errors.New("voter not found")
	ErrCandidateNotFound = errors.New("candidate not found")
	ErrPartyNotFound     = errors.New("party not found")
	ErrPartyExists       = errors.New("party with this name already exists")
	ErrInvalidInput      = errors.New("invalid input")
)
