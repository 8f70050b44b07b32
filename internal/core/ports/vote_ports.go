package ports

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/vncsmyrnk/evoting/internal/core/domain"
)

type VoteRepository interface {
	// SaveVote inserts a ledger row. It returns domain.ErrAlreadyVoted when a
	// row for the same voter and election already exists.
	SaveVote(ctx context.Context, vote *domain.Vote) error
	HasVoted(ctx context.Context, voterID, electionID uuid.UUID) (bool, error)
	ListByElection(ctx context.Context, electionID uuid.UUID) ([]domain.Vote, error)
	CountByCandidate(ctx context.Context, candidateID uuid.UUID) (int, error)
}

type CastVoteInput struct {
	VoterID     uuid.UUID
	ElectionID  uuid.UUID
	CandidateID uuid.UUID
}

type VoteService interface {
	CastVote(ctx context.Context, input CastVoteInput, now time.Time) (*domain.Vote, error)
	ListVotesForElection(ctx context.Context, electionID uuid.UUID) ([]domain.Vote, error)
}
