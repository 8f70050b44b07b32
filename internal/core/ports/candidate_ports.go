package ports

import (
	"context"

	"github.com/google/uuid"
	"github.com/vncsmyrnk/evoting/internal/core/domain"
)

type CandidateRepository interface {
	Save(ctx context.Context, candidate *domain.Candidate) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Candidate, error)
	// ListParticipants joins candidates with their parties, newest candidate first.
	ListParticipants(ctx context.Context, electionID uuid.UUID) ([]domain.Participant, error)
}

type PartyRepository interface {
	Save(ctx context.Context, party *domain.Party) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Party, error)
	GetAll(ctx context.Context) ([]*domain.Party, error)
}

type RegisterCandidateInput struct {
	ElectionID uuid.UUID
	PartyID    uuid.UUID
	Name       string
}

type CandidateService interface {
	Register(ctx context.Context, input RegisterCandidateInput) (*domain.Candidate, error)
	GetCandidate(ctx context.Context, id uuid.UUID) (*domain.Candidate, error)
	CountVotes(ctx context.Context, candidateID uuid.UUID) (int, error)
}

type CreatePartyInput struct {
	Name    string
	LogoURL string
}

type PartyService interface {
	Create(ctx context.Context, input CreatePartyInput) (*domain.Party, error)
	GetParty(ctx context.Context, id uuid.UUID) (*domain.Party, error)
	ListParties(ctx context.Context) ([]*domain.Party, error)
}
