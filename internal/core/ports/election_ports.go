package ports

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/vncsmyrnk/evoting/internal/core/domain"
)

type ElectionRepository interface {
	Save(ctx context.Context, election *domain.Election) error
	// GetByID returns the election with its candidate IDs in registration order.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Election, error)
	GetAll(ctx context.Context) ([]*domain.Election, error)
	ListActive(ctx context.Context, now time.Time) ([]*domain.Election, error)
	Update(ctx context.Context, election *domain.Election) error
	// Delete removes the election together with its candidates and votes.
	Delete(ctx context.Context, id uuid.UUID) error
}

type CreateElectionInput struct {
	Title     string
	State     string
	LGA       string
	StartTime time.Time
	EndTime   time.Time
}

type ElectionService interface {
	Create(ctx context.Context, input CreateElectionInput) (*domain.Election, error)
	GetElection(ctx context.Context, id uuid.UUID) (*domain.Election, error)
	ListElections(ctx context.Context) ([]*domain.Election, error)
	ListActive(ctx context.Context, now time.Time) ([]*domain.Election, error)
	ListActiveForVoter(ctx context.Context, voterID uuid.UUID, now time.Time) ([]*domain.Election, error)
	Update(ctx context.Context, id uuid.UUID, update domain.ElectionUpdate) (*domain.Election, error)
	Delete(ctx context.Context, id uuid.UUID) error
	ListParticipants(ctx context.Context, electionID uuid.UUID) ([]domain.Participant, error)
}
