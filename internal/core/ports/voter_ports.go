package ports

import (
	"context"

	"github.com/google/uuid"
	"github.com/vncsmyrnk/evoting/internal/core/domain"
)

type VoterRepository interface {
	Save(ctx context.Context, voter *domain.Voter) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Voter, error)
	// SetAccreditation reports whether the stored flag changed.
	SetAccreditation(ctx context.Context, id uuid.UUID, accredited bool) (bool, error)
}

type RegisterVoterInput struct {
	Name  string
	State string
	LGA   string
}

type VoterService interface {
	Register(ctx context.Context, input RegisterVoterInput) (*domain.Voter, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Voter, error)
	SetAccreditation(ctx context.Context, id uuid.UUID, accredited bool) (bool, error)
}
