package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/vncsmyrnk/evoting/internal/core/domain"
	"github.com/vncsmyrnk/evoting/internal/core/ports"
)

type VoterService struct {
	repo ports.VoterRepository
}

func NewVoterService(repo ports.VoterRepository) ports.VoterService {
	return &VoterService{
		repo: repo,
	}
}

// Register stores a new, unaccredited voter.
func (s *VoterService) Register(ctx context.Context, input ports.RegisterVoterInput) (*domain.Voter, error) {
	voter := &domain.Voter{
		ID:        uuid.New(),
		Name:      strings.TrimSpace(input.Name),
		State:     strings.TrimSpace(input.State),
		LGA:       strings.TrimSpace(input.LGA),
		CreatedAt: time.Now().UTC(),
	}
	if voter.Name == "" || voter.State == "" || voter.LGA == "" {
		return nil, fmt.Errorf("%w: name, state and lga are required", domain.ErrInvalidInput)
	}

	if err := s.repo.Save(ctx, voter); err != nil {
		return nil, fmt.Errorf("failed to register voter: %w", err)
	}
	return voter, nil
}

func (s *VoterService) GetByID(ctx context.Context, id uuid.UUID) (*domain.Voter, error) {
	return s.repo.GetByID(ctx, id)
}

// SetAccreditation sets the voter's flag. When the flag is already at the
// target value nothing is written and changed is false.
func (s *VoterService) SetAccreditation(ctx context.Context, id uuid.UUID, accredited bool) (bool, error) {
	changed, err := s.repo.SetAccreditation(ctx, id, accredited)
	if err != nil {
		return false, err
	}
	if changed {
		slog.InfoContext(ctx, "voter accreditation changed", "voter_id", id, "accredited", accredited)
	}
	return changed, nil
}
