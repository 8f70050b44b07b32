package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/vncsmyrnk/evoting/internal/core/domain"
	"github.com/vncsmyrnk/evoting/internal/core/ports"
)

type partyService struct {
	repo ports.PartyRepository
}

func NewPartyService(repo ports.PartyRepository) ports.PartyService {
	return &partyService{
		repo: repo,
	}
}

func (s *partyService) Create(ctx context.Context, input ports.CreatePartyInput) (*domain.Party, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", domain.ErrInvalidInput)
	}
	logoURL := strings.TrimSpace(input.LogoURL)
	if logoURL == "" {
		return nil, fmt.Errorf("%w: logo url is required", domain.ErrInvalidInput)
	}

	party := &domain.Party{
		ID:        uuid.New(),
		Name:      name,
		LogoURL:   logoURL,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.repo.Save(ctx, party); err != nil {
		return nil, err
	}
	return party, nil
}

func (s *partyService) GetParty(ctx context.Context, id uuid.UUID) (*domain.Party, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *partyService) ListParties(ctx context.Context) ([]*domain.Party, error) {
	return s.repo.GetAll(ctx)
}
