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

type candidateService struct {
	repo         ports.CandidateRepository
	electionRepo ports.ElectionRepository
	partyRepo    ports.PartyRepository
	voteRepo     ports.VoteRepository
}

func NewCandidateService(repo ports.CandidateRepository, electionRepo ports.ElectionRepository, partyRepo ports.PartyRepository, voteRepo ports.VoteRepository) ports.CandidateService {
	return &candidateService{
		repo:         repo,
		electionRepo: electionRepo,
		partyRepo:    partyRepo,
		voteRepo:     voteRepo,
	}
}

func (s *candidateService) Register(ctx context.Context, input ports.RegisterCandidateInput) (*domain.Candidate, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", domain.ErrInvalidInput)
	}

	if _, err := s.electionRepo.GetByID(ctx, input.ElectionID); err != nil {
		return nil, err
	}
	if _, err := s.partyRepo.GetByID(ctx, input.PartyID); err != nil {
		return nil, err
	}

	candidate := &domain.Candidate{
		ID:         uuid.New(),
		ElectionID: input.ElectionID,
		PartyID:    input.PartyID,
		Name:       name,
		CreatedAt:  time.Now().UTC(),
	}
	if err := s.repo.Save(ctx, candidate); err != nil {
		return nil, err
	}

	return candidate, nil
}

func (s *candidateService) GetCandidate(ctx context.Context, id uuid.UUID) (*domain.Candidate, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *candidateService) CountVotes(ctx context.Context, candidateID uuid.UUID) (int, error) {
	if _, err := s.repo.GetByID(ctx, candidateID); err != nil {
		return 0, err
	}
	return s.voteRepo.CountByCandidate(ctx, candidateID)
}
