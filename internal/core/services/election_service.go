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

type electionService struct {
	repo          ports.ElectionRepository
	candidateRepo ports.CandidateRepository
	voterRepo     ports.VoterRepository
}

func NewElectionService(repo ports.ElectionRepository, candidateRepo ports.CandidateRepository, voterRepo ports.VoterRepository) ports.ElectionService {
	return &electionService{
		repo:          repo,
		candidateRepo: candidateRepo,
		voterRepo:     voterRepo,
	}
}

func (s *electionService) Create(ctx context.Context, input ports.CreateElectionInput) (*domain.Election, error) {
	election := &domain.Election{
		ID:        uuid.New(),
		Title:     strings.TrimSpace(input.Title),
		State:     strings.TrimSpace(input.State),
		LGA:       strings.TrimSpace(input.LGA),
		StartTime: input.StartTime.UTC(),
		EndTime:   input.EndTime.UTC(),
		CreatedAt: time.Now().UTC(),
	}
	if err := validateElection(election); err != nil {
		return nil, err
	}

	if err := s.repo.Save(ctx, election); err != nil {
		return nil, err
	}

	return election, nil
}

func (s *electionService) GetElection(ctx context.Context, id uuid.UUID) (*domain.Election, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *electionService) ListElections(ctx context.Context) ([]*domain.Election, error) {
	return s.repo.GetAll(ctx)
}

func (s *electionService) ListActive(ctx context.Context, now time.Time) ([]*domain.Election, error) {
	return s.repo.ListActive(ctx, now)
}

// ListActiveForVoter returns the open elections whose region covers the voter:
// national ones, state-wide ones of the voter's state and those of the voter's LGA.
func (s *electionService) ListActiveForVoter(ctx context.Context, voterID uuid.UUID, now time.Time) ([]*domain.Election, error) {
	voter, err := s.voterRepo.GetByID(ctx, voterID)
	if err != nil {
		return nil, err
	}

	active, err := s.repo.ListActive(ctx, now)
	if err != nil {
		return nil, err
	}

	mine := make([]*domain.Election, 0, len(active))
	for _, e := range active {
		if domain.CoversRegion(e, voter.State, voter.LGA) {
			mine = append(mine, e)
		}
	}
	return mine, nil
}

func (s *electionService) Update(ctx context.Context, id uuid.UUID, update domain.ElectionUpdate) (*domain.Election, error) {
	election, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if update.IsEmpty() {
		return election, nil
	}

	update.Apply(election)
	election.Title = strings.TrimSpace(election.Title)
	election.State = strings.TrimSpace(election.State)
	election.LGA = strings.TrimSpace(election.LGA)
	election.StartTime = election.StartTime.UTC()
	election.EndTime = election.EndTime.UTC()
	if err := validateElection(election); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, election); err != nil {
		return nil, err
	}
	return election, nil
}

func (s *electionService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

func (s *electionService) ListParticipants(ctx context.Context, electionID uuid.UUID) ([]domain.Participant, error) {
	if _, err := s.repo.GetByID(ctx, electionID); err != nil {
		return nil, err
	}
	return s.candidateRepo.ListParticipants(ctx, electionID)
}

func validateElection(e *domain.Election) error {
	if e.Title == "" {
		return fmt.Errorf("%w: title is required", domain.ErrInvalidInput)
	}
	if e.StartTime.IsZero() || e.EndTime.IsZero() {
		return fmt.Errorf("%w: start and end time are required", domain.ErrInvalidInput)
	}
	if !e.EndTime.After(e.StartTime) {
		return fmt.Errorf("%w: end time must be after start time", domain.ErrInvalidInput)
	}
	return nil
}
