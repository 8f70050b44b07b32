package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/vncsmyrnk/evoting/internal/core/domain"
	"github.com/vncsmyrnk/evoting/internal/core/ports"
	"golang.org/x/sync/errgroup"
)

// summarizeConcurrency bounds how many elections are summarized at once.
const summarizeConcurrency = 8

type summaryService struct {
	electionRepo ports.ElectionRepository
	resultRepo   ports.ElectionResultRepository
}

func NewSummaryService(electionRepo ports.ElectionRepository, resultRepo ports.ElectionResultRepository) ports.SummaryService {
	return &summaryService{
		electionRepo: electionRepo,
		resultRepo:   resultRepo,
	}
}

func (s *summaryService) SummarizeAllVotes(ctx context.Context) error {
	elections, err := s.electionRepo.GetAll(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch all elections: %w", err)
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(summarizeConcurrency)

	for _, election := range elections {
		id := election.ID
		g.Go(func() error {
			if err := s.resultRepo.SummarizeVotes(ctx, id); err != nil {
				return fmt.Errorf("failed to summarize election %s: %w", id, err)
			}
			return nil
		})
	}

	return g.Wait()
}

// GetStatistics returns the last summarized per-candidate counts of an election.
func (s *summaryService) GetStatistics(ctx context.Context, electionID uuid.UUID) ([]domain.CandidateStats, error) {
	if _, err := s.electionRepo.GetByID(ctx, electionID); err != nil {
		return nil, err
	}
	return s.resultRepo.GetCandidateStats(ctx, electionID)
}
