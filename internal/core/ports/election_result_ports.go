package ports

import (
	"context"

	"github.com/google/uuid"
	"github.com/vncsmyrnk/evoting/internal/core/domain"
)

type ElectionResultRepository interface {
	SummarizeVotes(ctx context.Context, electionID uuid.UUID) error
	GetCandidateStats(ctx context.Context, electionID uuid.UUID) ([]domain.CandidateStats, error)
}

type SummaryService interface {
	SummarizeAllVotes(ctx context.Context) error
	GetStatistics(ctx context.Context, electionID uuid.UUID) ([]domain.CandidateStats, error)
}
