package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/vncsmyrnk/evoting/internal/core/domain"
	"github.com/vncsmyrnk/evoting/internal/core/ports"
)

type electionResultRepository struct {
	db *sql.DB
}

func NewElectionResultRepository(db *sql.DB) ports.ElectionResultRepository {
	return &electionResultRepository{
		db: db,
	}
}

// GetCandidateStats lists every candidate of the election with its last
// summarized count. Candidates that were never summarized count as zero.
func (r *electionResultRepository) GetCandidateStats(ctx context.Context, electionID uuid.UUID) ([]domain.CandidateStats, error) {
	query := `
		SELECT c.id, COALESCE(er.vote_count, 0)
		FROM candidates c
		LEFT JOIN election_results er ON er.candidate_id = c.id AND er.election_id = c.election_id
		WHERE c.election_id = $1
		ORDER BY c.created_at, c.id
	`
	rows, err := r.db.QueryContext(ctx, query, electionID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch election stats: %w", err)
	}
	defer rows.Close()

	var stats []domain.CandidateStats
	var total int64
	for rows.Next() {
		var s domain.CandidateStats
		if err := rows.Scan(&s.CandidateID, &s.VoteCount); err != nil {
			return nil, fmt.Errorf("failed to scan stats: %w", err)
		}
		stats = append(stats, s)
		total += s.VoteCount
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating stats: %w", err)
	}

	return withPercentages(stats, total), nil
}

func (r *electionResultRepository) SummarizeVotes(ctx context.Context, electionID uuid.UUID) error {
	query := `
		INSERT INTO election_results (election_id, candidate_id, vote_count, last_updated_at)
		SELECT election_id, candidate_id, COUNT(*), NOW()
		FROM votes
		WHERE election_id = $1
		GROUP BY election_id, candidate_id
		ON CONFLICT (election_id, candidate_id) DO UPDATE
		SET vote_count = EXCLUDED.vote_count,
		    last_updated_at = NOW();
	`

	_, err := r.db.ExecContext(ctx, query, electionID)
	if err != nil {
		return fmt.Errorf("failed to summarize votes for election %s: %w", electionID, err)
	}

	return nil
}

func withPercentages(stats []domain.CandidateStats, total int64) []domain.CandidateStats {
	out := make([]domain.CandidateStats, 0, len(stats))
	for _, s := range stats {
		if total > 0 {
			s.Percentage = (float64(s.VoteCount) / float64(total)) * 100
		}
		out = append(out, s)
	}
	return out
}
