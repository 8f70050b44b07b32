package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/vncsmyrnk/evoting/internal/core/domain"
	"github.com/vncsmyrnk/evoting/internal/core/ports"
)

type electionResultRepository struct {
	db *sql.DB
}

func NewElectionResultRepository(db *sql.DB) ports.ElectionResultRepository {
	return &electionResultRepository{db: db}
}

func (r *electionResultRepository) SummarizeVotes(ctx context.Context, electionID uuid.UUID) error {
	// The WHERE clause is required by SQLite to parse ON CONFLICT after a SELECT.
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO election_results (election_id, candidate_id, vote_count, last_updated_at)
		SELECT election_id, candidate_id, COUNT(*), ?
		FROM votes
		WHERE election_id = ?
		GROUP BY election_id, candidate_id
		ON CONFLICT (election_id, candidate_id) DO UPDATE
		SET vote_count = excluded.vote_count,
		    last_updated_at = excluded.last_updated_at`,
		toMillis(time.Now()), electionID,
	)
	if err != nil {
		return fmt.Errorf("failed to summarize votes for election %s: %w", electionID, err)
	}
	return nil
}

func (r *electionResultRepository) GetCandidateStats(ctx context.Context, electionID uuid.UUID) ([]domain.CandidateStats, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT c.id, COALESCE(er.vote_count, 0)
		FROM candidates c
		LEFT JOIN election_results er ON er.candidate_id = c.id AND er.election_id = c.election_id
		WHERE c.election_id = ?
		ORDER BY c.created_at, c.rowid`, electionID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch election stats: %w", err)
	}
	defer rows.Close()

	var (
		stats []domain.CandidateStats
		total int64
	)
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

	for i := range stats {
		if total > 0 {
			stats[i].Percentage = float64(stats[i].VoteCount) / float64(total) * 100
		}
	}
	return stats, nil
}
