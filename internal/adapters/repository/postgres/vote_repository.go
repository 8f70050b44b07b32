package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/vncsmyrnk/evoting/internal/core/domain"
	"github.com/vncsmyrnk/evoting/internal/core/ports"
)

type voteRepository struct {
	db *sql.DB
}

func NewVoteRepository(db *sql.DB) ports.VoteRepository {
	return &voteRepository{
		db: db,
	}
}

func (r *voteRepository) SaveVote(ctx context.Context, vote *domain.Vote) error {
	query := `
		INSERT INTO votes (voter_id, election_id, candidate_id, cast_at)
		VALUES ($1, $2, $3, $4)
	`
	_, err := r.db.ExecContext(ctx, query, vote.VoterID, vote.ElectionID, vote.CandidateID, vote.CastAt)
	if err != nil {
		if isUniqueViolation(err, "votes") {
			return domain.ErrAlreadyVoted
		}
		return fmt.Errorf("failed to save vote: %w", err)
	}
	return nil
}

func (r *voteRepository) HasVoted(ctx context.Context, voterID, electionID uuid.UUID) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM votes WHERE voter_id = $1 AND election_id = $2)`
	var exists bool
	if err := r.db.QueryRowContext(ctx, query, voterID, electionID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check existing vote: %w", err)
	}
	return exists, nil
}

func (r *voteRepository) ListByElection(ctx context.Context, electionID uuid.UUID) ([]domain.Vote, error) {
	query := `
		SELECT voter_id, election_id, candidate_id, cast_at
		FROM votes
		WHERE election_id = $1
		ORDER BY cast_at, voter_id
	`
	rows, err := r.db.QueryContext(ctx, query, electionID)
	if err != nil {
		return nil, fmt.Errorf("failed to list votes: %w", err)
	}
	defer rows.Close()

	votes := []domain.Vote{}
	for rows.Next() {
		var v domain.Vote
		if err := rows.Scan(&v.VoterID, &v.ElectionID, &v.CandidateID, &v.CastAt); err != nil {
			return nil, fmt.Errorf("failed to scan vote: %w", err)
		}
		v.CastAt = v.CastAt.UTC()
		votes = append(votes, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating votes: %w", err)
	}
	return votes, nil
}

func (r *voteRepository) CountByCandidate(ctx context.Context, candidateID uuid.UUID) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM votes WHERE candidate_id = $1`, candidateID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count votes: %w", err)
	}
	return count, nil
}
