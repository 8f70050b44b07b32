package sqlite

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
	return &voteRepository{db: db}
}

func (r *voteRepository) SaveVote(ctx context.Context, vote *domain.Vote) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO votes (voter_id, election_id, candidate_id, cast_at) VALUES (?, ?, ?, ?)`,
		vote.VoterID, vote.ElectionID, vote.CandidateID, toMillis(vote.CastAt),
	)
	if err != nil {
		if isUniqueViolation(err, "votes") {
			return domain.ErrAlreadyVoted
		}
		return fmt.Errorf("failed to save vote: %w", err)
	}
	return nil
}

func (r *voteRepository) HasVoted(ctx context.Context, voterID, electionID uuid.UUID) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM votes WHERE voter_id = ? AND election_id = ?)`,
		voterID, electionID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check existing vote: %w", err)
	}
	return exists, nil
}

func (r *voteRepository) ListByElection(ctx context.Context, electionID uuid.UUID) ([]domain.Vote, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT voter_id, election_id, candidate_id, cast_at
		FROM votes
		WHERE election_id = ?
		ORDER BY cast_at, rowid`, electionID)
	if err != nil {
		return nil, fmt.Errorf("failed to list votes: %w", err)
	}
	defer rows.Close()

	votes := []domain.Vote{}
	for rows.Next() {
		var (
			v      domain.Vote
			castAt int64
		)
		if err := rows.Scan(&v.VoterID, &v.ElectionID, &v.CandidateID, &castAt); err != nil {
			return nil, fmt.Errorf("failed to scan vote: %w", err)
		}
		v.CastAt = fromMillis(castAt)
		votes = append(votes, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating votes: %w", err)
	}
	return votes, nil
}

func (r *voteRepository) CountByCandidate(ctx context.Context, candidateID uuid.UUID) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM votes WHERE candidate_id = ?`, candidateID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count votes: %w", err)
	}
	return count, nil
}
