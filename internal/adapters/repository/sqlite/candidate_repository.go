package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/vncsmyrnk/evoting/internal/core/domain"
	"github.com/vncsmyrnk/evoting/internal/core/ports"
)

type candidateRepository struct {
	db *sql.DB
}

func NewCandidateRepository(db *sql.DB) ports.CandidateRepository {
	return &candidateRepository{db: db}
}

func (r *candidateRepository) Save(ctx context.Context, candidate *domain.Candidate) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO candidates (id, election_id, party_id, name, created_at) VALUES (?, ?, ?, ?, ?)`,
		candidate.ID, candidate.ElectionID, candidate.PartyID, candidate.Name, toMillis(candidate.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("failed to insert candidate: %w", err)
	}
	return nil
}

func (r *candidateRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Candidate, error) {
	var (
		c         domain.Candidate
		createdAt int64
	)
	err := r.db.QueryRowContext(ctx,
		`SELECT id, election_id, party_id, name, created_at FROM candidates WHERE id = ?`, id,
	).Scan(&c.ID, &c.ElectionID, &c.PartyID, &c.Name, &createdAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrCandidateNotFound
		}
		return nil, fmt.Errorf("failed to get candidate: %w", err)
	}
	c.CreatedAt = fromMillis(createdAt)
	return &c, nil
}

func (r *candidateRepository) ListParticipants(ctx context.Context, electionID uuid.UUID) ([]domain.Participant, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT p.name, p.logo_url, c.name, c.id
		FROM candidates c
		JOIN parties p ON p.id = c.party_id
		WHERE c.election_id = ?
		ORDER BY c.created_at DESC, c.rowid DESC`, electionID)
	if err != nil {
		return nil, fmt.Errorf("failed to list participants: %w", err)
	}
	defer rows.Close()

	participants := []domain.Participant{}
	for rows.Next() {
		var p domain.Participant
		if err := rows.Scan(&p.PartyName, &p.PartyLogoURL, &p.CandidateName, &p.CandidateID); err != nil {
			return nil, fmt.Errorf("failed to scan participant: %w", err)
		}
		participants = append(participants, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating participants: %w", err)
	}
	return participants, nil
}
