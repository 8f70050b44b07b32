package postgres

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
	return &candidateRepository{
		db: db,
	}
}

func (r *candidateRepository) Save(ctx context.Context, candidate *domain.Candidate) error {
	query := `
		INSERT INTO candidates (id, election_id, party_id, name, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := r.db.ExecContext(ctx, query,
		candidate.ID, candidate.ElectionID, candidate.PartyID, candidate.Name, candidate.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert candidate: %w", err)
	}
	return nil
}

func (r *candidateRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Candidate, error) {
	query := `
		SELECT id, election_id, party_id, name, created_at
		FROM candidates
		WHERE id = $1
	`
	var c domain.Candidate
	err := r.db.QueryRowContext(ctx, query, id).Scan(&c.ID, &c.ElectionID, &c.PartyID, &c.Name, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrCandidateNotFound
		}
		return nil, fmt.Errorf("failed to get candidate: %w", err)
	}
	c.CreatedAt = c.CreatedAt.UTC()
	return &c, nil
}

func (r *candidateRepository) ListParticipants(ctx context.Context, electionID uuid.UUID) ([]domain.Participant, error) {
	query := `
		SELECT p.name, p.logo_url, c.name, c.id
		FROM candidates c
		JOIN parties p ON p.id = c.party_id
		WHERE c.election_id = $1
		ORDER BY c.created_at DESC, c.id DESC
	`
	rows, err := r.db.QueryContext(ctx, query, electionID)
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
