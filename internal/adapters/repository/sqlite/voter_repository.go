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

type voterRepository struct {
	db *sql.DB
}

func NewVoterRepository(db *sql.DB) ports.VoterRepository {
	return &voterRepository{db: db}
}

func (r *voterRepository) Save(ctx context.Context, voter *domain.Voter) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO voters (id, name, state, lga, accredited, created_at) VALUES (?, ?, ?, ?, ?, ?)`,
		voter.ID, voter.Name, voter.State, voter.LGA, voter.Accredited, toMillis(voter.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("failed to insert voter: %w", err)
	}
	return nil
}

func (r *voterRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Voter, error) {
	var (
		voter     domain.Voter
		createdAt int64
	)
	err := r.db.QueryRowContext(ctx,
		`SELECT id, name, state, lga, accredited, created_at FROM voters WHERE id = ?`, id,
	).Scan(&voter.ID, &voter.Name, &voter.State, &voter.LGA, &voter.Accredited, &createdAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrVoterNotFound
		}
		return nil, fmt.Errorf("failed to get voter: %w", err)
	}
	voter.CreatedAt = fromMillis(createdAt)
	return &voter, nil
}

func (r *voterRepository) SetAccreditation(ctx context.Context, id uuid.UUID, accredited bool) (bool, error) {
	res, err := r.db.ExecContext(ctx,
		`UPDATE voters SET accredited = ? WHERE id = ? AND accredited <> ?`, accredited, id, accredited)
	if err != nil {
		return false, fmt.Errorf("failed to update accreditation: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read affected rows: %w", err)
	}
	if n > 0 {
		return true, nil
	}

	var exists bool
	if err := r.db.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM voters WHERE id = ?)`, id).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check voter: %w", err)
	}
	if !exists {
		return false, domain.ErrVoterNotFound
	}
	return false, nil
}
