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

type partyRepository struct {
	db *sql.DB
}

func NewPartyRepository(db *sql.DB) ports.PartyRepository {
	return &partyRepository{db: db}
}

func (r *partyRepository) Save(ctx context.Context, party *domain.Party) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO parties (id, name, logo_url, created_at) VALUES (?, ?, ?, ?)`,
		party.ID, party.Name, party.LogoURL, toMillis(party.CreatedAt),
	)
	if err != nil {
		if isUniqueViolation(err, "parties") {
			return domain.ErrPartyExists
		}
		return fmt.Errorf("failed to insert party: %w", err)
	}
	return nil
}

func (r *partyRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Party, error) {
	party, err := scanParty(r.db.QueryRowContext(ctx,
		`SELECT id, name, logo_url, created_at FROM parties WHERE id = ?`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrPartyNotFound
		}
		return nil, fmt.Errorf("failed to get party: %w", err)
	}
	return party, nil
}

func (r *partyRepository) GetAll(ctx context.Context) ([]*domain.Party, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name, logo_url, created_at FROM parties ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to list parties: %w", err)
	}
	defer rows.Close()

	parties := []*domain.Party{}
	for rows.Next() {
		party, err := scanParty(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan party: %w", err)
		}
		parties = append(parties, party)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating parties: %w", err)
	}
	return parties, nil
}

func scanParty(row rowScanner) (*domain.Party, error) {
	var (
		party     domain.Party
		createdAt int64
	)
	if err := row.Scan(&party.ID, &party.Name, &party.LogoURL, &createdAt); err != nil {
		return nil, err
	}
	party.CreatedAt = fromMillis(createdAt)
	return &party, nil
}
