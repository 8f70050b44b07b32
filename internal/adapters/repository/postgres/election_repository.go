package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/vncsmyrnk/evoting/internal/core/domain"
	"github.com/vncsmyrnk/evoting/internal/core/ports"
)

type electionRepository struct {
	db *sql.DB
}

func NewElectionRepository(db *sql.DB) ports.ElectionRepository {
	return &electionRepository{
		db: db,
	}
}

func (r *electionRepository) Save(ctx context.Context, election *domain.Election) error {
	query := `
		INSERT INTO elections (id, title, state, lga, start_time, end_time, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := r.db.ExecContext(ctx, query,
		election.ID, election.Title, nullString(election.State), nullString(election.LGA),
		election.StartTime, election.EndTime, election.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert election: %w", err)
	}
	return nil
}

func (r *electionRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Election, error) {
	query := `
		SELECT id, title, state, lga, start_time, end_time, created_at
		FROM elections
		WHERE id = $1
	`
	election, err := scanElection(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrElectionNotFound
		}
		return nil, fmt.Errorf("failed to get election: %w", err)
	}

	candidates, err := r.fetchCandidateIDs(ctx, election.ID)
	if err != nil {
		return nil, err
	}
	election.Candidates = candidates

	return election, nil
}

func (r *electionRepository) GetAll(ctx context.Context) ([]*domain.Election, error) {
	query := `
		SELECT id, title, state, lga, start_time, end_time, created_at
		FROM elections
		ORDER BY created_at
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to get all elections: %w", err)
	}
	defer rows.Close()

	return r.scanElections(ctx, rows)
}

func (r *electionRepository) ListActive(ctx context.Context, now time.Time) ([]*domain.Election, error) {
	query := `
		SELECT id, title, state, lga, start_time, end_time, created_at
		FROM elections
		WHERE end_time > $1
		ORDER BY end_time
	`
	rows, err := r.db.QueryContext(ctx, query, now)
	if err != nil {
		return nil, fmt.Errorf("failed to list active elections: %w", err)
	}
	defer rows.Close()

	return r.scanElections(ctx, rows)
}

func (r *electionRepository) Update(ctx context.Context, election *domain.Election) error {
	query := `
		UPDATE elections
		SET title = $2, state = $3, lga = $4, start_time = $5, end_time = $6
		WHERE id = $1
	`
	res, err := r.db.ExecContext(ctx, query,
		election.ID, election.Title, nullString(election.State), nullString(election.LGA),
		election.StartTime, election.EndTime,
	)
	if err != nil {
		return fmt.Errorf("failed to update election: %w", err)
	}
	return expectOneRow(res, domain.ErrElectionNotFound)
}

// Delete relies on ON DELETE CASCADE to remove candidates, votes and results.
func (r *electionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM elections WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete election: %w", err)
	}
	return expectOneRow(res, domain.ErrElectionNotFound)
}

func (r *electionRepository) scanElections(ctx context.Context, rows *sql.Rows) ([]*domain.Election, error) {
	var elections []*domain.Election
	for rows.Next() {
		election, err := scanElection(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan election: %w", err)
		}
		elections = append(elections, election)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating elections: %w", err)
	}
	rows.Close()

	for _, election := range elections {
		candidates, err := r.fetchCandidateIDs(ctx, election.ID)
		if err != nil {
			return nil, err
		}
		election.Candidates = candidates
	}
	return elections, nil
}

func (r *electionRepository) fetchCandidateIDs(ctx context.Context, electionID uuid.UUID) ([]uuid.UUID, error) {
	query := `
		SELECT id
		FROM candidates
		WHERE election_id = $1
		ORDER BY created_at, id
	`
	rows, err := r.db.QueryContext(ctx, query, electionID)
	if err != nil {
		return nil, fmt.Errorf("failed to get election candidates: %w", err)
	}
	defer rows.Close()

	ids := []uuid.UUID{}
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan candidate id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating candidates: %w", err)
	}
	return ids, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanElection(row rowScanner) (*domain.Election, error) {
	var e domain.Election
	var state, lga sql.NullString
	if err := row.Scan(&e.ID, &e.Title, &state, &lga, &e.StartTime, &e.EndTime, &e.CreatedAt); err != nil {
		return nil, err
	}
	e.State = state.String
	e.LGA = lga.String
	e.StartTime = e.StartTime.UTC()
	e.EndTime = e.EndTime.UTC()
	e.CreatedAt = e.CreatedAt.UTC()
	return &e, nil
}
