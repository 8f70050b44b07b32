package sqlite

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

const electionColumns = `id, title, state, lga, start_time, end_time, created_at`

type electionRepository struct {
	db *sql.DB
}

func NewElectionRepository(db *sql.DB) ports.ElectionRepository {
	return &electionRepository{db: db}
}

func (r *electionRepository) Save(ctx context.Context, election *domain.Election) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO elections (`+electionColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		election.ID, election.Title, nullString(election.State), nullString(election.LGA),
		toMillis(election.StartTime), toMillis(election.EndTime), toMillis(election.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("failed to insert election: %w", err)
	}
	return nil
}

func (r *electionRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Election, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+electionColumns+` FROM elections WHERE id = ?`, id)
	election, err := scanElection(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrElectionNotFound
		}
		return nil, fmt.Errorf("failed to get election: %w", err)
	}

	if election.Candidates, err = r.fetchCandidateIDs(ctx, election.ID); err != nil {
		return nil, err
	}
	return election, nil
}

func (r *electionRepository) GetAll(ctx context.Context) ([]*domain.Election, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+electionColumns+` FROM elections ORDER BY created_at, rowid`)
	if err != nil {
		return nil, fmt.Errorf("failed to get all elections: %w", err)
	}
	defer rows.Close()

	return r.scanElections(ctx, rows)
}

func (r *electionRepository) ListActive(ctx context.Context, now time.Time) ([]*domain.Election, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+electionColumns+` FROM elections WHERE end_time > ? ORDER BY end_time, rowid`,
		toMillis(now),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list active elections: %w", err)
	}
	defer rows.Close()

	return r.scanElections(ctx, rows)
}

func (r *electionRepository) Update(ctx context.Context, election *domain.Election) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE elections SET title = ?, state = ?, lga = ?, start_time = ?, end_time = ? WHERE id = ?`,
		election.Title, nullString(election.State), nullString(election.LGA),
		toMillis(election.StartTime), toMillis(election.EndTime), election.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update election: %w", err)
	}
	return expectOneRow(res, domain.ErrElectionNotFound)
}

// Delete removes the election with its votes, results and candidates in one
// transaction.
func (r *electionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin delete: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, stmt := range []string{
		`DELETE FROM votes WHERE election_id = ?`,
		`DELETE FROM election_results WHERE election_id = ?`,
		`DELETE FROM candidates WHERE election_id = ?`,
	} {
		if _, err := tx.ExecContext(ctx, stmt, id); err != nil {
			return fmt.Errorf("failed to delete election dependents: %w", err)
		}
	}

	res, err := tx.ExecContext(ctx, `DELETE FROM elections WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete election: %w", err)
	}
	if err := expectOneRow(res, domain.ErrElectionNotFound); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit delete: %w", err)
	}
	return nil
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
	rows, err := r.db.QueryContext(ctx,
		`SELECT id FROM candidates WHERE election_id = ? ORDER BY created_at, rowid`, electionID)
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
	var (
		e                         domain.Election
		state, lga                sql.NullString
		start, end, createdMillis int64
	)
	if err := row.Scan(&e.ID, &e.Title, &state, &lga, &start, &end, &createdMillis); err != nil {
		return nil, err
	}
	e.State = state.String
	e.LGA = lga.String
	e.StartTime = fromMillis(start)
	e.EndTime = fromMillis(end)
	e.CreatedAt = fromMillis(createdMillis)
	return &e, nil
}
