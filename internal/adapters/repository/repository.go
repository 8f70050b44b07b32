// Package repository opens the configured storage backend.
package repository

import (
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
	"github.com/vncsmyrnk/evoting/internal/adapters/repository/postgres"
	"github.com/vncsmyrnk/evoting/internal/adapters/repository/sqlite"
	"github.com/vncsmyrnk/evoting/internal/config"
	"github.com/vncsmyrnk/evoting/internal/core/ports"
)

type Repositories struct {
	DB         *sql.DB
	Elections  ports.ElectionRepository
	Candidates ports.CandidateRepository
	Parties    ports.PartyRepository
	Voters     ports.VoterRepository
	Votes      ports.VoteRepository
	Results    ports.ElectionResultRepository
}

// Open connects to the backend selected by cfg.DatabaseDriver. Postgres
// schemas are managed by cmd/migrations; SQLite files migrate on open.
func Open(cfg config.Config) (*Repositories, error) {
	switch cfg.DatabaseDriver {
	case config.DriverPostgres:
		db, err := sql.Open("postgres", cfg.PostgresURL())
		if err != nil {
			return nil, fmt.Errorf("open postgres: %w", err)
		}
		if err := db.Ping(); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("ping postgres: %w", err)
		}
		return &Repositories{
			DB:         db,
			Elections:  postgres.NewElectionRepository(db),
			Candidates: postgres.NewCandidateRepository(db),
			Parties:    postgres.NewPartyRepository(db),
			Voters:     postgres.NewVoterRepository(db),
			Votes:      postgres.NewVoteRepository(db),
			Results:    postgres.NewElectionResultRepository(db),
		}, nil
	case config.DriverSQLite:
		db, err := sqlite.Open(cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		return &Repositories{
			DB:         db,
			Elections:  sqlite.NewElectionRepository(db),
			Candidates: sqlite.NewCandidateRepository(db),
			Parties:    sqlite.NewPartyRepository(db),
			Voters:     sqlite.NewVoterRepository(db),
			Votes:      sqlite.NewVoteRepository(db),
			Results:    sqlite.NewElectionResultRepository(db),
		}, nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.DatabaseDriver)
	}
}

func (r *Repositories) Close() error {
	return r.DB.Close()
}
