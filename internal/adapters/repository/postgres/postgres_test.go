package postgres_test

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	_ "github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"github.com/vncsmyrnk/evoting/internal/adapters/repository/postgres"
	"github.com/vncsmyrnk/evoting/internal/core/domain"
	"github.com/vncsmyrnk/evoting/internal/core/ports"
	"github.com/vncsmyrnk/evoting/internal/core/services"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping postgres test")
	}

	ctx := context.Background()
	container, err := tcpostgres.Run(ctx, "postgres:15-alpine",
		tcpostgres.WithDatabase("testdb"),
		tcpostgres.WithUsername("user"),
		tcpostgres.WithPassword("password"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Terminate(context.Background()) })

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := sql.Open("postgres", connStr)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, db.Ping())

	require.NoError(t, applyMigrations(db, "migrations"))
	return db
}

func applyMigrations(db *sql.DB, dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return err
	}
	var files []string
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), ".up.sql") {
			files = append(files, entry.Name())
		}
	}
	sort.Strings(files)

	for _, name := range files {
		content, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			return err
		}
		if _, err := db.Exec(string(content)); err != nil {
			return err
		}
	}
	return nil
}

type seed struct {
	db         *sql.DB
	elections  ports.ElectionRepository
	candidates ports.CandidateRepository
	parties    ports.PartyRepository
	voters     ports.VoterRepository
	votes      ports.VoteRepository
	results    ports.ElectionResultRepository
}

func newSeed(db *sql.DB) *seed {
	return &seed{
		db:         db,
		elections:  postgres.NewElectionRepository(db),
		candidates: postgres.NewCandidateRepository(db),
		parties:    postgres.NewPartyRepository(db),
		voters:     postgres.NewVoterRepository(db),
		votes:      postgres.NewVoteRepository(db),
		results:    postgres.NewElectionResultRepository(db),
	}
}

func (s *seed) election(t *testing.T, end time.Time) *domain.Election {
	t.Helper()
	e := &domain.Election{
		ID:        uuid.New(),
		Title:     "Presidential",
		StartTime: end.Add(-24 * time.Hour),
		EndTime:   end,
		CreatedAt: time.Now().UTC(),
	}
	require.NoError(t, s.elections.Save(context.Background(), e))
	return e
}

func (s *seed) candidate(t *testing.T, electionID uuid.UUID) *domain.Candidate {
	t.Helper()
	party := &domain.Party{ID: uuid.New(), Name: "Party " + uuid.NewString(), LogoURL: "https://img.example/p.png", CreatedAt: time.Now().UTC()}
	require.NoError(t, s.parties.Save(context.Background(), party))
	c := &domain.Candidate{ID: uuid.New(), ElectionID: electionID, PartyID: party.ID, Name: "Candidate", CreatedAt: time.Now().UTC()}
	require.NoError(t, s.candidates.Save(context.Background(), c))
	return c
}

func (s *seed) voter(t *testing.T, accredited bool) *domain.Voter {
	t.Helper()
	v := &domain.Voter{ID: uuid.New(), Name: "Chidi", State: "Enugu", LGA: "Nsukka", Accredited: accredited, CreatedAt: time.Now().UTC()}
	require.NoError(t, s.voters.Save(context.Background(), v))
	return v
}

func (s *seed) count(t *testing.T, query string, args ...any) int {
	t.Helper()
	var n int
	require.NoError(t, s.db.QueryRow(query, args...).Scan(&n))
	return n
}

// A single container backs every subtest to keep the suite fast.
func TestPostgresRepositories(t *testing.T) {
	db := setupDB(t)
	s := newSeed(db)
	ctx := context.Background()

	t.Run("duplicate vote maps to ErrAlreadyVoted", func(t *testing.T) {
		e := s.election(t, time.Now().Add(time.Hour))
		c := s.candidate(t, e.ID)
		v := s.voter(t, true)

		require.NoError(t, s.votes.SaveVote(ctx, &domain.Vote{VoterID: v.ID, ElectionID: e.ID, CandidateID: c.ID, CastAt: time.Now()}))
		err := s.votes.SaveVote(ctx, &domain.Vote{VoterID: v.ID, ElectionID: e.ID, CandidateID: c.ID, CastAt: time.Now()})
		assert.ErrorIs(t, err, domain.ErrAlreadyVoted)
	})

	t.Run("concurrent casts record one vote", func(t *testing.T) {
		e := s.election(t, time.Now().Add(time.Hour))
		c := s.candidate(t, e.ID)
		v := s.voter(t, true)
		svc := services.NewVoteService(s.elections, s.voters, s.votes)

		const casts = 25
		var (
			wg        sync.WaitGroup
			mu        sync.Mutex
			successes int
			conflicts int
		)
		for range casts {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, err := svc.CastVote(ctx, ports.CastVoteInput{VoterID: v.ID, ElectionID: e.ID, CandidateID: c.ID}, time.Now())
				mu.Lock()
				defer mu.Unlock()
				if err == nil {
					successes++
				} else if errors.Is(err, domain.ErrAlreadyVoted) {
					conflicts++
				}
			}()
		}
		wg.Wait()

		assert.Equal(t, 1, successes)
		assert.Equal(t, casts-1, conflicts)
		assert.Equal(t, 1, s.count(t, `SELECT COUNT(*) FROM votes WHERE election_id = $1`, e.ID))
	})

	t.Run("accreditation is idempotent", func(t *testing.T) {
		v := s.voter(t, false)

		changed, err := s.voters.SetAccreditation(ctx, v.ID, true)
		require.NoError(t, err)
		assert.True(t, changed)

		changed, err = s.voters.SetAccreditation(ctx, v.ID, true)
		require.NoError(t, err)
		assert.False(t, changed)

		_, err = s.voters.SetAccreditation(ctx, uuid.New(), true)
		assert.ErrorIs(t, err, domain.ErrVoterNotFound)
	})

	t.Run("deleting an election cascades", func(t *testing.T) {
		e := s.election(t, time.Now().Add(time.Hour))
		c := s.candidate(t, e.ID)
		v := s.voter(t, true)
		require.NoError(t, s.votes.SaveVote(ctx, &domain.Vote{VoterID: v.ID, ElectionID: e.ID, CandidateID: c.ID, CastAt: time.Now()}))
		require.NoError(t, s.results.SummarizeVotes(ctx, e.ID))

		require.NoError(t, s.elections.Delete(ctx, e.ID))

		assert.Zero(t, s.count(t, `SELECT COUNT(*) FROM candidates WHERE election_id = $1`, e.ID))
		assert.Zero(t, s.count(t, `SELECT COUNT(*) FROM votes WHERE election_id = $1`, e.ID))
		assert.Zero(t, s.count(t, `SELECT COUNT(*) FROM election_results WHERE election_id = $1`, e.ID))
		assert.ErrorIs(t, s.elections.Delete(ctx, e.ID), domain.ErrElectionNotFound)
	})

	t.Run("candidate must belong to the election", func(t *testing.T) {
		e := s.election(t, time.Now().Add(time.Hour))
		other := s.election(t, time.Now().Add(time.Hour))
		foreign := s.candidate(t, other.ID)
		v := s.voter(t, true)

		err := s.votes.SaveVote(ctx, &domain.Vote{VoterID: v.ID, ElectionID: e.ID, CandidateID: foreign.ID, CastAt: time.Now()})
		require.Error(t, err)
		assert.NotErrorIs(t, err, domain.ErrAlreadyVoted)
	})

	t.Run("election round trip keeps candidate order", func(t *testing.T) {
		e := s.election(t, time.Now().Add(time.Hour))
		first := s.candidate(t, e.ID)
		second := s.candidate(t, e.ID)

		got, err := s.elections.GetByID(ctx, e.ID)
		require.NoError(t, err)
		assert.Equal(t, []uuid.UUID{first.ID, second.ID}, got.Candidates)
		assert.Empty(t, got.State)

		participants, err := s.candidates.ListParticipants(ctx, e.ID)
		require.NoError(t, err)
		require.Len(t, participants, 2)
		assert.Equal(t, second.ID, participants[0].CandidateID)
	})

	t.Run("statistics include candidates without votes", func(t *testing.T) {
		e := s.election(t, time.Now().Add(time.Hour))
		a := s.candidate(t, e.ID)
		b := s.candidate(t, e.ID)
		v := s.voter(t, true)
		require.NoError(t, s.votes.SaveVote(ctx, &domain.Vote{VoterID: v.ID, ElectionID: e.ID, CandidateID: a.ID, CastAt: time.Now()}))
		require.NoError(t, s.results.SummarizeVotes(ctx, e.ID))

		stats, err := s.results.GetCandidateStats(ctx, e.ID)
		require.NoError(t, err)
		require.Len(t, stats, 2)
		assert.Equal(t, domain.CandidateStats{CandidateID: a.ID, VoteCount: 1, Percentage: 100}, stats[0])
		assert.Equal(t, domain.CandidateStats{CandidateID: b.ID, VoteCount: 0, Percentage: 0}, stats[1])
	})
}
