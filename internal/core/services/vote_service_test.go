package services

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vncsmyrnk/evoting/internal/core/domain"
	"github.com/vncsmyrnk/evoting/internal/core/ports"
)

var now = time.Date(2026, 2, 25, 9, 0, 0, 0, time.UTC)

type voteFixture struct {
	store     *memStore
	svc       ports.VoteService
	election  *domain.Election
	candidate *domain.Candidate
	rival     *domain.Candidate
	voter     *domain.Voter
}

func newVoteFixture(t *testing.T) *voteFixture {
	t.Helper()

	store := newMemStore()
	election := store.addElection("Lagos", "", now.Add(time.Hour))
	party := store.addParty("APC")
	other := store.addParty("PDP")
	candidate := store.addCandidate(election.ID, party.ID, "Ada", now.Add(-2*time.Hour))
	rival := store.addCandidate(election.ID, other.ID, "Bola", now.Add(-time.Hour))
	voter := store.addVoter("Lagos", "Ikeja", true)

	svc := NewVoteService(fakeElectionRepo{store}, fakeVoterRepo{store}, fakeVoteRepo{memStore: store})

	return &voteFixture{
		store:     store,
		svc:       svc,
		election:  election,
		candidate: candidate,
		rival:     rival,
		voter:     voter,
	}
}

func (f *voteFixture) input() ports.CastVoteInput {
	return ports.CastVoteInput{
		VoterID:     f.voter.ID,
		ElectionID:  f.election.ID,
		CandidateID: f.candidate.ID,
	}
}

func TestCastVote_Success(t *testing.T) {
	f := newVoteFixture(t)

	vote, err := f.svc.CastVote(context.Background(), f.input(), now)
	require.NoError(t, err)

	assert.Equal(t, f.voter.ID, vote.VoterID)
	assert.Equal(t, f.election.ID, vote.ElectionID)
	assert.Equal(t, f.candidate.ID, vote.CandidateID)
	assert.Equal(t, now, vote.CastAt)

	votes, err := f.svc.ListVotesForElection(context.Background(), f.election.ID)
	require.NoError(t, err)
	assert.Len(t, votes, 1)
}

func TestCastVote_CastAtHasMillisecondPrecision(t *testing.T) {
	f := newVoteFixture(t)
	at := now.Add(1234567 * time.Nanosecond)

	vote, err := f.svc.CastVote(context.Background(), f.input(), at)
	require.NoError(t, err)
	assert.Equal(t, now.Add(time.Millisecond), vote.CastAt)
}

func TestCastVote_ElectionNotFound(t *testing.T) {
	f := newVoteFixture(t)
	input := f.input()
	input.ElectionID = uuid.New()

	_, err := f.svc.CastVote(context.Background(), input, now)
	assert.ErrorIs(t, err, domain.ErrElectionNotFound)
}

func TestCastVote_ElectionClosed(t *testing.T) {
	f := newVoteFixture(t)

	_, err := f.svc.CastVote(context.Background(), f.input(), f.election.EndTime)
	assert.ErrorIs(t, err, domain.ErrElectionClosed)

	_, err = f.svc.CastVote(context.Background(), f.input(), f.election.EndTime.Add(time.Minute))
	assert.ErrorIs(t, err, domain.ErrElectionClosed)
}

func TestCastVote_StartTimeNotChecked(t *testing.T) {
	f := newVoteFixture(t)
	f.store.elections[f.election.ID].StartTime = now.Add(30 * time.Minute)

	_, err := f.svc.CastVote(context.Background(), f.input(), now)
	assert.NoError(t, err)
}

func TestCastVote_InvalidCandidate(t *testing.T) {
	f := newVoteFixture(t)
	elsewhere := f.store.addElection("", "", now.Add(time.Hour))
	foreign := f.store.addCandidate(elsewhere.ID, f.candidate.PartyID, "Chidi", now)

	input := f.input()
	input.CandidateID = foreign.ID
	_, err := f.svc.CastVote(context.Background(), input, now)
	assert.ErrorIs(t, err, domain.ErrInvalidCandidate)
}

func TestCastVote_ClosedBeatsInvalidCandidate(t *testing.T) {
	f := newVoteFixture(t)
	input := f.input()
	input.CandidateID = uuid.New()

	_, err := f.svc.CastVote(context.Background(), input, f.election.EndTime.Add(time.Hour))
	assert.ErrorIs(t, err, domain.ErrElectionClosed)
}

func TestCastVote_InvalidCandidateBeatsIneligible(t *testing.T) {
	f := newVoteFixture(t)
	f.store.voters[f.voter.ID].Accredited = false
	input := f.input()
	input.CandidateID = uuid.New()

	_, err := f.svc.CastVote(context.Background(), input, now)
	assert.ErrorIs(t, err, domain.ErrInvalidCandidate)
}

func TestCastVote_NotAccredited(t *testing.T) {
	f := newVoteFixture(t)
	f.store.voters[f.voter.ID].Accredited = false

	_, err := f.svc.CastVote(context.Background(), f.input(), now)
	assert.ErrorIs(t, err, domain.ErrNotEligible)
}

func TestCastVote_WrongRegion(t *testing.T) {
	f := newVoteFixture(t)
	f.store.voters[f.voter.ID].State = "Kano"

	_, err := f.svc.CastVote(context.Background(), f.input(), now)
	assert.ErrorIs(t, err, domain.ErrNotEligible)
}

func TestCastVote_UnknownVoter(t *testing.T) {
	f := newVoteFixture(t)
	input := f.input()
	input.VoterID = uuid.New()

	_, err := f.svc.CastVote(context.Background(), input, now)
	assert.ErrorIs(t, err, domain.ErrVoterNotFound)
}

func TestCastVote_AlreadyVoted(t *testing.T) {
	f := newVoteFixture(t)

	_, err := f.svc.CastVote(context.Background(), f.input(), now)
	require.NoError(t, err)

	input := f.input()
	input.CandidateID = f.rival.ID
	_, err = f.svc.CastVote(context.Background(), input, now.Add(time.Minute))
	assert.ErrorIs(t, err, domain.ErrAlreadyVoted)
}

func TestCastVote_LedgerConflictWithoutPreCheck(t *testing.T) {
	f := newVoteFixture(t)
	svc := NewVoteService(fakeElectionRepo{f.store}, fakeVoterRepo{f.store}, fakeVoteRepo{memStore: f.store, hasVotedAlwaysFalse: true})

	_, err := svc.CastVote(context.Background(), f.input(), now)
	require.NoError(t, err)

	_, err = svc.CastVote(context.Background(), f.input(), now)
	assert.ErrorIs(t, err, domain.ErrAlreadyVoted)
}

func TestCastVote_ConcurrentCastsRecordOneVote(t *testing.T) {
	f := newVoteFixture(t)
	svc := NewVoteService(fakeElectionRepo{f.store}, fakeVoterRepo{f.store}, fakeVoteRepo{memStore: f.store, hasVotedAlwaysFalse: true})
	candidates := []uuid.UUID{f.candidate.ID, f.rival.ID}

	const attempts = 20
	var successes, conflicts atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			input := f.input()
			input.CandidateID = candidates[i%len(candidates)]
			_, err := svc.CastVote(context.Background(), input, now)
			switch {
			case err == nil:
				successes.Add(1)
			case errors.Is(err, domain.ErrAlreadyVoted):
				conflicts.Add(1)
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, int32(1), successes.Load())
	assert.Equal(t, int32(attempts-1), conflicts.Load())
	assert.Len(t, f.store.votes, 1)
}

func TestCastVote_InfrastructureErrorIsNotDomainError(t *testing.T) {
	f := newVoteFixture(t)
	f.store.failWith = errors.New("connection reset")

	_, err := f.svc.CastVote(context.Background(), f.input(), now)
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrAlreadyVoted)
	assert.NotErrorIs(t, err, domain.ErrElectionNotFound)
}
