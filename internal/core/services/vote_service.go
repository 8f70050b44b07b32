package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/vncsmyrnk/evoting/internal/core/domain"
	"github.com/vncsmyrnk/evoting/internal/core/ports"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/vncsmyrnk/evoting/internal/core/services"

type voteService struct {
	electionRepo ports.ElectionRepository
	voterRepo    ports.VoterRepository
	voteRepo     ports.VoteRepository
	tracer       trace.Tracer
}

type VoteServiceOption func(*voteService)

// WithTracerProvider sets the provider CastVote spans are recorded with.
// Defaults to the global provider.
func WithTracerProvider(tp trace.TracerProvider) VoteServiceOption {
	return func(s *voteService) {
		s.tracer = tp.Tracer(tracerName)
	}
}

func NewVoteService(electionRepo ports.ElectionRepository, voterRepo ports.VoterRepository, voteRepo ports.VoteRepository, opts ...VoteServiceOption) ports.VoteService {
	s := &voteService{
		electionRepo: electionRepo,
		voterRepo:    voterRepo,
		voteRepo:     voteRepo,
		tracer:       otel.GetTracerProvider().Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CastVote records the voter's choice for an election.
//
// Checks run in a fixed order and the first failure is returned: election
// exists, election still open, candidate registered, voter eligible, voter has
// not voted yet. The last check is decided by the ledger insert itself; the
// HasVoted lookup only saves a round trip in the common case.
func (s *voteService) CastVote(ctx context.Context, input ports.CastVoteInput, now time.Time) (*domain.Vote, error) {
	ctx, span := s.tracer.Start(ctx, "voteService.CastVote")
	defer span.End()
	span.SetAttributes(
		attribute.String("election.id", input.ElectionID.String()),
		attribute.String("candidate.id", input.CandidateID.String()),
	)

	vote, err := s.castVote(ctx, input, now)
	if err != nil {
		if isDomainError(err) {
			slog.InfoContext(ctx, "vote rejected",
				"election_id", input.ElectionID, "voter_id", input.VoterID, "reason", err.Error())
		} else {
			span.RecordError(err)
			span.SetStatus(codes.Error, "cast vote failed")
			slog.ErrorContext(ctx, "failed to cast vote",
				"election_id", input.ElectionID, "voter_id", input.VoterID, "error", err)
		}
		return nil, err
	}

	slog.InfoContext(ctx, "vote cast", "election_id", vote.ElectionID, "voter_id", vote.VoterID)
	return vote, nil
}

func (s *voteService) castVote(ctx context.Context, input ports.CastVoteInput, now time.Time) (*domain.Vote, error) {
	election, err := s.electionRepo.GetByID(ctx, input.ElectionID)
	if err != nil {
		return nil, err
	}

	if !election.IsOpen(now) {
		return nil, domain.ErrElectionClosed
	}

	if !election.HasCandidate(input.CandidateID) {
		return nil, domain.ErrInvalidCandidate
	}

	voter, err := s.voterRepo.GetByID(ctx, input.VoterID)
	if err != nil {
		return nil, err
	}
	if !domain.IsEligible(voter, election) {
		return nil, domain.ErrNotEligible
	}

	hasVoted, err := s.voteRepo.HasVoted(ctx, voter.ID, election.ID)
	if err != nil {
		return nil, err
	}
	if hasVoted {
		return nil, domain.ErrAlreadyVoted
	}

	vote := &domain.Vote{
		VoterID:     voter.ID,
		ElectionID:  election.ID,
		CandidateID: input.CandidateID,
		CastAt:      now.UTC().Truncate(time.Millisecond),
	}
	if err := s.voteRepo.SaveVote(ctx, vote); err != nil {
		return nil, err
	}

	return vote, nil
}

func (s *voteService) ListVotesForElection(ctx context.Context, electionID uuid.UUID) ([]domain.Vote, error) {
	votes, err := s.voteRepo.ListByElection(ctx, electionID)
	if err != nil {
		return nil, fmt.Errorf("failed to list votes: %w", err)
	}
	return votes, nil
}

func isDomainError(err error) bool {
	for _, target := range []error{
		domain.ErrElectionNotFound,
		domain.ErrElectionClosed,
		domain.ErrInvalidCandidate,
		domain.ErrNotEligible,
		domain.ErrAlreadyVoted,
		domain.ErrVoterNotFound,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
