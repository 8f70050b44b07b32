package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func TestCastVote_Spans(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	t.Cleanup(func() { _ = provider.Shutdown(context.Background()) })

	f := newVoteFixture(t)
	svc := NewVoteService(fakeElectionRepo{f.store}, fakeVoterRepo{f.store}, fakeVoteRepo{memStore: f.store},
		WithTracerProvider(provider))

	_, err := svc.CastVote(context.Background(), f.input(), now)
	require.NoError(t, err)

	_, err = svc.CastVote(context.Background(), f.input(), now)
	require.Error(t, err)

	f.store.failWith = errors.New("connection reset")
	_, err = svc.CastVote(context.Background(), f.input(), now)
	require.Error(t, err)

	spans := recorder.Ended()
	require.Len(t, spans, 3)
	for _, s := range spans {
		assert.Equal(t, "voteService.CastVote", s.Name())
	}
	assert.Equal(t, codes.Unset, spans[0].Status().Code)
	assert.Equal(t, codes.Unset, spans[1].Status().Code, "rejections are not span errors")
	assert.Equal(t, codes.Error, spans[2].Status().Code)
}
