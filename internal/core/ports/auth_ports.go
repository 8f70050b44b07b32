package ports

import (
	"context"

	"github.com/google/uuid"
)

// Caller is the identity an access token was issued to.
type Caller struct {
	VoterID uuid.UUID
	Role    string
}

// TokenVerifier resolves an access token to the authenticated caller.
type TokenVerifier interface {
	Verify(ctx context.Context, token string) (Caller, error)
}
