// Package auth verifies the access tokens issued to voters and officials.
package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/vncsmyrnk/evoting/internal/core/ports"
)

var ErrInvalidToken = errors.New("invalid access token")

type claims struct {
	Role string `json:"role,omitempty"`
	jwt.RegisteredClaims
}

// JWTVerifier accepts HS256 tokens whose subject is the voter ID. The optional
// role claim marks officials.
type JWTVerifier struct {
	secret []byte
	parser *jwt.Parser
}

func NewJWTVerifier(secret string) ports.TokenVerifier {
	return &JWTVerifier{
		secret: []byte(secret),
		parser: jwt.NewParser(
			jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
			jwt.WithExpirationRequired(),
		),
	}
}

func (v *JWTVerifier) Verify(ctx context.Context, token string) (ports.Caller, error) {
	c := &claims{}
	_, err := v.parser.ParseWithClaims(token, c, func(*jwt.Token) (any, error) {
		return v.secret, nil
	})
	if err != nil {
		return ports.Caller{}, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	voterID, err := uuid.Parse(c.Subject)
	if err != nil {
		return ports.Caller{}, fmt.Errorf("%w: subject is not a voter id", ErrInvalidToken)
	}
	return ports.Caller{VoterID: voterID, Role: c.Role}, nil
}
