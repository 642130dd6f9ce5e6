package auth

import (
	"context"
	"fmt"
	"time"

	"sba-portal/internal/domain/apperr"
)

var (
	ErrInvalidCredentials = fmt.Errorf("invalid email or password: %w", apperr.ErrUnauthorized)
	ErrNotConfirmed       = fmt.Errorf("account not confirmed: %w", apperr.ErrUnauthorized)
	ErrInvalidSession     = fmt.Errorf("invalid session: %w", apperr.ErrUnauthorized)
	ErrAdminRequired      = fmt.Errorf("admin credentials required: %w", apperr.ErrUnauthorized)
	ErrAccountExists      = fmt.Errorf("account already exists: %w", apperr.ErrInvalidInput)
)

type SignUpInput struct {
	Email     string
	Password  string
	Role      Role
	FirstName string
	LastName  string
}

type Tokens struct {
	IDToken      string        `json:"id_token"`
	AccessToken  string        `json:"access_token"`
	RefreshToken string        `json:"refresh_token,omitempty"`
	ExpiresIn    time.Duration `json:"-"`
}

// Provider is the hosted account service.
type Provider interface {
	SignUp(ctx context.Context, in SignUpInput) (userID string, err error)
	SignIn(ctx context.Context, email, password string) (*Tokens, error)
	SignOut(ctx context.Context, accessToken string) error
}

// Verifier turns a signed ID token into the Actor it names.
type Verifier interface {
	Verify(ctx context.Context, idToken string) (Actor, error)
}
