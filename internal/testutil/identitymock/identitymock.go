package identitymock

import (
	"context"

	"sba-portal/internal/domain/auth"
)

var (
	_ auth.Provider = (*Provider)(nil)
	_ auth.Verifier = (*Verifier)(nil)
)

type Provider struct {
	SignUpFn  func(ctx context.Context, in auth.SignUpInput) (string, error)
	SignInFn  func(ctx context.Context, email, password string) (*auth.Tokens, error)
	SignOutFn func(ctx context.Context, accessToken string) error
}

func (p *Provider) SignUp(ctx context.Context, in auth.SignUpInput) (string, error) {
	if p.SignUpFn != nil {
		return p.SignUpFn(ctx, in)
	}
	return "", context.Canceled
}

func (p *Provider) SignIn(ctx context.Context, email, password string) (*auth.Tokens, error) {
	if p.SignInFn != nil {
		return p.SignInFn(ctx, email, password)
	}
	return nil, context.Canceled
}

func (p *Provider) SignOut(ctx context.Context, accessToken string) error {
	if p.SignOutFn != nil {
		return p.SignOutFn(ctx, accessToken)
	}
	return nil
}

// Verifier maps raw tokens to actors; unknown tokens are rejected.
type Verifier struct {
	Tokens map[string]auth.Actor
}

func (v *Verifier) Verify(_ context.Context, idToken string) (auth.Actor, error) {
	if a, ok := v.Tokens[idToken]; ok {
		return a, nil
	}
	return auth.Actor{}, auth.ErrInvalidSession
}
