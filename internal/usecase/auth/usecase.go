package auth

import (
	"context"
	"fmt"
	"net/mail"
	"strings"

	"github.com/sirupsen/logrus"

	"sba-portal/internal/domain/apperr"
	domain "sba-portal/internal/domain/auth"
)

const minPasswordLength = 8

type SignUpInput struct {
	Email     string
	Password  string
	Role      string
	FirstName string
	LastName  string
}

type Session struct {
	Tokens   domain.Tokens `json:"-"`
	UserID   string        `json:"user_id"`
	Email    string        `json:"email"`
	Role     domain.Role   `json:"role"`
	Redirect string        `json:"redirect"`
}

type Usecase struct {
	provider domain.Provider
	verifier domain.Verifier
	log      logrus.FieldLogger
}

func NewUsecase(provider domain.Provider, verifier domain.Verifier, log logrus.FieldLogger) *Usecase {
	return &Usecase{provider: provider, verifier: verifier, log: log}
}

// SignUp registers a borrower or referral partner. Admin accounts are
// provisioned out of band.
func (u *Usecase) SignUp(ctx context.Context, in SignUpInput) (string, error) {
	role, err := domain.ParseRole(in.Role)
	if err != nil {
		return "", err
	}
	if role == domain.RoleAdmin {
		return "", fmt.Errorf("%w: admin accounts cannot be self-registered", apperr.ErrInvalidInput)
	}
	email, err := normalizeEmail(in.Email)
	if err != nil {
		return "", err
	}
	if len(in.Password) < minPasswordLength {
		return "", fmt.Errorf("%w: password must be at least %d characters", apperr.ErrInvalidInput, minPasswordLength)
	}
	userID, err := u.provider.SignUp(ctx, domain.SignUpInput{
		Email:     email,
		Password:  in.Password,
		Role:      role,
		FirstName: strings.TrimSpace(in.FirstName),
		LastName:  strings.TrimSpace(in.LastName),
	})
	if err != nil {
		return "", err
	}
	u.log.WithFields(logrus.Fields{"user_id": userID, "role": role}).Info("account registered")
	return userID, nil
}

func (u *Usecase) SignIn(ctx context.Context, email, password string) (*Session, error) {
	addr, err := normalizeEmail(email)
	if err != nil {
		return nil, err
	}
	tokens, err := u.provider.SignIn(ctx, addr, password)
	if err != nil {
		return nil, err
	}
	actor, err := u.verifier.Verify(ctx, tokens.IDToken)
	if err != nil {
		return nil, fmt.Errorf("verify issued token: %w", err)
	}
	return &Session{
		Tokens:   *tokens,
		UserID:   actor.UserID,
		Email:    actor.Email,
		Role:     actor.Role,
		Redirect: domain.DashboardPath(actor.Role),
	}, nil
}

// AdminSignIn is SignIn restricted to admins. A non-admin session that was
// already issued is revoked before the rejection is returned.
func (u *Usecase) AdminSignIn(ctx context.Context, email, password string) (*Session, error) {
	s, err := u.SignIn(ctx, email, password)
	if err != nil {
		return nil, err
	}
	if s.Role != domain.RoleAdmin {
		if err := u.provider.SignOut(ctx, s.Tokens.AccessToken); err != nil {
			u.log.WithError(err).WithField("user_id", s.UserID).Warn("revoke non-admin session failed")
		}
		return nil, domain.ErrAdminRequired
	}
	return s, nil
}

func (u *Usecase) SignOut(ctx context.Context, accessToken string) error {
	if accessToken == "" {
		return nil
	}
	return u.provider.SignOut(ctx, accessToken)
}

func normalizeEmail(raw string) (string, error) {
	email := strings.ToLower(strings.TrimSpace(raw))
	if _, err := mail.ParseAddress(email); err != nil {
		return "", fmt.Errorf("%w: invalid email address", apperr.ErrInvalidInput)
	}
	return email, nil
}
