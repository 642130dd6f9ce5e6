package identity

import (
	"context"
	"fmt"
	"strings"

	"github.com/lestrrat-go/jwx/v3/jwk"
	"github.com/lestrrat-go/jwx/v3/jwt"

	"sba-portal/internal/domain/auth"
)

// KeySource resolves the signing keys published at a JWKS URL.
// *jwk.Cache satisfies it.
type KeySource interface {
	Lookup(ctx context.Context, u string) (jwk.Set, error)
}

func JWKSURL(issuerURL string) string {
	return strings.TrimSuffix(issuerURL, "/") + "/.well-known/jwks.json"
}

type JWTVerifier struct {
	keys     KeySource
	jwksURL  string
	issuer   string
	clientID string
}

func NewJWTVerifier(keys KeySource, issuerURL, clientID string) *JWTVerifier {
	return &JWTVerifier{
		keys:     keys,
		jwksURL:  JWKSURL(issuerURL),
		issuer:   strings.TrimSuffix(issuerURL, "/"),
		clientID: clientID,
	}
}

// Verify checks signature, expiry, issuer and audience of an ID token and
// returns the actor it names. Accounts without a role claim are borrowers.
func (v *JWTVerifier) Verify(ctx context.Context, idToken string) (auth.Actor, error) {
	set, err := v.keys.Lookup(ctx, v.jwksURL)
	if err != nil {
		return auth.Actor{}, fmt.Errorf("fetch jwks: %w", err)
	}

	opts := []jwt.ParseOption{
		jwt.WithKeySet(set),
		jwt.WithValidate(true),
		jwt.WithIssuer(v.issuer),
	}
	if v.clientID != "" {
		opts = append(opts, jwt.WithAudience(v.clientID))
	}
	token, err := jwt.Parse([]byte(idToken), opts...)
	if err != nil {
		return auth.Actor{}, fmt.Errorf("%w: %v", auth.ErrInvalidSession, err)
	}

	var use string
	if err := token.Get("token_use", &use); err == nil && use != "id" {
		return auth.Actor{}, fmt.Errorf("%w: token_use %q", auth.ErrInvalidSession, use)
	}

	userID, ok := token.Subject()
	if !ok || userID == "" {
		return auth.Actor{}, fmt.Errorf("%w: no subject", auth.ErrInvalidSession)
	}

	// email is optional
	var email string
	_ = token.Get("email", &email)

	var rawRole string
	_ = token.Get(RoleAttribute, &rawRole)
	role, err := auth.ParseRole(rawRole)
	if err != nil {
		return auth.Actor{}, fmt.Errorf("%w: %v", auth.ErrInvalidSession, err)
	}

	return auth.Actor{UserID: userID, Email: email, Role: role}, nil
}
