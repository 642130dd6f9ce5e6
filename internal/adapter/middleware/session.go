package middleware

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/securecookie"
)

// Session is what the encrypted session cookie carries.
type Session struct {
	IDToken     string
	AccessToken string
}

// Sessions encodes and decodes the session cookie.
type Sessions struct {
	codec  *securecookie.SecureCookie
	name   string
	maxAge int
	secure bool
}

func NewSessions(hashKey, blockKey []byte, name string, maxAge time.Duration, secure bool) *Sessions {
	codec := securecookie.New(hashKey, blockKey)
	codec.MaxAge(int(maxAge.Seconds()))
	return &Sessions{codec: codec, name: name, maxAge: int(maxAge.Seconds()), secure: secure}
}

func (s *Sessions) Name() string { return s.name }

// Cookie builds the Set-Cookie value for sess. A positive ttl shorter than
// the configured max age wins.
func (s *Sessions) Cookie(sess Session, ttl time.Duration) (*http.Cookie, error) {
	value, err := s.codec.Encode(s.name, sess)
	if err != nil {
		return nil, fmt.Errorf("encode session: %w", err)
	}
	maxAge := s.maxAge
	if secs := int(ttl.Seconds()); secs > 0 && secs < maxAge {
		maxAge = secs
	}
	return &http.Cookie{
		Name:     s.name,
		Value:    value,
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   maxAge,
		Path:     "/",
	}, nil
}

func (s *Sessions) Clear() *http.Cookie {
	return &http.Cookie{
		Name:     s.name,
		Value:    "",
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
		Path:     "/",
	}
}

// Read decodes the session cookie on r, if any.
func (s *Sessions) Read(r *http.Request) (Session, error) {
	var sess Session
	c, err := r.Cookie(s.name)
	if err != nil {
		return sess, err
	}
	if err := s.codec.Decode(s.name, c.Value, &sess); err != nil {
		return sess, fmt.Errorf("decode session: %w", err)
	}
	return sess, nil
}
