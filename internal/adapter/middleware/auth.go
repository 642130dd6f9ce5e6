package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"sba-portal/internal/domain/auth"
)

const (
	ctxKeyActor   = "actor"
	ctxKeySession = "session"
)

// Authenticate resolves the caller from a Bearer ID token or the session
// cookie and stores the Actor on the echo context. Requests without a valid
// session get 401.
func Authenticate(verifier auth.Verifier, sessions *Sessions, log logrus.FieldLogger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()

			var sess Session
			if h := req.Header.Get(echo.HeaderAuthorization); strings.HasPrefix(h, "Bearer ") {
				sess.IDToken = strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
			} else if sessions != nil {
				s, err := sessions.Read(req)
				if err != nil && !errors.Is(err, http.ErrNoCookie) {
					log.WithError(err).Debug("unreadable session cookie")
				}
				sess = s
			}
			if sess.IDToken == "" {
				return c.JSON(http.StatusUnauthorized, errorBody{Error: "authentication required"})
			}

			actor, err := verifier.Verify(req.Context(), sess.IDToken)
			if err != nil {
				log.WithError(err).Debug("session verification failed")
				return c.JSON(http.StatusUnauthorized, errorBody{Error: "invalid or expired session"})
			}

			c.Set(ctxKeyActor, actor)
			c.Set(ctxKeySession, sess)
			return next(c)
		}
	}
}

// RequireRole rejects authenticated callers outside roles with 403.
func RequireRole(roles ...auth.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			actor, ok := ActorFrom(c)
			if !ok {
				return c.JSON(http.StatusUnauthorized, errorBody{Error: "authentication required"})
			}
			if err := actor.Require(roles...); err != nil {
				msg := "forbidden"
				if len(roles) == 1 && roles[0] == auth.RoleAdmin {
					msg = "Access denied. Admin credentials required."
				}
				return c.JSON(http.StatusForbidden, errorBody{Error: msg})
			}
			return next(c)
		}
	}
}

func ActorFrom(c echo.Context) (auth.Actor, bool) {
	a, ok := c.Get(ctxKeyActor).(auth.Actor)
	return a, ok
}

// SessionFrom returns the tokens the request authenticated with.
func SessionFrom(c echo.Context) (Session, bool) {
	s, ok := c.Get(ctxKeySession).(Session)
	return s, ok
}

// WithActor is for handlers reached without Authenticate, e.g. in tests.
func WithActor(c echo.Context, a auth.Actor) { c.Set(ctxKeyActor, a) }
