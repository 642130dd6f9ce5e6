package http

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"sba-portal/internal/adapter/middleware"
	ucAuth "sba-portal/internal/usecase/auth"
)

type AuthHandler struct {
	uc       *ucAuth.Usecase
	sessions *middleware.Sessions
	log      logrus.FieldLogger
}

func NewAuthHandler(uc *ucAuth.Usecase, sessions *middleware.Sessions, log logrus.FieldLogger) *AuthHandler {
	return &AuthHandler{uc: uc, sessions: sessions, log: log}
}

type signUpReq struct {
	Email     string `json:"email"      validate:"required,email"`
	Password  string `json:"password"   validate:"required,min=8"`
	Role      string `json:"role"       validate:"omitempty,oneof=borrower referral"`
	FirstName string `json:"first_name" validate:"max=100"`
	LastName  string `json:"last_name"  validate:"max=100"`
}

type loginReq struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type loginResp struct {
	*ucAuth.Session
	IDToken     string `json:"id_token"`
	AccessToken string `json:"access_token"`
	ExpiresIn   int    `json:"expires_in"`
}

func (h *AuthHandler) SignUp(c echo.Context) error {
	var req signUpReq
	if ok, resp := bindValid(c, &req); !ok {
		return resp
	}
	userID, err := h.uc.SignUp(c.Request().Context(), ucAuth.SignUpInput(req))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(http.StatusCreated, map[string]string{"user_id": userID})
}

func (h *AuthHandler) Login(c echo.Context) error {
	return h.login(c, h.uc.SignIn)
}

func (h *AuthHandler) AdminLogin(c echo.Context) error {
	return h.login(c, h.uc.AdminSignIn)
}

func (h *AuthHandler) login(c echo.Context, signIn func(ctx context.Context, email, password string) (*ucAuth.Session, error)) error {
	var req loginReq
	if ok, resp := bindValid(c, &req); !ok {
		return resp
	}
	s, err := signIn(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return respondError(c, h.log, err)
	}

	cookie, err := h.sessions.Cookie(middleware.Session{
		IDToken:     s.Tokens.IDToken,
		AccessToken: s.Tokens.AccessToken,
	}, s.Tokens.ExpiresIn)
	if err != nil {
		return respondError(c, h.log, err)
	}
	c.SetCookie(cookie)

	h.log.WithFields(logrus.Fields{"user_id": s.UserID, "role": s.Role}).Info("user logged in")
	return c.JSON(http.StatusOK, loginResp{
		Session:     s,
		IDToken:     s.Tokens.IDToken,
		AccessToken: s.Tokens.AccessToken,
		ExpiresIn:   int(s.Tokens.ExpiresIn.Seconds()),
	})
}

type logoutReq struct {
	AccessToken string `json:"access_token"`
}

// Logout revokes the session's tokens when it can find them and always
// clears the cookie.
func (h *AuthHandler) Logout(c echo.Context) error {
	var accessToken string
	if s, err := h.sessions.Read(c.Request()); err == nil {
		accessToken = s.AccessToken
	}
	if accessToken == "" {
		var req logoutReq
		if c.Request().ContentLength > 0 {
			if err := c.Bind(&req); err != nil {
				return badRequest(c, "invalid body")
			}
		}
		accessToken = req.AccessToken
	}

	c.SetCookie(h.sessions.Clear())
	if err := h.uc.SignOut(c.Request().Context(), accessToken); err != nil {
		h.log.WithError(err).Warn("global sign out failed")
	}
	return c.NoContent(http.StatusNoContent)
}
