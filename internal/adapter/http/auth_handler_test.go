package http

import (
	"context"
	"encoding/json"
	stdhttp "net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"sba-portal/internal/adapter/middleware"
	"sba-portal/internal/domain/auth"
	"sba-portal/internal/testutil/identitymock"
	ucAuth "sba-portal/internal/usecase/auth"
)

type authFixture struct {
	provider  *identitymock.Provider
	sessions  *middleware.Sessions
	signedOut []string
}

func newAuthFixture() *authFixture {
	f := &authFixture{
		sessions: middleware.NewSessions([]byte(strings.Repeat("h", 32)), []byte(strings.Repeat("k", 32)), "sba_session", time.Hour, true),
	}
	f.provider = &identitymock.Provider{
		SignInFn: func(_ context.Context, email, password string) (*auth.Tokens, error) {
			if password != "correct-horse" {
				return nil, auth.ErrInvalidCredentials
			}
			tok := "borrower-id-token"
			if strings.HasPrefix(email, "admin") {
				tok = "admin-id-token"
			}
			return &auth.Tokens{IDToken: tok, AccessToken: "access-" + tok, ExpiresIn: 30 * time.Minute}, nil
		},
		SignOutFn: func(_ context.Context, accessToken string) error {
			f.signedOut = append(f.signedOut, accessToken)
			return nil
		},
		SignUpFn: func(_ context.Context, in auth.SignUpInput) (string, error) {
			if in.Email == "taken@example.com" {
				return "", auth.ErrAccountExists
			}
			return "new-user", nil
		},
	}
	return f
}

func (f *authFixture) handler() *AuthHandler {
	verifier := &identitymock.Verifier{Tokens: map[string]auth.Actor{
		"borrower-id-token": borrower,
		"admin-id-token":    admin,
	}}
	return NewAuthHandler(ucAuth.NewUsecase(f.provider, verifier, nullLog()), f.sessions, nullLog())
}

func TestLogin_SetsSessionCookie(t *testing.T) {
	f := newAuthFixture()
	h := f.handler()
	c, rec := newCtx(newEchoWithValidator(), stdhttp.MethodPost, "/auth/login",
		mustJSON(map[string]string{"email": "b@example.com", "password": "correct-horse"}), nil)

	if err := h.Login(c); err != nil {
		t.Fatalf("Login: %v", err)
	}
	if rec.Code != stdhttp.StatusOK {
		t.Fatalf("status = %d; body=%s", rec.Code, rec.Body.String())
	}

	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("bad json: %v", err)
	}
	if body["redirect"] != "/borrower/dashboard" || body["role"] != "borrower" || body["id_token"] != "borrower-id-token" {
		t.Fatalf("body = %v", body)
	}
	if body["expires_in"] != float64(1800) {
		t.Fatalf("expires_in = %v", body["expires_in"])
	}

	cookies := rec.Result().Cookies()
	if len(cookies) != 1 || cookies[0].Name != "sba_session" || !cookies[0].HttpOnly || !cookies[0].Secure {
		t.Fatalf("cookies = %+v", cookies)
	}
	if cookies[0].MaxAge != 1800 {
		t.Fatalf("cookie MaxAge = %d, want token lifetime", cookies[0].MaxAge)
	}

	req := httptest.NewRequest(stdhttp.MethodGet, "/", nil)
	req.AddCookie(cookies[0])
	sess, err := f.sessions.Read(req)
	if err != nil || sess.IDToken != "borrower-id-token" || sess.AccessToken != "access-borrower-id-token" {
		t.Fatalf("session = %+v, err = %v", sess, err)
	}
}

func TestLogin_Failures(t *testing.T) {
	tests := []struct {
		name     string
		body     map[string]string
		wantCode int
	}{
		{name: "wrong password", body: map[string]string{"email": "b@example.com", "password": "nope"}, wantCode: stdhttp.StatusUnauthorized},
		{name: "bad email", body: map[string]string{"email": "not-an-email", "password": "x"}, wantCode: stdhttp.StatusUnprocessableEntity},
		{name: "no password", body: map[string]string{"email": "b@example.com"}, wantCode: stdhttp.StatusUnprocessableEntity},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newAuthFixture().handler()
			c, rec := newCtx(newEchoWithValidator(), stdhttp.MethodPost, "/auth/login", mustJSON(tt.body), nil)
			_ = h.Login(c)
			if rec.Code != tt.wantCode {
				t.Fatalf("status = %d, want %d", rec.Code, tt.wantCode)
			}
			if len(rec.Result().Cookies()) != 0 {
				t.Fatal("no cookie expected on failure")
			}
		})
	}
}

func TestAdminLogin(t *testing.T) {
	f := newAuthFixture()
	h := f.handler()

	c, rec := newCtx(newEchoWithValidator(), stdhttp.MethodPost, "/auth/admin/login",
		mustJSON(map[string]string{"email": "b@example.com", "password": "correct-horse"}), nil)
	_ = h.AdminLogin(c)
	if rec.Code != stdhttp.StatusForbidden {
		t.Fatalf("non-admin status = %d, want 403", rec.Code)
	}
	if body := decodeError(t, rec); body.Error != "Access denied. Admin credentials required." {
		t.Fatalf("error = %q", body.Error)
	}
	if len(f.signedOut) != 1 {
		t.Fatalf("non-admin session not revoked: %v", f.signedOut)
	}

	c, rec = newCtx(newEchoWithValidator(), stdhttp.MethodPost, "/auth/admin/login",
		mustJSON(map[string]string{"email": "admin@example.com", "password": "correct-horse"}), nil)
	if err := h.AdminLogin(c); err != nil {
		t.Fatalf("AdminLogin: %v", err)
	}
	if rec.Code != stdhttp.StatusOK || !strings.Contains(rec.Body.String(), `"redirect":"/admin/dashboard"`) {
		t.Fatalf("admin login: %d %s", rec.Code, rec.Body.String())
	}
}

func TestSignUp(t *testing.T) {
	tests := []struct {
		name     string
		body     map[string]string
		wantCode int
	}{
		{name: "borrower", body: map[string]string{"email": "new@example.com", "password": "longenough", "role": "borrower"}, wantCode: stdhttp.StatusCreated},
		{name: "default role", body: map[string]string{"email": "new@example.com", "password": "longenough"}, wantCode: stdhttp.StatusCreated},
		{name: "admin self-signup", body: map[string]string{"email": "new@example.com", "password": "longenough", "role": "admin"}, wantCode: stdhttp.StatusUnprocessableEntity},
		{name: "short password", body: map[string]string{"email": "new@example.com", "password": "short"}, wantCode: stdhttp.StatusUnprocessableEntity},
		{name: "taken", body: map[string]string{"email": "taken@example.com", "password": "longenough"}, wantCode: stdhttp.StatusConflict},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newAuthFixture().handler()
			c, rec := newCtx(newEchoWithValidator(), stdhttp.MethodPost, "/auth/signup", mustJSON(tt.body), nil)
			_ = h.SignUp(c)
			if rec.Code != tt.wantCode {
				t.Fatalf("status = %d, want %d; body=%s", rec.Code, tt.wantCode, rec.Body.String())
			}
		})
	}
}

func TestLogout(t *testing.T) {
	f := newAuthFixture()
	h := f.handler()
	cookie, err := f.sessions.Cookie(middleware.Session{IDToken: "borrower-id-token", AccessToken: "acc-1"}, 0)
	if err != nil {
		t.Fatal(err)
	}

	req := httptest.NewRequest(stdhttp.MethodPost, "/auth/logout", nil)
	req.AddCookie(cookie)
	rec := httptest.NewRecorder()
	c := newEchoWithValidator().NewContext(req, rec)

	if err := h.Logout(c); err != nil {
		t.Fatalf("Logout: %v", err)
	}
	if rec.Code != stdhttp.StatusNoContent {
		t.Fatalf("status = %d", rec.Code)
	}
	if len(f.signedOut) != 1 || f.signedOut[0] != "acc-1" {
		t.Fatalf("signed out = %v", f.signedOut)
	}
	cleared := rec.Result().Cookies()
	if len(cleared) != 1 || cleared[0].MaxAge >= 0 {
		t.Fatalf("cookie not cleared: %+v", cleared)
	}
}

func TestLogout_BearerClientSendsAccessToken(t *testing.T) {
	f := newAuthFixture()
	h := f.handler()
	c, rec := newCtx(newEchoWithValidator(), stdhttp.MethodPost, "/auth/logout", mustJSON(map[string]string{"access_token": "acc-2"}), nil)

	if err := h.Logout(c); err != nil {
		t.Fatalf("Logout: %v", err)
	}
	if rec.Code != stdhttp.StatusNoContent || len(f.signedOut) != 1 || f.signedOut[0] != "acc-2" {
		t.Fatalf("status=%d signedOut=%v", rec.Code, f.signedOut)
	}
}
