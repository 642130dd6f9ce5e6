package http

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"
	logtest "github.com/sirupsen/logrus/hooks/test"

	"sba-portal/internal/domain/apperr"
	"sba-portal/internal/domain/application"
	"sba-portal/internal/domain/auth"
	"sba-portal/internal/domain/document"
)

func TestStatusFor(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
		wantKind string
	}{
		{"invalid input", fmt.Errorf("%w: bad", apperr.ErrInvalidInput), http.StatusBadRequest, CodeInvalidInput},
		{"account exists", auth.ErrAccountExists, http.StatusConflict, CodeConflict},
		{"bad credentials", auth.ErrInvalidCredentials, http.StatusUnauthorized, CodeUnauthenticated},
		{"not confirmed", auth.ErrNotConfirmed, http.StatusUnauthorized, CodeUnauthenticated},
		{"invalid session", fmt.Errorf("verify: %w", auth.ErrInvalidSession), http.StatusUnauthorized, CodeUnauthenticated},
		{"admin required", auth.ErrAdminRequired, http.StatusForbidden, CodeForbidden},
		{"foreign application", application.ErrForeign, http.StatusForbidden, CodeForbidden},
		{"not found", application.ErrNotFound, http.StatusNotFound, CodeNotFound},
		{"invalid transition", apperr.ErrInvalidTransition, http.StatusConflict, CodeInvalidTransition},
		{"incomplete", &document.IncompleteError{Missing: []string{"Credit Report"}, Have: 4, Minimum: 5}, http.StatusPreconditionFailed, CodePreconditionFailed},
		{"storage", errors.Join(apperr.ErrStorageInconsistency, errors.New("s3 down")), http.StatusInternalServerError, CodeStorageInconsistency},
		{"other", errors.New("boom"), http.StatusInternalServerError, CodeInternal},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, kind := statusFor(tt.err)
			if code != tt.wantCode || kind != tt.wantKind {
				t.Fatalf("statusFor = (%d, %s), want (%d, %s)", code, kind, tt.wantCode, tt.wantKind)
			}
		})
	}
}

func TestRespondError_Incomplete(t *testing.T) {
	e := echo.New()
	c, rec := newCtx(e, http.MethodPost, "/me/application/submit", nil, nil)

	err := fmt.Errorf("submit: %w", &document.IncompleteError{Missing: []string{"Credit Report", "Personal Tax Returns (3 Years)"}, Have: 3, Minimum: 5})
	if herr := respondError(c, nullLog(), err); herr != nil {
		t.Fatalf("respondError: %v", herr)
	}
	if rec.Code != http.StatusPreconditionFailed {
		t.Fatalf("code = %d", rec.Code)
	}
	body := decodeError(t, rec)
	if len(body.Missing) != 2 || body.Missing[0] != "Credit Report" {
		t.Fatalf("missing = %v", body.Missing)
	}
	if body.Have == nil || *body.Have != 3 || body.Minimum == nil || *body.Minimum != 5 {
		t.Fatalf("counts = %v/%v", body.Have, body.Minimum)
	}
}

func TestRespondError_AdminRequiredMessage(t *testing.T) {
	e := echo.New()
	c, rec := newCtx(e, http.MethodPost, "/auth/admin/login", nil, nil)

	_ = respondError(c, nullLog(), auth.ErrAdminRequired)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("code = %d", rec.Code)
	}
	if body := decodeError(t, rec); body.Error != "Access denied. Admin credentials required." {
		t.Fatalf("error = %q", body.Error)
	}
}

func TestRespondError_InternalIsLoggedNotLeaked(t *testing.T) {
	e := echo.New()
	log, hook := logtest.NewNullLogger()
	c, rec := newCtx(e, http.MethodDelete, "/me/documents/x", nil, nil)

	err := errors.Join(apperr.ErrStorageInconsistency, errors.New("bucket secret-bucket unreachable"))
	_ = respondError(c, log, err)

	body := decodeError(t, rec)
	if body.Code != CodeStorageInconsistency || body.Error != "document storage is inconsistent" {
		t.Fatalf("body = %+v", body)
	}
	if len(hook.Entries) != 1 {
		t.Fatalf("expected one log entry, got %d", len(hook.Entries))
	}
}
