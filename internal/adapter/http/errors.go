package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"sba-portal/internal/domain/apperr"
	"sba-portal/internal/domain/auth"
	"sba-portal/internal/domain/document"
)

// Error codes returned alongside the message.
const (
	CodeInvalidInput         = "invalid_input"
	CodeValidation           = "validation_failed"
	CodeUnauthenticated      = "unauthenticated"
	CodeForbidden            = "forbidden"
	CodeNotFound             = "not_found"
	CodeConflict             = "conflict"
	CodeInvalidTransition    = "invalid_transition"
	CodePreconditionFailed   = "precondition_failed"
	CodeStorageInconsistency = "storage_inconsistency"
	CodeInternal             = "internal_error"
)

const msgAdminCredentialsNeeded = "Access denied. Admin credentials required."

// statusFor maps an error kind to its HTTP status and code.
func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, auth.ErrAccountExists):
		return http.StatusConflict, CodeConflict
	case errors.Is(err, auth.ErrInvalidCredentials),
		errors.Is(err, auth.ErrNotConfirmed),
		errors.Is(err, auth.ErrInvalidSession):
		return http.StatusUnauthorized, CodeUnauthenticated
	case errors.Is(err, apperr.ErrStorageInconsistency):
		return http.StatusInternalServerError, CodeStorageInconsistency
	case errors.Is(err, apperr.ErrInvalidInput):
		return http.StatusBadRequest, CodeInvalidInput
	case errors.Is(err, apperr.ErrUnauthorized):
		return http.StatusForbidden, CodeForbidden
	case errors.Is(err, apperr.ErrNotFound):
		return http.StatusNotFound, CodeNotFound
	case errors.Is(err, apperr.ErrInvalidTransition):
		return http.StatusConflict, CodeInvalidTransition
	case errors.Is(err, apperr.ErrPreconditionFailed):
		return http.StatusPreconditionFailed, CodePreconditionFailed
	default:
		return http.StatusInternalServerError, CodeInternal
	}
}

// respondError writes err as JSON. Internal errors are logged and their
// text is not exposed.
func respondError(c echo.Context, log logrus.FieldLogger, err error) error {
	status, code := statusFor(err)
	body := ErrorResponse{Error: err.Error(), Code: code}

	switch {
	case errors.Is(err, auth.ErrAdminRequired):
		body.Error = msgAdminCredentialsNeeded
	case status == http.StatusInternalServerError:
		log.WithError(err).WithFields(logrus.Fields{
			"method": c.Request().Method,
			"path":   c.Path(),
			"code":   code,
		}).Error("request failed")
		body.Error = "internal error"
		if code == CodeStorageInconsistency {
			body.Error = "document storage is inconsistent"
		}
	}

	var incomplete *document.IncompleteError
	if errors.As(err, &incomplete) {
		have, minimum := incomplete.Have, incomplete.Minimum
		body.Missing = incomplete.Missing
		body.Have = &have
		body.Minimum = &minimum
	}
	return c.JSON(status, body)
}

func badRequest(c echo.Context, msg string) error {
	return c.JSON(http.StatusBadRequest, ErrorResponse{Error: msg, Code: CodeInvalidInput})
}

func validationFailed(c echo.Context, err error) error {
	return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
		Error:   "validation failed",
		Code:    CodeValidation,
		Details: ToFieldErrors(err),
	})
}
