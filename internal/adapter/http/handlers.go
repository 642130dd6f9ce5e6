package http

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"sba-portal/internal/adapter/middleware"
	"sba-portal/internal/domain/auth"
	"sba-portal/pkg/id"
)

type Handler struct{}

func NewHandler() *Handler { return &Handler{} }

func (h *Handler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{
		"status": "ok",
		"time":   time.Now().UTC().Format(time.RFC3339Nano),
	})
}

// actorOf returns the authenticated caller, or the zero Actor which every
// usecase rejects.
func actorOf(c echo.Context) auth.Actor {
	a, _ := middleware.ActorFrom(c)
	return a
}

// bindValid binds the request into req and validates it, writing the error
// response itself. ok is false when the handler should return resp.
func bindValid(c echo.Context, req any) (ok bool, resp error) {
	if err := c.Bind(req); err != nil {
		return false, badRequest(c, "invalid body")
	}
	if err := c.Validate(req); err != nil {
		return false, validationFailed(c, err)
	}
	return true, nil
}

func pathID(c echo.Context, name string) (string, bool) {
	v := c.Param(name)
	return v, id.Valid(v)
}
