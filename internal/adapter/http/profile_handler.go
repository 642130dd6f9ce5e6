package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	ucProfile "sba-portal/internal/usecase/profile"
)

type ProfileHandler struct {
	uc  *ucProfile.Usecase
	log logrus.FieldLogger
}

func NewProfileHandler(uc *ucProfile.Usecase, log logrus.FieldLogger) *ProfileHandler {
	return &ProfileHandler{uc: uc, log: log}
}

func (h *ProfileHandler) Mine(c echo.Context) error {
	p, err := h.uc.Get(c.Request().Context(), actorOf(c))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, p)
}

type profileReq struct {
	FirstName string `json:"first_name" validate:"max=100"`
	LastName  string `json:"last_name"  validate:"max=100"`
	Phone     string `json:"phone"      validate:"max=32"`
	Company   string `json:"company"    validate:"max=255"`
}

func (h *ProfileHandler) Update(c echo.Context) error {
	var req profileReq
	if ok, resp := bindValid(c, &req); !ok {
		return resp
	}
	p, err := h.uc.Update(c.Request().Context(), actorOf(c), ucProfile.UpdateInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Phone:     req.Phone,
		Company:   req.Company,
	})
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, p)
}

func (h *ProfileHandler) ListBorrowers(c echo.Context) error {
	list, err := h.uc.ListBorrowers(c.Request().Context(), actorOf(c))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"borrowers": list})
}
