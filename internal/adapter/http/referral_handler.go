package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	ucReferral "sba-portal/internal/usecase/referral"
)

type ReferralHandler struct {
	uc  *ucReferral.Usecase
	log logrus.FieldLogger
}

func NewReferralHandler(uc *ucReferral.Usecase, log logrus.FieldLogger) *ReferralHandler {
	return &ReferralHandler{uc: uc, log: log}
}

type submitLeadReq struct {
	BusinessName string          `json:"business_name" validate:"required,max=255"`
	ContactName  string          `json:"contact_name"  validate:"required,max=255"`
	ContactEmail string          `json:"contact_email" validate:"required,email"`
	ContactPhone string          `json:"contact_phone" validate:"max=32"`
	LoanAmount   decimal.Decimal `json:"loan_amount"   validate:"gte=0,dec2"`
	BusinessType string          `json:"business_type" validate:"max=100"`
	Notes        string          `json:"notes"         validate:"max=2000"`
}

func (h *ReferralHandler) Submit(c echo.Context) error {
	var req submitLeadReq
	if ok, resp := bindValid(c, &req); !ok {
		return resp
	}
	l, err := h.uc.Submit(c.Request().Context(), actorOf(c), ucReferral.SubmitInput(req))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(http.StatusCreated, l)
}

func (h *ReferralHandler) ListMine(c echo.Context) error {
	list, err := h.uc.ListMine(c.Request().Context(), actorOf(c))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"leads": list})
}

func (h *ReferralHandler) ListAll(c echo.Context) error {
	list, err := h.uc.ListAll(c.Request().Context(), actorOf(c))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"leads": list})
}

func (h *ReferralHandler) UpdateStatus(c echo.Context) error {
	leadID, ok := pathID(c, "id")
	if !ok {
		return badRequest(c, "invalid lead id")
	}
	var req statusReq
	if ok, resp := bindValid(c, &req); !ok {
		return resp
	}
	l, err := h.uc.UpdateStatus(c.Request().Context(), actorOf(c), leadID, req.Status)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, l)
}
