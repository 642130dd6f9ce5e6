package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	ucMeeting "sba-portal/internal/usecase/meeting"
)

type MeetingHandler struct {
	uc  *ucMeeting.Usecase
	log logrus.FieldLogger
}

func NewMeetingHandler(uc *ucMeeting.Usecase, log logrus.FieldLogger) *MeetingHandler {
	return &MeetingHandler{uc: uc, log: log}
}

type scheduleReq struct {
	MeetingDate string `json:"meeting_date" validate:"required,datetime=2006-01-02"`
	MeetingTime string `json:"meeting_time" validate:"required,datetime=15:04"`
	MeetingType string `json:"meeting_type" validate:"required,oneof=callback in-person"`
	Purpose     string `json:"purpose"      validate:"required,max=255"`
	Notes       string `json:"notes"        validate:"max=2000"`
	ContactInfo string `json:"contact_info" validate:"max=255"`
}

func (h *MeetingHandler) Schedule(c echo.Context) error {
	var req scheduleReq
	if ok, resp := bindValid(c, &req); !ok {
		return resp
	}
	m, err := h.uc.Schedule(c.Request().Context(), actorOf(c), ucMeeting.ScheduleInput{
		Date:        req.MeetingDate,
		Time:        req.MeetingTime,
		Type:        req.MeetingType,
		Purpose:     req.Purpose,
		Notes:       req.Notes,
		ContactInfo: req.ContactInfo,
	})
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(http.StatusCreated, m)
}

func (h *MeetingHandler) ListMine(c echo.Context) error {
	list, err := h.uc.ListMine(c.Request().Context(), actorOf(c))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"meetings": list})
}

func (h *MeetingHandler) ListAll(c echo.Context) error {
	list, err := h.uc.ListAll(c.Request().Context(), actorOf(c))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"meetings": list})
}

type statusReq struct {
	Status string `json:"status" validate:"required"`
}

func (h *MeetingHandler) UpdateStatus(c echo.Context) error {
	meetingID, ok := pathID(c, "id")
	if !ok {
		return badRequest(c, "invalid meeting id")
	}
	var req statusReq
	if ok, resp := bindValid(c, &req); !ok {
		return resp
	}
	m, err := h.uc.UpdateStatus(c.Request().Context(), actorOf(c), meetingID, req.Status)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, m)
}
