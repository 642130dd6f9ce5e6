package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	ucApp "sba-portal/internal/usecase/application"
)

type ApplicationHandler struct {
	uc  *ucApp.Usecase
	log logrus.FieldLogger
}

func NewApplicationHandler(uc *ucApp.Usecase, log logrus.FieldLogger) *ApplicationHandler {
	return &ApplicationHandler{uc: uc, log: log}
}

// Mine returns the caller's application, creating it on first visit.
func (h *ApplicationHandler) Mine(c echo.Context) error {
	dto, err := h.uc.GetOrCreate(c.Request().Context(), actorOf(c))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *ApplicationHandler) SubmitMine(c echo.Context) error {
	dto, err := h.uc.SubmitMine(c.Request().Context(), actorOf(c))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *ApplicationHandler) Progress(c echo.Context) error {
	dto, err := h.uc.Progress(c.Request().Context(), actorOf(c))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *ApplicationHandler) ListSubmitted(c echo.Context) error {
	list, err := h.uc.ListSubmitted(c.Request().Context(), actorOf(c))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"applications": list})
}

func (h *ApplicationHandler) Get(c echo.Context) error {
	appID, ok := pathID(c, "id")
	if !ok {
		return badRequest(c, "invalid application id")
	}
	dto, err := h.uc.Get(c.Request().Context(), actorOf(c), appID)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *ApplicationHandler) History(c echo.Context) error {
	appID, ok := pathID(c, "id")
	if !ok {
		return badRequest(c, "invalid application id")
	}
	rows, err := h.uc.History(c.Request().Context(), actorOf(c), appID)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"history": rows})
}

// Transition applies the :action path segment to the application.
func (h *ApplicationHandler) Transition(c echo.Context) error {
	appID, ok := pathID(c, "id")
	if !ok {
		return badRequest(c, "invalid application id")
	}
	dto, err := h.uc.Transition(c.Request().Context(), actorOf(c), ucApp.TransitionInput{
		ApplicationID: appID,
		Action:        c.Param("action"),
	})
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, dto)
}

type stageReq struct {
	Stage string  `json:"stage" validate:"required,max=64"`
	Notes *string `json:"notes"`
}

func (h *ApplicationHandler) UpdateStage(c echo.Context) error {
	appID, ok := pathID(c, "id")
	if !ok {
		return badRequest(c, "invalid application id")
	}
	var req stageReq
	if ok, resp := bindValid(c, &req); !ok {
		return resp
	}
	dto, err := h.uc.UpdateStage(c.Request().Context(), actorOf(c), ucApp.StageInput{
		ApplicationID: appID,
		Stage:         req.Stage,
		Notes:         req.Notes,
	})
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, dto)
}
