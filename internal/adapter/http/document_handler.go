package http

import (
	"context"
	"mime"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"sba-portal/internal/domain/auth"
	ucDoc "sba-portal/internal/usecase/document"
)

type DocumentHandler struct {
	uc  *ucDoc.Usecase
	log logrus.FieldLogger
}

func NewDocumentHandler(uc *ucDoc.Usecase, log logrus.FieldLogger) *DocumentHandler {
	return &DocumentHandler{uc: uc, log: log}
}

// Upload reads a multipart form with fields "category" and "file".
func (h *DocumentHandler) Upload(c echo.Context) error {
	category := strings.TrimSpace(c.FormValue("category"))
	if category == "" {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Code:    CodeValidation,
			Details: []FieldError{{Field: "category", Message: "is required"}},
		})
	}
	fh, err := c.FormFile("file")
	if err != nil {
		return badRequest(c, "missing file")
	}
	f, err := fh.Open()
	if err != nil {
		return badRequest(c, "unreadable file")
	}
	defer f.Close()

	contentType := fh.Header.Get(echo.HeaderContentType)
	if contentType == "" || contentType == echo.MIMEOctetStream {
		if byExt := mime.TypeByExtension(strings.ToLower(filepath.Ext(fh.Filename))); byExt != "" {
			contentType = byExt
		}
	}

	doc, err := h.uc.Upload(c.Request().Context(), actorOf(c), ucDoc.UploadInput{
		Category:    category,
		FileName:    fh.Filename,
		ContentType: contentType,
		Size:        fh.Size,
		Body:        f,
	})
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(http.StatusCreated, doc)
}

func (h *DocumentHandler) Delete(c echo.Context) error {
	docID, ok := pathID(c, "id")
	if !ok {
		return badRequest(c, "invalid document id")
	}
	if err := h.uc.Delete(c.Request().Context(), actorOf(c), docID); err != nil {
		return respondError(c, h.log, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *DocumentHandler) ListMine(c echo.Context) error {
	docs, err := h.uc.ListMine(c.Request().Context(), actorOf(c))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"documents": docs})
}

func (h *DocumentHandler) Checklist(c echo.Context) error {
	dto, err := h.uc.Checklist(c.Request().Context(), actorOf(c))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *DocumentHandler) ListForReview(c echo.Context) error {
	ownerID := strings.TrimSpace(c.Param("owner_id"))
	if ownerID == "" {
		return badRequest(c, "missing owner_id path param")
	}
	items, err := h.uc.ListForReview(c.Request().Context(), actorOf(c), ownerID)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"documents": items})
}

// ListQueue lists every borrower's documents, optionally filtered by the
// status query param.
func (h *DocumentHandler) ListQueue(c echo.Context) error {
	items, err := h.uc.ListQueue(c.Request().Context(), actorOf(c), c.QueryParam("status"))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"documents": items})
}

type reviewFunc func(ctx context.Context, actor auth.Actor, documentID string) (*ucDoc.ReviewResult, error)

func (h *DocumentHandler) Approve(c echo.Context) error {
	return h.review(c, h.uc.Approve)
}

func (h *DocumentHandler) Reject(c echo.Context) error {
	return h.review(c, h.uc.Reject)
}

func (h *DocumentHandler) review(c echo.Context, decide reviewFunc) error {
	docID, ok := pathID(c, "id")
	if !ok {
		return badRequest(c, "invalid document id")
	}
	res, err := decide(c.Request().Context(), actorOf(c), docID)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, res)
}
