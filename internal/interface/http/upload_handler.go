package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/portfolio-api/internal/application"
	"github.com/oksasatya/portfolio-api/internal/interface/middleware"
	"github.com/oksasatya/portfolio-api/pkg/apperror"
)

// multipartOverhead leaves room for boundaries and form fields around the file.
const multipartOverhead = 64 << 10

type UploadHandler struct {
	Svc *application.UploadService
}

func NewUploadHandler(svc *application.UploadService) *UploadHandler {
	return &UploadHandler{Svc: svc}
}

// Upload returns the handler for POST /upload/<kind>.
func (h *UploadHandler) Upload(kind application.UploadKind) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.Svc.MaxBytes+multipartOverhead)

		fh, err := c.FormFile("file")
		if err != nil {
			fail(c, h.formError(err))
			return
		}
		f, err := fh.Open()
		if err != nil {
			fail(c, apperror.Validation("Could not read uploaded file").WithCause(err))
			return
		}
		defer f.Close()

		res, err := h.Svc.Upload(c.Request.Context(), middleware.CurrentUser(c), application.UploadRequest{
			Kind:      kind,
			Body:      f,
			ProjectID: c.PostForm("project_id"),
			BaseURL:   baseURL(c),
		})
		if err != nil {
			fail(c, err)
			return
		}
		sendData(c, http.StatusOK, res)
	}
}

func (h *UploadHandler) formError(err error) error {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return apperror.Validation(fmt.Sprintf("File too large, maximum size is %d bytes", h.Svc.MaxBytes)).WithCause(err)
	}
	return apperror.Validation("Please upload a file").WithCause(err)
}
