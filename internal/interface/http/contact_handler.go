package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/portfolio-api/internal/application"
	"github.com/oksasatya/portfolio-api/pkg/response"
)

type ContactHandler struct {
	Svc *application.ContactService
}

func NewContactHandler(svc *application.ContactService) *ContactHandler {
	return &ContactHandler{Svc: svc}
}

type contactRequest struct {
	Name    string `json:"name" binding:"required,max=100"`
	Email   string `json:"email" binding:"required,email"`
	Subject string `json:"subject" binding:"max=200"`
	Message string `json:"message" binding:"required,max=5000"`
}

// Send POST /contact
func (h *ContactHandler) Send(c *gin.Context) {
	var req contactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, err)
		return
	}
	err := h.Svc.Send(c.Request.Context(), application.ContactInput{
		Name:    strings.TrimSpace(req.Name),
		Email:   strings.TrimSpace(req.Email),
		Subject: strings.TrimSpace(req.Subject),
		Message: strings.TrimSpace(req.Message),
	})
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusAccepted, gin.H{"status": response.StatusSuccess, "message": "Your message has been sent"})
}
