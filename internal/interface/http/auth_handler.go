package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/portfolio-api/internal/application"
	"github.com/oksasatya/portfolio-api/internal/domain/entity"
	"github.com/oksasatya/portfolio-api/internal/interface/middleware"
	"github.com/oksasatya/portfolio-api/pkg/apperror"
	"github.com/oksasatya/portfolio-api/pkg/response"
)

type AuthHandler struct {
	Svc *application.AuthService
}

func NewAuthHandler(svc *application.AuthService) *AuthHandler {
	return &AuthHandler{Svc: svc}
}

type credentialsRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,pwd"`
}

// loginRequest only checks presence; password rules apply at registration.
type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type roleRequest struct {
	Role entity.Role `json:"role" binding:"required"`
}

type tokenUser struct {
	ID    string      `json:"id"`
	Email string      `json:"email"`
	Role  entity.Role `json:"role"`
}

type tokenResponse struct {
	Status    string    `json:"status"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	User      tokenUser `json:"user"`
}

type usersResponse struct {
	Status string        `json:"status"`
	Count  int           `json:"count"`
	Data   []entity.User `json:"data"`
}

func sendToken(c *gin.Context, status int, s *application.Session) {
	c.JSON(status, tokenResponse{
		Status:    response.StatusSuccess,
		Token:     s.Token,
		ExpiresAt: s.ExpiresAt,
		User:      tokenUser{ID: s.User.ID, Email: s.User.Email, Role: s.User.Role},
	})
}

// authError maps auth service outcomes onto the API taxonomy.
func authError(err error) error {
	switch {
	case errors.Is(err, application.ErrEmailTaken):
		return apperror.Conflict("An account with this email address already exists.").WithCause(err)
	case errors.Is(err, application.ErrUserNotFound):
		return apperror.NotFound("User not found").WithCause(err)
	case errors.Is(err, application.ErrInvalidRole):
		return apperror.Validation("Invalid role. Must be owner, admin, or viewer").WithCause(err)
	case errors.Is(err, application.ErrLastOwner):
		return apperror.Validation("Cannot change the role of the last remaining owner").WithCause(err)
	}
	return err
}

// Register POST /auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, err)
		return
	}
	s, err := h.Svc.Register(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		fail(c, authError(err))
		return
	}
	sendToken(c, http.StatusCreated, s)
}

// Login POST /auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, err)
		return
	}
	s, err := h.Svc.Login(c.Request.Context(), req.Email, req.Password)
	switch {
	case errors.Is(err, application.ErrUserNotFound):
		fail(c, apperror.Unauthenticated("No account found with this email address"))
		return
	case errors.Is(err, application.ErrIncorrectPassword):
		fail(c, apperror.Unauthenticated("Incorrect password"))
		return
	case err != nil:
		fail(c, err)
		return
	}
	sendToken(c, http.StatusOK, s)
}

// Me GET /auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	sendData(c, http.StatusOK, middleware.CurrentUser(c))
}

// Users GET /auth/users
func (h *AuthHandler) Users(c *gin.Context) {
	users, err := h.Svc.ListUsers(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, usersResponse{Status: response.StatusSuccess, Count: len(users), Data: users})
}

// UpdateRole PUT /auth/users/:id/role
func (h *AuthHandler) UpdateRole(c *gin.Context) {
	var req roleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, err)
		return
	}
	u, err := h.Svc.UpdateRole(c.Request.Context(), middleware.CurrentUser(c), c.Param("id"), req.Role)
	if err != nil {
		fail(c, authError(err))
		return
	}
	sendData(c, http.StatusOK, u)
}
