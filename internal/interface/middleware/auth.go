package middleware

import (
	"context"
	"errors"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/portfolio-api/internal/domain/entity"
	"github.com/oksasatya/portfolio-api/pkg/apperror"
	"github.com/oksasatya/portfolio-api/pkg/helpers"
)

const (
	CtxUserIDKey = "userID"
	CtxUserKey   = "user"

	msgNoToken     = "Not authorized to access this route, no token provided"
	msgTokenFailed = "Not authorized to access this route, token failed"
	msgTokenExpiry = "Not authorized to access this route, token expired"
)

type TokenVerifier interface {
	Verify(token string) (string, error)
}

type UserLoader interface {
	GetByID(ctx context.Context, id string) (*entity.User, error)
}

func bearerToken(c *gin.Context) string {
	h := strings.TrimSpace(c.GetHeader("Authorization"))
	scheme, token, ok := strings.Cut(h, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}

// Authenticate resolves the bearer token to a user and stores it in the
// Gin context under CtxUserKey (and its id under CtxUserIDKey).
func Authenticate(users UserLoader, tokens TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			abortWith(c, apperror.Unauthenticated(msgNoToken))
			return
		}
		uid, err := tokens.Verify(token)
		if err != nil {
			msg := msgTokenFailed
			if errors.Is(err, helpers.ErrExpiredToken) {
				msg = msgTokenExpiry
			}
			abortWith(c, apperror.Unauthenticated(msg).WithCause(err))
			return
		}
		u, err := users.GetByID(c.Request.Context(), uid)
		if err != nil || u == nil {
			abortWith(c, apperror.Unauthenticated(msgTokenFailed).WithCause(err))
			return
		}
		u.PasswordHash = ""
		c.Set(CtxUserIDKey, u.ID)
		c.Set(CtxUserKey, u)
		c.Next()
	}
}

// CurrentUser returns the identity set by Authenticate, or nil.
func CurrentUser(c *gin.Context) *entity.User {
	v, ok := c.Get(CtxUserKey)
	if !ok {
		return nil
	}
	u, _ := v.(*entity.User)
	return u
}

// RequireRoles passes only callers holding one of roles.
func RequireRoles(roles ...entity.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		u := CurrentUser(c)
		if u == nil {
			abortWith(c, apperror.Unauthenticated(msgNoToken))
			return
		}
		if !u.HasRole(roles...) {
			abortWith(c, apperror.Forbidden("User role "+string(u.Role)+" is not authorized to access this route"))
			return
		}
		c.Next()
	}
}

func RequireOwner() gin.HandlerFunc {
	return RequireRoles(entity.RoleOwner)
}

func RequireOwnerOrAdmin() gin.HandlerFunc {
	return RequireRoles(entity.RoleOwner, entity.RoleAdmin)
}

// abortWith records err for ErrorHandler and stops the chain.
func abortWith(c *gin.Context, err error) {
	_ = c.Error(err)
	c.Abort()
}
