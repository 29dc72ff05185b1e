package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/portfolio-api/internal/interface/http"
	"github.com/oksasatya/portfolio-api/internal/interface/middleware"
)

type AuthModule struct {
	Handler *handlers.AuthHandler
	Deps    Deps
}

func NewAuthModule(h *handlers.AuthHandler, deps Deps) *AuthModule {
	return &AuthModule{Handler: h, Deps: deps}
}

func (m *AuthModule) Register(rg *gin.RouterGroup) {
	// Public endpoints with IP-based rate limits
	limiter := m.Deps.Limiter(m.Deps.PublicRate, middleware.KeyByIPAndPath())
	rg.POST("/auth/register", limiter, m.Handler.Register)
	rg.POST("/auth/login", limiter, m.Handler.Login)

	auth := rg.Group("/auth")
	auth.Use(m.Deps.Auth, m.Deps.Limiter(120, middleware.KeyByUser()))
	{
		auth.GET("/me", m.Handler.Me)
		auth.GET("/users", middleware.RequireOwner(), m.Handler.Users)
		auth.PUT("/users/:id/role", middleware.RequireOwner(), m.Handler.UpdateRole)
	}
}
