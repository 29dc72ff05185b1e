package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/portfolio-api/internal/interface/http"
)

type ProfileModule struct {
	Handler *handlers.ProfileHandler
	Deps    Deps
}

func NewProfileModule(h *handlers.ProfileHandler, deps Deps) *ProfileModule {
	return &ProfileModule{Handler: h, Deps: deps}
}

func (m *ProfileModule) Register(rg *gin.RouterGroup) {
	rg.GET("/profile", m.Handler.Public)

	auth := rg.Group("/profile")
	auth.Use(m.Deps.Auth)
	{
		auth.POST("", m.Handler.Create)
		auth.PUT("", m.Handler.Update)
		auth.DELETE("/:id", m.Handler.Delete)
	}
}
