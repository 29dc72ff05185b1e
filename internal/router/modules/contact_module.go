package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/portfolio-api/internal/interface/http"
	"github.com/oksasatya/portfolio-api/internal/interface/middleware"
)

type ContactModule struct {
	Handler *handlers.ContactHandler
	Deps    Deps
}

func NewContactModule(h *handlers.ContactHandler, deps Deps) *ContactModule {
	return &ContactModule{Handler: h, Deps: deps}
}

func (m *ContactModule) Register(rg *gin.RouterGroup) {
	rg.POST("/contact", m.Deps.Limiter(m.Deps.PublicRate, middleware.KeyByIPAndPath()), m.Handler.Send)
}
