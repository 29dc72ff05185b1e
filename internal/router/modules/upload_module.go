package modules

import (
	"github.com/gin-gonic/gin"

	"github.com/oksasatya/portfolio-api/internal/application"
	handlers "github.com/oksasatya/portfolio-api/internal/interface/http"
	"github.com/oksasatya/portfolio-api/internal/interface/middleware"
)

type UploadModule struct {
	Handler *handlers.UploadHandler
	Deps    Deps
}

func NewUploadModule(h *handlers.UploadHandler, deps Deps) *UploadModule {
	return &UploadModule{Handler: h, Deps: deps}
}

func (m *UploadModule) Register(rg *gin.RouterGroup) {
	up := rg.Group("/upload")
	up.Use(m.Deps.Auth, m.Deps.Limiter(30, middleware.KeyByUser()))
	{
		up.POST("/profile-image", m.Handler.Upload(application.UploadProfileImage))
		up.POST("/project-image", middleware.RequireOwnerOrAdmin(), m.Handler.Upload(application.UploadProjectImage))
		up.POST("/resume", m.Handler.Upload(application.UploadResume))
	}
}
