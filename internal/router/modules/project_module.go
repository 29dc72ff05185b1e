package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/portfolio-api/internal/interface/http"
	"github.com/oksasatya/portfolio-api/internal/interface/middleware"
)

// ProjectModule is the project resource plus /projects/search when a
// search backend is configured.
type ProjectModule struct {
	Handler       *handlers.ProjectHandler
	SearchEnabled bool
	Deps          Deps
}

func NewProjectModule(h *handlers.ProjectHandler, searchEnabled bool, deps Deps) *ProjectModule {
	return &ProjectModule{Handler: h, SearchEnabled: searchEnabled, Deps: deps}
}

func (m *ProjectModule) Register(rg *gin.RouterGroup) {
	if m.SearchEnabled {
		rg.GET("/projects/search", m.Deps.Limiter(120, middleware.KeyByIP()), m.Handler.SearchProjects)
	}
	NewResourceModule("/projects", m.Handler, m.Deps).Register(rg)
}
