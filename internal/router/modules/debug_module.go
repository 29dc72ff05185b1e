package modules

import (
	"expvar"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/portfolio-api/internal/interface/middleware"
)

type DebugModule struct {
	Deps Deps
}

func NewDebugModule(deps Deps) *DebugModule { return &DebugModule{Deps: deps} }

func (m *DebugModule) Register(rg *gin.RouterGroup) {
	// Public metrics endpoint (expvar), rate-limited per IP
	rg.GET("/debug/vars", m.Deps.Limiter(120, middleware.KeyByIP()), gin.WrapH(expvar.Handler()))
}
