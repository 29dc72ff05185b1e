package modules

import (
	"github.com/gin-gonic/gin"
)

// CRUDHandler is the handler set of one owned content resource.
type CRUDHandler interface {
	List(c *gin.Context)
	Get(c *gin.Context)
	Create(c *gin.Context)
	Update(c *gin.Context)
	Delete(c *gin.Context)
}

// ResourceModule mounts public reads and owner/admin writes under Path.
type ResourceModule struct {
	Path    string
	Handler CRUDHandler
	Deps    Deps
}

func NewResourceModule(path string, h CRUDHandler, deps Deps) *ResourceModule {
	return &ResourceModule{Path: path, Handler: h, Deps: deps}
}

func (m *ResourceModule) Register(rg *gin.RouterGroup) {
	g := rg.Group(m.Path)
	g.GET("", m.Handler.List)
	g.GET("/:id", m.Handler.Get)
	g.POST("", m.Deps.writers(m.Handler.Create)...)
	g.PUT("/:id", m.Deps.writers(m.Handler.Update)...)
	g.DELETE("/:id", m.Deps.writers(m.Handler.Delete)...)
}
