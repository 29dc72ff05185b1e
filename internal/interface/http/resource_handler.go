package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/portfolio-api/internal/application"
	"github.com/oksasatya/portfolio-api/internal/domain/entity"
	"github.com/oksasatya/portfolio-api/internal/interface/middleware"
	"github.com/oksasatya/portfolio-api/pkg/response"
)

// Binder decodes request bodies for one record type. Create returns a new
// record; Patch returns a function applying the provided fields to a
// stored record.
type Binder[T any] interface {
	Create(c *gin.Context) (*T, error)
	Patch(c *gin.Context) (func(*T) error, error)
}

// ResourceHandler serves list/get/create/update/delete for an owned record.
type ResourceHandler[T any, P interface {
	*T
	entity.Owned
}] struct {
	Svc  *application.ResourceService[T, P]
	Bind Binder[T]
}

func NewResourceHandler[T any, P interface {
	*T
	entity.Owned
}](svc *application.ResourceService[T, P], bind Binder[T]) *ResourceHandler[T, P] {
	return &ResourceHandler[T, P]{Svc: svc, Bind: bind}
}

func (h *ResourceHandler[T, P]) List(c *gin.Context) {
	res, err := h.Svc.List(c.Request.Context(), c.Request.URL.Query())
	if err != nil {
		fail(c, err)
		return
	}
	response.Paged(c, res.Items, res.Total, res.Pagination)
}

func (h *ResourceHandler[T, P]) Get(c *gin.Context) {
	rec, err := h.Svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	sendData(c, http.StatusOK, rec)
}

func (h *ResourceHandler[T, P]) Create(c *gin.Context) {
	rec, err := h.Bind.Create(c)
	if err != nil {
		fail(c, err)
		return
	}
	if err := h.Svc.Create(c.Request.Context(), middleware.CurrentUser(c), rec); err != nil {
		fail(c, err)
		return
	}
	sendData(c, http.StatusCreated, rec)
}

func (h *ResourceHandler[T, P]) Update(c *gin.Context) {
	patch, err := h.Bind.Patch(c)
	if err != nil {
		fail(c, err)
		return
	}
	rec, err := h.Svc.Update(c.Request.Context(), middleware.CurrentUser(c), c.Param("id"), patch)
	if err != nil {
		fail(c, err)
		return
	}
	sendData(c, http.StatusOK, rec)
}

func (h *ResourceHandler[T, P]) Delete(c *gin.Context) {
	if err := h.Svc.Delete(c.Request.Context(), middleware.CurrentUser(c), c.Param("id")); err != nil {
		fail(c, err)
		return
	}
	noContent(c)
}
