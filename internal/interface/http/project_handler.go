package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/portfolio-api/internal/application"
	"github.com/oksasatya/portfolio-api/internal/domain/entity"
	"github.com/oksasatya/portfolio-api/pkg/apperror"
	"github.com/oksasatya/portfolio-api/pkg/response"
)

type projectRequest struct {
	Title        string   `json:"title" binding:"required,max=100"`
	Description  string   `json:"description" binding:"required,max=2000"`
	Technologies []string `json:"technologies" binding:"required,min=1,dive,required"`
	GithubURL    string   `json:"github_url" binding:"omitempty,url"`
	LiveURL      string   `json:"live_url" binding:"omitempty,url"`
	ImageURL     string   `json:"image_url" binding:"omitempty,url"`
}

type projectPatch struct {
	Title        *string   `json:"title" binding:"omitnil,min=1,max=100"`
	Description  *string   `json:"description" binding:"omitnil,min=1,max=2000"`
	Technologies *[]string `json:"technologies" binding:"omitnil,min=1,dive,required"`
	GithubURL    *string   `json:"github_url" binding:"omitempty,url"`
	LiveURL      *string   `json:"live_url" binding:"omitempty,url"`
	ImageURL     *string   `json:"image_url" binding:"omitempty,url"`
}

type projectBinder struct{}

func (projectBinder) Create(c *gin.Context) (*entity.Project, error) {
	var req projectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return nil, err
	}
	return &entity.Project{
		Title:        req.Title,
		Description:  req.Description,
		Technologies: trimAll(req.Technologies),
		GithubURL:    req.GithubURL,
		LiveURL:      req.LiveURL,
		ImageURL:     req.ImageURL,
	}, nil
}

func (projectBinder) Patch(c *gin.Context) (func(*entity.Project) error, error) {
	var req projectPatch
	if err := c.ShouldBindJSON(&req); err != nil {
		return nil, err
	}
	return func(p *entity.Project) error {
		setIf(&p.Title, req.Title)
		setIf(&p.Description, req.Description)
		if req.Technologies != nil {
			p.Technologies = trimAll(*req.Technologies)
		}
		setIf(&p.GithubURL, req.GithubURL)
		setIf(&p.LiveURL, req.LiveURL)
		setIf(&p.ImageURL, req.ImageURL)
		return nil
	}, nil
}

// ProjectHandler adds full-text search to the project resource routes.
type ProjectHandler struct {
	*ResourceHandler[entity.Project, *entity.Project]
	Search application.ProjectSearcher
}

func NewProjectHandler(svc *application.ProjectService, search application.ProjectSearcher) *ProjectHandler {
	return &ProjectHandler{ResourceHandler: NewResourceHandler(svc, Binder[entity.Project](projectBinder{})), Search: search}
}

type searchResponse struct {
	Status string           `json:"status"`
	Count  int              `json:"count"`
	Data   []map[string]any `json:"data"`
}

// SearchProjects GET /projects/search?q=
func (h *ProjectHandler) SearchProjects(c *gin.Context) {
	q := strings.TrimSpace(c.Query("q"))
	if q == "" {
		fail(c, apperror.Validation("Please provide a search query"))
		return
	}
	size, _ := strconv.Atoi(c.Query("limit"))
	hits, err := h.Search.Search(c.Request.Context(), q, size)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, searchResponse{Status: response.StatusSuccess, Count: len(hits), Data: hits})
}

func setIf[V any](dst *V, v *V) {
	if v != nil {
		*dst = *v
	}
}

func trimAll(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
