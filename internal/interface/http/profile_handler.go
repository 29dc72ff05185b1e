package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/portfolio-api/internal/application"
	"github.com/oksasatya/portfolio-api/internal/domain/entity"
	"github.com/oksasatya/portfolio-api/internal/interface/middleware"
)

type ProfileHandler struct {
	Svc *application.ProfileService
}

func NewProfileHandler(svc *application.ProfileService) *ProfileHandler {
	return &ProfileHandler{Svc: svc}
}

type profileRequest struct {
	FullName        string `json:"full_name" binding:"max=100"`
	Title           string `json:"title" binding:"max=100"`
	Summary         string `json:"summary" binding:"max=500"`
	Bio             string `json:"bio" binding:"max=2000"`
	Location        string `json:"location" binding:"max=100"`
	Phone           string `json:"phone" binding:"omitempty,phone"`
	Email           string `json:"email" binding:"omitempty,email"`
	Website         string `json:"website" binding:"omitempty,url"`
	LinkedinURL     string `json:"linkedin_url" binding:"omitempty,url"`
	GithubURL       string `json:"github_url" binding:"omitempty,url"`
	ProfileImageURL string `json:"profile_image_url" binding:"omitempty,url"`
	ResumeURL       string `json:"resume_url" binding:"omitempty,url"`
}

type profilePatch struct {
	FullName        *string `json:"full_name" binding:"omitnil,max=100"`
	Title           *string `json:"title" binding:"omitnil,max=100"`
	Summary         *string `json:"summary" binding:"omitnil,max=500"`
	Bio             *string `json:"bio" binding:"omitnil,max=2000"`
	Location        *string `json:"location" binding:"omitnil,max=100"`
	Phone           *string `json:"phone" binding:"omitempty,phone"`
	Email           *string `json:"email" binding:"omitempty,email"`
	Website         *string `json:"website" binding:"omitempty,url"`
	LinkedinURL     *string `json:"linkedin_url" binding:"omitempty,url"`
	GithubURL       *string `json:"github_url" binding:"omitempty,url"`
	ProfileImageURL *string `json:"profile_image_url" binding:"omitempty,url"`
	ResumeURL       *string `json:"resume_url" binding:"omitempty,url"`
}

func (p *profilePatch) apply(dst *entity.Profile) {
	setIf(&dst.FullName, p.FullName)
	setIf(&dst.Title, p.Title)
	setIf(&dst.Summary, p.Summary)
	setIf(&dst.Bio, p.Bio)
	setIf(&dst.Location, p.Location)
	setIf(&dst.Phone, p.Phone)
	setIf(&dst.Email, p.Email)
	setIf(&dst.Website, p.Website)
	setIf(&dst.LinkedinURL, p.LinkedinURL)
	setIf(&dst.GithubURL, p.GithubURL)
	setIf(&dst.ProfileImageURL, p.ProfileImageURL)
	setIf(&dst.ResumeURL, p.ResumeURL)
}

// Public GET /profile
func (h *ProfileHandler) Public(c *gin.Context) {
	profiles, err := h.Svc.Public(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	sendData(c, http.StatusOK, profiles)
}

// Create POST /profile
func (h *ProfileHandler) Create(c *gin.Context) {
	var req profileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, err)
		return
	}
	p := &entity.Profile{
		FullName:        req.FullName,
		Title:           req.Title,
		Summary:         req.Summary,
		Bio:             req.Bio,
		Location:        req.Location,
		Phone:           req.Phone,
		Email:           req.Email,
		Website:         req.Website,
		LinkedinURL:     req.LinkedinURL,
		GithubURL:       req.GithubURL,
		ProfileImageURL: req.ProfileImageURL,
		ResumeURL:       req.ResumeURL,
	}
	if err := h.Svc.Create(c.Request.Context(), middleware.CurrentUser(c), p); err != nil {
		fail(c, err)
		return
	}
	sendData(c, http.StatusCreated, p)
}

// Update PUT /profile
func (h *ProfileHandler) Update(c *gin.Context) {
	var req profilePatch
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, err)
		return
	}
	p, err := h.Svc.Update(c.Request.Context(), middleware.CurrentUser(c), func(p *entity.Profile) error {
		req.apply(p)
		return nil
	})
	if err != nil {
		fail(c, err)
		return
	}
	sendData(c, http.StatusOK, p)
}

// Delete DELETE /profile/:id
func (h *ProfileHandler) Delete(c *gin.Context) {
	if err := h.Svc.Delete(c.Request.Context(), middleware.CurrentUser(c), c.Param("id")); err != nil {
		fail(c, err)
		return
	}
	noContent(c)
}
