package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/oksasatya/portfolio-api/internal/application"
	"github.com/oksasatya/portfolio-api/internal/domain/entity"
	"github.com/oksasatya/portfolio-api/pkg/apperror"
	"github.com/oksasatya/portfolio-api/pkg/helpers"
)

type experienceRequest struct {
	Title       string        `json:"title" binding:"required,max=100"`
	Company     string        `json:"company" binding:"required,max=100"`
	Location    string        `json:"location" binding:"max=100"`
	FromDate    *helpers.Date `json:"from_date" binding:"required"`
	ToDate      *helpers.Date `json:"to_date"`
	Current     bool          `json:"current"`
	Description string        `json:"description" binding:"max=2000"`
}

type experiencePatch struct {
	Title       *string       `json:"title" binding:"omitnil,min=1,max=100"`
	Company     *string       `json:"company" binding:"omitnil,min=1,max=100"`
	Location    *string       `json:"location" binding:"omitnil,max=100"`
	FromDate    *helpers.Date `json:"from_date"`
	ToDate      *helpers.Date `json:"to_date"`
	Current     *bool         `json:"current"`
	Description *string       `json:"description" binding:"omitnil,max=2000"`
}

// checkDates keeps ToDate empty for a current position and after FromDate otherwise.
func checkDates(e *entity.Experience) error {
	if e.Current {
		e.ToDate = nil
		return nil
	}
	if e.ToDate != nil && e.ToDate.Before(e.FromDate) {
		return apperror.Validation("to_date must not be before from_date").
			WithDetails(map[string]string{"to_date": "must not be before from_date"})
	}
	return nil
}

type experienceBinder struct{}

func (experienceBinder) Create(c *gin.Context) (*entity.Experience, error) {
	var req experienceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return nil, err
	}
	e := &entity.Experience{
		Title:       req.Title,
		Company:     req.Company,
		Location:    req.Location,
		FromDate:    req.FromDate.Time,
		ToDate:      req.ToDate.Ptr(),
		Current:     req.Current,
		Description: req.Description,
	}
	if err := checkDates(e); err != nil {
		return nil, err
	}
	return e, nil
}

func (experienceBinder) Patch(c *gin.Context) (func(*entity.Experience) error, error) {
	var req experiencePatch
	if err := c.ShouldBindJSON(&req); err != nil {
		return nil, err
	}
	return func(e *entity.Experience) error {
		setIf(&e.Title, req.Title)
		setIf(&e.Company, req.Company)
		setIf(&e.Location, req.Location)
		if req.FromDate != nil {
			e.FromDate = req.FromDate.Time
		}
		if req.ToDate != nil {
			e.ToDate = req.ToDate.Ptr()
		}
		setIf(&e.Current, req.Current)
		setIf(&e.Description, req.Description)
		return checkDates(e)
	}, nil
}

func NewExperienceHandler(svc *application.ExperienceService) *ResourceHandler[entity.Experience, *entity.Experience] {
	return NewResourceHandler(svc, Binder[entity.Experience](experienceBinder{}))
}
