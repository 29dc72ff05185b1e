package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/oksasatya/portfolio-api/internal/application"
	"github.com/oksasatya/portfolio-api/internal/domain/entity"
	"github.com/oksasatya/portfolio-api/pkg/helpers"
)

type learningRequest struct {
	Title       string        `json:"title" binding:"required,max=100"`
	Description string        `json:"description" binding:"required,max=2000"`
	Status      string        `json:"status" binding:"omitempty,learningstatus"`
	DateStarted *helpers.Date `json:"date_started" binding:"required"`
	Link        string        `json:"link" binding:"omitempty,url"`
}

type learningPatch struct {
	Title       *string       `json:"title" binding:"omitnil,min=1,max=100"`
	Description *string       `json:"description" binding:"omitnil,min=1,max=2000"`
	Status      *string       `json:"status" binding:"omitnil,learningstatus"`
	DateStarted *helpers.Date `json:"date_started"`
	Link        *string       `json:"link" binding:"omitempty,url"`
}

type learningBinder struct{}

func (learningBinder) Create(c *gin.Context) (*entity.LearningItem, error) {
	var req learningRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return nil, err
	}
	l := &entity.LearningItem{
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
		DateStarted: req.DateStarted.Time,
		Link:        req.Link,
	}
	if l.Status == "" {
		l.Status = entity.LearningInProgress
	}
	return l, nil
}

func (learningBinder) Patch(c *gin.Context) (func(*entity.LearningItem) error, error) {
	var req learningPatch
	if err := c.ShouldBindJSON(&req); err != nil {
		return nil, err
	}
	return func(l *entity.LearningItem) error {
		setIf(&l.Title, req.Title)
		setIf(&l.Description, req.Description)
		setIf(&l.Status, req.Status)
		if req.DateStarted != nil {
			l.DateStarted = req.DateStarted.Time
		}
		setIf(&l.Link, req.Link)
		return nil
	}, nil
}

func NewLearningHandler(svc *application.LearningService) *ResourceHandler[entity.LearningItem, *entity.LearningItem] {
	return NewResourceHandler(svc, Binder[entity.LearningItem](learningBinder{}))
}
