package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/oksasatya/portfolio-api/internal/application"
	"github.com/oksasatya/portfolio-api/internal/domain/entity"
)

type skillRequest struct {
	Name        string `json:"name" binding:"required,max=50"`
	Proficiency string `json:"proficiency" binding:"omitempty,proficiency"`
	Category    string `json:"category" binding:"required,skillcategory"`
}

type skillPatch struct {
	Name        *string `json:"name" binding:"omitnil,min=1,max=50"`
	Proficiency *string `json:"proficiency" binding:"omitnil,proficiency"`
	Category    *string `json:"category" binding:"omitnil,skillcategory"`
}

type skillBinder struct{}

func (skillBinder) Create(c *gin.Context) (*entity.Skill, error) {
	var req skillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return nil, err
	}
	s := &entity.Skill{Name: req.Name, Proficiency: req.Proficiency, Category: req.Category}
	if s.Proficiency == "" {
		s.Proficiency = entity.ProficiencyIntermediate
	}
	return s, nil
}

func (skillBinder) Patch(c *gin.Context) (func(*entity.Skill) error, error) {
	var req skillPatch
	if err := c.ShouldBindJSON(&req); err != nil {
		return nil, err
	}
	return func(s *entity.Skill) error {
		setIf(&s.Name, req.Name)
		setIf(&s.Proficiency, req.Proficiency)
		setIf(&s.Category, req.Category)
		return nil
	}, nil
}

func NewSkillHandler(svc *application.SkillService) *ResourceHandler[entity.Skill, *entity.Skill] {
	return NewResourceHandler(svc, Binder[entity.Skill](skillBinder{}))
}
