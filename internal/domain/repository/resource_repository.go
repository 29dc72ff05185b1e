package repository

import (
	"context"

	"github.com/oksasatya/portfolio-api/internal/domain/entity"
	"github.com/oksasatya/portfolio-api/pkg/listquery"
)

// ResourceRepository is the persistence contract shared by owned content
// records (projects, skills, experience, learning items).
type ResourceRepository[T any] interface {
	// Schema describes the fields list requests may filter, select and sort on.
	Schema() *listquery.Schema
	List(ctx context.Context, q *listquery.Query) (*listquery.Page, error)
	GetByID(ctx context.Context, id string) (*T, error)
	Create(ctx context.Context, rec *T) error
	Update(ctx context.Context, rec *T) error
	Delete(ctx context.Context, id string) error
}

type (
	ProjectRepository    = ResourceRepository[entity.Project]
	SkillRepository      = ResourceRepository[entity.Skill]
	ExperienceRepository = ResourceRepository[entity.Experience]
	LearningRepository   = ResourceRepository[entity.LearningItem]
)
