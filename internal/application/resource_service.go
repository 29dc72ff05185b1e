package application

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/portfolio-api/internal/domain/entity"
	repo "github.com/oksasatya/portfolio-api/internal/domain/repository"
	"github.com/oksasatya/portfolio-api/pkg/apperror"
	"github.com/oksasatya/portfolio-api/pkg/listquery"
)

// Indexer mirrors records into a secondary store such as a search index.
// Calls are best effort; implementations log their own failures.
type Indexer[T any] interface {
	Index(ctx context.Context, rec *T)
	Remove(ctx context.Context, id string)
}

// ResourceService implements list/get/create/update/delete for an owned
// content record. Writes go through the ownership gate.
type ResourceService[T any, P interface {
	*T
	entity.Owned
}] struct {
	// Name is the capitalised singular used in messages, e.g. "Project".
	Name    string
	Repo    repo.ResourceRepository[T]
	Indexer Indexer[T]
	Logger  logrus.FieldLogger
}

func NewResourceService[T any, P interface {
	*T
	entity.Owned
}](name string, r repo.ResourceRepository[T], logger logrus.FieldLogger) *ResourceService[T, P] {
	return &ResourceService[T, P]{Name: name, Repo: r, Logger: logger}
}

type (
	ProjectService    = ResourceService[entity.Project, *entity.Project]
	SkillService      = ResourceService[entity.Skill, *entity.Skill]
	ExperienceService = ResourceService[entity.Experience, *entity.Experience]
	LearningService   = ResourceService[entity.LearningItem, *entity.LearningItem]
)

// ListResult is one page of a list request.
type ListResult struct {
	Items      []map[string]any
	Total      int64
	Pagination listquery.Pagination
}

func (s *ResourceService[T, P]) List(ctx context.Context, values url.Values) (*ListResult, error) {
	q, err := listquery.Parse(s.Repo.Schema(), values)
	if err != nil {
		return nil, err
	}
	page, err := s.Repo.List(ctx, q)
	if err != nil {
		return nil, err
	}
	return &ListResult{Items: page.Items, Total: page.Total, Pagination: q.Paginate(page.Total)}, nil
}

func (s *ResourceService[T, P]) Get(ctx context.Context, id string) (*T, error) {
	if uuid.Validate(id) != nil {
		return nil, s.notFound(id)
	}
	rec, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, s.mapErr(err, id)
	}
	return rec, nil
}

// Create stamps actor as the owner of rec and stores it.
func (s *ResourceService[T, P]) Create(ctx context.Context, actor *entity.User, rec *T) error {
	P(rec).SetOwnerID(actor.ID)
	if err := s.Repo.Create(ctx, rec); err != nil {
		return s.mapErr(err, "")
	}
	if s.Indexer != nil {
		s.Indexer.Index(ctx, rec)
	}
	return nil
}

// Update loads record id, checks the ownership gate, applies patch and
// saves the result. patch may reject the merged record with an error.
func (s *ResourceService[T, P]) Update(ctx context.Context, actor *entity.User, id string, patch func(*T) error) (*T, error) {
	rec, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.CanModify(P(rec).OwnerID()) {
		return nil, s.forbidden("update")
	}
	owner := P(rec).OwnerID()
	if err := patch(rec); err != nil {
		return nil, err
	}
	P(rec).SetOwnerID(owner)
	if err := s.Repo.Update(ctx, rec); err != nil {
		return nil, s.mapErr(err, id)
	}
	if s.Indexer != nil {
		s.Indexer.Index(ctx, rec)
	}
	return rec, nil
}

func (s *ResourceService[T, P]) Delete(ctx context.Context, actor *entity.User, id string) error {
	rec, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if !actor.CanModify(P(rec).OwnerID()) {
		return s.forbidden("delete")
	}
	if err := s.Repo.Delete(ctx, id); err != nil {
		return s.mapErr(err, id)
	}
	if s.Indexer != nil {
		s.Indexer.Remove(ctx, id)
	}
	return nil
}

func (s *ResourceService[T, P]) notFound(id string) *apperror.Error {
	return apperror.NotFound(fmt.Sprintf("%s not found with id of %s", s.Name, id))
}

func (s *ResourceService[T, P]) forbidden(action string) *apperror.Error {
	return apperror.Forbidden(fmt.Sprintf("User is not authorized to %s this %s", action, strings.ToLower(s.Name)))
}

func (s *ResourceService[T, P]) mapErr(err error, id string) error {
	switch {
	case errors.Is(err, repo.ErrNotFound):
		return s.notFound(id).WithCause(err)
	case errors.Is(err, repo.ErrConflict):
		return apperror.Conflict("Duplicate field value entered").WithCause(err)
	default:
		return err
	}
}
