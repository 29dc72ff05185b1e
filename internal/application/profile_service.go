package application

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/portfolio-api/internal/domain/entity"
	repo "github.com/oksasatya/portfolio-api/internal/domain/repository"
	"github.com/oksasatya/portfolio-api/pkg/apperror"
	"github.com/oksasatya/portfolio-api/pkg/helpers"
)

const (
	publicProfileKey = "profile:public"
	publicProfileTTL = 5 * time.Minute
)

// Cache is a JSON value cache. Errors are never fatal to callers.
type Cache interface {
	GetJSON(ctx context.Context, key string, dest any) (bool, error)
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}

type ProfileService struct {
	Repo   repo.ProfileRepository
	Cache  Cache // optional
	Logger logrus.FieldLogger
}

func NewProfileService(r repo.ProfileRepository, cache Cache, logger logrus.FieldLogger) *ProfileService {
	return &ProfileService{Repo: r, Cache: cache, Logger: logger}
}

// Public returns the owner's profile as a zero or one element slice.
func (s *ProfileService) Public(ctx context.Context) ([]entity.Profile, error) {
	if s.Cache != nil {
		var cached []entity.Profile
		ok, err := s.Cache.GetJSON(ctx, publicProfileKey, &cached)
		if err != nil {
			helpers.LogWarn(s.Logger, "profile cache read failed", err, nil)
		}
		if ok {
			return cached, nil
		}
	}

	out := []entity.Profile{}
	p, err := s.Repo.GetPublic(ctx)
	switch {
	case errors.Is(err, repo.ErrNotFound):
	case err != nil:
		return nil, err
	default:
		out = append(out, *p)
	}

	if s.Cache != nil {
		if err := s.Cache.SetJSON(ctx, publicProfileKey, out, publicProfileTTL); err != nil {
			helpers.LogWarn(s.Logger, "profile cache write failed", err, nil)
		}
	}
	return out, nil
}

// Create stores the caller's profile. A second profile for the same user is
// rejected by the store, not by a prior lookup.
func (s *ProfileService) Create(ctx context.Context, actor *entity.User, p *entity.Profile) error {
	p.UserID = actor.ID
	if err := s.Repo.Create(ctx, p); err != nil {
		if errors.Is(err, repo.ErrConflict) {
			return apperror.Validation("Profile already exists for this user").WithCause(err)
		}
		return err
	}
	s.InvalidatePublic(ctx)
	return nil
}

// Update applies patch to the caller's profile.
func (s *ProfileService) Update(ctx context.Context, actor *entity.User, patch func(*entity.Profile) error) (*entity.Profile, error) {
	p, err := s.Repo.GetByUserID(ctx, actor.ID)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, apperror.NotFound("Profile not found for this user. Use POST to create.")
	}
	if err != nil {
		return nil, err
	}
	if err := patch(p); err != nil {
		return nil, err
	}
	p.UserID = actor.ID
	if err := s.Repo.Update(ctx, p); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, apperror.NotFound("Profile not found for this user. Use POST to create.")
		}
		return nil, err
	}
	s.InvalidatePublic(ctx)
	return p, nil
}

func (s *ProfileService) Delete(ctx context.Context, actor *entity.User, id string) error {
	notFound := apperror.NotFound(fmt.Sprintf("Profile not found with id of %s", id))
	if uuid.Validate(id) != nil {
		return notFound
	}
	p, err := s.Repo.GetByID(ctx, id)
	if errors.Is(err, repo.ErrNotFound) {
		return notFound
	}
	if err != nil {
		return err
	}
	if !actor.CanModify(p.UserID) {
		return apperror.Forbidden("User is not authorized to delete this profile")
	}
	if err := s.Repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return notFound
		}
		return err
	}
	s.InvalidatePublic(ctx)
	return nil
}

// SetMedia records an uploaded file URL on the caller's profile, creating
// the profile if needed.
func (s *ProfileService) SetMedia(ctx context.Context, actor *entity.User, field repo.MediaField, url string) (*entity.Profile, error) {
	p, err := s.Repo.SetMedia(ctx, actor.ID, actor.Email, field, url)
	if err != nil {
		return nil, err
	}
	s.InvalidatePublic(ctx)
	return p, nil
}

// InvalidatePublic drops the cached public profile. Called on profile
// writes and whenever the set of owners changes.
func (s *ProfileService) InvalidatePublic(ctx context.Context) {
	if s.Cache == nil {
		return
	}
	if err := s.Cache.Delete(ctx, publicProfileKey); err != nil {
		helpers.LogWarn(s.Logger, "profile cache invalidation failed", err, nil)
	}
}
