package repository

import (
	"context"

	"github.com/oksasatya/portfolio-api/internal/domain/entity"
)

// MediaField names a profile column that holds an uploaded file URL.
type MediaField string

const (
	MediaProfileImage MediaField = "profile_image_url"
	MediaResume       MediaField = "resume_url"
)

type ProfileRepository interface {
	GetByID(ctx context.Context, id string) (*entity.Profile, error)
	GetByUserID(ctx context.Context, userID string) (*entity.Profile, error)
	// GetPublic returns the profile of the earliest owner with the user expanded.
	GetPublic(ctx context.Context) (*entity.Profile, error)
	// Create inserts p; ErrConflict when the user already has a profile.
	Create(ctx context.Context, p *entity.Profile) error
	// Update replaces the profile belonging to p.UserID.
	Update(ctx context.Context, p *entity.Profile) error
	Delete(ctx context.Context, id string) error
	// SetMedia stores url in field, creating a minimal profile when absent.
	SetMedia(ctx context.Context, userID, email string, field MediaField, url string) (*entity.Profile, error)
}
