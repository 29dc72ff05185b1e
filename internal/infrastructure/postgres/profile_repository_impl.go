package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/oksasatya/portfolio-api/internal/domain/entity"
	"github.com/oksasatya/portfolio-api/internal/domain/repository"
)

const profileColumns = `id, user_id, full_name, title, summary, bio, location, phone, email, website,
	linkedin_url, github_url, profile_image_url, resume_url, created_at, updated_at`

type ProfileRepository struct {
	db DB
}

func NewProfileRepository(db DB) *ProfileRepository {
	return &ProfileRepository{db: db}
}

func profileDest(p *entity.Profile) []any {
	return []any{&p.ID, &p.UserID, &p.FullName, &p.Title, &p.Summary, &p.Bio, &p.Location,
		&p.Phone, &p.Email, &p.Website, &p.LinkedinURL, &p.GithubURL, &p.ProfileImageURL,
		&p.ResumeURL, &p.CreatedAt, &p.UpdatedAt}
}

func scanProfile(row pgx.Row) (*entity.Profile, error) {
	p := &entity.Profile{}
	if err := row.Scan(profileDest(p)...); err != nil {
		return nil, mapErr(err)
	}
	return p, nil
}

func (r *ProfileRepository) GetByID(ctx context.Context, id string) (*entity.Profile, error) {
	return scanProfile(r.db.QueryRow(ctx, `SELECT `+profileColumns+` FROM profiles WHERE id = $1`, id))
}

func (r *ProfileRepository) GetByUserID(ctx context.Context, userID string) (*entity.Profile, error) {
	return scanProfile(r.db.QueryRow(ctx, `SELECT `+profileColumns+` FROM profiles WHERE user_id = $1`, userID))
}

func (r *ProfileRepository) GetPublic(ctx context.Context) (*entity.Profile, error) {
	p := &entity.Profile{User: &entity.UserSummary{}}
	dest := append(profileDest(p), &p.User.ID, &p.User.Email)
	err := r.db.QueryRow(ctx, `
		SELECT p.id, p.user_id, p.full_name, p.title, p.summary, p.bio, p.location, p.phone, p.email,
		       p.website, p.linkedin_url, p.github_url, p.profile_image_url, p.resume_url,
		       p.created_at, p.updated_at, u.id, u.email
		FROM profiles p
		JOIN users u ON u.id = p.user_id
		WHERE u.role = 'owner'
		ORDER BY u.created_at ASC
		LIMIT 1
	`).Scan(dest...)
	if err != nil {
		return nil, mapErr(err)
	}
	p.UserID = ""
	return p, nil
}

// Create relies on the unique user_id index instead of a prior existence
// check; a second profile for the same user yields ErrConflict.
func (r *ProfileRepository) Create(ctx context.Context, p *entity.Profile) error {
	row := r.db.QueryRow(ctx, `
		INSERT INTO profiles (user_id, full_name, title, summary, bio, location, phone, email,
		                      website, linkedin_url, github_url, profile_image_url, resume_url)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		ON CONFLICT (user_id) DO NOTHING
		RETURNING id, created_at, updated_at
	`, p.UserID, p.FullName, p.Title, p.Summary, p.Bio, p.Location, p.Phone, p.Email,
		p.Website, p.LinkedinURL, p.GithubURL, p.ProfileImageURL, p.ResumeURL)
	err := mapErr(row.Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt))
	if errors.Is(err, repository.ErrNotFound) {
		return fmt.Errorf("%w: profiles_user_id_key", repository.ErrConflict)
	}
	return err
}

func (r *ProfileRepository) Update(ctx context.Context, p *entity.Profile) error {
	row := r.db.QueryRow(ctx, `
		UPDATE profiles
		SET full_name = $2, title = $3, summary = $4, bio = $5, location = $6, phone = $7,
		    email = $8, website = $9, linkedin_url = $10, github_url = $11,
		    profile_image_url = $12, resume_url = $13, updated_at = now()
		WHERE user_id = $1
		RETURNING id, created_at, updated_at
	`, p.UserID, p.FullName, p.Title, p.Summary, p.Bio, p.Location, p.Phone, p.Email,
		p.Website, p.LinkedinURL, p.GithubURL, p.ProfileImageURL, p.ResumeURL)
	return mapErr(row.Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt))
}

func (r *ProfileRepository) Delete(ctx context.Context, id string) error {
	return expectOne(r.db.Exec(ctx, `DELETE FROM profiles WHERE id = $1`, id))
}

func (r *ProfileRepository) SetMedia(ctx context.Context, userID, email string, field repository.MediaField, url string) (*entity.Profile, error) {
	var column string
	switch field {
	case repository.MediaProfileImage, repository.MediaResume:
		column = ident(string(field))
	default:
		return nil, fmt.Errorf("unknown profile media field %q", field)
	}
	return scanProfile(r.db.QueryRow(ctx, `
		INSERT INTO profiles (user_id, email, `+column+`)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id) DO UPDATE SET `+column+` = EXCLUDED.`+column+`, updated_at = now()
		RETURNING `+profileColumns,
		userID, email, url))
}

var _ repository.ProfileRepository = (*ProfileRepository)(nil)
