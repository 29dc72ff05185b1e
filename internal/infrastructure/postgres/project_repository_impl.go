package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/oksasatya/portfolio-api/internal/domain/entity"
	"github.com/oksasatya/portfolio-api/internal/domain/repository"
	"github.com/oksasatya/portfolio-api/pkg/listquery"
)

const projectColumns = `id, title, description, technologies, github_url, live_url, image_url, user_id, created_at, updated_at`

type ProjectRepository struct {
	db DB
}

func NewProjectRepository(db DB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

func scanProject(row pgx.Row) (*entity.Project, error) {
	p := &entity.Project{}
	if err := row.Scan(&p.ID, &p.Title, &p.Description, &p.Technologies, &p.GithubURL,
		&p.LiveURL, &p.ImageURL, &p.UserID, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, mapErr(err)
	}
	return p, nil
}

func (r *ProjectRepository) Schema() *listquery.Schema { return ProjectSchema }

func (r *ProjectRepository) List(ctx context.Context, q *listquery.Query) (*listquery.Page, error) {
	return listRows(ctx, r.db, ProjectSchema, q)
}

func (r *ProjectRepository) GetByID(ctx context.Context, id string) (*entity.Project, error) {
	return scanProject(r.db.QueryRow(ctx, `SELECT `+projectColumns+` FROM projects WHERE id = $1`, id))
}

func (r *ProjectRepository) Create(ctx context.Context, p *entity.Project) error {
	row := r.db.QueryRow(ctx, `
		INSERT INTO projects (title, description, technologies, github_url, live_url, image_url, user_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at
	`, p.Title, p.Description, p.Technologies, p.GithubURL, p.LiveURL, p.ImageURL, p.UserID)
	return mapErr(row.Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt))
}

func (r *ProjectRepository) Update(ctx context.Context, p *entity.Project) error {
	row := r.db.QueryRow(ctx, `
		UPDATE projects
		SET title = $1, description = $2, technologies = $3, github_url = $4,
		    live_url = $5, image_url = $6, updated_at = now()
		WHERE id = $7
		RETURNING updated_at
	`, p.Title, p.Description, p.Technologies, p.GithubURL, p.LiveURL, p.ImageURL, p.ID)
	return mapErr(row.Scan(&p.UpdatedAt))
}

func (r *ProjectRepository) Delete(ctx context.Context, id string) error {
	return expectOne(r.db.Exec(ctx, `DELETE FROM projects WHERE id = $1`, id))
}

var _ repository.ProjectRepository = (*ProjectRepository)(nil)
