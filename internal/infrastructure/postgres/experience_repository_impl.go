package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/oksasatya/portfolio-api/internal/domain/entity"
	"github.com/oksasatya/portfolio-api/internal/domain/repository"
	"github.com/oksasatya/portfolio-api/pkg/listquery"
)

const experienceColumns = `id, title, company, location, from_date, to_date, current, description, user_id, created_at, updated_at`

type ExperienceRepository struct {
	db DB
}

func NewExperienceRepository(db DB) *ExperienceRepository {
	return &ExperienceRepository{db: db}
}

func scanExperience(row pgx.Row) (*entity.Experience, error) {
	e := &entity.Experience{}
	if err := row.Scan(&e.ID, &e.Title, &e.Company, &e.Location, &e.FromDate, &e.ToDate,
		&e.Current, &e.Description, &e.UserID, &e.CreatedAt, &e.UpdatedAt); err != nil {
		return nil, mapErr(err)
	}
	return e, nil
}

func (r *ExperienceRepository) Schema() *listquery.Schema { return ExperienceSchema }

func (r *ExperienceRepository) List(ctx context.Context, q *listquery.Query) (*listquery.Page, error) {
	return listRows(ctx, r.db, ExperienceSchema, q)
}

func (r *ExperienceRepository) GetByID(ctx context.Context, id string) (*entity.Experience, error) {
	return scanExperience(r.db.QueryRow(ctx, `SELECT `+experienceColumns+` FROM experiences WHERE id = $1`, id))
}

func (r *ExperienceRepository) Create(ctx context.Context, e *entity.Experience) error {
	row := r.db.QueryRow(ctx, `
		INSERT INTO experiences (title, company, location, from_date, to_date, current, description, user_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at, updated_at
	`, e.Title, e.Company, e.Location, e.FromDate, e.ToDate, e.Current, e.Description, e.UserID)
	return mapErr(row.Scan(&e.ID, &e.CreatedAt, &e.UpdatedAt))
}

func (r *ExperienceRepository) Update(ctx context.Context, e *entity.Experience) error {
	row := r.db.QueryRow(ctx, `
		UPDATE experiences
		SET title = $1, company = $2, location = $3, from_date = $4, to_date = $5,
		    current = $6, description = $7, updated_at = now()
		WHERE id = $8
		RETURNING updated_at
	`, e.Title, e.Company, e.Location, e.FromDate, e.ToDate, e.Current, e.Description, e.ID)
	return mapErr(row.Scan(&e.UpdatedAt))
}

func (r *ExperienceRepository) Delete(ctx context.Context, id string) error {
	return expectOne(r.db.Exec(ctx, `DELETE FROM experiences WHERE id = $1`, id))
}

var _ repository.ExperienceRepository = (*ExperienceRepository)(nil)
