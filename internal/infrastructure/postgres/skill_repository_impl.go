package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/oksasatya/portfolio-api/internal/domain/entity"
	"github.com/oksasatya/portfolio-api/internal/domain/repository"
	"github.com/oksasatya/portfolio-api/pkg/listquery"
)

const skillColumns = `id, name, proficiency, category, user_id, created_at, updated_at`

type SkillRepository struct {
	db DB
}

func NewSkillRepository(db DB) *SkillRepository {
	return &SkillRepository{db: db}
}

func scanSkill(row pgx.Row) (*entity.Skill, error) {
	s := &entity.Skill{}
	if err := row.Scan(&s.ID, &s.Name, &s.Proficiency, &s.Category, &s.UserID, &s.CreatedAt, &s.UpdatedAt); err != nil {
		return nil, mapErr(err)
	}
	return s, nil
}

func (r *SkillRepository) Schema() *listquery.Schema { return SkillSchema }

func (r *SkillRepository) List(ctx context.Context, q *listquery.Query) (*listquery.Page, error) {
	return listRows(ctx, r.db, SkillSchema, q)
}

func (r *SkillRepository) GetByID(ctx context.Context, id string) (*entity.Skill, error) {
	return scanSkill(r.db.QueryRow(ctx, `SELECT `+skillColumns+` FROM skills WHERE id = $1`, id))
}

func (r *SkillRepository) Create(ctx context.Context, s *entity.Skill) error {
	row := r.db.QueryRow(ctx, `
		INSERT INTO skills (name, proficiency, category, user_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at
	`, s.Name, s.Proficiency, s.Category, s.UserID)
	return mapErr(row.Scan(&s.ID, &s.CreatedAt, &s.UpdatedAt))
}

func (r *SkillRepository) Update(ctx context.Context, s *entity.Skill) error {
	row := r.db.QueryRow(ctx, `
		UPDATE skills SET name = $1, proficiency = $2, category = $3, updated_at = now()
		WHERE id = $4
		RETURNING updated_at
	`, s.Name, s.Proficiency, s.Category, s.ID)
	return mapErr(row.Scan(&s.UpdatedAt))
}

func (r *SkillRepository) Delete(ctx context.Context, id string) error {
	return expectOne(r.db.Exec(ctx, `DELETE FROM skills WHERE id = $1`, id))
}

var _ repository.SkillRepository = (*SkillRepository)(nil)
