package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/oksasatya/portfolio-api/internal/domain/entity"
	"github.com/oksasatya/portfolio-api/internal/domain/repository"
	"github.com/oksasatya/portfolio-api/pkg/listquery"
)

const learningColumns = `id, title, description, status, date_started, link, user_id, created_at, updated_at`

type LearningRepository struct {
	db DB
}

func NewLearningRepository(db DB) *LearningRepository {
	return &LearningRepository{db: db}
}

func scanLearning(row pgx.Row) (*entity.LearningItem, error) {
	l := &entity.LearningItem{}
	if err := row.Scan(&l.ID, &l.Title, &l.Description, &l.Status, &l.DateStarted,
		&l.Link, &l.UserID, &l.CreatedAt, &l.UpdatedAt); err != nil {
		return nil, mapErr(err)
	}
	return l, nil
}

func (r *LearningRepository) Schema() *listquery.Schema { return LearningSchema }

func (r *LearningRepository) List(ctx context.Context, q *listquery.Query) (*listquery.Page, error) {
	return listRows(ctx, r.db, LearningSchema, q)
}

func (r *LearningRepository) GetByID(ctx context.Context, id string) (*entity.LearningItem, error) {
	return scanLearning(r.db.QueryRow(ctx, `SELECT `+learningColumns+` FROM learning_items WHERE id = $1`, id))
}

func (r *LearningRepository) Create(ctx context.Context, l *entity.LearningItem) error {
	row := r.db.QueryRow(ctx, `
		INSERT INTO learning_items (title, description, status, date_started, link, user_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at
	`, l.Title, l.Description, l.Status, l.DateStarted, l.Link, l.UserID)
	return mapErr(row.Scan(&l.ID, &l.CreatedAt, &l.UpdatedAt))
}

func (r *LearningRepository) Update(ctx context.Context, l *entity.LearningItem) error {
	row := r.db.QueryRow(ctx, `
		UPDATE learning_items
		SET title = $1, description = $2, status = $3, date_started = $4, link = $5, updated_at = now()
		WHERE id = $6
		RETURNING updated_at
	`, l.Title, l.Description, l.Status, l.DateStarted, l.Link, l.ID)
	return mapErr(row.Scan(&l.UpdatedAt))
}

func (r *LearningRepository) Delete(ctx context.Context, id string) error {
	return expectOne(r.db.Exec(ctx, `DELETE FROM learning_items WHERE id = $1`, id))
}

var _ repository.LearningRepository = (*LearningRepository)(nil)
