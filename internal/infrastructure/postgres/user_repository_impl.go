package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/oksasatya/portfolio-api/internal/domain/entity"
	"github.com/oksasatya/portfolio-api/internal/domain/repository"
)

const userColumns = `id, email, password_hash, role, created_at, updated_at`

type UserRepository struct {
	db DB
}

func NewUserRepository(db DB) *UserRepository {
	return &UserRepository{db: db}
}

func scanUser(row pgx.Row) (*entity.User, error) {
	u := &entity.User{}
	if err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Role, &u.CreatedAt, &u.UpdatedAt); err != nil {
		return nil, mapErr(err)
	}
	return u, nil
}

// Create resolves an empty role inside the INSERT so the first-user check
// and the write happen in one statement.
func (r *UserRepository) Create(ctx context.Context, u *entity.User) error {
	row := r.db.QueryRow(ctx, `
		INSERT INTO users (email, password_hash, role)
		VALUES ($1, $2, COALESCE(NULLIF($3, ''),
			CASE WHEN EXISTS (SELECT 1 FROM users) THEN 'viewer' ELSE 'owner' END))
		RETURNING `+userColumns,
		entity.NormalizeEmail(u.Email), u.PasswordHash, string(u.Role))
	created, err := scanUser(row)
	if err != nil {
		return err
	}
	*u = *created
	return nil
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	return scanUser(r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id))
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	return scanUser(r.db.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE lower(email) = $1`, entity.NormalizeEmail(email)))
}

func (r *UserRepository) List(ctx context.Context) ([]entity.User, error) {
	rows, err := r.db.Query(ctx, `SELECT `+userColumns+` FROM users ORDER BY created_at ASC, id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []entity.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *u)
	}
	return out, rows.Err()
}

// lockRoleRows locks the target and every owner row in id order, so
// concurrent role changes queue instead of deadlocking. An empty role
// means the target does not exist.
const lockRoleRows = `
	WITH locked AS (
		SELECT id, role FROM users
		WHERE id = $1 OR role = 'owner'
		ORDER BY id
		FOR UPDATE
	)
	SELECT COALESCE((SELECT role FROM locked WHERE id = $1), ''),
	       (SELECT count(*) FROM locked WHERE role = 'owner')
`

// UpdateRole refuses to demote the last remaining owner.
func (r *UserRepository) UpdateRole(ctx context.Context, id string, role entity.Role) (*entity.User, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var (
		current entity.Role
		owners  int
	)
	if err := tx.QueryRow(ctx, lockRoleRows, id).Scan(&current, &owners); err != nil {
		return nil, fmt.Errorf("lock role rows: %w", mapErr(err))
	}
	if current == "" {
		return nil, repository.ErrNotFound
	}
	if current == entity.RoleOwner && role != entity.RoleOwner && owners <= 1 {
		return nil, repository.ErrLastOwner
	}

	u, err := scanUser(tx.QueryRow(ctx,
		`UPDATE users SET role = $2, updated_at = now() WHERE id = $1 RETURNING `+userColumns, id, string(role)))
	if err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return u, nil
}

var _ repository.UserRepository = (*UserRepository)(nil)
