package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/cmi-stock/internal/domain/entity"
	"github.com/jhoicas/cmi-stock/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo usuarios en la tabla app_users (username, password_hash, role).
// Se usa cuando la fuente es Postgres; si la tabla no existe se recurre al fallback.
type UserRepo struct {
	pool     *pgxpool.Pool
	fallback repository.UserRepository
}

// NewUserRepository construye el adaptador. fallback puede ser nil.
func NewUserRepository(pool *pgxpool.Pool, fallback repository.UserRepository) *UserRepo {
	return &UserRepo{pool: pool, fallback: fallback}
}

// FindByUsername devuelve nil, nil si el usuario no existe.
func (r *UserRepo) FindByUsername(username string) (*entity.User, error) {
	query := `SELECT username, password_hash, role FROM app_users WHERE username = $1`
	var u entity.User
	err := r.pool.QueryRow(context.Background(), query, username).Scan(&u.Username, &u.PasswordHash, &u.Role)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) || isUndefinedTable(err) {
			if r.fallback != nil {
				return r.fallback.FindByUsername(username)
			}
			return nil, nil
		}
		return nil, fmt.Errorf("get user by username: %w", err)
	}
	return &u, nil
}
