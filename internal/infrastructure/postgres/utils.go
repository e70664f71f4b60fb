package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// isConstraintViolation violación de unicidad (23505) sobre un constraint o índice concreto.
func isConstraintViolation(err error, name string) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505" && pgErr.ConstraintName == name
}

// isUndefinedTable la tabla no existe todavía (42P01).
func isUndefinedTable(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "42P01"
}
