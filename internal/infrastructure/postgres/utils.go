package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// SQLSTATE que se traducen a errores de dominio.
const sqlstateUniqueViolation = "23505"

// sqlState devuelve el código SQLSTATE de un error de PostgreSQL ("" si no lo es).
func sqlState(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

// isUniqueViolation: código de producto o id de movimiento repetido.
func isUniqueViolation(err error) bool {
	return sqlState(err) == sqlstateUniqueViolation
}
