package postgres

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestIsUniqueViolation(t *testing.T) {
	dup := fmt.Errorf("insert product: %w", &pgconn.PgError{Code: "23505", ConstraintName: "products_pkey"})
	assert.True(t, isUniqueViolation(dup))

	assert.False(t, isUniqueViolation(&pgconn.PgError{Code: "23503"}))
	assert.False(t, isUniqueViolation(errors.New("duplicate 23505 en el texto")))
	assert.Equal(t, "", sqlState(nil))
}
