package postgres

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Fulfillment-api/internal/domain/entity"
)

func TestIsUniqueViolation(t *testing.T) {
	dup := &pgconn.PgError{Code: "23505", ConstraintName: constraintOrderCode}
	assert.True(t, isUniqueViolation(dup))
	assert.True(t, isUniqueViolation(fmt.Errorf("insert order: %w", dup)))
	assert.False(t, isUniqueViolation(&pgconn.PgError{Code: "23503"}))
	assert.False(t, isUniqueViolation(errors.New("23505 en el texto no basta")))
}

func TestViolatedConstraint(t *testing.T) {
	assert.Equal(t, constraintOrderExternalID, violatedConstraint(&pgconn.PgError{Code: "23505", ConstraintName: constraintOrderExternalID}))
	assert.Equal(t, "", violatedConstraint(errors.New("connection reset")))
}

func TestBOMParamNuncaNulo(t *testing.T) {
	assert.NotNil(t, bomParam(nil))
	bom := []entity.BOMLine{{MaterialID: "m1", Qty: 2}}
	assert.Equal(t, bom, bomParam(bom))
}

func TestSKUList(t *testing.T) {
	assert.Equal(t, []string{"A", "B"}, skuList([]string{" A ", "B", "A", ""}))
}
