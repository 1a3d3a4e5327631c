package domain_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Fulfillment-api/internal/domain"
)

func TestPersistence_EnvuelveCausaYSentinel(t *testing.T) {
	cause := errors.New("connection reset")
	err := fmt.Errorf("guardar orden: %w", domain.Persistence("insert order", cause))

	assert.ErrorIs(t, err, domain.ErrPersistence)
	assert.ErrorIs(t, err, cause)
	assert.NotErrorIs(t, err, domain.ErrNotFound)

	var pe *domain.PersistenceError
	assert.True(t, errors.As(err, &pe))
	assert.Equal(t, "insert order", pe.Op)
}

func TestPersistence_NilNoEnvuelve(t *testing.T) {
	assert.NoError(t, domain.Persistence("op", nil))
}

func TestValidation_ConservaSentinel(t *testing.T) {
	err := domain.Validation("faltan columnas: %s", "sku")
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Contains(t, err.Error(), "faltan columnas: sku")
}
