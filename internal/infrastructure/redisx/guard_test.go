package redisx_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Fulfillment-api/internal/application/fulfillment"
	"github.com/jhoicas/Fulfillment-api/internal/infrastructure/redisx"
)

var _ fulfillment.ImportGuard = (*redisx.Guard)(nil)

func TestImportKey(t *testing.T) {
	assert.Equal(t, "import:SHOPIFY:ORDER1", redisx.ImportKey("SHOPIFY", "ORDER1"))
	assert.Equal(t, "import:A%3AB:C", redisx.ImportKey("A:B", "C"))
	assert.NotEqual(t, redisx.ImportKey("A:B", "C"), redisx.ImportKey("A", "B:C"))
}

// Requiere TEST_REDIS_ADDR apuntando a un Redis desechable.
func TestGuard_ExclusionPorGrupo(t *testing.T) {
	addr := os.Getenv("TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("TEST_REDIS_ADDR no definido")
	}
	ctx := context.Background()
	rdb, err := redisx.New(ctx, addr, "", 0)
	require.NoError(t, err)
	t.Cleanup(func() { _ = rdb.Close() })

	g := redisx.NewGuard(rdb, 5*time.Second, zerolog.Nop())
	ext := uuid.NewString()

	release, ok, err := g.Acquire(ctx, "SHOPIFY", ext)
	require.NoError(t, err)
	require.True(t, ok)

	_, ok, err = g.Acquire(ctx, "SHOPIFY", ext)
	require.NoError(t, err)
	assert.False(t, ok, "el grupo está tomado")

	_, ok, err = g.Acquire(ctx, "ETSY", ext)
	require.NoError(t, err)
	assert.True(t, ok, "otro canal es otro grupo")

	release()
	release2, ok, err := g.Acquire(ctx, "SHOPIFY", ext)
	require.NoError(t, err)
	assert.True(t, ok)
	release2()
}
