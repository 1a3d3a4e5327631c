package order_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Fulfillment-api/internal/domain/entity"
	"github.com/jhoicas/Fulfillment-api/internal/domain/order"
)

func TestCanTransition(t *testing.T) {
	cases := []struct {
		from, to entity.OrderStatus
		ok       bool
	}{
		{entity.OrderStatusPending, entity.OrderStatusInProgress, true},
		{entity.OrderStatusPending, entity.OrderStatusShipped, true},
		{entity.OrderStatusInProgress, entity.OrderStatusShipped, true},
		{entity.OrderStatusInProgress, entity.OrderStatusPending, false},
		{entity.OrderStatusShipped, entity.OrderStatusInProgress, false},
		{entity.OrderStatusShipped, entity.OrderStatusPending, false},
		{entity.OrderStatusPending, entity.OrderStatusPending, false},
		{entity.OrderStatusPending, entity.OrderStatusDelivered, false},
		{entity.OrderStatusPending, entity.OrderStatusCancelled, false},
		{entity.OrderStatusCancelled, entity.OrderStatusShipped, false},
	}
	for _, c := range cases {
		assert.Equal(t, c.ok, order.CanTransition(c.from, c.to), "%s -> %s", c.from, c.to)
	}
}

func TestParseStatus(t *testing.T) {
	st, ok := order.ParseStatus(" shipped ")
	assert.True(t, ok)
	assert.Equal(t, entity.OrderStatusShipped, st)

	st, ok = order.ParseStatus("delivered")
	assert.True(t, ok)
	assert.Equal(t, entity.OrderStatusDelivered, st)

	_, ok = order.ParseStatus("LOST")
	assert.False(t, ok)
}

func TestIsTerminal(t *testing.T) {
	assert.True(t, order.IsTerminal(entity.OrderStatusShipped))
	assert.True(t, order.IsTerminal(entity.OrderStatusCancelled))
	assert.False(t, order.IsTerminal(entity.OrderStatusPending))
	assert.False(t, order.IsTerminal("UNKNOWN"))
}
