package services_test

import (
	"testing"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/domain/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func deliveredOrder(t *testing.T, deliveredAt time.Time) *order.Order {
	t.Helper()

	o, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), "", deliveredAt.Add(-3*time.Hour))
	require.NoError(t, err)
	require.NoError(t, o.Assign(kernel.NewUUID(), deliveredAt.Add(-2*time.Hour)))
	require.NoError(t, o.MarkPickedUp(deliveredAt.Add(-time.Hour)))
	require.NoError(t, o.MarkInTransit())
	require.NoError(t, o.MarkOutForDelivery())
	require.NoError(t, o.MarkDelivered(deliveredAt))
	return o
}

func TestReturnPolicy_CheckReturn(t *testing.T) {
	deliveredAt := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

	t.Run("accepts_return_within_window", func(t *testing.T) {
		policy := services.NewReturnPolicy(72 * time.Hour)
		o := deliveredOrder(t, deliveredAt)

		require.NoError(t, policy.CheckReturn(o, deliveredAt.Add(24*time.Hour)))
	})

	t.Run("rejects_return_after_window", func(t *testing.T) {
		policy := services.NewReturnPolicy(72 * time.Hour)
		o := deliveredOrder(t, deliveredAt)

		err := policy.CheckReturn(o, deliveredAt.Add(73*time.Hour))
		require.ErrorIs(t, err, services.ErrReturnWindowClosed)
	})

	t.Run("zero_window_means_unbounded", func(t *testing.T) {
		policy := services.NewReturnPolicy(0)
		o := deliveredOrder(t, deliveredAt)

		require.NoError(t, policy.CheckReturn(o, deliveredAt.Add(365*24*time.Hour)))
	})

	t.Run("non_delivered_orders_are_not_time_bounded", func(t *testing.T) {
		policy := services.NewReturnPolicy(time.Nanosecond)
		o, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), "", deliveredAt)
		require.NoError(t, err)

		require.NoError(t, policy.CheckReturn(o, deliveredAt.Add(1000*time.Hour)))
	})

	t.Run("negative_window_is_normalized_to_unbounded", func(t *testing.T) {
		policy := services.NewReturnPolicy(-time.Hour)
		assert.Zero(t, policy.Window())
	})

	t.Run("rejects_unconstructed_order", func(t *testing.T) {
		policy := services.NewReturnPolicy(time.Hour)
		var o order.Order
		require.Error(t, policy.CheckReturn(&o, time.Now()))
	})
}
