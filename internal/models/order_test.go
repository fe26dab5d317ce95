package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOrderStatusTransitions(t *testing.T) {
	cases := []struct {
		from, to OrderStatus
		allowed  bool
	}{
		{OrderProcessing, OrderShipped, true},
		{OrderProcessing, OrderCancelled, true},
		{OrderProcessing, OrderDelivered, false},
		{OrderShipped, OrderDelivered, true},
		{OrderShipped, OrderCancelled, false},
		{OrderShipped, OrderProcessing, false},
		{OrderDelivered, OrderCancelled, false},
		{OrderCancelled, OrderProcessing, false},
		{OrderProcessing, OrderProcessing, true}, // no-op
	}

	for _, tc := range cases {
		assert.Equalf(t, tc.allowed, tc.from.CanTransitionTo(tc.to),
			"%s -> %s", tc.from, tc.to)
	}
}

func TestOrderStatusValid(t *testing.T) {
	assert.True(t, OrderProcessing.Valid())
	assert.True(t, OrderCancelled.Valid())
	assert.False(t, OrderStatus("refunded").Valid())
	assert.False(t, OrderStatus("").Valid())

	assert.True(t, PaymentPaid.Valid())
	assert.False(t, PaymentStatus("chargeback").Valid())
}
