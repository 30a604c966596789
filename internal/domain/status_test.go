package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInitialStatus(t *testing.T) {
	assert.Equal(t, StatusPaid, InitialStatus(FlowCart))
	assert.Equal(t, StatusPending, InitialStatus(FlowBuyNow))
}

func TestOrderStatusTransitions(t *testing.T) {
	tests := []struct {
		name    string
		from    OrderStatus
		to      OrderStatus
		allowed bool
	}{
		{"kitchen_accepts_pending", StatusPending, StatusPreparing, true},
		{"preparing_to_ready", StatusPreparing, StatusReady, true},
		{"ready_to_served", StatusReady, StatusServed, true},
		{"pending_cancellable", StatusPending, StatusCancelled, true},
		{"served_cancellable", StatusServed, StatusCancelled, true},
		{"no_skipping_preparing", StatusPending, StatusReady, false},
		{"no_backwards", StatusReady, StatusPreparing, false},
		{"paid_is_terminal", StatusPaid, StatusPreparing, false},
		{"paid_not_cancellable", StatusPaid, StatusCancelled, false},
		{"cancelled_is_terminal", StatusCancelled, StatusPending, false},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			assert.Equal(t, testCase.allowed, testCase.from.CanTransitionTo(testCase.to))
		})
	}
}

func TestOrderStatusTerminal(t *testing.T) {
	assert.True(t, StatusPaid.Terminal())
	assert.True(t, StatusCancelled.Terminal())
	assert.False(t, StatusPending.Terminal())
	assert.False(t, StatusServed.Terminal())
}

func TestOrderStatusValid(t *testing.T) {
	assert.True(t, StatusPreparing.Valid())
	assert.False(t, OrderStatus("delivered").Valid())
}
