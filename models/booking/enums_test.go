package booking

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBookingStatusIsValid(t *testing.T) {
	for _, status := range GetAllBookingStatuses() {
		assert.True(t, status.IsValid(), "%s should be valid", status)
	}

	assert.False(t, BookingStatus("").IsValid())
	assert.False(t, BookingStatus("Teleported").IsValid())
	assert.False(t, BookingStatus("pending").IsValid(), "status values are case sensitive")
}

func TestBookingStatusIsTerminal(t *testing.T) {
	assert.True(t, BookingStatusDelivered.IsTerminal())
	assert.True(t, BookingStatusCancelled.IsTerminal())

	for _, status := range []BookingStatus{
		BookingStatusPending, BookingStatusConfirmed, BookingStatusPickedUp,
		BookingStatusInTransit, BookingStatusOutForDelivery,
	} {
		assert.False(t, status.IsTerminal(), "%s should not be terminal", status)
	}
}

func TestForwardPath(t *testing.T) {
	path := []BookingStatus{
		BookingStatusPending,
		BookingStatusConfirmed,
		BookingStatusPickedUp,
		BookingStatusInTransit,
		BookingStatusOutForDelivery,
		BookingStatusDelivered,
	}

	for i := 0; i < len(path)-1; i++ {
		assert.True(t, path[i].CanTransitionTo(path[i+1]),
			"%s -> %s should be allowed", path[i], path[i+1])
	}

	// No backward edges anywhere on the path.
	for i := 1; i < len(path); i++ {
		for j := 0; j < i; j++ {
			assert.False(t, path[i].CanTransitionTo(path[j]),
				"%s -> %s should be rejected", path[i], path[j])
		}
	}
}

func TestCancellableFromEveryNonTerminalState(t *testing.T) {
	for _, status := range GetAllBookingStatuses() {
		if status.IsTerminal() {
			assert.False(t, status.CanTransitionTo(BookingStatusCancelled))
			continue
		}
		assert.True(t, status.CanTransitionTo(BookingStatusCancelled),
			"%s should be cancellable", status)
	}
}

func TestTerminalStatesHaveNoNextStatuses(t *testing.T) {
	assert.Empty(t, BookingStatusDelivered.NextStatuses())
	assert.Empty(t, BookingStatusCancelled.NextStatuses())
}

func TestNoSkippingStates(t *testing.T) {
	assert.False(t, BookingStatusPending.CanTransitionTo(BookingStatusPickedUp))
	assert.False(t, BookingStatusPending.CanTransitionTo(BookingStatusDelivered))
	assert.False(t, BookingStatusConfirmed.CanTransitionTo(BookingStatusOutForDelivery))
}

func TestSelfTransitionsRejected(t *testing.T) {
	for _, status := range GetAllBookingStatuses() {
		assert.False(t, status.CanTransitionTo(status),
			"%s -> %s should be rejected", status, status)
	}
}
