package booking

// BookingStatus is the lifecycle state of a delivery booking.
type BookingStatus string

// Every lifecycle state a booking can be in. The stored column, the
// transition rules and the history entries all use this one set.
const (
	BookingStatusPending        BookingStatus = "Pending"
	BookingStatusConfirmed      BookingStatus = "Confirmed"
	BookingStatusPickedUp       BookingStatus = "Picked Up"
	BookingStatusInTransit      BookingStatus = "In Transit"
	BookingStatusOutForDelivery BookingStatus = "Out for Delivery"
	BookingStatusDelivered      BookingStatus = "Delivered"
	BookingStatusCancelled      BookingStatus = "Cancelled"
)

// allowedTransitions is the authoritative forward-only state machine.
// Cancelled is reachable from every non-terminal state; Delivered and
// Cancelled have no outgoing edges.
var allowedTransitions = map[BookingStatus][]BookingStatus{
	BookingStatusPending:        {BookingStatusConfirmed, BookingStatusCancelled},
	BookingStatusConfirmed:      {BookingStatusPickedUp, BookingStatusCancelled},
	BookingStatusPickedUp:       {BookingStatusInTransit, BookingStatusCancelled},
	BookingStatusInTransit:      {BookingStatusOutForDelivery, BookingStatusCancelled},
	BookingStatusOutForDelivery: {BookingStatusDelivered, BookingStatusCancelled},
	BookingStatusDelivered:      {},
	BookingStatusCancelled:      {},
}

func (bs BookingStatus) String() string {
	return string(bs)
}

func (bs BookingStatus) IsValid() bool {
	switch bs {
	case BookingStatusPending, BookingStatusConfirmed, BookingStatusPickedUp,
		BookingStatusInTransit, BookingStatusOutForDelivery,
		BookingStatusDelivered, BookingStatusCancelled:
		return true
	default:
		return false
	}
}

// IsTerminal returns true if the booking can never leave this state.
func (bs BookingStatus) IsTerminal() bool {
	return bs == BookingStatusDelivered || bs == BookingStatusCancelled
}

// CanTransitionTo reports whether the state machine permits moving from bs
// to next.
func (bs BookingStatus) CanTransitionTo(next BookingStatus) bool {
	for _, s := range allowedTransitions[bs] {
		if s == next {
			return true
		}
	}
	return false
}

// NextStatuses returns every state reachable from bs in one step.
func (bs BookingStatus) NextStatuses() []BookingStatus {
	return allowedTransitions[bs]
}

// GetAllBookingStatuses returns all valid booking statuses.
func GetAllBookingStatuses() []BookingStatus {
	return []BookingStatus{
		BookingStatusPending,
		BookingStatusConfirmed,
		BookingStatusPickedUp,
		BookingStatusInTransit,
		BookingStatusOutForDelivery,
		BookingStatusDelivered,
		BookingStatusCancelled,
	}
}
