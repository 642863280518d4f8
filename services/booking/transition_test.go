package booking

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	bookingModel "af-logistics/models/booking"
)

func createPendingBooking(t *testing.T, svc *Service, trackingID string) *bookingModel.Booking {
	t.Helper()

	req := validCreateRequest()
	req.TrackingID = trackingID
	created, err := svc.Create(req, "cust-1", "John Doe")
	require.NoError(t, err)
	return created
}

func TestTransitionWithRiderAssignment(t *testing.T) {
	svc := NewService(newTestDB(t))
	createPendingBooking(t, svc, "AFL001")

	assign := &RiderAssignment{ID: "rider-1", Name: "Mike"}
	updated, err := svc.Transition("AFL001", bookingModel.BookingStatusConfirmed, "", "rider-1", assign)
	require.NoError(t, err)

	assert.Equal(t, bookingModel.BookingStatusConfirmed, updated.Status)
	require.NotNil(t, updated.RiderID)
	assert.Equal(t, "rider-1", *updated.RiderID)
	require.NotNil(t, updated.RiderName)
	assert.Equal(t, "Mike", *updated.RiderName)

	require.Len(t, updated.StatusEvents, 2)
	assert.Equal(t, bookingModel.BookingStatusConfirmed, updated.StatusEvents[1].Status)
	assert.Equal(t, "Assigned to rider Mike", updated.StatusEvents[1].Note)
	assert.Equal(t, "rider-1", updated.StatusEvents[1].CreatedBy)
}

func TestTransitionDefaultNote(t *testing.T) {
	svc := NewService(newTestDB(t))
	createPendingBooking(t, svc, "AFL001")

	updated, err := svc.Transition("AFL001", bookingModel.BookingStatusCancelled, "", "admin-1", nil)
	require.NoError(t, err)

	require.Len(t, updated.StatusEvents, 2)
	assert.Equal(t, "Status updated to Cancelled", updated.StatusEvents[1].Note)
}

func TestTransitionCustomNote(t *testing.T) {
	svc := NewService(newTestDB(t))
	createPendingBooking(t, svc, "AFL001")

	updated, err := svc.Transition("AFL001", bookingModel.BookingStatusCancelled, "Customer requested cancellation", "admin-1", nil)
	require.NoError(t, err)

	assert.Equal(t, "Customer requested cancellation", updated.StatusEvents[1].Note)
}

func TestTransitionUnknownBooking(t *testing.T) {
	svc := NewService(newTestDB(t))

	_, err := svc.Transition("AFL999", bookingModel.BookingStatusConfirmed, "", "admin-1", nil)
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestTransitionInvalidStatus(t *testing.T) {
	svc := NewService(newTestDB(t))
	createPendingBooking(t, svc, "AFL001")

	_, err := svc.Transition("AFL001", bookingModel.BookingStatus("Teleported"), "", "admin-1", nil)
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestTransitionRejectsBackwardMove(t *testing.T) {
	svc := NewService(newTestDB(t))
	b := createPendingBooking(t, svc, "AFL001")

	// Walk the happy path to Delivered.
	path := []bookingModel.BookingStatus{
		bookingModel.BookingStatusConfirmed,
		bookingModel.BookingStatusPickedUp,
		bookingModel.BookingStatusInTransit,
		bookingModel.BookingStatusOutForDelivery,
		bookingModel.BookingStatusDelivered,
	}
	for _, status := range path {
		var assign *RiderAssignment
		if status == bookingModel.BookingStatusConfirmed {
			assign = &RiderAssignment{ID: "rider-1", Name: "Mike"}
		}
		_, err := svc.Transition("AFL001", status, "", "rider-1", assign)
		require.NoError(t, err)
	}

	_, err := svc.Transition("AFL001", bookingModel.BookingStatusPending, "", "admin-1", nil)
	assert.ErrorIs(t, err, ErrInvalidTransition)

	final, err := svc.FindByID(b.ID)
	require.NoError(t, err)
	assert.Equal(t, bookingModel.BookingStatusDelivered, final.Status)
	assert.Len(t, final.StatusEvents, len(path)+1)
}

func TestTerminalStatesHaveNoOutgoingEdges(t *testing.T) {
	svc := NewService(newTestDB(t))
	createPendingBooking(t, svc, "AFL001")

	_, err := svc.Transition("AFL001", bookingModel.BookingStatusCancelled, "", "admin-1", nil)
	require.NoError(t, err)

	for _, next := range bookingModel.GetAllBookingStatuses() {
		_, err := svc.Transition("AFL001", next, "", "admin-1", nil)
		assert.ErrorIs(t, err, ErrInvalidTransition, "Cancelled -> %s should be rejected", next)
	}
}

func TestTransitionSkipsStatuses(t *testing.T) {
	svc := NewService(newTestDB(t))
	createPendingBooking(t, svc, "AFL001")

	// Pending cannot jump straight to In Transit.
	_, err := svc.Transition("AFL001", bookingModel.BookingStatusInTransit, "", "admin-1", nil)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestAssignmentRequiresConfirmedTarget(t *testing.T) {
	svc := NewService(newTestDB(t))
	createPendingBooking(t, svc, "AFL001")

	assign := &RiderAssignment{ID: "rider-1", Name: "Mike"}
	_, err := svc.Transition("AFL001", bookingModel.BookingStatusCancelled, "", "rider-1", assign)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestAssignmentRejectedWhenRiderAlreadySet(t *testing.T) {
	svc := NewService(newTestDB(t))
	createPendingBooking(t, svc, "AFL001")

	assign := &RiderAssignment{ID: "rider-1", Name: "Mike"}
	_, err := svc.Transition("AFL001", bookingModel.BookingStatusConfirmed, "", "rider-1", assign)
	require.NoError(t, err)

	// A second booking for the same claim scenario: move it back to a state
	// where Confirmed is reachable is impossible, so use a fresh booking and
	// pre-seed the rider columns.
	b2 := createPendingBooking(t, svc, "AFL002")
	riderID, riderName := "rider-9", "Eleven"
	require.NoError(t, svc.DB.Model(&bookingModel.Booking{}).
		Where("id = ?", b2.ID).
		Updates(map[string]interface{}{"rider_id": riderID, "rider_name": riderName}).Error)

	other := &RiderAssignment{ID: "rider-2", Name: "Dustin"}
	_, err = svc.Transition("AFL002", bookingModel.BookingStatusConfirmed, "", "rider-2", other)
	assert.ErrorIs(t, err, ErrStatusConflict)
}

func TestTransitionStaleStatusConflict(t *testing.T) {
	svc := NewService(newTestDB(t))
	b := createPendingBooking(t, svc, "AFL001")

	// Simulate a concurrent writer moving the row between our read and write.
	require.NoError(t, svc.DB.Model(&bookingModel.Booking{}).
		Where("id = ?", b.ID).
		Update("status", bookingModel.BookingStatusCancelled).Error)

	// The engine read Pending via FindByRef just before this call would have
	// seen Cancelled, so CanTransitionTo rejects it outright.
	_, err := svc.Transition("AFL001", bookingModel.BookingStatusConfirmed, "", "admin-1", nil)
	assert.Error(t, err)

	// No history entry was appended for the failed attempt.
	reloaded, err := svc.FindByID(b.ID)
	require.NoError(t, err)
	assert.Len(t, reloaded.StatusEvents, 1)
}

func TestAutoAssignClaimsAllPending(t *testing.T) {
	svc := NewService(newTestDB(t))
	createPendingBooking(t, svc, "AFL001")
	createPendingBooking(t, svc, "AFL002")
	createPendingBooking(t, svc, "AFL003")

	claimed, err := svc.AutoAssign("rider-1", "Mike")
	require.NoError(t, err)
	assert.Len(t, claimed, 3)

	for _, b := range claimed {
		assert.Equal(t, bookingModel.BookingStatusConfirmed, b.Status)
		require.NotNil(t, b.RiderID)
		assert.Equal(t, "rider-1", *b.RiderID)
	}
}

func TestAutoAssignIsIdempotent(t *testing.T) {
	svc := NewService(newTestDB(t))
	createPendingBooking(t, svc, "AFL001")

	first, err := svc.AutoAssign("rider-1", "Mike")
	require.NoError(t, err)
	assert.Len(t, first, 1)

	second, err := svc.AutoAssign("rider-1", "Mike")
	require.NoError(t, err)
	assert.Empty(t, second)

	// A different rider finds nothing to claim either.
	third, err := svc.AutoAssign("rider-2", "Dustin")
	require.NoError(t, err)
	assert.Empty(t, third)

	b, err := svc.FindByTrackingID("AFL001")
	require.NoError(t, err)
	assert.Len(t, b.StatusEvents, 2)
}

func TestAutoAssignRequiresRiderIdentity(t *testing.T) {
	svc := NewService(newTestDB(t))

	_, err := svc.AutoAssign("", "Mike")
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.AutoAssign("rider-1", "")
	assert.ErrorIs(t, err, ErrValidation)
}
