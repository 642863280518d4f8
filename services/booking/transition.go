package booking

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"af-logistics/logger"
	bookingModel "af-logistics/models/booking"
)

// RiderAssignment carries the rider identity for the Pending -> Confirmed
// claim step. Both fields are set together, mirroring the paired
// rider_id/rider_name columns.
type RiderAssignment struct {
	ID   string
	Name string
}

// Transition applies one status change to the booking referenced by ref
// (numeric id or tracking id) and appends exactly one history entry.
//
// The requested status must be an enum member and the state machine must
// have an edge from the current status to it. The write is guarded by the
// status observed at read time: if a concurrent writer moved the booking
// first, nothing is written and ErrStatusConflict is returned, so history
// entries are never silently dropped.
func (s *Service) Transition(ref string, requested bookingModel.BookingStatus, note, actor string, assign *RiderAssignment) (*bookingModel.Booking, error) {
	b, err := s.FindByRef(ref)
	if err != nil {
		return nil, err
	}

	if !requested.IsValid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, requested)
	}
	if !b.Status.CanTransitionTo(requested) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, b.Status, requested)
	}

	if assign != nil {
		if assign.ID == "" || assign.Name == "" {
			return nil, fmt.Errorf("%w: rider id and name are required for assignment", ErrValidation)
		}
		if requested != bookingModel.BookingStatusConfirmed {
			return nil, fmt.Errorf("%w: rider assignment only applies to the Confirmed transition", ErrValidation)
		}
		if b.HasRider() {
			return nil, fmt.Errorf("%w: booking %s already has a rider", ErrStatusConflict, b.TrackingID)
		}
	}

	if note == "" {
		if assign != nil {
			note = fmt.Sprintf("Assigned to rider %s", assign.Name)
		} else {
			note = fmt.Sprintf("Status updated to %s", requested)
		}
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		updates := map[string]interface{}{
			"status":     requested,
			"updated_at": time.Now(),
		}

		q := tx.Model(&bookingModel.Booking{}).
			Where("id = ? AND status = ?", b.ID, b.Status)

		if assign != nil {
			// Compare-and-swap on the unassigned rider column so two
			// racing riders cannot both win the same booking.
			q = q.Where("rider_id IS NULL")
			updates["rider_id"] = assign.ID
			updates["rider_name"] = assign.Name
		}

		res := q.Updates(updates)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("%w: booking %s", ErrStatusConflict, b.TrackingID)
		}

		ev := bookingModel.StatusEvent{
			BookingID: b.ID,
			Status:    requested,
			Note:      note,
			CreatedBy: actor,
		}
		return tx.Create(&ev).Error
	})
	if err != nil {
		return nil, err
	}

	logger.Success(fmt.Sprintf("Booking %s moved to %s by %s", b.TrackingID, requested, actor))

	return s.FindByID(b.ID)
}

// AutoAssign claims every Pending, riderless booking for the requesting
// rider, moving each to Confirmed. Idempotent per booking: anything that
// already has a rider is skipped, and a booking lost to a concurrent rider
// is skipped without appending history.
func (s *Service) AutoAssign(riderID, riderName string) ([]bookingModel.Booking, error) {
	if riderID == "" || riderName == "" {
		return nil, fmt.Errorf("%w: rider id and name are required", ErrValidation)
	}

	var pending []bookingModel.Booking
	err := s.DB.
		Where("status = ? AND rider_id IS NULL", bookingModel.BookingStatusPending).
		Find(&pending).Error
	if err != nil {
		return nil, err
	}

	assign := &RiderAssignment{ID: riderID, Name: riderName}
	claimed := make([]bookingModel.Booking, 0, len(pending))

	for i := range pending {
		ref := fmt.Sprintf("%d", pending[i].ID)
		updated, err := s.Transition(ref, bookingModel.BookingStatusConfirmed, "", riderID, assign)
		if err != nil {
			// Another rider won the race for this booking; move on.
			if isSkippableClaimFailure(err) {
				continue
			}
			return claimed, err
		}
		claimed = append(claimed, *updated)
	}

	return claimed, nil
}

func isSkippableClaimFailure(err error) bool {
	return errors.Is(err, ErrStatusConflict) || errors.Is(err, ErrInvalidTransition)
}
