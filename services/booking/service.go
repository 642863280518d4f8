package booking

import (
	"errors"
	"fmt"
	"strconv"

	"gorm.io/gorm"

	bookingModel "af-logistics/models/booking"
	bookingTypes "af-logistics/types/booking"
	"af-logistics/utils"
)

// Service owns the booking record store: creation, lookup and the status
// transition engine (transition.go).
type Service struct {
	DB *gorm.DB
}

// NewService creates a new booking service
func NewService(db *gorm.DB) *Service {
	return &Service{DB: db}
}

// Create persists a new booking for the given customer. Status is forced to
// Pending and the status history is seeded with exactly one creation entry,
// in the same transaction. The price is computed server-side from delivery
// type and weight; a client-supplied price is ignored.
func (s *Service) Create(req bookingTypes.BookingCreateRequest, customerID, customerName string) (*bookingModel.Booking, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrValidation, err.Error())
	}
	if customerID == "" || customerName == "" {
		return nil, fmt.Errorf("%w: customer identity is required", ErrValidation)
	}

	price, err := utils.CalculatePrice(req.DeliveryType, req.PackageWeight)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrValidation, err.Error())
	}

	trackingID := req.TrackingID
	if trackingID == "" {
		trackingID = utils.GenerateTrackingID()
	}

	// Reject duplicates without touching the existing record.
	var existing bookingModel.Booking
	err = s.DB.Where("tracking_id = ?", trackingID).First(&existing).Error
	if err == nil {
		return nil, fmt.Errorf("%w: %s", ErrDuplicateTracking, trackingID)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	b := bookingModel.Booking{
		TrackingID:   trackingID,
		CustomerID:   customerID,
		CustomerName: customerName,
		Status:       bookingModel.BookingStatusPending,

		PackageType:        req.PackageType,
		PackageWeight:      req.PackageWeight,
		PackageSize:        req.PackageSize,
		PackageValue:       req.PackageValue,
		PackageDescription: req.PackageDescription,

		PickupAddress: req.PickupAddress,
		PickupCity:    req.PickupCity,
		PickupState:   req.PickupState,
		PickupDate:    req.PickupDate,
		PickupTime:    req.PickupTime,

		DeliveryAddress: req.DeliveryAddress,
		DeliveryCity:    req.DeliveryCity,
		DeliveryState:   req.DeliveryState,
		DeliveryType:    req.DeliveryType,

		SenderName:    req.SenderName,
		SenderPhone:   req.SenderPhone,
		SenderEmail:   req.SenderEmail,
		ReceiverName:  req.ReceiverName,
		ReceiverPhone: req.ReceiverPhone,
		ReceiverEmail: req.ReceiverEmail,

		SpecialInstructions: req.SpecialInstructions,
		Price:               price,
	}

	// Use DB.Transaction for automatic rollback on error
	err = s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&b).Error; err != nil {
			return err
		}

		ev := bookingModel.StatusEvent{
			BookingID: b.ID,
			Status:    bookingModel.BookingStatusPending,
			Note:      "Booking created",
			CreatedBy: customerID,
		}
		return tx.Create(&ev).Error
	})
	if err != nil {
		return nil, err
	}

	return s.FindByID(b.ID)
}

// FindByID loads a booking with its full status history.
func (s *Service) FindByID(id uint) (*bookingModel.Booking, error) {
	var b bookingModel.Booking
	err := s.withHistory(s.DB).First(&b, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// FindByTrackingID loads a booking by its external tracking key.
func (s *Service) FindByTrackingID(trackingID string) (*bookingModel.Booking, error) {
	var b bookingModel.Booking
	err := s.withHistory(s.DB).Where("tracking_id = ?", trackingID).First(&b).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// FindByRef resolves a booking reference that may be either a numeric id or
// a tracking id.
func (s *Service) FindByRef(ref string) (*bookingModel.Booking, error) {
	if id, err := strconv.ParseUint(ref, 10, 64); err == nil {
		b, err := s.FindByID(uint(id))
		if err == nil || !errors.Is(err, ErrBookingNotFound) {
			return b, err
		}
	}
	return s.FindByTrackingID(ref)
}

// List returns bookings matching the filter, newest-created first. Read-only.
func (s *Service) List(q bookingTypes.ListQuery) ([]bookingModel.Booking, error) {
	db := s.withHistory(s.DB)

	if q.CustomerID != "" {
		db = db.Where("customer_id = ?", q.CustomerID)
	}
	if q.RiderID != "" {
		db = db.Where("rider_id = ?", q.RiderID)
	}
	if q.TrackingID != "" {
		db = db.Where("tracking_id = ?", q.TrackingID)
	}
	if q.Status != "" {
		status := bookingModel.BookingStatus(q.Status)
		if !status.IsValid() {
			return nil, fmt.Errorf("%w: %s", ErrInvalidStatus, q.Status)
		}
		db = db.Where("status = ?", status)
	}

	var bookings []bookingModel.Booking
	if err := db.Order("created_at DESC").Find(&bookings).Error; err != nil {
		return nil, err
	}
	return bookings, nil
}

// withHistory preloads the status history in insertion order.
func (s *Service) withHistory(db *gorm.DB) *gorm.DB {
	return db.Preload("StatusEvents", func(tx *gorm.DB) *gorm.DB {
		return tx.Order("booking_status_events.id ASC")
	})
}
