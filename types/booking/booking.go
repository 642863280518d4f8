package booking

import (
	"fmt"
)

// BookingCreateRequest represents the request payload for creating a booking.
// TrackingID is optional; the server generates one when it is absent. Status,
// price and history are always server-assigned.
type BookingCreateRequest struct {
	TrackingID string `json:"tracking_id" validate:"omitempty,max=32"`

	PackageType        string  `json:"package_type" validate:"required,min=1,max=100"`
	PackageWeight      float64 `json:"package_weight" validate:"required,gt=0"`
	PackageSize        string  `json:"package_size" validate:"required,min=1,max=50"`
	PackageValue       float64 `json:"package_value" validate:"omitempty,gte=0"`
	PackageDescription string  `json:"package_description" validate:"required,min=1"`

	PickupAddress string `json:"pickup_address" validate:"required,min=1"`
	PickupCity    string `json:"pickup_city" validate:"required,min=1,max=100"`
	PickupState   string `json:"pickup_state" validate:"required,min=1,max=100"`
	PickupDate    string `json:"pickup_date" validate:"required"`
	PickupTime    string `json:"pickup_time" validate:"required"`

	DeliveryAddress string `json:"delivery_address" validate:"required,min=1"`
	DeliveryCity    string `json:"delivery_city" validate:"required,min=1,max=100"`
	DeliveryState   string `json:"delivery_state" validate:"required,min=1,max=100"`
	DeliveryType    string `json:"delivery_type" validate:"required,oneof=express standard economy"`

	SenderName    string `json:"sender_name" validate:"required,min=1,max=255"`
	SenderPhone   string `json:"sender_phone" validate:"required"`
	SenderEmail   string `json:"sender_email" validate:"omitempty,email"`
	ReceiverName  string `json:"receiver_name" validate:"required,min=1,max=255"`
	ReceiverPhone string `json:"receiver_phone" validate:"required"`
	ReceiverEmail string `json:"receiver_email" validate:"omitempty,email"`

	SpecialInstructions string `json:"special_instructions"`
}

func (b BookingCreateRequest) Validate() error {
	if b.PackageType == "" {
		return fmt.Errorf("package_type is required")
	}
	if b.PackageWeight <= 0 {
		return fmt.Errorf("package_weight must be greater than zero")
	}
	if b.PackageSize == "" {
		return fmt.Errorf("package_size is required")
	}
	if b.PackageDescription == "" {
		return fmt.Errorf("package_description is required")
	}
	if b.PickupAddress == "" || b.PickupCity == "" || b.PickupState == "" {
		return fmt.Errorf("pickup address, city and state are required")
	}
	if b.PickupDate == "" || b.PickupTime == "" {
		return fmt.Errorf("pickup date and time are required")
	}
	if b.DeliveryAddress == "" || b.DeliveryCity == "" || b.DeliveryState == "" {
		return fmt.Errorf("delivery address, city and state are required")
	}
	if b.DeliveryType != "express" && b.DeliveryType != "standard" && b.DeliveryType != "economy" {
		return fmt.Errorf("delivery_type must be one of 'express', 'standard' or 'economy'")
	}
	if b.SenderName == "" || b.SenderPhone == "" {
		return fmt.Errorf("sender name and phone are required")
	}
	if b.ReceiverName == "" || b.ReceiverPhone == "" {
		return fmt.Errorf("receiver name and phone are required")
	}
	return nil
}

// StatusUpdateRequest represents the request payload for a status transition.
// StatusNote is folded into the history entry and never stored as a booking
// field. RiderID/RiderName are only honored for the Pending -> Confirmed
// assignment step.
type StatusUpdateRequest struct {
	Status     string `json:"status" validate:"required"`
	StatusNote string `json:"status_note" validate:"omitempty,max=500"`
	RiderID    string `json:"rider_id" validate:"omitempty,max=64"`
	RiderName  string `json:"rider_name" validate:"omitempty,max=255"`
}

func (r StatusUpdateRequest) Validate() error {
	if r.Status == "" {
		return fmt.Errorf("status is required")
	}
	if (r.RiderID == "") != (r.RiderName == "") {
		return fmt.Errorf("rider_id and rider_name must be provided together")
	}
	return nil
}

// ListQuery is the filter surface of the read-only query layer.
type ListQuery struct {
	CustomerID string `query:"customer_id"`
	RiderID    string `query:"rider_id"`
	TrackingID string `query:"tracking_id"`
	Status     string `query:"status"`
}
