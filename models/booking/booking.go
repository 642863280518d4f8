package booking

import (
	"time"
)

// Booking represents one delivery request. TrackingID is the externally
// visible key; CustomerID/CustomerName are immutable after creation and
// RiderID/RiderName stay nil until a rider claims the booking.
type Booking struct {
	ID uint `gorm:"primaryKey;autoIncrement" json:"id"`

	TrackingID   string  `gorm:"type:varchar(32);not null;unique" json:"tracking_id"`
	CustomerID   string  `gorm:"type:varchar(64);not null;index" json:"customer_id"`
	CustomerName string  `gorm:"type:varchar(255);not null" json:"customer_name"`
	RiderID      *string `gorm:"type:varchar(64);index" json:"rider_id"`
	RiderName    *string `gorm:"type:varchar(255)" json:"rider_name"`

	Status BookingStatus `gorm:"type:varchar(30);not null;index" json:"status"`

	// Package details
	PackageType        string  `gorm:"type:varchar(100);not null" json:"package_type"`
	PackageWeight      float64 `gorm:"not null" json:"package_weight"`
	PackageSize        string  `gorm:"type:varchar(50);not null" json:"package_size"`
	PackageValue       float64 `gorm:"default:0" json:"package_value"`
	PackageDescription string  `gorm:"type:text;not null" json:"package_description"`

	// Pickup details
	PickupAddress string `gorm:"type:text;not null" json:"pickup_address"`
	PickupCity    string `gorm:"type:varchar(100);not null" json:"pickup_city"`
	PickupState   string `gorm:"type:varchar(100);not null" json:"pickup_state"`
	PickupDate    string `gorm:"type:varchar(20);not null" json:"pickup_date"`
	PickupTime    string `gorm:"type:varchar(20);not null" json:"pickup_time"`

	// Delivery details
	DeliveryAddress string `gorm:"type:text;not null" json:"delivery_address"`
	DeliveryCity    string `gorm:"type:varchar(100);not null" json:"delivery_city"`
	DeliveryState   string `gorm:"type:varchar(100);not null" json:"delivery_state"`
	DeliveryType    string `gorm:"type:varchar(20);not null" json:"delivery_type"`

	// Contact details
	SenderName    string `gorm:"type:varchar(255);not null" json:"sender_name"`
	SenderPhone   string `gorm:"type:varchar(20);not null" json:"sender_phone"`
	SenderEmail   string `gorm:"type:varchar(255)" json:"sender_email"`
	ReceiverName  string `gorm:"type:varchar(255);not null" json:"receiver_name"`
	ReceiverPhone string `gorm:"type:varchar(20);not null" json:"receiver_phone"`
	ReceiverEmail string `gorm:"type:varchar(255)" json:"receiver_email"`

	SpecialInstructions string  `gorm:"type:text" json:"special_instructions"`
	Price               float64 `gorm:"not null" json:"price"`

	// Append-only audit trail, oldest first.
	StatusEvents []StatusEvent `gorm:"foreignKey:BookingID" json:"status_history"`

	CreatedAt time.Time `gorm:"autoCreateTime;index" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// HasRider reports whether the booking has been claimed. RiderID and
// RiderName are set and cleared together.
func (b *Booking) HasRider() bool {
	return b.RiderID != nil && *b.RiderID != ""
}

// CurrentStatusEvent returns the newest history entry, or nil for a booking
// that has not been persisted yet.
func (b *Booking) CurrentStatusEvent() *StatusEvent {
	if len(b.StatusEvents) == 0 {
		return nil
	}
	return &b.StatusEvents[len(b.StatusEvents)-1]
}
