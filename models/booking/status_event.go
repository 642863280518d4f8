package booking

import (
	"time"
)

// StatusEvent is one entry of a booking's status history. Rows are only ever
// inserted, exactly one per status change plus the creation entry.
type StatusEvent struct {
	ID uint `gorm:"primaryKey;autoIncrement" json:"-"`

	// Foreign key for booking relationship
	BookingID uint `gorm:"not null;index" json:"-"`

	Status    BookingStatus `gorm:"type:varchar(30);not null" json:"status"`
	Note      string        `gorm:"type:text" json:"note"`
	CreatedBy string        `gorm:"type:varchar(255)" json:"created_by,omitempty"`
	Timestamp time.Time     `gorm:"autoCreateTime" json:"timestamp"`
}

// TableName sets the table name for the StatusEvent model
func (StatusEvent) TableName() string {
	return "booking_status_events"
}
