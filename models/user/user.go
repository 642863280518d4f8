package user

import (
	"time"
)

// Roles an account can hold.
const (
	RoleAdmin    = "admin"
	RoleCustomer = "customer"
	RoleRider    = "rider"
)

// User is an account in one of the three roles. Passwords are stored as
// bcrypt hashes and never serialized.
type User struct {
	ID       uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Uuid     string `gorm:"type:varchar(64);not null;unique" json:"uuid"`
	Name     string `gorm:"type:varchar(255);not null" json:"name"`
	Email    string `gorm:"type:varchar(255);not null;unique" json:"email"`
	Password string `gorm:"type:varchar(255);not null" json:"-"`
	Role     string `gorm:"type:varchar(20);not null" json:"role"`
	Phone    string `gorm:"type:varchar(20)" json:"phone,omitempty"`
	Address  string `gorm:"type:text" json:"address,omitempty"`
	City     string `gorm:"type:varchar(100)" json:"city,omitempty"`
	State    string `gorm:"type:varchar(100)" json:"state,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// IsValidRole reports whether role is one of the known account roles.
func IsValidRole(role string) bool {
	return role == RoleAdmin || role == RoleCustomer || role == RoleRider
}
