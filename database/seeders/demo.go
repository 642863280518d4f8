package seeders

import (
	"log"

	"github.com/google/uuid"
	"gorm.io/gorm"

	userModel "af-logistics/models/user"
	bookingService "af-logistics/services/booking"
	bookingTypes "af-logistics/types/booking"
	"af-logistics/utils"
)

// SeedDemoUsers inserts one account per role for local development. Existing
// emails are left untouched.
func SeedDemoUsers(db *gorm.DB) {
	log.Printf("🔍 Checking demo accounts...")

	users := []struct {
		Name     string
		Email    string
		Password string
		Role     string
		Phone    string
		City     string
	}{
		{Name: "Admin User", Email: "admin@af-logistics.test", Password: "admin123", Role: userModel.RoleAdmin, Phone: "01700000001", City: "Dhaka"},
		{Name: "John Doe", Email: "customer@af-logistics.test", Password: "customer123", Role: userModel.RoleCustomer, Phone: "01700000002", City: "Dhaka"},
		{Name: "Mike Wheeler", Email: "rider@af-logistics.test", Password: "rider123", Role: userModel.RoleRider, Phone: "01700000003", City: "Dhaka"},
	}

	for _, u := range users {
		var existing userModel.User
		if err := db.Where("email = ?", u.Email).First(&existing).Error; err == nil {
			continue
		}

		hash, err := utils.HashPassword(u.Password)
		if err != nil {
			log.Printf("❌ Failed to hash password for %s: %v", u.Email, err)
			continue
		}

		account := userModel.User{
			Uuid:     uuid.NewString(),
			Name:     u.Name,
			Email:    u.Email,
			Password: hash,
			Role:     u.Role,
			Phone:    u.Phone,
			City:     u.City,
		}
		if err := db.Create(&account).Error; err != nil {
			log.Printf("❌ Failed to seed account %s: %v", u.Email, err)
			continue
		}
		log.Printf("✅ Seeded %s account %s", u.Role, u.Email)
	}
}

// SeedDemoBookings creates a handful of sample bookings for the demo
// customer. Bookings go through the booking service so pricing, tracking ids
// and the initial history entry behave exactly as in production.
func SeedDemoBookings(db *gorm.DB) {
	log.Printf("🔍 Checking demo bookings...")

	var customer userModel.User
	if err := db.Where("email = ?", "customer@af-logistics.test").First(&customer).Error; err != nil {
		log.Printf("⚠️ Demo customer missing, skipping booking seed")
		return
	}

	svc := bookingService.NewService(db)

	existing, err := svc.List(bookingTypes.ListQuery{CustomerID: customer.Uuid})
	if err != nil {
		log.Printf("❌ Failed to check existing demo bookings: %v", err)
		return
	}
	if len(existing) > 0 {
		return
	}

	requests := []bookingTypes.BookingCreateRequest{
		{
			PackageType:        "documents",
			PackageWeight:      0.5,
			PackageSize:        "small",
			PackageDescription: "Contract papers",
			PickupAddress:      "House 12, Road 5, Dhanmondi",
			PickupCity:         "Dhaka",
			PickupState:        "Dhaka",
			PickupDate:         "2026-09-01",
			PickupTime:         "10:00",
			DeliveryAddress:    "Plot 7, Sector 4, Uttara",
			DeliveryCity:       "Dhaka",
			DeliveryState:      "Dhaka",
			DeliveryType:       "express",
			SenderName:         customer.Name,
			SenderPhone:        customer.Phone,
			ReceiverName:       "Rahim Uddin",
			ReceiverPhone:      "01811111111",
		},
		{
			PackageType:        "parcel",
			PackageWeight:      8,
			PackageSize:        "large",
			PackageDescription: "Spare machine parts",
			PickupAddress:      "Shop 3, New Market",
			PickupCity:         "Dhaka",
			PickupState:        "Dhaka",
			PickupDate:         "2026-09-02",
			PickupTime:         "14:00",
			DeliveryAddress:    "House 45, Agrabad",
			DeliveryCity:       "Chattogram",
			DeliveryState:      "Chattogram",
			DeliveryType:       "standard",
			SenderName:         customer.Name,
			SenderPhone:        customer.Phone,
			ReceiverName:       "Karim Ahmed",
			ReceiverPhone:      "01822222222",
		},
		{
			PackageType:        "fragile",
			PackageWeight:      2,
			PackageSize:        "medium",
			PackageDescription: "Glassware set",
			PickupAddress:      "Level 4, Bashundhara City",
			PickupCity:         "Dhaka",
			PickupState:        "Dhaka",
			PickupDate:         "2026-09-03",
			PickupTime:         "09:30",
			DeliveryAddress:    "House 9, Zindabazar",
			DeliveryCity:       "Sylhet",
			DeliveryState:      "Sylhet",
			DeliveryType:       "economy",
			SenderName:         customer.Name,
			SenderPhone:        customer.Phone,
			ReceiverName:       "Fatema Begum",
			ReceiverPhone:      "01833333333",
		},
	}

	for _, req := range requests {
		created, err := svc.Create(req, customer.Uuid, customer.Name)
		if err != nil {
			log.Printf("❌ Failed to seed booking: %v", err)
			continue
		}
		log.Printf("✅ Seeded booking %s", created.TrackingID)
	}
}
