package routes

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"af-logistics/constants"
	adminController "af-logistics/controllers/admin"
	authController "af-logistics/controllers/auth"
	bookingController "af-logistics/controllers/booking"
	riderController "af-logistics/controllers/rider"
	"af-logistics/logger"
	"af-logistics/middleware"
)

// SetupRoutes configures all API routes
func SetupRoutes(app *fiber.App, db *gorm.DB) {
	asyncLogger := logger.NewAsyncLogger(db)
	go asyncLogger.ProcessLog()

	authCtrl := authController.NewAuthController(db, asyncLogger)
	bookingCtrl := bookingController.NewBookingController(db, asyncLogger)
	riderCtrl := riderController.NewRiderController(db, asyncLogger)
	adminCtrl := adminController.NewAdminController(db, asyncLogger)

	api := app.Group("/api")

	// Public endpoints
	api.Post("/login", authCtrl.Login)
	api.Post("/accounts", authCtrl.Register)
	api.Get("/bookings/track/:trackingId", bookingCtrl.Track)

	api.Get("/accounts",
		middleware.RequirePermissions(constants.PermAdminFull),
		authCtrl.Accounts)

	// Booking lifecycle
	bookings := api.Group("/bookings")
	bookings.Post("/",
		middleware.RequirePermissions(constants.PermCustomerFull, constants.PermAdminFull),
		bookingCtrl.Store)
	bookings.Get("/",
		middleware.RequireAuthentication(),
		bookingCtrl.Index)
	bookings.Patch("/:id",
		middleware.RequirePermissions(constants.PermRiderFull, constants.PermAdminFull),
		bookingCtrl.UpdateStatus)

	// Rider surface
	rider := api.Group("/rider", middleware.RequirePermissions(constants.PermRiderFull))
	rider.Post("/auto-assign", riderCtrl.AutoAssign)
	rider.Get("/deliveries", riderCtrl.Deliveries)
	rider.Get("/stats", riderCtrl.Stats)

	// Admin surface
	adminGroup := api.Group("/admin", middleware.RequirePermissions(constants.PermAdminFull))
	adminGroup.Get("/stats", adminCtrl.Stats)
}
