package rider

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/jinzhu/now"
	"gorm.io/gorm"

	"af-logistics/logger"
	bookingModel "af-logistics/models/booking"
	bookingService "af-logistics/services/booking"
	"af-logistics/types"
	bookingTypes "af-logistics/types/booking"
	"af-logistics/utils"
)

// RiderController handles the rider-facing surface: auto-assignment, the
// rider's delivery list and dashboard statistics.
type RiderController struct {
	DB      *gorm.DB
	Service *bookingService.Service
	Logger  *logger.AsyncLogger
}

// NewRiderController creates a new rider controller
func NewRiderController(db *gorm.DB, asyncLogger *logger.AsyncLogger) *RiderController {
	return &RiderController{
		DB:      db,
		Service: bookingService.NewService(db),
		Logger:  asyncLogger,
	}
}

func (rc *RiderController) logAPIRequest(c *fiber.Ctx) {
	rc.Logger.Log(utils.CreateSanitizedLogEntry(c))
}

func (rc *RiderController) sendResponseWithLog(c *fiber.Ctx, status int, response types.ApiResponse) error {
	result := c.Status(status).JSON(response)
	rc.logAPIRequest(c)
	return result
}

func riderIdentity(c *fiber.Ctx) (id, name string, ok bool) {
	claims, ok := c.Locals("user").(map[string]interface{})
	if !ok {
		return "", "", false
	}
	id = utils.ClaimString(claims, "uuid")
	name = utils.ClaimString(claims, "name")
	return id, name, id != ""
}

// AutoAssign claims every pending, unassigned booking for the requesting
// rider. Bookings already claimed by a concurrent rider are skipped.
func (rc *RiderController) AutoAssign(c *fiber.Ctx) error {
	riderID, riderName, ok := riderIdentity(c)
	if !ok {
		return rc.sendResponseWithLog(c, fiber.StatusUnauthorized, types.ApiResponse{
			Message: "Invalid user claims",
			Status:  fiber.StatusUnauthorized,
			Data:    nil,
		})
	}

	claimed, err := rc.Service.AutoAssign(riderID, riderName)
	if err != nil {
		logger.Error("Auto-assignment failed", err)
		return rc.sendResponseWithLog(c, fiber.StatusInternalServerError, types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Auto-assignment failed",
			Data:    nil,
		})
	}

	if len(claimed) > 0 {
		logger.Success(fmt.Sprintf("Rider %s claimed %d booking(s)", riderName, len(claimed)))
	}

	return rc.sendResponseWithLog(c, fiber.StatusOK, types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: fmt.Sprintf("%d booking(s) assigned", len(claimed)),
		Data:    claimed,
	})
}

// Deliveries lists the rider's own bookings, optionally filtered by status.
func (rc *RiderController) Deliveries(c *fiber.Ctx) error {
	riderID, _, ok := riderIdentity(c)
	if !ok {
		return rc.sendResponseWithLog(c, fiber.StatusUnauthorized, types.ApiResponse{
			Message: "Invalid user claims",
			Status:  fiber.StatusUnauthorized,
			Data:    nil,
		})
	}

	bookings, err := rc.Service.List(bookingTypes.ListQuery{
		RiderID: riderID,
		Status:  c.Query("status"),
	})
	if err != nil {
		logger.Error("Failed to fetch rider deliveries", err)
		return rc.sendResponseWithLog(c, fiber.StatusInternalServerError, types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to fetch deliveries",
			Data:    nil,
		})
	}

	return rc.sendResponseWithLog(c, fiber.StatusOK, types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Deliveries fetched successfully",
		Data:    bookings,
	})
}

// Stats returns the rider dashboard counters: pending pickups, in-transit
// deliveries, deliveries completed today and the all-time total.
func (rc *RiderController) Stats(c *fiber.Ctx) error {
	riderID, _, ok := riderIdentity(c)
	if !ok {
		return rc.sendResponseWithLog(c, fiber.StatusUnauthorized, types.ApiResponse{
			Message: "Invalid user claims",
			Status:  fiber.StatusUnauthorized,
			Data:    nil,
		})
	}

	bookings, err := rc.Service.List(bookingTypes.ListQuery{RiderID: riderID})
	if err != nil {
		logger.Error("Failed to fetch rider bookings for stats", err)
		return rc.sendResponseWithLog(c, fiber.StatusInternalServerError, types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to compute statistics",
			Data:    nil,
		})
	}

	startOfDay := now.BeginningOfDay()

	var pendingPickups, inTransit, completedToday, totalDelivered int
	for i := range bookings {
		b := &bookings[i]
		switch b.Status {
		case bookingModel.BookingStatusConfirmed:
			pendingPickups++
		case bookingModel.BookingStatusInTransit, bookingModel.BookingStatusOutForDelivery:
			inTransit++
		case bookingModel.BookingStatusDelivered:
			totalDelivered++
			if !b.UpdatedAt.Before(startOfDay) {
				completedToday++
			}
		}
	}

	return rc.sendResponseWithLog(c, fiber.StatusOK, types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Rider statistics fetched successfully",
		Data: map[string]interface{}{
			"pending_pickups":  pendingPickups,
			"in_transit":       inTransit,
			"completed_today":  completedToday,
			"total_deliveries": totalDelivered,
		},
	})
}
