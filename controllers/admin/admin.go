package admin

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"af-logistics/logger"
	bookingModel "af-logistics/models/booking"
	userModel "af-logistics/models/user"
	"af-logistics/types"
	"af-logistics/utils"
)

// AdminController serves the operations dashboard.
type AdminController struct {
	DB     *gorm.DB
	Logger *logger.AsyncLogger
}

// NewAdminController creates a new admin controller
func NewAdminController(db *gorm.DB, asyncLogger *logger.AsyncLogger) *AdminController {
	return &AdminController{
		DB:     db,
		Logger: asyncLogger,
	}
}

func (ac *AdminController) sendResponseWithLog(c *fiber.Ctx, status int, response types.ApiResponse) error {
	result := c.Status(status).JSON(response)
	ac.Logger.Log(utils.CreateSanitizedLogEntry(c))
	return result
}

// Stats aggregates booking counts per status, user counts per role and the
// revenue of delivered bookings.
func (ac *AdminController) Stats(c *fiber.Ctx) error {
	statusCounts := make(map[string]int64)
	for _, status := range bookingModel.GetAllBookingStatuses() {
		var count int64
		if err := ac.DB.Model(&bookingModel.Booking{}).Where("status = ?", status).Count(&count).Error; err != nil {
			logger.Error("Failed to count bookings by status", err)
			return ac.sendResponseWithLog(c, fiber.StatusInternalServerError, types.ApiResponse{
				Status:  fiber.StatusInternalServerError,
				Message: "Failed to compute statistics",
				Data:    nil,
			})
		}
		statusCounts[status.String()] = count
	}

	var totalBookings int64
	if err := ac.DB.Model(&bookingModel.Booking{}).Count(&totalBookings).Error; err != nil {
		logger.Error("Failed to count bookings", err)
		return ac.sendResponseWithLog(c, fiber.StatusInternalServerError, types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to compute statistics",
			Data:    nil,
		})
	}

	roleCounts := make(map[string]int64)
	for _, role := range []string{userModel.RoleAdmin, userModel.RoleCustomer, userModel.RoleRider} {
		var count int64
		if err := ac.DB.Model(&userModel.User{}).Where("role = ?", role).Count(&count).Error; err != nil {
			logger.Error("Failed to count users by role", err)
			return ac.sendResponseWithLog(c, fiber.StatusInternalServerError, types.ApiResponse{
				Status:  fiber.StatusInternalServerError,
				Message: "Failed to compute statistics",
				Data:    nil,
			})
		}
		roleCounts[role] = count
	}

	var revenue float64
	err := ac.DB.Model(&bookingModel.Booking{}).
		Where("status = ?", bookingModel.BookingStatusDelivered).
		Select("COALESCE(SUM(price), 0)").
		Scan(&revenue).Error
	if err != nil {
		logger.Error("Failed to compute revenue", err)
		return ac.sendResponseWithLog(c, fiber.StatusInternalServerError, types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to compute statistics",
			Data:    nil,
		})
	}

	return ac.sendResponseWithLog(c, fiber.StatusOK, types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Statistics fetched successfully",
		Data: map[string]interface{}{
			"total_bookings": totalBookings,
			"by_status":      statusCounts,
			"users_by_role":  roleCounts,
			"revenue":        revenue,
		},
	})
}
