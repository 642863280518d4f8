package booking

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"af-logistics/logger"
	bookingModel "af-logistics/models/booking"
	userModel "af-logistics/models/user"
	bookingService "af-logistics/services/booking"
	"af-logistics/types"
	bookingTypes "af-logistics/types/booking"
	"af-logistics/utils"
)

// BookingController handles booking-related HTTP requests
type BookingController struct {
	DB      *gorm.DB
	Service *bookingService.Service
	Logger  *logger.AsyncLogger
}

// NewBookingController creates a new booking controller
func NewBookingController(db *gorm.DB, asyncLogger *logger.AsyncLogger) *BookingController {
	return &BookingController{
		DB:      db,
		Service: bookingService.NewService(db),
		Logger:  asyncLogger,
	}
}

func (bc *BookingController) logAPIRequest(c *fiber.Ctx) {
	logEntry := utils.CreateSanitizedLogEntry(c)
	bc.Logger.Log(logEntry)
}

func (bc *BookingController) sendResponseWithLog(c *fiber.Ctx, status int, response types.ApiResponse) error {
	result := c.Status(status).JSON(response)
	bc.logAPIRequest(c)
	return result
}

// Store creates a new booking for the authenticated customer.
func (bc *BookingController) Store(c *fiber.Ctx) error {
	var req bookingTypes.BookingCreateRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Failed to parse request body", err)
		return bc.sendResponseWithLog(c, fiber.StatusBadRequest, types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid request body",
			Data:    nil,
		})
	}

	claims, ok := c.Locals("user").(map[string]interface{})
	if !ok {
		return bc.sendResponseWithLog(c, fiber.StatusUnauthorized, types.ApiResponse{
			Message: "Invalid user claims",
			Status:  fiber.StatusUnauthorized,
			Data:    nil,
		})
	}

	customerID := utils.ClaimString(claims, "uuid")
	customerName := utils.ClaimString(claims, "name")
	if customerID == "" {
		return bc.sendResponseWithLog(c, fiber.StatusUnauthorized, types.ApiResponse{
			Message: "User UUID not found in token",
			Status:  fiber.StatusUnauthorized,
			Data:    nil,
		})
	}

	created, err := bc.Service.Create(req, customerID, customerName)
	if err != nil {
		status, msg := translateServiceError(err)
		if status == fiber.StatusInternalServerError {
			logger.Error("Failed to save booking", err)
			msg = "Failed to save booking"
		}
		return bc.sendResponseWithLog(c, status, types.ApiResponse{
			Status:  status,
			Message: msg,
			Data:    nil,
		})
	}

	logger.Success(fmt.Sprintf("Booking created successfully with tracking ID: %s", created.TrackingID))

	return bc.sendResponseWithLog(c, fiber.StatusCreated, types.ApiResponse{
		Status:  fiber.StatusCreated,
		Message: "Booking created successfully",
		Data:    created,
	})
}

// Index returns bookings filtered by customer, rider, tracking id and/or
// status, newest first. Customers only ever see their own bookings.
func (bc *BookingController) Index(c *fiber.Ctx) error {
	query := bookingTypes.ListQuery{
		CustomerID: c.Query("customer_id"),
		RiderID:    c.Query("rider_id"),
		TrackingID: c.Query("tracking_id"),
		Status:     c.Query("status"),
	}

	claims, ok := c.Locals("user").(map[string]interface{})
	if !ok {
		return bc.sendResponseWithLog(c, fiber.StatusUnauthorized, types.ApiResponse{
			Message: "Invalid user claims",
			Status:  fiber.StatusUnauthorized,
			Data:    nil,
		})
	}
	if utils.ClaimString(claims, "role") == userModel.RoleCustomer {
		query.CustomerID = utils.ClaimString(claims, "uuid")
	}

	bookings, err := bc.Service.List(query)
	if err != nil {
		status, msg := translateServiceError(err)
		if status == fiber.StatusInternalServerError {
			logger.Error("Failed to fetch bookings", err)
			msg = "Failed to fetch bookings"
		}
		return bc.sendResponseWithLog(c, status, types.ApiResponse{
			Status:  status,
			Message: msg,
			Data:    nil,
		})
	}

	return bc.sendResponseWithLog(c, fiber.StatusOK, types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Bookings fetched successfully",
		Data:    bookings,
	})
}

// Track is the public tracking-page read: one booking by tracking id with
// its full status history.
func (bc *BookingController) Track(c *fiber.Ctx) error {
	trackingID := c.Params("trackingId")

	b, err := bc.Service.FindByTrackingID(trackingID)
	if err != nil {
		status, msg := translateServiceError(err)
		if status == fiber.StatusInternalServerError {
			logger.Error("Failed to fetch booking", err)
			msg = "Failed to fetch booking"
		}
		return bc.sendResponseWithLog(c, status, types.ApiResponse{
			Status:  status,
			Message: msg,
			Data:    nil,
		})
	}

	return bc.sendResponseWithLog(c, fiber.StatusOK, types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Booking fetched successfully",
		Data:    b,
	})
}

// UpdateStatus applies a status transition to the booking referenced by the
// :id path segment (numeric id or tracking id). An optional status_note is
// folded into the appended history entry; rider fields perform the
// Pending -> Confirmed assignment.
func (bc *BookingController) UpdateStatus(c *fiber.Ctx) error {
	var req bookingTypes.StatusUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Failed to parse request body", err)
		return bc.sendResponseWithLog(c, fiber.StatusBadRequest, types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid request body",
			Data:    nil,
		})
	}

	if err := req.Validate(); err != nil {
		return bc.sendResponseWithLog(c, fiber.StatusBadRequest, types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: err.Error(),
			Data:    nil,
		})
	}

	claims, ok := c.Locals("user").(map[string]interface{})
	if !ok {
		return bc.sendResponseWithLog(c, fiber.StatusUnauthorized, types.ApiResponse{
			Message: "Invalid user claims",
			Status:  fiber.StatusUnauthorized,
			Data:    nil,
		})
	}
	actor := utils.ClaimString(claims, "uuid")

	var assign *bookingService.RiderAssignment
	if req.RiderID != "" {
		assign = &bookingService.RiderAssignment{ID: req.RiderID, Name: req.RiderName}
	}

	updated, err := bc.Service.Transition(
		c.Params("id"),
		bookingModel.BookingStatus(req.Status),
		req.StatusNote,
		actor,
		assign,
	)
	if err != nil {
		status, msg := translateServiceError(err)
		if status == fiber.StatusInternalServerError {
			logger.Error("Failed to update booking status", err)
			msg = "Failed to update booking status"
		}
		return bc.sendResponseWithLog(c, status, types.ApiResponse{
			Status:  status,
			Message: msg,
			Data:    nil,
		})
	}

	return bc.sendResponseWithLog(c, fiber.StatusOK, types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: fmt.Sprintf("Status updated to %s", updated.Status),
		Data:    updated,
	})
}

// translateServiceError maps booking service failures onto HTTP statuses.
func translateServiceError(err error) (int, string) {
	switch {
	case errors.Is(err, bookingService.ErrBookingNotFound):
		return fiber.StatusNotFound, "Booking not found"
	case errors.Is(err, bookingService.ErrDuplicateTracking):
		return fiber.StatusConflict, "Tracking ID already exists"
	case errors.Is(err, bookingService.ErrStatusConflict):
		return fiber.StatusConflict, err.Error()
	case errors.Is(err, bookingService.ErrInvalidTransition):
		return fiber.StatusUnprocessableEntity, err.Error()
	case errors.Is(err, bookingService.ErrInvalidStatus),
		errors.Is(err, bookingService.ErrValidation):
		return fiber.StatusBadRequest, err.Error()
	default:
		return fiber.StatusInternalServerError, "Internal server error"
	}
}
