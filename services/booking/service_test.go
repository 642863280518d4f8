package booking

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	"af-logistics/database"
	bookingModel "af-logistics/models/booking"
	bookingTypes "af-logistics/types/booking"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	// A named shared-cache DSN keeps every pooled connection on the same
	// in-memory database while isolating tests from each other.
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormLogger.Default.LogMode(gormLogger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, database.Migrate(db))
	return db
}

func validCreateRequest() bookingTypes.BookingCreateRequest {
	return bookingTypes.BookingCreateRequest{
		PackageType:        "parcel",
		PackageWeight:      2,
		PackageSize:        "medium",
		PackageDescription: "Books",
		PickupAddress:      "House 1, Road 2",
		PickupCity:         "Dhaka",
		PickupState:        "Dhaka",
		PickupDate:         "2026-09-01",
		PickupTime:         "10:00",
		DeliveryAddress:    "House 3, Road 4",
		DeliveryCity:       "Sylhet",
		DeliveryState:      "Sylhet",
		DeliveryType:       "standard",
		SenderName:         "John Doe",
		SenderPhone:        "01700000000",
		ReceiverName:       "Jane Roe",
		ReceiverPhone:      "01800000000",
	}
}

func TestCreateBooking(t *testing.T) {
	svc := NewService(newTestDB(t))

	req := validCreateRequest()
	req.TrackingID = "AFL001"

	created, err := svc.Create(req, "cust-1", "John Doe")
	require.NoError(t, err)

	assert.Equal(t, "AFL001", created.TrackingID)
	assert.Equal(t, bookingModel.BookingStatusPending, created.Status)
	assert.Equal(t, float64(2000), created.Price)
	assert.Equal(t, "cust-1", created.CustomerID)
	assert.Nil(t, created.RiderID)

	require.Len(t, created.StatusEvents, 1)
	assert.Equal(t, bookingModel.BookingStatusPending, created.StatusEvents[0].Status)
	assert.Equal(t, "Booking created", created.StatusEvents[0].Note)
	assert.Equal(t, "cust-1", created.StatusEvents[0].CreatedBy)
}

func TestCreateBookingGeneratesTrackingID(t *testing.T) {
	svc := NewService(newTestDB(t))

	created, err := svc.Create(validCreateRequest(), "cust-1", "John Doe")
	require.NoError(t, err)

	assert.Regexp(t, `^AFL\d{8}[A-Z0-9]{4}$`, created.TrackingID)
}

func TestCreateBookingWeightSurcharge(t *testing.T) {
	svc := NewService(newTestDB(t))

	req := validCreateRequest()
	req.PackageWeight = 8

	created, err := svc.Create(req, "cust-1", "John Doe")
	require.NoError(t, err)

	// 2000 base + 3kg above the included 5kg at 200/kg
	assert.Equal(t, float64(2600), created.Price)
}

func TestCreateBookingDuplicateTracking(t *testing.T) {
	svc := NewService(newTestDB(t))

	req := validCreateRequest()
	req.TrackingID = "AFL001"

	first, err := svc.Create(req, "cust-1", "John Doe")
	require.NoError(t, err)

	dup := validCreateRequest()
	dup.TrackingID = "AFL001"
	dup.PackageWeight = 9

	_, err = svc.Create(dup, "cust-2", "Someone Else")
	assert.ErrorIs(t, err, ErrDuplicateTracking)

	// The original record is untouched.
	reloaded, err := svc.FindByTrackingID("AFL001")
	require.NoError(t, err)
	assert.Equal(t, first.CustomerID, reloaded.CustomerID)
	assert.Equal(t, first.Price, reloaded.Price)
	assert.Len(t, reloaded.StatusEvents, 1)
}

func TestCreateBookingValidation(t *testing.T) {
	svc := NewService(newTestDB(t))

	req := validCreateRequest()
	req.DeliveryType = "teleport"
	_, err := svc.Create(req, "cust-1", "John Doe")
	assert.ErrorIs(t, err, ErrValidation)

	req = validCreateRequest()
	req.PackageWeight = 0
	_, err = svc.Create(req, "cust-1", "John Doe")
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.Create(validCreateRequest(), "", "")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestFindByRef(t *testing.T) {
	svc := NewService(newTestDB(t))

	req := validCreateRequest()
	req.TrackingID = "AFL001"
	created, err := svc.Create(req, "cust-1", "John Doe")
	require.NoError(t, err)

	byID, err := svc.FindByRef(fmt.Sprintf("%d", created.ID))
	require.NoError(t, err)
	assert.Equal(t, created.TrackingID, byID.TrackingID)

	byTracking, err := svc.FindByRef("AFL001")
	require.NoError(t, err)
	assert.Equal(t, created.ID, byTracking.ID)

	_, err = svc.FindByRef("AFL999")
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestListFilters(t *testing.T) {
	svc := NewService(newTestDB(t))

	reqA := validCreateRequest()
	reqA.TrackingID = "AFL001"
	_, err := svc.Create(reqA, "cust-1", "John Doe")
	require.NoError(t, err)

	reqB := validCreateRequest()
	reqB.TrackingID = "AFL002"
	_, err = svc.Create(reqB, "cust-2", "Jane Roe")
	require.NoError(t, err)

	all, err := svc.List(bookingTypes.ListQuery{})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	mine, err := svc.List(bookingTypes.ListQuery{CustomerID: "cust-1"})
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, "AFL001", mine[0].TrackingID)

	pending, err := svc.List(bookingTypes.ListQuery{Status: "Pending"})
	require.NoError(t, err)
	assert.Len(t, pending, 2)

	_, err = svc.List(bookingTypes.ListQuery{Status: "Teleported"})
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestHistoryMatchesStatus(t *testing.T) {
	svc := NewService(newTestDB(t))

	req := validCreateRequest()
	req.TrackingID = "AFL001"
	created, err := svc.Create(req, "cust-1", "John Doe")
	require.NoError(t, err)

	current := created.CurrentStatusEvent()
	require.NotNil(t, current)
	assert.Equal(t, created.Status, current.Status)
}
