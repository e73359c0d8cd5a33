package handlers

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/jigmet/ladakh-tourism-backend/internal/lifecycle"
	"github.com/jigmet/ladakh-tourism-backend/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// openMockDB backs gorm with a sqlmock connection so handler tests can
// assert which statements ran without a postgres instance.
func openMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: conn}), &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)
	return db, mock
}

func TestCreateBookingRequiresFields(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/bookings", CreateBooking(nil, services.NewHub(), lifecycle.Rules{}))

	req := httptest.NewRequest("POST", "/bookings", strings.NewReader(`{"bikeId":1}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, 400, w.Code)
	assert.Contains(t, w.Body.String(), `"success":false`)
}

func TestCreateBookingRejectsInvertedInterval(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/bookings", CreateBooking(nil, services.NewHub(), lifecycle.Rules{}))

	body := `{"bikeId":1,"startTime":"2025-07-01T13:00:00Z","endTime":"2025-07-01T09:00:00Z"}`
	req := httptest.NewRequest("POST", "/bookings", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, 400, w.Code)
	assert.Contains(t, w.Body.String(), "endTime must be after startTime")
}

func TestConfirmBookingRepeatedCallbackWritesNothing(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db, mock := openMockDB(t)

	mock.ExpectQuery(`SELECT \* FROM "bookings"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "tourist_id", "bike_id", "status", "total_price"}).
			AddRow(5, 9, 2, "confirmed", 600.0))
	mock.ExpectQuery(`SELECT \* FROM "bikes"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "vendor_id", "bike_model"}).
			AddRow(2, 3, "Royal Enfield Himalayan"))
	mock.ExpectQuery(`SELECT \* FROM "users"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "email"}).
			AddRow(9, "tourist@example.com"))

	r := gin.New()
	r.POST("/bookings/:id/confirm", ConfirmBooking(db, services.NewHub()))

	req := httptest.NewRequest("POST", "/bookings/5/confirm", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, 200, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"confirmed"`)
	assert.Contains(t, w.Body.String(), `"success":true`)

	// Only the three reads were expected; a second confirm must not save.
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestConfirmBookingMarksBikeRentedAndDropsListingCache(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db, mock := openMockDB(t)

	mr := miniredis.RunT(t)
	t.Setenv("REDIS_URL", "redis://"+mr.Addr())
	require.NoError(t, services.InitRedis())
	require.NoError(t, mr.Set("bikes:available:", "[]"))
	require.NoError(t, mr.Set("bikes:available:Leh", "[]"))

	mock.ExpectQuery(`SELECT \* FROM "bookings"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "tourist_id", "bike_id", "status", "total_price"}).
			AddRow(5, 9, 2, "pending", 600.0))
	mock.ExpectQuery(`SELECT \* FROM "bikes"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "vendor_id", "bike_model"}).
			AddRow(2, 3, "Royal Enfield Himalayan"))
	mock.ExpectQuery(`SELECT \* FROM "users"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "email"}).
			AddRow(9, "tourist@example.com"))
	mock.ExpectExec(`UPDATE "bookings"`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`UPDATE "bikes"`).WillReturnResult(sqlmock.NewResult(0, 1))

	r := gin.New()
	r.POST("/bookings/:id/confirm", ConfirmBooking(db, services.NewHub()))

	req := httptest.NewRequest("POST", "/bookings/5/confirm", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, 200, w.Code)
	assert.NoError(t, mock.ExpectationsWereMet())

	// The cached listings must not keep serving the just-rented bike.
	assert.False(t, mr.Exists("bikes:available:"))
	assert.False(t, mr.Exists("bikes:available:Leh"))
}

func TestCancelBookingReleasesBikeAndDropsListingCache(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db, mock := openMockDB(t)

	mr := miniredis.RunT(t)
	t.Setenv("REDIS_URL", "redis://"+mr.Addr())
	require.NoError(t, services.InitRedis())
	require.NoError(t, mr.Set("bikes:available:", "[]"))

	mock.ExpectQuery(`SELECT \* FROM "bookings"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "tourist_id", "bike_id", "status", "total_price"}).
			AddRow(5, 9, 2, "confirmed", 600.0))
	mock.ExpectQuery(`SELECT \* FROM "bikes"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "vendor_id", "bike_model"}).
			AddRow(2, 3, "Royal Enfield Himalayan"))
	mock.ExpectExec(`UPDATE "bookings"`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`UPDATE "bikes"`).WillReturnResult(sqlmock.NewResult(0, 1))

	r := gin.New()
	r.POST("/bookings/:id/cancel", func(c *gin.Context) {
		c.Set("userId", uint(9))
		c.Set("userRole", "tourist")
	}, CancelBooking(db, services.NewHub()))

	req := httptest.NewRequest("POST", "/bookings/5/cancel", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, 200, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"cancelled"`)
	assert.NoError(t, mock.ExpectationsWereMet())
	assert.False(t, mr.Exists("bikes:available:"))
}

func TestGetTouristBookingsRejectsBadID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/bookings/:touristId", GetTouristBookings(nil))

	req := httptest.NewRequest("GET", "/bookings/not-a-number", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, 400, w.Code)
}
