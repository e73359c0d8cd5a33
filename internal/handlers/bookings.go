package handlers

import (
	"context"
	"log"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jigmet/ladakh-tourism-backend/internal/lifecycle"
	"github.com/jigmet/ladakh-tourism-backend/internal/models"
	"github.com/jigmet/ladakh-tourism-backend/internal/services"
	"github.com/jigmet/ladakh-tourism-backend/pkg/utils"
	"gorm.io/gorm"
)

// CreateBooking reserves a bike for a time interval. The total price is
// computed once here from the bike's hourly rate and never recomputed.
// Bike availability is not checked at creation; the overlap rejection only
// runs when the rules enable it.
func CreateBooking(db *gorm.DB, hub *services.Hub, rules lifecycle.Rules) gin.HandlerFunc {
	return func(c *gin.Context) {
		userId := c.GetUint("userId")

		var input struct {
			BikeID    uint      `json:"bikeId" binding:"required"`
			StartTime time.Time `json:"startTime" binding:"required"`
			EndTime   time.Time `json:"endTime" binding:"required"`
		}

		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"success": false, "error": err.Error()})
			return
		}

		if !input.EndTime.After(input.StartTime) {
			c.JSON(400, gin.H{"success": false, "error": "endTime must be after startTime"})
			return
		}

		var bike models.Bike
		if err := db.Preload("Vendor").First(&bike, input.BikeID).Error; err != nil {
			c.JSON(404, gin.H{"success": false, "error": "Bike not found"})
			return
		}

		if rules.PreventDoubleBooking {
			var overlapping int64
			db.Model(&models.Booking{}).
				Where("bike_id = ? AND status IN ? AND start_time < ? AND end_time > ?",
					input.BikeID,
					[]models.BookingStatus{models.BookingStatusPending, models.BookingStatusConfirmed},
					input.EndTime, input.StartTime).
				Count(&overlapping)
			if overlapping > 0 {
				c.JSON(409, gin.H{"success": false, "error": "Bike is already booked for this period"})
				return
			}
		}

		totalPrice, err := utils.BookingTotal(bike.PricePerHour, input.StartTime, input.EndTime)
		if err != nil {
			c.JSON(400, gin.H{"success": false, "error": err.Error()})
			return
		}

		booking := models.Booking{
			TouristID:  userId,
			BikeID:     input.BikeID,
			StartTime:  input.StartTime,
			EndTime:    input.EndTime,
			Status:     models.BookingStatusPending,
			TotalPrice: totalPrice,
		}

		if err := db.Create(&booking).Error; err != nil {
			c.JSON(500, gin.H{"success": false, "error": "Failed to create booking"})
			return
		}

		var tourist models.User
		if err := db.First(&tourist, userId).Error; err != nil {
			log.Printf("Failed to load tourist %d for booking email: %v", userId, err)
		} else {
			go func() {
				if err := utils.SendNewBookingEmailToVendor(bike.Vendor.Email, bike.BikeModel, tourist.Name); err != nil {
					log.Printf("Failed to send booking email to vendor: %v", err)
				}
			}()
		}

		hub.PublishToUser(bike.VendorID, services.TopicBookingUpdate, booking)
		if err := services.PublishBookingUpdate(context.Background(), booking.ID, booking.Status); err != nil {
			log.Printf("Failed to publish booking update: %v", err)
		}

		c.JSON(201, gin.H{"success": true, "data": booking})
	}
}

// GetTouristBookings retrieves all bookings for a tourist
func GetTouristBookings(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userId := c.GetUint("userId")
		userRole := models.UserRole(c.GetString("userRole"))

		touristId, err := strconv.ParseUint(c.Param("touristId"), 10, 32)
		if err != nil {
			c.JSON(400, gin.H{"success": false, "error": "Invalid tourist id"})
			return
		}

		if uint(touristId) != userId && userRole != models.RoleGovernment {
			c.JSON(403, gin.H{"success": false, "error": "Unauthorized"})
			return
		}

		var bookings []models.Booking
		if err := db.Where("tourist_id = ?", touristId).
			Preload("Bike").
			Preload("Bike.Vendor").
			Find(&bookings).Error; err != nil {
			c.JSON(500, gin.H{"success": false, "error": "Failed to fetch bookings"})
			return
		}

		c.JSON(200, gin.H{"success": true, "data": bookings})
	}
}

// ConfirmBooking transitions a booking to confirmed on payment
// confirmation. Confirming an already confirmed booking is a no-op, not an
// error, so a repeated payment callback cannot corrupt the record.
func ConfirmBooking(db *gorm.DB, hub *services.Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		bookingId := c.Param("id")

		var booking models.Booking
		if err := db.Preload("Bike").Preload("Tourist").First(&booking, bookingId).Error; err != nil {
			c.JSON(404, gin.H{"success": false, "error": "Booking not found"})
			return
		}

		apply, err := lifecycle.ConfirmPayment(booking.Status)
		if err != nil {
			c.JSON(400, gin.H{"success": false, "error": err.Error()})
			return
		}
		if !apply {
			// Repeated payment callback: the record stays untouched.
			c.JSON(200, gin.H{"success": true, "data": booking})
			return
		}

		if err := db.Model(&booking).Update("status", models.BookingStatusConfirmed).Error; err != nil {
			c.JSON(500, gin.H{"success": false, "error": "Failed to update booking status"})
			return
		}
		booking.Status = models.BookingStatusConfirmed

		// The booked bike follows the booking into the rental.
		setBikeAvailability(db, booking.BikeID, models.BikeStatusRented)

		go func() {
			if err := utils.SendBookingConfirmedEmail(booking.Tourist.Email, booking.Bike.BikeModel, booking.TotalPrice); err != nil {
				log.Printf("Failed to send confirmation email: %v", err)
			}
		}()

		hub.PublishToUser(booking.TouristID, services.TopicBookingUpdate, booking)
		if err := services.PublishBookingUpdate(context.Background(), booking.ID, booking.Status); err != nil {
			log.Printf("Failed to publish booking update: %v", err)
		}

		c.JSON(200, gin.H{"success": true, "data": booking})
	}
}

// setBikeAvailability writes the bike's availability and drops the cached
// listings, otherwise GET /bikes would serve the old status for the rest of
// the cache TTL.
func setBikeAvailability(db *gorm.DB, bikeID uint, status models.BikeStatus) {
	if err := db.Model(&models.Bike{}).Where("id = ?", bikeID).
		Update("availability_status", status).Error; err != nil {
		log.Printf("Failed to set bike %d to %s: %v", bikeID, status, err)
		return
	}
	if err := services.InvalidateBikeListings(context.Background()); err != nil {
		log.Printf("Failed to invalidate bike listings: %v", err)
	}
}

// CancelBooking cancels a pending or confirmed booking.
func CancelBooking(db *gorm.DB, hub *services.Hub) gin.HandlerFunc {
	return updateBookingStatus(db, hub, models.BookingStatusCancelled)
}

// CompleteBooking marks a confirmed booking as completed after the rental
// period. There is no scheduler; this is invoked externally.
func CompleteBooking(db *gorm.DB, hub *services.Hub) gin.HandlerFunc {
	return updateBookingStatus(db, hub, models.BookingStatusCompleted)
}

func updateBookingStatus(db *gorm.DB, hub *services.Hub, target models.BookingStatus) gin.HandlerFunc {
	return func(c *gin.Context) {
		bookingId := c.Param("id")
		userId := c.GetUint("userId")
		userRole := models.UserRole(c.GetString("userRole"))

		var booking models.Booking
		if err := db.Preload("Bike").First(&booking, bookingId).Error; err != nil {
			c.JSON(404, gin.H{"success": false, "error": "Booking not found"})
			return
		}

		if booking.TouristID != userId && booking.Bike.VendorID != userId && userRole != models.RoleGovernment {
			c.JSON(403, gin.H{"success": false, "error": "Unauthorized"})
			return
		}

		wasConfirmed := booking.Status == models.BookingStatusConfirmed

		if err := lifecycle.TransitionBooking(booking.Status, target); err != nil {
			c.JSON(400, gin.H{"success": false, "error": err.Error()})
			return
		}

		if err := db.Model(&booking).Update("status", target).Error; err != nil {
			c.JSON(500, gin.H{"success": false, "error": "Failed to update booking status"})
			return
		}
		booking.Status = target

		// Leaving a confirmed rental frees the bike again.
		if wasConfirmed {
			setBikeAvailability(db, booking.BikeID, models.BikeStatusAvailable)
		}

		hub.PublishToUser(booking.TouristID, services.TopicBookingUpdate, booking)
		if err := services.PublishBookingUpdate(context.Background(), booking.ID, booking.Status); err != nil {
			log.Printf("Failed to publish booking update: %v", err)
		}

		c.JSON(200, gin.H{"success": true, "data": booking})
	}
}
