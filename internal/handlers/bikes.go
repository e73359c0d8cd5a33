package handlers

import (
	"context"
	"log"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/jigmet/ladakh-tourism-backend/internal/lifecycle"
	"github.com/jigmet/ladakh-tourism-backend/internal/models"
	"github.com/jigmet/ladakh-tourism-backend/internal/services"
	"gorm.io/gorm"
)

// GetBikes lists bikes, optionally filtered by status and location.
func GetBikes(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		status := c.Query("status")
		location := c.Query("location")

		if status != "" {
			if _, err := lifecycle.ParseBikeStatus(status); err != nil {
				c.JSON(400, gin.H{"success": false, "error": err.Error()})
				return
			}
		}

		ctx := context.Background()
		if cached, err := services.GetCachedBikeListing(ctx, status, location); err == nil {
			c.JSON(200, gin.H{"success": true, "data": cached})
			return
		}

		var bikes []models.Bike
		query := db.Preload("Vendor")
		if status != "" {
			query = query.Where("availability_status = ?", status)
		}
		if location != "" {
			query = query.Where("LOWER(location) LIKE LOWER(?)", "%"+strings.ToLower(location)+"%")
		}

		if err := query.Find(&bikes).Error; err != nil {
			c.JSON(500, gin.H{"success": false, "error": "Failed to fetch bikes"})
			return
		}

		if err := services.CacheBikeListing(ctx, status, location, bikes); err != nil {
			log.Printf("Failed to cache bike listing: %v", err)
		}

		c.JSON(200, gin.H{"success": true, "data": bikes})
	}
}

// CreateBike handles the creation of a new bike by a vendor
func CreateBike(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userId := c.GetUint("userId")

		var input struct {
			Model        string   `json:"model" binding:"required"`
			PricePerHour float64  `json:"pricePerHour" binding:"required,gt=0"`
			Location     string   `json:"location" binding:"required"`
			Photos       []string `json:"photos"`
			Description  string   `json:"description"`
		}

		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"success": false, "error": err.Error()})
			return
		}

		bike := models.Bike{
			BikeModel:          input.Model,
			VendorID:           userId,
			PricePerHour:       input.PricePerHour,
			AvailabilityStatus: models.BikeStatusAvailable,
			Location:           input.Location,
			Photos:             input.Photos,
			Description:        input.Description,
		}

		if err := db.Create(&bike).Error; err != nil {
			c.JSON(500, gin.H{"success": false, "error": "Failed to create bike"})
			return
		}

		if err := services.InvalidateBikeListings(context.Background()); err != nil {
			log.Printf("Failed to invalidate bike listings: %v", err)
		}

		c.JSON(201, gin.H{"success": true, "data": bike})
	}
}

// UploadBikePhoto uploads a bike photo and returns its URL. The URL is
// then passed in the photos list when creating the bike.
func UploadBikePhoto() gin.HandlerFunc {
	return func(c *gin.Context) {
		file, err := c.FormFile("photo")
		if err != nil {
			c.JSON(400, gin.H{"success": false, "error": "Photo file is required"})
			return
		}

		url, err := services.UploadFile(file, "bikes")
		if err != nil {
			c.JSON(500, gin.H{"success": false, "error": "Failed to upload photo"})
			return
		}

		c.JSON(201, gin.H{"success": true, "data": gin.H{"url": url}})
	}
}

// UpdateBikeStatus updates a bike's availability status through the
// lifecycle engine. The stored record is untouched on a failed check.
func UpdateBikeStatus(db *gorm.DB, rules lifecycle.Rules) gin.HandlerFunc {
	return func(c *gin.Context) {
		bikeId := c.Param("id")
		userId := c.GetUint("userId")

		var input struct {
			AvailabilityStatus string `json:"availabilityStatus" binding:"required"`
		}

		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"success": false, "error": err.Error()})
			return
		}

		status, err := lifecycle.ParseBikeStatus(input.AvailabilityStatus)
		if err != nil {
			c.JSON(400, gin.H{"success": false, "error": err.Error()})
			return
		}

		var bike models.Bike
		if err := db.First(&bike, bikeId).Error; err != nil {
			c.JSON(404, gin.H{"success": false, "error": "Bike not found"})
			return
		}

		if bike.VendorID != userId {
			c.JSON(403, gin.H{"success": false, "error": "Unauthorized"})
			return
		}

		if err := lifecycle.TransitionBike(rules, bike.AvailabilityStatus, status); err != nil {
			c.JSON(400, gin.H{"success": false, "error": err.Error()})
			return
		}

		bike.AvailabilityStatus = status
		if err := db.Save(&bike).Error; err != nil {
			c.JSON(500, gin.H{"success": false, "error": "Failed to update bike status"})
			return
		}

		if err := services.InvalidateBikeListings(context.Background()); err != nil {
			log.Printf("Failed to invalidate bike listings: %v", err)
		}

		c.JSON(200, gin.H{"success": true, "data": bike})
	}
}
