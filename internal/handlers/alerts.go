package handlers

import (
	"context"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/jigmet/ladakh-tourism-backend/internal/lifecycle"
	"github.com/jigmet/ladakh-tourism-backend/internal/models"
	"github.com/jigmet/ladakh-tourism-backend/internal/services"
	"gorm.io/gorm"
)

// SendAlert creates a safety alert and broadcasts it to currently
// connected subscribers of the safety-alert topic. Delivery is
// fire-and-forget; a subscriber that connects later never sees it.
func SendAlert(db *gorm.DB, hub *services.Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		userId := c.GetUint("userId")

		var input struct {
			Message          string `json:"message" binding:"required"`
			GeographicalArea string `json:"geographicalArea" binding:"required"`
			Severity         string `json:"severity"`
		}

		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"success": false, "error": err.Error()})
			return
		}

		severity := models.SeverityLow
		if input.Severity != "" {
			var err error
			severity, err = lifecycle.ParseSeverity(input.Severity)
			if err != nil {
				c.JSON(400, gin.H{"success": false, "error": err.Error()})
				return
			}
		}

		alert := models.Alert{
			Message:          input.Message,
			GeographicalArea: input.GeographicalArea,
			Severity:         severity,
			IsActive:         true,
			CreatedByID:      userId,
		}

		if err := db.Create(&alert).Error; err != nil {
			c.JSON(500, gin.H{"success": false, "error": "Failed to create alert"})
			return
		}

		hub.PublishTopic(services.TopicSafetyAlert, alert)

		ctx := context.Background()
		if err := services.PublishAlert(ctx, alert); err != nil {
			log.Printf("Failed to publish alert to Redis: %v", err)
		}
		if err := services.InvalidateActiveAlerts(ctx); err != nil {
			log.Printf("Failed to invalidate alert cache: %v", err)
		}

		c.JSON(201, gin.H{"success": true, "data": alert})
	}
}

// GetActiveAlerts lists active alerts, served from cache when possible.
func GetActiveAlerts(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := context.Background()
		if cached, err := services.GetCachedActiveAlerts(ctx); err == nil {
			c.JSON(200, gin.H{"success": true, "data": cached})
			return
		}

		var alerts []models.Alert
		if err := db.Where("is_active = ?", true).Order("created_at DESC").Find(&alerts).Error; err != nil {
			c.JSON(500, gin.H{"success": false, "error": "Failed to fetch alerts"})
			return
		}

		if err := services.CacheActiveAlerts(ctx, alerts); err != nil {
			log.Printf("Failed to cache active alerts: %v", err)
		}

		c.JSON(200, gin.H{"success": true, "data": alerts})
	}
}

// DeactivateAlert retires an alert so it no longer appears in the active
// list. Past broadcasts are not recalled.
func DeactivateAlert(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		alertId := c.Param("id")

		var alert models.Alert
		if err := db.First(&alert, alertId).Error; err != nil {
			c.JSON(404, gin.H{"success": false, "error": "Alert not found"})
			return
		}

		if err := db.Model(&alert).Update("is_active", false).Error; err != nil {
			c.JSON(500, gin.H{"success": false, "error": "Failed to deactivate alert"})
			return
		}
		alert.IsActive = false

		if err := services.InvalidateActiveAlerts(context.Background()); err != nil {
			log.Printf("Failed to invalidate alert cache: %v", err)
		}

		c.JSON(200, gin.H{"success": true, "data": alert})
	}
}
