package handlers

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jigmet/ladakh-tourism-backend/internal/lifecycle"
	"github.com/jigmet/ladakh-tourism-backend/internal/models"
	"github.com/jigmet/ladakh-tourism-backend/internal/services"
	"github.com/jigmet/ladakh-tourism-backend/pkg/utils"
	"gorm.io/gorm"
)

const permitDateLayout = "2006-01-02"

// CreatePermit files a travel-authorization request. The supporting
// document arrives either as a multipart file or as an already-uploaded
// URL in the documentUrl field.
func CreatePermit(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userId := c.GetUint("userId")

		var input struct {
			Destination string `form:"destination" binding:"required"`
			StartDate   string `form:"startDate" binding:"required"`
			EndDate     string `form:"endDate" binding:"required"`
			DocumentURL string `form:"documentUrl"`
		}

		if err := c.ShouldBind(&input); err != nil {
			c.JSON(400, gin.H{"success": false, "error": err.Error()})
			return
		}

		startDate, err := time.Parse(permitDateLayout, input.StartDate)
		if err != nil {
			c.JSON(400, gin.H{"success": false, "error": "startDate must be in YYYY-MM-DD format"})
			return
		}
		endDate, err := time.Parse(permitDateLayout, input.EndDate)
		if err != nil {
			c.JSON(400, gin.H{"success": false, "error": "endDate must be in YYYY-MM-DD format"})
			return
		}
		if endDate.Before(startDate) {
			c.JSON(400, gin.H{"success": false, "error": "endDate must not be before startDate"})
			return
		}

		documentURL := input.DocumentURL
		if file, err := c.FormFile("document"); err == nil {
			documentURL, err = services.UploadFile(file, "permits")
			if err != nil {
				c.JSON(500, gin.H{"success": false, "error": "Failed to upload document"})
				return
			}
		}
		if documentURL == "" {
			c.JSON(400, gin.H{"success": false, "error": "A document file or documentUrl is required"})
			return
		}

		permit := models.Permit{
			TouristID:   userId,
			Destination: input.Destination,
			StartDate:   startDate,
			EndDate:     endDate,
			Status:      models.PermitStatusPending,
			DocumentURL: documentURL,
		}

		if err := db.Create(&permit).Error; err != nil {
			c.JSON(500, gin.H{"success": false, "error": "Failed to create permit"})
			return
		}

		c.JSON(201, gin.H{"success": true, "data": permit})
	}
}

// GetPermits lists permits. Government users see every permit; tourists
// only see their own.
func GetPermits(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userId := c.GetUint("userId")
		userRole := models.UserRole(c.GetString("userRole"))

		query := db.Preload("Tourist")
		if userRole != models.RoleGovernment {
			query = query.Where("tourist_id = ?", userId)
		}
		if status := c.Query("status"); status != "" {
			if _, err := lifecycle.ParsePermitStatus(status); err != nil {
				c.JSON(400, gin.H{"success": false, "error": err.Error()})
				return
			}
			query = query.Where("status = ?", status)
		}

		var permits []models.Permit
		if err := query.Order("created_at DESC").Find(&permits).Error; err != nil {
			c.JSON(500, gin.H{"success": false, "error": "Failed to fetch permits"})
			return
		}

		c.JSON(200, gin.H{"success": true, "data": permits})
	}
}

// UpdatePermitStatus records a government decision on a permit. The
// decision is one-shot unless re-decision is enabled in the rules; the
// stored record is untouched when the transition is refused.
func UpdatePermitStatus(db *gorm.DB, rules lifecycle.Rules) gin.HandlerFunc {
	return func(c *gin.Context) {
		permitId := c.Param("id")

		var input struct {
			Status string `json:"status" binding:"required"`
			Reason string `json:"reason"`
		}

		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"success": false, "error": err.Error()})
			return
		}

		status, err := lifecycle.ParsePermitStatus(input.Status)
		if err != nil {
			c.JSON(400, gin.H{"success": false, "error": err.Error()})
			return
		}

		var permit models.Permit
		if err := db.Preload("Tourist").First(&permit, permitId).Error; err != nil {
			c.JSON(404, gin.H{"success": false, "error": "Permit not found"})
			return
		}

		if err := lifecycle.DecidePermit(rules, permit.Status, status); err != nil {
			c.JSON(400, gin.H{"success": false, "error": err.Error()})
			return
		}

		// Status and reason land in a single update.
		if err := db.Model(&permit).Updates(map[string]interface{}{
			"status": status,
			"reason": input.Reason,
		}).Error; err != nil {
			c.JSON(500, gin.H{"success": false, "error": "Failed to update permit status"})
			return
		}
		permit.Status = status
		permit.Reason = input.Reason

		go func() {
			if err := utils.SendPermitDecisionEmail(permit.Tourist.Email, permit.Destination, string(status), input.Reason); err != nil {
				log.Printf("Failed to send permit decision email: %v", err)
			}
		}()

		c.JSON(200, gin.H{"success": true, "data": permit})
	}
}
