package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/jigmet/ladakh-tourism-backend/internal/models"
	"gorm.io/gorm"
)

// GetProfile retrieves the user's profile
func GetProfile(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userId := c.GetUint("userId")

		var user models.User
		if err := db.First(&user, userId).Error; err != nil {
			c.JSON(404, gin.H{"success": false, "error": "User not found"})
			return
		}

		c.JSON(200, gin.H{"success": true, "data": user})
	}
}

// UpdateProfile updates the user's profile information. The role is
// immutable after registration and cannot be changed here.
func UpdateProfile(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userId := c.GetUint("userId")

		var input struct {
			Name          *string `json:"name"`
			BusinessName  *string `json:"businessName"`
			ContactNumber *string `json:"contactNumber"`
			Address       *string `json:"address"`
		}

		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"success": false, "error": err.Error()})
			return
		}

		var user models.User
		if err := db.First(&user, userId).Error; err != nil {
			c.JSON(404, gin.H{"success": false, "error": "User not found"})
			return
		}

		// Update fields individually to handle empty strings properly
		if input.Name != nil {
			user.Name = *input.Name
		}
		if input.BusinessName != nil {
			user.BusinessName = *input.BusinessName
		}
		if input.ContactNumber != nil {
			user.ContactNumber = *input.ContactNumber
		}
		if input.Address != nil {
			user.Address = *input.Address
		}

		if err := db.Save(&user).Error; err != nil {
			c.JSON(500, gin.H{"success": false, "error": "Failed to update profile"})
			return
		}

		c.JSON(200, gin.H{"success": true, "data": user})
	}
}
