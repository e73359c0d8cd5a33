package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/jigmet/ladakh-tourism-backend/internal/models"
	"github.com/jigmet/ladakh-tourism-backend/pkg/utils"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type RegisterInput struct {
	Name          string `json:"name" binding:"required"`
	Email         string `json:"email" binding:"required,email"`
	Password      string `json:"password" binding:"required,min=6"`
	Role          string `json:"role" binding:"required,oneof=tourist vendor government"`
	BusinessName  string `json:"businessName"`
	ContactNumber string `json:"contactNumber"`
	Address       string `json:"address"`
}

type LoginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func Register(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input RegisterInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"success": false, "error": err.Error()})
			return
		}

		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
		if err != nil {
			c.JSON(500, gin.H{"success": false, "error": "Failed to hash password"})
			return
		}

		// Role is fixed at registration; there is no role-change path.
		user := models.User{
			Name:          input.Name,
			Email:         input.Email,
			PasswordHash:  string(hashedPassword),
			Role:          models.UserRole(input.Role),
			BusinessName:  input.BusinessName,
			ContactNumber: input.ContactNumber,
			Address:       input.Address,
		}

		if result := db.Create(&user); result.Error != nil {
			c.JSON(500, gin.H{"success": false, "error": "Failed to create user"})
			return
		}

		token, err := utils.GenerateToken(&user)
		if err != nil {
			c.JSON(500, gin.H{"success": false, "error": "Failed to generate token"})
			return
		}

		c.JSON(201, gin.H{
			"success": true,
			"data": gin.H{
				"token": token,
				"user":  user,
			},
		})
	}
}

func Login(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input LoginInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"success": false, "error": err.Error()})
			return
		}

		var user models.User
		if result := db.Where("email = ?", input.Email).First(&user); result.Error != nil {
			c.JSON(401, gin.H{"success": false, "error": "Invalid credentials"})
			return
		}

		if err := user.CheckPassword(input.Password); err != nil {
			c.JSON(401, gin.H{"success": false, "error": "Invalid credentials"})
			return
		}

		token, err := utils.GenerateToken(&user)
		if err != nil {
			c.JSON(500, gin.H{"success": false, "error": "Failed to generate token"})
			return
		}

		c.JSON(200, gin.H{
			"success": true,
			"data": gin.H{
				"token": token,
				"user":  user,
			},
		})
	}
}
