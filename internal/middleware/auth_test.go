package middleware

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/jigmet/ladakh-tourism-backend/internal/models"
	"github.com/stretchr/testify/assert"
)

func roleRouter(role string, allowed ...models.UserRole) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("userRole", role)
	})
	r.GET("/guarded", RequireRole(allowed...), func(c *gin.Context) {
		c.JSON(200, gin.H{"success": true})
	})
	return r
}

func TestRequireRoleAllowsMatchingRole(t *testing.T) {
	r := roleRouter("vendor", models.RoleVendor)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/guarded", nil))

	assert.Equal(t, 200, w.Code)
}

func TestRequireRoleAllowsAnyListedRole(t *testing.T) {
	r := roleRouter("government", models.RoleVendor, models.RoleGovernment)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/guarded", nil))

	assert.Equal(t, 200, w.Code)
}

func TestRequireRoleRejectsOtherRoles(t *testing.T) {
	r := roleRouter("tourist", models.RoleGovernment)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/guarded", nil))

	assert.Equal(t, 403, w.Code)
	assert.Contains(t, w.Body.String(), "Insufficient permissions")
}
