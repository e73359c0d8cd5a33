package handlers

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/jigmet/ladakh-tourism-backend/internal/services"
	"github.com/stretchr/testify/assert"
)

func TestSendAlertRejectsUnknownSeverity(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/alerts/send", SendAlert(nil, services.NewHub()))

	body := `{"message":"Avalanche risk","geographicalArea":"Zoji La","severity":"catastrophic"}`
	req := httptest.NewRequest("POST", "/alerts/send", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, 400, w.Code)
	assert.Contains(t, w.Body.String(), "invalid severity")
}

func TestSendAlertRequiresMessage(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/alerts/send", SendAlert(nil, services.NewHub()))

	req := httptest.NewRequest("POST", "/alerts/send", strings.NewReader(`{"geographicalArea":"Zoji La"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, 400, w.Code)
}
