package handlers

import (
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func postPermitForm(t *testing.T, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/permits", CreatePermit(nil))

	req := httptest.NewRequest("POST", "/permits", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCreatePermitRequiresFields(t *testing.T) {
	w := postPermitForm(t, url.Values{"destination": {"Nubra Valley"}})

	assert.Equal(t, 400, w.Code)
	assert.Contains(t, w.Body.String(), `"success":false`)
}

func TestCreatePermitRejectsBadDates(t *testing.T) {
	w := postPermitForm(t, url.Values{
		"destination": {"Nubra Valley"},
		"startDate":   {"01/07/2025"},
		"endDate":     {"2025-07-05"},
		"documentUrl": {"https://example.com/doc.pdf"},
	})

	assert.Equal(t, 400, w.Code)
	assert.Contains(t, w.Body.String(), "YYYY-MM-DD")
}

func TestCreatePermitRejectsInvertedDates(t *testing.T) {
	w := postPermitForm(t, url.Values{
		"destination": {"Nubra Valley"},
		"startDate":   {"2025-07-05"},
		"endDate":     {"2025-07-01"},
		"documentUrl": {"https://example.com/doc.pdf"},
	})

	assert.Equal(t, 400, w.Code)
	assert.Contains(t, w.Body.String(), "endDate must not be before startDate")
}
