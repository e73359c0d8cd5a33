package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSendEmailRequiresConfig(t *testing.T) {
	t.Setenv("EMAIL_FROM", "")
	t.Setenv("EMAIL_PASSWORD", "")
	t.Setenv("SMTP_HOST", "")
	t.Setenv("SMTP_PORT", "")

	err := SendPermitDecisionEmail("tourist@example.com", "Nubra Valley", "approved", "")
	assert.EqualError(t, err, "email configuration not set")
}

func TestSendEmailReadsConfigAtSendTime(t *testing.T) {
	// Config set after package init must be picked up; a .env file is only
	// loaded once main runs.
	t.Setenv("EMAIL_FROM", "noreply@ladakhtrails.example")
	t.Setenv("EMAIL_PASSWORD", "secret")
	t.Setenv("SMTP_HOST", "127.0.0.1")
	t.Setenv("SMTP_PORT", "1")

	err := SendPermitDecisionEmail("tourist@example.com", "Nubra Valley", "approved", "")
	assert.Error(t, err)
	assert.NotEqual(t, "email configuration not set", err.Error())
}
