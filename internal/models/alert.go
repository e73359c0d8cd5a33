package models

import "gorm.io/gorm"

type AlertSeverity string

const (
	SeverityLow    AlertSeverity = "low"
	SeverityMedium AlertSeverity = "medium"
	SeverityHigh   AlertSeverity = "high"
)

type Alert struct {
	gorm.Model
	Message          string        `json:"message" gorm:"not null"`
	GeographicalArea string        `json:"geographicalArea" gorm:"not null"`
	Severity         AlertSeverity `json:"severity" gorm:"not null;default:'low'"`
	IsActive         bool          `json:"isActive" gorm:"not null;default:true"`
	CreatedByID      uint          `json:"createdBy" gorm:"not null"`
	CreatedBy        User          `json:"-" gorm:"foreignKey:CreatedByID"`
}
