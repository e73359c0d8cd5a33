package models

import (
	"time"

	"gorm.io/gorm"
)

type PermitStatus string

const (
	PermitStatusPending  PermitStatus = "pending"
	PermitStatusApproved PermitStatus = "approved"
	PermitStatusRejected PermitStatus = "rejected"
)

type Permit struct {
	gorm.Model
	TouristID   uint         `json:"touristId" gorm:"not null"`
	Tourist     User         `json:"tourist"`
	Destination string       `json:"destination" gorm:"not null"`
	StartDate   time.Time    `json:"startDate" gorm:"not null"`
	EndDate     time.Time    `json:"endDate" gorm:"not null"`
	Status      PermitStatus `json:"status" gorm:"not null;default:'pending'"`
	DocumentURL string       `json:"documentUrl" gorm:"column:document_url;not null"`
	Reason      string       `json:"reason,omitempty"`
}
