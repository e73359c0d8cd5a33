package models

import "gorm.io/gorm"

type BikeStatus string

const (
	BikeStatusAvailable        BikeStatus = "available"
	BikeStatusRented           BikeStatus = "rented"
	BikeStatusUnderMaintenance BikeStatus = "under_maintenance"
)

type Bike struct {
	gorm.Model
	BikeModel          string     `json:"model" gorm:"column:model;not null"`
	VendorID           uint       `json:"vendorId" gorm:"not null"`
	Vendor             User       `json:"vendor"`
	PricePerHour       float64    `json:"pricePerHour" gorm:"not null"`
	AvailabilityStatus BikeStatus `json:"availabilityStatus" gorm:"not null;default:'available'"`
	Location           string     `json:"location" gorm:"not null"`
	Photos             []string   `json:"photos" gorm:"serializer:json"`
	Description        string     `json:"description,omitempty"`
}
