package models

import (
	"time"

	"gorm.io/gorm"
)

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCompleted BookingStatus = "completed"
	BookingStatusCancelled BookingStatus = "cancelled"
)

type Booking struct {
	gorm.Model
	TouristID  uint          `json:"touristId" gorm:"not null"`
	Tourist    User          `json:"tourist"`
	BikeID     uint          `json:"bikeId" gorm:"not null"`
	Bike       Bike          `json:"bike"`
	StartTime  time.Time     `json:"startTime" gorm:"not null"`
	EndTime    time.Time     `json:"endTime" gorm:"not null"`
	Status     BookingStatus `json:"status" gorm:"not null;default:'pending'"`
	TotalPrice float64       `json:"totalPrice" gorm:"not null"`
}
