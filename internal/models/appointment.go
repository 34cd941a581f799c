package models

import "time"

const AppointmentStatusPending = "pending"

// Appointment slots are exclusive two ways: one booking per (date, time)
// across the whole platform, and one booking per (user, date). Both rules
// are backed by unique indexes so concurrent requests cannot both win.
type Appointment struct {
	ID uint `gorm:"primaryKey" json:"id"`

	UserID uint `gorm:"not null;uniqueIndex:idx_appointments_user_date" json:"user_id"`
	User   User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"user"`

	Date string `gorm:"size:10;not null;uniqueIndex:idx_appointments_slot;uniqueIndex:idx_appointments_user_date" json:"date"`
	Time string `gorm:"size:5;not null;uniqueIndex:idx_appointments_slot" json:"time"`

	Status string `gorm:"size:20;default:'pending'" json:"status"`

	CreatedAt time.Time `json:"created_at"`
}
