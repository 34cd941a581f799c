package models

import "time"

type Profile struct {
	ID uint `gorm:"primaryKey" json:"id"`

	UserID uint `gorm:"uniqueIndex;not null" json:"user_id"`
	User   User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"user"`

	ContactNumber string `gorm:"size:11" json:"contact_number"`
	PhotoURL      string `gorm:"size:255" json:"photo"`
	Address       string `gorm:"size:255" json:"address"`
	AccountType   string `gorm:"size:5" json:"account_type"`

	Barbershops []Barbershop `gorm:"many2many:profile_barbershops;" json:"barbershop"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
