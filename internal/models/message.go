package models

import "time"

type Message struct {
	ID uint `gorm:"primaryKey" json:"id"`

	UserID uint `gorm:"not null" json:"user_id"`
	User   User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"user"`

	Origin string `gorm:"size:8" json:"origin"`
	Text   string `gorm:"type:text;not null" json:"text"`

	CreatedAt time.Time `json:"created_at"`
}
