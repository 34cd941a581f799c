package models

import "time"

// Comment rows are deduplicated by (text, rating, type, author); the unique
// index over that key lives in db.NewDB since it hashes the text column.
type Comment struct {
	ID     uint    `gorm:"primaryKey" json:"id"`
	Text   string  `gorm:"type:text;not null" json:"text"`
	Rating float64 `gorm:"not null" json:"rating"`
	Type   string  `gorm:"size:8" json:"type"`

	UserID uint `gorm:"not null" json:"user_id"`
	User   User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"user"`

	CreatedAt time.Time `json:"created_at"`
}
