package models

import "time"

// Barbershop is the aggregate root. Sub-entities hang off many-to-many link
// tables and are shared between shops, so deleting a shop only clears links.
type Barbershop struct {
	ID            uint    `gorm:"primaryKey" json:"id"`
	Name          string  `gorm:"size:255;not null" json:"name"`
	Description   string  `gorm:"type:text" json:"description"`
	Address       string  `gorm:"size:255" json:"address"`
	ContactNumber string  `gorm:"size:11" json:"contact_number"`
	PhotoURL      string  `gorm:"size:255" json:"photo"`
	DocumentURL   string  `gorm:"size:255" json:"document"`
	Rating        float64 `gorm:"default:0" json:"rating"`
	Latitude      float64 `json:"latitude"`
	Longitude     float64 `json:"longitude"`
	Verified      bool    `gorm:"default:false" json:"verified"`

	Amenities    []Amenity        `gorm:"many2many:barbershop_amenities;" json:"amenities"`
	Services     []Service        `gorm:"many2many:barbershop_services;" json:"services"`
	Hours        []OperationHours `gorm:"many2many:barbershop_hours;" json:"hours"`
	Comments     []Comment        `gorm:"many2many:barbershop_comments;" json:"comments"`
	Favorites    []User           `gorm:"many2many:barbershop_favorites;" json:"favorites"`
	Appointments []Appointment    `gorm:"many2many:barbershop_appointments;" json:"appointments"`
	Messages     []Message        `gorm:"many2many:barbershop_messages;" json:"messages"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
