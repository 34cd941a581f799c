package models

// Services are deduplicated by the (name, price) pair, so the same cut at a
// different price is a separate row.
type Service struct {
	ID    uint    `gorm:"primaryKey" json:"id"`
	Name  string  `gorm:"size:255;not null;uniqueIndex:idx_services_natural" json:"name"`
	Price float64 `gorm:"default:0;uniqueIndex:idx_services_natural" json:"price"`
}
