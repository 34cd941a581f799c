package models

type OperationHours struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Day         string `gorm:"size:255;not null;uniqueIndex:idx_hours_natural" json:"day"`
	OpeningTime string `gorm:"size:8;not null;uniqueIndex:idx_hours_natural" json:"opening_time"`
	ClosingTime string `gorm:"size:8;not null;uniqueIndex:idx_hours_natural" json:"closing_time"`
}
