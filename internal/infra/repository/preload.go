package repository

import "gorm.io/gorm"

// WithShopAssociations loads the full aggregate the way every barbershop
// representation is served: all collections plus the users behind comments,
// appointments and messages.
func WithShopAssociations(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Amenities").
		Preload("Services").
		Preload("Hours").
		Preload("Comments.User").
		Preload("Favorites").
		Preload("Appointments.User").
		Preload("Messages.User")
}
