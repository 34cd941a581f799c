package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/kbvnxl/ptown-backend/internal/domain/booking"
	"github.com/kbvnxl/ptown-backend/internal/httperr"
	"github.com/kbvnxl/ptown-backend/internal/models"
)

type BookingGormRepository struct {
	db *gorm.DB
}

func NewBookingGormRepository(db *gorm.DB) *BookingGormRepository {
	return &BookingGormRepository{db: db}
}

// --------------------------------------------------
// Lookups
// --------------------------------------------------

func (r *BookingGormRepository) GetBarbershop(
	ctx context.Context,
	id uint,
) (*models.Barbershop, error) {

	var shop models.Barbershop
	if err := WithShopAssociations(r.db.WithContext(ctx)).
		First(&shop, id).Error; err != nil {
		return nil, err
	}
	return &shop, nil
}

func (r *BookingGormRepository) GetUser(
	ctx context.Context,
	id uint,
) (*models.User, error) {

	var user models.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *BookingGormRepository) GetAppointment(
	ctx context.Context,
	id uint,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).Preload("User").First(&ap, id).Error; err != nil {
		return nil, err
	}
	return &ap, nil
}

// --------------------------------------------------
// Appointments
// --------------------------------------------------

// CreateAppointmentForShop checks both exclusivity rules and inserts inside
// one transaction. The unique indexes on (date, time) and (user_id, date)
// back the check, so a race that slips past the locked count still surfaces
// as a duplicate-key error and is mapped to the same business error.
func (r *BookingGormRepository) CreateAppointmentForShop(
	ctx context.Context,
	shop *models.Barbershop,
	ap *models.Appointment,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {

		// Locking a count is not valid postgres; lock the rows instead.
		var conflicts []models.Appointment
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where(
				"(date = ? AND time = ?) OR (date = ? AND user_id = ?)",
				ap.Date, ap.Time, ap.Date, ap.UserID,
			).
			Find(&conflicts).Error; err != nil {
			return err
		}

		if len(conflicts) > 0 {
			return httperr.ErrBusiness(httperr.CodeExistingAppointment)
		}

		if err := tx.Create(ap).Error; err != nil {
			if httperr.IsUniqueViolation(err) {
				return httperr.ErrBusiness(httperr.CodeExistingAppointment)
			}
			return err
		}

		return tx.Model(shop).Association("Appointments").Append(ap)
	})
}

func (r *BookingGormRepository) IsAppointmentLinked(
	ctx context.Context,
	shopID, appointmentID uint,
) (bool, error) {

	var count int64
	if err := r.db.WithContext(ctx).
		Table("barbershop_appointments").
		Where("barbershop_id = ? AND appointment_id = ?", shopID, appointmentID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// UnlinkAppointment removes the association only. The appointment row stays;
// cancellation on this platform has never been a status change.
func (r *BookingGormRepository) UnlinkAppointment(
	ctx context.Context,
	shop *models.Barbershop,
	ap *models.Appointment,
) error {
	return r.db.WithContext(ctx).Model(shop).Association("Appointments").Delete(ap)
}

func (r *BookingGormRepository) ListShopAppointments(
	ctx context.Context,
	shopID uint,
) ([]models.Appointment, error) {

	var aps []models.Appointment
	err := r.db.WithContext(ctx).
		Preload("User").
		Joins("JOIN barbershop_appointments ba ON ba.appointment_id = appointments.id").
		Where("ba.barbershop_id = ?", shopID).
		Order("appointments.date ASC, appointments.time ASC").
		Find(&aps).Error
	if err != nil {
		return nil, err
	}
	return aps, nil
}

func (r *BookingGormRepository) ListShopsWithUserAppointments(
	ctx context.Context,
	userID uint,
) ([]models.Barbershop, error) {

	var shops []models.Barbershop
	err := WithShopAssociations(r.db.WithContext(ctx)).
		Preload("Appointments", "user_id = ?", userID).
		Distinct("barbershops.*").
		Joins("JOIN barbershop_appointments ba ON ba.barbershop_id = barbershops.id").
		Joins("JOIN appointments a ON a.id = ba.appointment_id").
		Where("a.user_id = ?", userID).
		Find(&shops).Error
	if err != nil {
		return nil, err
	}
	return shops, nil
}

// --------------------------------------------------
// Favorites
// --------------------------------------------------

func (r *BookingGormRepository) IsFavorite(
	ctx context.Context,
	shopID, userID uint,
) (bool, error) {

	var count int64
	if err := r.db.WithContext(ctx).
		Table("barbershop_favorites").
		Where("barbershop_id = ? AND user_id = ?", shopID, userID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *BookingGormRepository) LinkFavorite(
	ctx context.Context,
	shop *models.Barbershop,
	user *models.User,
) error {
	return r.db.WithContext(ctx).Model(shop).Association("Favorites").Append(user)
}

func (r *BookingGormRepository) UnlinkFavorite(
	ctx context.Context,
	shop *models.Barbershop,
	user *models.User,
) error {
	return r.db.WithContext(ctx).Model(shop).Association("Favorites").Delete(user)
}

func (r *BookingGormRepository) ListFavoriteShops(
	ctx context.Context,
	userID uint,
) ([]models.Barbershop, error) {

	var shops []models.Barbershop
	err := WithShopAssociations(r.db.WithContext(ctx)).
		Joins("JOIN barbershop_favorites bf ON bf.barbershop_id = barbershops.id").
		Where("bf.user_id = ?", userID).
		Find(&shops).Error
	if err != nil {
		return nil, err
	}
	return shops, nil
}

// --------------------------------------------------
// Messages
// --------------------------------------------------

func (r *BookingGormRepository) CreateMessage(
	ctx context.Context,
	msg *models.Message,
) error {
	return r.db.WithContext(ctx).Create(msg).Error
}

func (r *BookingGormRepository) LinkMessage(
	ctx context.Context,
	shop *models.Barbershop,
	msg *models.Message,
) error {
	return r.db.WithContext(ctx).Model(shop).Association("Messages").Append(msg)
}

func (r *BookingGormRepository) ListThread(
	ctx context.Context,
	shopID, userID uint,
) ([]models.Message, error) {

	var msgs []models.Message
	err := r.db.WithContext(ctx).
		Preload("User").
		Joins("JOIN barbershop_messages bm ON bm.message_id = messages.id").
		Where("bm.barbershop_id = ? AND messages.user_id = ?", shopID, userID).
		Order("messages.created_at ASC").
		Find(&msgs).Error
	if err != nil {
		return nil, err
	}
	return msgs, nil
}

func (r *BookingGormRepository) ListShopMessages(
	ctx context.Context,
	shopID uint,
) ([]models.Message, error) {

	var msgs []models.Message
	err := r.db.WithContext(ctx).
		Preload("User").
		Joins("JOIN barbershop_messages bm ON bm.message_id = messages.id").
		Where("bm.barbershop_id = ?", shopID).
		Order("messages.created_at ASC").
		Find(&msgs).Error
	if err != nil {
		return nil, err
	}
	return msgs, nil
}

// --------------------------------------------------
// Shop of the month
// --------------------------------------------------

func (r *BookingGormRepository) TopRatedBarbershop(
	ctx context.Context,
) (*models.Barbershop, error) {

	var shop models.Barbershop
	err := WithShopAssociations(r.db.WithContext(ctx)).
		Order("rating DESC, id ASC").
		First(&shop).Error
	if err != nil {
		return nil, err
	}
	return &shop, nil
}

// Compile-time check
var _ domain.Repository = (*BookingGormRepository)(nil)
