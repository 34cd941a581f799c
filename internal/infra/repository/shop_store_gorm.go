package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	domain "github.com/kbvnxl/ptown-backend/internal/domain/shop"
	"github.com/kbvnxl/ptown-backend/internal/httperr"
	"github.com/kbvnxl/ptown-backend/internal/models"
)

type ShopStoreGorm struct {
	db *gorm.DB
}

func NewShopStoreGorm(db *gorm.DB) *ShopStoreGorm {
	return &ShopStoreGorm{db: db}
}

// --------------------------------------------------
// Lookups
// --------------------------------------------------

func (r *ShopStoreGorm) GetBarbershop(
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

func (r *ShopStoreGorm) GetUser(
	ctx context.Context,
	id uint,
) (*models.User, error) {

	var user models.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// --------------------------------------------------
// Find-or-create by natural key
// --------------------------------------------------

// findOrCreate looks up by the query args, creates on miss, and re-queries
// when the insert loses a uniqueness race to a concurrent identical request.
func findOrCreate[T any](
	db *gorm.DB,
	create *T,
	query string,
	args ...any,
) (*T, error) {

	var found T
	err := db.Where(query, args...).First(&found).Error
	if err == nil {
		return &found, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	if err := db.Create(create).Error; err != nil {
		if httperr.IsUniqueViolation(err) {
			if err2 := db.Where(query, args...).First(&found).Error; err2 == nil {
				return &found, nil
			}
		}
		return nil, err
	}
	return create, nil
}

func (r *ShopStoreGorm) FindOrCreateAmenity(
	ctx context.Context,
	name string,
) (*models.Amenity, error) {

	return findOrCreate(
		r.db.WithContext(ctx),
		&models.Amenity{Name: name},
		"name = ?", name,
	)
}

func (r *ShopStoreGorm) FindOrCreateService(
	ctx context.Context,
	name string,
	price float64,
) (*models.Service, error) {

	return findOrCreate(
		r.db.WithContext(ctx),
		&models.Service{Name: name, Price: price},
		"name = ? AND price = ?", name, price,
	)
}

func (r *ShopStoreGorm) FindOrCreateHours(
	ctx context.Context,
	day, opening, closing string,
) (*models.OperationHours, error) {

	return findOrCreate(
		r.db.WithContext(ctx),
		&models.OperationHours{Day: day, OpeningTime: opening, ClosingTime: closing},
		"day = ? AND opening_time = ? AND closing_time = ?", day, opening, closing,
	)
}

func (r *ShopStoreGorm) FindOrCreateComment(
	ctx context.Context,
	text string,
	rating float64,
	commentType string,
	userID uint,
) (*models.Comment, error) {

	return findOrCreate(
		r.db.WithContext(ctx),
		&models.Comment{Text: text, Rating: rating, Type: commentType, UserID: userID},
		"text = ? AND rating = ? AND type = ? AND user_id = ?",
		text, rating, commentType, userID,
	)
}

// --------------------------------------------------
// Links (double-link is a no-op: gorm upserts the join row)
// --------------------------------------------------

func (r *ShopStoreGorm) LinkAmenity(
	ctx context.Context,
	shop *models.Barbershop,
	amenity *models.Amenity,
) error {
	return r.db.WithContext(ctx).Model(shop).Association("Amenities").Append(amenity)
}

func (r *ShopStoreGorm) LinkService(
	ctx context.Context,
	shop *models.Barbershop,
	service *models.Service,
) error {
	return r.db.WithContext(ctx).Model(shop).Association("Services").Append(service)
}

func (r *ShopStoreGorm) LinkHours(
	ctx context.Context,
	shop *models.Barbershop,
	hours *models.OperationHours,
) error {
	return r.db.WithContext(ctx).Model(shop).Association("Hours").Append(hours)
}

func (r *ShopStoreGorm) LinkComment(
	ctx context.Context,
	shop *models.Barbershop,
	comment *models.Comment,
) error {
	return r.db.WithContext(ctx).Model(shop).Association("Comments").Append(comment)
}

// --------------------------------------------------
// Favorites
// --------------------------------------------------

func (r *ShopStoreGorm) IsFavorite(
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

func (r *ShopStoreGorm) LinkFavorite(
	ctx context.Context,
	shop *models.Barbershop,
	user *models.User,
) error {
	return r.db.WithContext(ctx).Model(shop).Association("Favorites").Append(user)
}

func (r *ShopStoreGorm) UnlinkFavorite(
	ctx context.Context,
	shop *models.Barbershop,
	user *models.User,
) error {
	return r.db.WithContext(ctx).Model(shop).Association("Favorites").Delete(user)
}

// --------------------------------------------------
// Comments / persist
// --------------------------------------------------

func (r *ShopStoreGorm) ListComments(
	ctx context.Context,
	shopID uint,
) ([]models.Comment, error) {

	var comments []models.Comment
	err := r.db.WithContext(ctx).
		Model(&models.Barbershop{ID: shopID}).
		Association("Comments").
		Find(&comments)
	if err != nil {
		return nil, err
	}
	return comments, nil
}

func (r *ShopStoreGorm) SaveBarbershop(
	ctx context.Context,
	shop *models.Barbershop,
) error {
	return r.db.WithContext(ctx).
		Omit("Amenities", "Services", "Hours", "Comments", "Favorites", "Appointments", "Messages").
		Save(shop).Error
}

// Compile-time check
var _ domain.Store = (*ShopStoreGorm)(nil)
