package booking

import (
	"context"

	"github.com/kbvnxl/ptown-backend/internal/models"
)

// Repository covers appointment, favorite and message persistence for the
// booking workflows. CreateAppointmentForShop must run the slot-exclusivity
// check and the insert atomically; when either slot rule is violated it
// returns httperr.ErrBusiness(httperr.CodeExistingAppointment).
type Repository interface {
	GetBarbershop(ctx context.Context, id uint) (*models.Barbershop, error)
	GetUser(ctx context.Context, id uint) (*models.User, error)
	GetAppointment(ctx context.Context, id uint) (*models.Appointment, error)

	CreateAppointmentForShop(ctx context.Context, shop *models.Barbershop, ap *models.Appointment) error
	IsAppointmentLinked(ctx context.Context, shopID, appointmentID uint) (bool, error)
	UnlinkAppointment(ctx context.Context, shop *models.Barbershop, ap *models.Appointment) error
	ListShopAppointments(ctx context.Context, shopID uint) ([]models.Appointment, error)
	ListShopsWithUserAppointments(ctx context.Context, userID uint) ([]models.Barbershop, error)

	IsFavorite(ctx context.Context, shopID, userID uint) (bool, error)
	LinkFavorite(ctx context.Context, shop *models.Barbershop, user *models.User) error
	UnlinkFavorite(ctx context.Context, shop *models.Barbershop, user *models.User) error
	ListFavoriteShops(ctx context.Context, userID uint) ([]models.Barbershop, error)

	CreateMessage(ctx context.Context, msg *models.Message) error
	LinkMessage(ctx context.Context, shop *models.Barbershop, msg *models.Message) error
	ListThread(ctx context.Context, shopID, userID uint) ([]models.Message, error)
	ListShopMessages(ctx context.Context, shopID uint) ([]models.Message, error)

	TopRatedBarbershop(ctx context.Context) (*models.Barbershop, error)
}
