package shop

import (
	"context"

	"github.com/kbvnxl/ptown-backend/internal/models"
)

// Store is the persistence surface the aggregate mutator works against.
// Find-or-create methods are idempotent: a uniqueness collision from a
// concurrent identical request is absorbed by re-querying, never surfaced.
// Link methods tolerate "already linked" as a no-op.
type Store interface {
	GetBarbershop(ctx context.Context, id uint) (*models.Barbershop, error)
	GetUser(ctx context.Context, id uint) (*models.User, error)

	FindOrCreateAmenity(ctx context.Context, name string) (*models.Amenity, error)
	FindOrCreateService(ctx context.Context, name string, price float64) (*models.Service, error)
	FindOrCreateHours(ctx context.Context, day, opening, closing string) (*models.OperationHours, error)
	FindOrCreateComment(ctx context.Context, text string, rating float64, commentType string, userID uint) (*models.Comment, error)

	LinkAmenity(ctx context.Context, shop *models.Barbershop, amenity *models.Amenity) error
	LinkService(ctx context.Context, shop *models.Barbershop, service *models.Service) error
	LinkHours(ctx context.Context, shop *models.Barbershop, hours *models.OperationHours) error
	LinkComment(ctx context.Context, shop *models.Barbershop, comment *models.Comment) error

	IsFavorite(ctx context.Context, shopID, userID uint) (bool, error)
	LinkFavorite(ctx context.Context, shop *models.Barbershop, user *models.User) error
	UnlinkFavorite(ctx context.Context, shop *models.Barbershop, user *models.User) error

	ListComments(ctx context.Context, shopID uint) ([]models.Comment, error)

	SaveBarbershop(ctx context.Context, shop *models.Barbershop) error
}
