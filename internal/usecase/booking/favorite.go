package booking

import (
	"context"

	"github.com/kbvnxl/ptown-backend/internal/audit"
	domain "github.com/kbvnxl/ptown-backend/internal/domain/booking"
	"github.com/kbvnxl/ptown-backend/internal/models"
)

type ToggleFavorite struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewToggleFavorite(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *ToggleFavorite {
	return &ToggleFavorite{
		repo:  repo,
		audit: audit,
	}
}

// Execute flips the favorite link for (shop, requester) and returns the
// requester's full favorites list. Toggling twice restores the original
// state; there are no separate add/remove verbs.
func (uc *ToggleFavorite) Execute(
	ctx context.Context,
	barbershopID uint,
	requesterID uint,
) ([]models.Barbershop, error) {

	shop, err := uc.repo.GetBarbershop(ctx, barbershopID)
	if err != nil {
		return nil, err
	}

	user, err := uc.repo.GetUser(ctx, requesterID)
	if err != nil {
		return nil, err
	}

	linked, err := uc.repo.IsFavorite(ctx, shop.ID, user.ID)
	if err != nil {
		return nil, err
	}

	if linked {
		err = uc.repo.UnlinkFavorite(ctx, shop, user)
	} else {
		err = uc.repo.LinkFavorite(ctx, shop, user)
	}
	if err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		BarbershopID: &shop.ID,
		UserID:       &user.ID,
		Action:       audit.ActionFavoriteToggled,
		Entity:       "barbershop",
		EntityID:     &shop.ID,
		Metadata:     map[string]any{"favorited": !linked},
	})

	return uc.repo.ListFavoriteShops(ctx, user.ID)
}
