package shop

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/kbvnxl/ptown-backend/internal/audit"
	domain "github.com/kbvnxl/ptown-backend/internal/domain/shop"
	"github.com/kbvnxl/ptown-backend/internal/models"
)

// ======================================================
// USE CASE
// ======================================================

// UpdateAggregate applies a partial payload of nested collections to one
// barbershop: every complete item is resolved find-or-create by its natural
// key and linked, incomplete items are skipped silently, favorites toggle,
// and the shop rating is recomputed whenever a comment is attached. The
// aggregate is persisted once at the end of the batch.
type UpdateAggregate struct {
	store domain.Store
	audit *audit.Dispatcher
}

func NewUpdateAggregate(
	store domain.Store,
	audit *audit.Dispatcher,
) *UpdateAggregate {
	return &UpdateAggregate{
		store: store,
		audit: audit,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *UpdateAggregate) Execute(
	ctx context.Context,
	shopID uint,
	requesterID uint,
	payload domain.UpdatePayload,
) (*models.Barbershop, error) {

	shop, err := uc.store.GetBarbershop(ctx, shopID)
	if err != nil {
		return nil, err
	}

	for _, item := range payload.Amenities {
		if !item.Complete() {
			continue
		}
		amenity, err := uc.store.FindOrCreateAmenity(ctx, item.Name)
		if err != nil {
			return nil, err
		}
		if err := uc.store.LinkAmenity(ctx, shop, amenity); err != nil {
			return nil, err
		}
	}

	for _, item := range payload.Services {
		if !item.Complete() {
			continue
		}
		service, err := uc.store.FindOrCreateService(ctx, item.Name, item.Price)
		if err != nil {
			return nil, err
		}
		if err := uc.store.LinkService(ctx, shop, service); err != nil {
			return nil, err
		}
	}

	for _, item := range payload.Hours {
		if !item.Complete() {
			continue
		}
		hours, err := uc.store.FindOrCreateHours(ctx, item.Day, item.OpeningTime, item.ClosingTime)
		if err != nil {
			return nil, err
		}
		if err := uc.store.LinkHours(ctx, shop, hours); err != nil {
			return nil, err
		}
	}

	for _, item := range payload.Comments {
		if !item.Complete() {
			continue
		}
		comment, err := uc.store.FindOrCreateComment(ctx, item.Text, item.Rating, item.Type, requesterID)
		if err != nil {
			return nil, err
		}
		if err := uc.store.LinkComment(ctx, shop, comment); err != nil {
			return nil, err
		}

		attached, err := uc.store.ListComments(ctx, shop.ID)
		if err != nil {
			return nil, err
		}
		shop.Rating = domain.RecomputeRating(attached)

		uc.audit.Dispatch(audit.Event{
			BarbershopID: &shop.ID,
			UserID:       &requesterID,
			Action:       audit.ActionCommentAttached,
			Entity:       "comment",
			EntityID:     &comment.ID,
		})
	}

	for _, item := range payload.Favorites {
		user, err := uc.store.GetUser(ctx, item.ID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			continue // unknown user ids are skipped, not fatal
		}
		if err != nil {
			return nil, err
		}
		linked, err := uc.store.IsFavorite(ctx, shop.ID, user.ID)
		if err != nil {
			return nil, err
		}
		if linked {
			err = uc.store.UnlinkFavorite(ctx, shop, user)
		} else {
			err = uc.store.LinkFavorite(ctx, shop, user)
		}
		if err != nil {
			return nil, err
		}
	}

	if err := uc.store.SaveBarbershop(ctx, shop); err != nil {
		return nil, err
	}

	return uc.store.GetBarbershop(ctx, shop.ID)
}
