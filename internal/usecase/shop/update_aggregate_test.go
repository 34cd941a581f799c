package shop

import (
	"context"
	"errors"
	"testing"

	"gorm.io/gorm"

	"github.com/kbvnxl/ptown-backend/internal/audit"
	domain "github.com/kbvnxl/ptown-backend/internal/domain/shop"
	infraRepo "github.com/kbvnxl/ptown-backend/internal/infra/repository"
	"github.com/kbvnxl/ptown-backend/internal/models"
	"github.com/kbvnxl/ptown-backend/internal/testutil"
)

func newUpdateAggregate(t *testing.T) (*UpdateAggregate, *gorm.DB) {
	t.Helper()

	db := testutil.NewDB(t)
	uc := NewUpdateAggregate(
		infraRepo.NewShopStoreGorm(db),
		audit.NewDispatcher(audit.New(db)),
	)

	return uc, db
}

func TestUpdateAggregateAmenitiesAreIdempotent(t *testing.T) {
	uc, db := newUpdateAggregate(t)
	shop := testutil.SeedShop(t, db, "Tuff Cuts")
	user := testutil.SeedUser(t, db, "juan")

	payload := domain.UpdatePayload{
		Amenities: []domain.AmenityItem{{Name: "WiFi"}, {Name: "Aircon"}},
	}

	if _, err := uc.Execute(context.Background(), shop.ID, user.ID, payload); err != nil {
		t.Fatalf("first update: %v", err)
	}
	updated, err := uc.Execute(context.Background(), shop.ID, user.ID, payload)
	if err != nil {
		t.Fatalf("second update: %v", err)
	}

	if len(updated.Amenities) != 2 {
		t.Fatalf("expected 2 amenities after repeat update, got %d", len(updated.Amenities))
	}
}

func TestUpdateAggregateSkipsIncompleteItems(t *testing.T) {
	uc, db := newUpdateAggregate(t)
	shop := testutil.SeedShop(t, db, "Tuff Cuts")
	user := testutil.SeedUser(t, db, "juan")

	payload := domain.UpdatePayload{
		Amenities: []domain.AmenityItem{{Name: ""}},
		Services:  []domain.ServiceItem{{Name: "Haircut"}},               // no price
		Hours:     []domain.HoursItem{{Day: "Monday", OpeningTime: "9"}}, // no closing
		Comments:  []domain.CommentItem{{Text: "nice", Type: "review"}},  // no rating
	}

	updated, err := uc.Execute(context.Background(), shop.ID, user.ID, payload)
	if err != nil {
		t.Fatalf("update: %v", err)
	}

	if len(updated.Amenities)+len(updated.Services)+len(updated.Hours)+len(updated.Comments) != 0 {
		t.Fatalf("incomplete items must be skipped, got %+v", updated)
	}
	if updated.Rating != 0 {
		t.Fatalf("rating must stay 0 when no comment attaches, got %v", updated.Rating)
	}
}

func TestUpdateAggregateRecomputesRatingPerComment(t *testing.T) {
	uc, db := newUpdateAggregate(t)
	shop := testutil.SeedShop(t, db, "Tuff Cuts")
	user := testutil.SeedUser(t, db, "juan")

	updated, err := uc.Execute(context.Background(), shop.ID, user.ID, domain.UpdatePayload{
		Comments: []domain.CommentItem{{Text: "Great fade", Rating: 5, Type: "review"}},
	})
	if err != nil {
		t.Fatalf("first comment: %v", err)
	}
	// Divisor counts one past the attached comments: 5 / 2.
	if updated.Rating != 2.5 {
		t.Fatalf("expected rating 2.5 after first five-star comment, got %v", updated.Rating)
	}

	updated, err = uc.Execute(context.Background(), shop.ID, user.ID, domain.UpdatePayload{
		Comments: []domain.CommentItem{{Text: "Solid trim", Rating: 4, Type: "review"}},
	})
	if err != nil {
		t.Fatalf("second comment: %v", err)
	}
	// (5 + 4) / 3.
	if updated.Rating != 3 {
		t.Fatalf("expected rating 3 after a 5 and a 4, got %v", updated.Rating)
	}
}

func TestUpdateAggregateDuplicateCommentDoesNotMoveRating(t *testing.T) {
	uc, db := newUpdateAggregate(t)
	shop := testutil.SeedShop(t, db, "Tuff Cuts")
	user := testutil.SeedUser(t, db, "juan")

	payload := domain.UpdatePayload{
		Comments: []domain.CommentItem{{Text: "Great fade", Rating: 5, Type: "review"}},
	}

	if _, err := uc.Execute(context.Background(), shop.ID, user.ID, payload); err != nil {
		t.Fatalf("first update: %v", err)
	}
	updated, err := uc.Execute(context.Background(), shop.ID, user.ID, payload)
	if err != nil {
		t.Fatalf("repeat update: %v", err)
	}

	if len(updated.Comments) != 1 {
		t.Fatalf("expected the same comment row to be reused, got %d", len(updated.Comments))
	}
	if updated.Rating != 2.5 {
		t.Fatalf("expected rating to stay 2.5, got %v", updated.Rating)
	}
}

func TestUpdateAggregateFavoritesToggle(t *testing.T) {
	uc, db := newUpdateAggregate(t)
	shop := testutil.SeedShop(t, db, "Tuff Cuts")
	owner := testutil.SeedUser(t, db, "owner")
	fan := testutil.SeedUser(t, db, "fan")

	payload := domain.UpdatePayload{
		Favorites: []domain.FavoriteItem{{ID: fan.ID}},
	}

	updated, err := uc.Execute(context.Background(), shop.ID, owner.ID, payload)
	if err != nil {
		t.Fatalf("toggle on: %v", err)
	}
	if len(updated.Favorites) != 1 {
		t.Fatalf("expected 1 favorite, got %d", len(updated.Favorites))
	}

	updated, err = uc.Execute(context.Background(), shop.ID, owner.ID, payload)
	if err != nil {
		t.Fatalf("toggle off: %v", err)
	}
	if len(updated.Favorites) != 0 {
		t.Fatalf("expected favorites cleared on second toggle, got %d", len(updated.Favorites))
	}
}

// brokenUserStore fails every user lookup with a non-not-found error.
type brokenUserStore struct {
	domain.Store
	err error
}

func (s brokenUserStore) GetUser(context.Context, uint) (*models.User, error) {
	return nil, s.err
}

func TestUpdateAggregateSurfacesUserLookupFailures(t *testing.T) {
	db := testutil.NewDB(t)
	store := brokenUserStore{
		Store: infraRepo.NewShopStoreGorm(db),
		err:   errors.New("connection reset"),
	}
	uc := NewUpdateAggregate(store, audit.NewDispatcher(audit.New(db)))

	shop := testutil.SeedShop(t, db, "Tuff Cuts")
	fan := testutil.SeedUser(t, db, "fan")

	_, err := uc.Execute(context.Background(), shop.ID, fan.ID, domain.UpdatePayload{
		Favorites: []domain.FavoriteItem{{ID: fan.ID}},
	})
	if !errors.Is(err, store.err) {
		t.Fatalf("expected the lookup failure to surface, got %v", err)
	}
}

func TestUpdateAggregateUnknownFavoriteUserIsSkipped(t *testing.T) {
	uc, db := newUpdateAggregate(t)
	shop := testutil.SeedShop(t, db, "Tuff Cuts")
	user := testutil.SeedUser(t, db, "juan")

	updated, err := uc.Execute(context.Background(), shop.ID, user.ID, domain.UpdatePayload{
		Amenities: []domain.AmenityItem{{Name: "WiFi"}},
		Favorites: []domain.FavoriteItem{{ID: 9999}},
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}

	if len(updated.Amenities) != 1 {
		t.Fatalf("amenity must still attach, got %d", len(updated.Amenities))
	}
	if len(updated.Favorites) != 0 {
		t.Fatalf("unknown user must not become a favorite, got %d", len(updated.Favorites))
	}
}
