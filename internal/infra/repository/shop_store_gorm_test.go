package repository

import (
	"context"
	"testing"

	"github.com/kbvnxl/ptown-backend/internal/models"
	"github.com/kbvnxl/ptown-backend/internal/testutil"
)

func TestFindOrCreateAmenityIsIdempotent(t *testing.T) {
	db := testutil.NewDB(t)
	store := NewShopStoreGorm(db)
	ctx := context.Background()

	first, err := store.FindOrCreateAmenity(ctx, "WiFi")
	if err != nil {
		t.Fatalf("first find-or-create: %v", err)
	}
	second, err := store.FindOrCreateAmenity(ctx, "WiFi")
	if err != nil {
		t.Fatalf("second find-or-create: %v", err)
	}

	if first.ID != second.ID {
		t.Fatalf("expected same amenity row, got ids %d and %d", first.ID, second.ID)
	}

	var count int64
	db.Model(&models.Amenity{}).Count(&count)
	if count != 1 {
		t.Fatalf("expected 1 amenity row, got %d", count)
	}
}

func TestFindOrCreateServiceKeyedOnNameAndPrice(t *testing.T) {
	db := testutil.NewDB(t)
	store := NewShopStoreGorm(db)
	ctx := context.Background()

	cheap, err := store.FindOrCreateService(ctx, "Haircut", 150)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	pricey, err := store.FindOrCreateService(ctx, "Haircut", 250)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	again, err := store.FindOrCreateService(ctx, "Haircut", 150)
	if err != nil {
		t.Fatalf("re-query: %v", err)
	}

	if cheap.ID == pricey.ID {
		t.Fatal("different prices must produce different service rows")
	}
	if cheap.ID != again.ID {
		t.Fatal("same name and price must reuse the existing row")
	}
}

func TestLinkAmenityTwiceKeepsOneLink(t *testing.T) {
	db := testutil.NewDB(t)
	store := NewShopStoreGorm(db)
	ctx := context.Background()

	shop := testutil.SeedShop(t, db, "Tuff Cuts")
	amenity, err := store.FindOrCreateAmenity(ctx, "Aircon")
	if err != nil {
		t.Fatalf("find-or-create: %v", err)
	}

	if err := store.LinkAmenity(ctx, shop, amenity); err != nil {
		t.Fatalf("first link: %v", err)
	}
	if err := store.LinkAmenity(ctx, shop, amenity); err != nil {
		t.Fatalf("second link: %v", err)
	}

	fresh, err := store.GetBarbershop(ctx, shop.ID)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if len(fresh.Amenities) != 1 {
		t.Fatalf("expected 1 linked amenity, got %d", len(fresh.Amenities))
	}
}

func TestListCommentsReturnsOnlyLinked(t *testing.T) {
	db := testutil.NewDB(t)
	store := NewShopStoreGorm(db)
	ctx := context.Background()

	shop := testutil.SeedShop(t, db, "Tuff Cuts")
	other := testutil.SeedShop(t, db, "Mang Ben's")
	user := testutil.SeedUser(t, db, "juan")

	mine, err := store.FindOrCreateComment(ctx, "Great fade", 5, "review", user.ID)
	if err != nil {
		t.Fatalf("create comment: %v", err)
	}
	theirs, err := store.FindOrCreateComment(ctx, "Long wait", 2, "review", user.ID)
	if err != nil {
		t.Fatalf("create comment: %v", err)
	}

	if err := store.LinkComment(ctx, shop, mine); err != nil {
		t.Fatalf("link: %v", err)
	}
	if err := store.LinkComment(ctx, other, theirs); err != nil {
		t.Fatalf("link: %v", err)
	}

	comments, err := store.ListComments(ctx, shop.ID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(comments) != 1 || comments[0].ID != mine.ID {
		t.Fatalf("expected only the shop's own comment, got %+v", comments)
	}
}

func TestFavoriteLinkUnlink(t *testing.T) {
	db := testutil.NewDB(t)
	store := NewShopStoreGorm(db)
	ctx := context.Background()

	shop := testutil.SeedShop(t, db, "Tuff Cuts")
	user := testutil.SeedUser(t, db, "juan")

	linked, err := store.IsFavorite(ctx, shop.ID, user.ID)
	if err != nil || linked {
		t.Fatalf("expected not favorited, got linked=%v err=%v", linked, err)
	}

	if err := store.LinkFavorite(ctx, shop, user); err != nil {
		t.Fatalf("link: %v", err)
	}
	if linked, _ = store.IsFavorite(ctx, shop.ID, user.ID); !linked {
		t.Fatal("expected favorited after link")
	}

	if err := store.UnlinkFavorite(ctx, shop, user); err != nil {
		t.Fatalf("unlink: %v", err)
	}
	if linked, _ = store.IsFavorite(ctx, shop.ID, user.ID); linked {
		t.Fatal("expected not favorited after unlink")
	}
}

func TestSaveBarbershopKeepsAssociations(t *testing.T) {
	db := testutil.NewDB(t)
	store := NewShopStoreGorm(db)
	ctx := context.Background()

	shop := testutil.SeedShop(t, db, "Tuff Cuts")
	amenity, err := store.FindOrCreateAmenity(ctx, "WiFi")
	if err != nil {
		t.Fatalf("find-or-create: %v", err)
	}
	if err := store.LinkAmenity(ctx, shop, amenity); err != nil {
		t.Fatalf("link: %v", err)
	}

	shop.Rating = 4.5
	if err := store.SaveBarbershop(ctx, shop); err != nil {
		t.Fatalf("save: %v", err)
	}

	fresh, err := store.GetBarbershop(ctx, shop.ID)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if fresh.Rating != 4.5 {
		t.Fatalf("expected rating 4.5, got %v", fresh.Rating)
	}
	if len(fresh.Amenities) != 1 {
		t.Fatalf("expected amenity link to survive save, got %d", len(fresh.Amenities))
	}
}
