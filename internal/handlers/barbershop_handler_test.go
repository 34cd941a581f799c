package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/kbvnxl/ptown-backend/internal/audit"
	infraRepo "github.com/kbvnxl/ptown-backend/internal/infra/repository"
	"github.com/kbvnxl/ptown-backend/internal/middleware"
	"github.com/kbvnxl/ptown-backend/internal/models"
	"github.com/kbvnxl/ptown-backend/internal/testutil"
	ucBooking "github.com/kbvnxl/ptown-backend/internal/usecase/booking"
	ucShop "github.com/kbvnxl/ptown-backend/internal/usecase/shop"
)

// newShopRouter wires the barbershop handler against an in-memory database.
// Secured routes get their user id injected directly instead of a JWT.
func newShopRouter(t *testing.T, db *gorm.DB, userID uint) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dispatcher := audit.NewDispatcher(audit.New(db))
	updateUC := ucShop.NewUpdateAggregate(infraRepo.NewShopStoreGorm(db), dispatcher)
	favoriteUC := ucBooking.NewToggleFavorite(infraRepo.NewBookingGormRepository(db), dispatcher)

	h := NewBarbershopHandler(db, nil, updateUC, favoriteUC)

	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set(middleware.ContextUserID, userID)
	})

	r.GET("/barbershops", h.List)
	r.POST("/barbershops", h.Create)
	r.GET("/barbershops/of-the-month", h.OfTheMonth)
	r.GET("/barbershops/:id", h.Get)
	r.PATCH("/barbershops/:id", h.Update)
	r.POST("/barbershops/:id/favorite", h.ToggleFavorite)

	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func TestOfTheMonthPicksHighestRating(t *testing.T) {
	db := testutil.NewDB(t)
	user := testutil.SeedUser(t, db, "juan")
	r := newShopRouter(t, db, user.ID)

	for _, seed := range []struct {
		name   string
		rating float64
	}{
		{"Mid Cuts", 4.5},
		{"Budget Cuts", 3.0},
		{"Tuff Cuts", 4.8},
	} {
		shop := testutil.SeedShop(t, db, seed.name)
		db.Model(shop).Update("rating", seed.rating)
	}

	w := doJSON(t, r, http.MethodGet, "/barbershops/of-the-month", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var shop models.Barbershop
	if err := json.Unmarshal(w.Body.Bytes(), &shop); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if shop.Name != "Tuff Cuts" {
		t.Fatalf("expected Tuff Cuts to win, got %q (rating %v)", shop.Name, shop.Rating)
	}
}

func TestCreateBarbershopNeverAcceptsRating(t *testing.T) {
	db := testutil.NewDB(t)
	user := testutil.SeedUser(t, db, "juan")
	r := newShopRouter(t, db, user.ID)

	w := doJSON(t, r, http.MethodPost, "/barbershops",
		`{"name":"Tuff Cuts","address":"123 Session Road","rating":5}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}

	var shop models.Barbershop
	if err := json.Unmarshal(w.Body.Bytes(), &shop); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if shop.Rating != 0 {
		t.Fatalf("client-supplied rating must be ignored, got %v", shop.Rating)
	}
}

func TestGetBarbershopNotFound(t *testing.T) {
	db := testutil.NewDB(t)
	user := testutil.SeedUser(t, db, "juan")
	r := newShopRouter(t, db, user.ID)

	w := doJSON(t, r, http.MethodGet, "/barbershops/999", "")
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}

func TestUpdateBarbershopAttachesNestedCollections(t *testing.T) {
	db := testutil.NewDB(t)
	user := testutil.SeedUser(t, db, "juan")
	shop := testutil.SeedShop(t, db, "Tuff Cuts")
	r := newShopRouter(t, db, user.ID)

	w := doJSON(t, r, http.MethodPatch, "/barbershops/1", `{
		"amenities": [{"name": "WiFi"}],
		"services": [{"name": "Haircut", "price": 150}],
		"hours": [{"day": "Monday", "opening_time": "09:00", "closing_time": "18:00"}],
		"comments": [{"text": "Great fade", "rating": 5, "type": "review"}]
	}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var updated models.Barbershop
	if err := json.Unmarshal(w.Body.Bytes(), &updated); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if updated.ID != shop.ID {
		t.Fatalf("expected shop %d, got %d", shop.ID, updated.ID)
	}
	if len(updated.Amenities) != 1 || len(updated.Services) != 1 ||
		len(updated.Hours) != 1 || len(updated.Comments) != 1 {
		t.Fatalf("expected every nested collection attached, got %+v", updated)
	}
	// The rating divisor runs one past the attached count: 5 / 2.
	if updated.Rating != 2.5 {
		t.Fatalf("expected rating 2.5 after a single five-star comment, got %v", updated.Rating)
	}
}

func TestToggleFavoriteEndpointFlipsState(t *testing.T) {
	db := testutil.NewDB(t)
	user := testutil.SeedUser(t, db, "juan")
	testutil.SeedShop(t, db, "Tuff Cuts")
	r := newShopRouter(t, db, user.ID)

	w := doJSON(t, r, http.MethodPost, "/barbershops/1/favorite", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var listed struct {
		Data  []models.Barbershop `json:"data"`
		Total int                 `json:"total"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &listed); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if listed.Total != 1 {
		t.Fatalf("expected 1 favorite after first toggle, got %d", listed.Total)
	}

	w = doJSON(t, r, http.MethodPost, "/barbershops/1/favorite", "")
	if err := json.Unmarshal(w.Body.Bytes(), &listed); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if listed.Total != 0 {
		t.Fatalf("expected no favorites after second toggle, got %d", listed.Total)
	}
}
