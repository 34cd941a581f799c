package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/kbvnxl/ptown-backend/internal/cache"
	domainShop "github.com/kbvnxl/ptown-backend/internal/domain/shop"
	"github.com/kbvnxl/ptown-backend/internal/httperr"
	"github.com/kbvnxl/ptown-backend/internal/httpresp"
	infraRepo "github.com/kbvnxl/ptown-backend/internal/infra/repository"
	"github.com/kbvnxl/ptown-backend/internal/middleware"
	"github.com/kbvnxl/ptown-backend/internal/models"
	ucBooking "github.com/kbvnxl/ptown-backend/internal/usecase/booking"
	ucShop "github.com/kbvnxl/ptown-backend/internal/usecase/shop"
)

const shopOfTheMonthCacheKey = "ptown:shop_of_the_month"

// ======================================================
// HANDLER
// ======================================================

type BarbershopHandler struct {
	db         *gorm.DB
	cache      *cache.Cache
	updateUC   *ucShop.UpdateAggregate
	favoriteUC *ucBooking.ToggleFavorite
}

func NewBarbershopHandler(
	db *gorm.DB,
	cch *cache.Cache,
	updateUC *ucShop.UpdateAggregate,
	favoriteUC *ucBooking.ToggleFavorite,
) *BarbershopHandler {
	return &BarbershopHandler{
		db:         db,
		cache:      cch,
		updateUC:   updateUC,
		favoriteUC: favoriteUC,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateBarbershopRequest struct {
	Name          string  `json:"name" binding:"required"`
	Description   string  `json:"description"`
	Address       string  `json:"address" binding:"required"`
	ContactNumber string  `json:"contact_number" binding:"max=11"`
	Latitude      float64 `json:"latitude"`
	Longitude     float64 `json:"longitude"`
}

// ======================================================
// CRUD
// ======================================================

func (h *BarbershopHandler) List(c *gin.Context) {
	q := infraRepo.WithShopAssociations(h.db)

	if name := c.Query("name"); name != "" {
		q = q.Where("name = ?", name)
	}
	if address := c.Query("address"); address != "" {
		q = q.Where("address = ?", address)
	}
	if rating := c.Query("rating"); rating != "" {
		if v, err := strconv.ParseFloat(rating, 64); err == nil {
			q = q.Where("rating = ?", v)
		}
	}

	page, pageSize := paginationParams(c)

	var shops []models.Barbershop
	if err := q.
		Order("id ASC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&shops).Error; err != nil {
		httperr.Internal(c, "failed_to_list_barbershops", "Could not list barbershops.")
		return
	}

	httpresp.List(c, shops)
}

func (h *BarbershopHandler) Create(c *gin.Context) {
	var req CreateBarbershopRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid barbershop payload.")
		return
	}

	// Rating is always derived from comments, never accepted from clients.
	shop := models.Barbershop{
		Name:          req.Name,
		Description:   req.Description,
		Address:       req.Address,
		ContactNumber: req.ContactNumber,
		Latitude:      req.Latitude,
		Longitude:     req.Longitude,
	}

	if err := h.db.Create(&shop).Error; err != nil {
		httperr.Internal(c, "failed_to_create_barbershop", "Could not create barbershop.")
		return
	}

	httpresp.Created(c, shop)
}

func (h *BarbershopHandler) Get(c *gin.Context) {
	var shop models.Barbershop
	if err := infraRepo.WithShopAssociations(h.db).
		First(&shop, c.Param("id")).Error; err != nil {
		httperr.NotFound(c, "barbershop_not_found", "Barbershop not found.")
		return
	}

	httpresp.OK(c, shop)
}

func (h *BarbershopHandler) Update(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	shopID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Invalid barbershop id.")
		return
	}

	var payload domainShop.UpdatePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid update payload.")
		return
	}

	shop, err := h.updateUC.Execute(c.Request.Context(), uint(shopID), userID, payload)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, "barbershop_not_found", "Barbershop not found.")
			return
		}
		httperr.Internal(c, "failed_to_update_barbershop", "Could not update barbershop.")
		return
	}

	// Rating may have moved; the cached winner might be stale now.
	h.cache.Delete(c.Request.Context(), shopOfTheMonthCacheKey)

	httpresp.OK(c, shop)
}

func (h *BarbershopHandler) Delete(c *gin.Context) {
	var shop models.Barbershop
	if err := h.db.First(&shop, c.Param("id")).Error; err != nil {
		httperr.NotFound(c, "barbershop_not_found", "Barbershop not found.")
		return
	}

	// Sub-entities are shared across shops: clear the links, keep the rows.
	for _, assoc := range []string{
		"Amenities", "Services", "Hours", "Comments",
		"Favorites", "Appointments", "Messages",
	} {
		if err := h.db.Model(&shop).Association(assoc).Clear(); err != nil {
			httperr.Internal(c, "failed_to_delete_barbershop", "Could not delete barbershop.")
			return
		}
	}

	if err := h.db.Delete(&shop).Error; err != nil {
		httperr.Internal(c, "failed_to_delete_barbershop", "Could not delete barbershop.")
		return
	}

	h.cache.Delete(c.Request.Context(), shopOfTheMonthCacheKey)

	c.Status(204)
}

// ======================================================
// SHOP OF THE MONTH
// ======================================================

func (h *BarbershopHandler) OfTheMonth(c *gin.Context) {
	ctx := c.Request.Context()

	var cached models.Barbershop
	if h.cache.GetJSON(ctx, shopOfTheMonthCacheKey, &cached) {
		httpresp.OK(c, cached)
		return
	}

	var shop models.Barbershop
	if err := infraRepo.WithShopAssociations(h.db).
		Order("rating DESC, id ASC").
		First(&shop).Error; err != nil {
		httperr.NotFound(c, "no_barbershops", "No barbershops registered yet.")
		return
	}

	h.cache.SetJSON(ctx, shopOfTheMonthCacheKey, shop)

	httpresp.OK(c, shop)
}

// ======================================================
// FAVORITES (toggle on POST)
// ======================================================

func (h *BarbershopHandler) ToggleFavorite(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	shopID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Invalid barbershop id.")
		return
	}

	favorites, err := h.favoriteUC.Execute(c.Request.Context(), uint(shopID), userID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, "barbershop_not_found", "Barbershop not found.")
			return
		}
		httperr.Internal(c, "failed_to_toggle_favorite", "Could not toggle favorite.")
		return
	}

	httpresp.List(c, favorites)
}

// ======================================================
// HELPERS
// ======================================================

func paginationParams(c *gin.Context) (page, pageSize int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	pageSize, _ = strconv.Atoi(c.DefaultQuery("page_size", "20"))
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	return page, pageSize
}
