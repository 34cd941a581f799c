package handlers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	domainBooking "github.com/kbvnxl/ptown-backend/internal/domain/booking"
	"github.com/kbvnxl/ptown-backend/internal/httperr"
	"github.com/kbvnxl/ptown-backend/internal/httpresp"
	"github.com/kbvnxl/ptown-backend/internal/middleware"
	"github.com/kbvnxl/ptown-backend/internal/models"
)

type MeHandler struct {
	db   *gorm.DB
	repo domainBooking.Repository
}

func NewMeHandler(db *gorm.DB, repo domainBooking.Repository) *MeHandler {
	return &MeHandler{db: db, repo: repo}
}

func (h *MeHandler) Get(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	var profile models.Profile
	if err := h.db.
		Preload("User").
		Preload("Barbershops").
		Where("user_id = ?", userID).
		First(&profile).Error; err != nil {
		httperr.NotFound(c, "profile_not_found", "No profile for this account.")
		return
	}

	httpresp.OK(c, profile)
}

func (h *MeHandler) Favorites(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	shops, err := h.repo.ListFavoriteShops(c.Request.Context(), userID)
	if err != nil {
		httperr.Internal(c, "failed_to_list_favorites", "Could not list favorites.")
		return
	}

	httpresp.List(c, shops)
}

// Appointments lists the shops where the caller holds bookings. Each shop
// comes back with only the caller's appointments attached.
func (h *MeHandler) Appointments(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	shops, err := h.repo.ListShopsWithUserAppointments(c.Request.Context(), userID)
	if err != nil {
		httperr.Internal(c, "failed_to_list_appointments", "Could not list appointments.")
		return
	}

	httpresp.List(c, shops)
}
