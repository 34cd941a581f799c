package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/kbvnxl/ptown-backend/internal/httperr"
	"github.com/kbvnxl/ptown-backend/internal/httpresp"
	"github.com/kbvnxl/ptown-backend/internal/models"
	"github.com/kbvnxl/ptown-backend/internal/validators"
)

type ProfileHandler struct {
	db *gorm.DB
}

func NewProfileHandler(db *gorm.DB) *ProfileHandler {
	return &ProfileHandler{db: db}
}

// ======================================================
// REQUESTS
// ======================================================

type ProfileUserUpdate struct {
	Username  *string `json:"username"`
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Email     *string `json:"email"`
	Password  *string `json:"password"`
}

type UpdateProfileRequest struct {
	User *ProfileUserUpdate `json:"user"`

	ContactNumber *string `json:"contact_number"`
	Address       *string `json:"address"`
	AccountType   *string `json:"account_type"`

	// Shops owned or managed by this profile, linked by id.
	Barbershops []struct {
		ID uint `json:"id" binding:"required"`
	} `json:"barbershop"`
}

// ======================================================
// CRUD
// ======================================================

func (h *ProfileHandler) List(c *gin.Context) {
	q := h.db.Model(&models.Profile{}).
		Preload("User").
		Preload("Barbershops")

	if username := c.Query("user"); username != "" {
		q = q.Joins("JOIN users ON users.id = profiles.user_id").
			Where("users.username = ?", username)
	}
	if contact := c.Query("contact_number"); contact != "" {
		q = q.Where("contact_number = ?", contact)
	}
	if accountType := c.Query("account_type"); accountType != "" {
		q = q.Where("account_type = ?", accountType)
	}

	page, pageSize := paginationParams(c)

	var profiles []models.Profile
	if err := q.
		Order("profiles.id ASC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&profiles).Error; err != nil {
		httperr.Internal(c, "failed_to_list_profiles", "Could not list profiles.")
		return
	}

	httpresp.List(c, profiles)
}

// Create is open registration under the profile collection. The auth
// register endpoint delegates here in spirit: same shape, same rules.
func (h *ProfileHandler) Create(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid profile payload.")
		return
	}

	username := strings.TrimSpace(req.User.Username)

	var count int64
	h.db.Model(&models.User{}).Where("username = ?", username).Count(&count)
	if count > 0 {
		httperr.BadRequest(c, "username_already_exists", "Username is taken.")
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.User.Email))
	if !validators.IsEmailDomainValid(email) {
		httperr.BadRequest(c, "invalid_email_domain", "Email domain does not exist.")
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.User.Password), bcrypt.DefaultCost)
	if err != nil {
		httperr.Internal(c, "failed_to_hash_password", "Could not create profile.")
		return
	}

	user := models.User{
		Username:     username,
		FirstName:    req.User.FirstName,
		LastName:     req.User.LastName,
		Email:        email,
		PasswordHash: string(hashed),
	}

	profile := models.Profile{
		ContactNumber: req.ContactNumber,
		Address:       req.Address,
		AccountType:   req.AccountType,
	}

	err = h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&user).Error; err != nil {
			return err
		}
		profile.UserID = user.ID
		profile.User = user
		return tx.Create(&profile).Error
	})
	if err != nil {
		httperr.Internal(c, "failed_to_create_profile", "Could not create profile.")
		return
	}

	httpresp.Created(c, profile)
}

func (h *ProfileHandler) Get(c *gin.Context) {
	var profile models.Profile
	if err := h.db.
		Preload("User").
		Preload("Barbershops").
		First(&profile, c.Param("id")).Error; err != nil {
		httperr.NotFound(c, "profile_not_found", "Profile not found.")
		return
	}

	httpresp.OK(c, profile)
}

func (h *ProfileHandler) Update(c *gin.Context) {
	var profile models.Profile
	if err := h.db.Preload("User").First(&profile, c.Param("id")).Error; err != nil {
		httperr.NotFound(c, "profile_not_found", "Profile not found.")
		return
	}

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid update payload.")
		return
	}

	if req.ContactNumber != nil {
		profile.ContactNumber = *req.ContactNumber
	}
	if req.Address != nil {
		profile.Address = *req.Address
	}
	if req.AccountType != nil {
		if len(*req.AccountType) > 5 {
			httperr.BadRequest(c, "invalid_account_type", "Account type is too long.")
			return
		}
		profile.AccountType = *req.AccountType
	}

	if req.User != nil {
		if err := h.applyUserUpdate(c, &profile.User, req.User); err != nil {
			return // response already written
		}
	}

	err := h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&profile.User).Error; err != nil {
			return err
		}
		if err := tx.Omit("User", "Barbershops").Save(&profile).Error; err != nil {
			return err
		}
		for _, item := range req.Barbershops {
			var shop models.Barbershop
			if err := tx.First(&shop, item.ID).Error; err != nil {
				continue // unknown shop ids are skipped, not fatal
			}
			if err := tx.Model(&profile).Association("Barbershops").Append(&shop); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		httperr.Internal(c, "failed_to_update_profile", "Could not update profile.")
		return
	}

	var fresh models.Profile
	if err := h.db.
		Preload("User").
		Preload("Barbershops").
		First(&fresh, profile.ID).Error; err != nil {
		httperr.Internal(c, "failed_to_update_profile", "Could not reload profile.")
		return
	}

	httpresp.OK(c, fresh)
}

func (h *ProfileHandler) Delete(c *gin.Context) {
	var profile models.Profile
	if err := h.db.First(&profile, c.Param("id")).Error; err != nil {
		httperr.NotFound(c, "profile_not_found", "Profile not found.")
		return
	}

	err := h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&profile).Association("Barbershops").Clear(); err != nil {
			return err
		}
		if err := tx.Delete(&profile).Error; err != nil {
			return err
		}
		return tx.Delete(&models.User{}, profile.UserID).Error
	})
	if err != nil {
		httperr.Internal(c, "failed_to_delete_profile", "Could not delete profile.")
		return
	}

	c.Status(http.StatusNoContent)
}

// applyUserUpdate mutates user in place; on validation failure it writes
// the error response and returns a non-nil error.
func (h *ProfileHandler) applyUserUpdate(c *gin.Context, user *models.User, upd *ProfileUserUpdate) error {
	if upd.Username != nil {
		username := strings.TrimSpace(*upd.Username)
		if username != user.Username {
			var count int64
			h.db.Model(&models.User{}).Where("username = ?", username).Count(&count)
			if count > 0 {
				httperr.BadRequest(c, "username_already_exists", "Username is taken.")
				return gorm.ErrDuplicatedKey
			}
			user.Username = username
		}
	}
	if upd.FirstName != nil {
		user.FirstName = *upd.FirstName
	}
	if upd.LastName != nil {
		user.LastName = *upd.LastName
	}
	if upd.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*upd.Email))
		if !validators.IsEmailDomainValid(email) {
			httperr.BadRequest(c, "invalid_email_domain", "Email domain does not exist.")
			return gorm.ErrInvalidData
		}
		user.Email = email
	}
	if upd.Password != nil {
		hashed, err := bcrypt.GenerateFromPassword([]byte(*upd.Password), bcrypt.DefaultCost)
		if err != nil {
			httperr.Internal(c, "failed_to_hash_password", "Could not update profile.")
			return err
		}
		user.PasswordHash = string(hashed)
	}
	return nil
}
