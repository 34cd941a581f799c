package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/kbvnxl/ptown-backend/internal/config"
	"github.com/kbvnxl/ptown-backend/internal/httperr"
	"github.com/kbvnxl/ptown-backend/internal/models"
	"github.com/kbvnxl/ptown-backend/internal/validators"
)

type AuthHandler struct {
	db     *gorm.DB
	config *config.Config
}

func NewAuthHandler(db *gorm.DB, cfg *config.Config) *AuthHandler {
	return &AuthHandler{db: db, config: cfg}
}

// --------- Requests ---------

type RegisterUserRequest struct {
	Username  string `json:"username" binding:"required"`
	FirstName string `json:"first_name" binding:"required"`
	LastName  string `json:"last_name" binding:"required"`
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=6"`
}

type RegisterRequest struct {
	User RegisterUserRequest `json:"user" binding:"required"`

	ContactNumber string `json:"contact_number"`
	Address       string `json:"address"`
	AccountType   string `json:"account_type" binding:"required,max=5"`
}

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type RefreshRequest struct {
	Refresh string `json:"refresh" binding:"required"`
}

// --------- Handlers ---------

func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	username := strings.TrimSpace(req.User.Username)

	var count int64
	h.db.Model(&models.User{}).Where("username = ?", username).Count(&count)
	if count > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "username_already_exists"})
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.User.Email))
	if !validators.IsEmailDomainValid(email) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_email_domain"})
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.User.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_hash_password"})
		return
	}

	user := models.User{
		Username:     username,
		FirstName:    req.User.FirstName,
		LastName:     req.User.LastName,
		Email:        email,
		PasswordHash: string(hashed),
	}

	if err := h.db.Create(&user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_create_user"})
		return
	}

	profile := models.Profile{
		UserID:        user.ID,
		ContactNumber: req.ContactNumber,
		Address:       req.Address,
		AccountType:   req.AccountType,
	}

	if err := h.db.Create(&profile).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_create_profile"})
		return
	}

	access, refresh, err := h.generateTokens(&user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_generate_token"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"id":      user.ID,
		"user":    user,
		"profile": profile,
		"access":  access,
		"refresh": refresh,
	})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	var user models.User
	if err := h.db.Where("username = ?", strings.TrimSpace(req.Username)).
		First(&user).Error; err != nil {

		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid_credentials"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal_error"})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid_credentials"})
		return
	}

	access, refresh, err := h.generateTokens(&user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_generate_token"})
		return
	}

	// Clients key off the id field to load the profile after login.
	c.JSON(http.StatusOK, gin.H{
		"id":      user.ID,
		"access":  access,
		"refresh": refresh,
	})
}

func (h *AuthHandler) Refresh(c *gin.Context) {
	var req RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request"})
		return
	}

	token, err := jwt.Parse(req.Refresh, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenMalformed
		}
		return []byte(h.config.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		httperr.Unauthorized(c, "invalid_refresh_token", "Refresh token is invalid or expired.")
		return
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		httperr.Unauthorized(c, "invalid_token_claims", "Refresh token is invalid.")
		return
	}
	if typ, _ := claims["typ"].(string); typ != "refresh" {
		httperr.Unauthorized(c, "not_a_refresh_token", "An access token cannot be refreshed.")
		return
	}

	sub, ok := claims["sub"].(float64)
	if !ok {
		httperr.Unauthorized(c, "invalid_token_payload", "Refresh token is invalid.")
		return
	}

	var user models.User
	if err := h.db.First(&user, uint(sub)).Error; err != nil {
		httperr.Unauthorized(c, "invalid_refresh_token", "Refresh token is invalid.")
		return
	}

	access, err := h.signAccessToken(&user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_generate_token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"access": access})
}

// --------- JWT ---------

func (h *AuthHandler) signAccessToken(user *models.User) (string, error) {
	claims := jwt.MapClaims{
		"sub":      user.ID,
		"username": user.Username,
		"exp":      time.Now().Add(24 * time.Hour).Unix(),
		"iat":      time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(h.config.JWTSecret))
}

func (h *AuthHandler) generateTokens(user *models.User) (string, string, error) {
	access, err := h.signAccessToken(user)
	if err != nil {
		return "", "", err
	}

	refreshClaims := jwt.MapClaims{
		"sub": user.ID,
		"typ": "refresh",
		"exp": time.Now().Add(7 * 24 * time.Hour).Unix(),
		"iat": time.Now().Unix(),
	}

	refresh, err := jwt.NewWithClaims(jwt.SigningMethodHS256, refreshClaims).
		SignedString([]byte(h.config.JWTSecret))
	if err != nil {
		return "", "", err
	}

	return access, refresh, nil
}
