package handlers

import (
	"fmt"
	"io"
	"mime/multipart"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/kbvnxl/ptown-backend/internal/httperr"
	"github.com/kbvnxl/ptown-backend/internal/httpresp"
	"github.com/kbvnxl/ptown-backend/internal/models"
	"github.com/kbvnxl/ptown-backend/internal/storage"
	"github.com/kbvnxl/ptown-backend/internal/validators"
)

// 8 MiB, multipart form field "file".
const maxUploadSize = 8 << 20

type UploadHandler struct {
	db      *gorm.DB
	storage storage.ObjectStorage
}

func NewUploadHandler(db *gorm.DB, store storage.ObjectStorage) *UploadHandler {
	return &UploadHandler{db: db, storage: store}
}

// ======================================================
// BARBERSHOP UPLOADS
// ======================================================

// ShopPhoto replaces the shop banner. Banners are re-encoded to webp and
// downscaled before they hit object storage.
func (h *UploadHandler) ShopPhoto(c *gin.Context) {
	if h.storage == nil {
		httperr.Internal(c, "storage_not_configured", "Object storage is not configured.")
		return
	}

	var shop models.Barbershop
	if err := h.db.First(&shop, c.Param("id")).Error; err != nil {
		httperr.NotFound(c, "barbershop_not_found", "Barbershop not found.")
		return
	}

	data, _, ok := h.readUpload(c)
	if !ok {
		return
	}

	processed, err := storage.ProcessBanner(data)
	if err != nil {
		httperr.BadRequest(c, httperr.CodeInvalidUpload, "File is not a decodable image.")
		return
	}

	key := fmt.Sprintf("barbershops/%d/photo-%s.webp", shop.ID, uuid.NewString())
	url, err := h.storage.Put(c.Request.Context(), key, processed, "image/webp")
	if err != nil {
		httperr.Internal(c, "failed_to_store_file", "Could not store file.")
		return
	}

	if err := h.db.Model(&shop).Update("photo_url", url).Error; err != nil {
		httperr.Internal(c, "failed_to_update_barbershop", "Could not save photo URL.")
		return
	}

	httpresp.OK(c, gin.H{"photo": url})
}

// ShopDocument stores the verification document as uploaded, no re-encode.
func (h *UploadHandler) ShopDocument(c *gin.Context) {
	if h.storage == nil {
		httperr.Internal(c, "storage_not_configured", "Object storage is not configured.")
		return
	}

	var shop models.Barbershop
	if err := h.db.First(&shop, c.Param("id")).Error; err != nil {
		httperr.NotFound(c, "barbershop_not_found", "Barbershop not found.")
		return
	}

	data, header, ok := h.readUpload(c)
	if !ok {
		return
	}

	ext := strings.ToLower(filepath.Ext(header.Filename))
	key := fmt.Sprintf("barbershops/%d/document-%s%s", shop.ID, uuid.NewString(), ext)
	url, err := h.storage.Put(c.Request.Context(), key, data, contentTypeForExt(ext))
	if err != nil {
		httperr.Internal(c, "failed_to_store_file", "Could not store file.")
		return
	}

	if err := h.db.Model(&shop).Update("document_url", url).Error; err != nil {
		httperr.Internal(c, "failed_to_update_barbershop", "Could not save document URL.")
		return
	}

	httpresp.OK(c, gin.H{"document": url})
}

// ======================================================
// PROFILE UPLOADS
// ======================================================

func (h *UploadHandler) ProfilePhoto(c *gin.Context) {
	if h.storage == nil {
		httperr.Internal(c, "storage_not_configured", "Object storage is not configured.")
		return
	}

	var profile models.Profile
	if err := h.db.First(&profile, c.Param("id")).Error; err != nil {
		httperr.NotFound(c, "profile_not_found", "Profile not found.")
		return
	}

	data, header, ok := h.readUpload(c)
	if !ok {
		return
	}

	ext := strings.ToLower(filepath.Ext(header.Filename))
	key := fmt.Sprintf("profiles/%d/photo-%s%s", profile.ID, uuid.NewString(), ext)
	url, err := h.storage.Put(c.Request.Context(), key, data, contentTypeForExt(ext))
	if err != nil {
		httperr.Internal(c, "failed_to_store_file", "Could not store file.")
		return
	}

	if err := h.db.Model(&profile).Update("photo_url", url).Error; err != nil {
		httperr.Internal(c, "failed_to_update_profile", "Could not save photo URL.")
		return
	}

	httpresp.OK(c, gin.H{"photo": url})
}

// ======================================================
// HELPERS
// ======================================================

func (h *UploadHandler) readUpload(c *gin.Context) ([]byte, *multipart.FileHeader, bool) {
	header, err := c.FormFile("file")
	if err != nil {
		httperr.BadRequest(c, httperr.CodeInvalidUpload, "Multipart field 'file' is required.")
		return nil, nil, false
	}

	if !validators.IsAllowedImageExtension(header.Filename) {
		httperr.BadRequest(c, httperr.CodeInvalidUpload, "Only .jpg, .jpeg and .png files are accepted.")
		return nil, nil, false
	}

	if header.Size > maxUploadSize {
		httperr.BadRequest(c, httperr.CodeInvalidUpload, "File exceeds the upload size limit.")
		return nil, nil, false
	}

	f, err := header.Open()
	if err != nil {
		httperr.Internal(c, "failed_to_read_file", "Could not read uploaded file.")
		return nil, nil, false
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, maxUploadSize+1))
	if err != nil {
		httperr.Internal(c, "failed_to_read_file", "Could not read uploaded file.")
		return nil, nil, false
	}

	return data, header, true
}

func contentTypeForExt(ext string) string {
	switch ext {
	case ".png":
		return "image/png"
	default:
		return "image/jpeg"
	}
}
