package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/kbvnxl/ptown-backend/internal/httperr"
	"github.com/kbvnxl/ptown-backend/internal/httpresp"
	"github.com/kbvnxl/ptown-backend/internal/middleware"
	"github.com/kbvnxl/ptown-backend/internal/models"
	ucBooking "github.com/kbvnxl/ptown-backend/internal/usecase/booking"
)

type AppointmentHandler struct {
	db       *gorm.DB
	createUC *ucBooking.CreateAppointment
	cancelUC *ucBooking.CancelAppointment
}

func NewAppointmentHandler(
	db *gorm.DB,
	createUC *ucBooking.CreateAppointment,
	cancelUC *ucBooking.CancelAppointment,
) *AppointmentHandler {
	return &AppointmentHandler{
		db:       db,
		createUC: createUC,
		cancelUC: cancelUC,
	}
}

// ======================================================
// REQUESTS
// ======================================================

// Appointments always belong to the caller; there is no booking on
// someone else's behalf.
type BookAppointmentRequest struct {
	Date string `json:"date" binding:"required"`
	Time string `json:"time" binding:"required"`
}

type CancelAppointmentRequest struct {
	ID uint `json:"id" binding:"required"`
}

// ======================================================
// BOOKING (scoped to a shop)
// ======================================================

func (h *AppointmentHandler) Book(c *gin.Context) {
	requesterID := c.MustGet(middleware.ContextUserID).(uint)

	shopID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Invalid barbershop id.")
		return
	}

	var req BookAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid appointment payload.")
		return
	}

	appointments, err := h.createUC.Execute(c.Request.Context(), ucBooking.CreateAppointmentInput{
		BarbershopID: uint(shopID),
		UserID:       requesterID,
		Date:         req.Date,
		Time:         req.Time,
	})
	if err != nil {
		switch {
		case httperr.IsBusiness(err, httperr.CodeExistingAppointment):
			httperr.Conflict(c, httperr.CodeExistingAppointment, "There is an existing appointment")
		case httperr.IsBusiness(err, "invalid_date"):
			httperr.BadRequest(c, "invalid_date", "Date must be formatted YYYY-MM-DD.")
		case httperr.IsBusiness(err, "invalid_time"):
			httperr.BadRequest(c, "invalid_time", "Time must be formatted HH:MM.")
		case err == gorm.ErrRecordNotFound:
			httperr.NotFound(c, "barbershop_not_found", "Barbershop not found.")
		default:
			httperr.Internal(c, "failed_to_book_appointment", "Could not book appointment.")
		}
		return
	}

	c.JSON(201, httpresp.ListResponse[models.Appointment]{
		Data:  appointments,
		Total: len(appointments),
	})
}

func (h *AppointmentHandler) Cancel(c *gin.Context) {
	requesterID := c.MustGet(middleware.ContextUserID).(uint)

	shopID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Invalid barbershop id.")
		return
	}

	var req CancelAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid cancel payload.")
		return
	}

	appointments, err := h.cancelUC.Execute(c.Request.Context(), uint(shopID), requesterID, req.ID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, httperr.CodeNotFound, "Barbershop or appointment not found.")
			return
		}
		httperr.Internal(c, "failed_to_cancel_appointment", "Could not cancel appointment.")
		return
	}

	httpresp.List(c, appointments)
}

func (h *AppointmentHandler) ListForShop(c *gin.Context) {
	var shop models.Barbershop
	if err := h.db.
		Preload("Appointments", func(db *gorm.DB) *gorm.DB {
			return db.Order("appointments.date ASC, appointments.time ASC")
		}).
		Preload("Appointments.User").
		First(&shop, c.Param("id")).Error; err != nil {
		httperr.NotFound(c, "barbershop_not_found", "Barbershop not found.")
		return
	}

	httpresp.List(c, shop.Appointments)
}

// ======================================================
// FLAT COLLECTION
// ======================================================

func (h *AppointmentHandler) List(c *gin.Context) {
	q := h.db.Model(&models.Appointment{}).Preload("User")

	if date := c.Query("date"); date != "" {
		q = q.Where("date = ?", date)
	}
	if status := c.Query("status"); status != "" {
		q = q.Where("status = ?", status)
	}

	page, pageSize := paginationParams(c)

	var appointments []models.Appointment
	if err := q.
		Order("date ASC, time ASC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&appointments).Error; err != nil {
		httperr.Internal(c, "failed_to_list_appointments", "Could not list appointments.")
		return
	}

	httpresp.List(c, appointments)
}

func (h *AppointmentHandler) Get(c *gin.Context) {
	var ap models.Appointment
	if err := h.db.Preload("User").First(&ap, c.Param("id")).Error; err != nil {
		httperr.NotFound(c, "appointment_not_found", "Appointment not found.")
		return
	}

	httpresp.OK(c, ap)
}
