package booking

import (
	"context"
	"time"

	"github.com/kbvnxl/ptown-backend/internal/audit"
	domain "github.com/kbvnxl/ptown-backend/internal/domain/booking"
	"github.com/kbvnxl/ptown-backend/internal/httperr"
	"github.com/kbvnxl/ptown-backend/internal/models"
)

// ======================================================
// INPUT
// ======================================================

type CreateAppointmentInput struct {
	BarbershopID uint
	UserID       uint
	Date         string // 2006-01-02
	Time         string // 15:04
}

// ======================================================
// USE CASE
// ======================================================

type CreateAppointment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewCreateAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *CreateAppointment {
	return &CreateAppointment{
		repo:  repo,
		audit: audit,
	}
}

// ======================================================
// EXECUTE
// ======================================================

// Execute books a slot and returns the shop's full appointment list. A slot
// already taken anywhere on the platform, or a second booking by the same
// user on the same date, fails with the existing-appointment business error.
func (uc *CreateAppointment) Execute(
	ctx context.Context,
	in CreateAppointmentInput,
) ([]models.Appointment, error) {

	if _, err := time.Parse("2006-01-02", in.Date); err != nil {
		return nil, httperr.ErrBusiness("invalid_date")
	}
	if _, err := time.Parse("15:04", in.Time); err != nil {
		return nil, httperr.ErrBusiness("invalid_time")
	}

	shop, err := uc.repo.GetBarbershop(ctx, in.BarbershopID)
	if err != nil {
		return nil, err
	}

	ap := &models.Appointment{
		UserID: in.UserID,
		Date:   in.Date,
		Time:   in.Time,
		Status: models.AppointmentStatusPending,
	}

	if err := uc.repo.CreateAppointmentForShop(ctx, shop, ap); err != nil {
		if httperr.IsBusiness(err, httperr.CodeExistingAppointment) {
			uc.audit.Dispatch(audit.Event{
				BarbershopID: &shop.ID,
				UserID:       &in.UserID,
				Action:       audit.ActionAppointmentConflict,
				Entity:       "appointment",
				Metadata: map[string]any{
					"date": in.Date,
					"time": in.Time,
				},
			})
		}
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		BarbershopID: &shop.ID,
		UserID:       &in.UserID,
		Action:       audit.ActionAppointmentCreated,
		Entity:       "appointment",
		EntityID:     &ap.ID,
	})

	return uc.repo.ListShopAppointments(ctx, shop.ID)
}
