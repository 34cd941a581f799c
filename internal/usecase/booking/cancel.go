package booking

import (
	"context"

	"github.com/kbvnxl/ptown-backend/internal/audit"
	domain "github.com/kbvnxl/ptown-backend/internal/domain/booking"
	"github.com/kbvnxl/ptown-backend/internal/models"
)

type CancelAppointment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewCancelAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *CancelAppointment {
	return &CancelAppointment{
		repo:  repo,
		audit: audit,
	}
}

// Execute detaches the appointment from the shop and returns the remaining
// list. The row itself survives and its status never changes; cancelling an
// appointment that is not linked is a no-op.
func (uc *CancelAppointment) Execute(
	ctx context.Context,
	barbershopID uint,
	requesterID uint,
	appointmentID uint,
) ([]models.Appointment, error) {

	shop, err := uc.repo.GetBarbershop(ctx, barbershopID)
	if err != nil {
		return nil, err
	}

	ap, err := uc.repo.GetAppointment(ctx, appointmentID)
	if err != nil {
		return nil, err
	}

	linked, err := uc.repo.IsAppointmentLinked(ctx, shop.ID, ap.ID)
	if err != nil {
		return nil, err
	}

	if linked {
		if err := uc.repo.UnlinkAppointment(ctx, shop, ap); err != nil {
			return nil, err
		}

		uc.audit.Dispatch(audit.Event{
			BarbershopID: &shop.ID,
			UserID:       &requesterID,
			Action:       audit.ActionAppointmentCancel,
			Entity:       "appointment",
			EntityID:     &ap.ID,
		})
	}

	return uc.repo.ListShopAppointments(ctx, shop.ID)
}
