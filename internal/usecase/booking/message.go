package booking

import (
	"context"

	"github.com/kbvnxl/ptown-backend/internal/audit"
	domain "github.com/kbvnxl/ptown-backend/internal/domain/booking"
	"github.com/kbvnxl/ptown-backend/internal/models"
)

type AddMessageInput struct {
	BarbershopID uint
	SenderID     uint
	Origin       string
	Text         string
}

type AddMessage struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewAddMessage(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *AddMessage {
	return &AddMessage{
		repo:  repo,
		audit: audit,
	}
}

// Execute records a message on the shop and returns the thread between the
// shop and the sender, oldest first.
func (uc *AddMessage) Execute(
	ctx context.Context,
	in AddMessageInput,
) ([]models.Message, error) {

	shop, err := uc.repo.GetBarbershop(ctx, in.BarbershopID)
	if err != nil {
		return nil, err
	}

	sender, err := uc.repo.GetUser(ctx, in.SenderID)
	if err != nil {
		return nil, err
	}

	msg := &models.Message{
		UserID: sender.ID,
		Origin: in.Origin,
		Text:   in.Text,
	}

	if err := uc.repo.CreateMessage(ctx, msg); err != nil {
		return nil, err
	}

	if err := uc.repo.LinkMessage(ctx, shop, msg); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		BarbershopID: &shop.ID,
		UserID:       &sender.ID,
		Action:       audit.ActionMessageSent,
		Entity:       "message",
		EntityID:     &msg.ID,
	})

	return uc.repo.ListThread(ctx, shop.ID, sender.ID)
}

// GroupThreadsBySender buckets a shop's messages under each sender's display
// name. Distinct users sharing a display name land in the same bucket; the
// grouping key is the name, not the identity.
func GroupThreadsBySender(msgs []models.Message) map[string][]models.Message {
	grouped := make(map[string][]models.Message)
	for _, msg := range msgs {
		name := msg.User.FullName()
		grouped[name] = append(grouped[name], msg)
	}
	return grouped
}
