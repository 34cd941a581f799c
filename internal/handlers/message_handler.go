package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	domainBooking "github.com/kbvnxl/ptown-backend/internal/domain/booking"
	"github.com/kbvnxl/ptown-backend/internal/httperr"
	"github.com/kbvnxl/ptown-backend/internal/httpresp"
	"github.com/kbvnxl/ptown-backend/internal/middleware"
	ucBooking "github.com/kbvnxl/ptown-backend/internal/usecase/booking"
)

type MessageHandler struct {
	repo  domainBooking.Repository
	addUC *ucBooking.AddMessage
}

func NewMessageHandler(repo domainBooking.Repository, addUC *ucBooking.AddMessage) *MessageHandler {
	return &MessageHandler{repo: repo, addUC: addUC}
}

// ======================================================
// REQUESTS
// ======================================================

type AddMessageRequest struct {
	Origin string `json:"origin" binding:"required,max=8"`
	Text   string `json:"text" binding:"required"`

	// Sender; defaults to the caller. Shop replies name the customer
	// whose thread the reply belongs to.
	User uint `json:"user"`
}

type ThreadRequest struct {
	User uint `json:"user" binding:"required"`
}

// ======================================================
// HANDLERS
// ======================================================

func (h *MessageHandler) Add(c *gin.Context) {
	requesterID := c.MustGet(middleware.ContextUserID).(uint)

	shopID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Invalid barbershop id.")
		return
	}

	var req AddMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid message payload.")
		return
	}

	senderID := requesterID
	if req.User != 0 {
		senderID = req.User
	}

	thread, err := h.addUC.Execute(c.Request.Context(), ucBooking.AddMessageInput{
		BarbershopID: uint(shopID),
		SenderID:     senderID,
		Origin:       req.Origin,
		Text:         req.Text,
	})
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, httperr.CodeNotFound, "Barbershop or user not found.")
			return
		}
		httperr.Internal(c, "failed_to_send_message", "Could not send message.")
		return
	}

	httpresp.List(c, thread)
}

// Thread returns the conversation between the shop and one user, oldest
// first. POST so the target user rides in the body like the legacy client
// sends it.
func (h *MessageHandler) Thread(c *gin.Context) {
	shopID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Invalid barbershop id.")
		return
	}

	var req ThreadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid thread payload.")
		return
	}

	thread, err := h.repo.ListThread(c.Request.Context(), uint(shopID), req.User)
	if err != nil {
		httperr.Internal(c, "failed_to_load_thread", "Could not load thread.")
		return
	}

	httpresp.List(c, thread)
}

func (h *MessageHandler) GroupedBySender(c *gin.Context) {
	shopID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Invalid barbershop id.")
		return
	}

	msgs, err := h.repo.ListShopMessages(c.Request.Context(), uint(shopID))
	if err != nil {
		httperr.Internal(c, "failed_to_load_messages", "Could not load messages.")
		return
	}

	httpresp.OK(c, ucBooking.GroupThreadsBySender(msgs))
}
