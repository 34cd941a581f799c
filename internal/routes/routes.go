package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/kbvnxl/ptown-backend/internal/audit"
	"github.com/kbvnxl/ptown-backend/internal/cache"
	"github.com/kbvnxl/ptown-backend/internal/config"
	"github.com/kbvnxl/ptown-backend/internal/handlers"
	infraRepo "github.com/kbvnxl/ptown-backend/internal/infra/repository"
	"github.com/kbvnxl/ptown-backend/internal/middleware"
	"github.com/kbvnxl/ptown-backend/internal/storage"
	ucBooking "github.com/kbvnxl/ptown-backend/internal/usecase/booking"
	ucShop "github.com/kbvnxl/ptown-backend/internal/usecase/shop"
)

func RegisterRoutes(
	r *gin.Engine,
	db *gorm.DB,
	cfg *config.Config,
	cch *cache.Cache,
	store storage.ObjectStorage,
) {

	// ======================================================
	// MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(middleware.CORSMiddleware())

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	shopStore := infraRepo.NewShopStoreGorm(db)
	bookingRepo := infraRepo.NewBookingGormRepository(db)

	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger)

	// ======================================================
	// USE CASES
	// ======================================================
	updateAggregateUC := ucShop.NewUpdateAggregate(shopStore, auditDispatcher)

	createAppointmentUC := ucBooking.NewCreateAppointment(bookingRepo, auditDispatcher)
	cancelAppointmentUC := ucBooking.NewCancelAppointment(bookingRepo, auditDispatcher)
	toggleFavoriteUC := ucBooking.NewToggleFavorite(bookingRepo, auditDispatcher)
	addMessageUC := ucBooking.NewAddMessage(bookingRepo, auditDispatcher)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, cfg)
	meHandler := handlers.NewMeHandler(db, bookingRepo)
	barbershopHandler := handlers.NewBarbershopHandler(db, cch, updateAggregateUC, toggleFavoriteUC)
	profileHandler := handlers.NewProfileHandler(db)
	appointmentHandler := handlers.NewAppointmentHandler(db, createAppointmentUC, cancelAppointmentUC)
	messageHandler := handlers.NewMessageHandler(bookingRepo, addMessageUC)
	uploadHandler := handlers.NewUploadHandler(db, store)

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// AUTH
		// ------------------------------
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)
		api.POST("/auth/refresh", authHandler.Refresh)

		// ------------------------------
		// PUBLIC DISCOVERY
		// ------------------------------
		api.GET("/barbershops", barbershopHandler.List)
		api.GET("/barbershops/of-the-month", barbershopHandler.OfTheMonth)
		api.GET("/barbershops/:id", barbershopHandler.Get)

		api.GET("/profiles", profileHandler.List)
		api.POST("/profiles", profileHandler.Create)
		api.GET("/profiles/:id", profileHandler.Get)

		// ------------------------------
		// SECURED API
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(cfg))
		{
			secured.GET("/me", meHandler.Get)
			secured.GET("/me/favorites", meHandler.Favorites)
			secured.GET("/me/appointments", meHandler.Appointments)

			secured.POST("/barbershops", barbershopHandler.Create)
			secured.PATCH("/barbershops/:id", barbershopHandler.Update)
			secured.DELETE("/barbershops/:id", barbershopHandler.Delete)

			secured.POST("/barbershops/:id/favorite", barbershopHandler.ToggleFavorite)

			secured.GET("/barbershops/:id/appointments", appointmentHandler.ListForShop)
			secured.POST("/barbershops/:id/appointments", appointmentHandler.Book)
			secured.POST("/barbershops/:id/appointments/cancel", appointmentHandler.Cancel)

			secured.POST("/barbershops/:id/messages", messageHandler.Add)
			secured.POST("/barbershops/:id/messages/thread", messageHandler.Thread)
			secured.GET("/barbershops/:id/messages", messageHandler.GroupedBySender)

			secured.POST("/barbershops/:id/photo", uploadHandler.ShopPhoto)
			secured.POST("/barbershops/:id/document", uploadHandler.ShopDocument)

			secured.PATCH("/profiles/:id", profileHandler.Update)
			secured.DELETE("/profiles/:id", profileHandler.Delete)
			secured.POST("/profiles/:id/photo", uploadHandler.ProfilePhoto)

			secured.GET("/appointments", appointmentHandler.List)
			secured.GET("/appointments/:id", appointmentHandler.Get)
		}
	}
}
