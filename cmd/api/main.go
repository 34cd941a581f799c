package main

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/kbvnxl/ptown-backend/internal/cache"
	"github.com/kbvnxl/ptown-backend/internal/config"
	dbpkg "github.com/kbvnxl/ptown-backend/internal/db"
	"github.com/kbvnxl/ptown-backend/internal/middleware"
	"github.com/kbvnxl/ptown-backend/internal/reminder"
	"github.com/kbvnxl/ptown-backend/internal/routes"
	"github.com/kbvnxl/ptown-backend/internal/storage"
)

func main() {

	// Local development reads .env; in production the variables come
	// from the environment and the file is simply absent.
	_ = godotenv.Load()

	cfg := config.Load()
	db := dbpkg.NewDB(cfg)

	cch := cache.New(cfg)
	if cch == nil {
		log.Println("redis unreachable, running without cache")
	}

	// Assign through the concrete type so a nil *S3Storage never hides
	// inside a non-nil interface value.
	var store storage.ObjectStorage
	if s3 := storage.NewS3Storage(cfg); s3 != nil {
		store = s3
	} else {
		log.Println("object storage not configured, uploads disabled")
	}

	reminders := reminder.New(db, cfg)
	reminders.Start()

	r := gin.Default()

	r.Use(middleware.CORSMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	routes.RegisterRoutes(r, db, cfg, cch, store)

	log.Printf("Server running on %s", cfg.Addr())
	if err := r.Run(cfg.Addr()); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}
}
