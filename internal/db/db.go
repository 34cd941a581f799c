package db

import (
	"log"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/kbvnxl/ptown-backend/internal/config"
	"github.com/kbvnxl/ptown-backend/internal/models"
)

func NewDB(cfg *config.Config) *gorm.DB {
	db, err := gorm.Open(postgres.Open(cfg.DBUrl), &gorm.Config{
		PrepareStmt: true,
	})
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("failed to get sql.DB: %v", err)
	}

	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	if err := db.AutoMigrate(
		&models.User{},
		&models.Profile{},
		&models.Barbershop{},
		&models.Amenity{},
		&models.Service{},
		&models.OperationHours{},
		&models.Comment{},
		&models.Appointment{},
		&models.Message{},
		&models.AuditLog{},
	); err != nil {
		log.Fatalf("failed to migrate: %v", err)
	}

	// Comments dedupe on (text, rating, type, author). The text column is
	// unbounded, so the index hashes it instead of indexing it raw.
	db.Exec(`
        CREATE UNIQUE INDEX IF NOT EXISTS idx_comments_natural
        ON comments (md5(text), rating, type, user_id)
    `)

	return db
}
