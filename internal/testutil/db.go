// Package testutil provides the in-memory database used across the test
// suites. Production runs against Postgres; tests run on sqlite, which
// covers everything except the hashed comment index and row locking.
package testutil

import (
	"fmt"
	"strings"
	"testing"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/kbvnxl/ptown-backend/internal/models"
)

// NewDB opens an isolated in-memory database named after the test and
// migrates the full schema. cache=shared keeps gorm's pooled connections
// on the same database.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}

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
		t.Fatalf("migrate test db: %v", err)
	}

	return db
}

// SeedUser inserts a user. The password hash is a placeholder; suites that
// exercise login create their users through the auth handler.
func SeedUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()

	user := &models.User{
		Username:     username,
		FirstName:    "Juan",
		LastName:     "Dela Cruz",
		Email:        username + "@example.com",
		PasswordHash: "x",
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return user
}

// SeedShop inserts a bare barbershop.
func SeedShop(t *testing.T, db *gorm.DB, name string) *models.Barbershop {
	t.Helper()

	shop := &models.Barbershop{
		Name:    name,
		Address: "123 Session Road",
	}
	if err := db.Create(shop).Error; err != nil {
		t.Fatalf("seed shop: %v", err)
	}
	return shop
}
