package database

import (
	"context"
	"log"
	"strings"

	"gorm.io/driver/postgres"
	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	_ "modernc.org/sqlite"

	"surveyhub/internal/domain"
)

func Connect(dsn string) (*gorm.DB, error) {
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		log.Println("Connecting to PostgreSQL...")
		return gorm.Open(postgres.Open(dsn), &gorm.Config{})
	}

	log.Println("Using SQLite for local development:", dsn)

	return gorm.Open(
		gormsqlite.New(gormsqlite.Config{
			DriverName: "sqlite",
			DSN:        dsn,
		}),
		&gorm.Config{},
	)
}

// Migrate keeps the schema in sync with the domain models.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&domain.User{},
		&domain.Role{},
		&domain.RefreshToken{},
		&domain.Conductor{},
		&domain.Participant{},
		&domain.ParticipantSkill{},
		&domain.AuditLog{},
	)
}

// SeedRoles inserts the static role set if it is missing. Safe to run on
// every startup.
func SeedRoles(ctx context.Context, db *gorm.DB) error {
	for _, name := range domain.SeedRoleNames() {
		var count int64
		if err := db.WithContext(ctx).Model(&domain.Role{}).Where("name = ?", name).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			continue
		}
		if err := db.WithContext(ctx).Create(&domain.Role{Name: name}).Error; err != nil {
			return err
		}
	}
	return nil
}
