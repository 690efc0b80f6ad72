package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"

	"surveyhub/internal/database"
	"surveyhub/internal/domain"
)

// Seeds the role set plus a demo account per role. Intended for local
// development; passwords are printed at the end.
func main() {
	_ = godotenv.Load()

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		dsn = "surveyhub.db"
	}

	db, err := database.Connect(dsn)
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}

	ctx := context.Background()

	log.Println("Running AutoMigrate...")
	if err := database.Migrate(db); err != nil {
		log.Fatal("AutoMigrate failed:", err)
	}

	log.Println("Seeding roles...")
	if err := database.SeedRoles(ctx, db); err != nil {
		log.Fatal("Role seed failed:", err)
	}

	accounts := []struct {
		username string
		email    string
		password string
		role     string
	}{
		{"admin", "admin@surveyhub.dev", "Admin#2024!", domain.RoleAdmin},
		{"conductor_demo", "conductor@surveyhub.dev", "Conduct#2024!", domain.RoleConducting},
		{"participant_demo", "participant@surveyhub.dev", "Particip#2024!", domain.RoleParticipating},
	}

	for _, acc := range accounts {
		var count int64
		if err := db.WithContext(ctx).Model(&domain.User{}).Where("username = ?", acc.username).Count(&count).Error; err != nil {
			log.Fatal("user lookup failed:", err)
		}
		if count > 0 {
			log.Printf("user %q already exists, skipping", acc.username)
			continue
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(acc.password), bcrypt.DefaultCost)
		if err != nil {
			log.Fatal("bcrypt failed:", err)
		}

		var role domain.Role
		if err := db.WithContext(ctx).Where("name = ?", acc.role).First(&role).Error; err != nil {
			log.Fatalf("role %q not found: %v", acc.role, err)
		}

		user := domain.User{
			Username:     acc.username,
			Email:        acc.email,
			PasswordHash: string(hash),
			Roles:        []domain.Role{role},
		}
		if err := db.WithContext(ctx).Create(&user).Error; err != nil {
			log.Fatalf("create %q failed: %v", acc.username, err)
		}
		log.Printf("created user %q with role %s", acc.username, acc.role)
	}

	// Demo profiles for the two domain roles.
	var conductorUser domain.User
	if err := db.WithContext(ctx).Where("username = ?", "conductor_demo").First(&conductorUser).Error; err == nil {
		var count int64
		db.WithContext(ctx).Model(&domain.Conductor{}).Where("user_id = ?", conductorUser.ID).Count(&count)
		if count == 0 {
			db.WithContext(ctx).Create(&domain.Conductor{
				UserID:        conductorUser.ID,
				Name:          "Demo Research Group",
				ConductorType: domain.ConductorInstitute,
				ContactEmail:  conductorUser.Email,
			})
		}
	}

	var participantUser domain.User
	if err := db.WithContext(ctx).Where("username = ?", "participant_demo").First(&participantUser).Error; err == nil {
		var count int64
		db.WithContext(ctx).Model(&domain.Participant{}).Where("user_id = ?", participantUser.ID).Count(&count)
		if count == 0 {
			db.WithContext(ctx).Create(&domain.Participant{
				UserID:          participantUser.ID,
				ExperienceLevel: domain.ExperienceBeginner,
				IsActive:        true,
			})
		}
	}

	log.Println("Seed completed. Test accounts:")
	for _, acc := range accounts {
		fmt.Printf("  %s / %s (%s)\n", acc.username, acc.password, acc.role)
	}
}
