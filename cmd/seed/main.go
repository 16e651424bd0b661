package main

import (
	"context"
	"log"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"imagify/internal/config"
	"imagify/internal/db"
	"imagify/internal/model"
	"imagify/internal/repository"
)

// demoUser describes one seeded demo account.
type demoUser struct {
	Name        string
	Email       string
	Password    string
	DateOfBirth string
	Credits     int
	Role        string
}

var demoUsers = []demoUser{
	{Name: "Demo User", Email: "demo@imagify.local", Password: "demo-password", DateOfBirth: "1990-04-12", Credits: model.DefaultCreditGrant, Role: "user"},
	{Name: "Power User", Email: "power@imagify.local", Password: "power-password", DateOfBirth: "1985-11-03", Credits: 50, Role: "user"},
	{Name: "Admin", Email: "admin@imagify.local", Password: "admin-password", DateOfBirth: "1980-01-30", Credits: 100, Role: "admin"},
}

func main() {
	log.Println("Starting seed script...")

	cfg := config.Load()

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")

	if err := gormDB.AutoMigrate(&model.User{}, &model.Generation{}); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	users := repository.NewUserRepository(gormDB)
	ctx := context.Background()

	created, skipped := 0, 0
	for _, d := range demoUsers {
		if _, err := users.FindByEmail(ctx, d.Email); err == nil {
			skipped++
			continue
		} else if err != gorm.ErrRecordNotFound {
			log.Fatalf("Failed to look up %s: %v", d.Email, err)
		}

		dob, err := time.Parse("2006-01-02", d.DateOfBirth)
		if err != nil {
			log.Fatalf("Invalid date of birth for %s: %v", d.Email, err)
		}
		hashed, err := bcrypt.GenerateFromPassword([]byte(d.Password), 10)
		if err != nil {
			log.Fatalf("Failed to hash password for %s: %v", d.Email, err)
		}

		user := &model.User{
			Name:         d.Name,
			Email:        d.Email,
			PasswordHash: string(hashed),
			DateOfBirth:  dob,
			Credits:      d.Credits,
			Role:         d.Role,
			Verified:     true,
			NotificationPrefs: model.NotificationPrefs{
				EmailUpdates: true,
				CreditAlerts: true,
			},
		}
		if err := users.Create(ctx, user); err != nil {
			log.Fatalf("Failed to create %s: %v", d.Email, err)
		}
		created++
	}

	log.Printf("Seed complete: %d created, %d already present", created, skipped)
}
