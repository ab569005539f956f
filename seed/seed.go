// seed/seed.go
package seed

import (
	"errors"
	"log"
	"os"

	"github.com/lokesh-sivakumar/hope-trust/models"
	"github.com/lokesh-sivakumar/hope-trust/utils"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// SeedAdmin creates the initial admin operator from ADMIN_EMAIL and
// ADMIN_PASSWORD. Every later account is created by this admin through the
// API.
func SeedAdmin() error {
	email := os.Getenv("ADMIN_EMAIL")
	password := os.Getenv("ADMIN_PASSWORD")
	if email == "" || password == "" {
		log.Println("ADMIN_EMAIL/ADMIN_PASSWORD not set. Skipping admin seeding.")
		return nil
	}

	var existing models.User
	err := utils.PortalDB.Where("email = ?", email).First(&existing).Error
	if err == nil {
		log.Println("Admin operator already exists. Skipping seeding.")
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	name := os.Getenv("ADMIN_NAME")
	if name == "" {
		name = "Administrator"
	}

	admin := models.User{
		Name:     name,
		Email:    email,
		Password: string(hashedPassword),
		Role:     "admin",
	}

	if err := utils.PortalDB.Create(&admin).Error; err != nil {
		return err
	}

	log.Println("Admin operator seeded successfully.")
	return nil
}
