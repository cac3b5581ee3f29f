package config

import (
	"errors"
	"log"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"thari.in/powerloom/models"
)

// SeedAdminUser creates the default admin account on an empty database so the
// dashboard can log in right after the first boot.
func SeedAdminUser(db *gorm.DB) error {
	var admin models.AdminUser
	err := db.Where("username = ?", "admin").First(&admin).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	admin = models.AdminUser{
		Username:     "admin",
		PasswordHash: string(hash),
		Email:        "admin@powerloom.com",
		IsActive:     true,
	}
	if err := db.Create(&admin).Error; err != nil {
		return err
	}
	log.Println("Created default admin user: admin/admin123")
	return nil
}
