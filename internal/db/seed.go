package db

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/diewo77/go-records/auth"
	"github.com/diewo77/go-records/internal/models"
	"gorm.io/gorm"
)

// DefaultCategories are created by Seed when missing.
var DefaultCategories = []string{"Male", "Female", "Other"}

// Admin describes the bootstrap person created by Seed.
type Admin struct {
	Username string
	Password string
}

// Seed inserts the default categories and, when admin is set, a first person
// able to log in. Existing rows are left untouched.
func Seed(ctx context.Context, conn *gorm.DB, admin Admin, log *slog.Logger) error {
	conn = conn.WithContext(ctx)
	var first models.Category
	for i, name := range DefaultCategories {
		var c models.Category
		if err := conn.Where(models.Category{Name: name}).FirstOrCreate(&c).Error; err != nil {
			return err
		}
		if i == 0 {
			first = c
		}
	}
	if admin.Username == "" || admin.Password == "" {
		return nil
	}
	var existing models.Person
	err := conn.Where("username = ?", admin.Username).First(&existing).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	hash, err := auth.HashPassword(admin.Password)
	if err != nil {
		return err
	}
	p := models.Person{
		FullName:      "Administrator",
		CategoryID:    first.ID,
		BirthDate:     time.Date(1970, 1, 1, 0, 0, 0, 0, time.UTC),
		Address:       "-",
		ContactNumber: "-",
		Username:      admin.Username,
		Password:      hash,
	}
	if err := conn.Omit("Category").Create(&p).Error; err != nil {
		return err
	}
	log.InfoContext(ctx, "seeded admin person", "username", admin.Username)
	return nil
}
