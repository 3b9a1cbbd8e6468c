package database

import (
	"github.com/SaifHossain4/student-feedback-dashboard/internal/config"
	"github.com/SaifHossain4/student-feedback-dashboard/internal/domain"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Connect opens the Postgres connection pool and keeps the feedback table
// in sync with the model.
func Connect(cfg *config.Config) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.Database.DSN()), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	if err := db.AutoMigrate(&domain.Feedback{}); err != nil {
		return nil, err
	}

	return db, nil
}
