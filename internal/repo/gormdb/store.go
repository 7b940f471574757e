package gormdb

import (
	"errors"
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"tritogether/internal/domain/coaching"
)

// seedDisciplines is the fixed catalog inserted on first boot.
var seedDisciplines = []DisciplineModel{
	{Name: "swimming"},
	{Name: "cycling"},
	{Name: "running"},
	{Name: "other"},
}

// Open connects to postgres, migrates the schema and seeds the
// discipline catalog when empty.
func Open(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := db.AutoMigrate(
		&AvailabilityModel{},
		&CoachModel{},
		&AthleteModel{},
		&NotificationModel{},
		&DisciplineModel{},
		&ActivityModel{},
	); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	if err := seed(db); err != nil {
		return nil, fmt.Errorf("seed disciplines: %w", err)
	}
	return db, nil
}

func seed(db *gorm.DB) error {
	var count int64
	if err := db.Model(&DisciplineModel{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	return db.Create(&seedDisciplines).Error
}

func mapError(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return coaching.ErrNotFound
	}
	return err
}
