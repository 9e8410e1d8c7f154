package db

import (
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/harborline/stafftrack/internal/config"
	"github.com/harborline/stafftrack/internal/modules/model"
)

func New(cfg *config.Config) (*gorm.DB, error) {
	d, err := gorm.Open(postgres.Open(cfg.Database.DSN), &gorm.Config{})
	if err != nil {
		return nil, err
	}
	sqlDB, err := d.DB()
	if err != nil {
		return nil, err
	}
	if cfg.Database.MaxOpen > 0 {
		sqlDB.SetMaxOpenConns(cfg.Database.MaxOpen)
	}
	if cfg.Database.MaxIdle > 0 {
		sqlDB.SetMaxIdleConns(cfg.Database.MaxIdle)
	}
	sqlDB.SetConnMaxLifetime(time.Hour)
	return d, nil
}

// Migrate creates the schema plus the one index gorm tags cannot express:
// external keys on time entries are only unique when actually set.
func Migrate(d *gorm.DB) error {
	if err := d.AutoMigrate(
		&model.Staff{},
		&model.Contract{},
		&model.Deliverable{},
		&model.DeliverableAssignment{},
		&model.Task{},
		&model.DeliverableTimeEntry{},
		&model.DeliverableStatusUpdate{},
	); err != nil {
		return err
	}
	return d.Exec(
		`CREATE UNIQUE INDEX IF NOT EXISTS uq_time_entries_external_key
		 ON deliverable_time_entries (external_source, external_id)
		 WHERE external_source <> ''`,
	).Error
}
