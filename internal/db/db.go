package db

import (
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/merylgrace/alumni-coordinator/internal/models"
)

// Open connects to Postgres and migrates the schema. The handle is returned
// to the caller and injected where needed; there is no package-level client.
func Open(dsn string) (*gorm.DB, error) {
	gdb, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("connect to db: %w", err)
	}

	sqlDB, err := gdb.DB()
	if err != nil {
		return nil, fmt.Errorf("unwrap sql.DB: %w", err)
	}
	sqlDB.SetConnMaxLifetime(time.Hour)

	for _, model := range []any{
		&models.AdminUser{},
		&models.Profile{},
		&models.Announcement{},
		&models.AuditLog{},
	} {
		if err := gdb.AutoMigrate(model); err != nil {
			return nil, fmt.Errorf("automigrate %T: %w", model, err)
		}
	}
	return gdb, nil
}
