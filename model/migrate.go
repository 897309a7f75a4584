package model

import (
	"fmt"

	"gorm.io/gorm"
)

// Models lists every persisted entity in dependency order.
var Models = []interface{}{
	&DocumentType{},
	&Patient{},
	&History{},
	&PaymentType{},
	&PredeterminedPrice{},
	&Appointment{},
	&AuditLog{},
}

// AutoMigrate creates or updates the tables, indexes and foreign keys of all models.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(Models...); err != nil {
		return fmt.Errorf("failed to run auto-migration: %w", err)
	}
	return nil
}
