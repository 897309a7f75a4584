package validation

import (
	"context"

	"gorm.io/gorm"

	"github.com/ariebrainware/clinic-records/model"
)

// Lookup answers the questions validation has to ask about persisted records.
type Lookup interface {
	// NameTaken reports whether a row of table other than excludeID uses name.
	NameTaken(ctx context.Context, table, name string, excludeID uint) (bool, error)
	// Exists reports whether table holds a row with the given id.
	Exists(ctx context.Context, table string, id uint) (bool, error)
}

// GormLookup answers Lookup queries from the database.
type GormLookup struct {
	db *gorm.DB
}

func NewGormLookup(db *gorm.DB) *GormLookup {
	return &GormLookup{db: db}
}

func (l *GormLookup) NameTaken(ctx context.Context, table, name string, excludeID uint) (bool, error) {
	return model.NameTaken(ctx, l.db, table, name, excludeID)
}

func (l *GormLookup) Exists(ctx context.Context, table string, id uint) (bool, error) {
	return model.RecordExists(ctx, l.db, table, id)
}
