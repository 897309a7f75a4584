package model

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Create inserts rec, stamping created_at and updated_at with the database clock.
// Associations embedded in rec are not written.
func Create(ctx context.Context, db *gorm.DB, rec Record) error {
	rec.stampCreated(db.NowFunc())
	return db.WithContext(ctx).Omit(clause.Associations).Create(rec).Error
}

// Update writes every column of rec except id and created_at, and refreshes
// updated_at. Soft-deleted records can be edited too. It returns
// gorm.ErrRecordNotFound when no row carries rec's primary key.
func Update(ctx context.Context, db *gorm.DB, rec Record) error {
	res := db.WithContext(ctx).
		Unscoped().
		Model(rec).
		Select("*").
		Omit("id", "created_at", clause.Associations).
		Updates(rec)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// SoftDelete marks rec as deleted at the current time. Calling it on an
// already deleted record moves the mark to the new time.
func SoftDelete(ctx context.Context, db *gorm.DB, rec SoftDeletable) error {
	now := db.NowFunc()
	if err := setDeletedAt(ctx, db, rec, now); err != nil {
		return err
	}
	*rec.deletion() = gorm.DeletedAt{Time: now, Valid: true}
	return nil
}

// Restore clears the deletion mark of rec. Restoring an active record is a no-op
// apart from updated_at.
func Restore(ctx context.Context, db *gorm.DB, rec SoftDeletable) error {
	if err := setDeletedAt(ctx, db, rec, nil); err != nil {
		return err
	}
	*rec.deletion() = gorm.DeletedAt{}
	return nil
}

func setDeletedAt(ctx context.Context, db *gorm.DB, rec SoftDeletable, value interface{}) error {
	res := db.WithContext(ctx).Unscoped().Model(rec).Update("deleted_at", value)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
