package model

import (
	"time"

	"gorm.io/gorm"
)

// Record is implemented by every entity in this package through Base.
type Record interface {
	stampCreated(now time.Time)
}

// SoftDeletable is implemented by entities embedding BaseSoftDelete.
// Only those can be passed to SoftDelete and Restore.
type SoftDeletable interface {
	Record
	IsDeleted() bool
	deletion() *gorm.DeletedAt
}

// Base carries the identity and the timestamps shared by all records.
type Base struct {
	ID        uint      `json:"id" gorm:"primaryKey" example:"1"`
	CreatedAt time.Time `json:"created_at" gorm:"not null"`
	UpdatedAt time.Time `json:"updated_at" gorm:"not null"`
}

func (b *Base) stampCreated(now time.Time) {
	b.CreatedAt = now
	b.UpdatedAt = now
}

// BaseSoftDelete is Base plus a logical deletion mark.
type BaseSoftDelete struct {
	Base
	DeletedAt gorm.DeletedAt `json:"deleted_at" gorm:"index"`
}

// IsDeleted reports whether the record is logically deleted.
func (b BaseSoftDelete) IsDeleted() bool {
	return b.DeletedAt.Valid
}

func (b *BaseSoftDelete) deletion() *gorm.DeletedAt {
	return &b.DeletedAt
}
