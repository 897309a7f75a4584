package model

import (
	"context"

	"gorm.io/gorm"
)

// ListOptions controls paging of list queries. Soft-deleted rows are left out
// unless IncludeDeleted is set.
type ListOptions struct {
	Limit          int
	Offset         int
	IncludeDeleted bool
}

func (o ListOptions) scope(db *gorm.DB) *gorm.DB {
	if o.IncludeDeleted {
		db = db.Unscoped()
	}
	return db
}

func (o ListOptions) page(db *gorm.DB) *gorm.DB {
	if o.Limit > 0 {
		db = db.Limit(o.Limit)
	}
	if o.Offset > 0 {
		db = db.Offset(o.Offset)
	}
	return db
}

// list fetches one page of dest ordered by id, and the total number of rows
// matching the same filter.
func list(query *gorm.DB, model interface{}, opts ListOptions, dest interface{}) (int64, error) {
	var total int64
	if err := query.Session(&gorm.Session{}).Model(model).Count(&total).Error; err != nil {
		return 0, err
	}
	if err := opts.page(query.Session(&gorm.Session{})).Order("id ASC").Find(dest).Error; err != nil {
		return 0, err
	}
	return total, nil
}

// The Find helpers read a single record by identity. Soft-deleted records are
// returned as well; callers inspect IsDeleted when it matters.

func FindDocumentType(ctx context.Context, db *gorm.DB, id uint) (DocumentType, error) {
	var d DocumentType
	err := db.WithContext(ctx).Unscoped().First(&d, id).Error
	return d, err
}

func FindPatient(ctx context.Context, db *gorm.DB, id uint) (Patient, error) {
	var p Patient
	err := db.WithContext(ctx).
		Preload("DocumentType", func(tx *gorm.DB) *gorm.DB { return tx.Unscoped() }).
		First(&p, id).Error
	return p, err
}

func FindHistory(ctx context.Context, db *gorm.DB, id uint) (History, error) {
	var h History
	err := db.WithContext(ctx).Unscoped().First(&h, id).Error
	return h, err
}

func FindPaymentType(ctx context.Context, db *gorm.DB, id uint) (PaymentType, error) {
	var p PaymentType
	err := db.WithContext(ctx).Unscoped().First(&p, id).Error
	return p, err
}

func FindPredeterminedPrice(ctx context.Context, db *gorm.DB, id uint) (PredeterminedPrice, error) {
	var p PredeterminedPrice
	err := db.WithContext(ctx).First(&p, id).Error
	return p, err
}

func FindAppointment(ctx context.Context, db *gorm.DB, id uint) (Appointment, error) {
	var a Appointment
	err := db.WithContext(ctx).First(&a, id).Error
	return a, err
}

func ListDocumentTypes(ctx context.Context, db *gorm.DB, opts ListOptions) ([]DocumentType, int64, error) {
	var out []DocumentType
	total, err := list(opts.scope(db.WithContext(ctx)), &DocumentType{}, opts, &out)
	return out, total, err
}

func ListPatients(ctx context.Context, db *gorm.DB, opts ListOptions) ([]Patient, int64, error) {
	var out []Patient
	total, err := list(db.WithContext(ctx), &Patient{}, opts, &out)
	return out, total, err
}

// ListHistories lists histories, restricted to one patient when patientID is not 0.
func ListHistories(ctx context.Context, db *gorm.DB, patientID uint, opts ListOptions) ([]History, int64, error) {
	var out []History
	query := opts.scope(db.WithContext(ctx))
	if patientID != 0 {
		query = query.Where("patient_id = ?", patientID)
	}
	total, err := list(query, &History{}, opts, &out)
	return out, total, err
}

func ListPaymentTypes(ctx context.Context, db *gorm.DB, opts ListOptions) ([]PaymentType, int64, error) {
	var out []PaymentType
	total, err := list(opts.scope(db.WithContext(ctx)), &PaymentType{}, opts, &out)
	return out, total, err
}

func ListPredeterminedPrices(ctx context.Context, db *gorm.DB, opts ListOptions) ([]PredeterminedPrice, int64, error) {
	var out []PredeterminedPrice
	total, err := list(db.WithContext(ctx), &PredeterminedPrice{}, opts, &out)
	return out, total, err
}

func ListAppointments(ctx context.Context, db *gorm.DB, opts ListOptions) ([]Appointment, int64, error) {
	var out []Appointment
	total, err := list(db.WithContext(ctx), &Appointment{}, opts, &out)
	return out, total, err
}

// NameTaken reports whether a row of table other than excludeID already uses
// name. The match is exact and counts soft-deleted rows, like the unique index
// backing the column.
func NameTaken(ctx context.Context, db *gorm.DB, table, name string, excludeID uint) (bool, error) {
	var count int64
	query := db.WithContext(ctx).Table(table).Where("name = ?", name)
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// RecordExists reports whether table holds a row with the given id.
func RecordExists(ctx context.Context, db *gorm.DB, table string, id uint) (bool, error) {
	var count int64
	if err := db.WithContext(ctx).Table(table).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
