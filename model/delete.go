package model

import (
	"context"

	"gorm.io/gorm"
)

// Physical removal. Each helper applies the relationship rule of the removed
// record in the same transaction, so the outcome does not depend on whether the
// driver enforces foreign keys.

// DeleteDocumentType removes the row and clears the reference held by patients.
func DeleteDocumentType(ctx context.Context, db *gorm.DB, id uint) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&Patient{}).
			Where("document_type_id = ?", id).
			UpdateColumn("document_type_id", nil).Error; err != nil {
			return err
		}
		return hardDelete(tx, &DocumentType{}, id)
	})
}

// DeletePatient removes the patient together with all of its histories.
func DeletePatient(ctx context.Context, db *gorm.DB, id uint) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Unscoped().Where("patient_id = ?", id).Delete(&History{}).Error; err != nil {
			return err
		}
		return hardDelete(tx, &Patient{}, id)
	})
}

// DeleteHistory removes a single history row.
func DeleteHistory(ctx context.Context, db *gorm.DB, id uint) error {
	return hardDelete(db.WithContext(ctx), &History{}, id)
}

// DeletePaymentType removes the payment type and every appointment paid with it.
func DeletePaymentType(ctx context.Context, db *gorm.DB, id uint) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("payment_type_id = ?", id).Delete(&Appointment{}).Error; err != nil {
			return err
		}
		return hardDelete(tx, &PaymentType{}, id)
	})
}

// DeletePredeterminedPrice removes the price and every appointment priced with it.
func DeletePredeterminedPrice(ctx context.Context, db *gorm.DB, id uint) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("predetermined_price_id = ?", id).Delete(&Appointment{}).Error; err != nil {
			return err
		}
		return hardDelete(tx, &PredeterminedPrice{}, id)
	})
}

// DeleteAppointment removes a single appointment row.
func DeleteAppointment(ctx context.Context, db *gorm.DB, id uint) error {
	return hardDelete(db.WithContext(ctx), &Appointment{}, id)
}

func hardDelete(tx *gorm.DB, rec Record, id uint) error {
	res := tx.Unscoped().Delete(rec, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
