package model

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestDeletePatient_RemovesHistories(t *testing.T) {
	db := setupTestDB(t, "delete_patient")
	ctx := context.Background()

	patient := Patient{Name: "John Roe"}
	other := Patient{Name: "Mary Major"}
	require.NoError(t, Create(ctx, db, &patient))
	require.NoError(t, Create(ctx, db, &other))

	active := History{PatientID: patient.ID, Testimony: strPtr("Back pain")}
	archived := History{PatientID: patient.ID}
	kept := History{PatientID: other.ID}
	require.NoError(t, Create(ctx, db, &active))
	require.NoError(t, Create(ctx, db, &archived))
	require.NoError(t, Create(ctx, db, &kept))
	require.NoError(t, SoftDelete(ctx, db, &archived))

	require.NoError(t, DeletePatient(ctx, db, patient.ID))

	_, err := FindPatient(ctx, db, patient.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	_, err = FindHistory(ctx, db, active.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	_, err = FindHistory(ctx, db, archived.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound, "soft-deleted histories go with their patient")

	_, err = FindHistory(ctx, db, kept.ID)
	assert.NoError(t, err)
}

func TestDeletePatient_Missing(t *testing.T) {
	db := setupTestDB(t, "delete_patient_missing")
	err := DeletePatient(context.Background(), db, 99)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestDeleteDocumentType_ClearsPatientReference(t *testing.T) {
	db := setupTestDB(t, "delete_document_type")
	ctx := context.Background()

	dt := DocumentType{Name: "Passport"}
	require.NoError(t, Create(ctx, db, &dt))
	patient := Patient{Name: "Jane Doe", DocumentTypeID: uintPtr(dt.ID), DocumentNumber: strPtr("X123")}
	require.NoError(t, Create(ctx, db, &patient))

	require.NoError(t, DeleteDocumentType(ctx, db, dt.ID))

	stored, err := FindPatient(ctx, db, patient.ID)
	require.NoError(t, err)
	assert.Nil(t, stored.DocumentTypeID)
	assert.Nil(t, stored.DocumentType)
	require.NotNil(t, stored.DocumentNumber)
	assert.Equal(t, "X123", *stored.DocumentNumber)
}

func TestSoftDeletedDocumentType_StaysReferenced(t *testing.T) {
	db := setupTestDB(t, "softdelete_document_type_ref")
	ctx := context.Background()

	dt := DocumentType{Name: "Passport"}
	require.NoError(t, Create(ctx, db, &dt))
	patient := Patient{Name: "Jane Doe", DocumentTypeID: uintPtr(dt.ID)}
	require.NoError(t, Create(ctx, db, &patient))
	require.NoError(t, SoftDelete(ctx, db, &dt))

	stored, err := FindPatient(ctx, db, patient.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.DocumentTypeID)
	assert.Equal(t, dt.ID, *stored.DocumentTypeID)
	require.NotNil(t, stored.DocumentType)
	assert.True(t, stored.DocumentType.IsDeleted())
}

func TestDeletePaymentType_RemovesAppointments(t *testing.T) {
	db := setupTestDB(t, "delete_payment_type")
	ctx := context.Background()

	cash := PaymentType{Code: "CASH", Name: "Cash"}
	card := PaymentType{Code: "CARD", Name: "Card"}
	require.NoError(t, Create(ctx, db, &cash))
	require.NoError(t, Create(ctx, db, &card))

	paidCash := Appointment{PaymentTypeID: cash.ID, Date: time.Now()}
	paidCard := Appointment{PaymentTypeID: card.ID, Date: time.Now()}
	require.NoError(t, Create(ctx, db, &paidCash))
	require.NoError(t, Create(ctx, db, &paidCard))

	require.NoError(t, DeletePaymentType(ctx, db, cash.ID))

	_, err := FindAppointment(ctx, db, paidCash.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	_, err = FindAppointment(ctx, db, paidCard.ID)
	assert.NoError(t, err)
}

func TestDeletePredeterminedPrice_RemovesAppointments(t *testing.T) {
	db := setupTestDB(t, "delete_price")
	ctx := context.Background()

	pt := PaymentType{Code: "CASH", Name: "Cash"}
	require.NoError(t, Create(ctx, db, &pt))
	amount := decimal.RequireFromString("150.00")
	price := PredeterminedPrice{Name: "Consultation", Price: &amount}
	require.NoError(t, Create(ctx, db, &price))

	priced := Appointment{PaymentTypeID: pt.ID, PredeterminedPriceID: uintPtr(price.ID), Date: time.Now()}
	unpriced := Appointment{PaymentTypeID: pt.ID, Date: time.Now()}
	require.NoError(t, Create(ctx, db, &priced))
	require.NoError(t, Create(ctx, db, &unpriced))

	require.NoError(t, DeletePredeterminedPrice(ctx, db, price.ID))

	_, err := FindAppointment(ctx, db, priced.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	_, err = FindAppointment(ctx, db, unpriced.ID)
	assert.NoError(t, err)
	_, err = FindPaymentType(ctx, db, pt.ID)
	assert.NoError(t, err)
}

func TestDeleteSingleRows(t *testing.T) {
	db := setupTestDB(t, "delete_single")
	ctx := context.Background()

	patient := Patient{Name: "Jane Doe"}
	require.NoError(t, Create(ctx, db, &patient))
	h := History{PatientID: patient.ID}
	require.NoError(t, Create(ctx, db, &h))
	pt := PaymentType{Code: "CASH", Name: "Cash"}
	require.NoError(t, Create(ctx, db, &pt))
	a := Appointment{PaymentTypeID: pt.ID, Date: time.Now()}
	require.NoError(t, Create(ctx, db, &a))

	require.NoError(t, DeleteHistory(ctx, db, h.ID))
	require.NoError(t, DeleteAppointment(ctx, db, a.ID))

	assert.ErrorIs(t, DeleteHistory(ctx, db, h.ID), gorm.ErrRecordNotFound)
	assert.ErrorIs(t, DeleteAppointment(ctx, db, a.ID), gorm.ErrRecordNotFound)

	_, err := FindPatient(ctx, db, patient.ID)
	assert.NoError(t, err)
}
