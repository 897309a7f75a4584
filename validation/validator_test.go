package validation

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ariebrainware/clinic-records/model"
)

// MockLookup lets each test decide what the store contains.
type MockLookup struct {
	NameTakenFunc func(ctx context.Context, table, name string, excludeID uint) (bool, error)
	ExistsFunc    func(ctx context.Context, table string, id uint) (bool, error)
}

func (m *MockLookup) NameTaken(ctx context.Context, table, name string, excludeID uint) (bool, error) {
	if m.NameTakenFunc != nil {
		return m.NameTakenFunc(ctx, table, name, excludeID)
	}
	return false, nil
}

func (m *MockLookup) Exists(ctx context.Context, table string, id uint) (bool, error) {
	if m.ExistsFunc != nil {
		return m.ExistsFunc(ctx, table, id)
	}
	return true, nil
}

func strPtr(s string) *string { return &s }

func uintPtr(v uint) *uint { return &v }

func decPtr(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func fieldErrors(t *testing.T, err error) Errors {
	t.Helper()
	var verrs Errors
	require.ErrorAs(t, err, &verrs)
	return verrs
}

func assertFieldMessage(t *testing.T, err error, field, want string) {
	t.Helper()
	fe, ok := fieldErrors(t, err).Field(field)
	require.True(t, ok, "expected a failure on %s", field)
	assert.Equal(t, want, fe.Message)
}

func TestDocumentType_NameLength(t *testing.T) {
	v := New(&MockLookup{})
	ctx := context.Background()

	atLimit := DocumentTypeForm{Name: strings.Repeat("a", 255)}
	assert.NoError(t, v.DocumentType(ctx, &atLimit, 0))

	overLimit := DocumentTypeForm{Name: strings.Repeat("a", 256)}
	err := v.DocumentType(ctx, &overLimit, 0)
	assertFieldMessage(t, err, "name", "Ensure this value has at most 255 characters (it has 256).")
}

func TestDocumentType_DescriptionLength(t *testing.T) {
	v := New(&MockLookup{})
	ctx := context.Background()

	ok := DocumentTypeForm{Name: "Passport", Description: strPtr(strings.Repeat("d", 1000))}
	assert.NoError(t, v.DocumentType(ctx, &ok, 0))

	missing := DocumentTypeForm{Name: "Passport"}
	assert.NoError(t, v.DocumentType(ctx, &missing, 0))

	tooLong := DocumentTypeForm{Name: "Passport", Description: strPtr(strings.Repeat("d", 1001))}
	err := v.DocumentType(ctx, &tooLong, 0)
	assertFieldMessage(t, err, "description", "Ensure this value has at most 1000 characters (it has 1001).")
}

func TestDocumentType_BlankNameIsRequired(t *testing.T) {
	v := New(&MockLookup{})

	form := DocumentTypeForm{Name: "   ", Description: strPtr("  ")}
	err := v.DocumentType(context.Background(), &form, 0)
	assertFieldMessage(t, err, "name", msgRequired)
	assert.Nil(t, form.Description, "blank optional text becomes null")
}

func TestDocumentType_Uniqueness(t *testing.T) {
	var gotTable string
	var gotExclude uint
	lookup := &MockLookup{
		NameTakenFunc: func(ctx context.Context, table, name string, excludeID uint) (bool, error) {
			gotTable, gotExclude = table, excludeID
			return name == "Passport" && excludeID != 1, nil
		},
	}
	v := New(lookup)
	ctx := context.Background()

	dup := DocumentTypeForm{Name: "Passport"}
	err := v.DocumentType(ctx, &dup, 0)
	assertFieldMessage(t, err, "name", "Document type with this Name already exists.")
	assert.Equal(t, model.TableDocumentTypes, gotTable)
	assert.Zero(t, gotExclude)

	self := DocumentTypeForm{Name: "Passport"}
	assert.NoError(t, v.DocumentType(ctx, &self, 1))
	assert.EqualValues(t, 1, gotExclude)
}

func TestDocumentType_LongNameSkipsLookup(t *testing.T) {
	calls := 0
	v := New(&MockLookup{
		NameTakenFunc: func(ctx context.Context, table, name string, excludeID uint) (bool, error) {
			calls++
			return true, nil
		},
	})

	form := DocumentTypeForm{Name: strings.Repeat("x", 300)}
	verrs := fieldErrors(t, v.DocumentType(context.Background(), &form, 0))
	assert.Len(t, verrs, 1)
	assert.Zero(t, calls)
}

func TestLookupErrorsPropagateUnchanged(t *testing.T) {
	storeDown := errors.New("connection refused")
	v := New(&MockLookup{
		NameTakenFunc: func(ctx context.Context, table, name string, excludeID uint) (bool, error) {
			return false, storeDown
		},
		ExistsFunc: func(ctx context.Context, table string, id uint) (bool, error) {
			return false, storeDown
		},
	})
	ctx := context.Background()

	err := v.PaymentType(ctx, &PaymentTypeForm{Code: "CASH", Name: "Cash"}, 0)
	assert.ErrorIs(t, err, storeDown)
	var verrs Errors
	assert.False(t, errors.As(err, &verrs))

	err = v.History(ctx, &HistoryForm{PatientID: 3}, 0)
	assert.ErrorIs(t, err, storeDown)
}

func TestErrorsFollowFieldOrder(t *testing.T) {
	v := New(&MockLookup{})

	form := AppointmentForm{Description: strPtr(strings.Repeat("z", 1001))}
	verrs := fieldErrors(t, v.Appointment(context.Background(), &form, 0))

	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, fe.Field)
	}
	assert.Equal(t, []string{"payment_type_id", "date", "description"}, fields)
	assert.Contains(t, verrs.Error(), "date: This field is required.")
}

func TestPaymentType_Rules(t *testing.T) {
	v := New(&MockLookup{
		NameTakenFunc: func(ctx context.Context, table, name string, excludeID uint) (bool, error) {
			return table == model.TablePaymentTypes && name == "Cash", nil
		},
	})
	ctx := context.Background()

	assert.NoError(t, v.PaymentType(ctx, &PaymentTypeForm{Code: strings.Repeat("c", 50), Name: "Card"}, 0))

	err := v.PaymentType(ctx, &PaymentTypeForm{Code: strings.Repeat("c", 51), Name: "Card"}, 0)
	assertFieldMessage(t, err, "code", "Ensure this value has at most 50 characters (it has 51).")

	err = v.PaymentType(ctx, &PaymentTypeForm{Code: "CASH", Name: "Cash"}, 0)
	assertFieldMessage(t, err, "name", "Payment type with this Name already exists.")

	form := PaymentTypeForm{Code: "  CARD ", Name: " Card  "}
	require.NoError(t, v.PaymentType(ctx, &form, 0))
	assert.Equal(t, "CARD", form.Code)
	assert.Equal(t, "Card", form.Name)
}

func TestPredeterminedPrice_Price(t *testing.T) {
	v := New(&MockLookup{})
	ctx := context.Background()

	tests := []struct {
		name    string
		price   *decimal.Decimal
		wantMsg string
	}{
		{"null", nil, ""},
		{"zero", decPtr("0"), ""},
		{"zero with cents", decPtr("0.00"), ""},
		{"largest", decPtr("99999999.99"), ""},
		{"negative cent", decPtr("-0.01"), "Ensure this value is greater than or equal to 0."},
		{"three decimals", decPtr("10.005"), "Ensure that there are no more than 2 decimal places."},
		{"eleven digits", decPtr("123456789.00"), "Ensure that there are no more than 10 digits in total."},
		{"nine whole digits", decPtr("100000000"), "Ensure that there are no more than 8 digits before the decimal point."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			form := PredeterminedPriceForm{Name: "Consultation", Price: tt.price}
			err := v.PredeterminedPrice(ctx, &form, 0)
			if tt.wantMsg == "" {
				assert.NoError(t, err)
				return
			}
			assertFieldMessage(t, err, "price", tt.wantMsg)
		})
	}
}

func TestPredeterminedPrice_Uniqueness(t *testing.T) {
	v := New(&MockLookup{
		NameTakenFunc: func(ctx context.Context, table, name string, excludeID uint) (bool, error) {
			return excludeID != 5, nil
		},
	})
	ctx := context.Background()

	err := v.PredeterminedPrice(ctx, &PredeterminedPriceForm{Name: "Consultation"}, 0)
	assertFieldMessage(t, err, "name", "Predetermined price with this Name already exists.")
	assert.NoError(t, v.PredeterminedPrice(ctx, &PredeterminedPriceForm{Name: "Consultation"}, 5))
}

func TestPatient_Rules(t *testing.T) {
	v := New(&MockLookup{
		ExistsFunc: func(ctx context.Context, table string, id uint) (bool, error) {
			return table == model.TableDocumentTypes && id == 1, nil
		},
	})
	ctx := context.Background()

	ok := PatientForm{
		Name:           "Jane Doe",
		DocumentTypeID: uintPtr(1),
		DocumentNumber: strPtr(strings.Repeat("9", 50)),
		BirthDate:      strPtr("1990-05-17"),
	}
	assert.NoError(t, v.Patient(ctx, &ok, 0))

	bad := PatientForm{
		Name:           strings.Repeat("n", 256),
		DocumentTypeID: uintPtr(2),
		DocumentNumber: strPtr(strings.Repeat("9", 51)),
		BirthDate:      strPtr("17/05/1990"),
	}
	verrs := fieldErrors(t, v.Patient(ctx, &bad, 0))
	require.Len(t, verrs, 4)
	assert.Equal(t, "name", verrs[0].Field)
	assert.Equal(t, FieldError{Field: "document_type_id", Message: msgInvalidChoice}, verrs[1])
	assert.Equal(t, "Ensure this value has at most 50 characters (it has 51).", verrs[2].Message)
	assert.Equal(t, FieldError{Field: "birth_date", Message: msgInvalidDate}, verrs[3])

	noDocument := PatientForm{Name: "John Roe", DocumentNumber: strPtr("")}
	require.NoError(t, v.Patient(ctx, &noDocument, 0))
	assert.Nil(t, noDocument.DocumentNumber)
}

func TestHistory_Rules(t *testing.T) {
	v := New(&MockLookup{
		ExistsFunc: func(ctx context.Context, table string, id uint) (bool, error) {
			return table == model.TablePatients && id == 1, nil
		},
	})
	ctx := context.Background()

	ok := HistoryForm{
		PatientID:  1,
		DiuType:    strPtr(strings.Repeat("t", 255)),
		Height:     decPtr("165.50"),
		Weight:     decPtr("999.99"),
		LastWeight: decPtr("64"),
	}
	assert.NoError(t, v.History(ctx, &ok, 0))

	err := v.History(ctx, &HistoryForm{PatientID: 1, DiuType: strPtr(strings.Repeat("t", 256))}, 0)
	assertFieldMessage(t, err, "diu_type", "Ensure this value has at most 255 characters (it has 256).")

	err = v.History(ctx, &HistoryForm{}, 0)
	assertFieldMessage(t, err, "patient_id", msgRequired)

	err = v.History(ctx, &HistoryForm{PatientID: 2}, 0)
	assertFieldMessage(t, err, "patient_id", msgInvalidChoice)

	err = v.History(ctx, &HistoryForm{PatientID: 1, Height: decPtr("1234.56")}, 0)
	assertFieldMessage(t, err, "height", "Ensure that there are no more than 5 digits in total.")

	err = v.History(ctx, &HistoryForm{PatientID: 1, Weight: decPtr("1000")}, 0)
	assertFieldMessage(t, err, "weight", "Ensure that there are no more than 3 digits before the decimal point.")
}

func TestAppointment_Rules(t *testing.T) {
	v := New(&MockLookup{
		ExistsFunc: func(ctx context.Context, table string, id uint) (bool, error) {
			return id == 1, nil
		},
	})
	ctx := context.Background()

	lastYear := time.Now().AddDate(-1, 0, 0)
	past := AppointmentForm{PaymentTypeID: 1, Date: &lastYear, Description: strPtr(strings.Repeat("d", 1000))}
	assert.NoError(t, v.Appointment(ctx, &past, 0), "past dates are accepted")

	now := time.Now()
	err := v.Appointment(ctx, &AppointmentForm{PaymentTypeID: 1, Date: &now, Description: strPtr(strings.Repeat("d", 1001))}, 0)
	assertFieldMessage(t, err, "description", "Ensure this value has at most 1000 characters (it has 1001).")

	err = v.Appointment(ctx, &AppointmentForm{PaymentTypeID: 2, PredeterminedPriceID: uintPtr(3), Date: &now}, 0)
	verrs := fieldErrors(t, err)
	require.Len(t, verrs, 2)
	assert.Equal(t, "payment_type_id", verrs[0].Field)
	assert.Equal(t, "predetermined_price_id", verrs[1].Field)
}

func TestDigitCount(t *testing.T) {
	tests := []struct {
		in             string
		digits, places int
	}{
		{"0", 0, 0},
		{"0.00", 2, 2},
		{"1.50", 3, 2},
		{"-12.3", 3, 1},
		{"0.001", 3, 3},
		{"1200", 4, 0},
	}
	for _, tt := range tests {
		digits, places := digitCount(decimal.RequireFromString(tt.in))
		assert.Equal(t, tt.digits, digits, tt.in)
		assert.Equal(t, tt.places, places, tt.in)
	}
}

func TestWithLookup(t *testing.T) {
	base := New(&MockLookup{})
	taken := base.WithLookup(&MockLookup{
		NameTakenFunc: func(ctx context.Context, table, name string, excludeID uint) (bool, error) {
			return true, nil
		},
	})
	ctx := context.Background()

	assert.NoError(t, base.PaymentType(ctx, &PaymentTypeForm{Code: "CASH", Name: "Cash"}, 0))
	assert.Error(t, taken.PaymentType(ctx, &PaymentTypeForm{Code: "CASH", Name: "Cash"}, 0))
}
