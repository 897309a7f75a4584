package validation

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/ariebrainware/clinic-records/model"
)

const (
	msgRequired      = "This field is required."
	msgInvalidChoice = "Select a valid choice. That choice is not one of the available choices."
	msgInvalidDate   = "Enter a valid date."
	msgInvalid       = "Enter a valid value."
)

// Validator checks candidate values for every entity before they are
// committed. The self argument of each method is the identity of the record
// being edited, or 0 when the record is being created.
type Validator struct {
	lookup   Lookup
	validate *validator.Validate
}

func New(lookup Lookup) *Validator {
	v := validator.New()
	v.RegisterTagNameFunc(jsonName)
	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		d, ok := field.Interface().(decimal.Decimal)
		if !ok {
			return nil
		}
		f, _ := d.Float64()
		return f
	}, decimal.Decimal{})
	return &Validator{lookup: lookup, validate: v}
}

// WithLookup returns a Validator that shares v's rules but answers persisted
// record questions through lookup.
func (v *Validator) WithLookup(lookup Lookup) *Validator {
	return &Validator{lookup: lookup, validate: v.validate}
}

func (v *Validator) DocumentType(ctx context.Context, form *DocumentTypeForm, self uint) error {
	form.normalize()
	c := v.check(form)
	if err := v.unique(ctx, c, model.TableDocumentTypes, "Document type", form.Name, self); err != nil {
		return err
	}
	return c.err()
}

func (v *Validator) PaymentType(ctx context.Context, form *PaymentTypeForm, self uint) error {
	form.normalize()
	c := v.check(form)
	if err := v.unique(ctx, c, model.TablePaymentTypes, "Payment type", form.Name, self); err != nil {
		return err
	}
	return c.err()
}

func (v *Validator) PredeterminedPrice(ctx context.Context, form *PredeterminedPriceForm, self uint) error {
	form.normalize()
	c := v.check(form)
	if err := v.unique(ctx, c, model.TablePredeterminedPrices, "Predetermined price", form.Name, self); err != nil {
		return err
	}
	checkDigits(c, "price", form.Price, 10, 2)
	return c.err()
}

// Patient has no uniqueness rule, so self is unused.
func (v *Validator) Patient(ctx context.Context, form *PatientForm, self uint) error {
	form.normalize()
	c := v.check(form)
	if err := v.reference(ctx, c, "document_type_id", model.TableDocumentTypes, form.DocumentTypeID); err != nil {
		return err
	}
	return c.err()
}

func (v *Validator) History(ctx context.Context, form *HistoryForm, self uint) error {
	form.normalize()
	c := v.check(form)
	if form.PatientID != 0 {
		if err := v.reference(ctx, c, "patient_id", model.TablePatients, &form.PatientID); err != nil {
			return err
		}
	}
	checkDigits(c, "height", form.Height, 5, 2)
	checkDigits(c, "weight", form.Weight, 5, 2)
	checkDigits(c, "last_weight", form.LastWeight, 5, 2)
	return c.err()
}

// Appointment dates carry no temporal rule; past dates are accepted.
func (v *Validator) Appointment(ctx context.Context, form *AppointmentForm, self uint) error {
	form.normalize()
	c := v.check(form)
	if form.PaymentTypeID != 0 {
		if err := v.reference(ctx, c, "payment_type_id", model.TablePaymentTypes, &form.PaymentTypeID); err != nil {
			return err
		}
	}
	if err := v.reference(ctx, c, "predetermined_price_id", model.TablePredeterminedPrices, form.PredeterminedPriceID); err != nil {
		return err
	}
	return c.err()
}

// check runs the tag rules declared on form.
func (v *Validator) check(form interface{}) *collector {
	c := newCollector(form)
	err := v.validate.Struct(form)
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		for _, fe := range verrs {
			c.add(fe.Field(), message(fe))
		}
	}
	return c
}

// unique rejects name when another row of table already holds it. A name that
// already failed another rule is not looked up.
func (v *Validator) unique(ctx context.Context, c *collector, table, entity, name string, self uint) error {
	if c.has("name") {
		return nil
	}
	taken, err := v.lookup.NameTaken(ctx, table, name, self)
	if err != nil {
		return err
	}
	if taken {
		c.add("name", fmt.Sprintf("%s with this Name already exists.", entity))
	}
	return nil
}

// reference rejects an id that does not point to a row of table. A nil id is
// accepted.
func (v *Validator) reference(ctx context.Context, c *collector, field, table string, id *uint) error {
	if id == nil || c.has(field) {
		return nil
	}
	ok, err := v.lookup.Exists(ctx, table, *id)
	if err != nil {
		return err
	}
	if !ok {
		c.add(field, msgInvalidChoice)
	}
	return nil
}

// checkDigits enforces a decimal(maxDigits, places) column on d.
func checkDigits(c *collector, field string, d *decimal.Decimal, maxDigits, places int) {
	if d == nil || c.has(field) {
		return
	}
	digits, decimals := digitCount(*d)
	switch {
	case digits > maxDigits:
		c.add(field, fmt.Sprintf("Ensure that there are no more than %d digits in total.", maxDigits))
	case decimals > places:
		c.add(field, fmt.Sprintf("Ensure that there are no more than %d decimal places.", places))
	case digits-decimals > maxDigits-places:
		c.add(field, fmt.Sprintf("Ensure that there are no more than %d digits before the decimal point.", maxDigits-places))
	}
}

// digitCount returns the significant digits of d as written and how many of
// them follow the decimal point. Trailing zeros count, so 1.50 has 3 digits.
func digitCount(d decimal.Decimal) (digits, decimals int) {
	coef := d.Coefficient()
	n := len(coef.Abs(coef).String())
	exp := int(d.Exponent())
	if exp >= 0 {
		if coef.Sign() == 0 {
			return 0, 0
		}
		return n + exp, 0
	}
	decimals = -exp
	if decimals > n {
		return decimals, decimals
	}
	return n, decimals
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return msgRequired
	case "max":
		return fmt.Sprintf("Ensure this value has at most %s characters (it has %d).", fe.Param(), runeCount(fe.Value()))
	case "gte":
		return fmt.Sprintf("Ensure this value is greater than or equal to %s.", fe.Param())
	case "datetime":
		return msgInvalidDate
	default:
		return msgInvalid
	}
}

func runeCount(v interface{}) int {
	switch s := v.(type) {
	case string:
		return utf8.RuneCountInString(s)
	case *string:
		if s != nil {
			return utf8.RuneCountInString(*s)
		}
	}
	return 0
}
