package validation

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"

	"github.com/ariebrainware/clinic-records/model"
)

const dateLayout = "2006-01-02"

// Forms carry candidate values for one entity. Each has a constructor that
// seeds the form from a stored record, which lets partial edits overlay only
// the provided fields, and an Apply method that copies accepted values back.

// DocumentTypeForm holds candidate values for a document type
// @Description Document type input
type DocumentTypeForm struct {
	Name        string  `json:"name" validate:"required,max=255" example:"Passport"`
	Description *string `json:"description" validate:"omitempty,max=1000" example:"Travel document"`
}

func NewDocumentTypeForm(d model.DocumentType) DocumentTypeForm {
	return DocumentTypeForm{Name: d.Name, Description: d.Description}
}

func (f *DocumentTypeForm) normalize() {
	f.Name = strings.TrimSpace(f.Name)
	f.Description = trimOptional(f.Description)
}

func (f DocumentTypeForm) Apply(d *model.DocumentType) {
	d.Name = f.Name
	d.Description = f.Description
}

// PatientForm holds candidate values for a patient
// @Description Patient input
type PatientForm struct {
	Name           string  `json:"name" validate:"required,max=255" example:"Jane Doe"`
	DocumentTypeID *uint   `json:"document_type_id" example:"1"`
	DocumentNumber *string `json:"document_number" validate:"omitempty,max=50" example:"X1234567"`
	BirthDate      *string `json:"birth_date" validate:"omitempty,datetime=2006-01-02" example:"1990-05-17"`
}

func NewPatientForm(p model.Patient) PatientForm {
	f := PatientForm{
		Name:           p.Name,
		DocumentTypeID: p.DocumentTypeID,
		DocumentNumber: p.DocumentNumber,
	}
	if p.BirthDate != nil {
		s := time.Time(*p.BirthDate).Format(dateLayout)
		f.BirthDate = &s
	}
	return f
}

func (f *PatientForm) normalize() {
	f.Name = strings.TrimSpace(f.Name)
	f.DocumentNumber = trimOptional(f.DocumentNumber)
	f.BirthDate = trimOptional(f.BirthDate)
}

// Apply expects a validated form; an unparsable birth date is stored as null.
func (f PatientForm) Apply(p *model.Patient) {
	p.Name = f.Name
	p.DocumentTypeID = f.DocumentTypeID
	p.DocumentNumber = f.DocumentNumber
	p.BirthDate = nil
	if f.BirthDate != nil {
		if t, err := time.Parse(dateLayout, *f.BirthDate); err == nil {
			d := datatypes.Date(t)
			p.BirthDate = &d
		}
	}
	if p.DocumentType != nil && (p.DocumentTypeID == nil || p.DocumentType.ID != *p.DocumentTypeID) {
		p.DocumentType = nil
	}
}

// HistoryForm holds candidate values for a clinical history
// @Description History input
type HistoryForm struct {
	PatientID          uint             `json:"patient_id" validate:"required" example:"1"`
	Testimony          *string          `json:"testimony" example:"Lower back pain for two weeks"`
	PrivateObservation *string          `json:"private_observation"`
	Observation        *string          `json:"observation"`
	Height             *decimal.Decimal `json:"height" swaggertype:"string" example:"165.50"`
	Weight             *decimal.Decimal `json:"weight" swaggertype:"string" example:"64.20"`
	LastWeight         *decimal.Decimal `json:"last_weight" swaggertype:"string" example:"65.00"`
	Menstruation       bool             `json:"menstruation"`
	DiuType            *string          `json:"diu_type" validate:"omitempty,max=255" example:"Copper T"`
	Gestation          bool             `json:"gestation"`
}

func NewHistoryForm(h model.History) HistoryForm {
	return HistoryForm{
		PatientID:          h.PatientID,
		Testimony:          h.Testimony,
		PrivateObservation: h.PrivateObservation,
		Observation:        h.Observation,
		Height:             h.Height,
		Weight:             h.Weight,
		LastWeight:         h.LastWeight,
		Menstruation:       h.Menstruation,
		DiuType:            h.DiuType,
		Gestation:          h.Gestation,
	}
}

func (f *HistoryForm) normalize() {
	f.Testimony = trimOptional(f.Testimony)
	f.PrivateObservation = trimOptional(f.PrivateObservation)
	f.Observation = trimOptional(f.Observation)
	f.DiuType = trimOptional(f.DiuType)
}

func (f HistoryForm) Apply(h *model.History) {
	h.PatientID = f.PatientID
	h.Testimony = f.Testimony
	h.PrivateObservation = f.PrivateObservation
	h.Observation = f.Observation
	h.Height = f.Height
	h.Weight = f.Weight
	h.LastWeight = f.LastWeight
	h.Menstruation = f.Menstruation
	h.DiuType = f.DiuType
	h.Gestation = f.Gestation
}

// PaymentTypeForm holds candidate values for a payment type
// @Description Payment type input
type PaymentTypeForm struct {
	Code string `json:"code" validate:"required,max=50" example:"CASH"`
	Name string `json:"name" validate:"required,max=255" example:"Cash"`
}

func NewPaymentTypeForm(p model.PaymentType) PaymentTypeForm {
	return PaymentTypeForm{Code: p.Code, Name: p.Name}
}

func (f *PaymentTypeForm) normalize() {
	f.Code = strings.TrimSpace(f.Code)
	f.Name = strings.TrimSpace(f.Name)
}

func (f PaymentTypeForm) Apply(p *model.PaymentType) {
	p.Code = f.Code
	p.Name = f.Name
}

// PredeterminedPriceForm holds candidate values for a predetermined price
// @Description Predetermined price input
type PredeterminedPriceForm struct {
	Name  string           `json:"name" validate:"required,max=255" example:"Consultation"`
	Price *decimal.Decimal `json:"price" validate:"omitempty,gte=0" swaggertype:"string" example:"45.00"`
}

func NewPredeterminedPriceForm(p model.PredeterminedPrice) PredeterminedPriceForm {
	return PredeterminedPriceForm{Name: p.Name, Price: p.Price}
}

func (f *PredeterminedPriceForm) normalize() {
	f.Name = strings.TrimSpace(f.Name)
}

func (f PredeterminedPriceForm) Apply(p *model.PredeterminedPrice) {
	p.Name = f.Name
	p.Price = f.Price
}

// AppointmentForm holds candidate values for an appointment
// @Description Appointment input
type AppointmentForm struct {
	PaymentTypeID        uint       `json:"payment_type_id" validate:"required" example:"1"`
	PredeterminedPriceID *uint      `json:"predetermined_price_id" example:"1"`
	Date                 *time.Time `json:"date" validate:"required" example:"2025-01-15T09:30:00Z"`
	Description          *string    `json:"description" validate:"omitempty,max=1000" example:"Follow-up visit"`
}

func NewAppointmentForm(a model.Appointment) AppointmentForm {
	f := AppointmentForm{
		PaymentTypeID:        a.PaymentTypeID,
		PredeterminedPriceID: a.PredeterminedPriceID,
		Description:          a.Description,
	}
	if !a.Date.IsZero() {
		d := a.Date
		f.Date = &d
	}
	return f
}

func (f *AppointmentForm) normalize() {
	f.Description = trimOptional(f.Description)
}

func (f AppointmentForm) Apply(a *model.Appointment) {
	a.PaymentTypeID = f.PaymentTypeID
	a.PredeterminedPriceID = f.PredeterminedPriceID
	if f.Date != nil {
		a.Date = *f.Date
	}
	a.Description = f.Description
}

// trimOptional trims s and turns a blank value into null.
func trimOptional(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}
