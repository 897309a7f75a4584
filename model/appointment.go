package model

import (
	"fmt"
	"time"
)

const TableAppointments = "appointments"

// Appointment represents a scheduled visit
// @Description Appointment information
type Appointment struct {
	Base
	PaymentTypeID        uint      `json:"payment_type_id" gorm:"not null;index" example:"1"`
	PredeterminedPriceID *uint     `json:"predetermined_price_id" gorm:"index" example:"1"`
	Date                 time.Time `json:"date" gorm:"not null" example:"2025-01-15T09:30:00Z"`
	Description          *string   `json:"description" gorm:"type:text" example:"Follow-up visit"`
}

func (Appointment) TableName() string {
	return TableAppointments
}

func (a Appointment) String() string {
	return fmt.Sprintf("Appointment %d", a.ID)
}
