package model

const TablePaymentTypes = "payment_types"

// PaymentType represents an accepted way of paying for an appointment
// @Description Payment type information
type PaymentType struct {
	BaseSoftDelete
	Code         string        `json:"code" gorm:"type:varchar(50);not null" example:"CASH"`
	Name         string        `json:"name" gorm:"type:varchar(255);not null;uniqueIndex:uq_payment_types_name" example:"Cash"`
	Appointments []Appointment `json:"appointments,omitempty" gorm:"foreignKey:PaymentTypeID;constraint:OnDelete:CASCADE"`
}

func (PaymentType) TableName() string {
	return TablePaymentTypes
}

func (p PaymentType) String() string {
	return p.Name
}
