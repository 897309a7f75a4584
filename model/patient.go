package model

import "gorm.io/datatypes"

const TablePatients = "patients"

// Patient represents a patient entity
// @Description Patient information
type Patient struct {
	Base
	Name           string          `json:"name" gorm:"type:varchar(255);not null" example:"John Doe"`
	DocumentTypeID *uint           `json:"document_type_id" gorm:"index" example:"1"`
	DocumentType   *DocumentType   `json:"document_type,omitempty" gorm:"foreignKey:DocumentTypeID;constraint:OnDelete:SET NULL"`
	DocumentNumber *string         `json:"document_number" gorm:"type:varchar(50)" example:"A1234567"`
	BirthDate      *datatypes.Date `json:"birth_date" example:"1990-04-12T00:00:00Z"`
	Histories      []History       `json:"histories,omitempty" gorm:"foreignKey:PatientID;constraint:OnDelete:CASCADE"`
}

func (Patient) TableName() string {
	return TablePatients
}

func (p Patient) String() string {
	return p.Name
}
