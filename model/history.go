package model

import (
	"fmt"

	"github.com/shopspring/decimal"
)

const TableHistories = "histories"

// History represents one clinical history entry of a patient
// @Description Clinical history information
type History struct {
	BaseSoftDelete
	Testimony          *string          `json:"testimony" gorm:"type:text" example:"Headaches for two weeks"`
	PrivateObservation *string          `json:"private_observation" gorm:"type:text"`
	Observation        *string          `json:"observation" gorm:"type:text"`
	Height             *decimal.Decimal `json:"height" gorm:"type:decimal(5,2)" example:"1.68"`
	Weight             *decimal.Decimal `json:"weight" gorm:"type:decimal(5,2)" example:"64.50"`
	LastWeight         *decimal.Decimal `json:"last_weight" gorm:"type:decimal(5,2)" example:"66.00"`
	Menstruation       bool             `json:"menstruation" gorm:"not null;default:false" example:"false"`
	DiuType            *string          `json:"diu_type" gorm:"type:varchar(255)" example:"Copper T"`
	Gestation          bool             `json:"gestation" gorm:"not null;default:false" example:"false"`
	PatientID          uint             `json:"patient_id" gorm:"not null;index" example:"1"`
}

func (History) TableName() string {
	return TableHistories
}

func (h History) String() string {
	return fmt.Sprintf("History for patient %d", h.PatientID)
}
