package model

import (
	"fmt"

	"github.com/shopspring/decimal"
)

const TablePredeterminedPrices = "predetermined_prices"

// PredeterminedPrice represents a named list price
// @Description Predetermined price information
type PredeterminedPrice struct {
	Base
	Name         string           `json:"name" gorm:"type:varchar(255);not null;uniqueIndex:uq_predetermined_prices_name" example:"Consultation"`
	Price        *decimal.Decimal `json:"price" gorm:"type:decimal(10,2)" example:"45.00"`
	Appointments []Appointment    `json:"appointments,omitempty" gorm:"foreignKey:PredeterminedPriceID;constraint:OnDelete:CASCADE"`
}

func (PredeterminedPrice) TableName() string {
	return TablePredeterminedPrices
}

func (p PredeterminedPrice) String() string {
	if p.Price == nil {
		return fmt.Sprintf("%s - none", p.Name)
	}
	return fmt.Sprintf("%s - %s", p.Name, p.Price.StringFixed(2))
}
