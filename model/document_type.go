package model

const TableDocumentTypes = "document_types"

// DocumentType represents an identity document kind (passport, national ID)
// @Description Document type information
type DocumentType struct {
	BaseSoftDelete
	Name        string  `json:"name" gorm:"type:varchar(255);not null;uniqueIndex:uq_document_types_name" example:"Passport"`
	Description *string `json:"description" gorm:"type:text" example:"Travel document issued by a government"`
}

func (DocumentType) TableName() string {
	return TableDocumentTypes
}

func (d DocumentType) String() string {
	return d.Name
}
