package model

import "gorm.io/datatypes"

const TableAuditLogs = "audit_logs"

// AuditLog represents a persisted record change event
type AuditLog struct {
	Base
	Entity   string `json:"entity" gorm:"column:entity;type:varchar(64);index"`
	RecordID uint   `json:"record_id" gorm:"column:record_id;index"`
	Action   string `json:"action" gorm:"column:action;type:varchar(32);index"`
	IP       string `json:"ip" gorm:"column:ip;type:varchar(45)"`
	Message  string `json:"message" gorm:"column:message;type:text"`
	// Details holds the request-specific fields as a JSON object.
	Details datatypes.JSON `json:"details" gorm:"column:details;type:json"`
}

func (AuditLog) TableName() string {
	return TableAuditLogs
}
