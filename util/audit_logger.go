package util

import (
	"encoding/json"
	"strings"

	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/ariebrainware/clinic-records/model"
)

// RecordAction names a committed change to a record.
type RecordAction string

const (
	ActionCreate     RecordAction = "CREATE"
	ActionUpdate     RecordAction = "UPDATE"
	ActionSoftDelete RecordAction = "SOFT_DELETE"
	ActionRestore    RecordAction = "RESTORE"
	ActionDelete     RecordAction = "DELETE"
)

// RecordEvent describes one committed change to be audited.
type RecordEvent struct {
	Action   RecordAction
	Entity   string
	RecordID uint
	IP       string
	Message  string
	Details  map[string]interface{}
}

var auditDB *gorm.DB

// SetAuditLoggerDB sets a gorm DB instance used by the audit logger.
// Call this during application startup (e.g. in main) after DB initialization.
func SetAuditLoggerDB(db *gorm.DB) {
	auditDB = db
}

// sanitizeLogValue removes newlines and other characters that could break log parsing
func sanitizeLogValue(value string) string {
	value = strings.ReplaceAll(value, "\n", " ")
	value = strings.ReplaceAll(value, "\r", " ")
	value = strings.ReplaceAll(value, "\t", " ")
	if len(value) > 200 {
		value = value[:200] + "..."
	}
	return value
}

// LogRecordEvent logs a record change and persists it to audit_logs when a
// database is set. Persisting is best-effort: a failed write is logged and
// otherwise ignored.
func LogRecordEvent(event RecordEvent) {
	l := Log().Named("audit")
	l.Info("record changed",
		zap.String("action", string(event.Action)),
		zap.String("entity", event.Entity),
		zap.Uint("record_id", event.RecordID),
		zap.String("ip", sanitizeLogValue(event.IP)),
		zap.String("message", sanitizeLogValue(event.Message)),
		zap.Int("details_count", len(event.Details)),
	)

	if auditDB == nil {
		return
	}

	var details datatypes.JSON
	if event.Details != nil {
		if b, err := json.Marshal(event.Details); err == nil {
			details = datatypes.JSON(b)
		}
	}

	entry := model.AuditLog{
		Entity:   event.Entity,
		RecordID: event.RecordID,
		Action:   string(event.Action),
		IP:       sanitizeLogValue(event.IP),
		Message:  sanitizeLogValue(event.Message),
		Details:  details,
	}
	if err := auditDB.Create(&entry).Error; err != nil {
		l.Warn("failed to persist audit event", zap.Error(err))
	}
}
