package metrics

// RecordChange counts a committed change to an entity.
func (m *Metrics) RecordChange(entity, action string) {
	m.safeExecute("RecordChange", func() {
		m.RecordChangesTotal.WithLabelValues(entity, action).Inc()
	})
}

// RecordValidationFailure counts one rejected field.
func (m *Metrics) RecordValidationFailure(entity, field string) {
	m.safeExecute("RecordValidationFailure", func() {
		m.ValidationFailuresTotal.WithLabelValues(entity, field).Inc()
	})
}
