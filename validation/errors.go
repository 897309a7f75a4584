package validation

import (
	"reflect"
	"strings"
)

// FieldError is a rejected field together with a readable reason.
type FieldError struct {
	Field   string `json:"field" example:"name"`
	Message string `json:"message" example:"This field is required."`
}

// Errors holds every field rejected by one validation run, in field
// declaration order.
type Errors []FieldError

func (e Errors) Error() string {
	parts := make([]string, 0, len(e))
	for _, fe := range e {
		parts = append(parts, fe.Field+": "+fe.Message)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Field returns the failure recorded for name, if any.
func (e Errors) Field(name string) (FieldError, bool) {
	for _, fe := range e {
		if fe.Field == name {
			return fe, true
		}
	}
	return FieldError{}, false
}

// collector keeps the first failure per field and reports them in the order
// the form declares its fields.
type collector struct {
	order  []string
	failed map[string]string
}

func newCollector(form interface{}) *collector {
	t := reflect.TypeOf(form)
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	c := &collector{failed: make(map[string]string)}
	for i := 0; i < t.NumField(); i++ {
		c.order = append(c.order, jsonName(t.Field(i)))
	}
	return c
}

func (c *collector) add(field, message string) {
	if _, ok := c.failed[field]; ok {
		return
	}
	c.failed[field] = message
}

func (c *collector) has(field string) bool {
	_, ok := c.failed[field]
	return ok
}

func (c *collector) err() error {
	if len(c.failed) == 0 {
		return nil
	}
	out := make(Errors, 0, len(c.failed))
	for _, field := range c.order {
		if msg, ok := c.failed[field]; ok {
			out = append(out, FieldError{Field: field, Message: msg})
		}
	}
	return out
}

func jsonName(f reflect.StructField) string {
	name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
	if name == "" || name == "-" {
		return f.Name
	}
	return name
}
