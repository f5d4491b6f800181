package validation

import (
	"strings"
)

// RequiredFields collects the names of fields whose values are empty after
// trimming whitespace. The returned slice preserves insertion order so error
// messages are stable.
type RequiredFields struct {
	missing []string
}

// Check records field as missing when value is blank.
func (r *RequiredFields) Check(field, value string) *RequiredFields {
	if strings.TrimSpace(value) == "" {
		r.missing = append(r.missing, field)
	}
	return r
}

// CheckIf records field as missing only when cond holds and value is blank.
func (r *RequiredFields) CheckIf(cond bool, field, value string) *RequiredFields {
	if cond {
		return r.Check(field, value)
	}
	return r
}

// Missing returns the names of all missing fields.
func (r *RequiredFields) Missing() []string {
	return r.missing
}

// OK reports whether every checked field was present.
func (r *RequiredFields) OK() bool {
	return len(r.missing) == 0
}
