package pipeline

import (
	"strings"

	"hrdocs/internal"
)

type FieldClass int

const (
	FieldValid FieldClass = iota
	FieldPlaceholder
	FieldError
)

// ClassifyField decides whether a normalized value is usable data. A value is
// non-valid only when, upper-cased and trimmed, it equals the error token or
// the field's own placeholder.
func ClassifyField(field internal.Field, value string) FieldClass {
	v := strings.ToUpper(strings.TrimSpace(value))
	if v == internal.ErrorToken {
		return FieldError
	}
	if placeholder, ok := internal.Placeholders[field]; ok && v == placeholder {
		return FieldPlaceholder
	}
	return FieldValid
}

// Discarded reports whether the record is ineligible for a registry match.
// One bad identity field is enough; a valid name with a missing date still
// goes down the unmatched path.
func (r NormalizedRecord) Discarded() bool {
	return ClassifyField(internal.FieldFirstName, r.FirstName) != FieldValid ||
		ClassifyField(internal.FieldLastName, r.LastName) != FieldValid ||
		ClassifyField(internal.FieldDate, r.Date) != FieldValid
}
