// Package forms binds, validates and sanitises the catalog's HTML forms.
//
// Validation runs on the trimmed raw input. Values are then HTML-escaped and
// trimmed before they reach the database, so stored text is always the
// escaped form of what the user typed. Maximum lengths are checked against
// that escaped form, since it is what the columns have to hold.
package forms

import (
	"errors"
	"html"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/mrlokans/library/internal/entities"
)

// FieldError is a validation message attached to one form field.
type FieldError struct {
	Field   string
	Message string
}

// Errors is an ordered list of field errors, suitable for rendering.
type Errors []FieldError

// Any reports whether there is at least one error.
func (e Errors) Any() bool {
	return len(e) > 0
}

// For returns the first message for a field, or "".
func (e Errors) For(field string) string {
	for _, fe := range e {
		if fe.Field == field {
			return fe.Message
		}
	}
	return ""
}

// Add appends a field error.
func (e Errors) Add(field, message string) Errors {
	return append(e, FieldError{Field: field, Message: message})
}

// FromValidation flattens an ozzo-validation error into Errors, ordered by
// the given field names. Fields not listed in order come last.
func FromValidation(err error, order ...string) Errors {
	if err == nil {
		return nil
	}

	var fieldErrs validation.Errors
	if !errors.As(err, &fieldErrs) {
		return Errors{{Message: err.Error()}}
	}

	var out Errors
	seen := make(map[string]bool, len(fieldErrs))
	for _, field := range order {
		if fe, ok := fieldErrs[field]; ok && fe != nil {
			out = out.Add(field, fe.Error())
			seen[field] = true
		}
	}
	for field, fe := range fieldErrs {
		if !seen[field] && fe != nil {
			out = out.Add(field, fe.Error())
		}
	}
	return out
}

// Sanitize escapes HTML special characters and trims surrounding whitespace.
func Sanitize(s string) string {
	return strings.TrimSpace(html.EscapeString(s))
}

// Unsanitize reverses Sanitize for values shown back in a form.
func Unsanitize(s string) string {
	return html.UnescapeString(s)
}

// ParseDate parses an optional YYYY-MM-DD value. Empty input yields nil.
func ParseDate(s string) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse(entities.DateLayout, s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// FormatDate renders an optional date for an <input type="date">.
func FormatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(entities.DateLayout)
}

// ParseID parses a positive decimal id.
func ParseID(s string) (uint, error) {
	id, err := strconv.ParseUint(strings.TrimSpace(s), 10, 32)
	if err != nil {
		return 0, err
	}
	if id == 0 {
		return 0, errors.New("id must be positive")
	}
	return uint(id), nil
}

// storedLength fails when the escaped value is longer than limit runes.
func storedLength(limit int, message string) validation.RuleFunc {
	return func(value interface{}) error {
		s, _ := value.(string)
		if utf8.RuneCountInString(Sanitize(s)) > limit {
			return errors.New(message)
		}
		return nil
	}
}

// notBefore fails when the validated date precedes the reference date.
// Unparseable or empty values are left to the Date rule.
func notBefore(reference, message string) validation.RuleFunc {
	return func(value interface{}) error {
		s, _ := value.(string)
		start, err := ParseDate(reference)
		if err != nil || start == nil {
			return nil
		}
		end, err := ParseDate(s)
		if err != nil || end == nil {
			return nil
		}
		if end.Before(*start) {
			return errors.New(message)
		}
		return nil
	}
}
