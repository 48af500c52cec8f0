package validation

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
)

const (
	// MaxQueryLength bounds the search text, in characters
	MaxQueryLength = 200
	// MaxPage guards against absurd offsets
	MaxPage = 100000

	minYear = 1900
	maxYear = 9999
)

// ValidationError represents a single validation error
type ValidationError struct {
	Field   string      `json:"field"`
	Message string      `json:"message"`
	Value   interface{} `json:"value,omitempty"`
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Errors is a set of validation failures for one request
type Errors []ValidationError

func (e Errors) Error() string {
	msgs := make([]string, 0, len(e))
	for _, ve := range e {
		msgs = append(msgs, ve.Error())
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

// Validator collects errors while request parameters are parsed
type Validator struct {
	errors Errors
}

// NewValidator creates a new validator instance
func NewValidator() *Validator {
	return &Validator{}
}

// Page parses a 1-based page number. Empty means 1.
func (v *Validator) Page(field, raw string) int {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 1
	}
	page, err := strconv.Atoi(raw)
	if err != nil {
		v.add(field, "must be an integer", raw)
		return 1
	}
	if page < 1 {
		v.add(field, "must be greater than or equal to 1", page)
		return 1
	}
	if page > MaxPage {
		v.add(field, fmt.Sprintf("must be at most %d", MaxPage), page)
		return 1
	}
	return page
}

// Query trims search text and checks its length
func (v *Validator) Query(field, raw string) string {
	q := strings.TrimSpace(raw)
	if !utf8.ValidString(q) {
		v.add(field, "must be valid UTF-8", nil)
		return ""
	}
	if n := utf8.RuneCountInString(q); n > MaxQueryLength {
		v.add(field, fmt.Sprintf("must be at most %d characters (has %d)", MaxQueryLength, n), nil)
		return ""
	}
	return q
}

// UUID checks that raw is a UUID and returns it in canonical form
func (v *Validator) UUID(field, raw string) string {
	id, err := uuid.Parse(strings.TrimSpace(raw))
	if err != nil {
		v.add(field, "invalid UUID format", raw)
		return ""
	}
	return id.String()
}

// Year parses an optional four-digit year. Empty returns 0.
func (v *Validator) Year(field, raw string) int {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0
	}
	year, err := strconv.Atoi(raw)
	if err != nil || year < minYear || year > maxYear {
		v.add(field, "must be a four-digit year", raw)
		return 0
	}
	return year
}

// Err returns the collected errors as an error, or nil when there are none
func (v *Validator) Err() error {
	if len(v.errors) == 0 {
		return nil
	}
	return v.errors
}

func (v *Validator) add(field, message string, value interface{}) {
	v.errors = append(v.errors, ValidationError{Field: field, Message: message, Value: value})
}
