package common

import (
	"fmt"
	"strings"
	"time"

	"github.com/joseph-ayodele/legal-docify/constants"
)

// ValidationError represents validation failures
type ValidationError struct {
	Field   string
	Value   interface{}
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("validation failed for field '%s' with value '%v': %s", e.Field, e.Value, e.Message)
}

// Validator provides validation utilities
type Validator struct {
	errors []ValidationError
}

// NewValidator creates a new validator instance
func NewValidator() *Validator {
	return &Validator{
		errors: make([]ValidationError, 0),
	}
}

// Field validates a field and collects errors
func (v *Validator) Field(fieldName string, value interface{}, rules ...ValidationRule) *Validator {
	for _, rule := range rules {
		if err := rule(fieldName, value); err != nil {
			v.errors = append(v.errors, *err)
		}
	}
	return v
}

// HasErrors returns true if there are validation errors
func (v *Validator) HasErrors() bool {
	return len(v.errors) > 0
}

// ErrorMessage returns a combined error message as string
func (v *Validator) ErrorMessage() string {
	if !v.HasErrors() {
		return ""
	}

	var messages []string
	for _, err := range v.errors {
		messages = append(messages, err.Error())
	}
	return strings.Join(messages, "; ")
}

// ValidationRule represents a single validation rule
type ValidationRule func(fieldName string, value interface{}) *ValidationError

// Required - Common validation rules
func Required(fieldName string, value interface{}) *ValidationError {
	if value == nil {
		return &ValidationError{Field: fieldName, Value: value, Message: "is required"}
	}

	switch v := value.(type) {
	case string:
		if strings.TrimSpace(v) == "" {
			return &ValidationError{Field: fieldName, Value: value, Message: "is required"}
		}
	case *string:
		if v == nil || strings.TrimSpace(*v) == "" {
			return &ValidationError{Field: fieldName, Value: value, Message: "is required"}
		}
	}
	return nil
}

// Positive accepts durations and integers greater than zero.
func Positive(fieldName string, value interface{}) *ValidationError {
	ok := true
	switch v := value.(type) {
	case time.Duration:
		ok = v > 0
	case int:
		ok = v > 0
	case int32:
		ok = v > 0
	case int64:
		ok = v > 0
	}
	if !ok {
		return &ValidationError{Field: fieldName, Value: value, Message: "must be positive"}
	}
	return nil
}

// KnownProvider accepts the LLM provider names understood by the service.
func KnownProvider(fieldName string, value interface{}) *ValidationError {
	str, _ := value.(string)
	if _, ok := constants.ParseProvider(str); !ok {
		return &ValidationError{Field: fieldName, Value: value, Message: "must be one of openai, vertex"}
	}
	return nil
}
