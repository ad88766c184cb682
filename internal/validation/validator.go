// Foodgram - Recipe Sharing Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/foodgram

package validation

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/tomtom215/foodgram/internal/models"
)

// singleton validator instance
var (
	validate     *validator.Validate
	validateOnce sync.Once
)

var (
	hexColorPattern = regexp.MustCompile(`^#([A-Fa-f0-9]{3,6})$`)
	usernamePattern = regexp.MustCompile(`^[\w.@+-]+$`)
	slugPattern     = regexp.MustCompile(`^[-a-zA-Z0-9_]+$`)
)

// ReservedUsername is the path segment of the current-user endpoint and
// cannot be registered.
const ReservedUsername = "me"

// ValidationError represents a single field validation error.
type ValidationError struct {
	field   string
	tag     string
	param   string
	value   interface{}
	message string
}

// Field returns the JSON path of the field that failed validation.
func (e *ValidationError) Field() string {
	return e.field
}

// Tag returns the validation tag that failed.
func (e *ValidationError) Tag() string {
	return e.tag
}

// Param returns the parameter for the validation tag (e.g., "200" for "max=200").
func (e *ValidationError) Param() string {
	return e.param
}

// Value returns the actual value that failed validation.
func (e *ValidationError) Value() interface{} {
	return e.value
}

// Error returns a human-readable error message.
func (e *ValidationError) Error() string {
	return e.message
}

// RequestValidationError represents a collection of validation errors.
type RequestValidationError struct {
	errors []ValidationError
}

// NewFieldError builds a single-field error for checks that run outside the
// struct tags (unknown references, password policy, ...).
func NewFieldError(field, tag, message string) *RequestValidationError {
	return &RequestValidationError{errors: []ValidationError{{field: field, tag: tag, message: message}}}
}

// Add appends a field error and returns ve for chaining.
func (ve *RequestValidationError) Add(field, tag, message string) *RequestValidationError {
	ve.errors = append(ve.errors, ValidationError{field: field, tag: tag, message: message})
	return ve
}

// Errors returns the slice of validation errors.
func (ve *RequestValidationError) Errors() []ValidationError {
	return ve.errors
}

// Error implements the error interface, returning a combined error message.
func (ve *RequestValidationError) Error() string {
	if len(ve.errors) == 0 {
		return "validation failed"
	}

	messages := make([]string, 0, len(ve.errors))
	for _, err := range ve.errors {
		messages = append(messages, err.Error())
	}
	return strings.Join(messages, "; ")
}

// ToAPIError converts validation errors to the VALIDATION_ERROR envelope.
// Details map each failing field to its messages.
func (ve *RequestValidationError) ToAPIError() *models.APIError {
	if len(ve.errors) == 0 {
		return &models.APIError{Code: "VALIDATION_ERROR", Message: "Validation failed"}
	}

	fields := make(map[string][]string, len(ve.errors))
	messages := make([]string, 0, len(ve.errors))
	for _, err := range ve.errors {
		fields[err.field] = append(fields[err.field], err.message)
		messages = append(messages, err.message)
	}

	return &models.APIError{
		Code:    "VALIDATION_ERROR",
		Message: strings.Join(messages, "; "),
		Details: map[string]interface{}{"fields": fields},
	}
}

// GetValidator returns the singleton validator instance with the custom
// tags registered. Field names in errors are taken from the json tags.
func GetValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())

		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name == "" {
				return fld.Name
			}
			return name
		})

		mustRegister("hexcolor6", func(fl validator.FieldLevel) bool {
			return hexColorPattern.MatchString(fl.Field().String())
		})
		mustRegister("username", func(fl validator.FieldLevel) bool {
			return usernamePattern.MatchString(fl.Field().String())
		})
		mustRegister("slug", func(fl validator.FieldLevel) bool {
			return slugPattern.MatchString(fl.Field().String())
		})
		mustRegister("notme", func(fl validator.FieldLevel) bool {
			return !strings.EqualFold(fl.Field().String(), ReservedUsername)
		})
	})

	return validate
}

func mustRegister(tag string, fn validator.Func) {
	if err := validate.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("validation: register %s: %v", tag, err))
	}
}

// ValidateStruct validates a struct using the singleton validator.
// Returns nil if validation passes, or *RequestValidationError if validation fails.
func ValidateStruct(s interface{}) *RequestValidationError {
	err := GetValidator().Struct(s)
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return NewFieldError("unknown", "unknown", err.Error())
	}

	fieldErrors := make([]ValidationError, len(validationErrs))
	for i, fieldErr := range validationErrs {
		field := fieldPath(fieldErr)
		fieldErrors[i] = ValidationError{
			field:   field,
			tag:     fieldErr.Tag(),
			param:   fieldErr.Param(),
			value:   fieldErr.Value(),
			message: translateError(fieldErr, field),
		}
	}
	return &RequestValidationError{errors: fieldErrors}
}

// fieldPath drops the root struct name from the namespace so nested errors
// read "ingredients[0].amount".
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}

// errorMessageTemplates maps validation tags to message templates.
var errorMessageTemplates = map[string]string{
	"required":  "missing %s",
	"email":     "%s must be a valid email address",
	"unique":    "duplicate %s",
	"hexcolor6": "%s must be a HEX color such as #E26C2D",
	"username":  "%s may contain only letters, digits and @/./+/-/_",
	"notme":     "%s must not be \"me\"",
	"slug":      "%s may contain only letters, digits, hyphens and underscores",
}

// errorMessageWithParam maps validation tags to templates that include param.
var errorMessageWithParam = map[string]string{
	"oneof": "%s must be one of: %s",
	"gte":   "%s must be greater than or equal to %s",
	"lte":   "%s must be less than or equal to %s",
	"gt":    "%s must be greater than %s",
	"lt":    "%s must be less than %s",
}

// translateError converts a validator.FieldError to a human-readable message.
func translateError(fe validator.FieldError, field string) string {
	tag := fe.Tag()
	param := fe.Param()

	if template, ok := errorMessageTemplates[tag]; ok {
		return fmt.Sprintf(template, field)
	}
	if template, ok := errorMessageWithParam[tag]; ok {
		return fmt.Sprintf(template, field, param)
	}
	return translateMinMax(fe, field, tag, param)
}

// translateMinMax handles min/max validation with type-specific messages.
func translateMinMax(fe validator.FieldError, field, tag, param string) string {
	switch fe.Kind() {
	case reflect.String:
		if tag == "min" {
			return fmt.Sprintf("%s must be at least %s characters", field, param)
		}
		if tag == "max" {
			return fmt.Sprintf("%s must be at most %s characters", field, param)
		}
	case reflect.Slice, reflect.Array:
		if tag == "min" {
			return fmt.Sprintf("%s must contain at least %s item(s)", field, param)
		}
		if tag == "max" {
			return fmt.Sprintf("%s must contain at most %s item(s)", field, param)
		}
	default:
		if tag == "min" {
			return fmt.Sprintf("%s must be at least %s", field, param)
		}
		if tag == "max" {
			return fmt.Sprintf("%s must be at most %s", field, param)
		}
	}
	return fmt.Sprintf("%s failed %s validation", field, tag)
}
