package services

import (
	"errors"
	"fmt"
	"regexp"
	"unicode/utf8"
)

// ErrInvalidFormat is returned when input breaks a format or presence rule.
var ErrInvalidFormat = errors.New("invalid format of input data")

const (
	minFullNameLength = 2
	maxFullNameLength = 50
	minEmailLength    = 2
	maxEmailLength    = 100
)

var (
	// 2 to 50 characters, no line breaks
	fullNameRegex = regexp.MustCompile(`^.{2,50}$`)
	// exactly one @ with a non-empty part on each side
	emailRegex = regexp.MustCompile(`^[^@]+@[^@]+$`)
	// + then 5 to 13 ASCII digits
	phoneRegex = regexp.MustCompile(`^\+[0-9]{5,13}$`)
)

// ValidateCustomerData checks the format rules for a customer's fields.
// fullName is always checked; email and phone only when non-nil.
// The first failing rule is reported, wrapped in ErrInvalidFormat.
func ValidateCustomerData(fullName string, email, phone *string) error {
	if !fullNameRegex.MatchString(fullName) {
		return fmt.Errorf("%w: full name must be between %d and %d characters", ErrInvalidFormat, minFullNameLength, maxFullNameLength)
	}
	if email != nil {
		if err := validateEmail(*email); err != nil {
			return err
		}
	}
	if phone != nil && !phoneRegex.MatchString(*phone) {
		return fmt.Errorf("%w: phone must be '+' followed by 5 to 13 digits", ErrInvalidFormat)
	}
	return nil
}

func validateEmail(email string) error {
	if n := utf8.RuneCountInString(email); n < minEmailLength || n > maxEmailLength {
		return fmt.Errorf("%w: email must be between %d and %d characters", ErrInvalidFormat, minEmailLength, maxEmailLength)
	}
	if !emailRegex.MatchString(email) {
		return fmt.Errorf("%w: email must contain exactly one '@' with text on both sides", ErrInvalidFormat)
	}
	return nil
}

// requiredField pairs a request field name with whether it was supplied.
type requiredField struct {
	name    string
	present bool
}

// checkRequiredFields fails on the first field that was not supplied.
func checkRequiredFields(fields ...requiredField) error {
	for _, f := range fields {
		if !f.present {
			return fmt.Errorf("%w: all fields are required for a full update, missing %s", ErrInvalidFormat, f.name)
		}
	}
	return nil
}
