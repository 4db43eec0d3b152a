package form

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"eventsite/entity"
)

// ValidationError reports a user-correctable input problem. Submission is
// withheld; nothing about it is retryable server-side.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// IsValidationError reports whether err is user-correctable input feedback
// rather than a collaborator failure.
func IsValidationError(err error) bool {
	var vErr ValidationError
	return errors.As(err, &vErr)
}

var (
	// Latin or Arabic letters, spaces, hyphens and apostrophes.
	nameRe  = regexp.MustCompile(`^[A-Za-z\x{0600}-\x{06FF}\s'-]+$`)
	emailRe = regexp.MustCompile(`^\S+@\S+$`)
	phoneRe = regexp.MustCompile(`^\d{11}$`)
)

func ValidateName(name string) error {
	trimmed := strings.TrimSpace(name)
	if len([]rune(trimmed)) < 2 {
		return ValidationError{Field: "name", Message: "Name must be at least 2 characters"}
	}
	if !nameRe.MatchString(trimmed) {
		return ValidationError{Field: "name", Message: "Name must contain only letters, spaces, hyphens or apostrophes"}
	}
	return nil
}

func ValidateEmail(email string) error {
	if !emailRe.MatchString(strings.TrimSpace(email)) {
		return ValidationError{Field: "email", Message: "Invalid email"}
	}
	return nil
}

func ValidatePhone(phone string) error {
	if !phoneRe.MatchString(strings.TrimSpace(phone)) {
		return ValidationError{Field: "phone", Message: "Phone must contain exactly 11 digits"}
	}
	return nil
}

func ValidateAge(age int) error {
	if age < 1 {
		return ValidationError{Field: "age", Message: "Invalid age"}
	}
	return nil
}

func ValidateGovernorate(governorate string) error {
	trimmed := strings.TrimSpace(governorate)
	if len([]rune(trimmed)) < 2 {
		return ValidationError{Field: "governorate", Message: "Governorate must contain letters"}
	}
	if !nameRe.MatchString(trimmed) {
		return ValidationError{Field: "governorate", Message: "Governorate must contain only letters and spaces"}
	}
	return nil
}

// ValidateContact checks the contact fields shared by the payment and
// registration flows, returning the first failure.
func ValidateContact(c entity.Contact) error {
	if err := ValidateName(c.Name); err != nil {
		return err
	}
	if err := ValidateEmail(c.Email); err != nil {
		return err
	}
	if err := ValidatePhone(c.Phone); err != nil {
		return err
	}
	return ValidateAge(c.Age)
}
