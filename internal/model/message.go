package model

import (
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"
	"unicode/utf8"
)

// Message is a contact form submission.
type Message struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Subject   string    `json:"subject"`
	Body      string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

// Contact form limits.
const (
	MaxNameLength    = 100
	MaxSubjectLength = 200
	MaxBodyLength    = 5000
)

// FieldError reports an invalid contact form field.
type FieldError struct {
	Field   string
	Message string
}

func (e *FieldError) Error() string {
	return e.Field + ": " + e.Message
}

// Normalize trims surrounding whitespace from every field.
func (m Message) Normalize() Message {
	m.Name = strings.TrimSpace(m.Name)
	m.Email = strings.TrimSpace(m.Email)
	m.Subject = strings.TrimSpace(m.Subject)
	m.Body = strings.TrimSpace(m.Body)
	return m
}

// Validate checks a normalized message. All fields are required.
func (m Message) Validate() error {
	var errs []error
	check := func(field, value string, max int) {
		switch n := utf8.RuneCountInString(value); {
		case n == 0:
			errs = append(errs, &FieldError{Field: field, Message: "is required"})
		case n > max:
			errs = append(errs, &FieldError{Field: field, Message: fmt.Sprintf("must be at most %d characters", max)})
		}
	}
	check("name", m.Name, MaxNameLength)
	check("email", m.Email, 254)
	check("subject", m.Subject, MaxSubjectLength)
	check("message", m.Body, MaxBodyLength)

	if m.Email != "" {
		if addr, err := mail.ParseAddress(m.Email); err != nil || addr.Address != m.Email {
			errs = append(errs, &FieldError{Field: "email", Message: "is not a valid email address"})
		}
	}
	return errors.Join(errs...)
}

// PINLength is the number of digits in the upload PIN.
const PINLength = 4

// ValidatePIN checks that pin is exactly PINLength ASCII digits.
func ValidatePIN(pin string) error {
	if len(pin) != PINLength {
		return fmt.Errorf("PIN must be %d digits", PINLength)
	}
	for _, r := range pin {
		if r < '0' || r > '9' {
			return fmt.Errorf("PIN must contain only digits")
		}
	}
	return nil
}

// FieldErrors flattens the errors returned by Validate into field -> message.
// It returns nil if err holds no FieldError.
func FieldErrors(err error) map[string]string {
	var out map[string]string
	var walk func(error)
	walk = func(e error) {
		if joined, ok := e.(interface{ Unwrap() []error }); ok {
			for _, inner := range joined.Unwrap() {
				walk(inner)
			}
			return
		}
		var fe *FieldError
		if errors.As(e, &fe) {
			if out == nil {
				out = make(map[string]string)
			}
			if _, dup := out[fe.Field]; !dup {
				out[fe.Field] = fe.Message
			}
		}
	}
	if err != nil {
		walk(err)
	}
	return out
}
