// Package enquiry stores the contact requests visitors send to dealers and
// the phone-number reveals on vehicle pages.
package enquiry

import (
	"fmt"
	"net/mail"
	"sort"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"
)

// Field limits.
const (
	MaxNameLength    = 120
	MaxMessageLength = 2000
	minPhoneDigits   = 7
	maxPhoneDigits   = 15
)

// Enquiry is a contact form submission for one vehicle.
type Enquiry struct {
	ID           string    `json:"id"`
	VehicleID    string    `json:"vehicle_id"`
	VehicleTitle string    `json:"vehicle_title"`
	DealerName   string    `json:"dealer_name"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Phone        string    `json:"phone"`
	Message      string    `json:"message"`
	CreatedAt    time.Time `json:"created_at"`
}

// Contact holds what the visitor typed into the form.
type Contact struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Message string `json:"message"`
}

// Trimmed returns c with surrounding whitespace removed from every field.
func (c Contact) Trimmed() Contact {
	return Contact{
		Name:    strings.TrimSpace(c.Name),
		Email:   strings.TrimSpace(c.Email),
		Phone:   strings.TrimSpace(c.Phone),
		Message: strings.TrimSpace(c.Message),
	}
}

// DefaultMessage is the text the contact form starts with.
func DefaultMessage(vehicleTitle string) string {
	return fmt.Sprintf("Hi, I'm interested in the %s. Please contact me with more information.", vehicleTitle)
}

// New builds an enquiry for a vehicle from the visitor's contact details.
func New(vehicleID, vehicleTitle, dealerName string, c Contact) *Enquiry {
	c = c.Trimmed()
	return &Enquiry{
		VehicleID:    vehicleID,
		VehicleTitle: vehicleTitle,
		DealerName:   dealerName,
		Name:         c.Name,
		Email:        c.Email,
		Phone:        c.Phone,
		Message:      c.Message,
	}
}

// Contact returns the visitor-entered part of the enquiry.
func (e *Enquiry) Contact() Contact {
	return Contact{Name: e.Name, Email: e.Email, Phone: e.Phone, Message: e.Message}
}

// ValidationErrors maps a form field to the message shown next to it.
type ValidationErrors map[string]string

func (v ValidationErrors) Error() string {
	fields := make([]string, 0, len(v))
	for f := range v {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	parts := make([]string, len(fields))
	for i, f := range fields {
		parts[i] = f + ": " + v[f]
	}
	return "invalid enquiry: " + strings.Join(parts, "; ")
}

// Validate checks every field and returns ValidationErrors when any fails.
func (e *Enquiry) Validate() error {
	errs := ValidationErrors{}

	switch {
	case e.Name == "":
		errs["name"] = "Name is required"
	case utf8.RuneCountInString(e.Name) > MaxNameLength:
		errs["name"] = "Name is too long"
	}

	switch {
	case e.Email == "":
		errs["email"] = "Email is required"
	case !validEmail(e.Email):
		errs["email"] = "Enter a valid email address"
	}

	switch {
	case e.Phone == "":
		errs["phone"] = "Phone number is required"
	case !validPhone(e.Phone):
		errs["phone"] = "Enter a valid phone number"
	}

	switch {
	case e.Message == "":
		errs["message"] = "Message is required"
	case utf8.RuneCountInString(e.Message) > MaxMessageLength:
		errs["message"] = "Message is too long"
	}

	if e.VehicleID == "" {
		errs["vehicle"] = "Vehicle is required"
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

func validEmail(s string) bool {
	addr, err := mail.ParseAddress(s)
	if err != nil || addr.Address != s {
		return false
	}
	at := strings.LastIndexByte(s, '@')
	return at > 0 && strings.Contains(s[at+1:], ".")
}

func validPhone(s string) bool {
	digits := 0
	for _, r := range s {
		switch {
		case unicode.IsDigit(r):
			digits++
		case r == ' ' || r == '+' || r == '-' || r == '(' || r == ')' || r == '.':
		default:
			return false
		}
	}
	return digits >= minPhoneDigits && digits <= maxPhoneDigits
}
