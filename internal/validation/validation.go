// Package validation checks a registration form before anything is written.
package validation

import (
	"errors"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	"goonj/internal/domain"
)

// Years is the enumerated list accepted for the year field.
var Years = []string{"1st Year", "2nd Year", "3rd Year", "4th Year", "5th Year"}

// Courses are suggestions offered by the form. Course is free text; any non-blank value is accepted.
var Courses = []string{"B.Tech", "M.Tech", "BCA", "MCA", "B.Sc", "M.Sc", "BBA", "MBA", "B.Com", "B.A", "Other"}

var (
	phoneRegex = regexp.MustCompile(`^[0-9]{10}$`)
	emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	txnRegex   = regexp.MustCompile(`^[a-zA-Z0-9\-_]+$`)
)

// Field keys used in the returned error map.
const (
	FieldName          = "name"
	FieldEmail         = "email"
	FieldPhone         = "phone"
	FieldCollege       = "college"
	FieldCourse        = "course"
	FieldYear          = "year"
	FieldTransactionID = "transaction_id"
	FieldEvents        = "events"
	FieldPaymentMethod = "payment_method"
)

// MsgUnknownEvent is reported on the events field when an id is not in the catalog.
const MsgUnknownEvent = "One or more selected events are not available"

var messages = map[string]map[string]string{
	FieldName:    {"required": "Name is required"},
	FieldEmail:   {"required": "Email is required", "emailshape": "Please enter a valid email address"},
	FieldPhone:   {"required": "Phone number is required", "phone10": "Phone number must be exactly 10 digits"},
	FieldCollege: {"required": "College name is required"},
	FieldCourse:  {"required": "Course is required"},
	FieldYear:    {"required": "Year is required", "year": "Please select a valid year"},
	FieldTransactionID: {
		"required_if": "Transaction ID is required for paid events",
		"txnref":      "Transaction ID may only contain letters, digits, hyphens and underscores",
	},
	FieldEvents:        {"gt": "Please select at least one event"},
	FieldPaymentMethod: {"oneof": "Payment method must be upi or card"},
}

// submission is the rule set. Fields are trimmed before validation, so required means non-blank.
type submission struct {
	Name          string `json:"name" validate:"required"`
	Email         string `json:"email" validate:"required,emailshape"`
	Phone         string `json:"phone" validate:"required,phone10"`
	College       string `json:"college" validate:"required"`
	Course        string `json:"course" validate:"required"`
	Year          string `json:"year" validate:"required,year"`
	PaymentMethod string `json:"payment_method" validate:"omitempty,oneof=upi card"`
	PaymentDue    bool   `json:"-"`
	TransactionID string `json:"transaction_id" validate:"required_if=PaymentDue true,txnref"`
	Events        int    `json:"events" validate:"gt=0"`
}

// Validator evaluates every rule independently and reports one message per failing field.
type Validator struct {
	v *validator.Validate
}

// New returns a Validator with the form's custom rules registered.
func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("phone10", func(fl validator.FieldLevel) bool {
		return phoneRegex.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("emailshape", func(fl validator.FieldLevel) bool {
		return emailRegex.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("txnref", func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		return s == "" || txnRegex.MatchString(s)
	})
	_ = v.RegisterValidation("year", func(fl validator.FieldLevel) bool {
		return IsYear(fl.Field().String())
	})
	return &Validator{v: v}
}

var defaultValidator = New()

// Validate runs the rule set with the package's default Validator.
func Validate(form domain.RegistrationForm, selection domain.Selection, payment domain.PaymentInfo) domain.FieldErrors {
	return defaultValidator.Validate(form, selection, payment)
}

// Validate returns an empty map iff the submission may proceed.
func (v *Validator) Validate(form domain.RegistrationForm, selection domain.Selection, payment domain.PaymentInfo) domain.FieldErrors {
	s := submission{
		Name:          strings.TrimSpace(form.Name),
		Email:         strings.TrimSpace(form.Email),
		Phone:         strings.TrimSpace(form.Phone),
		College:       strings.TrimSpace(form.College),
		Course:        strings.TrimSpace(form.Course),
		Year:          strings.TrimSpace(form.Year),
		PaymentMethod: strings.TrimSpace(string(payment.Method)),
		PaymentDue:    selection.Total() > 0,
		TransactionID: strings.TrimSpace(payment.TransactionID),
		Events:        selection.Len(),
	}

	out := domain.FieldErrors{}
	err := v.v.Struct(s)
	if err == nil {
		return out
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		out[FieldEvents] = "Invalid submission"
		return out
	}
	for _, fe := range verrs {
		field := fe.Field()
		if _, exists := out[field]; exists {
			continue
		}
		out[field] = message(field, fe.Tag())
	}
	return out
}

func message(field, tag string) string {
	if m, ok := messages[field][tag]; ok {
		return m
	}
	return "Invalid value"
}

// IsYear reports whether s is one of Years.
func IsYear(s string) bool {
	for _, y := range Years {
		if s == y {
			return true
		}
	}
	return false
}
