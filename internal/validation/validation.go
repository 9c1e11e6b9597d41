// Package validation checks a quick answer draft before it is submitted.
//
// Only the shortcut and the primary message are length-checked. Every
// message field is checked for the packed-format delimiters, since those
// would silently corrupt the stored record.
package validation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/thenoetrevino/quickanswers/internal/packed"
)

const (
	ShortcutMin = 2
	ShortcutMax = 15
	MessageMin  = 8
	MessageMax  = 30000

	// ShortcutField is the field name reported for shortcut errors.
	ShortcutField = "shortcut"
)

// Messages shown next to an offending field
const (
	MsgRequired  = "Required"
	MsgTooShort  = "Too Short!"
	MsgTooLong   = "Too Long!"
	MsgDelimiter = `Cannot contain "/:/" or "/*/"`
	MsgSeparator = `Runs into the "/:/" or "/*/" separator next to another message`
	MsgInvalid   = "Invalid"
)

const (
	shortcutRules = "required,min=2,max=15"
	messageRules  = "required,min=8,max=30000"
)

// FieldError is a single field-level failure.
type FieldError struct {
	Field   string
	Message string
}

// Errors is the list of field errors for one draft, in field order.
type Errors []FieldError

func (e Errors) Error() string {
	parts := make([]string, 0, len(e))
	for _, fe := range e {
		parts = append(parts, fe.Field+": "+fe.Message)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Err returns e as an error, or nil when there are no failures.
func (e Errors) Err() error {
	if len(e) == 0 {
		return nil
	}
	return e
}

// For returns the message for field, or "" when the field is valid.
func (e Errors) For(field string) string {
	for _, fe := range e {
		if fe.Field == field {
			return fe.Message
		}
	}
	return ""
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	mustRegister(v, "nodelim", func(fl validator.FieldLevel) bool {
		return !packed.ContainsDelimiter(fl.Field().String())
	})
	return v
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("validation: register %q: %v", tag, err))
	}
}

type submission struct {
	Shortcut string `validate:"required,min=2,max=15"`
	Message  string `validate:"required,min=8,max=30000"`
}

// Validate checks a shortcut and its message entries. The primary message
// is looked up by key; a draft without one fails as Required.
func Validate(shortcut string, entries []packed.Entry) Errors {
	var errs Errors

	primary := ""
	for _, e := range entries {
		if e.Key == packed.PrimaryKey {
			primary = e.Value
			break
		}
	}

	err := validate.Struct(submission{Shortcut: shortcut, Message: primary})
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		for _, fe := range verrs {
			field := packed.PrimaryKey
			if fe.StructField() == "Shortcut" {
				field = ShortcutField
			}
			errs = append(errs, FieldError{Field: field, Message: message(fe.Tag())})
		}
	}

	for _, e := range entries {
		if errs.For(e.Key) != "" {
			continue
		}
		if validate.Var(e.Value, "nodelim") != nil {
			errs = append(errs, FieldError{Field: e.Key, Message: MsgDelimiter})
		}
	}

	// Values clean on their own can still form a delimiter where they are joined.
	for _, key := range packed.Collisions(entries) {
		if errs.For(key) == "" {
			errs = append(errs, FieldError{Field: key, Message: MsgSeparator})
		}
	}

	return errs
}

// Shortcut validates a shortcut on its own, for inline form feedback.
func Shortcut(s string) error {
	return checkVar(s, shortcutRules)
}

// Message validates the primary message body on its own.
func Message(s string) error {
	if err := checkVar(s, messageRules); err != nil {
		return err
	}
	return SecondaryMessage(s)
}

// SecondaryMessage validates an additional message body, which only has to
// stay clear of the packed delimiters.
func SecondaryMessage(s string) error {
	if packed.ContainsDelimiter(s) {
		return errors.New(MsgDelimiter)
	}
	return nil
}

func checkVar(s, rules string) error {
	err := validate.Var(s, rules)
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		return errors.New(message(verrs[0].Tag()))
	}
	return err
}

func message(tag string) string {
	switch tag {
	case "required":
		return MsgRequired
	case "min":
		return MsgTooShort
	case "max":
		return MsgTooLong
	case "nodelim":
		return MsgDelimiter
	default:
		return MsgInvalid
	}
}
