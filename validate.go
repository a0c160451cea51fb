package auth

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	validate = validator.New(validator.WithRequiredStructEnabled())

	// Report fields by their json name so errors line up with the HTML inputs.
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
}

// FieldErrors maps a field name to its validation messages, in the order they
// should be displayed. A field without errors has no entry.
type FieldErrors map[string][]string

// Get returns the messages for one field.
func (fe FieldErrors) Get(field string) []string {
	if fe == nil {
		return nil
	}
	return fe[field]
}

// ValidateLogin checks the whole login form.
func ValidateLogin(d LoginData) FieldErrors {
	return validateStruct(&d)
}

// ValidateRegister checks the whole register form, including the password
// confirmation.
func ValidateRegister(d RegisterData) FieldErrors {
	return validateStruct(&d)
}

// ValidateField checks a single field of tab against the current form values,
// as done when the field loses focus.
func ValidateField(tab Tab, field string, values map[string]string) ([]string, error) {
	if !hasField(tab, field) {
		if _, err := ParseTab(string(tab)); err != nil {
			return nil, err
		}
		return nil, ErrUnknownField
	}
	return fieldErrors(tab, field, values), nil
}

// fieldErrors is ValidateField for a tab and field already known to exist.
func fieldErrors(tab Tab, field string, values map[string]string) []string {
	var errs FieldErrors
	switch tab {
	case TabLogin:
		errs = ValidateLogin(LoginData{
			Email:    values[FieldEmail],
			Password: values[FieldPassword],
		})
	case TabRegister:
		errs = ValidateRegister(RegisterData{
			Email:           values[FieldEmail],
			Password:        values[FieldPassword],
			ConfirmPassword: values[FieldConfirmPassword],
		})
	}
	return errs.Get(field)
}

func validateStruct(s any) FieldErrors {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	errs := FieldErrors{}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		errs[""] = []string{err.Error()}
		return errs
	}
	for _, fe := range verrs {
		errs[fe.Field()] = append(errs[fe.Field()], formatFieldError(fe))
	}
	return errs
}

// formatFieldError turns a single rule failure into the message shown under
// the field.
func formatFieldError(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "email":
		return "Must be a valid email."
	case "min":
		return "Must be at least " + fe.Param() + " characters."
	case "max":
		return "Must be at most " + fe.Param() + " characters."
	case "eqfield":
		return "Passwords do not match."
	default:
		return "Invalid value."
	}
}
