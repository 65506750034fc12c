// internal/validation/validator.go
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"sort"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
)

var (
	lettersAndSpaces = regexp.MustCompile(`^[a-zA-Z\s]+$`)
	digitsOnly       = regexp.MustCompile(`^[0-9]+$`)
	phonePattern     = regexp.MustCompile(`^[+]?[\d\s\-()]+$`)
	pincodePattern   = regexp.MustCompile(`^\d{6}$`)
)

// FieldErrors maps a JSON field name to its first failing rule's message
type FieldErrors map[string]string

func (e FieldErrors) Error() string {
	fields := make([]string, 0, len(e))
	for f := range e {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, fmt.Sprintf("%s: %s", f, e[f]))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// AsFieldErrors extracts FieldErrors from err
func AsFieldErrors(err error) (FieldErrors, bool) {
	var fe FieldErrors
	if errors.As(err, &fe) {
		return fe, true
	}
	return nil, false
}

// Validator checks storefront forms
type Validator struct {
	v *validator.Validate
}

// New creates a validator with the storefront rules registered
func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})

	mustRegister(v, "alphaspace", matches(lettersAndSpaces))
	mustRegister(v, "digits", matches(digitsOnly))
	mustRegister(v, "phone", matches(phonePattern))
	mustRegister(v, "pincode", matches(pincodePattern))
	mustRegister(v, "strongpassword", strongPassword)
	mustRegister(v, "accepted", func(fl validator.FieldLevel) bool { return fl.Field().Bool() })

	return &Validator{v: v}
}

// Struct validates a form, returning FieldErrors on failure
func (val *Validator) Struct(form any) error {
	err := val.v.Struct(form)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("failed to validate form: %w", err)
	}

	out := FieldErrors{}
	for _, fe := range verrs {
		field := fe.Field()
		if _, seen := out[field]; seen {
			continue
		}
		out[field] = message(field, fe.Tag(), fe.Param())
	}
	return out
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("register %s validation: %v", tag, err))
	}
}

func matches(re *regexp.Regexp) validator.Func {
	return func(fl validator.FieldLevel) bool {
		return re.MatchString(fl.Field().String())
	}
}

func strongPassword(fl validator.FieldLevel) bool {
	var lower, upper, digit bool
	for _, r := range fl.Field().String() {
		switch {
		case unicode.IsLower(r):
			lower = true
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsDigit(r):
			digit = true
		}
	}
	return lower && upper && digit
}

// messages overrides the generic wording for specific field/rule pairs
var messages = map[string]string{
	"email.required":             "Email is required",
	"email.email":                "Please enter a valid email address",
	"password.required":          "Password is required",
	"password.min":               "Password must be at least 8 characters",
	"password.strongpassword":    "Password must contain at least one uppercase letter, one lowercase letter, and one number",
	"confirmPassword.eqfield":    "Passwords don't match",
	"confirmPassword.required":   "Passwords don't match",
	"agreeToTerms.accepted":      "You must agree to the terms and conditions",
	"phoneNumber.digits":         "Phone number can only contain numbers",
	"phoneNumber.phone":          "Please enter a valid phone number",
	"alternatePhoneNumber.min":   "Please enter a valid alternate phone number",
	"alternatePhoneNumber.max":   "Please enter a valid alternate phone number",
	"alternatePhoneNumber.phone": "Please enter a valid alternate phone number",
	"addressType.required":       "Please select an address type",
	"addressType.oneof":          "Please select an address type",
	"pincode.len":                "Pincode must be 6 digits",
	"pincode.pincode":            "Pincode must contain only numbers",
	"firstName.alphaspace":       "First name can only contain letters and spaces",
	"lastName.alphaspace":        "Last name can only contain letters and spaces",
}

func message(field, tag, param string) string {
	if m, ok := messages[field+"."+tag]; ok {
		return m
	}

	label := humanize(field)
	switch tag {
	case "required":
		return label + " is required"
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", label, param)
	case "max":
		return fmt.Sprintf("%s must be less than %s characters", label, param)
	case "len":
		return fmt.Sprintf("%s must be %s characters", label, param)
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", label, param)
	default:
		return label + " is invalid"
	}
}

// humanize turns "addressLine1" into "Address line 1"
func humanize(field string) string {
	var b strings.Builder
	for i, r := range field {
		switch {
		case i == 0:
			b.WriteRune(unicode.ToUpper(r))
		case unicode.IsUpper(r):
			b.WriteRune(' ')
			b.WriteRune(unicode.ToLower(r))
		case unicode.IsDigit(r) && i > 0 && !unicode.IsDigit(rune(field[i-1])):
			b.WriteRune(' ')
			b.WriteRune(r)
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
