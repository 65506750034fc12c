package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validRegistration() RegistrationForm {
	return RegistrationForm{
		FirstName:       "Asha",
		LastName:        "Kumar",
		Email:           "asha@example.com",
		PhoneNumber:     "9876543210",
		Password:        "Secret123",
		ConfirmPassword: "Secret123",
		Address:         "12 Temple Street",
		City:            "Chennai",
		District:        "Chennai",
		Province:        "Tamil Nadu",
		AgreeToTerms:    true,
	}
}

func validAddress() DeliveryAddressForm {
	return DeliveryAddressForm{
		AddressType:  "home",
		FullName:     "Asha Kumar",
		PhoneNumber:  "+91 98765-43210",
		AddressLine1: "12 Temple Street",
		City:         "Chennai",
		State:        "Tamil Nadu",
		Pincode:      "600001",
	}
}

func TestLoginForm(t *testing.T) {
	v := New()

	assert.NoError(t, v.Struct(LoginForm{Email: "a@b.co", Password: "x"}))

	err := v.Struct(LoginForm{Email: "nope"})
	fe, ok := AsFieldErrors(err)
	require.True(t, ok)
	assert.Equal(t, "Please enter a valid email address", fe["email"])
	assert.Equal(t, "Password is required", fe["password"])
}

func TestRegistrationForm(t *testing.T) {
	v := New()
	require.NoError(t, v.Struct(validRegistration()))

	tests := []struct {
		name    string
		mutate  func(*RegistrationForm)
		field   string
		message string
	}{
		{"digits in first name", func(f *RegistrationForm) { f.FirstName = "Asha2" }, "firstName", "First name can only contain letters and spaces"},
		{"short last name", func(f *RegistrationForm) { f.LastName = "K" }, "lastName", "Last name must be at least 2 characters"},
		{"phone with letters", func(f *RegistrationForm) { f.PhoneNumber = "98765abc10" }, "phoneNumber", "Phone number can only contain numbers"},
		{"short phone", func(f *RegistrationForm) { f.PhoneNumber = "12345" }, "phoneNumber", "Phone number must be at least 10 characters"},
		{"weak password", func(f *RegistrationForm) { f.Password, f.ConfirmPassword = "alllowercase1", "alllowercase1" }, "password", "Password must contain at least one uppercase letter, one lowercase letter, and one number"},
		{"short password", func(f *RegistrationForm) { f.Password, f.ConfirmPassword = "Ab1", "Ab1" }, "password", "Password must be at least 8 characters"},
		{"mismatched confirmation", func(f *RegistrationForm) { f.ConfirmPassword = "Secret124" }, "confirmPassword", "Passwords don't match"},
		{"terms not accepted", func(f *RegistrationForm) { f.AgreeToTerms = false }, "agreeToTerms", "You must agree to the terms and conditions"},
		{"short address", func(f *RegistrationForm) { f.Address = "abc" }, "address", "Address must be at least 5 characters"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			form := validRegistration()
			tt.mutate(&form)

			fe, ok := AsFieldErrors(v.Struct(form))
			require.True(t, ok)
			assert.Equal(t, tt.message, fe[tt.field])
		})
	}
}

func TestDeliveryAddressForm(t *testing.T) {
	v := New()

	t.Run("valid with defaults", func(t *testing.T) {
		form := validAddress()
		form.AlternatePhoneNumber = "   "
		form.Normalize()

		require.NoError(t, v.Struct(form))
		assert.Equal(t, "India", form.Address().Country)
		assert.Empty(t, form.AlternatePhoneNumber)
	})

	tests := []struct {
		name    string
		mutate  func(*DeliveryAddressForm)
		field   string
		message string
	}{
		{"unknown type", func(f *DeliveryAddressForm) { f.AddressType = "office" }, "addressType", "Please select an address type"},
		{"bad phone", func(f *DeliveryAddressForm) { f.PhoneNumber = "98765#43210" }, "phoneNumber", "Please enter a valid phone number"},
		{"bad alternate phone", func(f *DeliveryAddressForm) { f.AlternatePhoneNumber = "123" }, "alternatePhoneNumber", "Please enter a valid alternate phone number"},
		{"five digit pincode", func(f *DeliveryAddressForm) { f.Pincode = "60000" }, "pincode", "Pincode must be 6 digits"},
		{"letters in pincode", func(f *DeliveryAddressForm) { f.Pincode = "60000a" }, "pincode", "Pincode must contain only numbers"},
		{"short line 1", func(f *DeliveryAddressForm) { f.AddressLine1 = "12" }, "addressLine1", "Address line 1 must be at least 5 characters"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			form := validAddress()
			tt.mutate(&form)
			form.Normalize()

			fe, ok := AsFieldErrors(v.Struct(form))
			require.True(t, ok)
			assert.Equal(t, tt.message, fe[tt.field])
		})
	}
}

func TestProfileUpdateAllowsAnyNameCharacters(t *testing.T) {
	v := New()
	form := ProfileUpdateForm{
		FirstName:   "Asha-Marie",
		LastName:    "O'Neil",
		PhoneNumber: "9876543210",
		Address:     "12 Temple Street",
		City:        "Chennai",
		District:    "Chennai",
		Province:    "Tamil Nadu",
	}
	assert.NoError(t, v.Struct(form))
}

func TestFieldErrorsMessageIsStable(t *testing.T) {
	fe := FieldErrors{"b": "second", "a": "first"}
	assert.Equal(t, "validation failed: a: first; b: second", fe.Error())
}
