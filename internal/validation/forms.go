package validation

import (
	"strings"

	"github.com/your-org/easyway-storefront/internal/domain/user"
)

// LoginForm is the sign-in form
type LoginForm struct {
	Email      string `json:"email" validate:"required,email"`
	Password   string `json:"password" validate:"required"`
	RememberMe bool   `json:"rememberMe"`
}

// RegistrationForm is the sign-up form
type RegistrationForm struct {
	FirstName             string `json:"firstName" validate:"min=2,max=50,alphaspace"`
	LastName              string `json:"lastName" validate:"min=2,max=50,alphaspace"`
	Email                 string `json:"email" validate:"required,email"`
	PhoneNumber           string `json:"phoneNumber" validate:"min=10,max=15,digits"`
	Password              string `json:"password" validate:"min=8,strongpassword"`
	ConfirmPassword       string `json:"confirmPassword" validate:"eqfield=Password"`
	Address               string `json:"address" validate:"min=5,max=200"`
	City                  string `json:"city" validate:"min=2,max=50"`
	District              string `json:"district" validate:"min=2,max=50"`
	Province              string `json:"province" validate:"min=2,max=50"`
	AgreeToTerms          bool   `json:"agreeToTerms" validate:"accepted"`
	SubscribeToNewsletter bool   `json:"subscribeToNewsletter"`
}

// ProfileUpdateForm edits the signed-in user's contact details
type ProfileUpdateForm struct {
	FirstName   string `json:"firstName" validate:"min=2,max=50"`
	LastName    string `json:"lastName" validate:"min=2,max=50"`
	PhoneNumber string `json:"phoneNumber" validate:"min=10,max=15,digits"`
	Address     string `json:"address" validate:"min=5,max=200"`
	City        string `json:"city" validate:"min=2,max=50"`
	District    string `json:"district" validate:"min=2,max=50"`
	Province    string `json:"province" validate:"min=2,max=50"`
}

// Apply copies the form onto u
func (f *ProfileUpdateForm) Apply(u *user.User) {
	u.FirstName = f.FirstName
	u.LastName = f.LastName
	u.PhoneNumber = f.PhoneNumber
	u.Address = f.Address
	u.City = f.City
	u.District = f.District
	u.Province = f.Province
}

// DeliveryAddressForm adds or edits an address book entry
type DeliveryAddressForm struct {
	AddressType          string `json:"addressType" validate:"required,oneof=home work other"`
	FullName             string `json:"fullName" validate:"min=2,max=100"`
	PhoneNumber          string `json:"phoneNumber" validate:"min=10,max=15,phone"`
	AlternatePhoneNumber string `json:"alternatePhoneNumber" validate:"omitempty,min=10,max=15,phone"`
	AddressLine1         string `json:"addressLine1" validate:"min=5,max=200"`
	AddressLine2         string `json:"addressLine2" validate:"max=200"`
	Landmark             string `json:"landmark" validate:"max=100"`
	City                 string `json:"city" validate:"min=2,max=50"`
	State                string `json:"state" validate:"min=2,max=50"`
	Pincode              string `json:"pincode" validate:"len=6,pincode"`
	Country              string `json:"country" validate:"omitempty,min=2"`
	IsDefault            bool   `json:"isDefault"`
	DeliveryInstructions string `json:"deliveryInstructions" validate:"max=500"`
}

// Normalize applies defaults before validation
func (f *DeliveryAddressForm) Normalize() {
	f.AlternatePhoneNumber = strings.TrimSpace(f.AlternatePhoneNumber)
	if strings.TrimSpace(f.Country) == "" {
		f.Country = user.DefaultCountry
	}
}

// Address converts the form to an address book entry
func (f *DeliveryAddressForm) Address() user.Address {
	return user.Address{
		AddressType:          f.AddressType,
		FullName:             f.FullName,
		PhoneNumber:          f.PhoneNumber,
		AlternatePhoneNumber: f.AlternatePhoneNumber,
		AddressLine1:         f.AddressLine1,
		AddressLine2:         f.AddressLine2,
		Landmark:             f.Landmark,
		City:                 f.City,
		State:                f.State,
		Pincode:              f.Pincode,
		Country:              f.Country,
		IsDefault:            f.IsDefault,
		DeliveryInstructions: f.DeliveryInstructions,
	}
}

// RecurringOrderForm names a new recurring order
type RecurringOrderForm struct {
	Name string `json:"name" validate:"min=2,max=100"`
	Note string `json:"note" validate:"max=500"`
}
