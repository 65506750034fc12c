package storefront

import (
	"context"
	"fmt"

	"github.com/your-org/easyway-storefront/internal/api"
	"github.com/your-org/easyway-storefront/internal/domain/user"
	"github.com/your-org/easyway-storefront/internal/validation"
)

// LoginResult is returned after a successful sign-in
type LoginResult struct {
	User                   *user.User `json:"user"`
	RequiresPasswordChange bool       `json:"requiresPasswordChange"`
}

// Login signs the device in and stores the user and tokens together
func (d *Device) Login(ctx context.Context, form validation.LoginForm) (*LoginResult, error) {
	if err := d.svc.validator.Struct(form); err != nil {
		return nil, err
	}

	result, err := d.api.SignIn(ctx, api.SignInRequest{Email: form.Email, Password: form.Password})
	if err != nil {
		return nil, fmt.Errorf("failed to sign in: %w", err)
	}

	tokens := result.Tokens()
	if !tokens.Valid() {
		return nil, fmt.Errorf("failed to sign in: %w", api.ErrEmptyResults)
	}

	u := result.User()
	d.store.Login(ctx, u, tokens)
	d.log.WithField("user_id", u.UserID).Info("Device signed in")

	return &LoginResult{
		User:                   u,
		RequiresPasswordChange: !result.IsPasswordChangedForTheFirstTime,
	}, nil
}

// Register creates a customer account. The backend issues the first password,
// so the form's password is only checked, not sent.
func (d *Device) Register(ctx context.Context, form validation.RegistrationForm) error {
	if err := d.svc.validator.Struct(form); err != nil {
		return err
	}

	req := api.SignUpRequest{
		Email:       form.Email,
		FirstName:   form.FirstName,
		LastName:    form.LastName,
		PhoneNumber: form.PhoneNumber,
		Address:     form.Address,
		City:        form.City,
		District:    form.District,
		Province:    form.Province,
		RoleID:      d.svc.config.API.DefaultRoleID,
	}
	if err := d.api.SignUp(ctx, req); err != nil {
		return fmt.Errorf("failed to register: %w", err)
	}

	d.log.Info("Customer registered")
	return nil
}

// Logout signs out remotely when possible and always clears the local session
func (d *Device) Logout(ctx context.Context) {
	if d.store.IsAuthenticated() {
		if err := d.api.SignOut(ctx); err != nil {
			d.log.WithError(err).Warn("Remote sign-out failed")
		}
	}
	d.store.Logout(ctx)
	d.log.Info("Device signed out")
}

// RefreshSession exchanges the refresh token for a new pair
func (d *Device) RefreshSession(ctx context.Context) error {
	tokens := d.store.Tokens()
	if tokens == nil || tokens.RefreshToken == "" {
		return ErrLoginRequired
	}

	fresh, err := d.api.Refresh(ctx, tokens.RefreshToken)
	if err != nil {
		return fmt.Errorf("failed to refresh session: %w", err)
	}

	// a 401 during refresh has already signed the device out
	if !d.store.IsAuthenticated() {
		return ErrLoginRequired
	}
	d.store.SetTokens(ctx, fresh)
	return nil
}

// UpdateProfile edits the signed-in user's contact details locally
func (d *Device) UpdateProfile(ctx context.Context, form validation.ProfileUpdateForm) (*user.User, error) {
	if err := d.svc.validator.Struct(form); err != nil {
		return nil, err
	}

	u := d.store.User()
	if u == nil {
		return nil, ErrLoginRequired
	}
	form.Apply(u)
	d.store.SetUser(ctx, u)
	return u, nil
}
