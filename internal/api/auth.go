package api

import (
	"context"
	"net/http"

	"github.com/your-org/easyway-storefront/internal/domain/user"
)

// SignInRequest is the credential payload for sign-in
type SignInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SignInResult is results[0] of a successful sign-in
type SignInResult struct {
	UserID                           int64      `json:"userId"`
	FirstName                        string     `json:"firstName"`
	LastName                         string     `json:"lastName"`
	Email                            string     `json:"email"`
	Role                             *user.Role `json:"roleResponseDto"`
	AccessToken                      string     `json:"accessToken"`
	RefreshToken                     string     `json:"refreshToken"`
	IsPasswordChangedForTheFirstTime bool       `json:"isPasswordChangedForTheFirstTime"`
}

// User extracts the identity half of the result
func (r *SignInResult) User() *user.User {
	return &user.User{
		UserID:    r.UserID,
		FirstName: r.FirstName,
		LastName:  r.LastName,
		Email:     r.Email,
		Role:      r.Role,
	}
}

// Tokens extracts the credential half of the result
func (r *SignInResult) Tokens() *user.Tokens {
	return &user.Tokens{AccessToken: r.AccessToken, RefreshToken: r.RefreshToken}
}

// SignUpRequest registers a customer. The backend issues the initial password.
type SignUpRequest struct {
	Email       string `json:"email"`
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	PhoneNumber string `json:"phoneNumber"`
	Address     string `json:"address"`
	City        string `json:"city"`
	District    string `json:"district"`
	Province    string `json:"province"`
	RoleID      int    `json:"roleId"`
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

// SignIn exchanges credentials for a user and token pair
func (s *Session) SignIn(ctx context.Context, req SignInRequest) (*SignInResult, error) {
	var results []SignInResult
	if err := s.do(ctx, http.MethodPost, "/v1/auth/sign-in", nil, req, &results); err != nil {
		return nil, err
	}
	result, err := first(results)
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// SignUp creates a customer account
func (s *Session) SignUp(ctx context.Context, req SignUpRequest) error {
	return s.do(ctx, http.MethodPost, "/v1/auth/sign-up", nil, req, nil)
}

// Refresh exchanges a refresh token for a new pair. A response without a new
// refresh token keeps the old one.
func (s *Session) Refresh(ctx context.Context, refreshToken string) (*user.Tokens, error) {
	var results []user.Tokens
	if err := s.do(ctx, http.MethodPost, "/v1/auth/refresh", nil, refreshRequest{RefreshToken: refreshToken}, &results); err != nil {
		return nil, err
	}
	tokens, err := first(results)
	if err != nil {
		return nil, err
	}
	if tokens.AccessToken == "" {
		return nil, ErrEmptyResults
	}
	if tokens.RefreshToken == "" {
		tokens.RefreshToken = refreshToken
	}
	return &tokens, nil
}

// SignOut ends the session on the backend
func (s *Session) SignOut(ctx context.Context) error {
	return s.do(ctx, http.MethodPost, "/v1/auth/sign-out", nil, nil, nil)
}
