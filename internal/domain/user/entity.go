// internal/domain/user/entity.go
package user

import (
	"strings"
)

// Permission is a named capability attached to a role
type Permission struct {
	PermissionID   int64    `json:"permissionId"`
	Name           string   `json:"name"`
	Description    string   `json:"description"`
	SubPermissions []string `json:"subPermissions"`
}

// Role is the backend role descriptor returned at sign-in
type Role struct {
	RoleID      int64        `json:"roleId"`
	Name        string       `json:"name"`
	Description string       `json:"description"`
	Permissions []Permission `json:"permissions"`
}

// User represents the signed-in customer
type User struct {
	UserID      int64  `json:"userId,omitempty"`
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phoneNumber,omitempty"`
	Address     string `json:"address,omitempty"`
	City        string `json:"city,omitempty"`
	District    string `json:"district,omitempty"`
	Province    string `json:"province,omitempty"`
	Avatar      string `json:"avatar,omitempty"`
	Role        *Role  `json:"roleResponseDto,omitempty"`
}

// GetFullName returns the user's full name
func (u *User) GetFullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

// Tokens is the access/refresh pair issued at sign-in
type Tokens struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// Valid reports whether both halves of the pair are present
func (t *Tokens) Valid() bool {
	return t != nil && t.AccessToken != "" && t.RefreshToken != ""
}
