package dto

import (
	"net/mail"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// LoginRequest represents the JSON request body for the login endpoint.
//
// @Description Request to authenticate a user
// @Example {"email": "user@example.com", "password": "password123"}
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email" example:"user@example.com"`
	Password string `json:"password" binding:"required,min=6" example:"password123"`
} // @name LoginRequest

// RegisterRequest represents the JSON request body for the register endpoint.
//
// @Description Request to register a new user
// @Example {"email": "user@example.com", "username": "minji", "password": "password123", "name": "Minji Kim"}
type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email" example:"user@example.com"`
	Username string `json:"username" binding:"required,min=3,max=30" example:"minji"`
	Password string `json:"password" binding:"required,min=6" example:"password123"`
	Name     string `json:"name,omitempty" example:"Minji Kim"`
} // @name RegisterRequest

// LoginResponse is returned by login and register.
//
// @Description Successful authentication response with JWT tokens
type LoginResponse struct {
	Token        string       `json:"token" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
	RefreshToken string       `json:"refresh_token" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
	ExpiresIn    int64        `json:"expires_in" example:"900"`
	User         UserResponse `json:"user"`
} // @name LoginResponse

// TokenPair holds an access and refresh token. It lives here so the service
// and http packages can share it without an import cycle.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"` // seconds
}

// Claims are the application claims carried inside access tokens.
type Claims struct {
	UserID primitive.ObjectID `json:"user_id"`
	Email  string             `json:"email"`
	Name   string             `json:"name"`
	Roles  []string           `json:"roles"`
}

// UserResponse represents user information in API responses.
type UserResponse struct {
	Email string `json:"email" example:"user@example.com"`
	Name  string `json:"name,omitempty" example:"Minji Kim"`
	Admin bool   `json:"admin" example:"false"`
} // @name UserResponse

const minPasswordLength = 6

// Validate performs custom validation on the login request.
func (r *LoginRequest) Validate() error {
	r.Email = normalizeEmail(r.Email)
	if r.Email == "" {
		return &ValidationError{Field: "email", Message: "email is required"}
	}
	if len(r.Password) < minPasswordLength {
		return &ValidationError{Field: "password", Message: "password must be at least 6 characters"}
	}
	return nil
}

// Validate performs custom validation on the register request.
func (r *RegisterRequest) Validate() error {
	r.Email = normalizeEmail(r.Email)
	r.Username = strings.TrimSpace(r.Username)
	switch {
	case r.Email == "":
		return &ValidationError{Field: "email", Message: "email is required"}
	case !validEmail(r.Email):
		return &ValidationError{Field: "email", Message: "email is invalid"}
	case r.Username == "":
		return &ValidationError{Field: "username", Message: "username is required"}
	case len(r.Username) < 3:
		return &ValidationError{Field: "username", Message: "username must be at least 3 characters"}
	case len(r.Username) > 30:
		return &ValidationError{Field: "username", Message: "username must be at most 30 characters"}
	case len(r.Password) < minPasswordLength:
		return &ValidationError{Field: "password", Message: "password must be at least 6 characters"}
	}
	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func validEmail(email string) bool {
	addr, err := mail.ParseAddress(email)
	return err == nil && addr.Address == email
}
