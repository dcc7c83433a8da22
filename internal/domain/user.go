package domain

import "time"

// User represents a registered account
type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// SignUpRequest is the request to create an account
type SignUpRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SignInRequest is the request to authenticate
type SignInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// TokenClaims are the verified claims carried by an auth token
type TokenClaims struct {
	UserID string
	Name   string
	Email  string
}
