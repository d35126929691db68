package model

import "time"

// User is an account that owns forms.
type User struct {
	ID             int       `json:"id"`
	Email          string    `json:"email"`
	HashedPassword []byte    `json:"-"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// SignupRequest is the account creation payload.
type SignupRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest is the credential check payload.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}
