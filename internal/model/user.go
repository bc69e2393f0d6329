package model

import "time"

// User is the stored identity record. PasswordHash never leaves the service.
type User struct {
	ID           string    `json:"_id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// AuthUser is the request-scoped identity attached by a guard after
// successful verification. It deliberately carries no credential material.
type AuthUser struct {
	ID       string `json:"_id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// UserProfile is the register/login payload: the public identity plus a
// freshly issued bearer token.
type UserProfile struct {
	ID       string `json:"_id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Token    string `json:"token"`
}
