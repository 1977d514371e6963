package models

import "time"

// Roles a user row can hold. Exactly one admin is created at startup.
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// User represents a row in the PostgreSQL users table.
type User struct {
	ID        int       `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Password  string    `json:"-"` // never serialize
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

// RegisterRequest is the JSON body for POST /api/register.
// The password is generated server-side, not chosen by the caller.
type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
}

// RegisterResponse echoes the created user plus the generated
// temporary password. Out-of-band delivery (email) is not implemented,
// so the secret is returned to the caller for now.
type RegisterResponse struct {
	User
	TemporaryPassword string `json:"temporaryPassword"`
}

// LoginRequest is the JSON body for POST /api/login. The identifier
// matches either username or email.
type LoginRequest struct {
	Identifier string `json:"identifier"`
	Password   string `json:"password"`
}
