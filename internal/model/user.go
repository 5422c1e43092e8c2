package model

import "time"

type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// Identity is the request-scoped result of bearer-token validation.
// Authorities is always empty in this service; it exists so downstream
// authorization checks have a stable shape to grow into.
type Identity struct {
	Username    string   `json:"username"`
	Authorities []string `json:"authorities"`
}

type RegisteredUser struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Message  string `json:"message"`
}

type TokenResponse struct {
	Token     string `json:"token"`
	TokenType string `json:"token_type"`
	ExpiresIn int64  `json:"expires_in"`
}
