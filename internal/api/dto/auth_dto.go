package dto

import "time"

// LoginRequest payload.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse carries an issued token.
type AuthResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// ClientConfigResponse exposes the non-privileged connection parameters a
// browser client needs.
type ClientConfigResponse struct {
	APIURL  string `json:"apiUrl"`
	AnonKey string `json:"anonKey"`
}
