package domain

import "time"

// HRUser models an authenticated HR operator.
type HRUser struct {
	ID           string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}
