package domain

import "time"

// Account is the login identity a profile belongs to. Profile.UserID holds
// the account ID.
type Account struct {
	ID           int64
	Email        string
	PasswordHash string
}

type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type TokenResponse struct {
	Token     string    `json:"token"`
	AccountID int64     `json:"account_id"`
	ExpiresAt time.Time `json:"expires_at"`
}
