package users

import "time"

// User is an account that owns documents. PasswordHash is empty for accounts
// created through OAuth sign-in.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	FullName     string    `json:"fullName,omitempty"`
	PictureURL   string    `json:"pictureUrl,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// AuthResponse is returned by register and login.
type AuthResponse struct {
	Token     string    `json:"token"`
	Email     string    `json:"email"`
	ExpiresAt time.Time `json:"expiresAt"`
}
