package domain

import "time"

// User models an authenticated API actor. There is a single tier of
// access: any registered user may mutate shipments.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
