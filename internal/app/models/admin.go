package models

import "time"

// Admin defines an administrator credential in the 'admins' table. Secrets are
// stored as bcrypt hashes and compared in constant time; there is no plaintext
// fallback credential.
type Admin struct {
	ID           int64     `json:"id" db:"id"`
	Username     string    `json:"username" db:"username"`
	Name         string    `json:"name" db:"name"`
	PasswordHash string    `json:"-" db:"password_hash"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
}
