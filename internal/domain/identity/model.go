// Package identity implements user registration, login and token issuance.
package identity

import (
	"time"

	"github.com/google/uuid"
)

// User is a registered account. The password hash never serializes.
type User struct {
	ID           uuid.UUID `db:"id" json:"id"`
	Username     string    `db:"username" json:"username"`
	Email        string    `db:"email" json:"email"`
	PasswordHash string    `db:"password_hash" json:"-"`
	CreatedAt    time.Time `db:"created_at" json:"createdAt"`
}
