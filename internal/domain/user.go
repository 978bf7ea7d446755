package domain

import (
	"time"

	"golang.org/x/crypto/bcrypt"
)

// User represents a persisted user record.
type User struct {
	ID               string     `db:"id" json:"id"`
	Name             string     `db:"name" json:"name"`
	Email            string     `db:"email" json:"email"`
	PasswordHash     string     `db:"password_hash" json:"-"`
	IsPremium        bool       `db:"is_premium" json:"isPremium"`
	PremiumExpiresAt *time.Time `db:"premium_expires_at" json:"premiumExpiresAt,omitempty"`
	CreatedAt        time.Time  `db:"created_at" json:"created_at"`
}

// PublicUser is the projection returned by the API. It never carries the
// password hash.
type PublicUser struct {
	ID               string     `json:"id"`
	Name             string     `json:"name"`
	Email            string     `json:"email"`
	IsPremium        bool       `json:"isPremium"`
	PremiumExpiresAt *time.Time `json:"premiumExpiresAt,omitempty"`
}

func (u *User) Public() PublicUser {
	return PublicUser{
		ID:               u.ID,
		Name:             u.Name,
		Email:            u.Email,
		IsPremium:        u.IsPremium,
		PremiumExpiresAt: u.PremiumExpiresAt,
	}
}

// CheckPassword compares a candidate password against the stored hash.
func (u *User) CheckPassword(candidate string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(candidate)) == nil
}
