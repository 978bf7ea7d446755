package billing

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

// PremiumTerm is the subscription window granted on a verified payment.
const PremiumTerm = 365 * 24 * time.Hour

var ErrUserNotFound = errors.New("user not found")

// Store reads and writes the premium state on the users table.
type Store struct {
	DB *sql.DB
}

type PremiumState struct {
	IsPremium        bool       `json:"isPremium"`
	PremiumExpiresAt *time.Time `json:"premiumExpiresAt,omitempty"`
}

// PremiumStatus is a pure read. Expiry downgrades happen only in
// RequirePremium.
func (s *Store) PremiumStatus(ctx context.Context, userID string) (*PremiumState, error) {
	const q = `
        SELECT is_premium, premium_expires_at
        FROM users
        WHERE id = $1::uuid;
    `
	var st PremiumState
	var end sql.NullTime
	err := s.DB.QueryRowContext(ctx, q, userID).Scan(&st.IsPremium, &end)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	if end.Valid {
		t := end.Time
		st.PremiumExpiresAt = &t
	}
	return &st, nil
}

// Upgrade marks the user premium for one year from now and returns the new
// expiry.
func (s *Store) Upgrade(ctx context.Context, userID string) (time.Time, error) {
	expiresAt := time.Now().Add(PremiumTerm)

	const q = `
        UPDATE users
        SET is_premium = TRUE, premium_expires_at = $2
        WHERE id = $1::uuid;
    `
	res, err := s.DB.ExecContext(ctx, q, userID, expiresAt)
	if err != nil {
		return time.Time{}, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return time.Time{}, err
	}
	if n == 0 {
		return time.Time{}, ErrUserNotFound
	}
	return expiresAt, nil
}

// Downgrade clears the premium flag. The recorded expiry is kept for audit.
func (s *Store) Downgrade(ctx context.Context, userID string) error {
	const q = `
        UPDATE users
        SET is_premium = FALSE
        WHERE id = $1::uuid;
    `
	_, err := s.DB.ExecContext(ctx, q, userID)
	return err
}
