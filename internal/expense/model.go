package expense

import (
	"strings"
	"time"
)

// Categories is the fixed set an expense may belong to.
var Categories = []string{"Food", "Transport", "Entertainment", "Shopping", "Bills", "Health", "Others"}

// NormalizeCategory matches s against the category set case-insensitively and
// returns the canonical spelling.
func NormalizeCategory(s string) (string, bool) {
	s = strings.TrimSpace(s)
	for _, c := range Categories {
		if strings.EqualFold(s, c) {
			return c, true
		}
	}
	return "", false
}

type Expense struct {
	ID          string    `db:"id" json:"id"`
	UserID      string    `db:"user_id" json:"user_id"`
	Amount      float64   `db:"amount" json:"amount"`
	Category    string    `db:"category" json:"category"`
	Description string    `db:"description" json:"description"`
	Date        string    `db:"spent_on" json:"date"` // YYYY-MM-DD
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}

type createExpenseRequest struct {
	Amount      *float64 `json:"amount"`
	Category    string   `json:"category"`
	Description string   `json:"description"`
	Date        string   `json:"date"` // YYYY-MM-DD, defaults to today
}

type updateExpenseRequest struct {
	Amount      *float64 `json:"amount"`
	Category    *string  `json:"category"`
	Description *string  `json:"description"`
	Date        *string  `json:"date"`
}

// UpdateFields carries the validated subset of fields to change. Nil means
// leave the stored value untouched.
type UpdateFields struct {
	Amount      *float64
	Category    *string
	Description *string
	Date        *string
}
