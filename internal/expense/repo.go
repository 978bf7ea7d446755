package expense

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrNotFound = errors.New("expense not found")

type Repository struct {
	Pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{Pool: pool}
}

func (r *Repository) Insert(ctx context.Context, exp *Expense) (*Expense, error) {
	var spentOn time.Time
	err := r.Pool.QueryRow(
		ctx,
		`INSERT INTO expenses (user_id, amount, category, description, spent_on)
         VALUES ($1::uuid, $2, $3, $4, $5::date)
         RETURNING id, spent_on, created_at`,
		exp.UserID, exp.Amount, exp.Category, exp.Description, exp.Date,
	).Scan(&exp.ID, &spentOn, &exp.CreatedAt)
	if err != nil {
		return nil, err
	}
	exp.Date = spentOn.Format("2006-01-02")
	return exp, nil
}

func (r *Repository) ListByUser(ctx context.Context, userID string) ([]Expense, error) {
	return r.list(ctx, `
		SELECT id, user_id, amount, category, description, spent_on, created_at
		FROM expenses
		WHERE user_id = $1::uuid
		ORDER BY spent_on DESC, created_at DESC
	`, userID)
}

func (r *Repository) ListByCategory(ctx context.Context, userID, category string) ([]Expense, error) {
	return r.list(ctx, `
		SELECT id, user_id, amount, category, description, spent_on, created_at
		FROM expenses
		WHERE user_id = $1::uuid AND LOWER(category) = LOWER($2)
		ORDER BY spent_on DESC, created_at DESC
	`, userID, category)
}

func (r *Repository) list(ctx context.Context, query string, args ...any) ([]Expense, error) {
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Expense, 0)
	for rows.Next() {
		e, err := scanExpense(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// TotalSpending returns the count of the user's expenses and the sum of their
// amounts.
func (r *Repository) TotalSpending(ctx context.Context, userID string) (int64, float64, error) {
	var count int64
	var sum float64
	err := r.Pool.QueryRow(
		ctx,
		`SELECT COUNT(*), COALESCE(SUM(amount), 0)
         FROM expenses
         WHERE user_id = $1::uuid`,
		userID,
	).Scan(&count, &sum)
	if err != nil {
		return 0, 0, err
	}
	return count, sum, nil
}

// Update changes only the supplied fields. The lookup is scoped by both
// expense id and owner, so another user's expense id reads as not found.
func (r *Repository) Update(ctx context.Context, userID, id string, fields UpdateFields) (*Expense, error) {
	row := r.Pool.QueryRow(
		ctx,
		`UPDATE expenses
         SET amount      = COALESCE($3, amount),
             category    = COALESCE($4, category),
             description = COALESCE($5, description),
             spent_on    = COALESCE($6::date, spent_on)
         WHERE id = $1::uuid AND user_id = $2::uuid
         RETURNING id, user_id, amount, category, description, spent_on, created_at`,
		id, userID, fields.Amount, fields.Category, fields.Description, fields.Date,
	)
	e, err := scanExpense(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// Delete removes the expense and returns the removed record. Ownership-scoped
// the same way as Update.
func (r *Repository) Delete(ctx context.Context, userID, id string) (*Expense, error) {
	row := r.Pool.QueryRow(
		ctx,
		`DELETE FROM expenses
         WHERE id = $1::uuid AND user_id = $2::uuid
         RETURNING id, user_id, amount, category, description, spent_on, created_at`,
		id, userID,
	)
	e, err := scanExpense(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func scanExpense(row pgx.Row) (Expense, error) {
	var e Expense
	var spentOn time.Time
	err := row.Scan(&e.ID, &e.UserID, &e.Amount, &e.Category, &e.Description, &spentOn, &e.CreatedAt)
	if err != nil {
		return Expense{}, err
	}
	e.Date = spentOn.Format("2006-01-02")
	return e, nil
}
