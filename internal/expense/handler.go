package expense

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/spendwise/spendwise-backend/internal/auth"
)

// Store is the repository surface the handlers depend on.
type Store interface {
	Insert(ctx context.Context, exp *Expense) (*Expense, error)
	ListByUser(ctx context.Context, userID string) ([]Expense, error)
	ListByCategory(ctx context.Context, userID, category string) ([]Expense, error)
	TotalSpending(ctx context.Context, userID string) (int64, float64, error)
	Update(ctx context.Context, userID, id string, fields UpdateFields) (*Expense, error)
	Delete(ctx context.Context, userID, id string) (*Expense, error)
}

type Handler struct {
	Repo Store
}

func NewHandler(repo Store) *Handler {
	return &Handler{Repo: repo}
}

func (h *Handler) CreateExpense(c *fiber.Ctx) error {
	userID, err := auth.UserID(c)
	if err != nil {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	var req createExpenseRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid body")
	}

	if req.Amount == nil {
		return fiber.NewError(fiber.StatusBadRequest, "amount is required")
	}
	if *req.Amount < 0 {
		return fiber.NewError(fiber.StatusBadRequest, "amount must be non-negative")
	}

	category, ok := NormalizeCategory(req.Category)
	if !ok {
		return fiber.NewError(fiber.StatusBadRequest, "category must be one of: "+strings.Join(Categories, ", "))
	}

	req.Description = strings.TrimSpace(req.Description)
	if req.Description == "" {
		return fiber.NewError(fiber.StatusBadRequest, "description is required")
	}

	date := strings.TrimSpace(req.Date)
	if date == "" {
		date = time.Now().UTC().Format("2006-01-02")
	} else if _, err := time.Parse("2006-01-02", date); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "date must be YYYY-MM-DD")
	}

	exp, err := h.Repo.Insert(userContext(c), &Expense{
		UserID:      userID,
		Amount:      *req.Amount,
		Category:    category,
		Description: req.Description,
		Date:        date,
	})
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to add expense")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "expense added successfully",
		"expense": exp,
	})
}

func (h *Handler) ListExpenses(c *fiber.Ctx) error {
	userID, err := auth.UserID(c)
	if err != nil {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	items, err := h.Repo.ListByUser(userContext(c), userID)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to list expenses")
	}

	return c.JSON(fiber.Map{
		"total":    len(items),
		"expenses": items,
	})
}

func (h *Handler) TotalSpending(c *fiber.Ctx) error {
	userID, err := auth.UserID(c)
	if err != nil {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	count, sum, err := h.Repo.TotalSpending(userContext(c), userID)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to compute total spending")
	}

	return c.JSON(fiber.Map{
		"totalExpenses": count,
		"totalAmount":   sum,
	})
}

func (h *Handler) ListByCategory(c *fiber.Ctx) error {
	userID, err := auth.UserID(c)
	if err != nil {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	category, ok := NormalizeCategory(c.Params("name"))
	if !ok {
		return fiber.NewError(fiber.StatusBadRequest, "category must be one of: "+strings.Join(Categories, ", "))
	}

	items, err := h.Repo.ListByCategory(userContext(c), userID, category)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to list expenses")
	}

	return c.JSON(fiber.Map{
		"category": category,
		"total":    len(items),
		"expenses": items,
	})
}

func (h *Handler) UpdateExpense(c *fiber.Ctx) error {
	userID, err := auth.UserID(c)
	if err != nil {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	id := c.Params("id")
	if _, err := uuid.Parse(id); err != nil {
		return fiber.NewError(fiber.StatusNotFound, "expense not found")
	}

	var req updateExpenseRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid body")
	}

	var fields UpdateFields
	if req.Amount != nil {
		if *req.Amount < 0 {
			return fiber.NewError(fiber.StatusBadRequest, "amount must be non-negative")
		}
		fields.Amount = req.Amount
	}
	if req.Category != nil {
		category, ok := NormalizeCategory(*req.Category)
		if !ok {
			return fiber.NewError(fiber.StatusBadRequest, "category must be one of: "+strings.Join(Categories, ", "))
		}
		fields.Category = &category
	}
	if req.Description != nil {
		desc := strings.TrimSpace(*req.Description)
		if desc == "" {
			return fiber.NewError(fiber.StatusBadRequest, "description cannot be empty")
		}
		fields.Description = &desc
	}
	if req.Date != nil {
		date := strings.TrimSpace(*req.Date)
		if _, err := time.Parse("2006-01-02", date); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "date must be YYYY-MM-DD")
		}
		fields.Date = &date
	}

	exp, err := h.Repo.Update(userContext(c), userID, id, fields)
	if errors.Is(err, ErrNotFound) {
		return fiber.NewError(fiber.StatusNotFound, "expense not found")
	}
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to update expense")
	}

	return c.JSON(fiber.Map{
		"message": "expense updated successfully",
		"expense": exp,
	})
}

func (h *Handler) DeleteExpense(c *fiber.Ctx) error {
	userID, err := auth.UserID(c)
	if err != nil {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	id := c.Params("id")
	if _, err := uuid.Parse(id); err != nil {
		return fiber.NewError(fiber.StatusNotFound, "expense not found")
	}

	exp, err := h.Repo.Delete(userContext(c), userID, id)
	if errors.Is(err, ErrNotFound) {
		return fiber.NewError(fiber.StatusNotFound, "expense not found")
	}
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to delete expense")
	}

	return c.JSON(fiber.Map{
		"message": "expense deleted successfully",
		"expense": exp,
	})
}

func userContext(c *fiber.Ctx) context.Context {
	if ctx := c.UserContext(); ctx != nil {
		return ctx
	}
	return context.Background()
}
