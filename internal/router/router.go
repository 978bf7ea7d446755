package router

import (
	"os"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spendwise/spendwise-backend/internal/billing"
	"github.com/spendwise/spendwise-backend/internal/expense"
	handlers "github.com/spendwise/spendwise-backend/internal/http"
)

type Router struct {
	AuthHandler    *handlers.AuthHandler
	ExpenseHandler *expense.Handler
	PaymentHandler *billing.Handler
	AuthMW         fiber.Handler
	PremiumMW      fiber.Handler
}

func (r *Router) RegisterRoutes(app *fiber.App) {
	app.Post("/api/auth/register", r.AuthHandler.Register)
	app.Post("/api/auth/login", r.AuthHandler.Login)
	app.Get("/api/auth/me", r.AuthMW, r.AuthHandler.Me)

	app.Get("/api/expenses", r.AuthMW, r.ExpenseHandler.ListExpenses)
	app.Get("/api/expenses/total/spending", r.AuthMW, r.ExpenseHandler.TotalSpending)
	app.Get("/api/expenses/category/:name", r.AuthMW, r.ExpenseHandler.ListByCategory)
	app.Post("/api/expenses", r.AuthMW, r.ExpenseHandler.CreateExpense)
	app.Put("/api/expenses/:id", r.AuthMW, r.ExpenseHandler.UpdateExpense)
	app.Delete("/api/expenses/:id", r.AuthMW, r.ExpenseHandler.DeleteExpense)

	// Order creation and verification can additionally be restricted to users
	// who already hold an active subscription (renewal-only deployments).
	if strings.EqualFold(os.Getenv("PREMIUM_GATED_PAYMENTS"), "true") && r.PremiumMW != nil {
		app.Post("/api/payment/create-order", r.AuthMW, r.PremiumMW, r.PaymentHandler.CreateOrder)
		app.Post("/api/payment/verify-payment", r.AuthMW, r.PremiumMW, r.PaymentHandler.VerifyPayment)
	} else {
		app.Post("/api/payment/create-order", r.AuthMW, r.PaymentHandler.CreateOrder)
		app.Post("/api/payment/verify-payment", r.AuthMW, r.PaymentHandler.VerifyPayment)
	}
	app.Get("/api/payment/premium-status", r.AuthMW, r.PaymentHandler.PremiumStatus)
}
