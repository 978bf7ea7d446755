package router

import (
	"net/http/httptest"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spendwise/spendwise-backend/internal/billing"
	"github.com/spendwise/spendwise-backend/internal/expense"
	handlers "github.com/spendwise/spendwise-backend/internal/http"
)

func newTestRouter(t *testing.T) *Router {
	t.Helper()

	db, _, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	uid := uuid.NewString()
	return &Router{
		AuthHandler:    &handlers.AuthHandler{},
		ExpenseHandler: expense.NewHandler(nil),
		PaymentHandler: billing.NewHandler(&billing.Store{DB: db}),
		AuthMW: func(c *fiber.Ctx) error {
			c.Locals("user_id", uid)
			return c.Next()
		},
		PremiumMW: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error":     "premium subscription required",
				"isPremium": false,
			})
		},
	}
}

func TestPaymentRoutesUngatedByDefault(t *testing.T) {
	t.Setenv("PREMIUM_GATED_PAYMENTS", "")

	app := fiber.New()
	newTestRouter(t).RegisterRoutes(app)

	resp, err := app.Test(httptest.NewRequest("POST", "/api/payment/create-order", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestPaymentRoutesPremiumGatedByPolicy(t *testing.T) {
	t.Setenv("PREMIUM_GATED_PAYMENTS", "true")

	app := fiber.New()
	newTestRouter(t).RegisterRoutes(app)

	resp, err := app.Test(httptest.NewRequest("POST", "/api/payment/create-order", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	// status stays reachable for any authenticated user
	resp, err = app.Test(httptest.NewRequest("GET", "/api/payment/premium-status", nil))
	require.NoError(t, err)
	assert.NotEqual(t, fiber.StatusForbidden, resp.StatusCode)
}
