package billing

import (
	"context"
	"errors"
	"os"

	"github.com/gofiber/fiber/v2"

	"github.com/spendwise/spendwise-backend/internal/auth"
)

type Handler struct {
	Store *Store
}

func NewHandler(store *Store) *Handler {
	return &Handler{Store: store}
}

// CreateOrder returns a pending order for the premium subscription. The
// gateway key id is exposed so a frontend checkout widget can be initialized.
func (h *Handler) CreateOrder(c *fiber.Ctx) error {
	uid, err := auth.UserID(c)
	if err != nil {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	keyID := os.Getenv("RAZORPAY_KEY_ID")
	if keyID == "" {
		keyID = "demo_key_id"
	}

	order := NewDemoOrder(uid)
	return c.JSON(fiber.Map{
		"orderId":  order.ID,
		"amount":   order.Amount,
		"currency": order.Currency,
		"keyId":    keyID,
	})
}

// VerifyPayment upgrades the caller to premium for one year. Gateway
// signature verification is stubbed; the caller is already authenticated.
func (h *Handler) VerifyPayment(c *fiber.Ctx) error {
	uid, err := auth.UserID(c)
	if err != nil {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	expiresAt, err := h.Store.Upgrade(userContext(c), uid)
	if errors.Is(err, ErrUserNotFound) {
		return fiber.NewError(fiber.StatusNotFound, "user not found")
	}
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "payment verification failed")
	}

	return c.JSON(fiber.Map{
		"message":          "payment verified successfully! you are now a premium user",
		"isPremium":        true,
		"premiumExpiresAt": expiresAt,
	})
}

func (h *Handler) PremiumStatus(c *fiber.Ctx) error {
	uid, err := auth.UserID(c)
	if err != nil {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	st, err := h.Store.PremiumStatus(userContext(c), uid)
	if errors.Is(err, ErrUserNotFound) {
		return fiber.NewError(fiber.StatusNotFound, "user not found")
	}
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "server error")
	}

	return c.JSON(st)
}

func userContext(c *fiber.Ctx) context.Context {
	if ctx := c.UserContext(); ctx != nil {
		return ctx
	}
	return context.Background()
}
