package billing

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/spendwise/spendwise-backend/internal/auth"
)

// RequirePremium gates a route on an active premium subscription. It must run
// after auth.RequireAuth. An expired subscription is downgraded in place: the
// flag is persisted as false before the request is rejected, so a plain
// status read afterwards reflects the downgrade. If persisting fails the
// request fails with a server error and no downgrade is claimed.
func RequirePremium(store *Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		uid, err := auth.UserID(c)
		if err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
		}

		st, err := store.PremiumStatus(userContext(c), uid)
		if errors.Is(err, ErrUserNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "user not found")
		}
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "server error")
		}

		if !st.IsPremium {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error":     "premium subscription required",
				"isPremium": false,
			})
		}

		if st.PremiumExpiresAt != nil && st.PremiumExpiresAt.Before(time.Now()) {
			if err := store.Downgrade(userContext(c), uid); err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "server error")
			}
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error":     "premium subscription has expired",
				"isPremium": false,
			})
		}

		return c.Next()
	}
}
