package http

import (
	"context"
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spendwise/spendwise-backend/internal/auth"
	"github.com/spendwise/spendwise-backend/internal/domain"
	"github.com/spendwise/spendwise-backend/internal/user"
)

// UserStore is the slice of the credential store the auth handlers need.
type UserStore interface {
	Create(ctx context.Context, name, email, rawPassword string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
}

type AuthHandler struct {
	Users  UserStore
	Secret []byte
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type authResponse struct {
	Message string            `json:"message"`
	Token   string            `json:"token"`
	User    domain.PublicUser `json:"user"`
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var body registerRequest
	if err := c.BodyParser(&body); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid body")
	}

	body.Name = strings.TrimSpace(body.Name)
	if body.Name == "" || strings.TrimSpace(body.Email) == "" || body.Password == "" {
		return fiber.NewError(fiber.StatusBadRequest, "name, email and password required")
	}

	u, err := h.Users.Create(userContext(c), body.Name, body.Email, body.Password)
	if errors.Is(err, user.ErrDuplicateEmail) {
		return fiber.NewError(fiber.StatusBadRequest, "user already exists with this email")
	}
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "could not create user")
	}

	token, err := auth.IssueToken(u.ID, h.Secret)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "could not create token")
	}

	return c.Status(fiber.StatusCreated).JSON(authResponse{
		Message: "user registered successfully",
		Token:   token,
		User:    u.Public(),
	})
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var body loginRequest
	if err := c.BodyParser(&body); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid body")
	}

	u, err := h.Users.FindByEmail(userContext(c), body.Email)
	if errors.Is(err, user.ErrNotFound) {
		return fiber.NewError(fiber.StatusUnauthorized, "invalid email or password")
	}
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "server error")
	}

	if !u.CheckPassword(body.Password) {
		return fiber.NewError(fiber.StatusUnauthorized, "invalid email or password")
	}

	token, err := auth.IssueToken(u.ID, h.Secret)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "could not create token")
	}

	return c.JSON(authResponse{
		Message: "login successful",
		Token:   token,
		User:    u.Public(),
	})
}

func (h *AuthHandler) Me(c *fiber.Ctx) error {
	uid, err := auth.UserID(c)
	if err != nil {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	u, err := h.Users.FindByID(userContext(c), uid)
	if errors.Is(err, user.ErrNotFound) {
		return fiber.NewError(fiber.StatusNotFound, "user not found")
	}
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "server error")
	}

	return c.JSON(fiber.Map{"user": u.Public()})
}

func userContext(c *fiber.Ctx) context.Context {
	if ctx := c.UserContext(); ctx != nil {
		return ctx
	}
	return context.Background()
}
