package main

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"os"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/spendwise/spendwise-backend/internal/auth"
	"github.com/spendwise/spendwise-backend/internal/billing"
	"github.com/spendwise/spendwise-backend/internal/expense"
	apphttp "github.com/spendwise/spendwise-backend/internal/http"
	"github.com/spendwise/spendwise-backend/internal/router"
	"github.com/spendwise/spendwise-backend/internal/user"
)

func main() {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL is not set")
	}

	secret := mustJWTSecret()

	db, err := sql.Open("pgx", dsn)
	if err != nil {
		log.Fatalf("error opening database: %v", err)
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		log.Fatalf("error pinging database: %v", err)
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		log.Fatalf("error creating pgx pool: %v", err)
	}
	defer pool.Close()

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			message := "internal server error"

			var fiberErr *fiber.Error
			if errors.As(err, &fiberErr) {
				code = fiberErr.Code
				message = fiberErr.Message
			}

			return c.Status(code).JSON(fiber.Map{"error": message})
		},
	})

	app.Use(router.CorsMiddleware())
	app.Use(requestLogger())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"ok": true})
	})
	app.Get("/healthz", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"ok": true})
	})

	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "Welcome to Spendwise API",
			"endPoints": fiber.Map{
				"auth":     "/api/auth",
				"expenses": "/api/expenses",
				"payment":  "/api/payment",
			},
		})
	})

	userRepo := user.NewRepository(pool)
	authHandler := &apphttp.AuthHandler{Users: userRepo, Secret: secret}
	expenseRepo := expense.NewRepository(pool)
	expenseHandler := expense.NewHandler(expenseRepo)
	billingStore := &billing.Store{DB: db}
	paymentHandler := billing.NewHandler(billingStore)

	r := &router.Router{
		AuthHandler:    authHandler,
		ExpenseHandler: expenseHandler,
		PaymentHandler: paymentHandler,
		AuthMW:         auth.RequireAuth(secret),
		PremiumMW:      billing.RequirePremium(billingStore),
	}
	r.RegisterRoutes(app)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Println("Listening on port", port)
	log.Fatal(app.Listen(":" + port))
}

func requestLogger() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		status := c.Response().StatusCode()
		log.Printf("%s %s %d %s", c.Method(), c.Path(), status, time.Since(start))
		return err
	}
}

// mustJWTSecret loads JWT_SECRET from the environment or exits the process.
func mustJWTSecret() []byte {
	secret := strings.TrimSpace(os.Getenv("JWT_SECRET"))
	if secret == "" {
		log.Fatal("JWT_SECRET is not set")
	}
	return []byte(secret)
}
