package main

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"github.com/Leina1/Beta1/internal/api"
	"github.com/Leina1/Beta1/internal/auth"
	"github.com/Leina1/Beta1/internal/config"
	"github.com/Leina1/Beta1/internal/logger"
	"github.com/Leina1/Beta1/internal/mongodb"
	"github.com/Leina1/Beta1/internal/router"
	"github.com/Leina1/Beta1/internal/user"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("error loading config: %v", err)
	}
	lg := logger.New(cfg.LogLevel)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongodb.Connect(ctx, cfg.Mongo.URI)
	if err != nil {
		lg.Fatal("error connecting to mongodb", "error", err)
	}
	defer func() { _ = client.Disconnect(context.Background()) }()

	db := client.Database(cfg.Mongo.Database)
	if err := mongodb.EnsureIndexes(ctx, db); err != nil {
		lg.Fatal("error ensuring indexes", "error", err)
	}

	repo := user.NewRepository(db.Collection(mongodb.UserCollection))
	authHandler := auth.NewHandler(repo, lg, cfg.IsProduction())
	userHandler := user.NewHandler(repo, lg)

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			message := "internal server error"

			var fiberErr *fiber.Error
			if errors.As(err, &fiberErr) {
				code = fiberErr.Code
				message = fiberErr.Message
			}

			return c.Status(code).JSON(api.Response{Success: false, Error: message})
		},
	})

	app.Use(router.CorsMiddleware(cfg.CORSOrigin))
	app.Use(requestLogger(lg))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"ok": true})
	})

	r := &router.Router{
		AuthHandler: authHandler,
		UserHandler: userHandler,
	}
	r.RegisterRoutes(app)

	lg.Info("listening", "port", cfg.Port)
	lg.Fatal("server stopped", "error", app.Listen(":"+cfg.Port))
}

func requestLogger(lg *logger.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		reqID := uuid.NewString()
		err := c.Next()
		lg.Info("request",
			"id", reqID,
			"method", c.Method(),
			"path", c.Path(),
			"status", c.Response().StatusCode(),
			"duration", time.Since(start),
		)
		return err
	}
}
