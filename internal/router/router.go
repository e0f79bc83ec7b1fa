package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Leina1/Beta1/internal/auth"
	"github.com/Leina1/Beta1/internal/user"
)

type Router struct {
	AuthHandler *auth.Handler
	UserHandler *user.Handler
}

func (r *Router) RegisterRoutes(app *fiber.App) {
	if r.AuthHandler != nil {
		app.Post("/auth/login", RateLimitAuth(), r.AuthHandler.Login)
		app.All("/auth/login", methodNotAllowed(fiber.MethodPost))
	}

	if r.UserHandler != nil {
		app.Get("/users", r.UserHandler.List)
		app.Post("/users", r.UserHandler.Create)
		app.Put("/users", r.UserHandler.Update)
		app.Delete("/users", r.UserHandler.Delete)
		app.All("/users", methodNotAllowed("GET, POST, PUT, DELETE"))
	}
}

// methodNotAllowed answers methods outside a path's supported set with a
// 405 and the Allow header.
func methodNotAllowed(allow string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Set(fiber.HeaderAllow, allow)
		return c.Status(fiber.StatusMethodNotAllowed).SendString("Method Not Allowed")
	}
}
