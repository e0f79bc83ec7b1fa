package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"

	"github.com/Leina1/Beta1/internal/api"
	"github.com/Leina1/Beta1/internal/domain"
	"github.com/Leina1/Beta1/internal/logger"
)

// Store is the persistence surface the handler needs.
type Store interface {
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
}

type Handler struct {
	Store      Store
	Log        *logger.Logger
	Production bool
}

func NewHandler(store Store, log *logger.Logger, production bool) *Handler {
	return &Handler{Store: store, Log: log, Production: production}
}

const tokenTTL = 24 * time.Hour

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginData struct {
	User      *domain.User `json:"user"`
	Token     string       `json:"token"`
	ExpiresIn string       `json:"expiresIn"`
}

func (h *Handler) Login(c *fiber.Ctx) error {
	var body loginRequest
	if err := c.BodyParser(&body); err != nil {
		return api.Err(c, fiber.StatusBadRequest, "email and password are required")
	}
	if body.Email == "" || body.Password == "" {
		return api.Err(c, fiber.StatusBadRequest, "email and password are required")
	}

	user, err := h.Store.FindByEmail(userContext(c), body.Email)
	if err != nil {
		h.Log.Error("login: email lookup", "error", err)
		// Unlike the user endpoints, login echoes the fault detail.
		return c.Status(fiber.StatusInternalServerError).JSON(api.Response{
			Success: false,
			Message: "internal server error",
			Error:   err.Error(),
		})
	}
	if user == nil {
		return api.Err(c, fiber.StatusUnauthorized, "email does not exist")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(body.Password)); err != nil {
		return api.Err(c, fiber.StatusUnauthorized, "incorrect password")
	}

	token := mintToken(user.ID.Hex(), time.Now())

	c.Cookie(&fiber.Cookie{
		Name:     "token",
		Value:    token,
		Path:     "/",
		MaxAge:   int(tokenTTL / time.Second),
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
		Secure:   h.Production,
	})

	return c.JSON(api.Response{
		Success: true,
		Message: "login successful",
		Data: loginData{
			User:      user,
			Token:     token,
			ExpiresIn: "24h",
		},
	})
}

// mintToken builds the opaque session token from the user id and the
// current time. It is a session marker, not a verifiable credential.
func mintToken(userID string, at time.Time) string {
	return fmt.Sprintf("token_%s_%d", userID, at.UnixMilli())
}

func userContext(c *fiber.Ctx) context.Context {
	if ctx := c.UserContext(); ctx != nil {
		return ctx
	}
	return context.Background()
}
