package user

import (
	"context"
	"errors"
	"regexp"
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
	List(ctx context.Context, search string, page, limit int64) ([]domain.User, int64, error)
	Insert(ctx context.Context, u *domain.User) (string, error)
	Update(ctx context.Context, id string, fields UpdateFields) (bool, error)
	Delete(ctx context.Context, id string) (bool, error)
}

type Handler struct {
	Store Store
	Log   *logger.Logger
}

func NewHandler(store Store, log *logger.Logger) *Handler {
	return &Handler{Store: store, Log: log}
}

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

func (h *Handler) List(c *fiber.Ctx) error {
	page := int64(c.QueryInt("page", 1))
	limit := int64(c.QueryInt("limit", 10))
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	search := c.Query("search")

	users, count, err := h.Store.List(userContext(c), search, page, limit)
	if err != nil {
		h.Log.Error("list users", "error", err)
		return api.Err(c, fiber.StatusInternalServerError, "internal server error")
	}

	return c.JSON(api.Response{
		Success: true,
		Data:    users,
		Pagination: &api.Pagination{
			Current: page,
			Total:   (count + limit - 1) / limit,
			Count:   count,
		},
	})
}

func (h *Handler) Create(c *fiber.Ctx) error {
	var body createRequest
	if err := c.BodyParser(&body); err != nil {
		return api.Err(c, fiber.StatusBadRequest, "missing required information")
	}
	if body.FullName == "" || body.Email == "" || body.Password == "" {
		return api.Err(c, fiber.StatusBadRequest, "missing required information")
	}
	if !emailPattern.MatchString(body.Email) {
		return api.Err(c, fiber.StatusBadRequest, "invalid email")
	}
	if len(body.Password) < 6 {
		return api.Err(c, fiber.StatusBadRequest, "password must be at least 6 characters")
	}

	ctx := userContext(c)

	existing, err := h.Store.FindByEmail(ctx, body.Email)
	if err != nil {
		h.Log.Error("create user: email lookup", "error", err)
		return api.Err(c, fiber.StatusInternalServerError, "internal server error")
	}
	if existing != nil {
		return api.Err(c, fiber.StatusConflict, "email already in use")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(body.Password), bcrypt.DefaultCost)
	if err != nil {
		h.Log.Error("create user: hash password", "error", err)
		return api.Err(c, fiber.StatusInternalServerError, "internal server error")
	}

	if body.Role == "" {
		body.Role = domain.RoleUser
	}
	now := time.Now()
	u := &domain.User{
		FullName:     body.FullName,
		Email:        body.Email,
		Phone:        body.Phone,
		PasswordHash: string(hashed),
		Role:         body.Role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	id, err := h.Store.Insert(ctx, u)
	if errors.Is(err, ErrDuplicateEmail) {
		// Lost the race against a concurrent create; the unique index is
		// the authoritative check.
		return api.Err(c, fiber.StatusConflict, "email already in use")
	}
	if err != nil {
		h.Log.Error("create user: insert", "error", err)
		return api.Err(c, fiber.StatusInternalServerError, "internal server error")
	}

	return c.Status(fiber.StatusCreated).JSON(api.Response{
		Success: true,
		Message: "user created",
		Data: createdUser{
			ID:       id,
			FullName: body.FullName,
			Email:    body.Email,
			Phone:    body.Phone,
			Role:     body.Role,
		},
	})
}

func (h *Handler) Update(c *fiber.Ctx) error {
	var body updateRequest
	if err := c.BodyParser(&body); err != nil {
		return api.Err(c, fiber.StatusBadRequest, "user id is required")
	}
	if body.ID == "" {
		return api.Err(c, fiber.StatusBadRequest, "user id is required")
	}

	matched, err := h.Store.Update(userContext(c), body.ID, body.UpdateFields)
	if err != nil {
		h.Log.Error("update user", "id", body.ID, "error", err)
		return api.Err(c, fiber.StatusInternalServerError, "internal server error")
	}
	if !matched {
		return api.Err(c, fiber.StatusNotFound, "user not found")
	}

	return c.JSON(api.Response{Success: true, Message: "user updated"})
}

func (h *Handler) Delete(c *fiber.Ctx) error {
	id := c.Query("id")
	if id == "" {
		return api.Err(c, fiber.StatusBadRequest, "user id is required")
	}

	deleted, err := h.Store.Delete(userContext(c), id)
	if err != nil {
		h.Log.Error("delete user", "id", id, "error", err)
		return api.Err(c, fiber.StatusInternalServerError, "internal server error")
	}
	if !deleted {
		return api.Err(c, fiber.StatusNotFound, "user not found")
	}

	return c.JSON(api.Response{Success: true, Message: "deleted user " + id})
}

func userContext(c *fiber.Ctx) context.Context {
	if ctx := c.UserContext(); ctx != nil {
		return ctx
	}
	return context.Background()
}
