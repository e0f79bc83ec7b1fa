package api

import "github.com/gofiber/fiber/v2"

// Response is the envelope every endpoint returns.
type Response struct {
	Success    bool        `json:"success"`
	Message    string      `json:"message,omitempty"`
	Data       interface{} `json:"data,omitempty"`
	Pagination *Pagination `json:"pagination,omitempty"`
	Error      string      `json:"error,omitempty"`
}

// Pagination describes the page window of a list response.
type Pagination struct {
	Current int64 `json:"current"`
	Total   int64 `json:"total"`
	Count   int64 `json:"count"`
}

func Err(c *fiber.Ctx, code int, msg string) error {
	return c.Status(code).JSON(Response{Success: false, Message: msg})
}
