package handler

import (
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/simoncdt/vericoupon/internal/auth"
)

// SessionGate defines the interface for operator authentication.
type SessionGate interface {
	Login(username, password string) (*auth.Session, error)
	Verify(token string) bool
	Logout(token string)
}

// loginRequest is the DTO for POST /admin/login.
type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// AuthHandler handles operator login and logout.
type AuthHandler struct {
	gate      SessionGate
	validator *validator.Validate
}

// NewAuthHandler creates a new AuthHandler with the given gate and validator.
func NewAuthHandler(gate SessionGate, v *validator.Validate) *AuthHandler {
	return &AuthHandler{gate: gate, validator: v}
}

// Login handles POST /admin/login. Every rejected credential pair gets the
// same generic response regardless of which field was wrong.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req loginRequest

	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	if err := h.validator.Struct(req); err != nil {
		// Incomplete credentials get the same generic rejection as wrong
		// ones rather than a field-naming validation message.
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "invalid credentials"})
	}

	session, err := h.gate.Login(req.Username, req.Password)
	if err != nil {
		if !errors.Is(err, auth.ErrRejected) {
			log.Error().Err(err).Msg("login failed")
		}
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "invalid credentials"})
	}

	return c.JSON(fiber.Map{
		"token":     session.Token,
		"expiresAt": session.ExpiresAt.UTC().Format(time.RFC3339),
	})
}

// Logout handles POST /admin/logout. Unknown tokens are revoked silently.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	h.gate.Logout(bearerToken(c))
	return c.SendStatus(fiber.StatusNoContent)
}

// SessionRequired returns middleware that rejects requests without a live
// operator session.
func SessionRequired(gate SessionGate) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !gate.Verify(bearerToken(c)) {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "authentication required"})
		}
		return c.Next()
	}
}

// bearerToken extracts the token from an Authorization: Bearer header.
func bearerToken(c *fiber.Ctx) string {
	header := c.Get(fiber.HeaderAuthorization)
	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return ""
	}
	return strings.TrimSpace(header[len(prefix):])
}
