package handler

import (
	"fmt"
	"math/rand/v2"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/simoncdt/vericoupon/internal/model"
	"github.com/simoncdt/vericoupon/internal/provider"
)

// VerificationHandler handles single-code validity checks. There is no
// real upstream validity source: the outcome is randomized, only the
// code's shape is actually checked against the provider catalog.
type VerificationHandler struct {
	validator *validator.Validate
	// randomValid decides the simulated outcome; overridable in tests.
	randomValid func() bool
}

// NewVerificationHandler creates a new VerificationHandler.
func NewVerificationHandler(v *validator.Validate) *VerificationHandler {
	return &VerificationHandler{
		validator:   v,
		randomValid: func() bool { return rand.IntN(2) == 0 },
	}
}

// Check handles POST /verification requests.
func (h *VerificationHandler) Check(c *fiber.Ctx) error {
	var req model.VerifyCouponRequest

	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	if err := h.validator.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request: provider and code are required"})
	}

	profile, ok := provider.Lookup(req.Provider)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request: unknown provider"})
	}

	code := profile.Normalize(req.Code)
	if !profile.Complete(code) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": fmt.Sprintf("invalid request: code must contain %d characters", profile.CodeLength),
		})
	}

	resp := model.VerifyCouponResponse{
		Valid:    h.randomValid(),
		Code:     code,
		Provider: profile.DisplayName,
	}
	if resp.Valid {
		resp.Message = "Votre coupon est valide et peut être utilisé."
	} else {
		resp.Message = "Ce coupon est invalide ou a déjà été utilisé."
	}

	return c.JSON(resp)
}
