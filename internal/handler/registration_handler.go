package handler

import (
	"context"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/simoncdt/vericoupon/internal/model"
	"github.com/simoncdt/vericoupon/internal/service"
)

// RegistrationServiceInterface defines the interface for submission business logic.
type RegistrationServiceInterface interface {
	Create(ctx context.Context, req *model.CreateRegistrationRequest) (*model.Registration, error)
	List(ctx context.Context) ([]model.Registration, error)
}

// RegistrationHandler handles HTTP requests for coupon-batch submissions.
type RegistrationHandler struct {
	service   RegistrationServiceInterface
	validator *validator.Validate
}

// NewRegistrationHandler creates a new RegistrationHandler with the given
// service and validator.
func NewRegistrationHandler(svc RegistrationServiceInterface, v *validator.Validate) *RegistrationHandler {
	return &RegistrationHandler{service: svc, validator: v}
}

// formatValidationError converts validator errors into messages naming the
// offending field. Element-level failures on the code list collapse into one
// message since the slot index is not actionable for API callers.
func formatValidationError(err error) string {
	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		for _, fe := range ve {
			field := fe.Field()
			tag := fe.Tag()

			if strings.HasPrefix(field, "Codes[") {
				return "invalid request: codes entries cannot be blank"
			}

			switch field {
			case "Surname", "GivenName", "ProviderName":
				name := map[string]string{
					"Surname":      "surname",
					"GivenName":    "givenName",
					"ProviderName": "providerName",
				}[field]
				if tag == "required" {
					return "invalid request: " + name + " is required"
				}
				if tag == "notblank" {
					return "invalid request: " + name + " cannot be whitespace only"
				}
				if tag == "providerkey" {
					return "invalid request: unknown provider"
				}
				if tag == "max" {
					return "invalid request: " + name + " exceeds maximum length"
				}
				return "invalid request: " + name + " is invalid"
			case "Codes":
				if tag == "required" || tag == "min" {
					return "invalid request: codes is required"
				}
				return "invalid request: codes is invalid"
			case "Amounts":
				if tag == "required" || tag == "min" {
					return "invalid request: amounts is required"
				}
				return "invalid request: amounts is invalid"
			default:
				if tag == "required" {
					return "invalid request: " + field + " is required"
				}
				return "invalid request: " + field + " is invalid"
			}
		}
	}
	return "invalid request"
}

// Create handles POST /enregistrement requests to submit a coupon batch.
func (h *RegistrationHandler) Create(c *fiber.Ctx) error {
	var req model.CreateRegistrationRequest

	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	if err := h.validator.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": formatValidationError(err)})
	}

	reg, err := h.service.Create(c.Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrEmptyBatch) || errors.Is(err, service.ErrInvalidRequest) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request"})
		}
		log.Error().Err(err).Str("provider", req.ProviderName).Msg("failed to create registration")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal server error"})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Enregistrement réussi",
		"data":    reg,
	})
}

// List handles GET /enregistrements requests for the admin dashboard.
func (h *RegistrationHandler) List(c *fiber.Ctx) error {
	regs, err := h.service.List(c.Context())
	if err != nil {
		log.Error().Err(err).Msg("failed to list registrations")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal server error"})
	}

	return c.JSON(regs)
}
