package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"itemsvault/internal/domain"
	"itemsvault/internal/log"
	"itemsvault/internal/repos"
	"itemsvault/internal/services"
	"itemsvault/internal/validate"
)

type EnquiryHandler struct {
	Enquiries *services.EnquiryService
	Dev       bool
}

type enquiryRequest struct {
	ItemID  string                 `json:"itemId"`
	Email   string                 `json:"email"`
	Details *domain.EnquiryDetails `json:"details"`
}

// Send handles POST /api/items/enquiry: validate, look up, notify, map the
// notifier's boolean to a response. No retries; a failed send surfaces once.
func (h *EnquiryHandler) Send(c *fiber.Ctx) error {
	var req enquiryRequest
	if err := c.BodyParser(&req); err != nil {
		log.Security(c, "enquiry.badbody", map[string]any{"err": err.Error()})
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"success": false,
		})
	}

	if req.ItemID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Item ID is required",
			"success": false,
		})
	}
	email, ok := validate.Email(req.Email)
	if !ok {
		log.Security(c, "enquiry.bademail", nil)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "A valid email is required",
			"success": false,
		})
	}

	err := h.Enquiries.Send(req.ItemID, email, req.Details)
	switch {
	case err == nil:
		log.Info(c, "enquiry.sent", map[string]any{"item": req.ItemID})
		return c.JSON(fiber.Map{
			"message": "Enquiry sent successfully",
			"success": true,
		})
	case errors.Is(err, repos.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": "Item not found",
			"success": false,
		})
	case errors.Is(err, services.ErrSendFailed):
		log.Error(c, "enquiry.send.failed", err, map[string]any{"item": req.ItemID})
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Failed to send enquiry. Please try again later.",
			"success": false,
		})
	default:
		log.Error(c, "enquiry.error", err, map[string]any{"item": req.ItemID})
		body := fiber.Map{
			"message": "Internal server error. Please try again later.",
			"success": false,
		}
		if h.Dev {
			body["error"] = err.Error()
		}
		return c.Status(fiber.StatusInternalServerError).JSON(body)
	}
}
