package handlers

import (
	"github.com/gofiber/fiber/v2"

	"itemsvault/internal/domain"
)

func render(c *fiber.Ctx, tmpl string, data fiber.Map) error {
	if data == nil {
		data = fiber.Map{}
	}
	// Every page shows the type navigation.
	if _, ok := data["Types"]; !ok {
		data["Types"] = domain.ItemTypes
	}
	return c.Render(tmpl, data)
}
