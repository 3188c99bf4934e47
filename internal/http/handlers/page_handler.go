package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"itemsvault/internal/catalog"
	"itemsvault/internal/log"
	"itemsvault/internal/repos"
	"itemsvault/internal/services"
	"itemsvault/internal/validate"
)

type PageHandler struct {
	Catalog *services.CatalogService
}

// List renders the browse page. Filter, search and sort are recomputed from
// the full item list on every request.
func (h *PageHandler) List(c *fiber.Ctx) error {
	typeFilter := c.Query("type")
	q := c.Query("q")
	if q != "" {
		if valid, ok := validate.Q(q); ok {
			q = valid
		} else {
			log.Security(c, "items.page.badquery", nil)
			q = ""
		}
	}
	sortKey := catalog.SortNewest
	if s, ok := validate.Sort(c.Query("sort")); ok {
		sortKey = s
	}

	items, err := h.Catalog.ListItems()
	if err != nil {
		log.Error(c, "items.page.error", err, nil)
		return c.Status(fiber.StatusInternalServerError).Render("notfound", fiber.Map{
			"Message": "Could not load items. Please retry.",
		})
	}

	view := catalog.Apply(items, typeFilter, q, sortKey)
	return render(c, "items", fiber.Map{
		"Items":  view,
		"Count":  len(view),
		"Filter": typeFilter,
		"Q":      q,
		"Sort":   sortKey,
	})
}

func (h *PageHandler) Detail(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusNotFound).Render("notfound", fiber.Map{
			"Message": "This item is no longer available",
		})
	}
	item, err := h.Catalog.GetItem(id)
	if err != nil {
		if !errors.Is(err, repos.ErrNotFound) {
			log.Error(c, "items.detail.error", err, map[string]any{"id": id})
		}
		return c.Status(fiber.StatusNotFound).Render("notfound", fiber.Map{
			"Message": "This item is no longer available",
		})
	}
	return render(c, "item", fiber.Map{"Item": item})
}

func (h *PageHandler) New(c *fiber.Ctx) error {
	return render(c, "additem", nil)
}
