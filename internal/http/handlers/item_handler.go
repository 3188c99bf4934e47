package handlers

import (
	"errors"
	"io"
	"mime/multipart"

	"github.com/gofiber/fiber/v2"

	"itemsvault/internal/domain"
	"itemsvault/internal/imaging"
	"itemsvault/internal/log"
	"itemsvault/internal/repos"
	"itemsvault/internal/services"
	"itemsvault/internal/validate"
)

type ItemHandler struct {
	Catalog *services.CatalogService
	Dev     bool
}

// ListAPI returns every item as a JSON array. Ordering and filtering are a
// client concern; the array comes back raw.
func (h *ItemHandler) ListAPI(c *fiber.Ctx) error {
	items, err := h.Catalog.ListItems()
	if err != nil {
		log.Error(c, "items.list.error", err, nil)
		return serverError(c, h.Dev, "Error fetching items", err)
	}
	if items == nil {
		items = []domain.Item{}
	}
	return c.JSON(items)
}

func (h *ItemHandler) GetAPI(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		// A malformed id is indistinguishable from an unknown one.
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Item not found"})
	}
	item, err := h.Catalog.GetItem(id)
	if err != nil {
		if errors.Is(err, repos.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Item not found"})
		}
		log.Error(c, "items.get.error", err, map[string]any{"id": id})
		return serverError(c, h.Dev, "Error fetching item", err)
	}
	return c.JSON(item)
}

// CreateAPI accepts a multipart item-creation request: itemName, itemType,
// description, one required coverImage file and up to ten additionalImages.
func (h *ItemHandler) CreateAPI(c *fiber.Ctx) error {
	form, err := c.MultipartForm()
	if err != nil {
		log.Security(c, "items.create.badform", map[string]any{"err": err.Error()})
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid multipart form"})
	}

	in := services.CreateItemInput{
		Name:        c.FormValue("itemName"),
		Type:        c.FormValue("itemType"),
		Description: c.FormValue("description"),
	}

	if covers := form.File["coverImage"]; len(covers) > 0 {
		up, err := readUpload(covers[0])
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
		}
		in.Cover = up
	}
	for _, fh := range form.File["additionalImages"] {
		up, err := readUpload(fh)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
		}
		in.Additional = append(in.Additional, *up)
	}

	item, err := h.Catalog.CreateItem(c.Context(), in)
	if err != nil {
		var ve *services.ValidationError
		if errors.As(err, &ve) {
			log.Security(c, "items.create.invalid", map[string]any{"reason": ve.Msg})
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": ve.Msg})
		}
		log.Error(c, "items.create.error", err, nil)
		return serverError(c, h.Dev, "Failed to add item", err)
	}

	log.Info(c, "items.create.ok", map[string]any{"id": item.ID})
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Item added successfully",
		"item":    item,
	})
}

func readUpload(fh *multipart.FileHeader) (*services.Upload, error) {
	if fh.Size > imaging.MaxBytes {
		return nil, errors.New("Each image must be 5 MB or smaller")
	}
	f, err := fh.Open()
	if err != nil {
		return nil, errors.New("Could not read uploaded file")
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		return nil, errors.New("Could not read uploaded file")
	}
	return &services.Upload{Filename: fh.Filename, Data: data}, nil
}

// serverError answers an upstream failure with a generic message; the raw
// error text is echoed only in development mode, never a stack.
func serverError(c *fiber.Ctx, dev bool, msg string, err error) error {
	body := fiber.Map{"message": msg}
	if dev && err != nil {
		body["error"] = err.Error()
	}
	return c.Status(fiber.StatusInternalServerError).JSON(body)
}
