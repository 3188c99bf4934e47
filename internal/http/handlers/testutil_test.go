package handlers_test

import (
	"bytes"
	"image"
	"image/png"
	"mime/multipart"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	html "github.com/gofiber/template/html/v2"

	"itemsvault/internal/config"
	"itemsvault/internal/domain"
	"itemsvault/internal/http/handlers"
	applog "itemsvault/internal/log"
	"itemsvault/internal/repos"
	"itemsvault/internal/services"
	"itemsvault/internal/storage"
)

// stubMailer records enquiry sends and answers with a fixed result. Like the
// real notifier it refuses details without an item name.
type stubMailer struct {
	result bool
	calls  int
	last   *domain.EnquiryDetails
	lastTo string
}

func (s *stubMailer) SendEnquiry(d *domain.EnquiryDetails, to string) bool {
	s.calls++
	s.last = d
	s.lastTo = to
	if d == nil || d.ItemName == "" {
		return false
	}
	return s.result
}

// Minimal app setup mirroring the wiring in cmd/itemsvault.
func newTestApp(t *testing.T, mailer services.MailSender) (*fiber.App, *repos.ItemRepo) {
	t.Helper()
	cfg := config.Config{Env: "production", DBDSN: ":memory:", UploadsDir: t.TempDir()}
	db, err := repos.OpenDB(cfg.DBDSN)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	files, err := storage.NewLocal(cfg.UploadsDir)
	if err != nil {
		t.Fatalf("local storage: %v", err)
	}

	engine := html.New("../../../web/templates", ".html")
	app := fiber.New(fiber.Config{
		Views: engine,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			applog.Error(c, "server.error", err, nil)
			return c.Status(fiber.StatusInternalServerError).SendString("Something went wrong. Please try again.")
		},
	})
	app.Server().MaxRequestBodySize = 64 << 20
	app.Use(requestid.New())

	deps := handlers.NewDeps(db, cfg, files, mailer)

	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"message": "ItemsVault backend is running", "status": "healthy"})
	})
	app.Get("/items", deps.PageHandler.List)
	app.Get("/items/new", deps.PageHandler.New)
	app.Get("/items/:id", deps.PageHandler.Detail)

	api := app.Group("/api")
	api.Get("/items", deps.ItemHandler.ListAPI)
	api.Post("/items", deps.ItemHandler.CreateAPI)
	api.Post("/items/enquiry", deps.EnquiryHandler.Send)
	api.Get("/items/:id", deps.ItemHandler.GetAPI)

	app.Use(func(c *fiber.Ctx) error {
		return c.Status(404).Render("notfound", fiber.Map{"Message": "Page not found"})
	})

	return app, repos.NewItemRepo(db)
}

func testPNG(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 8, 8))); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}

type filePart struct {
	field, name string
	data        []byte
}

// multipartBody builds a multipart item-creation payload.
func multipartBody(t *testing.T, fields map[string]string, files []filePart) (*bytes.Buffer, string) {
	t.Helper()
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	for k, v := range fields {
		if err := w.WriteField(k, v); err != nil {
			t.Fatalf("write field %s: %v", k, err)
		}
	}
	for _, f := range files {
		fw, err := w.CreateFormFile(f.field, f.name)
		if err != nil {
			t.Fatalf("create file %s: %v", f.field, err)
		}
		if _, err := fw.Write(f.data); err != nil {
			t.Fatalf("write file %s: %v", f.field, err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}
	return &body, w.FormDataContentType()
}
