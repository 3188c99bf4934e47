package services

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"itemsvault/internal/domain"
	"itemsvault/internal/imaging"
	"itemsvault/internal/storage"
)

// MaxAdditionalImages caps the optional gallery images per item.
const MaxAdditionalImages = 10

var validate = validator.New()

// ValidationError marks input the caller can fix; handlers answer it with 400.
type ValidationError struct{ Msg string }

func (e *ValidationError) Error() string { return e.Msg }

func invalid(msg string) error { return &ValidationError{Msg: msg} }

// ItemRepository is the persistence surface the services need.
type ItemRepository interface {
	List() ([]domain.Item, error)
	Get(id string) (domain.Item, error)
	Create(item *domain.Item) error
}

// Upload carries one uploaded file's raw bytes.
type Upload struct {
	Filename string
	Data     []byte
}

// CreateItemInput is the validated item-creation request.
type CreateItemInput struct {
	Name        string `validate:"required"`
	Type        string `validate:"required"`
	Description string `validate:"required"`
	Cover       *Upload
	Additional  []Upload
}

type CatalogService struct {
	Items ItemRepository
	Files storage.Store
}

func NewCatalogService(items ItemRepository, files storage.Store) *CatalogService {
	return &CatalogService{Items: items, Files: files}
}

func (s *CatalogService) ListItems() ([]domain.Item, error) {
	return s.Items.List()
}

func (s *CatalogService) GetItem(id string) (domain.Item, error) {
	return s.Items.Get(id)
}

// CreateItem validates the input, stores every image (cover first), then
// writes the item row. A failed image store aborts the whole operation so no
// item is ever persisted without its cover image.
func (s *CatalogService) CreateItem(ctx context.Context, in CreateItemInput) (domain.Item, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Type = strings.TrimSpace(in.Type)
	in.Description = strings.TrimSpace(in.Description)

	if err := validate.Struct(in); err != nil {
		return domain.Item{}, invalid("All fields are required")
	}
	if !domain.ValidItemType(in.Type) {
		return domain.Item{}, invalid(fmt.Sprintf("Invalid item type: %s", in.Type))
	}
	if in.Cover == nil || len(in.Cover.Data) == 0 {
		return domain.Item{}, invalid("Cover image is required")
	}
	if len(in.Additional) > MaxAdditionalImages {
		return domain.Item{}, invalid(fmt.Sprintf("At most %d additional images are allowed", MaxAdditionalImages))
	}

	coverRef, err := s.storeImage(ctx, *in.Cover)
	if err != nil {
		return domain.Item{}, err
	}

	refs := make([]string, 0, len(in.Additional))
	for _, up := range in.Additional {
		ref, err := s.storeImage(ctx, up)
		if err != nil {
			return domain.Item{}, err
		}
		refs = append(refs, ref)
	}

	item := domain.Item{
		Name:             in.Name,
		Type:             in.Type,
		Description:      in.Description,
		CoverImage:       coverRef,
		AdditionalImages: refs,
	}
	if err := s.Items.Create(&item); err != nil {
		return domain.Item{}, err
	}
	return item, nil
}

func (s *CatalogService) storeImage(ctx context.Context, up Upload) (string, error) {
	res, err := imaging.Process(bytes.NewReader(up.Data))
	if err != nil {
		// Bad bytes are the caller's problem, not an upstream failure.
		return "", invalid(err.Error())
	}
	name := storage.ObjectName(up.Filename, res.Ext)
	ref, err := s.Files.Save(ctx, name, res.Data, res.MIME)
	if err != nil {
		return "", fmt.Errorf("store image %s: %w", up.Filename, err)
	}
	return ref, nil
}
