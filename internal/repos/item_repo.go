package repos

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"itemsvault/internal/domain"
)

// ErrNotFound is returned when no item matches the requested id. Malformed
// ids are reported the same way; callers cannot tell the two apart.
var ErrNotFound = errors.New("item not found")

type ItemRepo struct{ db *sqlx.DB }

func NewItemRepo(db *sqlx.DB) *ItemRepo { return &ItemRepo{db: db} }

// List returns every item. No ordering is imposed here; list views order
// client-side from the full set.
func (r *ItemRepo) List() ([]domain.Item, error) {
	var out []domain.Item
	err := r.db.Select(&out, `
  SELECT id, item_name, item_type, description, cover_image,
         additional_images_json, created_at, updated_at
  FROM items
`)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	for i := range out {
		if err := decodeImages(&out[i]); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (r *ItemRepo) Get(id string) (domain.Item, error) {
	var it domain.Item
	err := r.db.Get(&it, `
  SELECT id, item_name, item_type, description, cover_image,
         additional_images_json, created_at, updated_at
  FROM items
  WHERE id = ?
`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Item{}, ErrNotFound
		}
		return domain.Item{}, fmt.Errorf("get item %s: %w", id, err)
	}
	if err := decodeImages(&it); err != nil {
		return domain.Item{}, err
	}
	return it, nil
}

// Create assigns the id and timestamps and persists the item.
func (r *ItemRepo) Create(item *domain.Item) error {
	if item.ID == "" {
		item.ID = uuid.New().String()
	}
	now := time.Now().UTC().Format(time.RFC3339)
	item.CreatedAt = now
	item.UpdatedAt = now

	if item.AdditionalImages == nil {
		item.AdditionalImages = []string{}
	}
	b, err := json.Marshal(item.AdditionalImages)
	if err != nil {
		return fmt.Errorf("encode images: %w", err)
	}
	item.ImagesJSON = string(b)

	_, err = r.db.Exec(`
  INSERT INTO items(id, item_name, item_type, description, cover_image,
                    additional_images_json, created_at, updated_at)
  VALUES(?,?,?,?,?,?,?,?)
`, item.ID, item.Name, item.Type, item.Description, item.CoverImage,
		item.ImagesJSON, item.CreatedAt, item.UpdatedAt)
	if err != nil {
		return fmt.Errorf("create item: %w", err)
	}
	return nil
}

func decodeImages(it *domain.Item) error {
	it.AdditionalImages = []string{}
	if it.ImagesJSON == "" {
		return nil
	}
	if err := json.Unmarshal([]byte(it.ImagesJSON), &it.AdditionalImages); err != nil {
		return fmt.Errorf("decode images for item %s: %w", it.ID, err)
	}
	return nil
}
