package domain

// ItemTypes is the fixed set of accepted item types.
var ItemTypes = []string{"Shirt", "Pant", "Shoes", "Sports Gear", "Other"}

// ValidItemType reports whether t is a member of ItemTypes.
func ValidItemType(t string) bool {
	for _, v := range ItemTypes {
		if v == t {
			return true
		}
	}
	return false
}

// Item is a catalog entry. Items are immutable once created; there is no
// update or delete path in this system.
type Item struct {
	ID               string   `json:"id" db:"id"`
	Name             string   `json:"itemName" db:"item_name"`
	Type             string   `json:"itemType" db:"item_type"`
	Description      string   `json:"description" db:"description"`
	CoverImage       string   `json:"coverImage" db:"cover_image"`
	AdditionalImages []string `json:"additionalImages" db:"-"`
	ImagesJSON       string   `json:"-" db:"additional_images_json"`
	CreatedAt        string   `json:"createdAt" db:"created_at"`
	UpdatedAt        string   `json:"updatedAt" db:"updated_at"`
}

// EnquiryDetails is the transient payload an enquiry email is built from.
// It is never persisted; it either comes from the caller or is derived
// from a stored item.
type EnquiryDetails struct {
	ItemName    string `json:"itemName"`
	ItemType    string `json:"itemType"`
	Description string `json:"description"`
}

// Details derives the email payload for an item.
func (i Item) Details() EnquiryDetails {
	return EnquiryDetails{ItemName: i.Name, ItemType: i.Type, Description: i.Description}
}
