package dto

// CreateCollectionDTO is parsed from the "data" multipart field (JSON).
// Taxonomy strings arrive in whatever case the admin typed them — dropdown
// picks and free-typed values alike; the catalog package canonicalizes and
// registers both.
type CreateCollectionDTO struct {
	Title           string   `json:"title"`
	ProductID       string   `json:"productId"`
	Description     string   `json:"description"`
	Category        string   `json:"category"`
	Occasion        string   `json:"occasion"`
	CollectionType  string   `json:"collectionType"`
	ChildCategory   string   `json:"childCategory"`
	Price           float64  `json:"price"`
	DiscountedPrice float64  `json:"discountedPrice"`
	Status          string   `json:"status"`
	Tags            []string `json:"tags"`
}

// UpdateCollectionDTO — all fields optional pointers; absent fields keep the
// stored value. RemovedOtherImages lists otherImages URLs the admin removed.
type UpdateCollectionDTO struct {
	Title           *string   `json:"title,omitempty"`
	ProductID       *string   `json:"productId,omitempty"`
	Description     *string   `json:"description,omitempty"`
	Category        *string   `json:"category,omitempty"`
	Occasion        *string   `json:"occasion,omitempty"`
	CollectionType  *string   `json:"collectionType,omitempty"`
	ChildCategory   *string   `json:"childCategory,omitempty"`
	Price           *float64  `json:"price,omitempty"`
	DiscountedPrice *float64  `json:"discountedPrice,omitempty"`
	Status          *string   `json:"status,omitempty"`
	Tags            *[]string `json:"tags,omitempty"`

	RemovedOtherImages []string `json:"removedOtherImages,omitempty"`
	RemoveMainImage2   bool     `json:"removeMainImage2,omitempty"`
}
