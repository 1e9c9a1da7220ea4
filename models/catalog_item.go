package models

import (
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Category is the closed top-level taxonomy dimension. Values are stored
// title-cased; parsing is case-insensitive.
type Category string

const (
	CategoryMen      Category = "Men"
	CategoryWomen    Category = "Women"
	CategoryChildren Category = "Children"
)

// ParseCategory canonicalizes raw admin input into a Category.
func ParseCategory(raw string) (Category, bool) {
	switch strings.ToUpper(strings.TrimSpace(raw)) {
	case "MEN":
		return CategoryMen, true
	case "WOMEN":
		return CategoryWomen, true
	case "CHILDREN":
		return CategoryChildren, true
	}
	return "", false
}

// ChildCategory scopes the Children category.
type ChildCategory string

const (
	ChildBoys  ChildCategory = "Boys"
	ChildGirls ChildCategory = "Girls"
)

func ParseChildCategory(raw string) (ChildCategory, bool) {
	switch strings.ToUpper(strings.TrimSpace(raw)) {
	case "BOYS":
		return ChildBoys, true
	case "GIRLS":
		return ChildGirls, true
	}
	return "", false
}

type ItemStatus string

const (
	StatusAvailable        ItemStatus = "Available"
	StatusOutOfStock       ItemStatus = "Out of Stock"
	StatusAvailableForRent ItemStatus = "Available for Rent"
)

// CatalogItem is a rentable listing. ProductID is the externally visible
// identifier and is unique across the collection (backed by a unique index).
type CatalogItem struct {
	Id              bson.ObjectID `bson:"_id,omitempty" json:"id"`
	ProductID       string        `bson:"productId" json:"productId"`
	Title           string        `bson:"title" json:"title"`
	Description     string        `bson:"description,omitempty" json:"description,omitempty"`
	Category        Category      `bson:"category" json:"category"`
	Occasion        string        `bson:"occasion,omitempty" json:"occasion,omitempty"`
	CollectionType  string        `bson:"collectionType" json:"collectionType"`
	ChildCategory   ChildCategory `bson:"childCategory,omitempty" json:"childCategory,omitempty"`
	MainImage       string        `bson:"mainImage" json:"mainImage"`
	MainImage2      string        `bson:"mainImage2,omitempty" json:"mainImage2,omitempty"`
	OtherImages     []string      `bson:"otherImages,omitempty" json:"otherImages,omitempty"`
	Price           float64       `bson:"price,omitempty" json:"price,omitempty"`
	DiscountedPrice float64       `bson:"discountedPrice,omitempty" json:"discountedPrice,omitempty"`
	Status          ItemStatus    `bson:"status" json:"status"`
	Tags            []string      `bson:"tags,omitempty" json:"tags,omitempty"`
	CreatedAt       time.Time     `bson:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time     `bson:"updatedAt" json:"updatedAt"`
}

// AssetURLs returns every storage URL the item currently references.
// Used by the cleanup pass on update and delete.
func (i *CatalogItem) AssetURLs() []string {
	urls := make([]string, 0, len(i.OtherImages)+2)
	if i.MainImage != "" {
		urls = append(urls, i.MainImage)
	}
	if i.MainImage2 != "" {
		urls = append(urls, i.MainImage2)
	}
	for _, u := range i.OtherImages {
		if u != "" {
			urls = append(urls, u)
		}
	}
	return urls
}
