package catalog

import (
	"context"
	"log"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/shaadicloset/shaadibackend/models"
	"go.mongodb.org/mongo-driver/v2/bson"
)

// Dimension is a taxonomy axis that MetaOptions are keyed under.
type Dimension string

const (
	DimOccasion Dimension = "occasion"
	DimType     Dimension = "collectionType"
)

// MetaKey derives the MetaOption key for a dimension within a category, e.g.
// "occasion_men" or "collectionType_children_boys". Only Children are
// further scoped by child category.
func MetaKey(dim Dimension, cat models.Category, child models.ChildCategory) string {
	key := string(dim) + "_" + strings.ToLower(string(cat))
	if cat == models.CategoryChildren && child != "" {
		key += "_" + strings.ToLower(string(child))
	}
	return key
}

// Canonicalize trims a free-text taxonomy value and title-cases it for
// storage, so "SANGEET" and "sangeet" land as one value.
func Canonicalize(s string) string {
	return cases.Title(language.English).String(strings.TrimSpace(s))
}

// ItemInput carries the raw field values of an admin create/edit submission.
// HasMainImage is true when the submission includes a fresh upload or retains
// an existing URL.
type ItemInput struct {
	Title          string
	ProductID      string
	Category       string
	Occasion       string
	CollectionType string
	ChildCategory  string
	Status         string
	HasMainImage   bool
}

// NormalizedItem is the canonical form of a valid submission.
type NormalizedItem struct {
	Title          string
	ProductID      string
	Category       models.Category
	ChildCategory  models.ChildCategory
	Occasion       string
	CollectionType string
	Status         models.ItemStatus
}

// Normalize validates in the documented order — title, productId, category,
// childCategory/occasion, collectionType, mainImage — returning the first
// failure as a ValidationError, and canonicalizes every taxonomy string.
func (in ItemInput) Normalize() (*NormalizedItem, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, &ValidationError{Field: "title", Message: "title is required"}
	}

	productID := strings.TrimSpace(in.ProductID)
	if productID == "" {
		return nil, &ValidationError{Field: "productId", Message: "productId is required"}
	}

	cat, ok := models.ParseCategory(in.Category)
	if !ok {
		if strings.TrimSpace(in.Category) == "" {
			return nil, &ValidationError{Field: "category", Message: "category is required"}
		}
		return nil, &ValidationError{Field: "category", Message: "category must be Men, Women or Children"}
	}

	n := &NormalizedItem{
		Title:     title,
		ProductID: productID,
		Category:  cat,
	}

	if cat == models.CategoryChildren {
		child, ok := models.ParseChildCategory(in.ChildCategory)
		if !ok {
			if strings.TrimSpace(in.ChildCategory) == "" {
				return nil, &ValidationError{Field: "childCategory", Message: "childCategory is required for Children"}
			}
			return nil, &ValidationError{Field: "childCategory", Message: "childCategory must be Boys or Girls"}
		}
		n.ChildCategory = child
	} else {
		occasion := Canonicalize(in.Occasion)
		if occasion == "" {
			return nil, &ValidationError{Field: "occasion", Message: "occasion is required"}
		}
		n.Occasion = occasion
	}

	collectionType := Canonicalize(in.CollectionType)
	if collectionType == "" {
		return nil, &ValidationError{Field: "collectionType", Message: "collectionType is required"}
	}
	n.CollectionType = collectionType

	if !in.HasMainImage {
		return nil, &ValidationError{Field: "mainImage", Message: "mainImage is required"}
	}

	switch strings.ToUpper(strings.TrimSpace(in.Status)) {
	case "", "AVAILABLE":
		n.Status = models.StatusAvailable
	case "OUT OF STOCK":
		n.Status = models.StatusOutOfStock
	case "AVAILABLE FOR RENT":
		n.Status = models.StatusAvailableForRent
	default:
		return nil, &ValidationError{Field: "status", Message: "unknown status"}
	}

	return n, nil
}

// NormalizeOption trims an explicit MetaOption submission, canonicalizing
// the value. ok is false when either half is empty after trimming.
func NormalizeOption(key, value string) (k, v string, ok bool) {
	k = strings.TrimSpace(key)
	v = Canonicalize(value)
	return k, v, k != "" && v != ""
}

// OptionStore is the record access Taxonomy needs: the productId collision
// probe and idempotent option inserts. *Store satisfies it.
type OptionStore interface {
	ProductIDInUse(ctx context.Context, productID string, exclude bson.ObjectID) (bool, error)
	InsertOption(ctx context.Context, key, value string) error
}

// Taxonomy runs on every item create/update: validation, productId
// uniqueness, and MetaOption registration.
type Taxonomy struct {
	store OptionStore
}

func NewTaxonomy(store OptionStore) *Taxonomy {
	return &Taxonomy{store: store}
}

// Prepare normalizes and validates a submission, then probes for a productId
// collision. selfID excludes the item being edited; pass the zero ObjectID on
// create. The unique index backstops the probe against races.
func (t *Taxonomy) Prepare(ctx context.Context, in ItemInput, selfID bson.ObjectID) (*NormalizedItem, error) {
	n, err := in.Normalize()
	if err != nil {
		return nil, err
	}
	inUse, err := t.store.ProductIDInUse(ctx, n.ProductID, selfID)
	if err != nil {
		return nil, err
	}
	if inUse {
		return nil, ErrDuplicateProductID
	}
	return n, nil
}

// RegisterOptions records the item's occasion and collectionType as
// MetaOptions under their derived keys so the filter dropdowns stay
// populated from organic data entry. Inserts are idempotent (duplicates are
// swallowed by the store) and best-effort: errors are logged, never returned.
// Called after a successful save, which covers both explicitly custom values
// and the opportunistic registration of chosen ones.
func (t *Taxonomy) RegisterOptions(ctx context.Context, n *NormalizedItem) {
	if n.Occasion != "" {
		key := MetaKey(DimOccasion, n.Category, n.ChildCategory)
		if err := t.store.InsertOption(ctx, key, n.Occasion); err != nil {
			log.Printf("catalog: register option %s=%s failed: %v", key, n.Occasion, err)
		}
	}
	if n.CollectionType != "" {
		key := MetaKey(DimType, n.Category, n.ChildCategory)
		if err := t.store.InsertOption(ctx, key, n.CollectionType); err != nil {
			log.Printf("catalog: register option %s=%s failed: %v", key, n.CollectionType, err)
		}
	}
}
