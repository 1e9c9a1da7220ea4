package catalog

import (
	"strings"

	"github.com/shaadicloset/shaadibackend/models"
)

// BrowsePageSize is the fixed public-browse page size.
const BrowsePageSize = 8

// BrowseQuery is a public catalog browse request. Category is mandatory;
// Type and Occasion are mutually exclusive in the UI, and Type wins if both
// arrive.
type BrowseQuery struct {
	Category    string
	Occasion    string
	Type        string
	Subcategory string
	Page        int
}

// BrowsePage is one page of filtered items.
type BrowsePage struct {
	Items      []models.CatalogItem `json:"items"`
	Page       int                  `json:"page"`
	TotalPages int                  `json:"totalPages"`
}

func up(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

// matchesLoose is the fuzzy taxonomy match used for subcategory and type
// filters: exact collectionType match or description substring, optionally
// also a title substring.
func matchesLoose(item *models.CatalogItem, needle string, includeTitle bool) bool {
	if up(item.CollectionType) == needle {
		return true
	}
	if strings.Contains(up(item.Description), needle) {
		return true
	}
	if includeTitle && strings.Contains(up(item.Title), needle) {
		return true
	}
	return false
}

// FilterAndPaginate filters items for public browsing and slices out one
// page. Comparison is case-insensitive throughout; input order (store
// natural order, newest first) is preserved; out-of-range pages clamp to
// page 1.
func FilterAndPaginate(items []models.CatalogItem, q BrowseQuery) BrowsePage {
	category := up(q.Category)
	subcategory := up(q.Subcategory)
	typ := up(q.Type)
	occasion := up(q.Occasion)

	filtered := make([]models.CatalogItem, 0, len(items))
	for i := range items {
		it := &items[i]
		if up(string(it.Category)) != category {
			continue
		}
		if subcategory != "" && !matchesLoose(it, subcategory, false) {
			continue
		}
		switch {
		case typ != "":
			if !matchesLoose(it, typ, true) {
				continue
			}
		case occasion != "":
			if up(it.Occasion) != occasion {
				continue
			}
		}
		filtered = append(filtered, *it)
	}

	totalPages := (len(filtered) + BrowsePageSize - 1) / BrowsePageSize

	page := q.Page
	if page < 1 || page > totalPages {
		page = 1
	}

	start := (page - 1) * BrowsePageSize
	if start > len(filtered) {
		start = 0
	}
	end := start + BrowsePageSize
	if end > len(filtered) {
		end = len(filtered)
	}

	return BrowsePage{
		Items:      filtered[start:end],
		Page:       page,
		TotalPages: totalPages,
	}
}
