package catalog

import (
	"fmt"
	"testing"

	"github.com/shaadicloset/shaadibackend/models"
)

func item(category, occasion, collectionType, title string) models.CatalogItem {
	return models.CatalogItem{
		Category:       models.Category(category),
		Occasion:       occasion,
		CollectionType: collectionType,
		Title:          title,
	}
}

func TestFilterByCategoryAndOccasion(t *testing.T) {
	items := []models.CatalogItem{
		item("Men", "Wedding", "Sherwani", "Classic Sherwani"),
		item("Men", "Sangeet", "Kurta", "Silk Kurta"),
		item("Women", "Wedding", "Lehenga", "Bridal Lehenga"),
	}

	page := FilterAndPaginate(items, BrowseQuery{Category: "MEN", Occasion: "WEDDING", Page: 1})

	if len(page.Items) != 1 {
		t.Fatalf("got %d items, want 1", len(page.Items))
	}
	if page.Items[0].Title != "Classic Sherwani" {
		t.Errorf("got %q", page.Items[0].Title)
	}
}

func TestFilterTypeWinsOverOccasion(t *testing.T) {
	items := []models.CatalogItem{
		item("Men", "Wedding", "Sherwani", "Classic Sherwani"),
		item("Men", "Sangeet", "Kurta", "Silk Kurta"),
	}

	// Both arrive; type must win, so the Kurta matches despite the
	// occasion pointing at the Sherwani.
	page := FilterAndPaginate(items, BrowseQuery{
		Category: "Men", Occasion: "Wedding", Type: "Kurta", Page: 1,
	})

	if len(page.Items) != 1 || page.Items[0].CollectionType != "Kurta" {
		t.Fatalf("type filter did not take precedence: %+v", page.Items)
	}
}

func TestFilterTypeMatchesTitleSubstring(t *testing.T) {
	items := []models.CatalogItem{
		item("Men", "Wedding", "Suit", "Velvet Jodhpuri Suit"),
		item("Men", "Wedding", "Sherwani", "Classic Sherwani"),
	}

	page := FilterAndPaginate(items, BrowseQuery{Category: "men", Type: "jodhpuri", Page: 1})

	if len(page.Items) != 1 || page.Items[0].Title != "Velvet Jodhpuri Suit" {
		t.Fatalf("got %+v", page.Items)
	}
}

func TestFilterSubcategory(t *testing.T) {
	items := []models.CatalogItem{
		item("Children", "", "Tuxedo", "Little Tuxedo"),
		item("Children", "", "Kurta", "Festive Kurta"),
	}
	items[0].Description = "A smart pageboy outfit"

	page := FilterAndPaginate(items, BrowseQuery{Category: "children", Subcategory: "pageboy", Page: 1})
	if len(page.Items) != 1 || page.Items[0].Title != "Little Tuxedo" {
		t.Fatalf("got %+v", page.Items)
	}
}

func TestPagination(t *testing.T) {
	items := make([]models.CatalogItem, 0, 12)
	for i := 0; i < 12; i++ {
		items = append(items, item("Women", "Wedding", "Saree", fmt.Sprintf("Saree %02d", i)))
	}

	page1 := FilterAndPaginate(items, BrowseQuery{Category: "Women", Page: 1})
	if page1.TotalPages != 2 {
		t.Fatalf("totalPages = %d, want 2", page1.TotalPages)
	}
	if len(page1.Items) != 8 {
		t.Fatalf("page 1 has %d items, want 8", len(page1.Items))
	}
	if page1.Items[0].Title != "Saree 00" {
		t.Errorf("input order not preserved: %q", page1.Items[0].Title)
	}

	page2 := FilterAndPaginate(items, BrowseQuery{Category: "Women", Page: 2})
	if len(page2.Items) != 4 {
		t.Fatalf("page 2 has %d items, want 4", len(page2.Items))
	}
	if page2.Items[0].Title != "Saree 08" {
		t.Errorf("page 2 starts at %q", page2.Items[0].Title)
	}

	// Out-of-range pages clamp to page 1 rather than erroring or
	// returning empty.
	page3 := FilterAndPaginate(items, BrowseQuery{Category: "Women", Page: 3})
	if page3.Page != 1 || len(page3.Items) != 8 {
		t.Fatalf("page 3 did not clamp: page=%d items=%d", page3.Page, len(page3.Items))
	}
	if page3.Items[0].Title != page1.Items[0].Title {
		t.Error("clamped page differs from page 1")
	}

	page0 := FilterAndPaginate(items, BrowseQuery{Category: "Women", Page: -4})
	if page0.Page != 1 {
		t.Errorf("negative page clamps to %d", page0.Page)
	}
}

func TestFilterNoMatches(t *testing.T) {
	items := []models.CatalogItem{
		item("Men", "Wedding", "Sherwani", "Classic Sherwani"),
	}
	page := FilterAndPaginate(items, BrowseQuery{Category: "Women", Page: 1})
	if len(page.Items) != 0 || page.TotalPages != 0 {
		t.Fatalf("got %d items, totalPages=%d", len(page.Items), page.TotalPages)
	}
}

func TestFilterDeterministic(t *testing.T) {
	items := []models.CatalogItem{
		item("Men", "Wedding", "Sherwani", "A"),
		item("Men", "Wedding", "Sherwani", "B"),
		item("Men", "Wedding", "Sherwani", "C"),
	}
	q := BrowseQuery{Category: "Men", Occasion: "Wedding", Page: 1}
	first := FilterAndPaginate(items, q)
	second := FilterAndPaginate(items, q)
	for i := range first.Items {
		if first.Items[i].Title != second.Items[i].Title {
			t.Fatal("same input produced different order")
		}
	}
}
