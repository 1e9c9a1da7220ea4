package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/shaadicloset/shaadibackend/models"
	"go.mongodb.org/mongo-driver/v2/bson"
)

// fakeOptionStore backs Taxonomy with an in-memory productId index and a
// record of registered options.
type fakeOptionStore struct {
	productIDs map[string]bson.ObjectID
	probeErr   error
	insertErr  error
	inserted   [][2]string
}

func (f *fakeOptionStore) ProductIDInUse(_ context.Context, productID string, exclude bson.ObjectID) (bool, error) {
	if f.probeErr != nil {
		return false, f.probeErr
	}
	id, ok := f.productIDs[productID]
	if !ok {
		return false, nil
	}
	return exclude.IsZero() || id != exclude, nil
}

func (f *fakeOptionStore) InsertOption(_ context.Context, key, value string) error {
	if f.insertErr != nil {
		return f.insertErr
	}
	f.inserted = append(f.inserted, [2]string{key, value})
	return nil
}

func validInput() ItemInput {
	return ItemInput{
		Title:          "Royal Blue Sherwani",
		ProductID:      "SH-1001",
		Category:       "men",
		Occasion:       "wedding",
		CollectionType: "sherwani",
		HasMainImage:   true,
	}
}

func TestNormalizeValid(t *testing.T) {
	n, err := validInput().Normalize()
	if err != nil {
		t.Fatalf("Normalize error: %v", err)
	}
	if n.Category != models.CategoryMen {
		t.Errorf("category = %q", n.Category)
	}
	if n.Occasion != "Wedding" {
		t.Errorf("occasion = %q, want title case", n.Occasion)
	}
	if n.CollectionType != "Sherwani" {
		t.Errorf("collectionType = %q", n.CollectionType)
	}
	if n.Status != models.StatusAvailable {
		t.Errorf("status = %q, want default Available", n.Status)
	}
}

func TestNormalizeValidationOrder(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*ItemInput)
		wantField string
	}{
		{"missing title", func(in *ItemInput) { in.Title = "  " }, "title"},
		{"missing productId", func(in *ItemInput) { in.ProductID = "" }, "productId"},
		{"missing category", func(in *ItemInput) { in.Category = "" }, "category"},
		{"bad category", func(in *ItemInput) { in.Category = "Pets" }, "category"},
		{"missing occasion", func(in *ItemInput) { in.Occasion = "" }, "occasion"},
		{"missing collectionType", func(in *ItemInput) { in.CollectionType = "" }, "collectionType"},
		{"missing mainImage", func(in *ItemInput) { in.HasMainImage = false }, "mainImage"},
		{
			"children need childCategory",
			func(in *ItemInput) { in.Category = "Children"; in.Occasion = "" },
			"childCategory",
		},
		{
			"bad childCategory",
			func(in *ItemInput) { in.Category = "Children"; in.ChildCategory = "Toddlers" },
			"childCategory",
		},
		{
			// title is checked before productId even when both are missing
			"title before productId",
			func(in *ItemInput) { in.Title = ""; in.ProductID = "" },
			"title",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validInput()
			tt.mutate(&in)
			_, err := in.Normalize()
			var ve *ValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("want ValidationError, got %v", err)
			}
			if ve.Field != tt.wantField {
				t.Errorf("field = %q, want %q", ve.Field, tt.wantField)
			}
		})
	}
}

func TestNormalizeChildrenRoundTrip(t *testing.T) {
	in := validInput()
	in.Category = "children"
	in.ChildCategory = "boys"
	in.Occasion = ""

	n, err := in.Normalize()
	if err != nil {
		t.Fatalf("Normalize error: %v", err)
	}
	if n.Category != models.CategoryChildren {
		t.Errorf("category = %q", n.Category)
	}
	if n.ChildCategory != models.ChildBoys {
		t.Errorf("childCategory = %q", n.ChildCategory)
	}
	// occasion is not required for Children and stays empty
	if n.Occasion != "" {
		t.Errorf("occasion = %q, want empty", n.Occasion)
	}

	// stored canonical form still matches an uppercase query
	if got, _ := models.ParseCategory("CHILDREN"); got != n.Category {
		t.Errorf("ParseCategory(CHILDREN) = %q, want %q", got, n.Category)
	}
}

func TestNormalizeStatus(t *testing.T) {
	in := validInput()
	in.Status = "out of stock"
	n, err := in.Normalize()
	if err != nil {
		t.Fatalf("Normalize error: %v", err)
	}
	if n.Status != models.StatusOutOfStock {
		t.Errorf("status = %q", n.Status)
	}

	in.Status = "discontinued"
	if _, err := in.Normalize(); err == nil {
		t.Error("want error for unknown status")
	}
}

func TestMetaKey(t *testing.T) {
	tests := []struct {
		dim   Dimension
		cat   models.Category
		child models.ChildCategory
		want  string
	}{
		{DimOccasion, models.CategoryMen, "", "occasion_men"},
		{DimType, models.CategoryWomen, "", "collectionType_women"},
		{DimType, models.CategoryChildren, models.ChildBoys, "collectionType_children_boys"},
		{DimType, models.CategoryChildren, models.ChildGirls, "collectionType_children_girls"},
	}
	for _, tt := range tests {
		if got := MetaKey(tt.dim, tt.cat, tt.child); got != tt.want {
			t.Errorf("MetaKey(%s, %s, %s) = %q, want %q", tt.dim, tt.cat, tt.child, got, tt.want)
		}
	}
}

func TestPrepareDuplicateProductID(t *testing.T) {
	ctx := context.Background()
	ownerID := bson.NewObjectID()
	store := &fakeOptionStore{productIDs: map[string]bson.ObjectID{"SH-1001": ownerID}}
	tax := NewTaxonomy(store)

	// create: the id belongs to an existing item
	if _, err := tax.Prepare(ctx, validInput(), bson.ObjectID{}); !errors.Is(err, ErrDuplicateProductID) {
		t.Fatalf("create with taken productId: err = %v, want ErrDuplicateProductID", err)
	}

	// edit of the owning item keeps its own productId
	n, err := tax.Prepare(ctx, validInput(), ownerID)
	if err != nil {
		t.Fatalf("self edit: %v", err)
	}
	if n.ProductID != "SH-1001" {
		t.Errorf("productId = %q", n.ProductID)
	}

	// edit of a different item cannot take it
	if _, err := tax.Prepare(ctx, validInput(), bson.NewObjectID()); !errors.Is(err, ErrDuplicateProductID) {
		t.Fatalf("edit stealing productId: err = %v, want ErrDuplicateProductID", err)
	}

	// an unused id passes
	in := validInput()
	in.ProductID = "SH-2002"
	if _, err := tax.Prepare(ctx, in, bson.ObjectID{}); err != nil {
		t.Fatalf("fresh productId: %v", err)
	}

	// a probe failure surfaces as-is, not as a conflict
	store.probeErr = errors.New("server selection timeout")
	if _, err := tax.Prepare(ctx, in, bson.ObjectID{}); err == nil || errors.Is(err, ErrDuplicateProductID) {
		t.Fatalf("probe failure: err = %v", err)
	}
}

func TestRegisterOptions(t *testing.T) {
	ctx := context.Background()
	store := &fakeOptionStore{}
	tax := NewTaxonomy(store)

	n, err := validInput().Normalize()
	if err != nil {
		t.Fatal(err)
	}
	tax.RegisterOptions(ctx, n)

	want := [][2]string{
		{"occasion_men", "Wedding"},
		{"collectionType_men", "Sherwani"},
	}
	if len(store.inserted) != len(want) {
		t.Fatalf("inserted %v, want %v", store.inserted, want)
	}
	for i, w := range want {
		if store.inserted[i] != w {
			t.Errorf("inserted[%d] = %v, want %v", i, store.inserted[i], w)
		}
	}

	// Children items have no occasion; only the type registers, child-scoped.
	store.inserted = nil
	in := validInput()
	in.Category = "children"
	in.ChildCategory = "girls"
	in.Occasion = ""
	n, err = in.Normalize()
	if err != nil {
		t.Fatal(err)
	}
	tax.RegisterOptions(ctx, n)
	if len(store.inserted) != 1 || store.inserted[0] != [2]string{"collectionType_children_girls", "Sherwani"} {
		t.Errorf("inserted = %v", store.inserted)
	}

	// store failures are logged, never propagated
	store.insertErr = errors.New("index build in progress")
	tax.RegisterOptions(ctx, n)
}

func TestNormalizeOption(t *testing.T) {
	k, v, ok := NormalizeOption("  occasion_men ", "sangeet")
	if !ok || k != "occasion_men" || v != "Sangeet" {
		t.Errorf("got %q %q %v", k, v, ok)
	}
	if _, _, ok := NormalizeOption("occasion_men", "   "); ok {
		t.Error("blank value accepted")
	}
	if _, _, ok := NormalizeOption("", "Sangeet"); ok {
		t.Error("blank key accepted")
	}
}

func TestCanonicalize(t *testing.T) {
	tests := []struct{ in, want string }{
		{"  wedding  ", "Wedding"},
		{"SANGEET", "Sangeet"},
		{"mehendi party", "Mehendi Party"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := Canonicalize(tt.in); got != tt.want {
			t.Errorf("Canonicalize(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
