package catalog

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/shaadicloset/shaadibackend/models"
	"github.com/shaadicloset/shaadibackend/utils"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// Store is the thin record layer over the products and metaoptions
// collections. No business rules live here — shape mapping and error
// translation only.
type Store struct {
	items   *mongo.Collection
	options *mongo.Collection
}

func NewStore(db *mongo.Database) *Store {
	return &Store{
		items:   db.Collection("products"),
		options: db.Collection("metaoptions"),
	}
}

func (s *Store) CreateItem(ctx context.Context, item *models.CatalogItem) error {
	item.Id = bson.NewObjectID()
	now := time.Now().UTC()
	item.CreatedAt = now
	item.UpdatedAt = now

	if _, err := s.items.InsertOne(ctx, item); err != nil {
		if utils.IsDuplicateKey(err) {
			return ErrDuplicateProductID
		}
		return err
	}
	return nil
}

func (s *Store) UpdateItem(ctx context.Context, id bson.ObjectID, set bson.M) error {
	set["updatedAt"] = time.Now().UTC()
	res, err := s.items.UpdateByID(ctx, id, bson.M{"$set": set})
	if err != nil {
		if utils.IsDuplicateKey(err) {
			return ErrDuplicateProductID
		}
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteItem removes the item and returns its last persisted state so the
// caller can clean up its assets.
func (s *Store) DeleteItem(ctx context.Context, id bson.ObjectID) (*models.CatalogItem, error) {
	var item models.CatalogItem
	err := s.items.FindOneAndDelete(ctx, bson.M{"_id": id}).Decode(&item)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &item, nil
}

func (s *Store) FindItem(ctx context.Context, id bson.ObjectID) (*models.CatalogItem, error) {
	var item models.CatalogItem
	if err := s.items.FindOne(ctx, bson.M{"_id": id}).Decode(&item); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &item, nil
}

// FindItems returns matching items newest-first — the natural browse order
// the filter engine preserves.
func (s *Store) FindItems(ctx context.Context, filter bson.M, skip, limit int64) ([]models.CatalogItem, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	if skip > 0 {
		opts = opts.SetSkip(skip)
	}
	if limit > 0 {
		opts = opts.SetLimit(limit)
	}

	cursor, err := s.items.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	items := make([]models.CatalogItem, 0)
	for cursor.Next(ctx) {
		var it models.CatalogItem
		if err := cursor.Decode(&it); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, cursor.Err()
}

func (s *Store) CountItems(ctx context.Context, filter bson.M) (int64, error) {
	return s.items.CountDocuments(ctx, filter)
}

// ProductIDInUse reports whether another item already holds productID.
// exclude skips the item being edited; pass the zero ObjectID on create.
func (s *Store) ProductIDInUse(ctx context.Context, productID string, exclude bson.ObjectID) (bool, error) {
	filter := bson.M{"productId": productID}
	if !exclude.IsZero() {
		filter["_id"] = bson.M{"$ne": exclude}
	}
	n, err := s.items.CountDocuments(ctx, filter)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// InsertOption adds one (key, value) MetaOption. A duplicate insert is a
// no-op, not an error — the compound unique index is the idempotence
// mechanism.
func (s *Store) InsertOption(ctx context.Context, key, value string) error {
	_, err := s.options.InsertOne(ctx, models.MetaOption{Key: key, Value: value})
	if err != nil && !utils.IsDuplicateKey(err) {
		return err
	}
	return nil
}

// Options lists the stored options for a key, or all keys when key is empty,
// sorted by key then value.
func (s *Store) Options(ctx context.Context, key string) ([]models.MetaOption, error) {
	filter := bson.M{}
	if key != "" {
		filter["key"] = key
	}
	opts := options.Find().SetSort(bson.D{{Key: "key", Value: 1}, {Key: "value", Value: 1}})

	cursor, err := s.options.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	out := make([]models.MetaOption, 0)
	for cursor.Next(ctx) {
		var o models.MetaOption
		if err := cursor.Decode(&o); err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, cursor.Err()
}

// OptionValues returns the distinct values stored under key, ascending.
func (s *Store) OptionValues(ctx context.Context, key string) ([]string, error) {
	res := s.options.Distinct(ctx, "value", bson.M{"key": key})
	if res.Err() != nil {
		return nil, res.Err()
	}
	var values []string
	if err := res.Decode(&values); err != nil {
		return nil, err
	}
	sort.Strings(values)
	return values, nil
}

func (s *Store) DeleteOption(ctx context.Context, id bson.ObjectID) error {
	res, err := s.options.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
