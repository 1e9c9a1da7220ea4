package models

import "go.mongodb.org/mongo-driver/v2/bson"

// MetaOption is one allowed taxonomy value for one dimension, e.g.
// {key: "occasion_men", value: "Sangeet"}. The (key, value) pair is unique
// (compound index); duplicate inserts are treated as no-ops by callers.
type MetaOption struct {
	Id    bson.ObjectID `bson:"_id,omitempty" json:"id"`
	Key   string        `bson:"key" json:"key"`
	Value string        `bson:"value" json:"value"`
}
