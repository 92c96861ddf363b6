package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const collectionSequences = "sequences"

// SequenceAllocator hands out monotonically increasing integer ids per
// named sequence, backed by an atomic $inc on a counters collection. Ids
// therefore stay integers across instances, which the token subject claim
// relies on.
type SequenceAllocator struct {
	col *mongo.Collection
}

func NewSequenceAllocator(db *mongo.Database) *SequenceAllocator {
	return &SequenceAllocator{col: db.Collection(collectionSequences)}
}

// Next returns the next value of the named sequence, starting at 1.
func (a *SequenceAllocator) Next(ctx context.Context, name string) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc struct {
		Value int64 `bson:"value"`
	}
	err := a.col.FindOneAndUpdate(ctx,
		bson.M{"_id": name},
		bson.M{"$inc": bson.M{"value": int64(1)}},
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After),
	).Decode(&doc)
	if err != nil {
		return 0, fmt.Errorf("sequence %s: %w", name, err)
	}
	return doc.Value, nil
}
