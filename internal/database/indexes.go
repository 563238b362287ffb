package database

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// collectionKeys maps each collection to its entity id field.
var collectionKeys = map[string]string{
	"users":      "user_id",
	"categories": "category_id",
	"journals":   "journal_id",
}

// EnsureIndexes creates a unique index on each collection's id field.
// The stores reject duplicate ids themselves; the index backs that check
// against races between concurrent creates.
func EnsureIndexes(ctx context.Context) error {
	for collection, key := range collectionKeys {
		_, err := DB.Collection(collection).Indexes().CreateOne(ctx, mongo.IndexModel{
			Keys:    bson.D{{Key: key, Value: 1}},
			Options: options.Index().SetUnique(true),
		})
		if err != nil {
			return err
		}
	}
	return nil
}
