package database

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// ErrNoDocument is returned when an operation targets a document that does not exist.
var ErrNoDocument = errors.New("no matching document")

// Gateway is the document-store interface the stores are built against.
// Production code uses the Mongo-backed implementation; tests inject MemoryGateway.
// dest is a pointer to a record struct (FetchOne) or a pointer to a slice of
// record structs (FetchAll).
type Gateway interface {
	FetchOne(ctx context.Context, collection string, filter bson.M, dest interface{}) error
	FetchAll(ctx context.Context, collection string, filter bson.M, dest interface{}) error
	InsertOne(ctx context.Context, collection string, doc interface{}) error
	UpdateOne(ctx context.Context, collection string, filter bson.M, fields bson.M) error
	DeleteOne(ctx context.Context, collection string, filter bson.M) error
}

// MongoGateway implements Gateway on top of a mongo database.
type MongoGateway struct {
	db *mongo.Database
}

func NewMongoGateway(db *mongo.Database) *MongoGateway {
	return &MongoGateway{db: db}
}

func (g *MongoGateway) FetchOne(ctx context.Context, collection string, filter bson.M, dest interface{}) error {
	err := g.db.Collection(collection).FindOne(ctx, filter).Decode(dest)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return ErrNoDocument
	}
	return err
}

func (g *MongoGateway) FetchAll(ctx context.Context, collection string, filter bson.M, dest interface{}) error {
	cursor, err := g.db.Collection(collection).Find(ctx, filter)
	if err != nil {
		return err
	}
	defer cursor.Close(ctx)
	return cursor.All(ctx, dest)
}

func (g *MongoGateway) InsertOne(ctx context.Context, collection string, doc interface{}) error {
	_, err := g.db.Collection(collection).InsertOne(ctx, doc)
	return err
}

func (g *MongoGateway) UpdateOne(ctx context.Context, collection string, filter bson.M, fields bson.M) error {
	res, err := g.db.Collection(collection).UpdateOne(ctx, filter, bson.M{"$set": fields})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNoDocument
	}
	return nil
}

func (g *MongoGateway) DeleteOne(ctx context.Context, collection string, filter bson.M) error {
	res, err := g.db.Collection(collection).DeleteOne(ctx, filter)
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNoDocument
	}
	return nil
}
