package database

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

type record struct {
	ID    string            `bson:"id"`
	Name  string            `bson:"name"`
	Tags  map[string]string `bson:"tags"`
	Owner string            `bson:"owner"`
}

func TestMemoryGatewayRoundTrip(t *testing.T) {
	gw := NewMemoryGateway()
	ctx := context.Background()

	require.NoError(t, gw.InsertOne(ctx, "records", record{ID: "1", Name: "first", Tags: map[string]string{"a": "b"}, Owner: "u1"}))
	require.NoError(t, gw.InsertOne(ctx, "records", record{ID: "2", Name: "second", Owner: "u2"}))

	var got record
	require.NoError(t, gw.FetchOne(ctx, "records", bson.M{"id": "1"}, &got))
	assert.Equal(t, "first", got.Name)
	assert.Equal(t, map[string]string{"a": "b"}, got.Tags)

	err := gw.FetchOne(ctx, "records", bson.M{"id": "3"}, &got)
	assert.ErrorIs(t, err, ErrNoDocument)
}

func TestMemoryGatewayFetchAllFilters(t *testing.T) {
	gw := NewMemoryGateway()
	ctx := context.Background()

	require.NoError(t, gw.InsertOne(ctx, "records", record{ID: "1", Owner: "u1"}))
	require.NoError(t, gw.InsertOne(ctx, "records", record{ID: "2", Owner: "u2"}))
	require.NoError(t, gw.InsertOne(ctx, "records", record{ID: "3", Owner: "u1"}))

	var all []record
	require.NoError(t, gw.FetchAll(ctx, "records", bson.M{}, &all))
	assert.Len(t, all, 3)

	var owned []record
	require.NoError(t, gw.FetchAll(ctx, "records", bson.M{"owner": "u1"}, &owned))
	assert.Len(t, owned, 2)
}

func TestMemoryGatewayUpdateAndDelete(t *testing.T) {
	gw := NewMemoryGateway()
	ctx := context.Background()

	require.NoError(t, gw.InsertOne(ctx, "records", record{ID: "1", Name: "before"}))

	require.NoError(t, gw.UpdateOne(ctx, "records", bson.M{"id": "1"}, bson.M{"name": "after", "tags": map[string]string{"k": "v"}}))
	var got record
	require.NoError(t, gw.FetchOne(ctx, "records", bson.M{"id": "1"}, &got))
	assert.Equal(t, "after", got.Name)
	assert.Equal(t, map[string]string{"k": "v"}, got.Tags)

	err := gw.UpdateOne(ctx, "records", bson.M{"id": "9"}, bson.M{"name": "x"})
	assert.ErrorIs(t, err, ErrNoDocument)

	require.NoError(t, gw.DeleteOne(ctx, "records", bson.M{"id": "1"}))
	err = gw.FetchOne(ctx, "records", bson.M{"id": "1"}, &got)
	assert.ErrorIs(t, err, ErrNoDocument)

	err = gw.DeleteOne(ctx, "records", bson.M{"id": "1"})
	assert.ErrorIs(t, err, ErrNoDocument)
}
