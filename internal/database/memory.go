package database

import (
	"context"
	"fmt"
	"reflect"
	"sync"

	"go.mongodb.org/mongo-driver/bson"
)

// MemoryGateway is an in-process Gateway implementation used by tests.
// Documents are round-tripped through bson so the same struct tags drive
// both this and the Mongo implementation. Filters are matched by equality.
type MemoryGateway struct {
	mu    sync.RWMutex
	colls map[string][]bson.M
}

func NewMemoryGateway() *MemoryGateway {
	return &MemoryGateway{colls: make(map[string][]bson.M)}
}

func (g *MemoryGateway) FetchOne(ctx context.Context, collection string, filter bson.M, dest interface{}) error {
	g.mu.RLock()
	defer g.mu.RUnlock()
	for _, doc := range g.colls[collection] {
		if matches(doc, filter) {
			return decodeDoc(doc, dest)
		}
	}
	return ErrNoDocument
}

func (g *MemoryGateway) FetchAll(ctx context.Context, collection string, filter bson.M, dest interface{}) error {
	g.mu.RLock()
	defer g.mu.RUnlock()
	v := reflect.ValueOf(dest)
	if v.Kind() != reflect.Ptr || v.Elem().Kind() != reflect.Slice {
		return fmt.Errorf("dest must be a pointer to a slice, got %T", dest)
	}
	slice := v.Elem()
	elemType := slice.Type().Elem()
	for _, doc := range g.colls[collection] {
		if !matches(doc, filter) {
			continue
		}
		elem := reflect.New(elemType)
		if err := decodeDoc(doc, elem.Interface()); err != nil {
			return err
		}
		slice = reflect.Append(slice, elem.Elem())
	}
	v.Elem().Set(slice)
	return nil
}

func (g *MemoryGateway) InsertOne(ctx context.Context, collection string, doc interface{}) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	raw, err := bson.Marshal(doc)
	if err != nil {
		return err
	}
	var m bson.M
	if err := bson.Unmarshal(raw, &m); err != nil {
		return err
	}
	g.colls[collection] = append(g.colls[collection], m)
	return nil
}

func (g *MemoryGateway) UpdateOne(ctx context.Context, collection string, filter bson.M, fields bson.M) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	for _, doc := range g.colls[collection] {
		if matches(doc, filter) {
			for k, val := range fields {
				doc[k] = val
			}
			return nil
		}
	}
	return ErrNoDocument
}

func (g *MemoryGateway) DeleteOne(ctx context.Context, collection string, filter bson.M) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	docs := g.colls[collection]
	for i, doc := range docs {
		if matches(doc, filter) {
			g.colls[collection] = append(docs[:i:i], docs[i+1:]...)
			return nil
		}
	}
	return ErrNoDocument
}

// matches reports whether every filter field equals the document's field.
// Stores only issue equality filters.
func matches(doc bson.M, filter bson.M) bool {
	for k, want := range filter {
		got, ok := doc[k]
		if !ok || !reflect.DeepEqual(got, want) {
			return false
		}
	}
	return true
}

func decodeDoc(m bson.M, dest interface{}) error {
	raw, err := bson.Marshal(m)
	if err != nil {
		return err
	}
	return bson.Unmarshal(raw, dest)
}
