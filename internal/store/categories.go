package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/easejournal/ease-journal-backend/internal/database"
	"github.com/easejournal/ease-journal-backend/internal/models"
)

const (
	CategoriesCollection = "categories"

	// TimestampFormat is the layout for created/modified timestamps.
	TimestampFormat = "2006-01-02 15:04:05"
)

// CategoryStore owns category records, including the denormalized journals
// map. The owner user id is not validated here; the API layer checks it
// before calling Add.
type CategoryStore struct {
	gw database.Gateway
}

func NewCategoryStore(gw database.Gateway) *CategoryStore {
	return &CategoryStore{gw: gw}
}

// Add creates a category with an empty journals map and a created timestamp.
// Titles must be non-empty and unique case-insensitively across all categories.
func (s *CategoryStore) Add(ctx context.Context, categoryID, title, userID string) error {
	exists, err := s.Exists(ctx, categoryID)
	if err != nil {
		return err
	}
	if exists {
		return fmt.Errorf("%w: category %s", ErrDuplicateKey, categoryID)
	}
	if title == "" {
		return fmt.Errorf("%w: please input a title", ErrInvalidArgument)
	}
	all, err := s.GetAll(ctx)
	if err != nil {
		return err
	}
	for _, c := range all {
		if strings.EqualFold(c.Title, title) {
			return fmt.Errorf("%w: duplicate title %q", ErrDuplicateValue, title)
		}
	}

	return s.gw.InsertOne(ctx, CategoriesCollection, models.Category{
		CategoryID: categoryID,
		Title:      title,
		User:       userID,
		Created:    time.Now().Format(TimestampFormat),
		Journals:   map[string]string{},
	})
}

// Get fetches a category by id. Returns ErrNotFound when absent.
func (s *CategoryStore) Get(ctx context.Context, categoryID string) (*models.Category, error) {
	var category models.Category
	err := s.gw.FetchOne(ctx, CategoriesCollection, bson.M{"category_id": categoryID}, &category)
	if errors.Is(err, database.ErrNoDocument) {
		return nil, fmt.Errorf("%w: category %s", ErrNotFound, categoryID)
	}
	if err != nil {
		return nil, err
	}
	return &category, nil
}

func (s *CategoryStore) Exists(ctx context.Context, categoryID string) (bool, error) {
	_, err := s.Get(ctx, categoryID)
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (s *CategoryStore) GetAll(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category
	if err := s.gw.FetchAll(ctx, CategoriesCollection, bson.M{}, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

// GetByUser returns the categories owned by userID.
func (s *CategoryStore) GetByUser(ctx context.Context, userID string) ([]models.Category, error) {
	var categories []models.Category
	if err := s.gw.FetchAll(ctx, CategoriesCollection, bson.M{"user": userID}, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

// Delete removes a category by id. Journals filed under it are not touched;
// they keep pointing at the deleted id.
func (s *CategoryStore) Delete(ctx context.Context, categoryID string) error {
	exists, err := s.Exists(ctx, categoryID)
	if err != nil {
		return err
	}
	if !exists {
		return fmt.Errorf("%w: delete failure: category %s", ErrNotFound, categoryID)
	}
	return s.gw.DeleteOne(ctx, CategoriesCollection, bson.M{"category_id": categoryID})
}

// Update accepts only title and journals. An empty title is ignored and the
// existing one retained; journals replaces the map wholesale and may be empty.
// Unrecognized keys are silently ignored. The id, owner and created timestamp
// are immutable.
func (s *CategoryStore) Update(ctx context.Context, categoryID string, fields map[string]interface{}) error {
	exists, err := s.Exists(ctx, categoryID)
	if err != nil {
		return err
	}
	if !exists {
		return fmt.Errorf("%w: update failure: category %s", ErrNotFound, categoryID)
	}
	if len(fields) == 0 {
		return fmt.Errorf("%w: no fields to update", ErrInvalidArgument)
	}

	update := bson.M{}
	if raw, ok := fields["title"]; ok {
		title, ok := raw.(string)
		if !ok {
			return fmt.Errorf("%w: title must be a string", ErrTypeMismatch)
		}
		if len(title) != 0 {
			update["title"] = title
		}
	}
	if raw, ok := fields["journals"]; ok {
		journals, err := asJournalsMap(raw)
		if err != nil {
			return err
		}
		update["journals"] = journals
	}
	if len(update) == 0 {
		return nil
	}
	return s.gw.UpdateOne(ctx, CategoriesCollection, bson.M{"category_id": categoryID}, update)
}

// asJournalsMap accepts the typed map used internally and the generic map
// produced by JSON decoding.
func asJournalsMap(raw interface{}) (map[string]string, error) {
	switch m := raw.(type) {
	case map[string]string:
		return m, nil
	case map[string]interface{}:
		journals := make(map[string]string, len(m))
		for id, title := range m {
			s, ok := title.(string)
			if !ok {
				return nil, fmt.Errorf("%w: journal title for %s must be a string", ErrTypeMismatch, id)
			}
			journals[id] = s
		}
		return journals, nil
	default:
		return nil, fmt.Errorf("%w: journals must be a map of journal id to title", ErrTypeMismatch)
	}
}
