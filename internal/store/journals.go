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
	JournalsCollection = "journals"

	// DefaultTitle is applied when a journal is created with an empty title.
	DefaultTitle = "Untitled"

	MaxPromptLen = 255
)

// JournalStore owns journal records. Every mutation that changes which
// category a journal belongs to, or what its title is, also rewrites the
// owning category's journals map so the reverse index never goes stale.
// The journal write and the category write are two sequential documents
// updates, not a transaction; a crash between them leaves the index behind
// by one entry until the journal is mutated again.
type JournalStore struct {
	gw         database.Gateway
	categories *CategoryStore
}

func NewJournalStore(gw database.Gateway, categories *CategoryStore) *JournalStore {
	return &JournalStore{gw: gw, categories: categories}
}

// Add creates a journal and files it under categoryID. Prompts are capped at
// MaxPromptLen and must be unique case-insensitively across all journals.
// An empty title defaults to DefaultTitle. The category must exist; the API
// layer checks that before calling, and the reverse-index write fails with
// ErrNotFound if it does not.
func (s *JournalStore) Add(ctx context.Context, journalID, title, prompt, content, userID, categoryID string) error {
	exists, err := s.Exists(ctx, journalID)
	if err != nil {
		return err
	}
	if exists {
		return fmt.Errorf("%w: journal %s", ErrDuplicateKey, journalID)
	}
	if len(prompt) > MaxPromptLen {
		return fmt.Errorf("%w: prompt must be at most %d characters", ErrInvalidArgument, MaxPromptLen)
	}
	all, err := s.GetAll(ctx)
	if err != nil {
		return err
	}
	for _, j := range all {
		if strings.EqualFold(j.Prompt, prompt) {
			return fmt.Errorf("%w: duplicate prompt %q", ErrDuplicateValue, prompt)
		}
	}
	if title == "" {
		title = DefaultTitle
	}

	now := time.Now().Format(TimestampFormat)
	err = s.gw.InsertOne(ctx, JournalsCollection, models.Journal{
		JournalID: journalID,
		Timestamp: now,
		Title:     title,
		Prompt:    prompt,
		Content:   content,
		Modified:  now,
		User:      userID,
		Category:  categoryID,
	})
	if err != nil {
		return err
	}

	// Reverse index: file the new journal under its category.
	category, err := s.categories.Get(ctx, categoryID)
	if err != nil {
		return err
	}
	journals := category.Journals
	if journals == nil {
		journals = map[string]string{}
	}
	journals[journalID] = title
	return s.categories.Update(ctx, categoryID, map[string]interface{}{"journals": journals})
}

// Get fetches a journal by id. Returns ErrNotFound when absent.
func (s *JournalStore) Get(ctx context.Context, journalID string) (*models.Journal, error) {
	var journal models.Journal
	err := s.gw.FetchOne(ctx, JournalsCollection, bson.M{"journal_id": journalID}, &journal)
	if errors.Is(err, database.ErrNoDocument) {
		return nil, fmt.Errorf("%w: journal %s", ErrNotFound, journalID)
	}
	if err != nil {
		return nil, err
	}
	return &journal, nil
}

func (s *JournalStore) Exists(ctx context.Context, journalID string) (bool, error) {
	_, err := s.Get(ctx, journalID)
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (s *JournalStore) GetAll(ctx context.Context) ([]models.Journal, error) {
	var journals []models.Journal
	if err := s.gw.FetchAll(ctx, JournalsCollection, bson.M{}, &journals); err != nil {
		return nil, err
	}
	return journals, nil
}

func (s *JournalStore) GetByUser(ctx context.Context, userID string) ([]models.Journal, error) {
	var journals []models.Journal
	if err := s.gw.FetchAll(ctx, JournalsCollection, bson.M{"user": userID}, &journals); err != nil {
		return nil, err
	}
	return journals, nil
}

func (s *JournalStore) GetByCategory(ctx context.Context, categoryID string) ([]models.Journal, error) {
	var journals []models.Journal
	if err := s.gw.FetchAll(ctx, JournalsCollection, bson.M{"category": categoryID}, &journals); err != nil {
		return nil, err
	}
	return journals, nil
}

// Delete removes a journal by id, unfiling it from its owning category first.
// A journal whose category was already deleted is still removable.
func (s *JournalStore) Delete(ctx context.Context, journalID string) error {
	journal, err := s.Get(ctx, journalID)
	if err != nil {
		return fmt.Errorf("delete failure: %w", err)
	}

	if category, err := s.categories.Get(ctx, journal.Category); err == nil {
		if _, ok := category.Journals[journalID]; ok {
			delete(category.Journals, journalID)
			if err := s.categories.Update(ctx, journal.Category, map[string]interface{}{"journals": category.Journals}); err != nil {
				return err
			}
		}
	}

	return s.gw.DeleteOne(ctx, JournalsCollection, bson.M{"journal_id": journalID})
}

// Update replaces the supplied fields among title, prompt, content and
// category; empty values are ignored. Moving a journal to another category
// requires the target to exist and rewrites both categories' journals maps.
// A title change rewrites the owning category's map entry. The modified
// timestamp is refreshed on every successful update regardless of which
// fields changed.
func (s *JournalStore) Update(ctx context.Context, journalID string, fields map[string]interface{}) error {
	journal, err := s.Get(ctx, journalID)
	if err != nil {
		return fmt.Errorf("update failure: %w", err)
	}
	if len(fields) == 0 {
		return fmt.Errorf("%w: no fields to update", ErrInvalidArgument)
	}

	update := bson.M{}
	newTitle := journal.Title
	titleChanged := false
	if raw, ok := fields["title"]; ok {
		title, ok := raw.(string)
		if !ok {
			return fmt.Errorf("%w: title must be a string", ErrTypeMismatch)
		}
		if title != "" && title != journal.Title {
			newTitle = title
			titleChanged = true
			update["title"] = title
		}
	}
	if raw, ok := fields["prompt"]; ok {
		prompt, ok := raw.(string)
		if !ok {
			return fmt.Errorf("%w: prompt must be a string", ErrTypeMismatch)
		}
		if prompt != "" {
			if len(prompt) > MaxPromptLen {
				return fmt.Errorf("%w: prompt must be at most %d characters", ErrInvalidArgument, MaxPromptLen)
			}
			update["prompt"] = prompt
		}
	}
	if raw, ok := fields["content"]; ok {
		content, ok := raw.(string)
		if !ok {
			return fmt.Errorf("%w: content must be a string", ErrTypeMismatch)
		}
		if content != "" {
			update["content"] = content
		}
	}
	newCategory := journal.Category
	categoryChanged := false
	if raw, ok := fields["category"]; ok {
		category, ok := raw.(string)
		if !ok {
			return fmt.Errorf("%w: category must be a string", ErrTypeMismatch)
		}
		if category != "" && category != journal.Category {
			exists, err := s.categories.Exists(ctx, category)
			if err != nil {
				return err
			}
			if !exists {
				return fmt.Errorf("%w: category %s does not exist", ErrInvalidArgument, category)
			}
			newCategory = category
			categoryChanged = true
			update["category"] = category
		}
	}

	update["modified"] = time.Now().Format(TimestampFormat)
	if err := s.gw.UpdateOne(ctx, JournalsCollection, bson.M{"journal_id": journalID}, update); err != nil {
		return err
	}

	if categoryChanged {
		// Unfile from the previous category, then file under the new one
		// with the journal's current title.
		if old, err := s.categories.Get(ctx, journal.Category); err == nil {
			if _, ok := old.Journals[journalID]; ok {
				delete(old.Journals, journalID)
				if err := s.categories.Update(ctx, journal.Category, map[string]interface{}{"journals": old.Journals}); err != nil {
					return err
				}
			}
		}
		target, err := s.categories.Get(ctx, newCategory)
		if err != nil {
			return err
		}
		journals := target.Journals
		if journals == nil {
			journals = map[string]string{}
		}
		journals[journalID] = newTitle
		return s.categories.Update(ctx, newCategory, map[string]interface{}{"journals": journals})
	}
	if titleChanged {
		if category, err := s.categories.Get(ctx, journal.Category); err == nil {
			if _, ok := category.Journals[journalID]; ok {
				category.Journals[journalID] = newTitle
				return s.categories.Update(ctx, journal.Category, map[string]interface{}{"journals": category.Journals})
			}
		}
	}
	return nil
}
