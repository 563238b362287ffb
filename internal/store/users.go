package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/easejournal/ease-journal-backend/internal/database"
	"github.com/easejournal/ease-journal-backend/internal/models"
)

const (
	UsersCollection = "users"

	MinNameLen     = 2
	MinEmailLen    = 8
	MinPasswordLen = 8

	// DOBFormat is the layout for dates of birth.
	DOBFormat = "2006-01-02"
)

// UserStore owns user records. Deleting a user does not cascade to its
// categories or journals; orphaned references are a known gap.
type UserStore struct {
	gw database.Gateway
}

func NewUserStore(gw database.Gateway) *UserStore {
	return &UserStore{gw: gw}
}

// Add creates a user. The caller supplies the id (see NewUserID); a wrong-width
// id is rejected with ErrInvalidArgument and an existing one with ErrDuplicateKey.
// The dob is normalized by parsing and re-formatting as YYYY-MM-DD.
func (s *UserStore) Add(ctx context.Context, userID, firstName, lastName, dob, email, password string) error {
	if len(userID) != UserIDLen {
		return fmt.Errorf("%w: user id must be %d characters", ErrInvalidArgument, UserIDLen)
	}
	exists, err := s.Exists(ctx, userID)
	if err != nil {
		return err
	}
	if exists {
		return fmt.Errorf("%w: user %s", ErrDuplicateKey, userID)
	}
	if err := validateName("first_name", firstName); err != nil {
		return err
	}
	if err := validateName("last_name", lastName); err != nil {
		return err
	}
	normalized, err := normalizeDOB(dob)
	if err != nil {
		return err
	}
	if err := validateEmail(email); err != nil {
		return err
	}
	if err := validatePassword(password); err != nil {
		return err
	}

	return s.gw.InsertOne(ctx, UsersCollection, models.User{
		UserID:    userID,
		FirstName: firstName,
		LastName:  lastName,
		DOB:       normalized,
		Email:     email,
		Password:  password,
	})
}

// Get fetches a user by id. Returns ErrNotFound when absent.
func (s *UserStore) Get(ctx context.Context, userID string) (*models.User, error) {
	var user models.User
	err := s.gw.FetchOne(ctx, UsersCollection, bson.M{"user_id": userID}, &user)
	if errors.Is(err, database.ErrNoDocument) {
		return nil, fmt.Errorf("%w: user %s", ErrNotFound, userID)
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetByEmail fetches a user by email. Returns ErrNotFound when absent.
func (s *UserStore) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := s.gw.FetchOne(ctx, UsersCollection, bson.M{"email": email}, &user)
	if errors.Is(err, database.ErrNoDocument) {
		return nil, fmt.Errorf("%w: user with email %s", ErrNotFound, email)
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *UserStore) Exists(ctx context.Context, userID string) (bool, error) {
	_, err := s.Get(ctx, userID)
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (s *UserStore) GetAll(ctx context.Context) ([]models.User, error) {
	var users []models.User
	if err := s.gw.FetchAll(ctx, UsersCollection, bson.M{}, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// Delete removes a user by id. Returns ErrNotFound when absent.
func (s *UserStore) Delete(ctx context.Context, userID string) error {
	exists, err := s.Exists(ctx, userID)
	if err != nil {
		return err
	}
	if !exists {
		return fmt.Errorf("%w: delete failure: user %s", ErrNotFound, userID)
	}
	return s.gw.DeleteOne(ctx, UsersCollection, bson.M{"user_id": userID})
}

// Update replaces the supplied fields among first_name, last_name, dob, email
// and password. Unrecognized keys are ignored; supplied fields are re-validated
// with the same rules as Add.
func (s *UserStore) Update(ctx context.Context, userID string, fields map[string]interface{}) error {
	exists, err := s.Exists(ctx, userID)
	if err != nil {
		return err
	}
	if !exists {
		return fmt.Errorf("%w: update failure: user %s", ErrNotFound, userID)
	}
	if len(fields) == 0 {
		return fmt.Errorf("%w: no fields to update", ErrInvalidArgument)
	}

	update := bson.M{}
	for _, key := range []string{"first_name", "last_name", "dob", "email", "password"} {
		raw, ok := fields[key]
		if !ok {
			continue
		}
		value, ok := raw.(string)
		if !ok {
			return fmt.Errorf("%w: %s must be a string", ErrTypeMismatch, key)
		}
		switch key {
		case "first_name", "last_name":
			if err := validateName(key, value); err != nil {
				return err
			}
		case "dob":
			if value, err = normalizeDOB(value); err != nil {
				return err
			}
		case "email":
			if err := validateEmail(value); err != nil {
				return err
			}
		case "password":
			if err := validatePassword(value); err != nil {
				return err
			}
		}
		update[key] = value
	}
	if len(update) == 0 {
		return nil
	}
	return s.gw.UpdateOne(ctx, UsersCollection, bson.M{"user_id": userID}, update)
}

func validateName(field, name string) error {
	if len(name) < MinNameLen {
		return fmt.Errorf("%w: %s must be at least %d characters", ErrInvalidArgument, field, MinNameLen)
	}
	return nil
}

// validateEmail requires a minimum length and an '@' with a '.' somewhere
// after it. This is a shape check, not RFC 5322 parsing.
func validateEmail(email string) error {
	if len(email) < MinEmailLen {
		return fmt.Errorf("%w: email must be at least %d characters", ErrInvalidArgument, MinEmailLen)
	}
	at := strings.Index(email, "@")
	if at < 0 {
		return fmt.Errorf("%w: email is missing '@'", ErrInvalidArgument)
	}
	if !strings.Contains(email[at+1:], ".") {
		return fmt.Errorf("%w: email is missing '.' after '@'", ErrInvalidArgument)
	}
	return nil
}

func validatePassword(password string) error {
	if len(password) < MinPasswordLen {
		return fmt.Errorf("%w: password must be at least %d characters", ErrInvalidArgument, MinPasswordLen)
	}
	if !strings.ContainsFunc(password, unicode.IsDigit) {
		return fmt.Errorf("%w: password must contain at least one digit", ErrInvalidArgument)
	}
	return nil
}

func normalizeDOB(dob string) (string, error) {
	t, err := time.Parse(DOBFormat, strings.TrimSpace(dob))
	if err != nil {
		return "", fmt.Errorf("%w: dob must be in YYYY-MM-DD format", ErrInvalidArgument)
	}
	return t.Format(DOBFormat), nil
}
