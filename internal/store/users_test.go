package store

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/easejournal/ease-journal-backend/internal/database"
)

const testUserID = "1111111111"

func newUserStore() *UserStore {
	return NewUserStore(database.NewMemoryGateway())
}

func addTestUser(t *testing.T, s *UserStore) {
	t.Helper()
	err := s.Add(context.Background(), testUserID, "John", "Smith", "2002-11-20", "john@x.com", "Password1")
	require.NoError(t, err)
}

func TestUserAddAndGet(t *testing.T) {
	s := newUserStore()
	ctx := context.Background()

	addTestUser(t, s)

	exists, err := s.Exists(ctx, testUserID)
	require.NoError(t, err)
	assert.True(t, exists)

	user, err := s.Get(ctx, testUserID)
	require.NoError(t, err)
	assert.Equal(t, "John", user.FirstName)
	assert.Equal(t, "Smith", user.LastName)
	assert.Equal(t, "2002-11-20", user.DOB)
	assert.Equal(t, "john@x.com", user.Email)
}

func TestUserAddDuplicateID(t *testing.T) {
	s := newUserStore()

	addTestUser(t, s)

	err := s.Add(context.Background(), testUserID, "Jane", "Doe", "1999-01-02", "jane@x.com", "Password1")
	assert.ErrorIs(t, err, ErrDuplicateKey)
}

func TestUserAddValidation(t *testing.T) {
	tests := []struct {
		name      string
		userID    string
		firstName string
		lastName  string
		dob       string
		email     string
		password  string
		wantErr   error
	}{
		{"id too short", "123", "John", "Smith", "2002-11-20", "john@x.com", "Password1", ErrInvalidArgument},
		{"first name too short", testUserID, "J", "Smith", "2002-11-20", "john@x.com", "Password1", ErrInvalidArgument},
		{"last name too short", testUserID, "John", "S", "2002-11-20", "john@x.com", "Password1", ErrInvalidArgument},
		{"dob not a date", testUserID, "John", "Smith", "yesterday", "john@x.com", "Password1", ErrInvalidArgument},
		{"dob wrong layout", testUserID, "John", "Smith", "20/11/2002", "john@x.com", "Password1", ErrInvalidArgument},
		{"email missing @", testUserID, "John", "Smith", "2002-11-20", "john.x.com", "Password1", ErrInvalidArgument},
		{"email missing . after @", testUserID, "John", "Smith", "2002-11-20", "john.smith@xcom", "Password1", ErrInvalidArgument},
		{"email too short", testUserID, "John", "Smith", "2002-11-20", "j@x.c", "Password1", ErrInvalidArgument},
		{"password too short", testUserID, "John", "Smith", "2002-11-20", "john@x.com", "Pass1", ErrInvalidArgument},
		{"password without digit", testUserID, "John", "Smith", "2002-11-20", "john@x.com", "Passwords", ErrInvalidArgument},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newUserStore()
			err := s.Add(context.Background(), tt.userID, tt.firstName, tt.lastName, tt.dob, tt.email, tt.password)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestUserGetByEmail(t *testing.T) {
	s := newUserStore()
	ctx := context.Background()

	addTestUser(t, s)

	user, err := s.GetByEmail(ctx, "john@x.com")
	require.NoError(t, err)
	assert.Equal(t, testUserID, user.UserID)

	_, err = s.GetByEmail(ctx, "nobody@x.com")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUserUpdate(t *testing.T) {
	s := newUserStore()
	ctx := context.Background()

	addTestUser(t, s)

	err := s.Update(ctx, testUserID, map[string]interface{}{"email": "john.smith@y.org", "last_name": "Smithson"})
	require.NoError(t, err)

	user, err := s.Get(ctx, testUserID)
	require.NoError(t, err)
	assert.Equal(t, "john.smith@y.org", user.Email)
	assert.Equal(t, "Smithson", user.LastName)
	assert.Equal(t, "John", user.FirstName)
}

func TestUserUpdateErrors(t *testing.T) {
	s := newUserStore()
	ctx := context.Background()

	addTestUser(t, s)

	err := s.Update(ctx, "0000000000", map[string]interface{}{"email": "a@b.cdef"})
	assert.ErrorIs(t, err, ErrNotFound)

	err = s.Update(ctx, testUserID, map[string]interface{}{})
	assert.ErrorIs(t, err, ErrInvalidArgument)

	err = s.Update(ctx, testUserID, map[string]interface{}{"email": 42})
	assert.ErrorIs(t, err, ErrTypeMismatch)

	err = s.Update(ctx, testUserID, map[string]interface{}{"email": "no-at-sign"})
	assert.ErrorIs(t, err, ErrInvalidArgument)

	// Unrecognized keys are ignored, not rejected
	err = s.Update(ctx, testUserID, map[string]interface{}{"nickname": "Johnny"})
	assert.NoError(t, err)
}

func TestUserDelete(t *testing.T) {
	s := newUserStore()
	ctx := context.Background()

	err := s.Delete(ctx, testUserID)
	assert.ErrorIs(t, err, ErrNotFound)

	addTestUser(t, s)
	require.NoError(t, s.Delete(ctx, testUserID))

	exists, err := s.Exists(ctx, testUserID)
	require.NoError(t, err)
	assert.False(t, exists)

	err = s.Delete(ctx, testUserID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUserGetAll(t *testing.T) {
	s := newUserStore()
	ctx := context.Background()

	addTestUser(t, s)
	require.NoError(t, s.Add(ctx, "2222222222", "Emma", "Stone", "1990-05-05", "emma@x.com", "Password1"))

	all, err := s.GetAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestUserErrorsAreDistinct(t *testing.T) {
	// Handlers rely on errors.Is to pick status codes; the kinds must not alias.
	kinds := []error{ErrDuplicateKey, ErrDuplicateValue, ErrNotFound, ErrInvalidArgument, ErrTypeMismatch}
	for i, a := range kinds {
		for j, b := range kinds {
			if i != j {
				assert.False(t, errors.Is(a, b))
			}
		}
	}
}
