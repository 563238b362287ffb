package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/easejournal/ease-journal-backend/internal/database"
	"github.com/easejournal/ease-journal-backend/internal/handlers"
	"github.com/easejournal/ease-journal-backend/internal/middleware"
	"github.com/easejournal/ease-journal-backend/internal/routes"
)

func setupServer(t *testing.T) *chi.Mux {
	t.Helper()
	handlers.Init(database.NewMemoryGateway())
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	routes.SetupRoutes(r)
	return r
}

func doJSON(t *testing.T, r *chi.Mux, method, path string, body interface{}) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	var decoded map[string]interface{}
	if rec.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &decoded))
	}
	return rec, decoded
}

func createUser(t *testing.T, r *chi.Mux) string {
	t.Helper()
	rec, resp := doJSON(t, r, http.MethodPost, "/api/users", map[string]string{
		"first_name": "John",
		"last_name":  "Smith",
		"dob":        "2002-11-20",
		"email":      "john@x.com",
		"password":   "Password1",
	})
	require.Equal(t, http.StatusCreated, rec.Code, "body: %s", rec.Body.String())
	userID, _ := resp["user_id"].(string)
	require.Len(t, userID, 10)
	return userID
}

func createCategory(t *testing.T, r *chi.Mux, userID, title string) string {
	t.Helper()
	rec, resp := doJSON(t, r, http.MethodPost, "/api/categories", map[string]string{
		"title": title,
		"user":  userID,
	})
	require.Equal(t, http.StatusCreated, rec.Code, "body: %s", rec.Body.String())
	categoryID, _ := resp["category_id"].(string)
	require.Len(t, categoryID, 8)
	return categoryID
}

func TestCreateAndGetUser(t *testing.T) {
	r := setupServer(t)
	userID := createUser(t, r)

	rec, resp := doJSON(t, r, http.MethodGet, "/api/users/"+userID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	user := resp["user"].(map[string]interface{})
	assert.Equal(t, "John", user["first_name"])

	// Lookup by email works on the same route
	rec, _ = doJSON(t, r, http.MethodGet, "/api/users/john@x.com", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec, _ = doJSON(t, r, http.MethodGet, "/api/users/0000000000", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCreateUserValidationStatus(t *testing.T) {
	r := setupServer(t)

	rec, _ := doJSON(t, r, http.MethodPost, "/api/users", map[string]string{
		"first_name": "John",
		"last_name":  "Smith",
		"dob":        "2002-11-20",
		"email":      "not-an-email",
		"password":   "Password1",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRequestIDHeader(t *testing.T) {
	r := setupServer(t)

	rec, _ := doJSON(t, r, http.MethodGet, "/api/users", nil)
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
}

func TestCreateCategoryRequiresExistingUser(t *testing.T) {
	r := setupServer(t)

	rec, _ := doJSON(t, r, http.MethodPost, "/api/categories", map[string]string{
		"title": "Health",
		"user":  "0000000000",
	})
	assert.Equal(t, http.StatusNotAcceptable, rec.Code)
}

func TestDuplicateCategoryTitle(t *testing.T) {
	r := setupServer(t)
	userID := createUser(t, r)
	createCategory(t, r, userID, "Work")

	rec, _ := doJSON(t, r, http.MethodPost, "/api/categories", map[string]string{
		"title": "WORK",
		"user":  userID,
	})
	assert.Equal(t, http.StatusNotAcceptable, rec.Code)
}

func TestJournalLifecycle(t *testing.T) {
	r := setupServer(t)
	userID := createUser(t, r)
	categoryID := createCategory(t, r, userID, "Health")

	// Empty title gets the default
	rec, resp := doJSON(t, r, http.MethodPost, "/api/journals", map[string]string{
		"title":    "",
		"prompt":   "p1",
		"content":  "body",
		"user":     userID,
		"category": categoryID,
	})
	require.Equal(t, http.StatusCreated, rec.Code, "body: %s", rec.Body.String())
	journalID := resp["journal_id"].(string)
	require.Len(t, journalID, 12)

	categoryJournals := func() map[string]interface{} {
		rec, resp := doJSON(t, r, http.MethodGet, "/api/categories/"+userID, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		cats := resp["categories"].([]interface{})
		require.Len(t, cats, 1)
		return cats[0].(map[string]interface{})["journals"].(map[string]interface{})
	}

	assert.Equal(t, map[string]interface{}{journalID: "Untitled"}, categoryJournals())

	// Re-title and watch the reverse index follow
	rec, _ = doJSON(t, r, http.MethodPut, "/api/journals/"+journalID, map[string]string{"title": "T2"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, map[string]interface{}{journalID: "T2"}, categoryJournals())

	// Journals listed under the category
	rec, resp = doJSON(t, r, http.MethodGet, "/api/journals/"+categoryID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(1), resp["total"])

	rec, _ = doJSON(t, r, http.MethodDelete, "/api/journals/"+journalID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, categoryJournals())

	rec, _ = doJSON(t, r, http.MethodDelete, "/api/journals/"+journalID, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCreateJournalRequiresExistingCategory(t *testing.T) {
	r := setupServer(t)
	userID := createUser(t, r)

	rec, _ := doJSON(t, r, http.MethodPost, "/api/journals", map[string]string{
		"prompt":   "p1",
		"content":  "body",
		"user":     userID,
		"category": "00000000",
	})
	assert.Equal(t, http.StatusNotAcceptable, rec.Code)
}

func TestUpdateWithEmptyBody(t *testing.T) {
	r := setupServer(t)
	userID := createUser(t, r)

	rec, _ := doJSON(t, r, http.MethodPut, "/api/users/"+userID, map[string]string{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUpdateWithWrongFieldType(t *testing.T) {
	r := setupServer(t)
	userID := createUser(t, r)
	categoryID := createCategory(t, r, userID, "Health")

	rec, _ := doJSON(t, r, http.MethodPut, "/api/categories/"+categoryID, map[string]interface{}{"title": 42})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestEndpointsListing(t *testing.T) {
	r := setupServer(t)

	rec, resp := doJSON(t, r, http.MethodGet, "/api/endpoints", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var found bool
	for _, e := range resp["endpoints"].([]interface{}) {
		if e == "POST /api/journals" {
			found = true
		}
	}
	assert.True(t, found, "endpoints listing should include POST /api/journals")
}
