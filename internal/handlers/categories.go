package handlers

import (
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/easejournal/ease-journal-backend/internal/middleware"
	"github.com/easejournal/ease-journal-backend/internal/models"
	"github.com/easejournal/ease-journal-backend/internal/store"
)

type CreateCategoryRequest struct {
	Title string `json:"title"`
	User  string `json:"user"`
}

type CategoryResponse struct {
	Success    bool             `json:"success"`
	Message    string           `json:"message,omitempty"`
	CategoryID string           `json:"category_id,omitempty"`
	Category   *models.Category `json:"category,omitempty"`
}

type GetCategoriesResponse struct {
	Success    bool              `json:"success"`
	Message    string            `json:"message,omitempty"`
	Categories []models.Category `json:"categories"`
	Total      int               `json:"total"`
}

// CreateCategory adds a category for an existing user. The owner check lives
// here, not in the store.
func CreateCategory(w http.ResponseWriter, r *http.Request) {
	var req CreateCategoryRequest
	if msg, ok := decodeBody(r, &req); !ok {
		writeJSON(w, http.StatusBadRequest, CategoryResponse{Success: false, Message: msg})
		return
	}

	ctx, cancel := requestContext()
	defer cancel()

	ownerExists, err := users.Exists(ctx, req.User)
	if err != nil {
		writeJSON(w, statusForError(err), CategoryResponse{Success: false, Message: "We have a technical problem."})
		return
	}
	if !ownerExists {
		writeJSON(w, http.StatusNotAcceptable, CategoryResponse{Success: false, Message: "Please input a user ID that exists."})
		return
	}

	categoryID := store.NewCategoryID()
	if err := categories.Add(ctx, categoryID, req.Title, req.User); err != nil {
		writeJSON(w, statusForError(err), CategoryResponse{Success: false, Message: err.Error()})
		return
	}

	log.Printf("category %s created for user %s (request %s)", categoryID, req.User, middleware.RequestIDFrom(r.Context()))
	writeJSON(w, http.StatusCreated, CategoryResponse{
		Success:    true,
		Message:    "Category created successfully",
		CategoryID: categoryID,
	})
}

// GetCategories returns all categories.
func GetCategories(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := requestContext()
	defer cancel()

	all, err := categories.GetAll(ctx)
	if err != nil {
		writeJSON(w, statusForError(err), GetCategoriesResponse{Success: false, Categories: []models.Category{}})
		return
	}
	if all == nil {
		all = []models.Category{}
	}
	writeJSON(w, http.StatusOK, GetCategoriesResponse{Success: true, Categories: all, Total: len(all)})
}

// GetCategoriesByUser returns the categories owned by the user in the path.
func GetCategoriesByUser(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "id")

	ctx, cancel := requestContext()
	defer cancel()

	owned, err := categories.GetByUser(ctx, userID)
	if err != nil {
		writeJSON(w, statusForError(err), GetCategoriesResponse{Success: false, Categories: []models.Category{}})
		return
	}
	if owned == nil {
		owned = []models.Category{}
	}
	writeJSON(w, http.StatusOK, GetCategoriesResponse{Success: true, Categories: owned, Total: len(owned)})
}

// UpdateCategory partially updates a category (title and/or journals map).
func UpdateCategory(w http.ResponseWriter, r *http.Request) {
	categoryID := chi.URLParam(r, "id")

	var fields map[string]interface{}
	if msg, ok := decodeBody(r, &fields); !ok {
		writeJSON(w, http.StatusBadRequest, CategoryResponse{Success: false, Message: msg})
		return
	}

	ctx, cancel := requestContext()
	defer cancel()

	if err := categories.Update(ctx, categoryID, fields); err != nil {
		writeJSON(w, statusForError(err), CategoryResponse{Success: false, Message: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, CategoryResponse{Success: true, Message: "Category updated successfully", CategoryID: categoryID})
}

// DeleteCategory removes a category by id. Journals filed under it are not
// deleted.
func DeleteCategory(w http.ResponseWriter, r *http.Request) {
	categoryID := chi.URLParam(r, "id")

	ctx, cancel := requestContext()
	defer cancel()

	if err := categories.Delete(ctx, categoryID); err != nil {
		writeJSON(w, statusForError(err), CategoryResponse{Success: false, Message: err.Error()})
		return
	}
	log.Printf("category %s deleted (request %s)", categoryID, middleware.RequestIDFrom(r.Context()))
	writeJSON(w, http.StatusOK, CategoryResponse{Success: true, Message: "Category deleted successfully", CategoryID: categoryID})
}
