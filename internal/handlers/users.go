package handlers

import (
	"log"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/easejournal/ease-journal-backend/internal/middleware"
	"github.com/easejournal/ease-journal-backend/internal/models"
	"github.com/easejournal/ease-journal-backend/internal/store"
)

type CreateUserRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	DOB       string `json:"dob"`
	Email     string `json:"email"`
	Password  string `json:"password"`
}

type UserResponse struct {
	Success bool         `json:"success"`
	Message string       `json:"message,omitempty"`
	UserID  string       `json:"user_id,omitempty"`
	User    *models.User `json:"user,omitempty"`
}

type GetUsersResponse struct {
	Success bool          `json:"success"`
	Message string        `json:"message,omitempty"`
	Users   []models.User `json:"users"`
	Total   int           `json:"total"`
}

// CreateUser adds a user. The id is generated server-side; a generator
// collision surfaces as 406 like any other duplicate.
func CreateUser(w http.ResponseWriter, r *http.Request) {
	var req CreateUserRequest
	if msg, ok := decodeBody(r, &req); !ok {
		writeJSON(w, http.StatusBadRequest, UserResponse{Success: false, Message: msg})
		return
	}

	ctx, cancel := requestContext()
	defer cancel()

	userID := store.NewUserID()
	if err := users.Add(ctx, userID, req.FirstName, req.LastName, req.DOB, req.Email, req.Password); err != nil {
		writeJSON(w, statusForError(err), UserResponse{Success: false, Message: err.Error()})
		return
	}

	log.Printf("user %s created (request %s)", userID, middleware.RequestIDFrom(r.Context()))
	writeJSON(w, http.StatusCreated, UserResponse{
		Success: true,
		Message: "User created successfully",
		UserID:  userID,
	})
}

// GetUsers returns all users.
func GetUsers(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := requestContext()
	defer cancel()

	all, err := users.GetAll(ctx)
	if err != nil {
		writeJSON(w, statusForError(err), GetUsersResponse{Success: false, Users: []models.User{}})
		return
	}
	if all == nil {
		all = []models.User{}
	}
	writeJSON(w, http.StatusOK, GetUsersResponse{Success: true, Users: all, Total: len(all)})
}

// GetUser returns a single user looked up by id, or by email when the path
// segment contains an '@'.
func GetUser(w http.ResponseWriter, r *http.Request) {
	idOrEmail := chi.URLParam(r, "id")

	ctx, cancel := requestContext()
	defer cancel()

	var (
		user *models.User
		err  error
	)
	if strings.Contains(idOrEmail, "@") {
		user, err = users.GetByEmail(ctx, idOrEmail)
	} else {
		user, err = users.Get(ctx, idOrEmail)
	}
	if err != nil {
		writeJSON(w, statusForError(err), UserResponse{Success: false, Message: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, UserResponse{Success: true, User: user})
}

// UpdateUser partially updates a user from a JSON object of fields.
func UpdateUser(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "id")

	var fields map[string]interface{}
	if msg, ok := decodeBody(r, &fields); !ok {
		writeJSON(w, http.StatusBadRequest, UserResponse{Success: false, Message: msg})
		return
	}

	ctx, cancel := requestContext()
	defer cancel()

	if err := users.Update(ctx, userID, fields); err != nil {
		writeJSON(w, statusForError(err), UserResponse{Success: false, Message: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, UserResponse{Success: true, Message: "User updated successfully", UserID: userID})
}

// DeleteUser removes a user by id. Categories and journals owned by the user
// are left in place, pointing at the deleted id.
func DeleteUser(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "id")

	ctx, cancel := requestContext()
	defer cancel()

	if err := users.Delete(ctx, userID); err != nil {
		writeJSON(w, statusForError(err), UserResponse{Success: false, Message: err.Error()})
		return
	}
	log.Printf("user %s deleted (request %s)", userID, middleware.RequestIDFrom(r.Context()))
	writeJSON(w, http.StatusOK, UserResponse{Success: true, Message: "User deleted successfully", UserID: userID})
}
