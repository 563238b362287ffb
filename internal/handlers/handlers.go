package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/easejournal/ease-journal-backend/internal/database"
	"github.com/easejournal/ease-journal-backend/internal/store"
)

const requestTimeout = 5 * time.Second

var (
	users      *store.UserStore
	categories *store.CategoryStore
	journals   *store.JournalStore
)

// Init wires the handler package to its stores. Call once at startup with the
// gateway the process persists through.
func Init(gw database.Gateway) {
	users = store.NewUserStore(gw)
	categories = store.NewCategoryStore(gw)
	journals = store.NewJournalStore(gw, categories)
}

func requestContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), requestTimeout)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// statusForError maps store error kinds to response codes. Duplicates are 406
// (the resource as posted is not acceptable), bad fields are 400, missing
// targets are 404. Anything else means the gateway itself failed, which the
// client sees as 503.
func statusForError(err error) int {
	switch {
	case errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, store.ErrDuplicateKey), errors.Is(err, store.ErrDuplicateValue):
		return http.StatusNotAcceptable
	case errors.Is(err, store.ErrInvalidArgument), errors.Is(err, store.ErrTypeMismatch):
		return http.StatusBadRequest
	default:
		return http.StatusServiceUnavailable
	}
}

// decodeBody decodes a JSON request body, translating JSON type errors into
// a field-level message so clients see which field had the wrong type.
func decodeBody(r *http.Request, dest interface{}) (string, bool) {
	if err := json.NewDecoder(r.Body).Decode(dest); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) && typeErr.Field != "" {
			return "Field " + typeErr.Field + " has the wrong type", false
		}
		return "Invalid request body", false
	}
	return "", true
}
