package handlers

import (
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/easejournal/ease-journal-backend/internal/middleware"
	"github.com/easejournal/ease-journal-backend/internal/models"
	"github.com/easejournal/ease-journal-backend/internal/store"
)

type CreateJournalRequest struct {
	Title    string `json:"title"`
	Prompt   string `json:"prompt"`
	Content  string `json:"content"`
	User     string `json:"user"`
	Category string `json:"category"`
}

type JournalResponse struct {
	Success   bool            `json:"success"`
	Message   string          `json:"message,omitempty"`
	JournalID string          `json:"journal_id,omitempty"`
	Journal   *models.Journal `json:"journal,omitempty"`
}

type GetJournalsResponse struct {
	Success  bool             `json:"success"`
	Message  string           `json:"message,omitempty"`
	Journals []models.Journal `json:"journals"`
	Total    int              `json:"total"`
}

// CreateJournal adds a journal entry. Both the owning user and the target
// category must exist; those checks live here, the store only maintains the
// category's reverse index.
func CreateJournal(w http.ResponseWriter, r *http.Request) {
	var req CreateJournalRequest
	if msg, ok := decodeBody(r, &req); !ok {
		writeJSON(w, http.StatusBadRequest, JournalResponse{Success: false, Message: msg})
		return
	}

	ctx, cancel := requestContext()
	defer cancel()

	ownerExists, err := users.Exists(ctx, req.User)
	if err != nil {
		writeJSON(w, statusForError(err), JournalResponse{Success: false, Message: "We have a technical problem."})
		return
	}
	if !ownerExists {
		writeJSON(w, http.StatusNotAcceptable, JournalResponse{Success: false, Message: "Please input a user ID that exists."})
		return
	}
	categoryExists, err := categories.Exists(ctx, req.Category)
	if err != nil {
		writeJSON(w, statusForError(err), JournalResponse{Success: false, Message: "We have a technical problem."})
		return
	}
	if !categoryExists {
		writeJSON(w, http.StatusNotAcceptable, JournalResponse{Success: false, Message: "Please input a category ID that exists."})
		return
	}

	journalID := store.NewJournalID()
	if err := journals.Add(ctx, journalID, req.Title, req.Prompt, req.Content, req.User, req.Category); err != nil {
		writeJSON(w, statusForError(err), JournalResponse{Success: false, Message: err.Error()})
		return
	}

	log.Printf("journal %s created in category %s (request %s)", journalID, req.Category, middleware.RequestIDFrom(r.Context()))
	writeJSON(w, http.StatusCreated, JournalResponse{
		Success:   true,
		Message:   "Journal created successfully",
		JournalID: journalID,
	})
}

// GetJournals returns all journal entries.
func GetJournals(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := requestContext()
	defer cancel()

	all, err := journals.GetAll(ctx)
	if err != nil {
		writeJSON(w, statusForError(err), GetJournalsResponse{Success: false, Journals: []models.Journal{}})
		return
	}
	if all == nil {
		all = []models.Journal{}
	}
	writeJSON(w, http.StatusOK, GetJournalsResponse{Success: true, Journals: all, Total: len(all)})
}

// GetJournalsByCategory returns the journals filed under the category in the
// path.
func GetJournalsByCategory(w http.ResponseWriter, r *http.Request) {
	categoryID := chi.URLParam(r, "id")

	ctx, cancel := requestContext()
	defer cancel()

	filed, err := journals.GetByCategory(ctx, categoryID)
	if err != nil {
		writeJSON(w, statusForError(err), GetJournalsResponse{Success: false, Journals: []models.Journal{}})
		return
	}
	if filed == nil {
		filed = []models.Journal{}
	}
	writeJSON(w, http.StatusOK, GetJournalsResponse{Success: true, Journals: filed, Total: len(filed)})
}

// UpdateJournal partially updates a journal from a JSON object of fields
// (title, prompt, content, category).
func UpdateJournal(w http.ResponseWriter, r *http.Request) {
	journalID := chi.URLParam(r, "id")

	var fields map[string]interface{}
	if msg, ok := decodeBody(r, &fields); !ok {
		writeJSON(w, http.StatusBadRequest, JournalResponse{Success: false, Message: msg})
		return
	}

	ctx, cancel := requestContext()
	defer cancel()

	if err := journals.Update(ctx, journalID, fields); err != nil {
		writeJSON(w, statusForError(err), JournalResponse{Success: false, Message: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, JournalResponse{Success: true, Message: "Journal updated successfully", JournalID: journalID})
}

// DeleteJournal removes a journal by id, unfiling it from its category.
func DeleteJournal(w http.ResponseWriter, r *http.Request) {
	journalID := chi.URLParam(r, "id")

	ctx, cancel := requestContext()
	defer cancel()

	if err := journals.Delete(ctx, journalID); err != nil {
		writeJSON(w, statusForError(err), JournalResponse{Success: false, Message: err.Error()})
		return
	}
	log.Printf("journal %s deleted (request %s)", journalID, middleware.RequestIDFrom(r.Context()))
	writeJSON(w, http.StatusOK, JournalResponse{Success: true, Message: "Journal deleted successfully", JournalID: journalID})
}
