package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/easejournal/ease-journal-backend/internal/handlers"
)

func SetupRoutes(r *chi.Mux) {
	// Live route listing
	r.Get("/api/endpoints", handlers.Endpoints(r))

	// User routes ({id} may be a user id or an email on GET)
	r.Get("/api/users", handlers.GetUsers)
	r.Post("/api/users", handlers.CreateUser)
	r.Get("/api/users/{id}", handlers.GetUser)
	r.Put("/api/users/{id}", handlers.UpdateUser)
	r.Delete("/api/users/{id}", handlers.DeleteUser)

	// Category routes ({id} on GET is the owning user's id)
	r.Get("/api/categories", handlers.GetCategories)
	r.Post("/api/categories", handlers.CreateCategory)
	r.Get("/api/categories/{id}", handlers.GetCategoriesByUser)
	r.Put("/api/categories/{id}", handlers.UpdateCategory)
	r.Delete("/api/categories/{id}", handlers.DeleteCategory)

	// Journal routes ({id} on GET is the category id)
	r.Get("/api/journals", handlers.GetJournals)
	r.Post("/api/journals", handlers.CreateJournal)
	r.Get("/api/journals/{id}", handlers.GetJournalsByCategory)
	r.Put("/api/journals/{id}", handlers.UpdateJournal)
	r.Delete("/api/journals/{id}", handlers.DeleteJournal)
}
