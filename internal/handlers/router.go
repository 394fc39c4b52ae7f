package handlers

import (
	"time"

	"taskflow/internal/middleware"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
)

// NewRouter mounts all API routes behind the standard middleware
// chain.
func NewRouter(handler TaskHandler, rateLimitRPM int, timeout time.Duration) chi.Router {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID", "X-User-ID", "X-User-Email"},
		MaxAge:         300,
	}))
	r.Use(middleware.RequestID)
	r.Use(middleware.Logging)
	r.Use(middleware.Timeout(timeout))
	r.Use(middleware.RateLimit(rateLimitRPM))

	r.Route("/tasks", func(r chi.Router) {
		r.Get("/", handler.GetTasks)  // GET /tasks
		r.Post("/", handler.PostTask) // POST /tasks

		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", handler.GetTaskByID)       // GET /tasks/{id}
			r.Put("/", handler.UpdateTaskByID)    // PUT /tasks/{id}
			r.Delete("/", handler.DeleteTaskByID) // DELETE /tasks/{id}

			r.Put("/status", handler.UpdateStatus)         // PUT /tasks/{id}/status
			r.Put("/assignment", handler.UpdateAssignment) // PUT /tasks/{id}/assignment
			r.Post("/timelogs", handler.LogTime)           // POST /tasks/{id}/timelogs

			r.Get("/comments", handler.GetComments)  // GET /tasks/{id}/comments
			r.Post("/comments", handler.PostComment) // POST /tasks/{id}/comments
		})
	})

	r.Route("/contacts", func(r chi.Router) {
		r.Get("/", handler.GetContacts)             // GET /contacts
		r.Post("/", handler.PostContact)            // POST /contacts
		r.Get("/categories", handler.GetCategories) // GET /contacts/categories
	})

	r.Get("/calendar", handler.GetTasksByDay)
	r.Get("/users", handler.GetUsers)
	r.Get("/health", handler.HealthCheck)

	return r
}
