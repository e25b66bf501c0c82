// Package http wires the notes API routes.
package http

import (
	"fmt"

	"github.com/gofiber/fiber/v3"

	"mdnotes/internal/notes/adapters/http/dto"
	"mdnotes/internal/notes/adapters/http/middleware"
	"mdnotes/internal/notes/adapters/http/notes"
	"mdnotes/internal/notes/app"
)

// SetupRouter registers middleware and the notes routes.
func SetupRouter(fiberApp *fiber.App, useCase *app.NoteUseCase) {
	notesHandler := notes.NewHandler(useCase)

	fiberApp.Use(middleware.NewLoggerMiddleware())
	fiberApp.Use(middleware.NewRecoveryMiddleware())

	apiV1 := fiberApp.Group("/api/v1")

	notesRoutes := apiV1.Group("/notes")
	notesRoutes.Get("/", notesHandler.ListNotes)
	notesRoutes.Post("/", notesHandler.CreateNote)
	notesRoutes.Get("/tags", notesHandler.ListTags)
	notesRoutes.Get("/:note_id", notesHandler.GetNote)
	notesRoutes.Put("/:note_id", notesHandler.UpdateNote)
	notesRoutes.Delete("/:note_id", notesHandler.DeleteNote)

	// Remaining methods on the two route shapes get an explicit 405 with an
	// Allow header listing what is supported.
	notesRoutes.All("/", methodNotAllowed("GET, POST"))
	notesRoutes.All("/:note_id", methodNotAllowed("GET, PUT, DELETE"))

	fiberApp.Use(func(c fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Success: false,
			Error:   "Route not found",
		})
	})
}

func methodNotAllowed(allow string) fiber.Handler {
	return func(c fiber.Ctx) error {
		c.Set(fiber.HeaderAllow, allow)
		return c.Status(fiber.StatusMethodNotAllowed).JSON(dto.ErrorResponse{
			Success: false,
			Error:   fmt.Sprintf("Method %s not allowed", c.Method()),
		})
	}
}
