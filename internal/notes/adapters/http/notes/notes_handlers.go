// Package notes contains the HTTP handlers for note management.
package notes

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"mdnotes/internal/notes/adapters/http/dto"
	"mdnotes/internal/notes/adapters/http/middleware"
	"mdnotes/internal/notes/app"
	"mdnotes/internal/notes/domain/entities"
	"mdnotes/pkg/logger"
)

// Log and error messages.
const (
	LogHandlerCreateNote = "handling create note request"
	LogHandlerGetNote    = "handling get note request"
	LogHandlerListNotes  = "handling list notes request"
	LogHandlerListTags   = "handling list tags request"
	LogHandlerUpdateNote = "handling update note request"
	LogHandlerDeleteNote = "handling delete note request"

	ErrMsgNoteNotFound       = "Note not found"
	ErrMsgInvalidPagination  = "Invalid pagination parameters"
	ErrMsgInvalidRequestBody = "Invalid request body"

	ErrMsgFetchNotes = "Failed to fetch notes"
	ErrMsgFetchTags  = "Failed to fetch tags"
	ErrMsgFetchNote  = "Failed to fetch note"
	ErrMsgCreateNote = "Failed to create note"
	ErrMsgUpdateNote = "Failed to update note"
	ErrMsgDeleteNote = "Failed to delete note"
	MsgNoteDeleted   = "Note deleted successfully"
)

// Handler serves the note endpoints.
type Handler struct {
	useCase *app.NoteUseCase
}

// NewHandler creates a new notes handler.
func NewHandler(useCase *app.NoteUseCase) *Handler {
	return &Handler{useCase: useCase}
}

// ListNotes handles GET /notes with search, tag, sort and pagination params.
func (h *Handler) ListNotes(ctx fiber.Ctx) error {
	reqCtx := requestContext(ctx)
	log := logger.Log(reqCtx).With(zap.String("handler", "Handler.ListNotes"))
	log.Debug(reqCtx, LogHandlerListNotes)

	page, err := parseIntParam(ctx.Query("page", "1"))
	if err != nil {
		log.Debug(reqCtx, ErrMsgInvalidPagination, zap.Error(err))
		return badRequest(ctx, ErrMsgInvalidPagination)
	}
	limit, err := parseIntParam(ctx.Query("limit", "10"))
	if err != nil {
		log.Debug(reqCtx, ErrMsgInvalidPagination, zap.Error(err))
		return badRequest(ctx, ErrMsgInvalidPagination)
	}

	query := entities.ListQuery{
		Search: ctx.Query("search"),
		Tag:    ctx.Query("tag"),
		Page:   page,
		Limit:  limit,
		Sort:   ctx.Query("sort", entities.SortByUpdatedAt),
		Order:  ctx.Query("order", entities.OrderDesc),
	}

	result, err := h.useCase.ListNotes(reqCtx, query)
	if err != nil {
		log.Error(reqCtx, "failed to list notes", zap.Error(err))
		return handleError(ctx, err, ErrMsgFetchNotes)
	}

	if err := ctx.JSON(dto.ListResponse{
		Success:    true,
		Data:       result.Notes,
		Pagination: result.Pagination,
	}); err != nil {
		return fmt.Errorf("error sending response: %w", err)
	}
	return nil
}

// ListTags handles GET /notes/tags.
func (h *Handler) ListTags(ctx fiber.Ctx) error {
	reqCtx := requestContext(ctx)
	log := logger.Log(reqCtx).With(zap.String("handler", "Handler.ListTags"))
	log.Debug(reqCtx, LogHandlerListTags)

	tags, err := h.useCase.ListTags(reqCtx)
	if err != nil {
		log.Error(reqCtx, "failed to list tags", zap.Error(err))
		return handleError(ctx, err, ErrMsgFetchTags)
	}

	if err := ctx.JSON(dto.TagsResponse{Success: true, Data: tags}); err != nil {
		return fmt.Errorf("error sending response: %w", err)
	}
	return nil
}

// CreateNote handles POST /notes.
func (h *Handler) CreateNote(ctx fiber.Ctx) error {
	reqCtx := requestContext(ctx)
	log := logger.Log(reqCtx).With(zap.String("handler", "Handler.CreateNote"))
	log.Debug(reqCtx, LogHandlerCreateNote)

	var req dto.NoteRequest
	if err := ctx.Bind().Body(&req); err != nil {
		log.Debug(reqCtx, ErrMsgInvalidRequestBody, zap.Error(err))
		return badRequest(ctx, ErrMsgInvalidRequestBody)
	}

	note, err := h.useCase.CreateNote(reqCtx, req.Title, req.Content, req.Tags)
	if err != nil {
		log.Error(reqCtx, "failed to create note", zap.Error(err))
		return handleError(ctx, err, ErrMsgCreateNote)
	}

	if err := ctx.Status(fiber.StatusCreated).JSON(dto.NoteResponse{Success: true, Data: note}); err != nil {
		return fmt.Errorf("error sending response: %w", err)
	}
	return nil
}

// GetNote handles GET /notes/:note_id.
func (h *Handler) GetNote(ctx fiber.Ctx) error {
	reqCtx := requestContext(ctx)
	log := logger.Log(reqCtx).With(zap.String("handler", "Handler.GetNote"))
	log.Debug(reqCtx, LogHandlerGetNote)

	note, err := h.useCase.GetNote(reqCtx, ctx.Params("note_id"))
	if err != nil {
		log.Debug(reqCtx, "failed to get note", zap.Error(err))
		return handleError(ctx, err, ErrMsgFetchNote)
	}

	if err := ctx.JSON(dto.NoteResponse{Success: true, Data: note}); err != nil {
		return fmt.Errorf("error sending response: %w", err)
	}
	return nil
}

// UpdateNote handles PUT /notes/:note_id.
func (h *Handler) UpdateNote(ctx fiber.Ctx) error {
	reqCtx := requestContext(ctx)
	log := logger.Log(reqCtx).With(zap.String("handler", "Handler.UpdateNote"))
	log.Debug(reqCtx, LogHandlerUpdateNote)

	var req dto.NoteRequest
	if err := ctx.Bind().Body(&req); err != nil {
		log.Debug(reqCtx, ErrMsgInvalidRequestBody, zap.Error(err))
		return badRequest(ctx, ErrMsgInvalidRequestBody)
	}

	note, err := h.useCase.UpdateNote(reqCtx, ctx.Params("note_id"), req.Title, req.Content, req.Tags)
	if err != nil {
		log.Debug(reqCtx, "failed to update note", zap.Error(err))
		return handleError(ctx, err, ErrMsgUpdateNote)
	}

	if err := ctx.JSON(dto.NoteResponse{Success: true, Data: note}); err != nil {
		return fmt.Errorf("error sending response: %w", err)
	}
	return nil
}

// DeleteNote handles DELETE /notes/:note_id.
func (h *Handler) DeleteNote(ctx fiber.Ctx) error {
	reqCtx := requestContext(ctx)
	log := logger.Log(reqCtx).With(zap.String("handler", "Handler.DeleteNote"))
	log.Debug(reqCtx, LogHandlerDeleteNote)

	if err := h.useCase.DeleteNote(reqCtx, ctx.Params("note_id")); err != nil {
		log.Debug(reqCtx, "failed to delete note", zap.Error(err))
		return handleError(ctx, err, ErrMsgDeleteNote)
	}

	if err := ctx.JSON(dto.MessageResponse{Success: true, Message: MsgNoteDeleted}); err != nil {
		return fmt.Errorf("error sending response: %w", err)
	}
	return nil
}

// handleError maps the error taxonomy to HTTP statuses: validation errors to
// 400, missing notes to 404, everything else to 500 with the underlying
// message attached for diagnostics. Nothing is retried.
func handleError(ctx fiber.Ctx, err error, failMsg string) error {
	var validationErr *entities.ValidationError
	if errors.As(err, &validationErr) {
		return badRequest(ctx, validationErr.Reason)
	}

	if errors.Is(err, app.ErrNotFound) {
		if err := ctx.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Success: false,
			Error:   ErrMsgNoteNotFound,
		}); err != nil {
			return fmt.Errorf("error sending 404 response: %w", err)
		}
		return nil
	}

	if sendErr := ctx.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
		Success: false,
		Error:   failMsg,
		Message: err.Error(),
	}); sendErr != nil {
		return fmt.Errorf("error sending 500 response: %w", sendErr)
	}
	return nil
}

func badRequest(ctx fiber.Ctx, reason string) error {
	if err := ctx.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
		Success: false,
		Error:   reason,
	}); err != nil {
		return fmt.Errorf("error sending 400 response: %w", err)
	}
	return nil
}

// requestContext returns the request-scoped context stored by the logger
// middleware, falling back to the fiber context.
func requestContext(ctx fiber.Ctx) context.Context {
	if reqCtx, ok := ctx.Locals(middleware.RequestContextKey).(context.Context); ok {
		return reqCtx
	}
	return ctx.Context()
}

func parseIntParam(s string) (int, error) {
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid integer %q: %w", s, err)
	}
	return v, nil
}
