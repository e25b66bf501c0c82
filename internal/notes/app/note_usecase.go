// Package app implements application business logic for the notes service.
package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"mdnotes/internal/notes/domain/entities"
	"mdnotes/internal/notes/ports/repositories"
)

// ErrNotFound is returned when no note matches the requested id.
var ErrNotFound = errors.New("note not found")

// ErrInvalidNoteID reports a malformed note id on any single-note operation.
var ErrInvalidNoteID = entities.NewValidationError("Invalid note ID")

// ListResult is one page of notes plus its pagination metadata.
type ListResult struct {
	Notes      []*entities.Note
	Pagination entities.Pagination
}

// NoteUseCase holds the business logic for note CRUD and listing.
type NoteUseCase struct {
	noteRepo repositories.NoteRepository
}

// NewNoteUseCase creates a new NoteUseCase.
func NewNoteUseCase(noteRepo repositories.NoteRepository) *NoteUseCase {
	return &NoteUseCase{noteRepo: noteRepo}
}

// CreateNote validates the input, persists a new note and returns it with
// the storage-assigned id.
func (uc *NoteUseCase) CreateNote(ctx context.Context, title, content string, tags []string) (*entities.Note, error) {
	if err := entities.ValidateFields(title, content, tags); err != nil {
		return nil, err
	}

	note := entities.NewNote(title, content, tags)
	noteID, err := uc.noteRepo.Create(ctx, note)
	if err != nil {
		return nil, fmt.Errorf("failed to create note: %w", err)
	}
	note.ID = noteID

	return note, nil
}

// GetNote returns the note with the given id.
func (uc *NoteUseCase) GetNote(ctx context.Context, noteID string) (*entities.Note, error) {
	if err := validateNoteID(noteID); err != nil {
		return nil, err
	}

	note, err := uc.noteRepo.GetByID(ctx, noteID)
	if err != nil {
		return nil, fmt.Errorf("failed to get note: %w", err)
	}
	if note == nil {
		return nil, ErrNotFound
	}

	return note, nil
}

// ListNotes returns one page of notes matching the query together with
// pagination metadata. The query is normalized first, so filters are applied
// either completely or not at all.
func (uc *NoteUseCase) ListNotes(ctx context.Context, query entities.ListQuery) (*ListResult, error) {
	query = query.Normalize()

	notes, total, err := uc.noteRepo.List(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list notes: %w", err)
	}

	return &ListResult{
		Notes:      notes,
		Pagination: entities.NewPagination(query.Page, query.Limit, total),
	}, nil
}

// ListTags returns the deduplicated, sorted union of tags across all notes.
func (uc *NoteUseCase) ListTags(ctx context.Context) ([]string, error) {
	tags, err := uc.noteRepo.ListTags(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list tags: %w", err)
	}
	return tags, nil
}

// UpdateNote validates the input and replaces title, content and tags of an
// existing note. CreatedAt is left untouched, UpdatedAt is refreshed.
func (uc *NoteUseCase) UpdateNote(ctx context.Context, noteID, title, content string, tags []string) (*entities.Note, error) {
	if err := validateNoteID(noteID); err != nil {
		return nil, err
	}
	if err := entities.ValidateFields(title, content, tags); err != nil {
		return nil, err
	}

	note, err := uc.noteRepo.GetByID(ctx, noteID)
	if err != nil {
		return nil, fmt.Errorf("failed to get note: %w", err)
	}
	if note == nil {
		return nil, ErrNotFound
	}

	note.ApplyUpdate(title, content, tags)

	if err := uc.noteRepo.Update(ctx, note); err != nil {
		if errors.Is(err, repositories.ErrNoteNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to update note: %w", err)
	}

	return note, nil
}

// DeleteNote permanently removes a note. Deleting an id that does not exist
// returns ErrNotFound, including repeated deletes of the same id.
func (uc *NoteUseCase) DeleteNote(ctx context.Context, noteID string) error {
	if err := validateNoteID(noteID); err != nil {
		return err
	}

	if err := uc.noteRepo.Delete(ctx, noteID); err != nil {
		if errors.Is(err, repositories.ErrNoteNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to delete note: %w", err)
	}

	return nil
}

func validateNoteID(noteID string) error {
	if _, err := uuid.Parse(noteID); err != nil {
		return ErrInvalidNoteID
	}
	return nil
}
