// Package repositories defines repository interfaces for the notes service.
package repositories

import (
	"context"

	"mdnotes/internal/notes/domain/entities"
)

// NoteRepository is the storage contract for notes. List applies the
// normalized query as a whole; filters are never partially applied. GetByID
// returns (nil, nil) when no note matches.
type NoteRepository interface {
	Create(ctx context.Context, note *entities.Note) (string, error)
	GetByID(ctx context.Context, noteID string) (*entities.Note, error)
	List(ctx context.Context, query entities.ListQuery) ([]*entities.Note, int, error)
	ListTags(ctx context.Context) ([]string, error)
	Update(ctx context.Context, note *entities.Note) error
	Delete(ctx context.Context, noteID string) error
}
