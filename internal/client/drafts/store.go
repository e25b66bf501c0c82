// Package drafts persists in-progress, unsaved edits so a draft survives a
// client restart within a freshness window.
package drafts

import (
	"context"
	"time"
)

// NewNoteKey is the draft key used while creating a note that has no id yet.
const NewNoteKey = "new"

// DefaultTTL is the freshness window after which a draft is discarded.
const DefaultTTL = 24 * time.Hour

// Draft is an unsaved copy of editor state.
type Draft struct {
	Title   string    `json:"title"`
	Content string    `json:"content"`
	Tags    []string  `json:"tags"`
	SavedAt time.Time `json:"savedAt"`
}

// Store keeps one draft per note id (or NewNoteKey). Load returns (nil, nil)
// when no fresh draft exists.
type Store interface {
	Save(ctx context.Context, key string, draft Draft) error
	Load(ctx context.Context, key string) (*Draft, error)
	Clear(ctx context.Context, key string) error
}
