// Package entities defines the domain entities for the notes service.
package entities

import (
	"strings"
	"time"
	"unicode/utf8"
)

// Field bounds enforced on every create and update.
const (
	MaxTitleLength   = 200
	MaxContentLength = 10000
	MaxTags          = 10
	MaxTagLength     = 50
)

// Note is a single Markdown note. Content is stored as plain text; Markdown
// is interpreted by the presentation layer only.
type Note struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Tags      []string  `json:"tags"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// NewNote creates a note with trimmed fields and both timestamps set to the
// same instant, so a fresh note always satisfies CreatedAt == UpdatedAt.
func NewNote(title, content string, tags []string) *Note {
	now := time.Now()
	return &Note{
		Title:     strings.TrimSpace(title),
		Content:   strings.TrimSpace(content),
		Tags:      NormalizeTags(tags),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// ApplyUpdate replaces title, content and tags and refreshes UpdatedAt.
// CreatedAt is never touched.
func (n *Note) ApplyUpdate(title, content string, tags []string) {
	n.Title = strings.TrimSpace(title)
	n.Content = strings.TrimSpace(content)
	n.Tags = NormalizeTags(tags)
	n.UpdatedAt = time.Now()
}

// NormalizeTags drops tags that are empty after trimming. The surviving
// entries keep their original spelling; duplicates are not rejected here.
func NormalizeTags(tags []string) []string {
	normalized := make([]string, 0, len(tags))
	for _, tag := range tags {
		if strings.TrimSpace(tag) != "" {
			normalized = append(normalized, tag)
		}
	}
	return normalized
}

// ValidateFields checks create/update input against the field bounds and
// returns a ValidationError describing the first violation. Lengths are
// measured in characters, not bytes, so multibyte text gets the full bounds.
func ValidateFields(title, content string, tags []string) error {
	if strings.TrimSpace(title) == "" || strings.TrimSpace(content) == "" {
		return NewValidationError("Title and content are required")
	}
	if utf8.RuneCountInString(strings.TrimSpace(title)) > MaxTitleLength {
		return NewValidationError("Title cannot be more than 200 characters")
	}
	if utf8.RuneCountInString(strings.TrimSpace(content)) > MaxContentLength {
		return NewValidationError("Content cannot be more than 10000 characters")
	}
	if len(tags) > MaxTags {
		return NewValidationError("Cannot have more than 10 tags")
	}
	for _, tag := range tags {
		if utf8.RuneCountInString(tag) > MaxTagLength {
			return NewValidationError("Tags cannot be more than 50 characters")
		}
	}
	return nil
}
