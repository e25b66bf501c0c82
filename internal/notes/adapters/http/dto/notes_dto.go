// Package dto defines the JSON request and response shapes of the notes API.
package dto

import "mdnotes/internal/notes/domain/entities"

// NoteRequest is the body of create and update requests.
type NoteRequest struct {
	Title   string   `json:"title"`
	Content string   `json:"content"`
	Tags    []string `json:"tags"`
}

// NoteResponse wraps a single note.
type NoteResponse struct {
	Success bool           `json:"success"`
	Data    *entities.Note `json:"data"`
}

// ListResponse wraps one page of notes plus pagination metadata.
type ListResponse struct {
	Success    bool                `json:"success"`
	Data       []*entities.Note    `json:"data"`
	Pagination entities.Pagination `json:"pagination"`
}

// TagsResponse wraps the deduplicated sorted tag set.
type TagsResponse struct {
	Success bool     `json:"success"`
	Data    []string `json:"data"`
}

// MessageResponse confirms an operation without returning data.
type MessageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// ErrorResponse is the shared failure shape. Message carries the underlying
// diagnostic on server errors and is omitted otherwise.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
