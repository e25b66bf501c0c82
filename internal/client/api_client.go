// Package client implements the terminal client for the notes API: an HTTP
// client, the session state machine and draft handling.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"mdnotes/internal/notes/adapters/http/dto"
	"mdnotes/internal/notes/domain/entities"
)

// APIError is a non-2xx response from the notes API.
type APIError struct {
	Status  int
	Reason  string
	Message string
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s: %s", e.Reason, e.Message)
	}
	return e.Reason
}

// IsNotFound reports whether the server answered 404.
func (e *APIError) IsNotFound() bool {
	return e.Status == http.StatusNotFound
}

// APIClient talks to the notes API over HTTP.
type APIClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewAPIClient creates a client for the given server base URL.
func NewAPIClient(baseURL string) *APIClient {
	return &APIClient{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// ListNotes fetches one page of notes for the given query.
func (c *APIClient) ListNotes(ctx context.Context, query entities.ListQuery) ([]*entities.Note, entities.Pagination, error) {
	params := url.Values{}
	params.Set("search", query.Search)
	params.Set("tag", query.Tag)
	params.Set("page", strconv.Itoa(query.Page))
	params.Set("limit", strconv.Itoa(query.Limit))
	params.Set("sort", query.Sort)
	params.Set("order", query.Order)

	var resp dto.ListResponse
	if err := c.do(ctx, http.MethodGet, "/api/v1/notes?"+params.Encode(), nil, &resp); err != nil {
		return nil, entities.Pagination{}, err
	}
	return resp.Data, resp.Pagination, nil
}

// ListTags fetches the deduplicated sorted tag set.
func (c *APIClient) ListTags(ctx context.Context) ([]string, error) {
	var resp dto.TagsResponse
	if err := c.do(ctx, http.MethodGet, "/api/v1/notes/tags", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

// GetNote fetches a single note by id.
func (c *APIClient) GetNote(ctx context.Context, noteID string) (*entities.Note, error) {
	var resp dto.NoteResponse
	if err := c.do(ctx, http.MethodGet, "/api/v1/notes/"+url.PathEscape(noteID), nil, &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

// CreateNote creates a new note.
func (c *APIClient) CreateNote(ctx context.Context, title, content string, tags []string) (*entities.Note, error) {
	body := dto.NoteRequest{Title: title, Content: content, Tags: tags}

	var resp dto.NoteResponse
	if err := c.do(ctx, http.MethodPost, "/api/v1/notes", &body, &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

// UpdateNote replaces title, content and tags of an existing note.
func (c *APIClient) UpdateNote(ctx context.Context, noteID, title, content string, tags []string) (*entities.Note, error) {
	body := dto.NoteRequest{Title: title, Content: content, Tags: tags}

	var resp dto.NoteResponse
	if err := c.do(ctx, http.MethodPut, "/api/v1/notes/"+url.PathEscape(noteID), &body, &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

// DeleteNote permanently removes a note.
func (c *APIClient) DeleteNote(ctx context.Context, noteID string) error {
	var resp dto.MessageResponse
	return c.do(ctx, http.MethodDelete, "/api/v1/notes/"+url.PathEscape(noteID), nil, &resp)
}

func (c *APIClient) do(ctx context.Context, method, path string, body, out any) error {
	var reqBody io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reqBody = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var apiErr dto.ErrorResponse
		if err := json.NewDecoder(resp.Body).Decode(&apiErr); err != nil {
			return &APIError{Status: resp.StatusCode, Reason: resp.Status}
		}
		return &APIError{Status: resp.StatusCode, Reason: apiErr.Error, Message: apiErr.Message}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
