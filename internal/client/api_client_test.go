package client_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mdnotes/internal/client"
	"mdnotes/internal/notes/adapters/http/dto"
	"mdnotes/internal/notes/domain/entities"
)

const noteID = "3f2ab7de-9f40-4e6a-9a3c-8b1e2f55c001"

func TestAPIClient_ListNotes(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/v1/notes", r.URL.Path)
		assert.Equal(t, "milk", r.URL.Query().Get("search"))
		assert.Equal(t, "home", r.URL.Query().Get("tag"))
		assert.Equal(t, "2", r.URL.Query().Get("page"))
		assert.Equal(t, "5", r.URL.Query().Get("limit"))
		assert.Equal(t, "title", r.URL.Query().Get("sort"))
		assert.Equal(t, "asc", r.URL.Query().Get("order"))

		require.NoError(t, json.NewEncoder(w).Encode(dto.ListResponse{
			Success:    true,
			Data:       []*entities.Note{{ID: noteID, Title: "Groceries"}},
			Pagination: entities.Pagination{CurrentPage: 2, TotalPages: 3, TotalNotes: 11, HasNext: true, HasPrev: true},
		}))
	}))
	defer server.Close()

	api := client.NewAPIClient(server.URL)

	notes, pagination, err := api.ListNotes(context.Background(), entities.ListQuery{
		Search: "milk",
		Tag:    "home",
		Page:   2,
		Limit:  5,
		Sort:   entities.SortByTitle,
		Order:  entities.OrderAsc,
	})

	require.NoError(t, err)
	require.Len(t, notes, 1)
	assert.Equal(t, noteID, notes[0].ID)
	assert.Equal(t, 3, pagination.TotalPages)
	assert.True(t, pagination.HasNext)
}

func TestAPIClient_ListTags(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/notes/tags", r.URL.Path)

		require.NoError(t, json.NewEncoder(w).Encode(dto.TagsResponse{Success: true, Data: []string{"home", "work"}}))
	}))
	defer server.Close()

	api := client.NewAPIClient(server.URL)

	tags, err := api.ListTags(context.Background())

	require.NoError(t, err)
	assert.Equal(t, []string{"home", "work"}, tags)
}

func TestAPIClient_CreateNote(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req dto.NoteRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "Groceries", req.Title)
		assert.Equal(t, []string{"home"}, req.Tags)

		w.WriteHeader(http.StatusCreated)
		require.NoError(t, json.NewEncoder(w).Encode(dto.NoteResponse{
			Success: true,
			Data:    &entities.Note{ID: noteID, Title: req.Title, Content: req.Content, Tags: req.Tags},
		}))
	}))
	defer server.Close()

	api := client.NewAPIClient(server.URL)

	note, err := api.CreateNote(context.Background(), "Groceries", "Buy milk", []string{"home"})

	require.NoError(t, err)
	require.NotNil(t, note)
	assert.Equal(t, noteID, note.ID)
}

func TestAPIClient_NotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		require.NoError(t, json.NewEncoder(w).Encode(dto.ErrorResponse{Success: false, Error: "Note not found"}))
	}))
	defer server.Close()

	api := client.NewAPIClient(server.URL)

	note, err := api.GetNote(context.Background(), noteID)

	require.Error(t, err)
	assert.Nil(t, note)

	var apiErr *client.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.True(t, apiErr.IsNotFound())
	assert.Equal(t, "Note not found", apiErr.Reason)
	assert.Equal(t, "Note not found", apiErr.Error())
}

func TestAPIClient_ValidationError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		require.NoError(t, json.NewEncoder(w).Encode(dto.ErrorResponse{
			Success: false,
			Error:   "Title and content are required",
		}))
	}))
	defer server.Close()

	api := client.NewAPIClient(server.URL)

	note, err := api.CreateNote(context.Background(), "", "", nil)

	require.Error(t, err)
	assert.Nil(t, note)

	var apiErr *client.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.False(t, apiErr.IsNotFound())
	assert.Equal(t, http.StatusBadRequest, apiErr.Status)
	assert.Equal(t, "Title and content are required", apiErr.Reason)
}

func TestAPIClient_DeleteNote(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/api/v1/notes/"+noteID, r.URL.Path)

		require.NoError(t, json.NewEncoder(w).Encode(dto.MessageResponse{Success: true, Message: "Note deleted successfully"}))
	}))
	defer server.Close()

	api := client.NewAPIClient(server.URL)

	require.NoError(t, api.DeleteNote(context.Background(), noteID))
}

func TestAPIClient_ServerUnreachable(t *testing.T) {
	api := client.NewAPIClient("http://127.0.0.1:1")

	_, err := api.ListTags(context.Background())

	require.Error(t, err)
	assert.ErrorContains(t, err, "request failed")
}
