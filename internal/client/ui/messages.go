package ui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"mdnotes/internal/client"
	"mdnotes/internal/client/drafts"
	"mdnotes/internal/notes/domain/entities"
)

// Messages produced by API and draft-store commands.
type (
	notesFetchedMsg struct {
		seq        uint64
		notes      []*entities.Note
		pagination entities.Pagination
	}
	tagsFetchedMsg struct {
		tags []string
	}
	noteSavedMsg struct {
		note *entities.Note
	}
	noteDeletedMsg struct{}
	draftLoadedMsg struct {
		key   string
		draft *drafts.Draft
	}
	errorMsg struct {
		err error
	}
)

func fetchNotesCmd(api *client.APIClient, seq uint64, query entities.ListQuery) tea.Cmd {
	return func() tea.Msg {
		notes, pagination, err := api.ListNotes(context.Background(), query)
		if err != nil {
			return errorMsg{err: err}
		}
		return notesFetchedMsg{seq: seq, notes: notes, pagination: pagination}
	}
}

func fetchTagsCmd(api *client.APIClient) tea.Cmd {
	return func() tea.Msg {
		tags, err := api.ListTags(context.Background())
		if err != nil {
			return errorMsg{err: err}
		}
		return tagsFetchedMsg{tags: tags}
	}
}

func createNoteCmd(api *client.APIClient, title, content string, tags []string) tea.Cmd {
	return func() tea.Msg {
		note, err := api.CreateNote(context.Background(), title, content, tags)
		if err != nil {
			return errorMsg{err: err}
		}
		return noteSavedMsg{note: note}
	}
}

func updateNoteCmd(api *client.APIClient, noteID, title, content string, tags []string) tea.Cmd {
	return func() tea.Msg {
		note, err := api.UpdateNote(context.Background(), noteID, title, content, tags)
		if err != nil {
			return errorMsg{err: err}
		}
		return noteSavedMsg{note: note}
	}
}

func deleteNoteCmd(api *client.APIClient, noteID string) tea.Cmd {
	return func() tea.Msg {
		if err := api.DeleteNote(context.Background(), noteID); err != nil {
			return errorMsg{err: err}
		}
		return noteDeletedMsg{}
	}
}

func loadDraftCmd(store drafts.Store, key string) tea.Cmd {
	return func() tea.Msg {
		draft, err := store.Load(context.Background(), key)
		if err != nil {
			return errorMsg{err: err}
		}
		return draftLoadedMsg{key: key, draft: draft}
	}
}

func saveDraftCmd(store drafts.Store, key string, draft drafts.Draft) tea.Cmd {
	return func() tea.Msg {
		// Draft write failures are not worth interrupting typing for.
		_ = store.Save(context.Background(), key, draft)
		return nil
	}
}

func clearDraftCmd(store drafts.Store, key string) tea.Cmd {
	return func() tea.Msg {
		_ = store.Clear(context.Background(), key)
		return nil
	}
}
