package client

import (
	"mdnotes/internal/notes/domain/entities"
)

// View is the tagged union of the three client views. Exactly one concrete
// type is active at a time.
type View interface {
	isView()
}

// ListView shows the paginated, filterable note list.
type ListView struct{}

// EditorView edits an existing note, or creates a new one when Note is nil.
type EditorView struct {
	Note *entities.Note
}

// ViewerView shows a single rendered note.
type ViewerView struct {
	Note *entities.Note
}

func (ListView) isView()   {}
func (EditorView) isView() {}
func (ViewerView) isView() {}

// DeleteDialog is the confirmation overlay layered on top of the list view.
type DeleteDialog struct {
	Open bool
	Note *entities.Note
}

// Session holds the client-side list state: the active view, the delete
// dialog, filter/sort/pagination state and the last applied fetch result.
// Fetches carry a monotonically increasing sequence number; a response whose
// sequence is not newer than the last applied one is discarded, so a stale
// response can never overwrite a fresher list.
type Session struct {
	view         View
	deleteDialog DeleteDialog

	searchQuery string
	selectedTag string
	sortBy      string
	sortOrder   string
	currentPage int
	limit       int

	fetchSeq   uint64
	appliedSeq uint64

	notes      []*entities.Note
	pagination entities.Pagination
	tags       []string
}

// NewSession creates a session in the list view with the default sort
// (most recently updated first).
func NewSession(limit int) *Session {
	if limit <= 0 {
		limit = entities.DefaultLimit
	}
	return &Session{
		view:        ListView{},
		sortBy:      entities.SortByUpdatedAt,
		sortOrder:   entities.OrderDesc,
		currentPage: 1,
		limit:       limit,
	}
}

// View returns the active view.
func (s *Session) View() View { return s.view }

// Dialog returns the delete confirmation state.
func (s *Session) Dialog() DeleteDialog { return s.deleteDialog }

// Notes returns the currently displayed page of notes.
func (s *Session) Notes() []*entities.Note { return s.notes }

// Pagination returns the metadata of the currently displayed page.
func (s *Session) Pagination() entities.Pagination { return s.pagination }

// Tags returns the available tag set.
func (s *Session) Tags() []string { return s.tags }

// SearchQuery returns the active search text.
func (s *Session) SearchQuery() string { return s.searchQuery }

// SelectedTag returns the active tag filter.
func (s *Session) SelectedTag() string { return s.selectedTag }

// SortBy returns the active sort field.
func (s *Session) SortBy() string { return s.sortBy }

// SortOrder returns the active sort direction.
func (s *Session) SortOrder() string { return s.sortOrder }

// CurrentPage returns the requested page number.
func (s *Session) CurrentPage() int { return s.currentPage }

// Query builds the list query for the current filter state.
func (s *Session) Query() entities.ListQuery {
	return entities.ListQuery{
		Search: s.searchQuery,
		Tag:    s.selectedTag,
		Page:   s.currentPage,
		Limit:  s.limit,
		Sort:   s.sortBy,
		Order:  s.sortOrder,
	}
}

// SetSearch updates the search text. Changing it resets the page to 1.
// It reports whether a refetch is needed.
func (s *Session) SetSearch(query string) bool {
	if s.searchQuery == query {
		return false
	}
	s.searchQuery = query
	s.currentPage = 1
	return true
}

// SetTag updates the tag filter. Changing it resets the page to 1.
// It reports whether a refetch is needed.
func (s *Session) SetTag(tag string) bool {
	if s.selectedTag == tag {
		return false
	}
	s.selectedTag = tag
	s.currentPage = 1
	return true
}

// SetSort updates the sort field, keeping the current page.
func (s *Session) SetSort(sortBy string) bool {
	if s.sortBy == sortBy {
		return false
	}
	s.sortBy = sortBy
	return true
}

// ToggleOrder flips the sort direction. Always needs a refetch.
func (s *Session) ToggleOrder() bool {
	if s.sortOrder == entities.OrderDesc {
		s.sortOrder = entities.OrderAsc
	} else {
		s.sortOrder = entities.OrderDesc
	}
	return true
}

// SetPage moves to the given page. It reports whether a refetch is needed.
func (s *Session) SetPage(page int) bool {
	if page < 1 || page == s.currentPage {
		return false
	}
	s.currentPage = page
	return true
}

// NextPage advances one page when the current result says one exists.
func (s *Session) NextPage() bool {
	if !s.pagination.HasNext {
		return false
	}
	return s.SetPage(s.currentPage + 1)
}

// PrevPage goes back one page.
func (s *Session) PrevPage() bool {
	if !s.pagination.HasPrev {
		return false
	}
	return s.SetPage(s.currentPage - 1)
}

// NextFetch allocates the sequence number for a new list fetch.
func (s *Session) NextFetch() uint64 {
	s.fetchSeq++
	return s.fetchSeq
}

// ApplyListResult stores a fetch result unless a newer one has already been
// applied. It reports whether the result was accepted.
func (s *Session) ApplyListResult(seq uint64, notes []*entities.Note, pagination entities.Pagination) bool {
	if seq <= s.appliedSeq {
		return false
	}
	s.appliedSeq = seq
	s.notes = notes
	s.pagination = pagination
	return true
}

// ApplyTags replaces the available tag set. If the selected tag disappeared
// from the set, the filter is cleared so the list cannot get stuck on an
// unmatchable tag; the caller must refetch when this reports true.
func (s *Session) ApplyTags(tags []string) bool {
	s.tags = tags
	if s.selectedTag == "" {
		return false
	}
	for _, tag := range tags {
		if tag == s.selectedTag {
			return false
		}
	}
	return s.SetTag("")
}

// CreateNew switches from the list to the editor with no note.
func (s *Session) CreateNew() {
	s.view = EditorView{Note: nil}
}

// Edit switches to the editor for the given note, from either the list or
// the viewer.
func (s *Session) Edit(note *entities.Note) {
	s.view = EditorView{Note: note}
}

// ViewNote switches from the list to the viewer.
func (s *Session) ViewNote(note *entities.Note) {
	s.view = ViewerView{Note: note}
}

// CloseEditor returns to the list without saving.
func (s *Session) CloseEditor() {
	s.view = ListView{}
}

// SaveCompleted returns to the list after a successful save. The caller must
// refetch both the list and the tag set.
func (s *Session) SaveCompleted() {
	s.view = ListView{}
}

// CloseViewer returns to the list.
func (s *Session) CloseViewer() {
	s.view = ListView{}
}

// OpenDeleteDialog opens the confirmation overlay for the given note.
func (s *Session) OpenDeleteDialog(note *entities.Note) {
	s.deleteDialog = DeleteDialog{Open: true, Note: note}
}

// CancelDelete closes the confirmation overlay without deleting.
func (s *Session) CancelDelete() {
	s.deleteDialog = DeleteDialog{}
}

// DeleteConfirmed closes the overlay and returns the note to delete. The
// caller must run the delete mutation and then refetch.
func (s *Session) DeleteConfirmed() *entities.Note {
	note := s.deleteDialog.Note
	s.deleteDialog = DeleteDialog{}
	return note
}
