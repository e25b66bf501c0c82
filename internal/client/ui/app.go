package ui

import (
	tea "github.com/charmbracelet/bubbletea"

	"mdnotes/internal/client"
	"mdnotes/internal/client/drafts"
)

// App is the root bubbletea model. It owns the session state machine and
// dispatches to the view that the session says is active.
type App struct {
	session *client.Session
	api     *client.APIClient
	drafts  drafts.Store
	styles  *Styles

	list   listModel
	editor *editorModel
	viewer *viewerModel

	width  int
	height int

	status    string
	statusErr bool
	loading   bool
}

// NewApp creates the root model.
func NewApp(api *client.APIClient, draftStore drafts.Store, pageLimit int) *App {
	styles := NewStyles(TokyoNight)
	return &App{
		session: client.NewSession(pageLimit),
		api:     api,
		drafts:  draftStore,
		styles:  styles,
		list:    newListModel(styles),
	}
}

// Init requests the first page and the tag set.
func (a *App) Init() tea.Cmd {
	a.loading = true
	return a.refresh()
}

// refresh fetches the current page under a fresh sequence number, together
// with the tag set. The tag set is refetched on every list fetch so the
// filter never goes stale.
func (a *App) refresh() tea.Cmd {
	seq := a.session.NextFetch()
	return tea.Batch(
		fetchNotesCmd(a.api, seq, a.session.Query()),
		fetchTagsCmd(a.api),
	)
}

// Update handles shared messages and hands the rest to the active view.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.list.setSize(msg.Width, msg.Height)
		if a.editor != nil {
			a.editor.setSize(msg.Width, msg.Height)
		}
		if a.viewer != nil {
			a.viewer.setSize(msg.Width, msg.Height)
		}
		return a, nil

	case notesFetchedMsg:
		if a.session.ApplyListResult(msg.seq, msg.notes, msg.pagination) {
			a.loading = false
			a.list.clampCursor(len(msg.notes))
		}
		return a, nil

	case tagsFetchedMsg:
		if a.session.ApplyTags(msg.tags) {
			// The selected tag vanished and the filter was cleared.
			return a, a.refresh()
		}
		return a, nil

	case noteSavedMsg:
		key := drafts.NewNoteKey
		if a.editor != nil {
			key = a.editor.draftKey()
		}
		a.editor = nil
		a.session.SaveCompleted()
		a.setStatus("Note saved", false)
		a.loading = true
		return a, tea.Batch(clearDraftCmd(a.drafts, key), a.refresh())

	case noteDeletedMsg:
		a.setStatus("Note deleted", false)
		a.loading = true
		return a, a.refresh()

	case draftLoadedMsg:
		if a.editor != nil && a.editor.draftKey() == msg.key && msg.draft != nil {
			a.editor.applyDraft(msg.draft)
		}
		return a, nil

	case errorMsg:
		a.loading = false
		a.setStatus(msg.err.Error(), true)
		return a, nil
	}

	switch a.session.View().(type) {
	case client.ListView:
		return a.updateList(msg)
	case client.EditorView:
		return a.updateEditor(msg)
	case client.ViewerView:
		return a.updateViewer(msg)
	}
	return a, nil
}

// View renders the active view with the status line underneath.
func (a *App) View() string {
	var body string
	switch a.session.View().(type) {
	case client.ListView:
		body = a.viewList()
	case client.EditorView:
		if a.editor != nil {
			body = a.editor.view()
		}
	case client.ViewerView:
		if a.viewer != nil {
			body = a.viewer.view()
		}
	}

	if a.status != "" {
		style := a.styles.StatusInfo
		if a.statusErr {
			style = a.styles.StatusErr
		}
		body += "\n" + style.Render(a.status)
	}
	return body
}

func (a *App) setStatus(msg string, isErr bool) {
	a.status = msg
	a.statusErr = isErr
}
