package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"mdnotes/internal/notes/domain/entities"
)

// listModel holds the UI state of the list view: the cursor position and the
// search input. The filter values themselves live in the session.
type listModel struct {
	styles    *Styles
	search    textinput.Model
	searching bool
	cursor    int
	width     int
	height    int
}

func newListModel(styles *Styles) listModel {
	search := textinput.New()
	search.Placeholder = "Search notes by title or content..."
	search.CharLimit = 200
	return listModel{styles: styles, search: search}
}

func (m *listModel) setSize(width, height int) {
	m.width = width
	m.height = height
	m.search.Width = width - 10
}

func (m *listModel) clampCursor(count int) {
	if m.cursor >= count {
		m.cursor = count - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// Sort fields in the order the s key cycles through them.
var sortCycle = []string{entities.SortByUpdatedAt, entities.SortByCreatedAt, entities.SortByTitle}

func (a *App) updateList(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return a, nil
	}

	// The delete confirmation overlay swallows every key while open.
	if a.session.Dialog().Open {
		switch keyMsg.String() {
		case "y", "enter":
			note := a.session.DeleteConfirmed()
			a.loading = true
			return a, deleteNoteCmd(a.api, note.ID)
		case "n", "esc":
			a.session.CancelDelete()
		}
		return a, nil
	}

	// While the search input is focused, keystrokes edit the query and every
	// change refetches; the sequence guard discards out-of-order responses.
	if a.list.searching {
		switch keyMsg.String() {
		case "enter":
			a.list.searching = false
			a.list.search.Blur()
			return a, nil
		case "esc":
			a.list.searching = false
			a.list.search.Blur()
			a.list.search.SetValue("")
			if a.session.SetSearch("") {
				a.loading = true
				return a, a.refresh()
			}
			return a, nil
		}

		var cmd tea.Cmd
		a.list.search, cmd = a.list.search.Update(msg)
		if a.session.SetSearch(a.list.search.Value()) {
			a.loading = true
			return a, tea.Batch(cmd, a.refresh())
		}
		return a, cmd
	}

	notes := a.session.Notes()

	switch keyMsg.String() {
	case "q", "ctrl+c":
		return a, tea.Quit

	case "up", "k":
		if a.list.cursor > 0 {
			a.list.cursor--
		}

	case "down", "j":
		if a.list.cursor < len(notes)-1 {
			a.list.cursor++
		}

	case "left", "h":
		if a.session.PrevPage() {
			a.loading = true
			return a, a.refresh()
		}

	case "right", "l":
		if a.session.NextPage() {
			a.loading = true
			return a, a.refresh()
		}

	case "/":
		a.list.searching = true
		return a, a.list.search.Focus()

	case "t":
		if a.session.SetTag(nextTag(a.session.Tags(), a.session.SelectedTag())) {
			a.loading = true
			return a, a.refresh()
		}

	case "s":
		if a.session.SetSort(nextSort(a.session.SortBy())) {
			a.loading = true
			return a, a.refresh()
		}

	case "o":
		a.session.ToggleOrder()
		a.loading = true
		return a, a.refresh()

	case "r":
		a.loading = true
		return a, a.refresh()

	case "n":
		a.session.CreateNew()
		return a, a.openEditor(nil)

	case "e":
		if note := a.selectedNote(); note != nil {
			a.session.Edit(note)
			return a, a.openEditor(note)
		}

	case "enter", "v":
		if note := a.selectedNote(); note != nil {
			a.session.ViewNote(note)
			a.openViewer(note)
		}

	case "d":
		if note := a.selectedNote(); note != nil {
			a.session.OpenDeleteDialog(note)
		}
	}

	return a, nil
}

func (a *App) selectedNote() *entities.Note {
	notes := a.session.Notes()
	if a.list.cursor < 0 || a.list.cursor >= len(notes) {
		return nil
	}
	return notes[a.list.cursor]
}

func (a *App) viewList() string {
	var b strings.Builder

	pagination := a.session.Pagination()
	title := fmt.Sprintf("My Notes (%d)", pagination.TotalNotes)
	b.WriteString(a.styles.Title.Render(title))
	b.WriteString("\n\n")

	b.WriteString(a.styles.Header.Render(a.filterLine()))
	b.WriteString("\n")
	if a.list.searching || a.session.SearchQuery() != "" {
		b.WriteString(a.list.search.View())
		b.WriteString("\n")
	}
	b.WriteString("\n")

	notes := a.session.Notes()
	switch {
	case a.loading:
		b.WriteString(a.styles.Dim.Render("Loading..."))
		b.WriteString("\n")
	case len(notes) == 0:
		b.WriteString(a.styles.Dim.Render("No notes found."))
		b.WriteString("\n")
	default:
		for i, note := range notes {
			b.WriteString(a.renderNoteLine(note, i == a.list.cursor))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(a.styles.Dim.Render(a.paginationLine(pagination)))
	b.WriteString("\n")
	b.WriteString(a.styles.Help.Render("n new · e edit · enter view · d delete · / search · t tag · s sort · o order · ←/→ page · q quit"))

	if a.session.Dialog().Open {
		b.WriteString("\n\n")
		b.WriteString(a.renderDeleteDialog())
	}

	return b.String()
}

func (a *App) filterLine() string {
	parts := []string{
		fmt.Sprintf("sort: %s %s", a.session.SortBy(), a.session.SortOrder()),
	}
	if tag := a.session.SelectedTag(); tag != "" {
		parts = append(parts, "tag: "+tag)
	}
	if query := a.session.SearchQuery(); query != "" {
		parts = append(parts, "search: "+query)
	}
	return strings.Join(parts, " · ")
}

func (a *App) renderNoteLine(note *entities.Note, selected bool) string {
	line := note.Title
	if len(note.Tags) > 0 {
		line += "  " + a.styles.TagBadge.Render("["+strings.Join(note.Tags, ", ")+"]")
	}
	line += "  " + a.styles.Dim.Render(note.UpdatedAt.Format("2006-01-02 15:04"))

	if selected {
		return a.styles.Selected.Render("> " + line)
	}
	return a.styles.ListItem.Render(line)
}

func (a *App) paginationLine(p entities.Pagination) string {
	if p.TotalPages == 0 {
		return "page 0 of 0"
	}
	markers := ""
	if p.HasPrev {
		markers += "← "
	}
	line := fmt.Sprintf("%spage %d of %d", markers, p.CurrentPage, p.TotalPages)
	if p.HasNext {
		line += " →"
	}
	return line
}

func (a *App) renderDeleteDialog() string {
	note := a.session.Dialog().Note
	prompt := fmt.Sprintf("Delete note %q? This cannot be undone.\n\n(y)es / (n)o", note.Title)
	return a.styles.Dialog.Render(prompt)
}

// nextTag cycles selection through no-filter plus every available tag.
func nextTag(tags []string, current string) string {
	if len(tags) == 0 {
		return ""
	}
	if current == "" {
		return tags[0]
	}
	for i, tag := range tags {
		if tag == current {
			if i+1 < len(tags) {
				return tags[i+1]
			}
			return ""
		}
	}
	return ""
}

func nextSort(current string) string {
	for i, field := range sortCycle {
		if field == current {
			return sortCycle[(i+1)%len(sortCycle)]
		}
	}
	return sortCycle[0]
}
