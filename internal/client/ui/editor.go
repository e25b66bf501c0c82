package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"mdnotes/internal/client/drafts"
	"mdnotes/internal/notes/domain/entities"
)

// Focusable editor fields, cycled with tab.
const (
	focusTitle = iota
	focusContent
	focusTags
	focusCount
)

// editorModel edits one note. A nil note means a new one is being created.
// Every input change writes a draft under the note's key so an interrupted
// session can be resumed within the draft TTL.
type editorModel struct {
	styles *Styles
	note   *entities.Note

	title   textinput.Model
	content textarea.Model
	tags    textinput.Model
	focus   int
}

func newEditorModel(styles *Styles, note *entities.Note, width, height int) *editorModel {
	title := textinput.New()
	title.Placeholder = "Note title"
	title.CharLimit = entities.MaxTitleLength
	title.Focus()

	content := textarea.New()
	content.Placeholder = "Write your note in Markdown..."
	content.CharLimit = entities.MaxContentLength

	tags := textinput.New()
	tags.Placeholder = "Comma-separated tags (max 10)"

	m := &editorModel{
		styles:  styles,
		note:    note,
		title:   title,
		content: content,
		tags:    tags,
	}
	if note != nil {
		m.title.SetValue(note.Title)
		m.content.SetValue(note.Content)
		m.tags.SetValue(strings.Join(note.Tags, ", "))
	}
	m.setSize(width, height)
	return m
}

func (m *editorModel) setSize(width, height int) {
	if width <= 0 {
		return
	}
	m.title.Width = width - 10
	m.tags.Width = width - 10
	m.content.SetWidth(width - 6)
	if height > 14 {
		m.content.SetHeight(height - 12)
	}
}

// draftKey is the note id, or the "new" sentinel for an unsaved note.
func (m *editorModel) draftKey() string {
	if m.note == nil {
		return drafts.NewNoteKey
	}
	return m.note.ID
}

func (m *editorModel) applyDraft(draft *drafts.Draft) {
	m.title.SetValue(draft.Title)
	m.content.SetValue(draft.Content)
	m.tags.SetValue(strings.Join(draft.Tags, ", "))
}

func (m *editorModel) draft() drafts.Draft {
	return drafts.Draft{
		Title:   m.title.Value(),
		Content: m.content.Value(),
		Tags:    m.tagList(),
	}
}

// tagList parses the comma-separated input, trimming and dropping blanks.
func (m *editorModel) tagList() []string {
	parts := strings.Split(m.tags.Value(), ",")
	tags := make([]string, 0, len(parts))
	for _, part := range parts {
		if tag := strings.TrimSpace(part); tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}

func (m *editorModel) cycleFocus() {
	m.title.Blur()
	m.content.Blur()
	m.tags.Blur()

	m.focus = (m.focus + 1) % focusCount
	switch m.focus {
	case focusTitle:
		m.title.Focus()
	case focusContent:
		m.content.Focus()
	case focusTags:
		m.tags.Focus()
	}
}

// openEditor builds the editor for the given note and kicks off the draft
// lookup.
func (a *App) openEditor(note *entities.Note) tea.Cmd {
	a.editor = newEditorModel(a.styles, note, a.width, a.height)
	return loadDraftCmd(a.drafts, a.editor.draftKey())
}

func (a *App) updateEditor(msg tea.Msg) (tea.Model, tea.Cmd) {
	if a.editor == nil {
		a.session.CloseEditor()
		return a, nil
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			key := a.editor.draftKey()
			a.editor = nil
			a.session.CloseEditor()
			return a, clearDraftCmd(a.drafts, key)

		case "tab":
			a.editor.cycleFocus()
			return a, nil

		case "ctrl+s":
			return a, a.saveEditor()
		}
	}

	var cmds []tea.Cmd
	var cmd tea.Cmd
	switch a.editor.focus {
	case focusTitle:
		a.editor.title, cmd = a.editor.title.Update(msg)
	case focusContent:
		a.editor.content, cmd = a.editor.content.Update(msg)
	case focusTags:
		a.editor.tags, cmd = a.editor.tags.Update(msg)
	}
	cmds = append(cmds, cmd)

	if _, ok := msg.(tea.KeyMsg); ok {
		cmds = append(cmds, saveDraftCmd(a.drafts, a.editor.draftKey(), a.editor.draft()))
	}

	return a, tea.Batch(cmds...)
}

// saveEditor validates locally and dispatches the create or update mutation.
// Validation failures keep the editor open with a status message; the server
// remains the authority on the full rule set.
func (a *App) saveEditor() tea.Cmd {
	title := strings.TrimSpace(a.editor.title.Value())
	content := strings.TrimSpace(a.editor.content.Value())
	tags := a.editor.tagList()

	if title == "" || content == "" {
		a.setStatus("Title and content are required", true)
		return nil
	}
	if len(tags) > entities.MaxTags {
		a.setStatus("Cannot have more than 10 tags", true)
		return nil
	}

	a.loading = true
	if a.editor.note == nil {
		return createNoteCmd(a.api, title, content, tags)
	}
	return updateNoteCmd(a.api, a.editor.note.ID, title, content, tags)
}

func (m *editorModel) view() string {
	var b strings.Builder

	heading := "New Note"
	if m.note != nil {
		heading = "Edit Note"
	}
	b.WriteString(m.styles.Title.Render(heading))
	b.WriteString("\n\n")

	b.WriteString(m.styles.Header.Render("Title"))
	b.WriteString("\n")
	b.WriteString(m.title.View())
	b.WriteString("\n\n")

	b.WriteString(m.styles.Header.Render("Content"))
	b.WriteString("\n")
	b.WriteString(m.content.View())
	b.WriteString("\n\n")

	b.WriteString(m.styles.Header.Render("Tags"))
	b.WriteString("\n")
	b.WriteString(m.tags.View())
	b.WriteString("\n\n")

	b.WriteString(m.styles.Help.Render("tab next field · ctrl+s save · esc cancel"))
	return b.String()
}
