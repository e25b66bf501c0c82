package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"

	"mdnotes/internal/notes/domain/entities"
)

// viewerModel shows a single note with its Markdown rendered for the
// terminal.
type viewerModel struct {
	styles   *Styles
	note     *entities.Note
	rendered string
	width    int
}

func newViewerModel(styles *Styles, note *entities.Note, width int) *viewerModel {
	m := &viewerModel{styles: styles, note: note, width: width}
	m.render()
	return m
}

func (m *viewerModel) setSize(width, _ int) {
	if width != m.width {
		m.width = width
		m.render()
	}
}

func (m *viewerModel) render() {
	wrap := m.width - 4
	if wrap < 20 {
		wrap = 80
	}

	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(wrap),
	)
	if err != nil {
		m.rendered = m.note.Content
		return
	}

	out, err := renderer.Render(m.note.Content)
	if err != nil {
		// Fall back to the raw Markdown.
		m.rendered = m.note.Content
		return
	}
	m.rendered = out
}

func (a *App) openViewer(note *entities.Note) {
	a.viewer = newViewerModel(a.styles, note, a.width)
}

func (a *App) updateViewer(msg tea.Msg) (tea.Model, tea.Cmd) {
	if a.viewer == nil {
		a.session.CloseViewer()
		return a, nil
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "e":
			note := a.viewer.note
			a.viewer = nil
			a.session.Edit(note)
			return a, a.openEditor(note)

		case "esc", "q":
			a.viewer = nil
			a.session.CloseViewer()
		}
	}
	return a, nil
}

func (m *viewerModel) view() string {
	var b strings.Builder

	b.WriteString(m.styles.Title.Render(m.note.Title))
	b.WriteString("\n")

	meta := fmt.Sprintf("created %s · updated %s",
		m.note.CreatedAt.Format("2006-01-02 15:04"),
		m.note.UpdatedAt.Format("2006-01-02 15:04"))
	b.WriteString(m.styles.Dim.Render(meta))
	b.WriteString("\n")

	if len(m.note.Tags) > 0 {
		b.WriteString(m.styles.TagBadge.Render("[" + strings.Join(m.note.Tags, ", ") + "]"))
		b.WriteString("\n")
	}

	b.WriteString(m.rendered)
	b.WriteString("\n")
	b.WriteString(m.styles.Help.Render("e edit · esc close"))
	return b.String()
}
