package app

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"notedeck/internal/app/sanitizer"
)

func (m *Model) View() tea.View {
	v := tea.NewView(m.render())
	v.AltScreen = true
	return v
}

func (m *Model) render() string {
	width := m.width
	if width <= 0 {
		width = maxListWidth + minEditorWidth + 1
	}
	bodyHeight := max(minContentHeight, m.height-1)

	var body string
	switch {
	case m.notice.IsOpen():
		body = lipgloss.Place(width, bodyHeight, lipgloss.Center, lipgloss.Center, m.notice.View(width))
	case m.confirm.IsOpen():
		body = lipgloss.Place(width, bodyHeight, lipgloss.Center, lipgloss.Center, m.confirm.View(width))
	default:
		body = m.renderPanes(bodyHeight)
	}

	lines := strings.Split(body, "\n")
	if toast := m.toast.render(width, m.now()); toast != "" && len(lines) > 0 {
		lines[len(lines)-1] = toast
	}
	return strings.Join(append(lines, m.renderStatusLine(width)), "\n")
}

func (m *Model) renderPanes(height int) string {
	listWidth, rightWidth := m.paneWidths()
	list := padLines(clipLines(m.renderListLines(listWidth), height), listWidth)

	right := ""
	switch {
	case m.editor.IsOpen():
		right = m.renderEditor(rightWidth)
	case m.preview:
		right = m.renderPreview(rightWidth)
	}
	if right == "" {
		return list
	}
	divider := strings.TrimSuffix(strings.Repeat("│\n", height), "\n")
	right = strings.Join(clipLines(strings.Split(right, "\n"), height), "\n")
	return lipgloss.JoinHorizontal(lipgloss.Top, list, dividerStyle.Render(divider), right)
}

func (m *Model) renderListLines(width int) []string {
	lines := []string{headerStyle.Render(truncateToWidth("Notes", width))}
	if m.store.Loading() {
		lines = append(lines, activityStyle.Render(truncateToWidth(loadingNotesText, width)))
	}
	if errText := m.store.Err(); errText != "" {
		lines = append(lines, errorStyle.Render(truncateToWidth(errText, width)))
	}
	notes := m.store.Notes()
	if len(notes) == 0 {
		if !m.store.Loading() {
			lines = append(lines, "", helpStyle.Render(truncateToWidth(emptyNotesText, width)))
		}
		return lines
	}
	for _, note := range notes {
		title := sanitizer.Line(note.Title)
		if title == "" {
			title = "(untitled)"
		}
		row := truncateToWidth(" "+title, width)
		if note.ID == m.selectedID {
			lines = append(lines, selectedStyle.Render(padToWidth(row, width)))
		} else {
			lines = append(lines, noteTitleStyle.Render(row))
		}
		if snippet := firstLine(sanitizer.Block(note.Content)); snippet != "" {
			lines = append(lines, noteSnippetStyle.Render(truncateToWidth("   "+snippet, width)))
		}
	}
	return lines
}

func (m *Model) renderEditor(width int) string {
	inner := max(1, width-4)
	lines := []string{headerStyle.Render(m.editor.Heading())}
	lines = append(lines, editorLabelStyle.Render("Title"), m.editor.title.View())
	lines = append(lines, editorLabelStyle.Render("Content"), m.editor.content.View())
	switch {
	case m.editor.Saving():
		lines = append(lines, activityStyle.Render("Saving..."))
	case m.editor.Err() != "":
		lines = append(lines, errorStyle.Render(truncateToWidth(m.editor.Err(), inner)))
	default:
		lines = append(lines, "")
	}
	lines = append(lines, helpStyle.Render(truncateToWidth("ctrl+s save • ctrl+n new • tab switch field • esc cancel", inner)))
	return editorFrameStyle.Width(width - 2).Render(strings.Join(lines, "\n"))
}

func (m *Model) renderPreview(width int) string {
	note, ok := m.selectedNote()
	if !ok {
		return ""
	}
	return indentBlock(renderNotePreview(sanitizer.Line(note.Title), sanitizer.Block(note.Content), max(1, width-2)), 1)
}

func (m *Model) renderStatusLine(width int) string {
	help := helpStyle.Render(m.hintText())
	status := statusStyle.Render(m.status)
	gap := width - lipgloss.Width(help) - lipgloss.Width(status)
	if gap < 1 {
		return truncateToWidth(help, width)
	}
	return help + strings.Repeat(" ", gap) + status
}

func (m *Model) hintText() string {
	switch {
	case m.notice.IsOpen():
		return "enter dismiss"
	case m.confirm.IsOpen():
		return "y yes • n no"
	case m.editor.IsOpen():
		return "ctrl+s save • ctrl+n new • esc cancel"
	default:
		return "n new • e edit • d delete • r refresh • p preview • y copy • q quit"
	}
}

func clipLines(lines []string, height int) []string {
	if height > 0 && len(lines) > height {
		return lines[:height]
	}
	return lines
}
