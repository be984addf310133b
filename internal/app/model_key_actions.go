package app

import tea "charm.land/bubbletea/v2"

// handleKey routes a key press to the topmost layer: notice, confirmation,
// editor, then the list.
func (m *Model) handleKey(msg tea.KeyPressMsg) tea.Cmd {
	if m.notice.IsOpen() {
		m.notice.HandleKey(msg)
		return nil
	}
	if m.confirm.IsOpen() {
		_, choice := m.confirm.HandleKey(msg)
		if choice == confirmChoiceNone {
			return nil
		}
		return m.resolveDelete(choice)
	}
	if msg.String() == "ctrl+c" {
		return tea.Quit
	}
	if m.editor.IsOpen() {
		if msg.String() == "ctrl+n" {
			m.requestNew()
			m.report(statusProgress, "new note")
			return nil
		}
		action, cmd := m.editor.HandleKey(msg)
		switch action {
		case editorActionSubmit:
			return m.submitEditor()
		case editorActionCancel:
			m.cancelEditor()
			return nil
		}
		return cmd
	}
	return m.handleListKey(msg)
}

func (m *Model) handleListKey(msg tea.KeyPressMsg) tea.Cmd {
	switch msg.String() {
	case "q":
		return tea.Quit
	case "j", "down":
		m.moveSelection(1)
	case "k", "up":
		m.moveSelection(-1)
	case "g", "home":
		m.moveSelection(-m.store.Len())
	case "G", "end":
		m.moveSelection(m.store.Len())
	case "n":
		m.requestNew()
	case "e", "enter":
		if note, ok := m.selectedNote(); ok {
			m.requestEdit(note)
		}
	case "d", "delete":
		if note, ok := m.selectedNote(); ok {
			m.requestDelete(note.ID)
		}
	case "r":
		return m.refresh()
	case "p":
		m.togglePreview()
	case "y":
		return m.copySelected()
	}
	return nil
}
