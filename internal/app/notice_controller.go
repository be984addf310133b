package app

import (
	"strings"

	tea "charm.land/bubbletea/v2"
)

// NoticeController is a blocking acknowledgement dialog for failed
// mutations. While open it swallows all keys.
type NoticeController struct {
	active  bool
	title   string
	message string
}

func NewNoticeController() *NoticeController {
	return &NoticeController{}
}

func (c *NoticeController) IsOpen() bool {
	return c != nil && c.active
}

func (c *NoticeController) Open(title, message string) {
	if c == nil {
		return
	}
	c.active = true
	c.title = strings.TrimSpace(title)
	c.message = strings.TrimSpace(message)
}

func (c *NoticeController) Close() {
	if c == nil {
		return
	}
	c.active = false
	c.title = ""
	c.message = ""
}

func (c *NoticeController) Message() string {
	if c == nil {
		return ""
	}
	return c.message
}

// HandleKey reports whether the key was consumed and whether the notice was
// dismissed.
func (c *NoticeController) HandleKey(msg tea.KeyMsg) (bool, bool) {
	if !c.IsOpen() {
		return false, false
	}
	switch msg.String() {
	case "enter", "esc", "space", " ", "q":
		c.Close()
		return true, true
	}
	return true, false
}

func (c *NoticeController) View(maxWidth int) string {
	if !c.IsOpen() {
		return ""
	}
	title := c.title
	if title == "" {
		title = "Notice"
	}
	width := dialogWidth(maxWidth, title, c.message, 6)
	contentWidth := max(1, width-4)
	button := " " + selectedStyle.Render(padToWidth("[OK]", contentWidth)) + " "
	return renderDialog(noticeDialogBorderStyle, title, c.message, button, width)
}
