package app

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	xansi "github.com/charmbracelet/x/ansi"
)

type confirmChoice int

const (
	confirmChoiceNone confirmChoice = iota
	confirmChoiceConfirm
	confirmChoiceCancel
)

const (
	confirmMaxWidth = 60
	dialogMinWidth  = 24
)

// ConfirmController is the blocking yes/no prompt shown before a delete.
// The default selection is the cancel button.
type ConfirmController struct {
	active       bool
	title        string
	message      string
	confirmLabel string
	cancelLabel  string
	selected     int
}

func NewConfirmController() *ConfirmController {
	return &ConfirmController{}
}

func (c *ConfirmController) IsOpen() bool {
	return c != nil && c.active
}

func (c *ConfirmController) Open(title, message, confirmLabel, cancelLabel string) {
	if c == nil {
		return
	}
	c.active = true
	c.title = strings.TrimSpace(title)
	c.message = strings.TrimSpace(message)
	if confirmLabel == "" {
		confirmLabel = "Yes"
	}
	if cancelLabel == "" {
		cancelLabel = "No"
	}
	c.confirmLabel = confirmLabel
	c.cancelLabel = cancelLabel
	c.selected = 1
}

func (c *ConfirmController) Close() {
	if c == nil {
		return
	}
	c.active = false
	c.title = ""
	c.message = ""
	c.confirmLabel = ""
	c.cancelLabel = ""
	c.selected = 1
}

// HandleKey consumes every key while open so nothing leaks to the list.
func (c *ConfirmController) HandleKey(msg tea.KeyMsg) (bool, confirmChoice) {
	if c == nil || !c.active {
		return false, confirmChoiceNone
	}
	switch msg.String() {
	case "esc", "q", "n", "N":
		return true, confirmChoiceCancel
	case "y", "Y":
		return true, confirmChoiceConfirm
	case "left", "h":
		c.selected = 0
	case "right", "l":
		c.selected = 1
	case "tab", "shift+tab":
		c.selected = 1 - c.selected
	case "enter":
		if c.selected == 0 {
			return true, confirmChoiceConfirm
		}
		return true, confirmChoiceCancel
	}
	return true, confirmChoiceNone
}

func (c *ConfirmController) View(maxWidth int) string {
	if c == nil || !c.active {
		return ""
	}
	width := dialogWidth(maxWidth, c.title, c.message, xansi.StringWidth(c.confirmLabel)+xansi.StringWidth(c.cancelLabel)+6)
	contentWidth := max(1, width-4)

	confirm := padToWidth(truncateToWidth("["+c.confirmLabel+"]", contentWidth/2), contentWidth/2)
	cancel := padToWidth(truncateToWidth("["+c.cancelLabel+"]", contentWidth-contentWidth/2), contentWidth-contentWidth/2)
	if c.selected == 0 {
		confirm = selectedStyle.Render(confirm)
		cancel = dialogBodyStyle.Render(cancel)
	} else {
		confirm = dialogBodyStyle.Render(confirm)
		cancel = selectedStyle.Render(cancel)
	}
	title := c.title
	if title == "" {
		title = "Confirm"
	}
	return renderDialog(confirmDialogBorderStyle, title, c.message, " "+confirm+cancel+" ", width)
}

func dialogWidth(maxWidth int, title, message string, buttonWidth int) int {
	contentWidth := max(xansi.StringWidth(title), xansi.StringWidth(message), buttonWidth)
	width := max(dialogMinWidth, contentWidth+4)
	width = min(width, confirmMaxWidth)
	if maxWidth > 0 && width > maxWidth {
		width = maxWidth
	}
	return width
}

func renderDialog(frame lipgloss.Style, title, message, buttons string, width int) string {
	contentWidth := max(1, width-4)
	lines := []string{dialogHeaderStyle.Render(" " + padToWidth(truncateToWidth(title, contentWidth), contentWidth) + " ")}
	if message != "" {
		wrapped := xansi.Hardwrap(message, contentWidth, true)
		for _, line := range strings.Split(wrapped, "\n") {
			line = truncateToWidth(line, contentWidth)
			lines = append(lines, dialogBodyStyle.Render(" "+padToWidth(line, contentWidth)+" "))
		}
	}
	lines = append(lines, buttons)
	return frame.Render(strings.Join(lines, "\n"))
}
