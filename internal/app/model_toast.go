package app

import (
	"strings"
	"time"

	"charm.land/lipgloss/v2"
)

const toastDuration = 3 * time.Second

type toastLevel int

const (
	toastLevelInfo toastLevel = iota
	toastLevelWarning
	toastLevelError
)

// toast is a short-lived message drawn over the right end of the last body
// line. The zero value is hidden.
type toast struct {
	text  string
	level toastLevel
	until time.Time
}

func newToast(level toastLevel, text string, now time.Time) toast {
	text = strings.TrimSpace(text)
	if text == "" {
		return toast{}
	}
	return toast{text: text, level: level, until: now.Add(toastDuration)}
}

func (t toast) visible(at time.Time) bool {
	return t.text != "" && at.Before(t.until)
}

func (t toast) render(width int, at time.Time) string {
	if width <= 0 || !t.visible(at) {
		return ""
	}
	text := truncateToWidth(t.text, max(1, width-4))
	pill := toastStyleFor(t.level).Render(" " + text + " ")
	return lipgloss.PlaceHorizontal(width, lipgloss.Right, pill)
}

func toastStyleFor(level toastLevel) lipgloss.Style {
	switch level {
	case toastLevelWarning:
		return toastWarningStyle
	case toastLevelError:
		return toastErrorStyle
	default:
		return toastInfoStyle
	}
}

func (m *Model) flash(level toastLevel, text string) {
	m.toast = newToast(level, text, m.now())
}

// expireToast drops the toast once its deadline has passed at tick time.
func (m *Model) expireToast(at time.Time) {
	if m.toast.text != "" && !m.toast.visible(at) {
		m.toast = toast{}
	}
}
