package app

import "strings"

// statusEvent names what happened, so the footer and the toast agree on how
// loud each outcome is.
type statusEvent int

const (
	statusProgress statusEvent = iota
	statusInvalidDraft
	statusBusy
	statusLoadFailed
	statusSaved
	statusDeleted
	statusMutationFailed
	statusRejected
	statusCopied
	statusCopyFailed
)

// statusToasts lists the events that also raise a toast. Progress updates
// stay in the footer, and failed mutations already open the blocking notice.
var statusToasts = map[statusEvent]toastLevel{
	statusInvalidDraft: toastLevelWarning,
	statusBusy:         toastLevelWarning,
	statusLoadFailed:   toastLevelError,
	statusSaved:        toastLevelInfo,
	statusDeleted:      toastLevelInfo,
	statusRejected:     toastLevelError,
	statusCopied:       toastLevelInfo,
	statusCopyFailed:   toastLevelError,
}

func (m *Model) report(event statusEvent, message string) {
	message = strings.TrimSpace(message)
	if message == "" {
		return
	}
	m.status = message
	if level, ok := statusToasts[event]; ok {
		m.flash(level, message)
	}
}
