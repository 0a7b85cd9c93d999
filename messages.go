package linkbox

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
)

// OpenedMsg is emitted after a link successfully launched its editor
// command. Line and Column are zero when unset.
type OpenedMsg struct {
	Path   string
	Line   int
	Column int
}

// IconActivatedMsg is emitted when a clickable icon is triggered, either by
// its digit shortcut or its custom key.
type IconActivatedMsg struct {
	Path  string
	Name  string
	Glyph string
}

// PlayMsg is emitted when a command row is asked to start.
type PlayMsg struct {
	Name       string
	OutputPath string
}

// StopMsg is emitted when a running command row is asked to stop.
type StopMsg struct {
	Name       string
	OutputPath string
}

// SettingsMsg is emitted when a command row's settings control is triggered.
type SettingsMsg struct {
	Name       string
	OutputPath string
}

// ToggledMsg is emitted when a list item's toggle state changes.
type ToggledMsg struct {
	ID      string
	Toggled bool
}

// RemovedMsg is emitted when an item leaves a list.
type RemovedMsg struct {
	ID string
}

// NotifyMsg carries a one-shot user-visible notification, typically a
// failed editor launch. Failures surface here instead of propagating.
type NotifyMsg struct {
	Text  string
	IsErr bool
}

// Notify returns a command that surfaces a notification.
func Notify(format string, args ...any) tea.Cmd {
	text := fmt.Sprintf(format, args...)
	return func() tea.Msg { return NotifyMsg{Text: text} }
}

// NotifyError returns a command that surfaces an error notification, or
// nil when err is nil.
func NotifyError(err error) tea.Cmd {
	if err == nil {
		return nil
	}
	text := err.Error()
	return func() tea.Msg { return NotifyMsg{Text: text, IsErr: true} }
}
