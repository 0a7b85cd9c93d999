// Package linkbox provides Bubble Tea widgets for working with files and
// commands: clickable file links that open an editor, icon-decorated links,
// command rows with status/spinner/elapsed-time display, and a list
// container adding uniform toggle/remove controls to any of them.
//
// Widgets communicate upward through messages (OpenedMsg, PlayMsg,
// ToggledMsg, ...) returned from their Update methods; hosts handle the
// messages they care about and let the rest bubble.
package linkbox
