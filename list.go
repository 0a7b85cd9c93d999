package linkbox

import (
	"fmt"
	"log"
	"strings"
	"sync"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sahilm/fuzzy"
)

// Item is an element a LinkList can hold. FileLink, IconLink and
// CommandLink all implement it.
type Item interface {
	ID() string
	FilterValue() string
	Update(tea.Msg) tea.Cmd
	View() string
}

// Focusable is implemented by items that participate in focus management.
type Focusable interface {
	SetFocused(bool)
	IsFocused() bool
}

type listEntry struct {
	item    Item
	toggled bool
}

// LinkList is a scrollable container wrapping arbitrary items with uniform
// toggle and remove controls. Items must carry unique, non-empty IDs; the
// list owns its entries and frees an ID when its item is removed.
type LinkList struct {
	entries []*listEntry

	showToggles bool
	showRemove  bool

	cursor  int // position within the visible (filtered) entries
	filter  string
	focused bool

	vp     viewport.Model
	keys   ListKeyMap
	styles Styles
}

// ListOption configures a LinkList during construction.
type ListOption func(*LinkList)

// WithToggles shows a toggle checkbox on every item.
func WithToggles() ListOption {
	return func(l *LinkList) { l.showToggles = true }
}

// WithRemoveButtons shows a remove control on every item.
func WithRemoveButtons() ListOption {
	return func(l *LinkList) { l.showRemove = true }
}

// WithListKeys rebinds list actions ("up", "down", "toggle", "remove").
func WithListKeys(overrides map[string][]string) ListOption {
	return func(l *LinkList) { l.keys = DefaultListKeyMap().With(overrides) }
}

// WithListStyles replaces the default widget styles.
func WithListStyles(s Styles) ListOption {
	return func(l *LinkList) { l.styles = s }
}

// WithSize sets the scroll area dimensions.
func WithSize(width, height int) ListOption {
	return func(l *LinkList) { l.vp = viewport.New(width, height) }
}

// NewLinkList builds an empty list.
func NewLinkList(opts ...ListOption) *LinkList {
	l := &LinkList{
		vp:     viewport.New(80, 10),
		keys:   DefaultListKeyMap(),
		styles: DefaultStyles(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// AddOption configures one added item.
type AddOption func(*listEntry)

// Toggled adds the item already checked.
func Toggled() AddOption {
	return func(e *listEntry) { e.toggled = true }
}

// Add appends an item. The item must have a non-empty ID that no current
// entry uses; a removed item's ID may be reused.
func (l *LinkList) Add(item Item, opts ...AddOption) error {
	if item == nil {
		return fmt.Errorf("cannot add nil item")
	}
	id := item.ID()
	if strings.TrimSpace(id) == "" {
		return fmt.Errorf("item must have a non-empty ID")
	}
	if _, ok := l.entry(id); ok {
		return fmt.Errorf("duplicate item ID %q", id)
	}
	e := &listEntry{item: item}
	for _, opt := range opts {
		opt(e)
	}
	l.entries = append(l.entries, e)
	l.syncFocus()
	return nil
}

// Remove deletes the item with the given ID and returns the command
// announcing the removal.
func (l *LinkList) Remove(id string) (tea.Cmd, error) {
	for i, e := range l.entries {
		if e.item.ID() == id {
			if f, ok := e.item.(Focusable); ok {
				f.SetFocused(false)
			}
			l.entries = append(l.entries[:i], l.entries[i+1:]...)
			l.clampCursor()
			l.syncFocus()
			return removedCmd(id), nil
		}
	}
	return nil, fmt.Errorf("no item with ID %q", id)
}

// Clear drops every entry without emitting removal messages.
func (l *LinkList) Clear() {
	for _, e := range l.entries {
		if f, ok := e.item.(Focusable); ok {
			f.SetFocused(false)
		}
	}
	l.entries = nil
	l.cursor = 0
}

// Get returns the item with the given ID.
func (l *LinkList) Get(id string) (Item, bool) {
	if e, ok := l.entry(id); ok {
		return e.item, true
	}
	return nil, false
}

// Items returns all items in insertion order.
func (l *LinkList) Items() []Item {
	out := make([]Item, len(l.entries))
	for i, e := range l.entries {
		out[i] = e.item
	}
	return out
}

// Len reports the number of entries.
func (l *LinkList) Len() int { return len(l.entries) }

// Toggled reports an item's toggle state.
func (l *LinkList) Toggled(id string) bool {
	if e, ok := l.entry(id); ok {
		return e.toggled
	}
	return false
}

// ToggledIDs returns the IDs of all checked items, in insertion order.
func (l *LinkList) ToggledIDs() []string {
	if !l.showToggles {
		return nil
	}
	var out []string
	for _, e := range l.entries {
		if e.toggled {
			out = append(out, e.item.ID())
		}
	}
	return out
}

// SetToggled sets one item's toggle state and announces the change.
func (l *LinkList) SetToggled(id string, toggled bool) (tea.Cmd, error) {
	e, ok := l.entry(id)
	if !ok {
		return nil, fmt.Errorf("no item with ID %q", id)
	}
	if !l.showToggles || e.toggled == toggled {
		return nil, nil
	}
	e.toggled = toggled
	return toggledCmd(id, toggled), nil
}

// ToggleAll checks or unchecks every item, announcing each change.
func (l *LinkList) ToggleAll(toggled bool) tea.Cmd {
	if !l.showToggles {
		return nil
	}
	var cmds []tea.Cmd
	for _, e := range l.entries {
		if e.toggled == toggled {
			continue
		}
		e.toggled = toggled
		cmds = append(cmds, toggledCmd(e.item.ID(), toggled))
	}
	return tea.Batch(cmds...)
}

// RemoveToggled removes every checked item, announcing each removal.
func (l *LinkList) RemoveToggled() tea.Cmd {
	if !l.showToggles {
		return nil
	}
	var cmds []tea.Cmd
	kept := l.entries[:0]
	for _, e := range l.entries {
		if e.toggled {
			if f, ok := e.item.(Focusable); ok {
				f.SetFocused(false)
			}
			cmds = append(cmds, removedCmd(e.item.ID()))
		} else {
			kept = append(kept, e)
		}
	}
	l.entries = kept
	l.clampCursor()
	l.syncFocus()
	return tea.Batch(cmds...)
}

// SetFilter narrows the visible entries to fuzzy matches of query against
// each item's FilterValue. An empty query shows everything.
func (l *LinkList) SetFilter(query string) {
	l.filter = query
	l.clampCursor()
	l.syncFocus()
}

// Filter returns the active filter query.
func (l *LinkList) Filter() string { return l.filter }

// SetSize resizes the scroll area.
func (l *LinkList) SetSize(width, height int) {
	l.vp.Width = width
	l.vp.Height = height
}

func (l *LinkList) SetFocused(focused bool) {
	l.focused = focused
	l.syncFocus()
}

func (l *LinkList) IsFocused() bool { return l.focused }

// CursorItem returns the item under the cursor, if any.
func (l *LinkList) CursorItem() (Item, bool) {
	vis := l.visible()
	if len(vis) == 0 || l.cursor >= len(vis) {
		return nil, false
	}
	return l.entries[vis[l.cursor]].item, true
}

func (l *LinkList) entry(id string) (*listEntry, bool) {
	for _, e := range l.entries {
		if e.item.ID() == id {
			return e, true
		}
	}
	return nil, false
}

// visible returns entry indices matching the filter, fuzzy-ranked.
func (l *LinkList) visible() []int {
	if l.filter == "" {
		out := make([]int, len(l.entries))
		for i := range l.entries {
			out[i] = i
		}
		return out
	}
	targets := make([]string, len(l.entries))
	for i, e := range l.entries {
		targets[i] = e.item.FilterValue()
	}
	matches := fuzzy.Find(l.filter, targets)
	out := make([]int, len(matches))
	for i, m := range matches {
		out[i] = m.Index
	}
	return out
}

func (l *LinkList) clampCursor() {
	if n := len(l.visible()); l.cursor >= n {
		l.cursor = max(0, n-1)
	}
}

// syncFocus gives focus to the cursor item only, and only while the list
// itself is focused.
func (l *LinkList) syncFocus() {
	current, _ := l.CursorItem()
	for _, e := range l.entries {
		f, ok := e.item.(Focusable)
		if !ok {
			continue
		}
		f.SetFocused(l.focused && e.item == current)
	}
}

func (l *LinkList) Update(msg tea.Msg) tea.Cmd {
	keyMsg, isKey := msg.(tea.KeyMsg)
	if !isKey {
		// Ticks and other broadcast messages reach every item.
		var cmds []tea.Cmd
		for _, e := range l.entries {
			if cmd := e.item.Update(msg); cmd != nil {
				cmds = append(cmds, cmd)
			}
		}
		return tea.Batch(cmds...)
	}

	if !l.focused {
		return nil
	}

	switch {
	case key.Matches(keyMsg, l.keys.Up):
		if l.cursor > 0 {
			l.cursor--
		}
		l.syncFocus()
		return nil

	case key.Matches(keyMsg, l.keys.Down):
		if l.cursor < len(l.visible())-1 {
			l.cursor++
		}
		l.syncFocus()
		return nil

	case l.showToggles && key.Matches(keyMsg, l.keys.Toggle):
		if item, ok := l.CursorItem(); ok {
			cmd, _ := l.SetToggled(item.ID(), !l.Toggled(item.ID()))
			return cmd
		}
		return nil

	case l.showRemove && key.Matches(keyMsg, l.keys.Remove):
		if item, ok := l.CursorItem(); ok {
			cmd, _ := l.Remove(item.ID())
			return cmd
		}
		return nil
	}

	if item, ok := l.CursorItem(); ok {
		return item.Update(msg)
	}
	return nil
}

func (l *LinkList) View() string {
	vis := l.visible()
	if len(vis) == 0 {
		l.vp.SetContent(l.styles.Muted.Render("no items"))
		return l.vp.View()
	}

	lines := make([]string, 0, len(vis))
	for pos, idx := range vis {
		e := l.entries[idx]
		var b strings.Builder

		if pos == l.cursor {
			b.WriteString(l.styles.Cursor.Render("▸ "))
		} else {
			b.WriteString("  ")
		}
		if l.showToggles {
			glyph := "☐"
			if e.toggled {
				glyph = "✓"
			}
			b.WriteString(l.styles.Toggle.Render(glyph))
		}
		b.WriteString(e.item.View())
		if l.showRemove {
			b.WriteString(l.styles.Remove.Render("×"))
		}
		lines = append(lines, b.String())
	}

	l.vp.SetContent(strings.Join(lines, "\n"))
	l.scrollToCursor(len(vis))
	return l.vp.View()
}

func (l *LinkList) scrollToCursor(total int) {
	top := l.vp.YOffset
	bottom := top + l.vp.Height - 1
	switch {
	case l.cursor < top:
		l.vp.SetYOffset(l.cursor)
	case l.cursor > bottom:
		l.vp.SetYOffset(l.cursor - l.vp.Height + 1)
	case total <= l.vp.Height:
		l.vp.GotoTop()
	}
}

func removedCmd(id string) tea.Cmd {
	return func() tea.Msg { return RemovedMsg{ID: id} }
}

func toggledCmd(id string, toggled bool) tea.Cmd {
	return func() tea.Msg { return ToggledMsg{ID: id, Toggled: toggled} }
}

var deprecatedToggleableOnce sync.Once

// NewToggleableFileLink builds a one-item list wrapping a FileLink with
// toggle and remove controls.
//
// Deprecated: compose a LinkList with WithToggles and WithRemoveButtons
// and add FileLinks to it instead.
func NewToggleableFileLink(path string, opts ...LinkOption) (*LinkList, error) {
	deprecatedToggleableOnce.Do(func() {
		log.Printf("linkbox: NewToggleableFileLink is deprecated; use LinkList.Add")
	})
	link, err := NewFileLink(path, opts...)
	if err != nil {
		return nil, err
	}
	list := NewLinkList(WithToggles(), WithRemoveButtons())
	if err := list.Add(link); err != nil {
		return nil, err
	}
	return list, nil
}
