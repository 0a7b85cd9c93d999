package linkbox

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// Slot places an icon before or after the link name.
type Slot int

const (
	SlotBefore Slot = iota
	SlotAfter
)

// IconLink is a FileLink decorated with icon slots on either side of the
// name. Clickable visible icons get digit shortcuts 1-9 in display order,
// before-slot first, plus any per-icon custom key.
type IconLink struct {
	link    *FileLink
	before  []Icon
	after   []Icon
	focused bool
}

// NewIconLink builds an icon-decorated link. Every icon is validated; icon
// names must be unique across both slots and a slot holds at most
// MaxSlotIcons icons.
func NewIconLink(path string, before, after []Icon, opts ...LinkOption) (*IconLink, error) {
	link, err := NewFileLink(path, opts...)
	if err != nil {
		return nil, err
	}
	il := &IconLink{link: link}
	for _, ic := range before {
		if err := il.AddIcon(SlotBefore, ic); err != nil {
			return nil, err
		}
	}
	for _, ic := range after {
		if err := il.AddIcon(SlotAfter, ic); err != nil {
			return nil, err
		}
	}
	return il, nil
}

// Link exposes the embedded FileLink.
func (il *IconLink) Link() *FileLink { return il.link }

func (il *IconLink) ID() string          { return il.link.ID() }
func (il *IconLink) FilterValue() string { return il.link.FilterValue() }

func (il *IconLink) SetFocused(focused bool) {
	il.focused = focused
	il.link.SetFocused(focused)
}

func (il *IconLink) IsFocused() bool { return il.focused }

// AddIcon validates and stores an icon in a slot.
func (il *IconLink) AddIcon(slot Slot, ic Icon) error {
	if err := ic.Validate(); err != nil {
		return err
	}
	if _, ok := il.findIcon(ic.Name); ok {
		return fmt.Errorf("duplicate icon name %q", ic.Name)
	}
	target := &il.before
	if slot == SlotAfter {
		target = &il.after
	}
	if len(*target) >= MaxSlotIcons {
		return fmt.Errorf("slot already holds %d icons", MaxSlotIcons)
	}
	*target = append(*target, ic)
	return nil
}

// RemoveIcon deletes an icon by name.
func (il *IconLink) RemoveIcon(name string) error {
	for _, slot := range []*[]Icon{&il.before, &il.after} {
		for i, ic := range *slot {
			if ic.Name == name {
				*slot = append((*slot)[:i], (*slot)[i+1:]...)
				return nil
			}
		}
	}
	return fmt.Errorf("no icon named %q", name)
}

// UpdateIcon replaces the stored icon with the same name. The whole record
// is re-validated; a rejected update leaves the old icon in place.
func (il *IconLink) UpdateIcon(ic Icon) error {
	if err := ic.Validate(); err != nil {
		return err
	}
	for _, slot := range []*[]Icon{&il.before, &il.after} {
		for i := range *slot {
			if (*slot)[i].Name == ic.Name {
				(*slot)[i] = ic
				return nil
			}
		}
	}
	return fmt.Errorf("no icon named %q", ic.Name)
}

// SetIconVisible flips an icon's visibility.
func (il *IconLink) SetIconVisible(name string, visible bool) error {
	for _, slot := range []*[]Icon{&il.before, &il.after} {
		for i := range *slot {
			if (*slot)[i].Name == name {
				(*slot)[i].Visible = visible
				return nil
			}
		}
	}
	return fmt.Errorf("no icon named %q", name)
}

// Icon returns the stored icon by name.
func (il *IconLink) Icon(name string) (Icon, bool) {
	return il.findIcon(name)
}

func (il *IconLink) findIcon(name string) (Icon, bool) {
	for _, slot := range [][]Icon{il.before, il.after} {
		for _, ic := range slot {
			if ic.Name == name {
				return ic, true
			}
		}
	}
	return Icon{}, false
}

// IconsBefore returns the resolved display order of the before slot.
func (il *IconLink) IconsBefore() []Icon { return OrderIcons(il.before) }

// IconsAfter returns the resolved display order of the after slot.
func (il *IconLink) IconsAfter() []Icon { return OrderIcons(il.after) }

// activatable lists the clickable visible icons in display order; the
// position is the digit shortcut minus one.
func (il *IconLink) activatable() []Icon {
	var out []Icon
	for _, ic := range append(il.IconsBefore(), il.IconsAfter()...) {
		if ic.Clickable {
			out = append(out, ic)
		}
	}
	return out
}

// IconTooltip synthesizes the help text for an icon, appending its
// shortcuts: "Run script (2, r)".
func (il *IconLink) IconTooltip(name string) string {
	ic, ok := il.findIcon(name)
	if !ok {
		return ""
	}
	base := ic.Tooltip
	if base == "" {
		base = ic.Name
	}
	var keys []string
	for i, candidate := range il.activatable() {
		if candidate.Name == ic.Name {
			keys = append(keys, fmt.Sprintf("%d", i+1))
			break
		}
	}
	if ic.Key != "" {
		keys = append(keys, ic.Key)
	}
	if len(keys) == 0 {
		return base
	}
	return fmt.Sprintf("%s (%s)", base, strings.Join(keys, ", "))
}

// Activate triggers a clickable icon by name.
func (il *IconLink) Activate(name string) tea.Cmd {
	ic, ok := il.findIcon(name)
	if !ok || !ic.Clickable || !ic.Visible {
		return nil
	}
	path := il.link.Path()
	return func() tea.Msg {
		return IconActivatedMsg{Path: path, Name: ic.Name, Glyph: ic.Glyph}
	}
}

func (il *IconLink) Update(msg tea.Msg) tea.Cmd {
	if !il.focused {
		return nil
	}
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if cmd := il.matchShortcut(keyMsg.String()); cmd != nil {
			return cmd
		}
	}
	return il.link.Update(msg)
}

func (il *IconLink) matchShortcut(pressed string) tea.Cmd {
	active := il.activatable()
	if len(pressed) == 1 && pressed[0] >= '1' && pressed[0] <= '9' {
		idx := int(pressed[0] - '1')
		if idx < len(active) {
			return il.Activate(active[idx].Name)
		}
		return nil
	}
	for _, ic := range active {
		if ic.Key != "" && ic.Key == pressed {
			return il.Activate(ic.Name)
		}
	}
	return nil
}

func (il *IconLink) View() string {
	styles := il.link.styles
	var b strings.Builder
	renderSlot := func(icons []Icon) {
		for _, ic := range icons {
			style := styles.Icon
			if ic.Clickable {
				style = styles.IconActive
			}
			b.WriteString(style.Render(ic.Glyph))
		}
	}
	renderSlot(il.IconsBefore())
	b.WriteString(il.link.View())
	renderSlot(il.IconsAfter())
	return b.String()
}
