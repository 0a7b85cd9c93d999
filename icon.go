package linkbox

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"
)

// IndexAuto marks an icon without an explicit ordering index; such icons
// keep their insertion order, after every explicitly indexed icon.
const IndexAuto = -1

// MaxSlotIcons caps each icon slot. Icon activation shortcuts are the
// digit keys, so a slot never holds more than nine icons.
const MaxSlotIcons = 9

// Icon describes one decorative or interactive glyph attached to a link.
// The zero value is not valid; construct icons with NewIcon so they are
// validated before use.
type Icon struct {
	Name    string
	Glyph   string
	Tooltip string

	// Clickable icons participate in activation shortcuts and emit
	// IconActivatedMsg when triggered.
	Clickable bool

	// Key is an optional single-character shortcut in addition to the
	// positional digit shortcut.
	Key string

	Visible bool

	// Index orders the icon within its slot; IndexAuto keeps insertion
	// order behind all explicitly indexed icons.
	Index int
}

// IconOption configures an Icon during construction.
type IconOption func(*Icon)

func WithTooltip(tooltip string) IconOption {
	return func(ic *Icon) { ic.Tooltip = tooltip }
}

func WithClickable() IconOption {
	return func(ic *Icon) { ic.Clickable = true }
}

func WithKey(key string) IconOption {
	return func(ic *Icon) { ic.Key = key }
}

func WithHidden() IconOption {
	return func(ic *Icon) { ic.Visible = false }
}

func WithIndex(index int) IconOption {
	return func(ic *Icon) { ic.Index = index }
}

// NewIcon builds a validated icon. Name and glyph must be non-blank; an
// invalid icon is rejected here and never stored.
func NewIcon(name, glyph string, opts ...IconOption) (Icon, error) {
	ic := Icon{
		Name:    name,
		Glyph:   glyph,
		Visible: true,
		Index:   IndexAuto,
	}
	for _, opt := range opts {
		opt(&ic)
	}
	if err := ic.Validate(); err != nil {
		return Icon{}, err
	}
	return ic, nil
}

// Validate reports whether the icon is well formed. Widgets re-validate on
// every update since icons are replaced wholesale, never mutated in place.
func (ic Icon) Validate() error {
	if strings.TrimSpace(ic.Name) == "" {
		return errors.New("icon name must not be blank")
	}
	if strings.TrimSpace(ic.Glyph) == "" {
		return fmt.Errorf("icon %q: glyph must not be blank", ic.Name)
	}
	if ic.Key != "" && utf8.RuneCountInString(ic.Key) != 1 {
		return fmt.Errorf("icon %q: key must be a single character, got %q", ic.Name, ic.Key)
	}
	if ic.Index < IndexAuto {
		return fmt.Errorf("icon %q: index must be %d or a non-negative value, got %d", ic.Name, IndexAuto, ic.Index)
	}
	return nil
}

// OrderIcons resolves the left-to-right rendering sequence for one slot:
// hidden icons are dropped, explicitly indexed icons come first sorted by
// (index, name), and the rest follow in insertion order. The full sequence
// is recomputed on every change rather than patched incrementally; slots
// hold single-digit icon counts.
func OrderIcons(icons []Icon) []Icon {
	explicit := make([]Icon, 0, len(icons))
	implicit := make([]Icon, 0, len(icons))
	for _, ic := range icons {
		if !ic.Visible {
			continue
		}
		if ic.Index >= 0 {
			explicit = append(explicit, ic)
		} else {
			implicit = append(implicit, ic)
		}
	}
	sort.SliceStable(explicit, func(i, j int) bool {
		if explicit[i].Index != explicit[j].Index {
			return explicit[i].Index < explicit[j].Index
		}
		return explicit[i].Name < explicit[j].Name
	})
	return append(explicit, implicit...)
}
