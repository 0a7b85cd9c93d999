package linkbox

import "github.com/charmbracelet/bubbles/key"

// Widgets resolve their key bindings once, at construction, by merging the
// default map with caller overrides keyed by action name. Nothing rebinds
// at runtime.

// LinkKeyMap holds the bindings a FileLink responds to while focused.
type LinkKeyMap struct {
	Open key.Binding
	Copy key.Binding
}

func DefaultLinkKeyMap() LinkKeyMap {
	return LinkKeyMap{
		Open: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open file")),
		Copy: key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "copy location")),
	}
}

// With returns a copy of the map with actions rebound from overrides.
// Recognized actions: "open", "copy".
func (m LinkKeyMap) With(overrides map[string][]string) LinkKeyMap {
	rebind(&m.Open, overrides, "open", "open file")
	rebind(&m.Copy, overrides, "copy", "copy location")
	return m
}

// CommandKeyMap holds the bindings a CommandLink responds to while focused.
type CommandKeyMap struct {
	PlayStop   key.Binding
	OpenOutput key.Binding
	Settings   key.Binding
}

func DefaultCommandKeyMap() CommandKeyMap {
	return CommandKeyMap{
		PlayStop:   key.NewBinding(key.WithKeys(" ", "p"), key.WithHelp("space/p", "play/stop")),
		OpenOutput: key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "open output")),
		Settings:   key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "settings")),
	}
}

// With returns a copy of the map with actions rebound from overrides.
// Recognized actions: "play-stop", "open-output", "settings".
func (m CommandKeyMap) With(overrides map[string][]string) CommandKeyMap {
	rebind(&m.PlayStop, overrides, "play-stop", "play/stop")
	rebind(&m.OpenOutput, overrides, "open-output", "open output")
	rebind(&m.Settings, overrides, "settings", "settings")
	return m
}

// ListKeyMap holds the bindings a LinkList responds to while focused.
type ListKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Toggle key.Binding
	Remove key.Binding
}

func DefaultListKeyMap() ListKeyMap {
	return ListKeyMap{
		Up:     key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:   key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Toggle: key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "toggle")),
		Remove: key.NewBinding(key.WithKeys("backspace"), key.WithHelp("backspace", "remove")),
	}
}

// With returns a copy of the map with actions rebound from overrides.
// Recognized actions: "up", "down", "toggle", "remove".
func (m ListKeyMap) With(overrides map[string][]string) ListKeyMap {
	rebind(&m.Up, overrides, "up", "up")
	rebind(&m.Down, overrides, "down", "down")
	rebind(&m.Toggle, overrides, "toggle", "toggle")
	rebind(&m.Remove, overrides, "remove", "remove")
	return m
}

func rebind(b *key.Binding, overrides map[string][]string, action, help string) {
	keys, ok := overrides[action]
	if !ok || len(keys) == 0 {
		return
	}
	*b = key.NewBinding(key.WithKeys(keys...), key.WithHelp(keys[0], help))
}
