package linkbox

import (
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/eyecantell/linkbox/runner"
)

// FileLink is a focusable widget rendering a file location. Activating it
// launches the configured editor command against the file; failures surface
// as a NotifyMsg, never as a fatal error.
type FileLink struct {
	path    string
	line    int
	column  int
	display string
	tooltip string
	id      string

	build       CommandBuilder
	openTimeout time.Duration
	keys        LinkKeyMap
	styles      Styles
	focused     bool

	// launch is swapped out in tests.
	launch func(argv []string, timeout time.Duration) error
}

type linkConfig struct {
	line, column int
	display      string
	tooltip      string
	id           string
	editor       EditorConfig
	overrides    map[string][]string
	openTimeout  time.Duration
	styles       *Styles
}

// LinkOption configures a FileLink (and the link embedded in other
// widgets) during construction.
type LinkOption func(*linkConfig)

// WithPosition sets the cursor position the editor jumps to.
func WithPosition(line, column int) LinkOption {
	return func(c *linkConfig) { c.line, c.column = line, column }
}

// WithDisplayName overrides the rendered name; the default is the base name
// of the path.
func WithDisplayName(name string) LinkOption {
	return func(c *linkConfig) { c.display = name }
}

// WithLinkTooltip attaches hover/help text to the link.
func WithLinkTooltip(tooltip string) LinkOption {
	return func(c *linkConfig) { c.tooltip = tooltip }
}

// WithID overrides the widget identifier; the default is SanitizeID of the
// display name.
func WithID(id string) LinkOption {
	return func(c *linkConfig) { c.id = id }
}

// WithEditor selects how the file opens; see EditorConfig for the
// resolution order.
func WithEditor(editor EditorConfig) LinkOption {
	return func(c *linkConfig) { c.editor = editor }
}

// WithKeyOverrides rebinds link actions ("open", "copy") to other keys.
func WithKeyOverrides(overrides map[string][]string) LinkOption {
	return func(c *linkConfig) { c.overrides = overrides }
}

// WithOpenTimeout bounds the editor launch.
func WithOpenTimeout(d time.Duration) LinkOption {
	return func(c *linkConfig) { c.openTimeout = d }
}

// WithStyles replaces the default widget styles.
func WithStyles(s Styles) LinkOption {
	return func(c *linkConfig) { c.styles = &s }
}

// NewFileLink builds a link for path. The path is resolved to an absolute
// path; an invalid editor template is rejected here.
func NewFileLink(path string, opts ...LinkOption) (*FileLink, error) {
	cfg := linkConfig{openTimeout: runner.DefaultOpenTimeout}
	for _, opt := range opts {
		opt(&cfg)
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	build, err := cfg.editor.resolve()
	if err != nil {
		return nil, err
	}

	display := cfg.display
	if display == "" {
		display = filepath.Base(abs)
	}
	id := cfg.id
	if id == "" {
		id = SanitizeID(display)
	}
	styles := DefaultStyles()
	if cfg.styles != nil {
		styles = *cfg.styles
	}

	return &FileLink{
		path:        abs,
		line:        cfg.line,
		column:      cfg.column,
		display:     display,
		tooltip:     cfg.tooltip,
		id:          id,
		build:       build,
		openTimeout: cfg.openTimeout,
		keys:        DefaultLinkKeyMap().With(cfg.overrides),
		styles:      styles,
		launch:      runner.Open,
	}, nil
}

func (l *FileLink) Path() string        { return l.path }
func (l *FileLink) Line() int           { return l.line }
func (l *FileLink) Column() int         { return l.column }
func (l *FileLink) DisplayName() string { return l.display }
func (l *FileLink) Tooltip() string     { return l.tooltip }

func (l *FileLink) ID() string          { return l.id }
func (l *FileLink) FilterValue() string { return l.display + " " + l.path }

func (l *FileLink) SetFocused(focused bool) { l.focused = focused }
func (l *FileLink) IsFocused() bool         { return l.focused }

// Open returns the command that launches the editor for this link.
func (l *FileLink) Open() tea.Cmd {
	argv := l.build(l.path, l.line, l.column)
	path, line, column := l.path, l.line, l.column
	display := l.display
	launch, timeout := l.launch, l.openTimeout
	return func() tea.Msg {
		if err := launch(argv, timeout); err != nil {
			return NotifyMsg{Text: "open " + display + ": " + err.Error(), IsErr: true}
		}
		return OpenedMsg{Path: path, Line: line, Column: column}
	}
}

// CopyLocation copies "path:line:column" to the clipboard and reports the
// result as a notification.
func (l *FileLink) CopyLocation() tea.Cmd {
	if err := CopyLocation(l.path, l.line, l.column); err != nil {
		return NotifyError(err)
	}
	return Notify("copied %s", l.display)
}

func (l *FileLink) Update(msg tea.Msg) tea.Cmd {
	if !l.focused {
		return nil
	}
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	switch {
	case key.Matches(keyMsg, l.keys.Open):
		return l.Open()
	case key.Matches(keyMsg, l.keys.Copy):
		return l.CopyLocation()
	}
	return nil
}

func (l *FileLink) View() string {
	if l.focused {
		return l.styles.LinkFocused.Render(l.display)
	}
	return l.styles.Link.Render(l.display)
}
